package v1

import (
	"net/http"
	"staynest-backend/internal/domain"
	"staynest-backend/internal/usecase"
	"staynest-backend/pkg/utils"

	"github.com/goccy/go-json"
)

type BookingHandler struct {
	usecase *usecase.BookingUsecase
}

func NewBookingHandler(usecase *usecase.BookingUsecase) *BookingHandler {
	return &BookingHandler{usecase: usecase}
}

// StartCheckout prices the requested stay and replies with the hosted
// checkout URL; the frontend redirects the browser there.
func (h *BookingHandler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	_, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req domain.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	session, err := h.usecase.StartCheckout(r.Context(), req)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, session)
}
