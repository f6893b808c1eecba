package v1

import (
	"net/http"
	"staynest-backend/internal/domain"
	"staynest-backend/internal/usecase"
	"staynest-backend/pkg/utils"

	"github.com/goccy/go-json"
)

type CatalogHandler struct {
	usecase *usecase.CatalogUsecase
}

func NewCatalogHandler(usecase *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{usecase: usecase}
}

func (h *CatalogHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	listings, total, err := h.usecase.ListListings(r.Context(), limit, offset)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    listings,
		Meta: domain.Pagination{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	})
}

func (h *CatalogHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := h.usecase.GetListing(r.Context(), r.PathValue("id"))
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, listing)
}

func (h *CatalogHandler) GetExperience(w http.ResponseWriter, r *http.Request) {
	exp, err := h.usecase.GetExperience(r.Context(), r.PathValue("id"))
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, exp)
}

func (h *CatalogHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var listing domain.Listing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.usecase.CreateListing(r.Context(), &listing); err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, listing)
}

func (h *CatalogHandler) CreateExperience(w http.ResponseWriter, r *http.Request) {
	var exp domain.Experience
	if err := json.NewDecoder(r.Body).Decode(&exp); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.usecase.CreateExperience(r.Context(), &exp); err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, exp)
}
