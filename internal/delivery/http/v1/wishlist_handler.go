package v1

import (
	"net/http"
	"staynest-backend/internal/domain"
	"staynest-backend/internal/usecase"
	"staynest-backend/pkg/utils"

	"github.com/goccy/go-json"
)

// WishlistHandler maps the saved-collection routes onto the wishlist
// usecase. Every successful response is the full current aggregate so
// clients never need a follow-up read after a mutation.
type WishlistHandler struct {
	usecase *usecase.WishlistUsecase
}

func NewWishlistHandler(usecase *usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{usecase: usecase}
}

func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	wishlist, err := h.usecase.GetOrCreate(r.Context(), user.ID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, wishlist)
}

type CreateFolderRequest struct {
	Name string `json:"name"`
}

func (h *WishlistHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	wishlist, err := h.usecase.CreateFolder(r.Context(), user.ID, req.Name)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, wishlist)
}

type AddItemRequest struct {
	RefID string          `json:"refId"`
	Type  domain.ItemType `json:"type"`
}

func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	folderID := r.PathValue("folderId")

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	wishlist, err := h.usecase.AddItem(r.Context(), user.ID, folderID, req.RefID, req.Type)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, wishlist)
}

func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	folderID := r.PathValue("folderId")
	itemID := r.PathValue("itemId")
	// Optional discriminator: without it, removal matches the refId
	// across all types (a listing and an experience sharing a refId
	// are both dropped).
	itemType := domain.ItemType(r.URL.Query().Get("type"))

	wishlist, err := h.usecase.RemoveItem(r.Context(), user.ID, folderID, itemID, itemType)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, wishlist)
}

func (h *WishlistHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	folderID := r.PathValue("folderId")

	wishlist, err := h.usecase.DeleteFolder(r.Context(), user.ID, folderID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, wishlist)
}
