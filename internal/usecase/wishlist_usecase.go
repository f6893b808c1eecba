package usecase

import (
	"context"
	"errors"
	"strings"

	"staynest-backend/internal/domain"
)

// maxWriteAttempts bounds the reload-and-reapply loop when a
// concurrent mutation wins the version race on the same aggregate.
const maxWriteAttempts = 3

// WishlistUsecase owns the wishlist aggregate rules: lazy creation,
// folder lifecycle, duplicate prevention, and catalog existence
// validation. Handlers never touch the repository directly.
type WishlistUsecase struct {
	repo    domain.WishlistRepository
	catalog domain.CatalogLookup
}

func NewWishlistUsecase(repo domain.WishlistRepository, catalog domain.CatalogLookup) *WishlistUsecase {
	return &WishlistUsecase{
		repo:    repo,
		catalog: catalog,
	}
}

// GetOrCreate returns the user's wishlist, lazily creating an empty one
// on first access. Clients never construct a wishlist explicitly.
func (u *WishlistUsecase) GetOrCreate(ctx context.Context, userID string) (*domain.Wishlist, error) {
	wishlist, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wishlist == nil {
		wishlist, err = u.repo.Create(ctx, userID)
		if err != nil {
			return nil, err
		}
	}
	return wishlist, nil
}

// CreateFolder appends a new empty folder. Folder names must be
// non-empty; duplicates across folders are allowed.
func (u *WishlistUsecase) CreateFolder(ctx context.Context, userID, name string) (*domain.Wishlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrFolderNameRequired
	}

	return u.mutate(ctx, userID, func(w *domain.Wishlist) error {
		w.AddFolder(name)
		return nil
	})
}

// AddItem saves a catalog reference into a folder. The type must be in
// the active set, the referenced entity must exist in its catalog, and
// the (refId, type) pair must not already be in the folder.
func (u *WishlistUsecase) AddItem(ctx context.Context, userID, folderID, refID string, itemType domain.ItemType) (*domain.Wishlist, error) {
	if !itemType.IsActive() {
		return nil, domain.ErrInvalidItemType
	}

	exists, err := u.catalog.Exists(ctx, refID, itemType)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrItemNotFound
	}

	return u.mutate(ctx, userID, func(w *domain.Wishlist) error {
		folder := w.FolderByID(folderID)
		if folder == nil {
			return domain.ErrFolderNotFound
		}
		if folder.Contains(refID, itemType) {
			return domain.ErrItemAlreadyInFolder
		}
		folder.Items = append(folder.Items, domain.WishlistItem{RefID: refID, Type: itemType})
		return nil
	})
}

// RemoveItem drops every item in the folder whose refId matches. An
// empty itemType matches any type; removing a reference that is not
// there succeeds silently.
func (u *WishlistUsecase) RemoveItem(ctx context.Context, userID, folderID, refID string, itemType domain.ItemType) (*domain.Wishlist, error) {
	return u.mutate(ctx, userID, func(w *domain.Wishlist) error {
		folder := w.FolderByID(folderID)
		if folder == nil {
			return domain.ErrFolderNotFound
		}
		folder.RemoveItems(refID, itemType)
		return nil
	})
}

// DeleteFolder removes the folder and everything in it. Deleting a
// folder that does not exist succeeds silently.
func (u *WishlistUsecase) DeleteFolder(ctx context.Context, userID, folderID string) (*domain.Wishlist, error) {
	return u.mutate(ctx, userID, func(w *domain.Wishlist) error {
		w.RemoveFolder(folderID)
		return nil
	})
}

// mutate runs the shared read-modify-write cycle: load or create the
// aggregate, apply the in-memory change, persist conditioned on the
// version read. A lost version race reloads and reapplies; after
// maxWriteAttempts the conflict surfaces to the caller.
func (u *WishlistUsecase) mutate(ctx context.Context, userID string, apply func(w *domain.Wishlist) error) (*domain.Wishlist, error) {
	var lastErr error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		wishlist, err := u.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}

		if err := apply(wishlist); err != nil {
			return nil, err
		}

		if err := u.repo.Update(ctx, wishlist); err != nil {
			if errors.Is(err, domain.ErrWishlistModified) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return wishlist, nil
	}
	return nil, lastErr
}
