package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ItemType tags which catalog a saved reference points at.
type ItemType string

const (
	ItemTypeListing    ItemType = "listing"
	ItemTypeExperience ItemType = "experience"
	// Reserved for upcoming bookable services. Declared so stored data
	// stays forward-compatible, but rejected by validation until a
	// catalog source exists for it.
	ItemTypeService ItemType = "service"
)

// ActiveItemTypes are the types AddItem accepts today.
var ActiveItemTypes = []ItemType{ItemTypeListing, ItemTypeExperience}

// IsActive reports whether t may currently be saved into a folder.
func (t ItemType) IsActive() bool {
	for _, a := range ActiveItemTypes {
		if t == a {
			return true
		}
	}
	return false
}

// WishlistItem is a reference to a catalog entity saved inside a
// folder. It has no identity beyond the (RefID, Type) pair.
type WishlistItem struct {
	RefID string   `json:"refId"`
	Type  ItemType `json:"type"`
}

// Folder is a named, ordered group of saved items. Folders exist only
// inside a wishlist; names may repeat across folders.
type Folder struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Items []WishlistItem `json:"items"`
}

// Contains reports whether the folder already holds (refID, t).
func (f *Folder) Contains(refID string, t ItemType) bool {
	for _, it := range f.Items {
		if it.RefID == refID && it.Type == t {
			return true
		}
	}
	return false
}

// RemoveItems drops every item whose RefID matches refID. A non-empty
// t narrows the match to that type. Returns the number removed;
// removing nothing is not an error.
func (f *Folder) RemoveItems(refID string, t ItemType) int {
	kept := f.Items[:0]
	removed := 0
	for _, it := range f.Items {
		if it.RefID == refID && (t == "" || it.Type == t) {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	f.Items = kept
	return removed
}

// Wishlist is the per-user aggregate root. UserID is immutable and
// unique across aggregates; folders keep creation order. Version backs
// the compare-and-swap write in the repository.
type Wishlist struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Folders   []Folder  `json:"folders"`
	Version   int64     `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FolderByID locates a folder by id. Linear scan: folder counts per
// user are small, so no index is kept.
func (w *Wishlist) FolderByID(id string) *Folder {
	for i := range w.Folders {
		if w.Folders[i].ID == id {
			return &w.Folders[i]
		}
	}
	return nil
}

// AddFolder appends a new empty folder and returns it.
func (w *Wishlist) AddFolder(name string) *Folder {
	w.Folders = append(w.Folders, Folder{
		ID:    uuid.New().String(),
		Name:  name,
		Items: []WishlistItem{},
	})
	return &w.Folders[len(w.Folders)-1]
}

// RemoveFolder deletes the folder with the given id, cascading its
// items. Reports whether a folder was removed.
func (w *Wishlist) RemoveFolder(id string) bool {
	for i := range w.Folders {
		if w.Folders[i].ID == id {
			w.Folders = append(w.Folders[:i], w.Folders[i+1:]...)
			return true
		}
	}
	return false
}

// WishlistRepository persists one aggregate per user.
type WishlistRepository interface {
	// GetByUserID returns nil, nil when the user has no wishlist yet.
	GetByUserID(ctx context.Context, userID string) (*Wishlist, error)
	// Create inserts an empty aggregate. Concurrent creation for the
	// same user converges on a single row.
	Create(ctx context.Context, userID string) (*Wishlist, error)
	// Update rewrites the aggregate's folders, conditioned on the
	// version read. Returns ErrWishlistModified when the row changed
	// underneath; the stored version is bumped on success.
	Update(ctx context.Context, w *Wishlist) error
}

// CatalogLookup answers whether a catalog entity of the given type
// exists and is bookable. Consumed by AddItem validation.
type CatalogLookup interface {
	Exists(ctx context.Context, refID string, t ItemType) (bool, error)
}
