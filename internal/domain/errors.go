package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every error the usecases return wraps exactly one
// of these so the HTTP boundary can map it with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage unavailable")
)

var (
	ErrFolderNameRequired = fmt.Errorf("%w: folder name is required", ErrValidation)
	ErrInvalidItemType    = fmt.Errorf("%w: invalid item type", ErrValidation)

	ErrFolderNotFound  = fmt.Errorf("%w: folder not found", ErrNotFound)
	ErrItemNotFound    = fmt.Errorf("%w: item not found", ErrNotFound)
	ErrListingNotFound = fmt.Errorf("%w: listing not found", ErrNotFound)

	ErrItemAlreadyInFolder = fmt.Errorf("%w: item already in folder", ErrConflict)
	ErrWishlistModified    = fmt.Errorf("%w: wishlist was modified concurrently", ErrConflict)

	ErrCheckoutUnavailable = fmt.Errorf("%w: checkout service unavailable", ErrStorage)
)

// StorageErr wraps a low-level repository or lookup failure into the
// storage category, preserving the cause for logging.
func StorageErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
