package postgres

import (
	"context"
	"errors"

	"staynest-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// wishlistRepository stores each aggregate as one row: the folder tree
// lives in a JSONB column and is read and rewritten as a unit. The
// version column backs the conditional update.
type wishlistRepository struct {
	db *pgxpool.Pool
}

func NewWishlistRepository(db *pgxpool.Pool) domain.WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) GetByUserID(ctx context.Context, userID string) (*domain.Wishlist, error) {
	var (
		w          domain.Wishlist
		foldersRaw []byte
	)

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, folders, version, created_at, updated_at
		 FROM wishlists WHERE user_id = $1`, userID).
		Scan(&w.ID, &w.UserID, &foldersRaw, &w.Version, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Return nil if not found
		}
		return nil, domain.StorageErr(err)
	}

	if err := json.Unmarshal(foldersRaw, &w.Folders); err != nil {
		return nil, domain.StorageErr(err)
	}
	if w.Folders == nil {
		w.Folders = []domain.Folder{}
	}
	return &w, nil
}

func (r *wishlistRepository) Create(ctx context.Context, userID string) (*domain.Wishlist, error) {
	w := domain.Wishlist{
		UserID:  userID,
		Folders: []domain.Folder{},
	}

	// user_id is unique; a concurrent first request may have inserted
	// already, in which case we converge on the existing row.
	err := r.db.QueryRow(ctx,
		`INSERT INTO wishlists (user_id, folders)
		 VALUES ($1, '[]'::jsonb)
		 ON CONFLICT (user_id) DO NOTHING
		 RETURNING id, version, created_at, updated_at`, userID).
		Scan(&w.ID, &w.Version, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.GetByUserID(ctx, userID)
		}
		return nil, domain.StorageErr(err)
	}
	return &w, nil
}

func (r *wishlistRepository) Update(ctx context.Context, w *domain.Wishlist) error {
	foldersRaw, err := json.Marshal(w.Folders)
	if err != nil {
		return domain.StorageErr(err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE wishlists
		 SET folders = $1, version = version + 1, updated_at = now()
		 WHERE id = $2 AND version = $3`,
		foldersRaw, w.ID, w.Version)
	if err != nil {
		return domain.StorageErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWishlistModified
	}

	w.Version++
	return nil
}
