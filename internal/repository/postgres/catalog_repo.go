package postgres

import (
	"context"
	"errors"

	"staynest-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type catalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) domain.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ExistsActive(ctx context.Context, id string, t domain.ItemType) (bool, error) {
	var query string
	switch t {
	case domain.ItemTypeListing:
		query = `SELECT EXISTS(SELECT 1 FROM listings WHERE id = $1 AND is_active)`
	case domain.ItemTypeExperience:
		query = `SELECT EXISTS(SELECT 1 FROM experiences WHERE id = $1 AND is_active)`
	default:
		return false, nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, domain.StorageErr(err)
	}
	return exists, nil
}

func (r *catalogRepository) GetListingByID(ctx context.Context, id string) (*domain.Listing, error) {
	var (
		l     domain.Listing
		media []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, title, slug, description, price_per_night, max_guests, media, is_active, created_at, updated_at
		 FROM listings WHERE id = $1`, id).
		Scan(&l.ID, &l.Title, &l.Slug, &l.Description, &l.PricePerNight, &l.MaxGuests, &media, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.StorageErr(err)
	}
	applyMedia(media, &l.Media, &l.Images)
	return &l, nil
}

func (r *catalogRepository) ListListings(ctx context.Context, limit, offset int) ([]domain.Listing, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM listings WHERE is_active`).Scan(&total); err != nil {
		return nil, 0, domain.StorageErr(err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, title, slug, description, price_per_night, max_guests, media, is_active, created_at, updated_at
		 FROM listings WHERE is_active
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, domain.StorageErr(err)
	}
	defer rows.Close()

	listings := make([]domain.Listing, 0, limit)
	for rows.Next() {
		var (
			l     domain.Listing
			media []byte
		)
		if err := rows.Scan(&l.ID, &l.Title, &l.Slug, &l.Description, &l.PricePerNight, &l.MaxGuests, &media, &l.IsActive, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, 0, domain.StorageErr(err)
		}
		applyMedia(media, &l.Media, &l.Images)
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.StorageErr(err)
	}
	return listings, total, nil
}

func (r *catalogRepository) CreateListing(ctx context.Context, l *domain.Listing) error {
	media := []byte(l.Media)
	if len(media) == 0 {
		media = []byte(`[]`)
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO listings (title, slug, description, price_per_night, max_guests, media, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		l.Title, l.Slug, l.Description, l.PricePerNight, l.MaxGuests, media, l.IsActive).
		Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return domain.StorageErr(err)
	}
	return nil
}

func (r *catalogRepository) GetExperienceByID(ctx context.Context, id string) (*domain.Experience, error) {
	var (
		e     domain.Experience
		media []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, title, slug, description, price_per_person, max_guests, media, is_active, created_at, updated_at
		 FROM experiences WHERE id = $1`, id).
		Scan(&e.ID, &e.Title, &e.Slug, &e.Description, &e.PricePerPerson, &e.MaxGuests, &media, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.StorageErr(err)
	}
	applyMedia(media, &e.Media, &e.Images)
	return &e, nil
}

func (r *catalogRepository) CreateExperience(ctx context.Context, e *domain.Experience) error {
	media := []byte(e.Media)
	if len(media) == 0 {
		media = []byte(`[]`)
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO experiences (title, slug, description, price_per_person, max_guests, media, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		e.Title, e.Slug, e.Description, e.PricePerPerson, e.MaxGuests, media, e.IsActive).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return domain.StorageErr(err)
	}
	return nil
}

// applyMedia copies the raw media column and derives the flat image
// URL list used by clients.
func applyMedia(raw []byte, media *domain.RawJSON, images *[]string) {
	if len(raw) == 0 {
		return
	}
	*media = domain.RawJSON(raw)
	var urls []string
	if err := json.Unmarshal(raw, &urls); err == nil {
		*images = urls
	}
}
