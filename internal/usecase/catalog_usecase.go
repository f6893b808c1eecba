package usecase

import (
	"context"
	"fmt"
	"time"

	"staynest-backend/internal/domain"
	"staynest-backend/pkg/cache"
	"staynest-backend/pkg/utils"
)

// CatalogUsecase serves listing/experience reads and admin writes, and
// implements domain.CatalogLookup for the wishlist core. Existence
// answers are cached; only positive answers are kept so a freshly
// created entity is saveable immediately.
type CatalogUsecase struct {
	repo      domain.CatalogRepository
	cache     cache.CacheService
	existsTTL time.Duration
}

func NewCatalogUsecase(repo domain.CatalogRepository, cache cache.CacheService, existsTTL time.Duration) *CatalogUsecase {
	return &CatalogUsecase{
		repo:      repo,
		cache:     cache,
		existsTTL: existsTTL,
	}
}

// Exists answers the wishlist core's validation question for
// (refID, type). Side-effect-free.
func (uc *CatalogUsecase) Exists(ctx context.Context, refID string, t domain.ItemType) (bool, error) {
	key := existsKey(refID, t)
	if _, found := uc.cache.Get(key); found {
		return true, nil
	}

	exists, err := uc.repo.ExistsActive(ctx, refID, t)
	if err != nil {
		return false, err
	}
	if exists {
		uc.cache.Set(key, true, uc.existsTTL)
	}
	return exists, nil
}

func (uc *CatalogUsecase) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	listing, err := uc.repo.GetListingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, domain.ErrListingNotFound
	}
	return listing, nil
}

func (uc *CatalogUsecase) ListListings(ctx context.Context, limit, offset int) ([]domain.Listing, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.ListListings(ctx, limit, offset)
}

func (uc *CatalogUsecase) CreateListing(ctx context.Context, listing *domain.Listing) error {
	if listing.Title == "" {
		return fmt.Errorf("%w: listing title is required", domain.ErrValidation)
	}
	if listing.Slug == "" {
		listing.Slug = utils.GenerateSlug(listing.Title)
	}
	listing.IsActive = true
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = time.Now()
	return uc.repo.CreateListing(ctx, listing)
}

func (uc *CatalogUsecase) GetExperience(ctx context.Context, id string) (*domain.Experience, error) {
	exp, err := uc.repo.GetExperienceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, fmt.Errorf("%w: experience not found", domain.ErrNotFound)
	}
	return exp, nil
}

func (uc *CatalogUsecase) CreateExperience(ctx context.Context, exp *domain.Experience) error {
	if exp.Title == "" {
		return fmt.Errorf("%w: experience title is required", domain.ErrValidation)
	}
	if exp.Slug == "" {
		exp.Slug = utils.GenerateSlug(exp.Title)
	}
	exp.IsActive = true
	exp.CreatedAt = time.Now()
	exp.UpdatedAt = time.Now()
	return uc.repo.CreateExperience(ctx, exp)
}

func existsKey(refID string, t domain.ItemType) string {
	return fmt.Sprintf("catalog:exists:%s:%s", t, refID)
}
