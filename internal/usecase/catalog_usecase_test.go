package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"staynest-backend/internal/domain"
	memcache "staynest-backend/internal/infrastructure/cache"
)

func newCatalogUsecase(t *testing.T) (*CatalogUsecase, *mockCatalogRepo) {
	t.Helper()
	repo := new(mockCatalogRepo)
	c := memcache.NewMemoryCache(time.Minute, time.Minute)
	return NewCatalogUsecase(repo, c, time.Minute), repo
}

func TestExistsCachesPositiveAnswers(t *testing.T) {
	uc, repo := newCatalogUsecase(t)

	repo.On("ExistsActive", mock.Anything, "L1", domain.ItemTypeListing).Return(true, nil).Once()

	for i := 0; i < 3; i++ {
		ok, err := uc.Exists(context.Background(), "L1", domain.ItemTypeListing)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	repo.AssertNumberOfCalls(t, "ExistsActive", 1)
}

func TestExistsDoesNotCacheNegativeAnswers(t *testing.T) {
	uc, repo := newCatalogUsecase(t)

	// A listing created between the two calls must be visible on the
	// second one.
	repo.On("ExistsActive", mock.Anything, "L1", domain.ItemTypeListing).Return(false, nil).Once()
	repo.On("ExistsActive", mock.Anything, "L1", domain.ItemTypeListing).Return(true, nil).Once()

	ok, err := uc.Exists(context.Background(), "L1", domain.ItemTypeListing)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = uc.Exists(context.Background(), "L1", domain.ItemTypeListing)
	require.NoError(t, err)
	assert.True(t, ok)
	repo.AssertExpectations(t)
}

func TestExistsKeysByType(t *testing.T) {
	uc, repo := newCatalogUsecase(t)

	repo.On("ExistsActive", mock.Anything, "X", domain.ItemTypeListing).Return(true, nil).Once()
	repo.On("ExistsActive", mock.Anything, "X", domain.ItemTypeExperience).Return(false, nil).Once()

	ok, err := uc.Exists(context.Background(), "X", domain.ItemTypeListing)
	require.NoError(t, err)
	assert.True(t, ok)

	// The cached listing answer must not leak to the experience lookup.
	ok, err = uc.Exists(context.Background(), "X", domain.ItemTypeExperience)
	require.NoError(t, err)
	assert.False(t, ok)
	repo.AssertExpectations(t)
}

func TestGetListingNotFound(t *testing.T) {
	uc, repo := newCatalogUsecase(t)

	repo.On("GetListingByID", mock.Anything, "ghost").Return(nil, nil).Once()

	_, err := uc.GetListing(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListListingsClampsLimit(t *testing.T) {
	uc, repo := newCatalogUsecase(t)

	repo.On("ListListings", mock.Anything, 20, 0).Return([]domain.Listing{}, int64(0), nil).Times(3)

	for _, limit := range []int{0, -5, 500} {
		_, _, err := uc.ListListings(context.Background(), limit, -1)
		require.NoError(t, err)
	}
	repo.AssertExpectations(t)
}

func TestCreateListingDefaults(t *testing.T) {
	uc, repo := newCatalogUsecase(t)

	repo.On("CreateListing", mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
		return l.Slug == "loft-with-nile-view" && l.IsActive && !l.CreatedAt.IsZero()
	})).Return(nil).Once()

	err := uc.CreateListing(context.Background(), &domain.Listing{Title: "Loft with Nile View"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateListingRequiresTitle(t *testing.T) {
	uc, repo := newCatalogUsecase(t)

	err := uc.CreateListing(context.Background(), &domain.Listing{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "CreateListing", mock.Anything, mock.Anything)
}
