package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"staynest-backend/internal/domain"
)

// --- Mock Repository ---

type mockWishlistRepo struct {
	mock.Mock
}

func (m *mockWishlistRepo) GetByUserID(ctx context.Context, userID string) (*domain.Wishlist, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wishlist), args.Error(1)
}

func (m *mockWishlistRepo) Create(ctx context.Context, userID string) (*domain.Wishlist, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wishlist), args.Error(1)
}

func (m *mockWishlistRepo) Update(ctx context.Context, w *domain.Wishlist) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

// --- Mock Catalog Lookup ---

type mockCatalogLookup struct {
	mock.Mock
}

func (m *mockCatalogLookup) Exists(ctx context.Context, refID string, t domain.ItemType) (bool, error) {
	args := m.Called(ctx, refID, t)
	return args.Bool(0), args.Error(1)
}

// --- Test Helpers ---

func emptyWishlist(userID string) *domain.Wishlist {
	return &domain.Wishlist{ID: "w1", UserID: userID, Folders: []domain.Folder{}}
}

func wishlistWith(userID string, folders ...domain.Folder) *domain.Wishlist {
	return &domain.Wishlist{ID: "w1", UserID: userID, Folders: folders}
}

func newTestUsecase(t *testing.T) (*WishlistUsecase, *mockWishlistRepo, *mockCatalogLookup) {
	t.Helper()
	repo := new(mockWishlistRepo)
	catalog := new(mockCatalogLookup)
	return NewWishlistUsecase(repo, catalog), repo, catalog
}

// --- GetOrCreate ---

func TestGetOrCreateCreatesLazily(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	repo.On("GetByUserID", mock.Anything, "u1").Return(nil, nil).Once()
	repo.On("Create", mock.Anything, "u1").Return(emptyWishlist("u1"), nil).Once()

	w, err := uc.GetOrCreate(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", w.UserID)
	assert.Empty(t, w.Folders)
	repo.AssertExpectations(t)
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	existing := emptyWishlist("u1")
	repo.On("GetByUserID", mock.Anything, "u1").Return(existing, nil)

	first, err := uc.GetOrCreate(context.Background(), "u1")
	require.NoError(t, err)
	second, err := uc.GetOrCreate(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetOrCreatePropagatesStorageError(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	repo.On("GetByUserID", mock.Anything, "u1").Return(nil, domain.StorageErr(errors.New("connection refused")))

	_, err := uc.GetOrCreate(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrStorage)
}

// --- CreateFolder ---

func TestCreateFolderRejectsEmptyName(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	for _, name := range []string{"", "   ", "\t"} {
		_, err := uc.CreateFolder(context.Background(), "u1", name)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
	repo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
}

func TestCreateFolderAppends(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	repo.On("GetByUserID", mock.Anything, "u1").Return(emptyWishlist("u1"), nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	w, err := uc.CreateFolder(context.Background(), "u1", "Favorites")
	require.NoError(t, err)
	require.Len(t, w.Folders, 1)
	assert.Equal(t, "Favorites", w.Folders[0].Name)
	assert.NotEmpty(t, w.Folders[0].ID)
	assert.Empty(t, w.Folders[0].Items)
	repo.AssertExpectations(t)
}

func TestCreateFolderAllowsDuplicateNames(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	existing := wishlistWith("u1", domain.Folder{ID: "f1", Name: "Favorites", Items: []domain.WishlistItem{}})
	repo.On("GetByUserID", mock.Anything, "u1").Return(existing, nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	w, err := uc.CreateFolder(context.Background(), "u1", "Favorites")
	require.NoError(t, err)
	require.Len(t, w.Folders, 2)
	assert.Equal(t, w.Folders[0].Name, w.Folders[1].Name)
}

// --- AddItem ---

func TestAddItemRejectsInvalidType(t *testing.T) {
	uc, repo, catalog := newTestUsecase(t)

	for _, itemType := range []domain.ItemType{"", "bogus", domain.ItemTypeService} {
		_, err := uc.AddItem(context.Background(), "u1", "f1", "L1", itemType)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
	catalog.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
}

func TestAddItemRejectsUnknownCatalogEntity(t *testing.T) {
	uc, repo, catalog := newTestUsecase(t)

	catalog.On("Exists", mock.Anything, "L1", domain.ItemTypeListing).Return(false, nil).Once()

	_, err := uc.AddItem(context.Background(), "u1", "f1", "L1", domain.ItemTypeListing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAddItemPropagatesLookupFailure(t *testing.T) {
	uc, _, catalog := newTestUsecase(t)

	catalog.On("Exists", mock.Anything, "L1", domain.ItemTypeListing).
		Return(false, domain.StorageErr(errors.New("catalog down"))).Once()

	_, err := uc.AddItem(context.Background(), "u1", "f1", "L1", domain.ItemTypeListing)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestAddItemRejectsMissingFolder(t *testing.T) {
	uc, repo, catalog := newTestUsecase(t)

	catalog.On("Exists", mock.Anything, "L1", domain.ItemTypeListing).Return(true, nil).Once()
	repo.On("GetByUserID", mock.Anything, "u1").Return(emptyWishlist("u1"), nil).Once()

	_, err := uc.AddItem(context.Background(), "u1", "missing", "L1", domain.ItemTypeListing)
	assert.ErrorIs(t, err, domain.ErrFolderNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAddItemRejectsDuplicate(t *testing.T) {
	uc, repo, catalog := newTestUsecase(t)

	existing := wishlistWith("u1", domain.Folder{
		ID:    "f1",
		Name:  "Favorites",
		Items: []domain.WishlistItem{{RefID: "L1", Type: domain.ItemTypeListing}},
	})
	catalog.On("Exists", mock.Anything, "L1", domain.ItemTypeListing).Return(true, nil).Once()
	repo.On("GetByUserID", mock.Anything, "u1").Return(existing, nil).Once()

	_, err := uc.AddItem(context.Background(), "u1", "f1", "L1", domain.ItemTypeListing)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// No mutation happened: the folder still holds exactly one item.
	assert.Len(t, existing.Folders[0].Items, 1)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAddItemSavesReference(t *testing.T) {
	uc, repo, catalog := newTestUsecase(t)

	existing := wishlistWith("u1", domain.Folder{ID: "f1", Name: "Favorites", Items: []domain.WishlistItem{}})
	catalog.On("Exists", mock.Anything, "L1", domain.ItemTypeListing).Return(true, nil).Once()
	repo.On("GetByUserID", mock.Anything, "u1").Return(existing, nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	w, err := uc.AddItem(context.Background(), "u1", "f1", "L1", domain.ItemTypeListing)
	require.NoError(t, err)
	require.Len(t, w.Folders, 1)
	require.Len(t, w.Folders[0].Items, 1)
	assert.Equal(t, domain.WishlistItem{RefID: "L1", Type: domain.ItemTypeListing}, w.Folders[0].Items[0])
	repo.AssertExpectations(t)
}

func TestAddItemSameRefDifferentType(t *testing.T) {
	uc, repo, catalog := newTestUsecase(t)

	existing := wishlistWith("u1", domain.Folder{
		ID:    "f1",
		Name:  "Favorites",
		Items: []domain.WishlistItem{{RefID: "X", Type: domain.ItemTypeListing}},
	})
	catalog.On("Exists", mock.Anything, "X", domain.ItemTypeExperience).Return(true, nil).Once()
	repo.On("GetByUserID", mock.Anything, "u1").Return(existing, nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	w, err := uc.AddItem(context.Background(), "u1", "f1", "X", domain.ItemTypeExperience)
	require.NoError(t, err)
	assert.Len(t, w.Folders[0].Items, 2, "identity is the (refId, type) pair")
}

// --- RemoveItem ---

func TestRemoveItemIsIdempotent(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	existing := wishlistWith("u1", domain.Folder{
		ID:    "f1",
		Name:  "Favorites",
		Items: []domain.WishlistItem{{RefID: "L1", Type: domain.ItemTypeListing}},
	})
	repo.On("GetByUserID", mock.Anything, "u1").Return(existing, nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	w, err := uc.RemoveItem(context.Background(), "u1", "f1", "nope", "")
	require.NoError(t, err)
	assert.Len(t, w.Folders[0].Items, 1, "removing an absent ref changes nothing")
	repo.AssertExpectations(t)
}

func TestRemoveItemRejectsMissingFolder(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	repo.On("GetByUserID", mock.Anything, "u1").Return(emptyWishlist("u1"), nil).Once()

	_, err := uc.RemoveItem(context.Background(), "u1", "missing", "L1", "")
	assert.ErrorIs(t, err, domain.ErrFolderNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRemoveItemMatchesRefAcrossTypes(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	existing := wishlistWith("u1", domain.Folder{
		ID:   "f1",
		Name: "Favorites",
		Items: []domain.WishlistItem{
			{RefID: "X", Type: domain.ItemTypeListing},
			{RefID: "X", Type: domain.ItemTypeExperience},
			{RefID: "Y", Type: domain.ItemTypeListing},
		},
	})
	repo.On("GetByUserID", mock.Anything, "u1").Return(existing, nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	w, err := uc.RemoveItem(context.Background(), "u1", "f1", "X", "")
	require.NoError(t, err)
	require.Len(t, w.Folders[0].Items, 1)
	assert.Equal(t, "Y", w.Folders[0].Items[0].RefID)
}

func TestRemoveItemHonorsTypeDiscriminator(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	existing := wishlistWith("u1", domain.Folder{
		ID:   "f1",
		Name: "Favorites",
		Items: []domain.WishlistItem{
			{RefID: "X", Type: domain.ItemTypeListing},
			{RefID: "X", Type: domain.ItemTypeExperience},
		},
	})
	repo.On("GetByUserID", mock.Anything, "u1").Return(existing, nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	w, err := uc.RemoveItem(context.Background(), "u1", "f1", "X", domain.ItemTypeListing)
	require.NoError(t, err)
	require.Len(t, w.Folders[0].Items, 1)
	assert.Equal(t, domain.ItemTypeExperience, w.Folders[0].Items[0].Type)
}

// --- DeleteFolder ---

func TestDeleteFolderCascadesItems(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	existing := wishlistWith("u1", domain.Folder{
		ID:   "f1",
		Name: "Trip",
		Items: []domain.WishlistItem{
			{RefID: "L1", Type: domain.ItemTypeListing},
			{RefID: "L2", Type: domain.ItemTypeListing},
		},
	})
	repo.On("GetByUserID", mock.Anything, "u1").Return(existing, nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	w, err := uc.DeleteFolder(context.Background(), "u1", "f1")
	require.NoError(t, err)
	assert.Empty(t, w.Folders)
	repo.AssertExpectations(t)
}

func TestDeleteFolderIsIdempotent(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	repo.On("GetByUserID", mock.Anything, "u1").Return(emptyWishlist("u1"), nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	w, err := uc.DeleteFolder(context.Background(), "u1", "never-existed")
	require.NoError(t, err)
	assert.Empty(t, w.Folders)
}

// --- Concurrency: version conflicts ---

func TestMutateRetriesOnVersionConflict(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	// Each attempt reloads a fresh copy of the aggregate.
	repo.On("GetByUserID", mock.Anything, "u1").Return(emptyWishlist("u1"), nil).Once()
	repo.On("GetByUserID", mock.Anything, "u1").Return(emptyWishlist("u1"), nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(domain.ErrWishlistModified).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	w, err := uc.CreateFolder(context.Background(), "u1", "Favorites")
	require.NoError(t, err)
	require.Len(t, w.Folders, 1)
	repo.AssertExpectations(t)
}

func TestMutateSurfacesConflictAfterRetries(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	repo.On("GetByUserID", mock.Anything, "u1").Return(emptyWishlist("u1"), nil).Times(maxWriteAttempts)
	repo.On("Update", mock.Anything, mock.Anything).Return(domain.ErrWishlistModified).Times(maxWriteAttempts)

	_, err := uc.CreateFolder(context.Background(), "u1", "Favorites")
	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertExpectations(t)
}
