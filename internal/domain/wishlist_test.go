package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemTypeIsActive(t *testing.T) {
	assert.True(t, ItemTypeListing.IsActive())
	assert.True(t, ItemTypeExperience.IsActive())
	assert.False(t, ItemTypeService.IsActive(), "service is reserved, not yet bookable")
	assert.False(t, ItemType("bogus").IsActive())
	assert.False(t, ItemType("").IsActive())
}

func TestFolderContains(t *testing.T) {
	f := Folder{Items: []WishlistItem{
		{RefID: "L1", Type: ItemTypeListing},
		{RefID: "E1", Type: ItemTypeExperience},
	}}

	assert.True(t, f.Contains("L1", ItemTypeListing))
	assert.False(t, f.Contains("L1", ItemTypeExperience), "same ref, different type is a different item")
	assert.False(t, f.Contains("L2", ItemTypeListing))
}

func TestFolderRemoveItems(t *testing.T) {
	newFolder := func() Folder {
		return Folder{Items: []WishlistItem{
			{RefID: "X", Type: ItemTypeListing},
			{RefID: "X", Type: ItemTypeExperience},
			{RefID: "Y", Type: ItemTypeListing},
		}}
	}

	t.Run("by ref across types", func(t *testing.T) {
		f := newFolder()
		removed := f.RemoveItems("X", "")
		assert.Equal(t, 2, removed)
		require.Len(t, f.Items, 1)
		assert.Equal(t, "Y", f.Items[0].RefID)
	})

	t.Run("narrowed by type", func(t *testing.T) {
		f := newFolder()
		removed := f.RemoveItems("X", ItemTypeExperience)
		assert.Equal(t, 1, removed)
		require.Len(t, f.Items, 2)
		assert.True(t, f.Contains("X", ItemTypeListing))
		assert.False(t, f.Contains("X", ItemTypeExperience))
	})

	t.Run("no match is a no-op", func(t *testing.T) {
		f := newFolder()
		removed := f.RemoveItems("Z", "")
		assert.Equal(t, 0, removed)
		assert.Len(t, f.Items, 3)
	})
}

func TestWishlistFolders(t *testing.T) {
	w := Wishlist{UserID: "u1"}

	first := w.AddFolder("Favorites")
	second := w.AddFolder("Favorites") // duplicate names are allowed

	require.Len(t, w.Folders, 2)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotNil(t, first.Items, "new folders serialize as [] not null")

	assert.Equal(t, first.ID, w.FolderByID(first.ID).ID)
	assert.Nil(t, w.FolderByID("missing"))

	assert.True(t, w.RemoveFolder(first.ID))
	assert.False(t, w.RemoveFolder(first.ID), "second delete finds nothing")
	require.Len(t, w.Folders, 1)
	assert.Equal(t, second.ID, w.Folders[0].ID)
}

func TestWishlistFolderOrder(t *testing.T) {
	w := Wishlist{UserID: "u1"}
	for _, name := range []string{"a", "b", "c"} {
		w.AddFolder(name)
	}

	require.Len(t, w.Folders, 3)
	assert.Equal(t, "a", w.Folders[0].Name)
	assert.Equal(t, "b", w.Folders[1].Name)
	assert.Equal(t, "c", w.Folders[2].Name)
}
