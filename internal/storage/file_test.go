package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
)

func TestFileStorePersists(t *testing.T) {
	dir := t.TempDir()
	log := logger.New(logger.LevelOff, nil)
	ctx := context.Background()

	store, err := OpenFileStore(dir, log)
	require.NoError(t, err)

	list := domain.ShoppingList{Ingredients: []string{"onions", "ghee"}, Meals: []string{"Dal Tadka"}}
	require.NoError(t, store.Set(ctx, KeySavedShoppingList, list))
	require.NoError(t, store.Set(ctx, KeyCurrentMealPlanID, 7))

	reopened, err := OpenFileStore(dir, log)
	require.NoError(t, err)

	var got domain.ShoppingList
	require.NoError(t, reopened.Get(ctx, KeySavedShoppingList, &got))
	assert.Equal(t, list.Ingredients, got.Ingredients)
	assert.Equal(t, list.Meals, got.Meals)

	var id int
	require.NoError(t, reopened.Get(ctx, KeyCurrentMealPlanID, &id))
	assert.Equal(t, 7, id)

	require.NoError(t, reopened.Delete(ctx, KeyCurrentMealPlanID))
	again, err := OpenFileStore(dir, log)
	require.NoError(t, err)
	assert.ErrorIs(t, again.Get(ctx, KeyCurrentMealPlanID, &id), domain.ErrNotFound)

	keys, err := again.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{KeySavedShoppingList}, keys)
}

func TestFileStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store, err := OpenFileStore(dir, logger.New(logger.LevelOff, nil))
	require.NoError(t, err)

	require.NoError(t, store.Set(context.Background(), KeyUserEmail, "a@b.c"))
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestFileStoreRejectsCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{not json"), 0o644))

	_, err := OpenFileStore(dir, logger.New(logger.LevelOff, nil))
	assert.Error(t, err)
}

func TestFileStoreEmptyDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("\n"), 0o644))

	store, err := OpenFileStore(dir, logger.New(logger.LevelOff, nil))
	require.NoError(t, err)
	keys, err := store.Keys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}
