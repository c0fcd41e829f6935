package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radyosim/backend/internal/domain/providers"
)

func TestMemoryAdapter_MissingKeyIsNotAnError(t *testing.T) {
	store := NewMemoryAdapter()

	value, ok, err := store.Get(context.Background(), providers.SettingProvider)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestMemoryAdapter_SetGetDelete(t *testing.T) {
	store := NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, providers.SettingModel, "gpt-4o-audio-preview"))

	value, ok, err := store.Get(ctx, providers.SettingModel)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "gpt-4o-audio-preview", value)

	require.NoError(t, store.Delete(ctx, providers.SettingModel))

	_, ok, err = store.Get(ctx, providers.SettingModel)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryAdapter_OverwriteReplacesValue(t *testing.T) {
	store := NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, providers.SettingProvider, "openai"))
	require.NoError(t, store.Set(ctx, providers.SettingProvider, "gemini"))

	value, ok, err := store.Get(ctx, providers.SettingProvider)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "gemini", value)
}
