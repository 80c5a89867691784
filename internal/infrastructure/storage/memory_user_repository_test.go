package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"waterseg-bot/internal/domain/entity"
	"waterseg-bot/internal/domain/port"
)

func TestMemoryUserRepository_GetCreates(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.Get(ctx, 7, 70)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
	require.Equal(t, int64(70), user.ChatID)
}

func TestMemoryUserRepository_SaveAndUpdate(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.ErrorIs(t, repo.UpdateState(ctx, 1, entity.StateProcessing), port.ErrUserNotFound)

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)

	// изменения копии не видны без Save
	user.SetState(entity.StateAwaitingRaster)
	stored, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, stored.State)

	require.NoError(t, repo.Save(ctx, user))
	stored, err = repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingRaster, stored.State)

	require.NoError(t, repo.UpdateState(ctx, 1, entity.StateProcessing))
	stored, err = repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, stored.State)
}
