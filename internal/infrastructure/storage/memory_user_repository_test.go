package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"dlsdk-demos/internal/domain/entity"
)

func TestMemoryUserRepository_GetCreatesUser(t *testing.T) {
	repo := NewMemoryUserRepository()
	user, err := repo.Get(context.Background(), 7, 70)
	require.NoError(t, err)
	require.Equal(t, int64(70), user.ChatID)
	require.Equal(t, entity.StateMainMenu, user.State)
	require.Equal(t, entity.TaskObjectDetection, user.Task)
}

func TestMemoryUserRepository_ChangesNeedSave(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.Get(ctx, 1, 1)
	require.NoError(t, err)
	user.SetTask(entity.TaskOCR)

	again, err := repo.Get(ctx, 1, 1)
	require.NoError(t, err)
	require.Equal(t, entity.TaskObjectDetection, again.Task)

	require.NoError(t, repo.Save(ctx, user))
	again, err = repo.Get(ctx, 1, 1)
	require.NoError(t, err)
	require.Equal(t, entity.TaskOCR, again.Task)
}

func TestMemoryUserRepository_UpdateState(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.UpdateState(ctx, 5, entity.StateProcessing))
	user, err := repo.Get(ctx, 5, 50)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State, "unknown user is created fresh")

	require.NoError(t, repo.UpdateState(ctx, 5, entity.StateProcessing))
	user, err = repo.Get(ctx, 5, 50)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, user.State)
}
