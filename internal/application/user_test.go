package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"dlsdk-demos/internal/domain/entity"
	"dlsdk-demos/internal/infrastructure/storage"
)

func TestUserService_BeginCheckAndCancel(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.BeginCheck(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)

	user, err = svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}

func TestUserService_SetState(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.SetState(ctx, 2, 20, entity.StateProcessing)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, user.State)
}

func TestUserService_SelectTask(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.SelectTask(ctx, 3, 30, entity.TaskOCR)
	require.NoError(t, err)
	require.Equal(t, entity.TaskOCR, user.Task)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)

	again, err := svc.Get(ctx, 3, 30)
	require.NoError(t, err)
	require.Equal(t, entity.TaskOCR, again.Task)
}
