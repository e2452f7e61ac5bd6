package port

import (
	"context"

	"dlsdk-demos/internal/domain/entity"
)

// UserRepository хранилище состояний диалога с пользователями бота
type UserRepository interface {
	// Get возвращает копию пользователя по ID, нового создаёт в главном меню
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет состояние и выбранную задачу
	Save(ctx context.Context, user *entity.User) error

	// UpdateState меняет только состояние диалога
	UpdateState(ctx context.Context, userID int64, state entity.UserState) error
}
