package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/rentredi/internal/application/service"
	"github.com/khoahotran/rentredi/internal/domain/user"
	"github.com/khoahotran/rentredi/pkg/logger"
)

type DeleteUserUseCase struct {
	userRepo  user.Repository
	publisher service.EventPublisher
	logger    logger.Logger
}

func NewDeleteUserUseCase(uRepo user.Repository, pub service.EventPublisher, log logger.Logger) *DeleteUserUseCase {
	return &DeleteUserUseCase{userRepo: uRepo, publisher: pub, logger: log}
}

type DeleteUserInput struct {
	UserID string
}

type DeleteUserOutput struct {
	Deleted bool
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, input DeleteUserInput) (*DeleteUserOutput, error) {
	deleted, err := uc.userRepo.Delete(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if deleted {
		uc.logger.Info("User deleted", zap.String("user_id", input.UserID))
		publishAsync(uc.publisher, uc.logger, service.UserEventDeleted, user.User{ID: input.UserID})
	}
	return &DeleteUserOutput{Deleted: deleted}, nil
}
