package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/rentredi/internal/application/service"
	"github.com/khoahotran/rentredi/internal/domain/location"
	"github.com/khoahotran/rentredi/internal/domain/user"
	"github.com/khoahotran/rentredi/pkg/logger"
)

type CreateUserUseCase struct {
	userRepo  user.Repository
	lookup    location.Lookup
	publisher service.EventPublisher
	logger    logger.Logger
}

func NewCreateUserUseCase(uRepo user.Repository, lookup location.Lookup, pub service.EventPublisher, log logger.Logger) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo:  uRepo,
		lookup:    lookup,
		publisher: pub,
		logger:    log,
	}
}

type CreateUserInput struct {
	Name    string
	ZipCode string
}

type CreateUserOutput struct {
	User user.User
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, input CreateUserInput) (*CreateUserOutput, error) {
	if err := user.ValidateDraft(input.Name, input.ZipCode); err != nil {
		return nil, err
	}

	loc, err := uc.lookup.Lookup(ctx, input.ZipCode)
	if err != nil {
		return nil, err
	}

	created, err := uc.userRepo.Create(ctx, user.Draft{
		Name:     input.Name,
		ZipCode:  input.ZipCode,
		Location: loc,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("User created", zap.String("user_id", created.ID), zap.String("zip_code", created.ZipCode))
	publishAsync(uc.publisher, uc.logger, service.UserEventCreated, created)

	return &CreateUserOutput{User: created}, nil
}
