package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/rentredi/internal/application/service"
	"github.com/khoahotran/rentredi/internal/domain/location"
	"github.com/khoahotran/rentredi/internal/domain/user"
	"github.com/khoahotran/rentredi/pkg/logger"
)

type UpdateUserUseCase struct {
	userRepo  user.Repository
	lookup    location.Lookup
	publisher service.EventPublisher
	logger    logger.Logger
}

func NewUpdateUserUseCase(uRepo user.Repository, lookup location.Lookup, pub service.EventPublisher, log logger.Logger) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo:  uRepo,
		lookup:    lookup,
		publisher: pub,
		logger:    log,
	}
}

// UpdateUserInput fields left empty are not changed.
type UpdateUserInput struct {
	UserID  string
	Name    string
	ZipCode string
}

type UpdateUserOutput struct {
	User  user.User
	Found bool
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, input UpdateUserInput) (*UpdateUserOutput, error) {
	current, found, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if !found {
		return &UpdateUserOutput{Found: false}, nil
	}

	var patch user.Patch
	if input.Name != "" {
		name := input.Name
		patch.Name = &name
	}

	// Geo data is refreshed only when the zip code actually changes.
	if input.ZipCode != "" && input.ZipCode != current.ZipCode {
		loc, err := uc.lookup.Lookup(ctx, input.ZipCode)
		if err != nil {
			return nil, err
		}
		zip := input.ZipCode
		patch.ZipCode = &zip
		patch.Location = &loc
	}

	if patch.IsEmpty() {
		patch = user.PatchFrom(current)
	}

	updated, found, err := uc.userRepo.Update(ctx, input.UserID, patch)
	if err != nil {
		return nil, err
	}
	if !found {
		// Deleted between the read and the write.
		return &UpdateUserOutput{Found: false}, nil
	}

	uc.logger.Info("User updated", zap.String("user_id", updated.ID), zap.Bool("relocated", patch.Location != nil))
	publishAsync(uc.publisher, uc.logger, service.UserEventUpdated, updated)

	return &UpdateUserOutput{User: updated, Found: true}, nil
}
