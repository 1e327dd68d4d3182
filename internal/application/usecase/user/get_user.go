package user

import (
	"context"

	"github.com/khoahotran/rentredi/internal/domain/user"
)

type GetUserUseCase struct {
	userRepo user.Repository
}

func NewGetUserUseCase(uRepo user.Repository) *GetUserUseCase {
	return &GetUserUseCase{userRepo: uRepo}
}

type GetUserInput struct {
	UserID string
}

// GetUserOutput.Found is false when no user has the requested id.
type GetUserOutput struct {
	User  user.User
	Found bool
}

func (uc *GetUserUseCase) Execute(ctx context.Context, input GetUserInput) (*GetUserOutput, error) {
	u, found, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetUserOutput{User: u, Found: found}, nil
}
