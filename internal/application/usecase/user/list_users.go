package user

import (
	"context"

	"github.com/khoahotran/rentredi/internal/domain/user"
)

type ListUsersUseCase struct {
	userRepo user.Repository
}

func NewListUsersUseCase(uRepo user.Repository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: uRepo}
}

type ListUsersOutput struct {
	Users []user.User
}

// Execute returns every stored user. Ordering and filtering belong to the caller.
func (uc *ListUsersUseCase) Execute(ctx context.Context) (*ListUsersOutput, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []user.User{}
	}
	return &ListUsersOutput{Users: users}, nil
}
