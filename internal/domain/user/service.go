package user

import "context"

type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Get(ctx context.Context, id int64) (UserResponse, error)
	List(ctx context.Context, filter UserFilter) ([]UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	Deactivate(ctx context.Context, id int64) error

	// SeedAdmin creates an Admin account when no users exist yet.
	SeedAdmin(ctx context.Context, req CreateUserRequest) (bool, error)
}
