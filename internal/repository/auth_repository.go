package repository

import (
	"context"

	"example.com/taskdesk/internal/domain"
)

type AuthRepository interface {
	Login(ctx context.Context, username, password string) (domain.AuthResult, error)
	Signup(ctx context.Context, creds domain.Credentials) (domain.AuthResult, error)
	Logout(ctx context.Context) error
}
