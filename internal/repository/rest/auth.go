package rest

import (
	"context"
	"fmt"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/log"
)

// AuthRepository implements credential exchange and profile lookup against
// the token and profile endpoints.
type AuthRepository struct {
	client *Client
}

func NewAuthRepository(client *Client) domain.AuthRepository {
	return &AuthRepository{client: client}
}

func (r *AuthRepository) Token(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	var tokens domain.TokenPair

	resp, err := r.client.request().
		SetContext(ctx).
		SetBody(map[string]string{
			"username": username,
			"password": password,
		}).
		SetResult(&tokens).
		Post("/api/token/")
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("credential exchange failed: %w", err)
	}

	return &tokens, nil
}

func (r *AuthRepository) Register(ctx context.Context, username, email, password string) error {
	resp, err := r.client.request().
		SetContext(ctx).
		SetBody(map[string]string{
			"username": username,
			"email":    email,
			"password": password,
		}).
		Post("/api/register/")
	if err := r.client.check(resp, err); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	log.Info("Registered new account", "username", username)
	return nil
}

func (r *AuthRepository) Profile(ctx context.Context) (*domain.User, error) {
	var user domain.User

	resp, err := r.client.request().
		SetContext(ctx).
		SetResult(&user).
		Get("/api/profile/")
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	log.Info("Fetched user profile", "id", user.ID, "username", user.Username)
	return &user, nil
}
