package rest

import (
	"context"
	"fmt"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/log"
)

// AdminRepository covers the staff-only endpoints.  The backend enforces the
// permission checks; a non-staff token gets a 403 back.
type AdminRepository struct {
	client *Client
}

func NewAdminRepository(client *Client) domain.AdminRepository {
	return &AdminRepository{client: client}
}

func (r *AdminRepository) Users(ctx context.Context) ([]domain.User, error) {
	resp, err := r.client.request().SetContext(ctx).Get("/api/admin/users/")
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return decodeList[domain.User](resp.Body())
}

func (r *AdminRepository) DeleteUser(ctx context.Context, id int) error {
	resp, err := r.client.request().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/admin/users/%d/", id))
	if err := r.client.check(resp, err); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}

	log.Info("Deleted user", "id", id)
	return nil
}

func (r *AdminRepository) ResetPassword(ctx context.Context, id int, newPassword string) error {
	resp, err := r.client.request().
		SetContext(ctx).
		SetBody(map[string]string{"new_password": newPassword}).
		Post(fmt.Sprintf("/api/admin/users/%d/reset_password/", id))
	if err := r.client.check(resp, err); err != nil {
		return fmt.Errorf("failed to reset password for user %d: %w", id, err)
	}

	log.Info("Reset user password", "id", id)
	return nil
}

func (r *AdminRepository) Analytics(ctx context.Context) (*domain.Analytics, error) {
	var analytics domain.Analytics

	resp, err := r.client.request().
		SetContext(ctx).
		SetResult(&analytics).
		Get("/api/analytics/")
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch analytics: %w", err)
	}

	return &analytics, nil
}
