package backend

import (
	"context"
	"net/url"

	"github.com/caffeinepub/e-commerce-web-application-25/internal/domain"
)

// GetCallerProfile returns the calling user's profile, or nil when none has
// been saved yet.
func (c *Client) GetCallerProfile(ctx context.Context) (*domain.UserProfile, error) {
	var profile *domain.UserProfile
	if err := c.get(ctx, "/users/me/profile", nil, &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SaveCallerProfile stores the calling user's profile.
func (c *Client) SaveCallerProfile(ctx context.Context, input domain.ProfileInput) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.put(ctx, "/users/me/profile", input, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetCallerRole returns the calling user's role. Unauthenticated callers
// are guests; the backend decides admin membership.
func (c *Client) GetCallerRole(ctx context.Context) (domain.UserRole, error) {
	var role domain.UserRole
	if err := c.get(ctx, "/users/me/role", nil, &role); err != nil {
		return "", err
	}
	return role, nil
}

// GetProfile returns another user's profile by principal. Admin only.
func (c *Client) GetProfile(ctx context.Context, principal string) (*domain.UserProfile, error) {
	var profile *domain.UserProfile
	if err := c.get(ctx, "/users/"+url.PathEscape(principal)+"/profile", nil, &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AssignRole grants a role to a user. Admin only.
func (c *Client) AssignRole(ctx context.Context, principal string, role domain.UserRole) error {
	body := map[string]string{"role": string(role)}
	return c.put(ctx, "/users/"+url.PathEscape(principal)+"/role", body, nil)
}
