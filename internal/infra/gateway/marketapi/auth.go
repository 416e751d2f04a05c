package marketapi

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// verifyTimeout bounds the member-verification call. This is the only
// deadline the client enforces; every other path runs without one.
const verifyTimeout = 5 * time.Second

// Member is the authenticated member identity returned by the backend
type Member struct {
	ID    int64  `json:"memberId"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// CreateAccountRequest is the registration payload
type CreateAccountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Login authenticates a member with email and password
func (c *Client) Login(ctx context.Context, email, password string) (Member, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var member Member
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &member); err != nil {
		return Member{}, fmt.Errorf("Login failed: %w", err)
	}
	return member, nil
}

// CreateAccount registers a new member
func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) error {
	if err := c.do(ctx, http.MethodPost, "/api/members", nil, req, nil); err != nil {
		return fmt.Errorf("CreateAccount failed: %w", err)
	}
	return nil
}

// VerifyMember checks that a member with the given name owns the given
// email and returns the member ID. The call races against verifyTimeout:
// if the backend does not answer in time the result is a no-response error.
func (c *Client) VerifyMember(ctx context.Context, name, email string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	body := map[string]string{
		"name":  name,
		"email": email,
	}

	var out struct {
		MemberID int64 `json:"memberId"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/members/verify", nil, body, &out); err != nil {
		return 0, fmt.Errorf("VerifyMember failed: %w", err)
	}
	return out.MemberID, nil
}

// UpdatePassword sets a new password for a previously verified member
func (c *Client) UpdatePassword(ctx context.Context, memberID int64, newPassword string) error {
	body := map[string]string{
		"newPassword": newPassword,
	}

	path := fmt.Sprintf("/api/members/%d/password", memberID)
	if err := c.do(ctx, http.MethodPut, path, nil, body, nil); err != nil {
		return fmt.Errorf("UpdatePassword failed: %w", err)
	}
	return nil
}
