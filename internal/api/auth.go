package api

import (
	"context"
	"net/url"

	"github.com/noah-isme/classboard/internal/models"
)

// RegisterRequest is the JSON payload for account creation.
type RegisterRequest struct {
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,min=8"`
	FirstName string      `json:"first_name" validate:"required"`
	LastName  string      `json:"last_name" validate:"required"`
	Role      models.Role `json:"role" validate:"required,oneof=student teacher"`
}

// Login exchanges credentials for a token pair. The endpoint takes a
// form-encoded body with a username field carrying the email.
func (c *Client) Login(ctx context.Context, email, password string) (models.TokenPair, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var pair models.TokenPair
	if err := c.sendForm(ctx, "/auth/login", form, &pair); err != nil {
		return models.TokenPair{}, err
	}
	return pair, nil
}

// Register creates an account and returns the created user. It does not
// log the user in; callers follow up with Login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (models.User, error) {
	var user models.User
	if err := c.sendJSON(ctx, "POST", "/auth/register", req, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Me resolves the user behind the current bearer token.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	if err := c.getJSON(ctx, "/auth/me", nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
