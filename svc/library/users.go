package library

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Authenticate exchanges an email and password for a token. Any non-2xx
// answer is ErrAuthenticationFailed; transport failures stay *RemoteError.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*Credentials, error) {
	in := map[string]string{"email": email, "password": password}

	var resp tokenResponse
	if err := c.do(ctx, "authenticate", http.MethodPost, "/token", nil, "", in, &resp); err != nil {
		var rerr *RemoteError
		if errors.As(err, &rerr) && rerr.Status != 0 {
			return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
		}
		return nil, err
	}
	if resp.TokenKey == "" || resp.User.ID == 0 {
		return nil, fmt.Errorf("%w: incomplete token response", ErrAuthenticationFailed)
	}

	return &Credentials{
		Token:     resp.TokenKey,
		UserID:    resp.User.ID,
		FirstName: resp.User.FirstName,
	}, nil
}

func (c *Client) GetUser(ctx context.Context, token string, id int) (*User, error) {
	var u User
	if err := c.do(ctx, "get_user", http.MethodGet, itemPath("users", id), nil, token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) CreateUser(ctx context.Context, token string, in UserInput) (*User, error) {
	var u User
	if err := c.do(ctx, "create_user", http.MethodPost, "/users", nil, token, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, token string, id int, in UserInput) (*User, error) {
	var u User
	if err := c.do(ctx, "update_user", http.MethodPut, itemPath("users", id), nil, token, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DeleteUser(ctx context.Context, token string, id int) error {
	return c.do(ctx, "delete_user", http.MethodDelete, itemPath("users", id), nil, token, nil, nil)
}
