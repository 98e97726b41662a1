package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"galaxy-cinema-cli/model"
)

// Login exchanges credentials for a bearer token and installs it on the
// client. The backend reports business failures inside a 200 response, so
// isSuccess is checked as well as the status code.
func (c *Client) Login(ctx context.Context, email string, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", errors.New("email and password are required")
	}

	endpoint := fmt.Sprintf("%s/api/Authentication/login-jwt", c.baseURL)
	var res model.LoginResponse
	if err := c.postJSON(ctx, endpoint, model.LoginRequest{Email: email, Password: password}, &res); err != nil {
		return "", err
	}
	if !res.IsSuccess || res.Token == "" {
		if res.Message != "" {
			return "", errors.New(res.Message)
		}
		return "", errors.New("login failed")
	}
	c.SetToken(res.Token)
	return res.Token, nil
}

// Register creates an account. It intentionally does not log in or store
// a token.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) error {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return errors.New("email and password are required")
	}
	endpoint := fmt.Sprintf("%s/api/Authentication/register", c.baseURL)
	var res model.LoginResponse
	if err := c.postJSON(ctx, endpoint, req, &res); err != nil {
		return err
	}
	if !res.IsSuccess {
		if res.Message != "" {
			return errors.New(res.Message)
		}
		return errors.New("registration failed")
	}
	return nil
}

// Profile fetches the authenticated user.
func (c *Client) Profile(ctx context.Context) (model.User, error) {
	endpoint := fmt.Sprintf("%s/api/Authentication/profile", c.baseURL)
	var user model.User
	if err := c.getJSON(ctx, endpoint, &user); err != nil {
		return model.User{}, err
	}
	if user.Id == "" {
		return model.User{}, errors.New("empty profile response")
	}
	return user, nil
}
