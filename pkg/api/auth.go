package api

import (
	json "github.com/json-iterator/go"
	"github.com/retrospace/messenger-cli/pkg/client"
	"github.com/retrospace/messenger-cli/pkg/logger"
)

// Login authenticates user with email and password
func Login(email, password string) (*LoginResponse, error) {
	logger.Debug("Attempting login", "email", email)

	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/api/auth/login")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var loginResp LoginResponse
	if err := json.Unmarshal(resp.Body(), &loginResp); err != nil {
		return nil, err
	}

	logger.Debug("Login successful", "username", loginResp.User.Username)
	return &loginResp, nil
}

// Refresh refreshes the access token using refresh token
func Refresh(refreshToken string) (*RefreshResponse, error) {
	logger.Debug("Refreshing access token")

	req := RefreshRequest{
		RefreshToken: refreshToken,
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/api/auth/refresh")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var refreshResp RefreshResponse
	if err := json.Unmarshal(resp.Body(), &refreshResp); err != nil {
		return nil, err
	}

	return &refreshResp, nil
}

// Logout invalidates the current session server-side
func Logout() error {
	logger.Debug("Logging out")

	resp, err := client.GetClient().
		R().
		Post("/api/auth/logout")

	return CheckResponse(resp, err)
}

// GetCurrentUser fetches the authenticated user's profile
func GetCurrentUser() (*User, error) {
	logger.Debug("Fetching current user")

	var user User
	resp, err := client.GetClient().
		R().
		SetResult(&user).
		Get("/api/auth/me")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return &user, nil
}
