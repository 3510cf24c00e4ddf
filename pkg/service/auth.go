package service

import (
	"fmt"
	"time"

	"github.com/retrospace/messenger-cli/pkg/api"
	"github.com/retrospace/messenger-cli/pkg/client"
	"github.com/retrospace/messenger-cli/pkg/credentials"
	"github.com/retrospace/messenger-cli/pkg/errors"
	"github.com/retrospace/messenger-cli/pkg/logger"
	"github.com/retrospace/messenger-cli/pkg/output"
	"github.com/retrospace/messenger-cli/pkg/prompter"
)

// AuthService handles session login/logout for the messenger
type AuthService struct{}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	return &AuthService{}
}

// Login prompts for credentials and stores the session token
func (as *AuthService) Login(email string) error {
	if email == "" {
		var err error
		email, err = prompter.PromptString("Email: ")
		if err != nil {
			return err
		}
	}

	password, err := prompter.PromptPassword("Password: ")
	if err != nil {
		return err
	}

	resp, err := api.Login(email, password)
	if err != nil {
		logger.Error("Login failed", "error", err)
		return errors.AuthError("Invalid email or password")
	}

	creds := &credentials.Credentials{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
		UserID:       resp.User.ID,
		Username:     resp.User.Username,
		Email:        email,
	}

	if err := credentials.Save(creds); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	client.SetAuthToken(resp.AccessToken)
	output.PrintSuccess("Logged in as @%s", resp.User.Username)
	return nil
}

// Logout clears the stored session
func (as *AuthService) Logout() error {
	if err := api.Logout(); err != nil {
		// Server-side logout is best effort; always clear local state
		logger.Debug("Server logout failed", "error", err)
	}

	if err := credentials.Delete(); err != nil {
		logger.Debug("Failed to delete credentials", "error", err)
	}

	client.ClearAuthToken()
	output.PrintSuccess("Logged out")
	return nil
}

// RequireSession loads stored credentials, refreshing the token when
// expired, and returns the authenticated user
func (as *AuthService) RequireSession() (*api.User, error) {
	creds, err := credentials.Load()
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, errors.AuthError("Not logged in")
	}

	if creds.IsExpired() && creds.RefreshToken != "" {
		refreshed, err := api.Refresh(creds.RefreshToken)
		if err != nil {
			return nil, errors.SessionExpiredError()
		}
		creds.AccessToken = refreshed.AccessToken
		creds.ExpiresAt = time.Now().Add(time.Duration(refreshed.ExpiresIn) * time.Second)
		if err := credentials.Save(creds); err != nil {
			logger.Debug("Failed to persist refreshed token", "error", err)
		}
	}

	client.SetAuthToken(creds.AccessToken)

	user, err := api.GetCurrentUser()
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Token returns the current access token, if logged in
func (as *AuthService) Token() (string, error) {
	creds, err := credentials.Load()
	if err != nil {
		return "", err
	}
	if creds == nil || !creds.IsValid() {
		return "", errors.AuthError("Not logged in")
	}
	return creds.AccessToken, nil
}
