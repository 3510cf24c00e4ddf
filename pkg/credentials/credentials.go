package credentials

import (
	"encoding/json"
	"os"
	"time"

	"github.com/retrospace/messenger-cli/pkg/config"
)

// expirySlack treats a token as expired slightly early, so a send or
// socket dial does not race the real expiry mid-request
const expirySlack = time.Minute

// Credentials is the on-disk session for one Retrospace account
type Credentials struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	SavedAt      time.Time `json:"saved_at"`
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
}

// Load loads credentials from disk
func Load() (*Credentials, error) {
	path := config.GetCredentialsPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Credentials don't exist yet
		}
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}

	return &creds, nil
}

// Save saves credentials to disk
func Save(creds *Credentials) error {
	path := config.GetCredentialsPath()

	creds.SavedAt = time.Now()
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	// Owner read/write only
	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}

	return nil
}

// Delete deletes credentials from disk
func Delete() error {
	path := config.GetCredentialsPath()
	return os.Remove(path)
}

// IsExpired reports whether the access token is expired, counting
// tokens inside the refresh slack as already expired
func (c *Credentials) IsExpired() bool {
	return time.Now().After(c.ExpiresAt.Add(-expirySlack))
}

// IsValid checks if credentials are usable for a session
func (c *Credentials) IsValid() bool {
	return c.AccessToken != "" && !c.IsExpired()
}
