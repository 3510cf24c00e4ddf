package client

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/retrospace/messenger-cli/pkg/config"
	"github.com/retrospace/messenger-cli/pkg/logger"
)

var httpClient *resty.Client

// Init initializes the HTTP client
func Init() {
	httpClient = resty.New()

	baseURL := config.GetString("api.base_url")
	timeout := time.Duration(config.GetInt("api.timeout")) * time.Second

	httpClient.SetBaseURL(baseURL)
	httpClient.SetTimeout(timeout)
	httpClient.SetHeader("User-Agent", "Retrospace-Messenger/0.1.0")

	httpClient.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL)
		return nil
	})

	httpClient.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response", "status", resp.StatusCode())
		return nil
	})
}

// GetClient returns the HTTP client
func GetClient() *resty.Client {
	if httpClient == nil {
		Init()
	}
	return httpClient
}

// SetBaseURL overrides the configured API base URL
func SetBaseURL(baseURL string) {
	if httpClient == nil {
		Init()
	}
	httpClient.SetBaseURL(baseURL)
}

// SetAuthToken sets the authorization token
func SetAuthToken(token string) {
	if httpClient == nil {
		Init()
	}
	httpClient.SetHeader("Authorization", "Bearer "+token)
}

// ClearAuthToken clears the authorization token
func ClearAuthToken() {
	// Re-init the client to clear auth headers
	httpClient = resty.New()
	baseURL := config.GetString("api.base_url")
	timeout := time.Duration(config.GetInt("api.timeout")) * time.Second
	httpClient.SetBaseURL(baseURL)
	httpClient.SetTimeout(timeout)
	httpClient.SetHeader("User-Agent", "Retrospace-Messenger/0.1.0")
}
