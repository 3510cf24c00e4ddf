package api

import (
	"fmt"

	"github.com/retrospace/messenger-cli/pkg/client"
	"github.com/retrospace/messenger-cli/pkg/logger"
)

// GetFriends retrieves the local user's friends list
func GetFriends() ([]Friend, error) {
	logger.Debug("Fetching friends list")

	var friends []Friend
	resp, err := client.GetClient().
		R().
		SetResult(&friends).
		Get("/api/friends")

	if err := CheckResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch friends: %w", err)
	}

	return friends, nil
}

// GetFriendRequests retrieves pending incoming friend requests
func GetFriendRequests() ([]FriendRequest, error) {
	logger.Debug("Fetching friend requests")

	var requests []FriendRequest
	resp, err := client.GetClient().
		R().
		SetResult(&requests).
		Get("/api/friends/requests")

	if err := CheckResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch friend requests: %w", err)
	}

	return requests, nil
}
