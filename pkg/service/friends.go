package service

import (
	"fmt"

	"github.com/retrospace/messenger-cli/pkg/api"
	"github.com/retrospace/messenger-cli/pkg/logger"
	"github.com/retrospace/messenger-cli/pkg/output"
)

// FriendService lists friends and pending requests
type FriendService struct{}

// NewFriendService creates a new friend service
func NewFriendService() *FriendService {
	return &FriendService{}
}

// ListFriends displays the friends list with presence
func (fs *FriendService) ListFriends() error {
	logger.Debug("Listing friends")

	friends, err := api.GetFriends()
	if err != nil {
		return err
	}

	if len(friends) == 0 {
		fmt.Println("No friends yet.")
		return nil
	}

	rows := make([][]string, 0, len(friends))
	for _, f := range friends {
		online := "offline"
		if f.IsOnline {
			online = "online"
		}
		rows = append(rows, []string{f.Username, f.DisplayName, online, f.StatusMessage})
	}

	output.PrintTable([]string{"Username", "Name", "Status", "Mood"}, rows)
	return nil
}

// ListRequests displays pending incoming friend requests
func (fs *FriendService) ListRequests() error {
	logger.Debug("Listing friend requests")

	requests, err := api.GetFriendRequests()
	if err != nil {
		return err
	}

	if len(requests) == 0 {
		fmt.Println("No pending friend requests.")
		return nil
	}

	rows := make([][]string, 0, len(requests))
	for _, r := range requests {
		rows = append(rows, []string{r.From.Username, r.Message, r.CreatedAt.Format("2006-01-02")})
	}

	output.PrintTable([]string{"From", "Message", "Sent"}, rows)
	return nil
}

// FindFriend resolves a username to a friend record
func (fs *FriendService) FindFriend(username string) (*api.Friend, error) {
	friends, err := api.GetFriends()
	if err != nil {
		return nil, err
	}

	for i := range friends {
		if friends[i].Username == username {
			return &friends[i], nil
		}
	}

	return nil, fmt.Errorf("'%s' is not in your friends list", username)
}
