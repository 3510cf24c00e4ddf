package api

import (
	"fmt"

	"github.com/retrospace/messenger-cli/pkg/client"
	"github.com/retrospace/messenger-cli/pkg/logger"
)

// GetMessages fetches direct message history. An empty friendID returns
// every message involving the local user; otherwise the history is scoped
// to one conversation partner.
func GetMessages(friendID string) ([]DirectMessage, error) {
	logger.Debug("Fetching messages", "friend_id", friendID)

	var messages []DirectMessage
	req := client.GetClient().
		R().
		SetResult(&messages)

	if friendID != "" {
		req.SetQueryParam("friendId", friendID)
	}

	resp, err := req.Get("/api/messages")
	if err := CheckResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	return messages, nil
}

// SendMessage creates a direct message and returns the canonical record
// with server-assigned id and timestamp
func SendMessage(receiverID, content string, emoticons, customEmoticons []string) (*DirectMessage, error) {
	logger.Debug("Sending message", "receiver_id", receiverID)

	req := SendMessageRequest{
		ReceiverID:      receiverID,
		Content:         content,
		Emoticons:       emoticons,
		CustomEmoticons: customEmoticons,
	}

	var message DirectMessage
	resp, err := client.GetClient().
		R().
		SetBody(req).
		SetResult(&message).
		Post("/api/messages")

	if err := CheckResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	return &message, nil
}

// MarkMessagesRead marks every message from a friend as read
func MarkMessagesRead(friendID string) error {
	logger.Debug("Marking messages as read", "friend_id", friendID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/api/messages/%s/read", friendID))

	if err := CheckResponse(resp, err); err != nil {
		return fmt.Errorf("failed to mark messages as read: %w", err)
	}

	return nil
}

// GetUnreadMessageCount gets the count of unread messages
func GetUnreadMessageCount() (int, error) {
	logger.Debug("Fetching unread message count")

	var response struct {
		UnreadCount int `json:"unreadCount"`
	}

	resp, err := client.GetClient().
		R().
		SetResult(&response).
		Get("/api/messages/unread-count")

	if err := CheckResponse(resp, err); err != nil {
		return 0, fmt.Errorf("failed to fetch unread count: %w", err)
	}

	return response.UnreadCount, nil
}
