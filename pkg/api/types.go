package api

import "time"

// Auth request/response types
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
	User         User   `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

// User is a platform account as seen by the messaging client
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"displayName"`
	ProfilePicture string    `json:"profilePicture"`
	StatusMessage  string    `json:"statusMessage"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Friend is a confirmed connection, with live presence fields filled in
// from the push channel when available
type Friend struct {
	User
	IsOnline bool   `json:"isOnline"`
	LastSeen *int64 `json:"lastSeen,omitempty"` // epoch ms
}

// FriendRequest is a pending incoming friend request
type FriendRequest struct {
	ID        string    `json:"id"`
	From      User      `json:"from"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DirectMessage is one message between the local user and a friend.
// Immutable once created except IsRead.
type DirectMessage struct {
	ID              string   `json:"id"`
	SenderID        string   `json:"senderId"`
	ReceiverID      string   `json:"receiverId"`
	Content         string   `json:"content"`
	Emoticons       []string `json:"emoticons"`       // built-in emoticon IDs
	CustomEmoticons []string `json:"customEmoticons"` // custom emoticon IDs
	Timestamp       int64    `json:"timestamp"`       // epoch ms
	IsRead          bool     `json:"isRead"`
}

// Time returns the message timestamp as a time.Time
func (m DirectMessage) Time() time.Time {
	return time.UnixMilli(m.Timestamp)
}

// SendMessageRequest is the body of POST /api/messages
type SendMessageRequest struct {
	ReceiverID      string   `json:"receiverId"`
	Content         string   `json:"content"`
	Emoticons       []string `json:"emoticons"`
	CustomEmoticons []string `json:"customEmoticons"`
}

// ErrorResponse is the backend's error envelope
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
