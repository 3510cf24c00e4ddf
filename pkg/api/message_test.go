package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/retrospace/messenger-cli/pkg/client"
)

func TestGetMessages_ScopedByFriend(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/messages" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("friendId"); got != "friend-1" {
			t.Errorf("friendId should be friend-1, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]DirectMessage{
			{ID: "m1", SenderID: "friend-1", ReceiverID: "me", Content: "hi", Timestamp: 100},
		})
	}))
	defer ts.Close()
	client.SetBaseURL(ts.URL)

	messages, err := GetMessages("friend-1")
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(messages) != 1 || messages[0].ID != "m1" {
		t.Errorf("Unexpected messages: %+v", messages)
	}
}

func TestGetMessages_FullHistoryOmitsParam(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("friendId") {
			t.Error("friendId must be omitted for a full history fetch")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]DirectMessage{})
	}))
	defer ts.Close()
	client.SetBaseURL(ts.URL)

	if _, err := GetMessages(""); err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
}

func TestSendMessage_PostsBodyAndReturnsCanonical(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/messages" {
			t.Errorf("Expected POST /api/messages, got %s %s", r.Method, r.URL.Path)
		}

		var req SendMessageRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.ReceiverID != "friend-1" || req.Content != "hello :)" {
			t.Errorf("Unexpected request body: %+v", req)
		}
		if len(req.Emoticons) != 1 || req.Emoticons[0] != "em-1" {
			t.Errorf("Unexpected emoticons: %v", req.Emoticons)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(DirectMessage{
			ID:         "server-1",
			SenderID:   "me",
			ReceiverID: req.ReceiverID,
			Content:    req.Content,
			Emoticons:  req.Emoticons,
			Timestamp:  4242,
		})
	}))
	defer ts.Close()
	client.SetBaseURL(ts.URL)

	msg, err := SendMessage("friend-1", "hello :)", []string{"em-1"}, nil)
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if msg.ID != "server-1" || msg.Timestamp != 4242 {
		t.Errorf("Should return the canonical server record, got %+v", msg)
	}
}

func TestSendMessage_ErrorResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Code: "invalid_receiver", Message: "no such user"})
	}))
	defer ts.Close()
	client.SetBaseURL(ts.URL)

	_, err := SendMessage("nobody", "hi", nil, nil)
	if err == nil {
		t.Fatal("Expected an error for 400 response")
	}
}

func TestGetUnreadMessageCount(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"unreadCount": 3})
	}))
	defer ts.Close()
	client.SetBaseURL(ts.URL)

	count, err := GetUnreadMessageCount()
	if err != nil {
		t.Fatalf("GetUnreadMessageCount failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3, got %d", count)
	}
}

func TestMarkMessagesRead(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/messages/friend-1/read" {
			t.Errorf("Expected POST /api/messages/friend-1/read, got %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()
	client.SetBaseURL(ts.URL)

	if err := MarkMessagesRead("friend-1"); err != nil {
		t.Fatalf("MarkMessagesRead failed: %v", err)
	}
}
