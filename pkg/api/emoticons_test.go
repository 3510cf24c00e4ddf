package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/retrospace/messenger-cli/pkg/client"
	"github.com/retrospace/messenger-cli/pkg/emoticon"
)

func TestGetEmoticons_PreservesTableOrder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]emoticon.Emoticon{
			{ID: "em-1", Code: ":)", Name: "smiley"},
			{ID: "em-2", Code: ":-)", Name: "classic smiley"},
		})
	}))
	defer ts.Close()
	client.SetBaseURL(ts.URL)

	emoticons, err := GetEmoticons()
	if err != nil {
		t.Fatalf("GetEmoticons failed: %v", err)
	}
	if len(emoticons) != 2 {
		t.Fatalf("Expected 2 emoticons, got %d", len(emoticons))
	}
	// Order is the parser's tie-break; it must survive the fetch
	if emoticons[0].Code != ":)" || emoticons[1].Code != ":-)" {
		t.Errorf("Table order changed: %+v", emoticons)
	}
}

func TestGetCustomEmoticons_MarksCustom(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]emoticon.Emoticon{
			{ID: "em-9", Code: ":party:", Name: "party"},
		})
	}))
	defer ts.Close()
	client.SetBaseURL(ts.URL)

	emoticons, err := GetCustomEmoticons()
	if err != nil {
		t.Fatalf("GetCustomEmoticons failed: %v", err)
	}
	if len(emoticons) != 1 || !emoticons[0].IsCustom {
		t.Errorf("Custom emoticons must be flagged, got %+v", emoticons)
	}
}

func TestGetFriends(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/friends" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Friend{
			{User: User{ID: "f1", Username: "tom"}, IsOnline: true},
		})
	}))
	defer ts.Close()
	client.SetBaseURL(ts.URL)

	friends, err := GetFriends()
	if err != nil {
		t.Fatalf("GetFriends failed: %v", err)
	}
	if len(friends) != 1 || friends[0].Username != "tom" || !friends[0].IsOnline {
		t.Errorf("Unexpected friends: %+v", friends)
	}
}

func TestGetFriendRequests(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/friends/requests" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]FriendRequest{
			{ID: "req-1", From: User{ID: "u9", Username: "jerry"}},
		})
	}))
	defer ts.Close()
	client.SetBaseURL(ts.URL)

	requests, err := GetFriendRequests()
	if err != nil {
		t.Fatalf("GetFriendRequests failed: %v", err)
	}
	if len(requests) != 1 || requests[0].From.Username != "jerry" {
		t.Errorf("Unexpected requests: %+v", requests)
	}
}
