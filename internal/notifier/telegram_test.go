package notifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTelegramSend_Success(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tg := NewTelegram(srv.URL, "111:abc", "-100500")

	if err := tg.Send(context.Background(), "📦 New Courier Update"); err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotPath != "/bot111:abc/sendMessage" {
		t.Fatalf("path = %q, want /bot111:abc/sendMessage", gotPath)
	}
	if got := gotQuery["chat_id"]; len(got) != 1 || got[0] != "-100500" {
		t.Fatalf("chat_id = %v, want -100500", got)
	}
	if got := gotQuery["parse_mode"]; len(got) != 1 || got[0] != "HTML" {
		t.Fatalf("parse_mode = %v, want HTML", got)
	}
	if got := gotQuery["text"]; len(got) != 1 || !strings.Contains(got[0], "Courier Update") {
		t.Fatalf("text = %v, want courier update message", got)
	}
}

func TestTelegramSend_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	tg := NewTelegram(srv.URL, "111:abc", "-100500")

	err := tg.Send(context.Background(), "hello")
	if err == nil {
		t.Fatalf("expected error for ok=false response")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Fatalf("err = %v, want description from API", err)
	}
}

func TestTelegramSend_NotConfigured(t *testing.T) {
	tg := NewTelegram("https://api.telegram.org", "", "")

	if err := tg.Send(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error for unconfigured notifier")
	}
}
