// Package chat 提供聊天编排单元测试
package chat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/config"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/backend"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/polling"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/session"
)

func newTestService(serverURL string) *Service {
	client := backend.NewClient(&config.BackendConfig{BaseURL: serverURL, Timeout: 5})
	poller := polling.NewPoller(client, &config.PollingConfig{IntervalSeconds: 1, MaxAttempts: 1})
	sessions := session.NewManager(session.NewMemoryStore(), nil)
	return NewService(client, poller, sessions)
}

func TestStartChat_DefaultTitleAndSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "chat-1", "title": "We need an NDA for the new vendor", "messages": []}`))
	}))
	defer server.Close()

	svc := newTestService(server.URL)

	chat, err := svc.StartChat(context.Background(), "user-1", &StartChatRequest{
		Message: "We need an NDA for the new vendor",
	})
	if err != nil {
		t.Fatalf("StartChat() unexpected error: %v", err)
	}
	if chat.ID != "chat-1" {
		t.Errorf("chat.ID = %q, want %q", chat.ID, "chat-1")
	}

	// 摘要随会话创建写入
	summaries, err := svc.sessions.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ID != "chat-1" {
		t.Errorf("summaries = %+v, want chat-1 recorded", summaries)
	}
}

func TestStartChat_PropagatesAIGenerationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "Failed to generate AI response"}`))
	}))
	defer server.Close()

	svc := newTestService(server.URL)

	_, err := svc.StartChat(context.Background(), "user-1", &StartChatRequest{Message: "hello"})
	if !errors.Is(err, backend.ErrAIGeneration) {
		t.Fatalf("StartChat() error = %v, want ErrAIGeneration", err)
	}
}

func TestSendMessage_NilReplyMeansPoll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"reply": null}`))
	}))
	defer server.Close()

	svc := newTestService(server.URL)

	reply, err := svc.SendMessage(context.Background(), "user-1", "chat-1", &SendMessageRequest{Content: "hello"})
	if err != nil {
		t.Fatalf("SendMessage() unexpected error: %v", err)
	}
	if reply != nil {
		t.Errorf("SendMessage() = %+v, want nil when backend defers the reply", reply)
	}
}

func TestSendMessage_PreservesSummaryTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"reply": null}`))
	}))
	defer server.Close()

	svc := newTestService(server.URL)
	ctx := context.Background()

	// 已有带标题的摘要
	svc.touchSummary(ctx, "user-1", "chat-1", "NDA review")

	if _, err := svc.SendMessage(ctx, "user-1", "chat-1", &SendMessageRequest{Content: "hello"}); err != nil {
		t.Fatalf("SendMessage() unexpected error: %v", err)
	}

	summaries, _ := svc.sessions.List(ctx, "user-1")
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}
	if summaries[0].Title != "NDA review" {
		t.Errorf("summary title = %q, want existing title preserved", summaries[0].Title)
	}
}

func TestAwaitReply_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "chat-1", "messages": [{"id": "u1", "role": "user", "content": "hello"}]}`))
	}))
	defer server.Close()

	svc := newTestService(server.URL)

	_, err := svc.AwaitReply(context.Background(), "chat-1", []string{"u1"})
	if !errors.Is(err, polling.ErrTimeout) {
		t.Fatalf("AwaitReply() error = %v, want polling.ErrTimeout", err)
	}
}

func TestDefaultTitle(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "short message used as is", message: "Draft an NDA", want: "Draft an NDA"},
		{name: "whitespace trimmed", message: "  Draft an NDA  ", want: "Draft an NDA"},
		{name: "empty message", message: "", want: "New request"},
		{name: "whitespace only", message: "   ", want: "New request"},
		{
			name:    "long message truncated",
			message: strings.Repeat("a", 60),
			want:    strings.Repeat("a", defaultTitleLimit) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultTitle(tt.message); got != tt.want {
				t.Errorf("defaultTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
