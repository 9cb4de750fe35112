// Package suggest 提供文本辅助服务单元测试
package suggest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/model"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/completion"
)

// fakeCompleter 记录收到的提示并返回预设文本
type fakeCompleter struct {
	gotPrompt string
	response  string
	err       error
}

func (f *fakeCompleter) Generate(ctx context.Context, contents []completion.Content) (string, error) {
	if len(contents) > 0 {
		f.gotPrompt = contents[len(contents)-1].Text
	}
	return f.response, f.err
}

func TestEnhance(t *testing.T) {
	completer := &fakeCompleter{response: `["first", "second", "third"]`}
	svc := NewService(completer)

	got, err := svc.Enhance(context.Background(), "pls fix asap")
	if err != nil {
		t.Fatalf("Enhance() unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Enhance() returned %d suggestions, want 3", len(got))
	}
	if !strings.Contains(completer.gotPrompt, "pls fix asap") {
		t.Error("prompt missing input text")
	}
}

func TestEnhance_FallbackOnUnparseableOutput(t *testing.T) {
	completer := &fakeCompleter{response: "Sorry, I cannot do that."}
	svc := NewService(completer)

	got, err := svc.Enhance(context.Background(), "text")
	if err != nil {
		t.Fatalf("Enhance() unexpected error: %v", err)
	}
	if len(got) != len(enhanceFallback) || got[0] != enhanceFallback[0] {
		t.Errorf("Enhance() = %v, want fallback list", got)
	}
}

func TestEnhance_PropagatesCompleterError(t *testing.T) {
	wantErr := errors.New("upstream down")
	svc := NewService(&fakeCompleter{err: wantErr})

	_, err := svc.Enhance(context.Background(), "text")
	if !errors.Is(err, wantErr) {
		t.Fatalf("Enhance() error = %v, want completer error", err)
	}
}

func TestReplySuggestions(t *testing.T) {
	completer := &fakeCompleter{response: `["yes", "no", "maybe"]`}
	svc := NewService(completer)

	messages := []*model.ChatMessage{
		{Role: model.RoleUser, Content: "Can we extend the deadline?"},
		{Role: model.RoleAssistant, Content: "I will check with the team."},
	}

	got, err := svc.ReplySuggestions(context.Background(), messages)
	if err != nil {
		t.Fatalf("ReplySuggestions() unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("ReplySuggestions() returned %d suggestions, want 3", len(got))
	}
	if !strings.Contains(completer.gotPrompt, "User: Can we extend the deadline?") {
		t.Error("prompt missing serialized conversation")
	}
	if !strings.Contains(completer.gotPrompt, "Assistant: I will check with the team.") {
		t.Error("prompt missing assistant line")
	}
}

func TestTicketReplySuggestions_Locale(t *testing.T) {
	tests := []struct {
		name     string
		locale   string
		wantLang string
	}{
		{name: "known locale", locale: "es", wantLang: "Spanish"},
		{name: "uppercase locale", locale: "DE", wantLang: "German"},
		{name: "unknown locale defaults to English", locale: "xx", wantLang: "English"},
		{name: "empty locale defaults to English", locale: "", wantLang: "English"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &fakeCompleter{response: `["r1", "r2", "r3", "r4"]`}
			svc := NewService(completer)

			got, err := svc.TicketReplySuggestions(context.Background(), "Ticket: contract review pending", tt.locale)
			if err != nil {
				t.Fatalf("TicketReplySuggestions() unexpected error: %v", err)
			}
			if len(got) != 4 {
				t.Errorf("TicketReplySuggestions() returned %d suggestions, want 4", len(got))
			}
			if !strings.Contains(completer.gotPrompt, "replies in "+tt.wantLang) {
				t.Errorf("prompt should request %s replies", tt.wantLang)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	completer := &fakeCompleter{response: "  The parties discussed an NDA.  "}
	svc := NewService(completer)

	messages := []*model.ChatMessage{
		{Role: model.RoleUser, Content: "We need an NDA."},
	}

	got, err := svc.Summarize(context.Background(), messages)
	if err != nil {
		t.Fatalf("Summarize() unexpected error: %v", err)
	}
	if got != "The parties discussed an NDA." {
		t.Errorf("Summarize() = %q, want trimmed summary", got)
	}
}

func TestRefineSummary(t *testing.T) {
	completer := &fakeCompleter{response: "Revised summary."}
	svc := NewService(completer)

	got, err := svc.RefineSummary(context.Background(), "Old summary.", "mention the deadline")
	if err != nil {
		t.Fatalf("RefineSummary() unexpected error: %v", err)
	}
	if got != "Revised summary." {
		t.Errorf("RefineSummary() = %q", got)
	}
	if !strings.Contains(completer.gotPrompt, "mention the deadline") {
		t.Error("prompt missing instruction")
	}
	if !strings.Contains(completer.gotPrompt, "Old summary.") {
		t.Error("prompt missing current summary")
	}
}
