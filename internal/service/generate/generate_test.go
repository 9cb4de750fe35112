// Package generate 提供文档生成编排单元测试
package generate

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

func TestResolve(t *testing.T) {
	messages := []*model.ChatMessage{{ID: "m1", Role: model.RoleUser, Content: "draft an NDA"}}

	tests := []struct {
		name     string
		req      *Request
		wantMode string
		wantErr  bool
	}{
		{
			name:     "refine when doc and instruction present",
			req:      &Request{CurrentDoc: "# NDA", RefinementRequest: "shorten it", Messages: messages},
			wantMode: "refine",
		},
		{
			name:     "generate when only doc present",
			req:      &Request{CurrentDoc: "# NDA", Messages: messages},
			wantMode: "generate",
		},
		{
			name:     "generate when only instruction present",
			req:      &Request{RefinementRequest: "shorten it", Messages: messages},
			wantMode: "generate",
		},
		{
			name:     "whitespace doc does not trigger refine",
			req:      &Request{CurrentDoc: "   ", RefinementRequest: "shorten it", Messages: messages},
			wantMode: "generate",
		},
		{
			name:     "custom prompt alone is enough",
			req:      &Request{CustomPrompt: "draft a contract for consulting services"},
			wantMode: "generate",
		},
		{
			name:    "empty request rejected",
			req:     &Request{},
			wantErr: true,
		},
		{
			name:    "nil request rejected",
			req:     nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := Resolve(tt.req)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Resolve() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}

			switch mode.(type) {
			case *GenerateRequest:
				if tt.wantMode != "generate" {
					t.Errorf("Resolve() = GenerateRequest, want %s", tt.wantMode)
				}
			case *RefineRequest:
				if tt.wantMode != "refine" {
					t.Errorf("Resolve() = RefineRequest, want %s", tt.wantMode)
				}
			default:
				t.Errorf("Resolve() returned unexpected mode %T", mode)
			}
		})
	}
}

func TestGenerateDocument_InitialPrompt(t *testing.T) {
	completer := &fakeCompleter{response: "# NDA\n\nbody"}
	svc := NewService(completer, nil)

	mode := &GenerateRequest{
		Messages: []*model.ChatMessage{
			{Role: model.RoleUser, Content: "I need an NDA for a vendor"},
			{Role: model.RoleAssistant, Content: "Which jurisdiction?"},
			{Role: model.RoleUser, Content: ""},
		},
		TemplateID:   "nda",
		TemplateName: "Mutual NDA",
		CustomPrompt: "Two year term",
	}

	doc, err := svc.GenerateDocument(context.Background(), mode)
	if err != nil {
		t.Fatalf("GenerateDocument() unexpected error: %v", err)
	}
	if doc != "# NDA\n\nbody" {
		t.Errorf("GenerateDocument() = %q", doc)
	}

	for _, want := range []string{
		"Non-Disclosure Agreement",
		"Document type: Mutual NDA",
		"User: I need an NDA for a vendor",
		"Assistant: Which jurisdiction?",
		"Additional instructions:\nTwo year term",
		"Return only the document body in markdown",
	} {
		if !strings.Contains(completer.gotPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	// 空内容消息不进转录
	if strings.Contains(completer.gotPrompt, "User: \n") {
		t.Error("prompt should skip empty messages")
	}
}

func TestGenerateDocument_RefinePromptShapes(t *testing.T) {
	tests := []struct {
		name        string
		instruction string
		wantPart    string
		absentPart  string
	}{
		{
			name:        "full rewrite shape",
			instruction: "rewrite this from scratch",
			wantPart:    "Rewrite the entire document",
			absentPart:  "Preserve all other wording",
		},
		{
			name:        "surgical edit shape",
			instruction: "fix the date in section 3",
			wantPart:    "Preserve all other wording, structure and formatting",
			absentPart:  "Rewrite the entire document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &fakeCompleter{response: "updated"}
			svc := NewService(completer, nil)

			mode := &RefineRequest{
				CurrentDoc:        "# Agreement\n\nSection 3: date",
				RefinementRequest: tt.instruction,
			}
			if _, err := svc.GenerateDocument(context.Background(), mode); err != nil {
				t.Fatalf("GenerateDocument() unexpected error: %v", err)
			}

			if !strings.Contains(completer.gotPrompt, tt.wantPart) {
				t.Errorf("prompt missing %q", tt.wantPart)
			}
			if strings.Contains(completer.gotPrompt, tt.absentPart) {
				t.Errorf("prompt should not contain %q", tt.absentPart)
			}
			if !strings.Contains(completer.gotPrompt, mode.CurrentDoc) {
				t.Error("prompt missing current document")
			}
		})
	}
}

func TestGenerateDocument_CustomClassifier(t *testing.T) {
	completer := &fakeCompleter{response: "updated"}
	alwaysRewrite := func(string) Intent { return IntentFullRewrite }
	svc := NewService(completer, alwaysRewrite)

	mode := &RefineRequest{CurrentDoc: "doc", RefinementRequest: "fix a typo"}
	if _, err := svc.GenerateDocument(context.Background(), mode); err != nil {
		t.Fatalf("GenerateDocument() unexpected error: %v", err)
	}
	if !strings.Contains(completer.gotPrompt, "Rewrite the entire document") {
		t.Error("injected classifier should force the rewrite prompt shape")
	}
}

func TestGenerateDocument_PropagatesCompleterError(t *testing.T) {
	wantErr := errors.New("upstream down")
	svc := NewService(&fakeCompleter{err: wantErr}, nil)

	_, err := svc.GenerateDocument(context.Background(), &GenerateRequest{CustomPrompt: "anything"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("GenerateDocument() error = %v, want completer error", err)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "markdown fence", in: "```markdown\n# Title\nbody\n```", want: "# Title\nbody"},
		{name: "bare fence", in: "```\n# Title\n```", want: "# Title"},
		{name: "no fence untouched", in: "# Title\nbody", want: "# Title\nbody"},
		{name: "unclosed fence untouched", in: "```markdown\n# Title", want: "```markdown\n# Title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.in); got != tt.want {
				t.Errorf("stripCodeFence() = %q, want %q", got, tt.want)
			}
		})
	}
}
