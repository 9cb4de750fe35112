// Package suggest 基于补全接口的文本辅助
// 改写增强、回复建议、工单回复建议、对话总结；
// 列表类输出解析失败时回退到固定建议，不让解析问题变成请求失败
package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/model"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/completion"
)

const (
	enhanceCount     = 3
	replyCount       = 3
	ticketReplyCount = 4
)

// 解析失败时的固定回退列表
var (
	enhanceFallback = []string{
		"Could you please review this and let me know your thoughts?",
		"I wanted to follow up on this matter at your earliest convenience.",
		"Please find the requested information below.",
	}
	replyFallback = []string{
		"Thank you, that answers my question.",
		"Could you elaborate on that point?",
		"Please proceed with the suggested approach.",
	}
	ticketReplyFallback = []string{
		"Thank you for the update. We are reviewing the request.",
		"Could you provide additional details so we can proceed?",
		"The request has been forwarded to the appropriate reviewer.",
		"We will follow up once the review is complete.",
	}
)

// localeLanguages 语言代码到语言名的映射，回复建议按此语言生成
var localeLanguages = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"hi": "Hindi",
	"ja": "Japanese",
	"zh": "Chinese",
}

// Completer 补全原语
type Completer interface {
	Generate(ctx context.Context, contents []completion.Content) (string, error)
}

// Service 文本辅助服务
type Service struct {
	completer Completer
}

// NewService 创建文本辅助服务
func NewService(completer Completer) *Service {
	return &Service{completer: completer}
}

// Enhance 返回输入文本的 3 个改写
func (s *Service) Enhance(ctx context.Context, text string) ([]string, error) {
	prompt := fmt.Sprintf(`Rewrite the following text in %d different ways, keeping the meaning but improving clarity and professionalism.
Return only a JSON array of %d strings, nothing else.

Text:
%s`, enhanceCount, enhanceCount, text)

	raw, err := s.completer.Generate(ctx, []completion.Content{{Role: "user", Text: prompt}})
	if err != nil {
		return nil, err
	}
	return parseSuggestions(raw, enhanceCount, enhanceFallback), nil
}

// ReplySuggestions 基于对话转录返回 3 个回复选项
func (s *Service) ReplySuggestions(ctx context.Context, messages []*model.ChatMessage) ([]string, error) {
	prompt := fmt.Sprintf(`Based on the conversation below, suggest %d short replies the user could send next.
Return only a JSON array of %d strings, nothing else.

Conversation:
%s`, replyCount, replyCount, transcript(messages))

	raw, err := s.completer.Generate(ctx, []completion.Content{{Role: "user", Text: prompt}})
	if err != nil {
		return nil, err
	}
	return parseSuggestions(raw, replyCount, replyFallback), nil
}

// TicketReplySuggestions 基于工单上下文返回 4 个回复选项，按 locale 指定语言生成
func (s *Service) TicketReplySuggestions(ctx context.Context, ticketContext, locale string) ([]string, error) {
	language := localeLanguages[strings.ToLower(locale)]
	if language == "" {
		language = "English"
	}

	prompt := fmt.Sprintf(`You are assisting with a legal operations ticket. Based on the ticket context below, suggest %d professional replies in %s.
Return only a JSON array of %d strings, nothing else.

Ticket context:
%s`, ticketReplyCount, language, ticketReplyCount, ticketContext)

	raw, err := s.completer.Generate(ctx, []completion.Content{{Role: "user", Text: prompt}})
	if err != nil {
		return nil, err
	}
	return parseSuggestions(raw, ticketReplyCount, ticketReplyFallback), nil
}

// Summarize 总结对话
func (s *Service) Summarize(ctx context.Context, messages []*model.ChatMessage) (string, error) {
	prompt := fmt.Sprintf(`Summarize the conversation below in a few concise paragraphs, covering the matter discussed, decisions made and open items.
Return only the summary text.

Conversation:
%s`, transcript(messages))

	raw, err := s.completer.Generate(ctx, []completion.Content{{Role: "user", Text: prompt}})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// RefineSummary 按指令修订已有总结
func (s *Service) RefineSummary(ctx context.Context, current, instruction string) (string, error) {
	prompt := fmt.Sprintf(`Revise the summary below according to the instruction. Keep everything the instruction does not touch.
Return only the revised summary text.

Instruction:
%s

Summary:
%s`, instruction, current)

	raw, err := s.completer.Generate(ctx, []completion.Content{{Role: "user", Text: prompt}})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// transcript 将对话序列化为 User:/Assistant: 行
func transcript(messages []*model.ChatMessage) string {
	var sb strings.Builder
	for _, msg := range messages {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}

		label := "User"
		if msg.Role == model.RoleAssistant {
			label = "Assistant"
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", label, content))
	}
	return sb.String()
}
