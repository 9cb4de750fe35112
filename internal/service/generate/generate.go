// Package generate 文档生成编排
// 将对话转录和模板指令组合成确定性提示，交给外部补全接口生成完整文档；
// 改稿模式在已有文档上应用整体重写或定向修改
package generate

import (
	"context"
	"errors"
	"strings"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/model"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/completion"
)

// Completer 补全原语
type Completer interface {
	Generate(ctx context.Context, contents []completion.Content) (string, error)
}

// Service 文档生成服务
type Service struct {
	completer Completer
	classify  Classifier
}

// NewService 创建文档生成服务
// classify 为 nil 时使用默认的关键词分类
func NewService(completer Completer, classify Classifier) *Service {
	if classify == nil {
		classify = ClassifyRefinement
	}
	return &Service{completer: completer, classify: classify}
}

// ========== 请求变体 ==========

// Request 文档生成请求的原始形态（HTTP 边界）
type Request struct {
	Messages          []*model.ChatMessage `json:"messages"`
	TemplateID        string               `json:"templateId"`
	TemplateName      string               `json:"templateName"`
	CustomPrompt      string               `json:"customPrompt"`
	CurrentDoc        string               `json:"currentDoc"`
	RefinementRequest string               `json:"refinementRequest"`
}

// Mode 生成模式，Resolve 得到的带标签变体
type Mode interface {
	isMode()
}

// GenerateRequest 初次生成
type GenerateRequest struct {
	Messages     []*model.ChatMessage
	TemplateID   string
	TemplateName string
	CustomPrompt string
}

func (*GenerateRequest) isMode() {}

// RefineRequest 改稿
type RefineRequest struct {
	CurrentDoc        string
	RefinementRequest string
	TemplateName      string
}

func (*RefineRequest) isMode() {}

// Resolve 将原始请求解析为带标签变体
// 改稿模式要求 currentDoc 和 refinementRequest 都非空，
// 任一缺失时回退到初次生成，消除半填充的歧义状态
func Resolve(req *Request) (Mode, error) {
	if req == nil {
		return nil, errors.New("request is required")
	}

	doc := strings.TrimSpace(req.CurrentDoc)
	instruction := strings.TrimSpace(req.RefinementRequest)
	if doc != "" && instruction != "" {
		return &RefineRequest{
			CurrentDoc:        doc,
			RefinementRequest: instruction,
			TemplateName:      req.TemplateName,
		}, nil
	}

	if len(req.Messages) == 0 && strings.TrimSpace(req.CustomPrompt) == "" {
		return nil, errors.New("messages or customPrompt is required")
	}

	return &GenerateRequest{
		Messages:     req.Messages,
		TemplateID:   req.TemplateID,
		TemplateName: req.TemplateName,
		CustomPrompt: req.CustomPrompt,
	}, nil
}

// GenerateDocument 生成或改稿
// 返回去除首尾空白的 markdown 文本；失败原样透出补全层的类型化错误
func (s *Service) GenerateDocument(ctx context.Context, mode Mode) (string, error) {
	var prompt string

	switch m := mode.(type) {
	case *GenerateRequest:
		prompt = buildGeneratePrompt(m)
	case *RefineRequest:
		prompt = buildRefinePrompt(m, s.classify(m.RefinementRequest))
	default:
		return "", errors.New("unknown generation mode")
	}

	text, err := s.completer.Generate(ctx, []completion.Content{
		{Role: "user", Text: prompt},
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(stripCodeFence(text)), nil
}

// stripCodeFence 去掉模型偶尔包裹的 markdown 代码围栏
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return text
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return text
	}
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		return strings.Join(lines[1:len(lines)-1], "\n")
	}
	return text
}
