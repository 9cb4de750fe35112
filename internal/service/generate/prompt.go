package generate

import (
	"fmt"
	"strings"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/model"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/template"
)

// buildGeneratePrompt 构建初次生成提示
// 模板指令 + 对话转录 + 自定义指令 + 只返回文档正文的指令
func buildGeneratePrompt(req *GenerateRequest) string {
	var sb strings.Builder

	sb.WriteString(template.Lookup(req.TemplateID))
	sb.WriteString("\n")

	if req.TemplateName != "" {
		sb.WriteString(fmt.Sprintf("\nDocument type: %s\n", req.TemplateName))
	}

	transcript := serializeTranscript(req.Messages)
	if transcript != "" {
		sb.WriteString("\nConversation between the user and the assistant:\n")
		sb.WriteString(transcript)
	}

	if req.CustomPrompt != "" {
		sb.WriteString("\nAdditional instructions:\n")
		sb.WriteString(req.CustomPrompt)
		sb.WriteString("\n")
	}

	sb.WriteString("\nReturn only the document body in markdown. Do not include commentary, explanations or code fences.")
	return sb.String()
}

// buildRefinePrompt 构建改稿提示
// 整体重写和定向修改使用不同的提示形态
func buildRefinePrompt(req *RefineRequest, intent Intent) string {
	var sb strings.Builder

	if intent == IntentFullRewrite {
		sb.WriteString("Rewrite the entire document below according to the new instruction.\n")
		if req.TemplateName != "" {
			sb.WriteString(fmt.Sprintf("Document type: %s\n", req.TemplateName))
		}
		sb.WriteString("\nInstruction:\n")
		sb.WriteString(req.RefinementRequest)
		sb.WriteString("\n\nCurrent document:\n")
		sb.WriteString(req.CurrentDoc)
	} else {
		sb.WriteString("Apply only the requested change to the document below. ")
		sb.WriteString("Preserve all other wording, structure and formatting exactly as they are.\n")
		sb.WriteString("\nRequested change:\n")
		sb.WriteString(req.RefinementRequest)
		sb.WriteString("\n\nDocument:\n")
		sb.WriteString(req.CurrentDoc)
	}

	sb.WriteString("\n\nReturn only the full updated document body in markdown. Do not include commentary, explanations or code fences.")
	return sb.String()
}

// serializeTranscript 将对话序列化为 User:/Assistant: 行
func serializeTranscript(messages []*model.ChatMessage) string {
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
