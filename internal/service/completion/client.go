// Package completion 封装第三方生成式补全接口
// API key 通过查询参数传递，请求/响应为 generateContent 线格式
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/config"
)

// ErrMissingAPIKey 未配置 API key
var ErrMissingAPIKey = errors.New("AI API key is not configured")

// ErrEmptyCompletion 上游 2xx 但响应中没有可用文本
var ErrEmptyCompletion = errors.New("completion response contained no usable text")

// UpstreamError 上游补全接口的 HTTP 错误
type UpstreamError struct {
	Status      int
	Message     string
	RateLimited bool
}

func (e *UpstreamError) Error() string {
	if e.RateLimited {
		return fmt.Sprintf("completion rate limited (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("completion failed (%d): %s", e.Status, e.Message)
}

// Content 按角色标记的一段输入
type Content struct {
	Role string // user, model
	Text string
}

// Client 补全客户端
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

// NewClient 创建补全客户端
func NewClient(cfg *config.AIConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		http:    &http.Client{Timeout: timeout},
	}
}

// HasAPIKey 是否配置了 API key
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// ========== 线格式 ==========

type wirePart struct {
	Text string `json:"text"`
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type wireRequest struct {
	Contents []wireContent `json:"contents"`
}

type wireResponse struct {
	Candidates []struct {
		Content struct {
			Parts []wirePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate 执行补全，返回首个候选的文本
func (c *Client) Generate(ctx context.Context, contents []Content) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	req := wireRequest{Contents: make([]wireContent, 0, len(contents))}
	for _, content := range contents {
		req.Contents = append(req.Contents, wireContent{
			Role:  content.Role,
			Parts: []wirePart{{Text: content.Text}},
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{
			Status:      resp.StatusCode,
			Message:     parseErrorMessage(respBody),
			RateLimited: resp.StatusCode == http.StatusTooManyRequests,
		}
	}

	var wr wireResponse
	if err := json.Unmarshal(respBody, &wr); err != nil {
		return "", ErrEmptyCompletion
	}

	text := firstCandidateText(&wr)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// firstCandidateText 取首个候选的拼接文本
func firstCandidateText(wr *wireResponse) string {
	if len(wr.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range wr.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String())
}

// parseErrorMessage 从错误响应体提取消息
func parseErrorMessage(body []byte) string {
	var wr wireResponse
	if err := json.Unmarshal(body, &wr); err == nil && wr.Error.Message != "" {
		return wr.Error.Message
	}
	return strings.TrimSpace(string(body))
}
