package suggest

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// extractStringArray 从模型输出中提取首个 JSON 字符串数组
// 容忍数组前后的散文；直接解析失败时用 jsonrepair 修复近似 JSON
func extractStringArray(raw string) ([]string, bool) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, false
	}

	candidate := raw[start : end+1]

	var items []string
	if err := json.Unmarshal([]byte(candidate), &items); err == nil {
		return items, true
	}

	repaired, err := jsonrepair.JSONRepair(candidate)
	if err != nil {
		return nil, false
	}
	if err := json.Unmarshal([]byte(repaired), &items); err != nil {
		return nil, false
	}
	return items, true
}

// parseSuggestions 解析建议列表
// 解析失败返回固定回退列表；成功时裁剪到 limit 并去掉空项
func parseSuggestions(raw string, limit int, fallback []string) []string {
	items, ok := extractStringArray(raw)
	if !ok {
		return fallback
	}

	result := make([]string, 0, limit)
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		result = append(result, trimmed)
		if len(result) == limit {
			break
		}
	}

	if len(result) == 0 {
		return fallback
	}
	return result
}
