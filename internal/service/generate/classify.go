package generate

import "strings"

// Intent 改稿意图
type Intent int

const (
	// IntentSurgicalEdit 定向修改：只应用指定改动，保留其余格式
	IntentSurgicalEdit Intent = iota
	// IntentFullRewrite 整体重写：在新指令下重新生成整份文档
	IntentFullRewrite
)

// Classifier 改稿意图分类函数
// 保持可替换，后续可以换成模型调用而不影响调用方
type Classifier func(instruction string) Intent

// rewriteKeywords 指示整体重写的关键词
// 子串匹配是启发式，误判是已知限制
var rewriteKeywords = []string{
	"rewrite",
	"from scratch",
	"overhaul",
	"start over",
	"start again",
	"redo",
	"regenerate",
	"completely different",
	"completely new",
}

// ClassifyRefinement 默认的改稿意图分类
func ClassifyRefinement(instruction string) Intent {
	lower := strings.ToLower(instruction)
	for _, keyword := range rewriteKeywords {
		if strings.Contains(lower, keyword) {
			return IntentFullRewrite
		}
	}
	return IntentSurgicalEdit
}
