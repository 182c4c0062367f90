package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Settings 参与指纹计算的生成设置子集
// 子集之外的任何字段变化都不影响指纹
type Settings struct {
	QuestionType string `json:"type"`
	Difficulty   string `json:"difficulty"`
	Quantity     int    `json:"quantity"`
	MaxMode      bool   `json:"max_mode"`
	Language     string `json:"language"`
	ThinkingMode bool   `json:"thinking_mode"`
}

// Compute 计算内容寻址指纹
// 序列化字段顺序固定写死，保证相同输入任何时候都得到相同哈希，
// 客户端与服务端必须逐位一致
func Compute(content string, settings Settings) string {
	var b strings.Builder
	b.WriteString("content=")
	b.WriteString(normalize(content))
	b.WriteString("|type=")
	b.WriteString(settings.QuestionType)
	b.WriteString("|difficulty=")
	b.WriteString(settings.Difficulty)
	fmt.Fprintf(&b, "|quantity=%d", settings.Quantity)
	fmt.Fprintf(&b, "|maxMode=%t", settings.MaxMode)
	b.WriteString("|language=")
	b.WriteString(settings.Language)
	fmt.Fprintf(&b, "|thinkingMode=%t", settings.ThinkingMode)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// normalize 归一化输入内容：统一换行并去掉首尾空白
func normalize(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.TrimSpace(content)
}
