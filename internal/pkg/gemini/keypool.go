package gemini

import (
	"errors"
	"math/rand"
	"strings"
)

var (
	ErrNoKeysConfigured = errors.New("未配置上游 API Key")
)

// KeyPool 上游凭证池
// 构造后不可变，不记录各 Key 的使用量，选取为均匀随机
type KeyPool struct {
	keys []string
}

// NewKeyPool 构造凭证池，去重并丢弃空串
func NewKeyPool(keys []string) *KeyPool {
	seen := make(map[string]struct{}, len(keys))
	deduped := make([]string, 0, len(keys))
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, key)
	}
	return &KeyPool{keys: deduped}
}

// NextKey 随机取一个凭证
func (p *KeyPool) NextKey() (string, error) {
	if len(p.keys) == 0 {
		return "", ErrNoKeysConfigured
	}
	return p.keys[rand.Intn(len(p.keys))], nil
}

// Size 池中凭证数量
func (p *KeyPool) Size() int {
	return len(p.keys)
}
