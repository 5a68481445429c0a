package tracking

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const (
	codeLength = 8
	alphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// 追跡番号を作る。
// グローバルな一意性はここでは保証しない（DBのユニーク制約で担保する）。
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator() *Generator {
	return NewGeneratorWithSeed(time.Now().UnixNano())
}

// テストで再現したいときはseedを固定する
func NewGeneratorWithSeed(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate は8文字の英大文字＋数字の追跡番号を返す。
func (g *Generator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var b strings.Builder
	b.Grow(codeLength)
	for i := 0; i < codeLength; i++ {
		b.WriteByte(alphabet[g.rng.Intn(len(alphabet))])
	}
	return b.String()
}
