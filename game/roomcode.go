package game

import (
	"math/rand"
	"sync"
)

const roomCodeLength = 5

// Alphabet excludes 0/O and 1/I so codes survive being read off a screen.
const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeGenerator hands out unique room codes and recycles them once the
// room is gone.
type CodeGenerator struct {
	used   map[string]struct{}
	locker sync.Mutex
}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{used: make(map[string]struct{})}
}

func (g *CodeGenerator) Generate() string {
	g.locker.Lock()
	defer g.locker.Unlock()

	for {
		code := randomCode()
		if _, taken := g.used[code]; taken {
			continue
		}
		g.used[code] = struct{}{}
		return code
	}
}

func (g *CodeGenerator) Dispose(code string) {
	g.locker.Lock()
	defer g.locker.Unlock()
	delete(g.used, code)
}

func randomCode() string {
	code := make([]byte, roomCodeLength)
	for i := range code {
		code[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
	}
	return string(code)
}
