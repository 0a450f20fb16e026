package game

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// WordSource supplies the prompt words drawers pick from. The list is
// read once at startup and never mutated; sessions track consumption
// themselves.
type WordSource struct {
	words []string
}

func NewWordSource(words []string) *WordSource {
	return &WordSource{words: words}
}

// LoadWords reads a file with one prompt word per line.
func LoadWords(path string) (*WordSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open words file %s: %w", path, err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read words file %s: %w", path, err)
	}

	return &WordSource{words: words}, nil
}

func (ws *WordSource) Words() []string {
	return ws.words
}

func (ws *WordSource) Count() int {
	return len(ws.words)
}
