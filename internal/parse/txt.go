package parse

import (
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/papergen/internal/bank"
)

// ParseTXT reads a plain-text bank. Blocks separated by blank lines are
// independent questions; within a block, "Q"/"Question"/numbered
// prefixes start a new question and other lines continue the previous
// one. Plain unprefixed single-line files yield one question per line.
func ParseTXT(path string) ([]bank.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read txt: %w", err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return questionsFromText(text), nil
}
