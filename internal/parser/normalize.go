package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var multiSpaceRE = regexp.MustCompile(`\s+`)

func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		switch r {
		case ' ', '\t', '\n', '\r', '-', '_', '/', '\'', ',', ':', '(', ')':
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(b.String(), " "))
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

// splitCell pulls the first "x y" pair of numbers out of tokens. A pair
// written like "b3" reads the letter as the column.
func splitCell(tokens []string) ([]string, *Cell) {
	for i, token := range tokens {
		if x, ok := parseNumber(token); ok && i+1 < len(tokens) {
			if y, ok := parseNumber(tokens[i+1]); ok {
				rest := append(append([]string(nil), tokens[:i]...), tokens[i+2:]...)
				return rest, &Cell{X: x, Y: y}
			}
		}
		if c := parseGridRef(token); c != nil {
			rest := append(append([]string(nil), tokens[:i]...), tokens[i+1:]...)
			return rest, c
		}
	}
	return tokens, nil
}

func parseNumber(token string) (int, bool) {
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseGridRef(token string) *Cell {
	if len(token) < 2 || token[0] < 'a' || token[0] > 'l' {
		return nil
	}
	y, err := strconv.Atoi(token[1:])
	if err != nil {
		return nil
	}
	return &Cell{X: int(token[0]-'a') + 1, Y: y}
}

func isPronoun(token string) bool {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "it", "that", "there", "this", "same":
		return true
	default:
		return false
	}
}

func isFiller(token string) bool {
	switch token {
	case "the", "a", "an", "at", "on", "in", "to", "plot", "cell", "slot", "please":
		return true
	default:
		return false
	}
}
