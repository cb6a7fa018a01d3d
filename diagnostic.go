package cypherparse

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/sahilm/fuzzy"
)

// Position is a location in the query text. Line and Column are 1-based,
// Column counts runes. Offset is a 0-based byte offset.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func positionOf(pos lexer.Position) Position {
	return Position{Line: pos.Line, Column: pos.Column, Offset: pos.Offset}
}

// Error is a single parse diagnostic. Context holds the source line
// containing the error, windowed to the configured width, and
// ContextOffset is the caret column within Context.
type Error struct {
	Position      Position `json:"position"`
	Message       string   `json:"message"`
	Context       string   `json:"context"`
	ContextOffset int      `json:"contextOffset"`
}

func (e Error) String() string {
	return e.Position.String() + ": " + e.Message
}

// Caret renders Context with a caret line underneath pointing at the error.
func (e Error) Caret() string {
	return e.Context + "\n" + strings.Repeat(" ", e.ContextOffset) + "^"
}

// Alignment controls where a truncated context window is placed.
type Alignment int

// Alignments.
const (
	// AlignCenter centers the window on the error column.
	AlignCenter Alignment = iota
	// AlignStart starts the window at the error column.
	AlignStart
)

func (a Alignment) String() string {
	if a == AlignStart {
		return "start"
	}

	return "center"
}

// MarshalText implements encoding.TextMarshaler.
func (a Alignment) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Alignment) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "center", "centre":
		*a = AlignCenter
	case "start", "left":
		*a = AlignStart
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAlignment, text)
	}

	return nil
}

// diagnose converts a syntax error into an Error record with context.
func diagnose(input string, err *SyntaxError, width int, align Alignment) Error {
	ctx, off := contextWindow(input, err.Pos, width, align)

	return Error{
		Position:      positionOf(err.Pos),
		Message:       err.Msg,
		Context:       ctx,
		ContextOffset: off,
	}
}

// contextWindow returns the source line containing pos, cut to at most
// width runes when width is positive, and the caret offset within it.
func contextWindow(input string, pos lexer.Position, width int, align Alignment) (string, int) {
	offset := min(max(pos.Offset, 0), len(input))

	start := strings.LastIndexByte(input[:offset], '\n') + 1

	end := strings.IndexAny(input[offset:], "\r\n")
	if end < 0 {
		end = len(input)
	} else {
		end += offset
	}

	line := []rune(input[start:end])
	col := min(max(pos.Column-1, 0), len(line))

	if width <= 0 || len(line) <= width {
		return string(line), col
	}

	var from int

	switch align {
	case AlignStart:
		from = col
	default:
		from = col - width/2 //nolint:mnd // center
	}

	from = min(max(from, 0), len(line)-width)

	return string(line[from : from+width]), col - from
}

// describe names a token for error messages.
func describe(tok lexer.Token) string {
	switch tok.Type {
	case tEOF:
		return "end of input"
	case tInvalid:
		return describeInvalid(tok.Value)
	case tString:
		return "string " + tok.Value
	default:
		return fmt.Sprintf("%s '%s'", tokenTypeNames[tok.Type], tok.Value)
	}
}

func describeInvalid(v string) string {
	switch {
	case strings.HasPrefix(v, "'"), strings.HasPrefix(v, `"`):
		return "unterminated string"
	case strings.HasPrefix(v, "/*"):
		return "unterminated comment"
	case strings.HasPrefix(v, "`"):
		return "unterminated quoted identifier"
	case strings.HasPrefix(v, "$"):
		return "invalid parameter '" + v + "'"
	case v != "" && (isDigit(rune(v[0])) || v[0] == '.'):
		return "malformed number '" + v + "'"
	default:
		return "invalid character '" + v + "'"
	}
}

// maxSuggestionDistance bounds the length difference between a word and
// a suggested keyword.
const maxSuggestionDistance = 2

// transpositionPenalty is subtracted from the score of a match found only
// after swapping two neighboring letters.
const transpositionPenalty = 10

// suggest returns the candidate that most closely matches word, or "".
// Fuzzy matching covers missing and extra letters; swapped neighbors are
// matched through variants of word.
func suggest(word string, candidates []string) string {
	w := strings.ToUpper(word)

	runes := []rune(w)
	if len(runes) < 3 { //nolint:mnd // too short to guess
		return ""
	}

	if slices.Contains(candidates, w) {
		return ""
	}

	variants := []string{w}

	for i := 0; i+1 < len(runes); i++ {
		if runes[i] == runes[i+1] {
			continue
		}

		swapped := slices.Clone(runes)
		swapped[i], swapped[i+1] = swapped[i+1], swapped[i]
		variants = append(variants, string(swapped))
	}

	best, bestScore := "", math.MinInt

	for _, c := range candidates {
		if d := len(c) - len(w); d > maxSuggestionDistance || d < -maxSuggestionDistance {
			continue
		}

		for i, v := range variants {
			penalty := 0
			if i > 0 {
				penalty = transpositionPenalty
			}

			matches := append(fuzzy.Find(v, []string{c}), fuzzy.Find(c, []string{v})...)
			for _, m := range matches {
				if score := m.Score - penalty; score > bestScore {
					best, bestScore = c, score
				}
			}
		}
	}

	return best
}
