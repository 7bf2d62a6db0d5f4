package moderation

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

var (
	ErrProfane  = errors.New("profanity")
	ErrSentinel = errors.New("sentinel token")
)

// DefaultSentinels are raw substrings that are never relayed.
var DefaultSentinels = []string{"NULL"}

// RejectionError describes why a message body was refused.
type RejectionError struct {
	Kind  error
	Token string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Token)
}

func (e *RejectionError) Unwrap() error {
	return e.Kind
}

// Reason is the text returned to the sender of a rejected message.
func (e *RejectionError) Reason() string {
	if errors.Is(e.Kind, ErrSentinel) {
		return e.Token + " is not allowed!"
	}
	return "Profanity is not allowed!"
}

// Moderator rejects message bodies containing banned words or sentinel tokens.
// Banned words are matched as whole words after leet-speak normalisation,
// once with punctuation read as a word break ("ok,badger") and once with it
// removed ("b.a.d.g.e.r"); sentinels are matched as case-sensitive substrings.
type Moderator struct {
	matcher   *goahocorasick.Machine
	sentinels []string
	log       *slog.Logger
}

// NewModerator builds the Aho-Corasick automaton over the normalised word list.
func NewModerator(words, sentinels []string, log *slog.Logger) (*Moderator, error) {
	patterns := lo.Uniq(lo.FilterMap(words, func(word string, _ int) (string, bool) {
		normalized := string(normalize(word, false))
		normalized = strings.TrimSpace(normalized)
		return normalized, normalized != ""
	}))

	m := &Moderator{
		sentinels: lo.Filter(sentinels, func(s string, _ int) bool { return s != "" }),
		log:       log,
	}
	if len(patterns) == 0 {
		return m, nil
	}

	keywords := lo.Map(patterns, func(p string, _ int) []rune { return []rune(p) })
	machine := new(goahocorasick.Machine)
	if err := machine.Build(keywords); err != nil {
		return nil, fmt.Errorf("build word matcher: %w", err)
	}
	m.matcher = machine
	return m, nil
}

// Check returns a *RejectionError when text must not be relayed.
func (m *Moderator) Check(text string) error {
	if words := m.Matches(text); len(words) > 0 {
		m.log.Debug("Message matched banned words", "count", len(words))
		return &RejectionError{Kind: ErrProfane, Token: words[0]}
	}
	for _, sentinel := range m.sentinels {
		if strings.Contains(text, sentinel) {
			m.log.Debug("Message contains sentinel token", "token", sentinel)
			return &RejectionError{Kind: ErrSentinel, Token: sentinel}
		}
	}
	return nil
}

// Matches lists the normalised banned words found in text, in order.
func (m *Moderator) Matches(text string) []string {
	if m.matcher == nil {
		return nil
	}
	split := m.wholeWords(normalize(text, true))
	joined := m.wholeWords(normalize(text, false))
	return lo.Uniq(append(split, joined...))
}

func (m *Moderator) wholeWords(content []rune) []string {
	if len(content) == 0 {
		return nil
	}
	var words []string
	for _, term := range m.matcher.MultiPatternSearch(content, false) {
		start := term.Pos
		end := start + len(term.Word)
		if !isBoundary(content, start-1) || !isBoundary(content, end) {
			continue
		}
		words = append(words, string(term.Word))
	}
	return words
}

func isBoundary(content []rune, i int) bool {
	return i < 0 || i >= len(content) || content[i] == ' '
}

// normalize lowercases, maps leet characters back to letters and folds
// whitespace runs into single spaces. Punctuation and symbols become a
// space when breakOnNoise is set and are dropped otherwise.
func normalize(input string, breakOnNoise bool) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := simplifyRune(r)
		switch {
		case unicode.IsSpace(clean), breakOnNoise && isNoise(clean):
			if len(out) > 0 && out[len(out)-1] != ' ' {
				out = append(out, ' ')
			}
		case isNoise(clean):
			continue
		default:
			out = append(out, unicode.ToLower(clean))
		}
	}
	return out
}

func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	case '7':
		return 't'
	default:
		return r
	}
}

func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
