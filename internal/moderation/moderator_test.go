package moderation

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newTestModerator(t *testing.T, words ...string) *Moderator {
	t.Helper()
	m, err := NewModerator(words, DefaultSentinels, logs.GetLoggerFromLevel(slog.LevelDebug))
	require.NoError(t, err)
	return m
}

func TestModerator_Check(t *testing.T) {
	m := newTestModerator(t, "badger", "snake", "hell")

	tests := []struct {
		name   string
		text   string
		reason string
	}{
		{name: "Clean text", text: "hello everyone", reason: ""},
		{name: "Exact word", text: "a badger appeared", reason: "Profanity is not allowed!"},
		{name: "Upper case", text: "BADGER", reason: "Profanity is not allowed!"},
		{name: "Leet speak", text: "b4dg3r", reason: "Profanity is not allowed!"},
		{name: "Dotted letters", text: "s.n.a.k.e", reason: "Profanity is not allowed!"},
		{name: "Trailing punctuation", text: "hell!", reason: "Profanity is not allowed!"},
		{name: "Embedded in a longer word", text: "hello world", reason: ""},
		{name: "After a comma", text: "ok,badger", reason: "Profanity is not allowed!"},
		{name: "After a full stop", text: "ok.badger", reason: "Profanity is not allowed!"},
		{name: "Between ellipsis and bang", text: "oh...snake!", reason: "Profanity is not allowed!"},
		{name: "After a slash", text: "hello/hell", reason: "Profanity is not allowed!"},
		{name: "Hyphenated compound", text: "honey-badger", reason: "Profanity is not allowed!"},
		{name: "Punctuation inside a clean word", text: "snakes,badgers", reason: ""},
		{name: "Sentinel token", text: "value is NULL", reason: "NULL is not allowed!"},
		{name: "Sentinel is case sensitive", text: "value is null", reason: ""},
		{name: "Empty text", text: "", reason: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Check(tt.text)
			if tt.reason == "" {
				require.NoError(t, err)
				return
			}
			var rejection *RejectionError
			require.ErrorAs(t, err, &rejection)
			require.Equal(t, tt.reason, rejection.Reason())
		})
	}
}

func TestModerator_ProfanityCheckedBeforeSentinel(t *testing.T) {
	req := require.New(t)
	m := newTestModerator(t, "badger")

	// When a message has both a banned word and the sentinel
	err := m.Check("badger NULL")

	// Then the profanity rejection wins
	req.ErrorIs(err, ErrProfane)
	req.False(errors.Is(err, ErrSentinel))
}

func TestModerator_NoWords(t *testing.T) {
	req := require.New(t)
	m := newTestModerator(t)

	req.Empty(m.Matches("anything goes"))
	req.ErrorIs(m.Check("NULL"), ErrSentinel)
}

func TestModerator_Matches(t *testing.T) {
	req := require.New(t)
	m := newTestModerator(t, "badger", "Badger", "snake")

	req.Equal([]string{"badger", "snake"}, m.Matches("badger and snake"))
	// a word found by both readings is listed once
	req.Equal([]string{"badger", "snake"}, m.Matches("ok,badger s.n.a.k.e"))
}

func TestLoadWords(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "words.txt")
	req.NoError(os.WriteFile(path, []byte("# banned\nbadger\n\n  snake  \n"), 0o600))

	words, err := LoadWords(path)
	req.NoError(err)
	req.Equal([]string{"badger", "snake"}, words)

	_, err = LoadWords(filepath.Join(t.TempDir(), "missing.txt"))
	req.Error(err)
}
