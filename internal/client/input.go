package client

import (
	"strings"

	"github.com/samber/lo"
)

// handleTabCompletion extends a partially typed command to the longest
// prefix shared by every command it could still become.
func (a *App) handleTabCompletion() {
	typed := a.input.Value()
	if a.input.Position() != len([]rune(typed)) {
		return
	}
	if !strings.HasPrefix(typed, string(a.cfg.Prefix())) || strings.ContainsAny(typed, " \t") {
		return
	}

	candidates := lo.FilterMap(a.commands, func(c commandSpec, _ int) (string, bool) {
		return c.trigger, strings.HasPrefix(c.trigger, typed)
	})
	if len(candidates) == 0 {
		return
	}
	if completed := sharedPrefix(candidates); len(completed) > len(typed) {
		a.input.SetValue(completed)
		a.input.CursorEnd()
	}
}

func sharedPrefix(values []string) string {
	prefix := values[0]
	for _, v := range values[1:] {
		n := 0
		for n < len(prefix) && n < len(v) && prefix[n] == v[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return prefix
}
