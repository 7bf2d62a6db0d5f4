//go:build tools

// Package geochat pins the code generators used by go:generate.
package geochat

import (
	_ "go.uber.org/mock/mockgen"
)
