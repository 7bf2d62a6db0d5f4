package moderation

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultWords is the built-in banned word list used when no file is configured.
var DefaultWords = []string{
	"anal", "anus", "arse", "ass", "asshole", "bastard", "bitch", "bollocks",
	"boner", "bullshit", "clit", "cock", "crap", "cunt", "dick", "dildo",
	"dyke", "fag", "faggot", "fuck", "fucker", "fucking", "jerkoff", "jizz",
	"motherfucker", "nigger", "penis", "piss", "prick", "pussy", "scrotum",
	"shit", "slut", "twat", "vagina", "wank", "whore",
}

// LoadWords reads one banned word per line. Blank lines and lines starting
// with '#' are skipped.
func LoadWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return words, nil
}
