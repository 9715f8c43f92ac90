package shell

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// A separator is a line break, "&&" or "|" which isn't escaped with a backslash.
var (
	fallbackSeparator = regexp2.MustCompile(`(?<!\\)(?:\s*&&\s*|\s*\|\s*|\n)`, regexp2.None)
	lineContinuation  = regexp.MustCompile(`\\\s*`)
)

func splitFallback(src string) []string {
	src = strings.TrimSpace(src)
	runes := []rune(src)
	fragments := []string{}
	start := 0
	m, err := fallbackSeparator.FindStringMatch(src)
	for err == nil && m != nil {
		fragments = append(fragments, string(runes[start:m.Index]))
		start = m.Index + m.Length
		m, err = fallbackSeparator.FindNextMatch(m)
	}
	fragments = append(fragments, string(runes[start:]))

	cmds := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		cmds = append(cmds, lineContinuation.ReplaceAllString(fragment, ""))
	}
	return cmds
}
