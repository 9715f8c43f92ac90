// Package normalize converts raw shell commands into retained signal strings.
// Each command is cleaned of incidental flags and assignments, wrapper
// commands and build-tool lifecycles are expanded, and commands which carry no
// automation signal (shell builtins, control keywords) are dropped.
package normalize

import (
	"strings"

	"github.com/suzuki-shunsuke/cimaturity/pkg/shell"
)

const skipTestsFlag = "-DskipTests"

var controlPrefixes = []string{"sudo", "xargs", "call", "until"} //nolint:gochecknoglobals

// Clean strips the leading control prefixes, each at most once and in the
// order sudo, xargs, call, until, and one trailing ";". Then it drops
// flags, variable references and assignments. Tokens containing -DskipTests
// are kept because they change the meaning of Maven lifecycle commands.
func Clean(cmd string) string {
	for _, prefix := range controlPrefixes {
		if rest, ok := strings.CutPrefix(cmd, prefix+" "); ok {
			cmd = rest
		}
	}
	cmd = strings.TrimSuffix(cmd, ";")

	tokens := strings.Fields(cmd)
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.Contains(token, skipTestsFlag) || !isNoise(token) {
			kept = append(kept, token)
		}
	}
	return strings.Join(kept, " ")
}

func isNoise(token string) bool {
	return strings.HasPrefix(token, "-") || strings.HasPrefix(token, "$") || strings.Contains(token, "=")
}

// SplitSpecialCases expands a cleaned command into independent signals.
func SplitSpecialCases(cmd string) []string {
	if rest, ok := cutTokens(cmd, "poetry", "run"); ok {
		return []string{"poetry run", Clean(rest)}
	}
	if isMaven(cmd) {
		return ExpandMaven(cmd)
	}
	return []string{cmd}
}

func cutTokens(cmd string, prefix ...string) (string, bool) {
	tokens := strings.Fields(cmd)
	if len(tokens) < len(prefix) {
		return "", false
	}
	for i, p := range prefix {
		if tokens[i] != p {
			return "", false
		}
	}
	return strings.Join(tokens[len(prefix):], " "), true
}

// Signals normalizes extracted commands, preserving their order.
func Signals(cmds []string) []string {
	signals := []string{}
	for _, cmd := range cmds {
		signals = append(signals, Filter(SplitSpecialCases(Clean(cmd)))...)
	}
	return signals
}

// Process extracts and normalizes the signals of a step script.
func Process(script string) []string {
	return Signals(shell.Extract(script).Commands)
}
