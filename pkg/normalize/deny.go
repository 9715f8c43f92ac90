package normalize

import "strings"

// Commands starting with these tokens carry no automation signal.
var deniedFirstTokens = map[string]struct{}{ //nolint:gochecknoglobals
	"cd": {}, "echo": {}, "ls": {}, "mkdir": {}, "rm": {}, "chmod": {}, "grep": {},
	"touch": {}, "[": {}, "[[": {}, "elif": {}, "sleep": {}, "printf": {}, "(echo": {},
	">&2 echo": {}, "${{": {}, "if": {}, "mv": {}, "cat": {}, "tr": {}, "for": {},
	"true": {}, `"${{`: {}, "exit": {}, "head": {}, "cut": {}, "tail": {}, "wc": {},
	"which": {}, "-": {}, "unset": {}, "pwd": {}, "then": {}, "EOF": {}, "while": {},
	"case": {}, "import": {}, ")": {}, "sed": {}, "cp": {}, "tee": {}, "find": {},
}

var deniedCommands = map[string]struct{}{ //nolint:gochecknoglobals
	"": {}, "fi": {}, "else": {}, "done": {}, "do": {}, "}": {}, "{": {},
}

// Denied reports whether a normalized command is noise.
func Denied(cmd string) bool {
	if _, ok := deniedCommands[cmd]; ok {
		return true
	}
	if strings.HasPrefix(cmd, "#") {
		return true
	}
	tokens := strings.Fields(cmd)
	if len(tokens) == 0 {
		return true
	}
	_, ok := deniedFirstTokens[tokens[0]]
	return ok
}

// Filter returns the commands which aren't denied, preserving order.
// Filtering is idempotent.
func Filter(cmds []string) []string {
	kept := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		if !Denied(cmd) {
			kept = append(kept, cmd)
		}
	}
	return kept
}
