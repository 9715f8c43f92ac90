package action

import "strings"

type toolPrefix struct {
	tokens []string
	keep   int
}

const maxRunTokens = 4

// The table is scanned in order and the last matching entry wins, so longer
// prefixes ("npm run") are listed after the shorter ones they extend ("npm").
var toolPrefixes = []toolPrefix{ //nolint:gochecknoglobals
	{tokens: []string{"python3"}, keep: 2},
	{tokens: []string{"python"}, keep: 2},
	{tokens: []string{"git"}, keep: 2},
	{tokens: []string{"mvn"}, keep: 2},
	{tokens: []string{"."}, keep: 2},
	{tokens: []string{"docker"}, keep: 2},
	{tokens: []string{"make"}, keep: 2},
	{tokens: []string{"./gradlew"}, keep: 2},
	{tokens: []string{"poetry"}, keep: 2},
	{tokens: []string{"bash"}, keep: 2},
	{tokens: []string{"conda"}, keep: 2},
	{tokens: []string{"gh"}, keep: 2},
	{tokens: []string{"coverage"}, keep: 2},
	{tokens: []string{"twine"}, keep: 2},
	{tokens: []string{"brew"}, keep: 2},
	{tokens: []string{"ruff"}, keep: 2},
	{tokens: []string{"npm"}, keep: 2},
	{tokens: []string{"pre-commit"}, keep: 2},
	{tokens: []string{"/usr/bin/python3"}, keep: 2},
	{tokens: []string{"npm", "run"}, keep: 3},
	{tokens: []string{"./mvnw"}, keep: 2},
}

// Canonicalize reduces a cleaned command to a grouping key.
// The command is cut to its first four tokens. If its leading tokens match a
// known tool prefix, the first N tokens of that entry are kept; otherwise only
// the executable name is kept.
func Canonicalize(cmd string) string {
	tokens := strings.Fields(cmd)
	if len(tokens) > maxRunTokens {
		tokens = tokens[:maxRunTokens]
	}
	if len(tokens) == 0 {
		return ""
	}
	p := matchPrefix(tokens)
	if p == nil {
		return tokens[0]
	}
	return strings.Join(tokens[:min(p.keep, len(tokens))], " ")
}

func recognizedPrefix(cmd string) string {
	p := matchPrefix(strings.Fields(cmd))
	if p == nil {
		return ""
	}
	return strings.Join(p.tokens, " ")
}

func matchPrefix(tokens []string) *toolPrefix {
	var matched *toolPrefix
	for i := range toolPrefixes {
		p := &toolPrefixes[i]
		if hasTokens(tokens, p.tokens) {
			matched = p
		}
	}
	return matched
}

func hasTokens(tokens, prefix []string) bool {
	if len(tokens) < len(prefix) {
		return false
	}
	for i, t := range prefix {
		if tokens[i] != t {
			return false
		}
	}
	return true
}
