// Package shell turns the script text of a CI step into an ordered list of
// logical commands. The script is first parsed structurally; when the parser
// rejects it (GitHub expressions, partial snippets, unsupported syntax) a
// textual splitter is used instead. Both paths are expected, so the result
// records which one produced the commands rather than returning an error.
package shell

import (
	"bytes"
	"errors"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

type Mode int

const (
	Parsed Mode = iota
	FellBack
)

func (m Mode) String() string {
	if m == FellBack {
		return "fallback"
	}
	return "parsed"
}

type Result struct {
	Mode     Mode
	Commands []string
	// ParseError is the error which caused the fallback. It is nil when Mode is Parsed.
	ParseError error
}

// Extract never fails. An empty or comment-only script yields no commands.
func Extract(script string) *Result {
	src := stripComments(script)
	if src == "" {
		return &Result{Mode: Parsed}
	}
	cmds, err := parse(src)
	if err != nil {
		return &Result{
			Mode:       FellBack,
			Commands:   splitFallback(src),
			ParseError: err,
		}
	}
	return &Result{Mode: Parsed, Commands: cmds}
}

func stripComments(script string) string {
	lines := strings.Split(script, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// ErrorClass names the kind of parse failure for logging.
func ErrorClass(err error) string {
	var pe syntax.ParseError
	if errors.As(err, &pe) {
		return "syntax"
	}
	var le syntax.LangError
	if errors.As(err, &le) {
		return "unsupported"
	}
	return "other"
}

func parse(src string) (cmds []string, err error) {
	defer func() {
		// the parser must never abort the step
		if r := recover(); r != nil {
			cmds = nil
			err = errors.New("panic while parsing a shell script")
		}
	}()
	f, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(src), "")
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	w := &walker{printer: syntax.NewPrinter()}
	syntax.Walk(f, w.visit)
	return w.cmds, nil
}

type walker struct {
	printer *syntax.Printer
	cmds    []string
}

// visit collects one entry per leaf command. Pipelines and lists are walked
// through without being emitted. Words are not descended into, so command
// substitutions and heredoc bodies don't produce commands of their own.
func (w *walker) visit(node syntax.Node) bool {
	switch n := node.(type) {
	case *syntax.CallExpr:
		w.cmds = append(w.cmds, w.callString(n))
		return false
	case *syntax.DeclClause:
		w.cmds = append(w.cmds, w.declString(n))
		return false
	case *syntax.Word, *syntax.TestClause, *syntax.ArithmCmd, *syntax.LetClause:
		return false
	}
	return true
}

func (w *walker) callString(c *syntax.CallExpr) string {
	parts := make([]string, 0, len(c.Assigns)+len(c.Args))
	for _, a := range c.Assigns {
		parts = append(parts, w.assignString(a))
	}
	for _, word := range c.Args {
		parts = append(parts, w.wordString(word))
	}
	return strings.Join(parts, " ")
}

func (w *walker) declString(d *syntax.DeclClause) string {
	parts := make([]string, 0, len(d.Args)+1)
	if d.Variant != nil {
		parts = append(parts, d.Variant.Value)
	}
	for _, a := range d.Args {
		parts = append(parts, w.assignString(a))
	}
	return strings.Join(parts, " ")
}

func (w *walker) assignString(a *syntax.Assign) string {
	if a.Naked {
		if a.Name != nil {
			return a.Name.Value
		}
		if a.Value != nil {
			return w.wordString(a.Value)
		}
		return ""
	}
	name := ""
	if a.Name != nil {
		name = a.Name.Value
	}
	op := "="
	if a.Append {
		op = "+="
	}
	if a.Array != nil {
		return name + op + "()"
	}
	if a.Value == nil {
		return name + op
	}
	return name + op + w.wordString(a.Value)
}

func (w *walker) wordString(word *syntax.Word) string {
	if lit := word.Lit(); lit != "" {
		return lit
	}
	buf := &bytes.Buffer{}
	if err := w.printer.Print(buf, word); err != nil {
		return ""
	}
	return buf.String()
}
