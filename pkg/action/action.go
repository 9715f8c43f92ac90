// Package action defines the canonical identity of what a CI step does.
// An Action is a small comparable value (kind + canonical payload) so it can be
// used directly as a map key when occurrences are aggregated across a corpus
// of repositories. Provenance such as the job or workflow file is carried
// separately in Metadata and never takes part in equality.
package action

import (
	"errors"
	"strings"
)

type Kind int

const (
	KindEmpty Kind = iota
	KindUses
	KindRun
	KindPlugin
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindUses:
		return "uses"
	case KindRun:
		return "run"
	case KindPlugin:
		return "plugin"
	case KindInvalid:
		return "invalid"
	default:
		return "empty"
	}
}

// Action is comparable. Two actions are equal iff they have the same kind and
// the same canonical value.
type Action struct {
	kind  Kind
	value string
}

// Uses returns a reusable-action reference with any trailing @version removed.
func Uses(ref string) Action {
	name, _ := SplitRef(ref)
	return Action{kind: KindUses, value: name}
}

// SplitRef splits "owner/repo@v1" into "owner/repo" and "v1".
// The last "@" wins so that refs containing "@" in the path are kept intact.
func SplitRef(ref string) (string, string) {
	idx := strings.LastIndex(ref, "@")
	if idx == -1 {
		return ref, ""
	}
	return ref[:idx], ref[idx+1:]
}

// Run returns a canonicalized shell command. See Canonicalize.
func Run(cmd string) Action {
	return Action{kind: KindRun, value: Canonicalize(cmd)}
}

func Plugin(name string) Action {
	return Action{kind: KindPlugin, value: name}
}

func Empty() Action {
	return Action{kind: KindEmpty}
}

func Invalid() Action {
	return Action{kind: KindInvalid}
}

func (a Action) Kind() Kind {
	return a.kind
}

// Value returns the canonical payload. It is empty for Empty and Invalid.
func (a Action) Value() string {
	return a.value
}

// Prefix returns the recognized tool prefix of a Run action, or "".
func (a Action) Prefix() string {
	if a.kind != KindRun {
		return ""
	}
	return recognizedPrefix(a.value)
}

func (a Action) String() string {
	switch a.kind {
	case KindUses:
		return "Uses " + a.value
	case KindRun:
		return `Runs "` + a.value + `"`
	case KindPlugin:
		return "Plugin " + a.value
	case KindInvalid:
		return "Invalid file"
	default:
		return "Empty action"
	}
}

// Descriptor returns the form used in taxonomy outlines.
// Parse(a.Descriptor()) == a for Uses, Run and Plugin actions.
func (a Action) Descriptor() string {
	switch a.kind {
	case KindUses:
		return "Uses " + a.value
	case KindRun:
		return "Runs " + a.value
	default:
		return a.value
	}
}

// Parse parses a taxonomy instance descriptor.
// "Uses <ref>" and "Runs <command words>" go through the same constructors as
// live extraction; any other text is a plugin identifier.
func Parse(s string) Action {
	switch {
	case strings.HasPrefix(s, "Uses "):
		return Uses(strings.Join(strings.Fields(s)[1:], " "))
	case strings.HasPrefix(s, "Runs "):
		return Run(strings.Join(strings.Fields(strings.ReplaceAll(s, "'", ""))[1:], " "))
	default:
		return Plugin(s)
	}
}

var errUnknownKind = errors.New("unknown action kind")

// MarshalText encodes the action as "<kind>:<value>", or just the kind for
// Empty and Invalid.
func (a Action) MarshalText() ([]byte, error) {
	switch a.kind {
	case KindEmpty, KindInvalid:
		return []byte(a.kind.String()), nil
	default:
		return []byte(a.kind.String() + ":" + a.value), nil
	}
}

func (a *Action) UnmarshalText(b []byte) error {
	kind, value, _ := strings.Cut(string(b), ":")
	switch kind {
	case "uses":
		*a = Action{kind: KindUses, value: value}
	case "run":
		*a = Action{kind: KindRun, value: value}
	case "plugin":
		*a = Plugin(value)
	case "empty":
		*a = Empty()
	case "invalid":
		*a = Invalid()
	default:
		return errUnknownKind
	}
	return nil
}
