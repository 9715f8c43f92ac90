// Package workflow turns GitHub Actions workflow files into Action occurrences.
package workflow

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/cimaturity/pkg/action"
	"github.com/suzuki-shunsuke/cimaturity/pkg/normalize"
	"github.com/suzuki-shunsuke/cimaturity/pkg/shell"
)

var errNotMapping = errors.New("a workflow must be a mapping")

type Occurrence struct {
	Action   action.Action
	Metadata *action.Metadata
}

// Extract returns the actions of a workflow file in job and step order.
//
// A step with a run script (unless its shell is python) yields one Run action
// per retained command, or Empty if nothing is retained. A run value of true
// skips the step and any other non-string value yields Empty.
// Otherwise a step with uses yields a Uses action, and any other step yields Empty.
//
// An error is returned if the file isn't a valid workflow document.
// An empty document has no actions.
func Extract(logE *logrus.Entry, fileName string, data []byte) ([]*Occurrence, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("parse a workflow file as YAML: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	wf, ok := mapping(doc)
	if !ok {
		return nil, errNotMapping
	}
	workflowName := str(lookup(wf, "name"))
	jobs, _ := mapping(lookup(wf, "jobs"))

	occurrences := []*Occurrence{}
	for _, item := range jobs {
		job, ok := mapping(item.Value)
		if !ok {
			continue
		}
		steps, _ := lookup(job, "steps").([]any)
		jobID := str(item.Key)
		jobName := str(lookup(job, "name"))
		for _, s := range steps {
			step, ok := mapping(s)
			if !ok {
				continue
			}
			meta := &action.Metadata{
				JobID:        jobID,
				JobName:      jobName,
				StepName:     str(lookup(step, "name")),
				WorkflowFile: fileName,
				WorkflowName: workflowName,
			}
			for _, a := range stepActions(logE.WithFields(logrus.Fields{
				"job_id": jobID,
				"step":   meta.StepName,
			}), step, meta) {
				occurrences = append(occurrences, &Occurrence{Action: a, Metadata: meta})
			}
		}
	}
	return occurrences, nil
}

func stepActions(logE *logrus.Entry, step yaml.MapSlice, meta *action.Metadata) []action.Action {
	run := lookup(step, "run")
	if truthy(run) && str(lookup(step, "shell")) != "python" {
		switch script := run.(type) {
		case bool:
			return nil
		case string:
			return runActions(logE, script)
		default:
			return []action.Action{action.Empty()}
		}
	}
	if uses, ok := lookup(step, "uses").(string); ok && uses != "" {
		_, meta.Ref = action.SplitRef(uses)
		return []action.Action{action.Uses(uses)}
	}
	return []action.Action{action.Empty()}
}

func runActions(logE *logrus.Entry, script string) []action.Action {
	result := shell.Extract(script)
	if result.Mode == shell.FellBack {
		logE.WithFields(logrus.Fields{
			"parse_error_class": shell.ErrorClass(result.ParseError),
			"parse_error":       result.ParseError,
		}).Debug("split a run script with the fallback splitter")
	}
	signals := normalize.Signals(result.Commands)
	if len(signals) == 0 {
		return []action.Action{action.Empty()}
	}
	actions := make([]action.Action, len(signals))
	for i, signal := range signals {
		actions[i] = action.Run(signal)
	}
	return actions
}

func mapping(v any) (yaml.MapSlice, bool) {
	switch m := v.(type) {
	case yaml.MapSlice:
		return m, true
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		ms := make(yaml.MapSlice, len(keys))
		for i, k := range keys {
			ms[i] = yaml.MapItem{Key: k, Value: m[k]}
		}
		return ms, true
	default:
		return nil, false
	}
}

func lookup(m yaml.MapSlice, key string) any {
	for _, item := range m {
		if k, ok := item.Key.(string); ok && k == key {
			return item.Value
		}
	}
	return nil
}

func str(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

// truthy follows YAML's notion of an unset value: null, false, zero, and empty values are falsy.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case yaml.MapSlice:
		return len(x) > 0
	default:
		return !reflect.ValueOf(v).IsZero()
	}
}
