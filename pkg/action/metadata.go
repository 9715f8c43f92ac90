package action

import "fmt"

// Metadata identifies where an Action occurrence came from.
// It is used for provenance and reporting only.
type Metadata struct {
	JobID        string `json:"job_id,omitempty"`
	JobName      string `json:"job_name,omitempty"`
	StepName     string `json:"step_name,omitempty"`
	WorkflowFile string `json:"workflow_file,omitempty"`
	WorkflowName string `json:"workflow_name,omitempty"`
	// Ref is the version suffix removed from a uses reference.
	Ref string `json:"ref,omitempty"`
}

func (m *Metadata) String() string {
	if m == nil {
		return ""
	}
	return fmt.Sprintf("Workflow %s:%s -> Job %s%s -> Step %s", m.WorkflowFile, m.WorkflowName, m.JobID, m.JobName, m.StepName)
}
