// Package sarif is the subset of SARIF 2.1.0 used to report unsatisfied tasks.
// https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-v2.1.0.html
package sarif

const (
	Schema  = "https://json.schemastore.org/sarif-2.1.0.json"
	Version = "2.1.0"
)

type Log struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run is the result of scoring one repository.
type Run struct {
	Tool                     Tool                    `json:"tool"`
	VersionControlProvenance []VersionControlDetails `json:"versionControlProvenance,omitempty"`
	Results                  []Result                `json:"results"`
}

type Tool struct {
	Driver Driver `json:"driver"`
}

type Driver struct {
	Name           string `json:"name"`
	InformationURI string `json:"informationUri,omitempty"`
	Version        string `json:"version,omitempty"`
	Rules          []Rule `json:"rules,omitempty"`
}

// Rule is a task of the taxonomy.
type Rule struct {
	ID               string   `json:"id"`
	ShortDescription Message  `json:"shortDescription"`
	FullDescription  *Message `json:"fullDescription,omitempty"`
}

type VersionControlDetails struct {
	RepositoryURI string `json:"repositoryUri"`
}

type Result struct {
	RuleID     string      `json:"ruleId"`
	Level      string      `json:"level"`
	Message    Message     `json:"message"`
	Locations  []Location  `json:"locations,omitempty"`
	Properties *Properties `json:"properties,omitempty"`
}

// Properties is the property bag of a result.
type Properties struct {
	Domain      string `json:"domain"`
	Subdomain   string `json:"subdomain"`
	TaskLevel   string `json:"taskLevel"`
	DomainLevel string `json:"domainLevel"`
	Frequency   int    `json:"frequency"`
}

type Message struct {
	Text string `json:"text"`
}

type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
}

type ArtifactLocation struct {
	URI string `json:"uri"`
}
