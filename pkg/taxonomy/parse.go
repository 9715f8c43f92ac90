package taxonomy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/cimaturity/pkg/action"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

var (
	errTaskOutsideSubdomain   = errors.New("a task must be under a subdomain")
	errSubdomainOutsideDomain = errors.New("a subdomain must be under a domain")
	errTaskFields             = errors.New("a task must have a name, a frequency, a level, and instances")
)

// Load reads an outline file.
func Load(fs afero.Fs, path string) (*Taxonomy, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open a taxonomy file: %w", err)
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, logerr.WithFields(err, logrus.Fields{ //nolint:wrapcheck
			"taxonomy_file": path,
		})
	}
	return t, nil
}

// Parse parses an outline.
//
//	# Domain
//	## Subdomain
//	Free text describing the subdomain.
//	- Task name; 42; basic; Uses actions/checkout, Runs make test, some-plugin
//
// Instance descriptors are parsed with action.Parse.
func Parse(r io.Reader) (*Taxonomy, error) {
	t := &Taxonomy{}
	var domain *Domain
	var subdomain *Subdomain
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "## "):
			if domain == nil {
				return nil, lineError(lineNum, errSubdomainOutsideDomain)
			}
			subdomain = &Subdomain{Name: strings.TrimSpace(line[3:])}
			domain.Subdomains = append(domain.Subdomains, subdomain)
		case strings.HasPrefix(line, "# "):
			domain = &Domain{Name: strings.TrimSpace(line[2:])}
			subdomain = nil
			t.Domains = append(t.Domains, domain)
		case strings.HasPrefix(line, "- "):
			if subdomain == nil {
				return nil, lineError(lineNum, errTaskOutsideSubdomain)
			}
			task, err := parseTask(line[2:])
			if err != nil {
				return nil, lineError(lineNum, err)
			}
			subdomain.Tasks = append(subdomain.Tasks, task)
		default:
			switch {
			case subdomain != nil:
				subdomain.Description = line
			case domain != nil:
				domain.Description = line
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read a taxonomy: %w", err)
	}
	return t, nil
}

func lineError(lineNum int, err error) error {
	return fmt.Errorf("line %d: %w", lineNum, err)
}

func parseTask(s string) (*Task, error) {
	fields := strings.Split(s, ";")
	if len(fields) < 4 { //nolint:mnd
		return nil, errTaskFields
	}
	freq, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return nil, fmt.Errorf("parse a task frequency: %w", err)
	}
	level, err := ParseLevel(fields[2])
	if err != nil {
		return nil, err
	}
	instances := []action.Action{}
	for _, desc := range strings.Split(fields[3], ",") {
		desc = strings.TrimSpace(desc)
		if desc == "" {
			continue
		}
		instances = append(instances, action.Parse(desc))
	}
	return &Task{
		Name:      strings.TrimSpace(fields[0]),
		Instances: instances,
		Level:     level,
		Frequency: freq,
	}, nil
}

// Format writes the taxonomy as an outline which Parse reads back to the same taxonomy.
func Format(w io.Writer, t *Taxonomy) error {
	bw := bufio.NewWriter(w)
	for i, domain := range t.Domains {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "# %s\n", domain.Name)
		if domain.Description != "" {
			fmt.Fprintln(bw, domain.Description)
		}
		for _, sub := range domain.Subdomains {
			fmt.Fprintf(bw, "\n## %s\n", sub.Name)
			if sub.Description != "" {
				fmt.Fprintln(bw, sub.Description)
			}
			for _, task := range sub.Tasks {
				descs := make([]string, len(task.Instances))
				for j, instance := range task.Instances {
					descs[j] = instance.Descriptor()
				}
				fmt.Fprintf(bw, "- %s; %d; %s; %s\n", task.Name, task.Frequency, task.Level.Keyword(), strings.Join(descs, ", "))
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write a taxonomy: %w", err)
	}
	return nil
}
