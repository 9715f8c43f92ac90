// Package cluster groups frequent Run actions which no tool prefix recognizes.
// Clusters are candidates for new taxonomy entries and aren't used in scoring.
package cluster

import (
	"cmp"
	"slices"
	"strings"

	"github.com/suzuki-shunsuke/cimaturity/pkg/action"
)

const DefaultThreshold = 14

type Cluster struct {
	// Key is the first token shared by the members.
	Key string
	// Members has one entry per repository using each action, ordered by command, highest first.
	Members []action.Action
}

// Build groups Run actions by their first token.
// usages maps an action to the repositories using it; an action counts once per repository.
// Clusters with no more than threshold members are dropped, and so are clusters whose
// first member already has a recognized tool prefix.
// Clusters are ordered by size, largest first, then by key.
func Build(usages map[action.Action][]string, threshold int) []*Cluster {
	groups := map[string][]action.Action{}
	for a, repos := range usages {
		if a.Kind() != action.KindRun {
			continue
		}
		tokens := strings.Fields(a.Value())
		if len(tokens) == 0 {
			continue
		}
		for range repos {
			groups[tokens[0]] = append(groups[tokens[0]], a)
		}
	}

	clusters := []*Cluster{}
	for key, members := range groups {
		if len(members) <= threshold {
			continue
		}
		slices.SortStableFunc(members, func(a, b action.Action) int {
			return cmp.Compare(b.Value(), a.Value())
		})
		if members[0].Prefix() != "" {
			continue
		}
		clusters = append(clusters, &Cluster{Key: key, Members: members})
	}
	slices.SortFunc(clusters, func(a, b *Cluster) int {
		if c := cmp.Compare(len(b.Members), len(a.Members)); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return clusters
}
