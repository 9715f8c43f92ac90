package score

import "github.com/suzuki-shunsuke/cimaturity/pkg/taxonomy"

type DomainLevel struct {
	Domain *taxonomy.Domain
	Level  taxonomy.Level
	// Joker is true if the level was promoted by Joker.
	Joker bool
}

// Maturity returns the maturity level of each domain in taxonomy order.
//
// Levels are scanned in ascending order. A level is credited when it has at
// least one task and all of its tasks are satisfied. The scan stops at the
// first level which isn't credited, so a level without tasks also stops it.
func Maturity(report *Report) []*DomainLevel {
	levels := make([]*DomainLevel, len(report.Domains))
	for i, domain := range report.Domains {
		levels[i] = &DomainLevel{
			Domain: domain.Domain,
			Level:  domainMaturity(domain),
		}
	}
	return levels
}

func domainMaturity(domain *DomainResult) taxonomy.Level {
	level := taxonomy.None
	for _, l := range taxonomy.Levels {
		tasks := domain.Tasks(l)
		if len(tasks) == 0 || !allSatisfied(tasks) {
			break
		}
		level = l
	}
	return level
}

func allSatisfied(tasks []*TaskResult) bool {
	for _, task := range tasks {
		if !task.Satisfied {
			return false
		}
	}
	return true
}

// Joker forgives one missing step of one domain.
//
// Among the domains at the lowest level, the domain whose levels after the
// blocking level are satisfied the furthest is chosen; the first one wins ties.
// Its level is raised past the blocking level and every complete level following it.
// Joker never lowers a level and never goes beyond Advanced.
// It does nothing if levels is empty or every domain is Advanced.
// levels must be in the same order as report.Domains.
func Joker(report *Report, levels []*DomainLevel) {
	if len(levels) == 0 {
		return
	}
	lowest := Lowest(levels)
	if lowest == taxonomy.Advanced {
		return
	}
	var chosen *DomainLevel
	best := -1
	for i, dl := range levels {
		if dl.Level != lowest {
			continue
		}
		n := lookahead(report.Domains[i], lowest)
		if n > best {
			chosen = dl
			best = n
		}
	}
	level := chosen.Level
	for range best + 1 {
		level = level.Next()
	}
	chosen.Level = level
	chosen.Joker = true
}

// lookahead counts the consecutive complete levels after the blocking level.
// A level without tasks is complete.
func lookahead(domain *DomainResult, current taxonomy.Level) int {
	n := 0
	for l := current.Next(); l < taxonomy.Advanced; l++ {
		if !allSatisfied(domain.Tasks(l + 1)) {
			break
		}
		n++
	}
	return n
}

// Lowest returns the lowest level. It returns None if levels is empty.
func Lowest(levels []*DomainLevel) taxonomy.Level {
	if len(levels) == 0 {
		return taxonomy.None
	}
	lowest := taxonomy.Advanced
	for _, dl := range levels {
		lowest = min(lowest, dl.Level)
	}
	return lowest
}

// Average returns the average level as a number between 0 (None) and 3 (Advanced).
func Average(levels []*DomainLevel) float64 {
	if len(levels) == 0 {
		return 0
	}
	sum := 0
	for _, dl := range levels {
		sum += int(dl.Level)
	}
	return float64(sum) / float64(len(levels))
}
