package normalize

import "strings"

const (
	mvnCompile = "mvn compile"
	mvnTest    = "mvn test"
	mvnPackage = "mvn package"
)

// Invoking a later lifecycle phase runs the earlier ones as well.
var mavenLifecycle = map[string][]string{ //nolint:gochecknoglobals
	"mvn test":             {mvnCompile},
	"mvn package":          {mvnCompile, mvnTest},
	"mvn integration-test": {mvnCompile, mvnTest, mvnPackage},
	"mvn verify":           {mvnCompile, mvnTest},
	"mvn install":          {mvnCompile, mvnTest},
	"mvn deploy":           {mvnCompile, mvnTest},
}

var mavenExecutables = []string{"mvn", "./mvnw", "./build/mvn"} //nolint:gochecknoglobals

func isMaven(cmd string) bool {
	for _, exe := range mavenExecutables {
		if strings.HasPrefix(cmd, exe) {
			return true
		}
	}
	return false
}

// ExpandMaven returns the set of Maven signals implied by a command.
// Every argument becomes "mvn <argument>" together with the phases it implies.
// If -DskipTests is given, "mvn test" is removed even when it was implied.
// The result has no duplicates; it is ordered by argument and then by lifecycle.
func ExpandMaven(cmd string) []string {
	tokens := strings.Fields(cmd)
	if len(tokens) == 0 {
		return nil
	}
	skipTests := false
	args := make([]string, 0, len(tokens))
	for _, token := range tokens[1:] {
		if strings.Contains(token, skipTestsFlag) {
			skipTests = true
			continue
		}
		args = append(args, token)
	}

	seen := map[string]struct{}{}
	signals := []string{}
	add := func(s string) {
		if skipTests && s == mvnTest {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		signals = append(signals, s)
	}
	for _, arg := range args {
		goal := "mvn " + arg
		add(goal)
		for _, implied := range mavenLifecycle[goal] {
			add(implied)
		}
	}
	return signals
}
