package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/ecoguia/internal/runtime"
	"github.com/aretw0/ecoguia/pkg/domain"
)

// Report is the outcome of crawling a dialogue definition.
type Report struct {
	StartNodeID string
	Reachable   []string // in visit order
	Unreachable []string // sorted
	BrokenLinks []string // "from -> to" for every reference to a missing node
	DeadEnds    []string // choice nodes without any option, sorted
}

// OK reports whether the crawl found no broken links.
// Unreachable nodes and dead ends are warnings only.
func (r *Report) OK() bool {
	return len(r.BrokenLinks) == 0
}

// Err summarizes broken links as a single error.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(r.BrokenLinks), strings.Join(r.BrokenLinks, "\n- "))
}

// ValidateGraph checks for broken links and unreachable nodes starting from the entry node.
// Structural problems (duplicate ids, missing start) are returned as the error.
func ValidateGraph(def *domain.Definition) (*Report, error) {
	g, err := runtime.LoadGraph(def, runtime.WithLazyReferences())
	if err != nil {
		return nil, err
	}

	report := &Report{StartNodeID: g.StartNodeID()}
	visited := map[string]bool{}
	queue := []string{g.StartNodeID()}

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true
		report.Reachable = append(report.Reachable, currentID)

		node, _ := g.Node(currentID)
		if node.IsChoice() && len(node.Options) == 0 {
			report.DeadEnds = append(report.DeadEnds, currentID)
		}

		for _, target := range node.Targets() {
			if _, ok := g.Node(target); !ok {
				report.BrokenLinks = append(report.BrokenLinks, fmt.Sprintf("%s -> %s", currentID, target))
				continue
			}
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	for _, n := range g.Nodes() {
		if !visited[n.ID] {
			report.Unreachable = append(report.Unreachable, n.ID)
		}
	}
	sort.Strings(report.Unreachable)
	sort.Strings(report.DeadEnds)

	return report, nil
}
