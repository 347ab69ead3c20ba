package pipeline

import (
	"fmt"
	"sort"
)

const (
	StageLoans       = "stg_loans"
	StagePayments    = "stg_loan_payments"
	StageLoanDetails = "fct_loan_details"
	StageMonthly     = "agg_monthly_loans"
)

type Stage struct {
	Name      string
	DependsOn []string
}

// Stages is the static transformation graph: raw → staging → detail →
// aggregate, one direction, no cycles. Each stage consumes only the fully
// materialized output of its dependencies.
var Stages = []Stage{
	{Name: StageLoans},
	{Name: StagePayments},
	{Name: StageLoanDetails, DependsOn: []string{StageLoans}},
	{Name: StageMonthly, DependsOn: []string{StageLoanDetails, StagePayments}},
}

// TopoOrder returns a deterministic topological order of the stage graph
// (Kahn's algorithm, lexicographic tie-break). Unknown dependencies and
// cycles are errors.
func TopoOrder(stages []Stage) ([]string, error) {
	indeg := make(map[string]int, len(stages))
	dependents := make(map[string][]string)
	for _, s := range stages {
		if _, dup := indeg[s.Name]; dup {
			return nil, fmt.Errorf("duplicate stage %q", s.Name)
		}
		indeg[s.Name] = 0
	}
	for _, s := range stages {
		for _, dep := range s.DependsOn {
			if _, ok := indeg[dep]; !ok {
				return nil, fmt.Errorf("stage %q depends on unknown stage %q", s.Name, dep)
			}
			indeg[s.Name]++
			dependents[dep] = append(dependents[dep], s.Name)
		}
	}

	var ready []string
	for name, d := range indeg {
		if d == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(stages))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)
		for _, next := range dependents[name] {
			indeg[next]--
			if indeg[next] == 0 {
				ready = append(ready, next)
			}
		}
		sort.Strings(ready)
	}
	if len(order) != len(stages) {
		return nil, fmt.Errorf("stage graph has a cycle")
	}
	return order, nil
}
