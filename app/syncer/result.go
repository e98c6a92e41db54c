package syncer

import (
	"fmt"
)

type Outcome int

const (
	Unchanged Outcome = iota
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Updated:
		return "updated"
	}
	return "unknown"
}

// Result is the outcome of one run. Old and New both carry the record value,
// equal when nothing was written.
type Result struct {
	Outcome Outcome
	Old     string
	New     string
}

func (r *Result) String() string {
	if r.Outcome == Updated {
		return fmt.Sprintf("updated %s -> %s", r.Old, r.New)
	}
	return fmt.Sprintf("unchanged (%s)", r.New)
}
