package dedupe

import (
	"fmt"

	"github.com/taggedzi/creddedupe/pkg/errors"
	"github.com/taggedzi/creddedupe/pkg/vault"
)

// Action is a reviewer's verdict on a pending cluster.
type Action string

const (
	// KeepOne keeps the member at Decision.Index and discards the rest.
	KeepOne Action = "keep-one"
	// KeepBest keeps the cluster's proposed preferred member and discards
	// the rest.
	KeepBest Action = "keep-best"
	// KeepAll keeps every member, merging nothing.
	KeepAll Action = "keep-all"
	// Skip leaves every member untouched for a later pass.
	Skip Action = "skip"
)

// ParseAction converts a string into an Action.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case KeepOne, KeepBest, KeepAll, Skip:
		return Action(s), nil
	default:
		return "", errors.NewValidationError("action", s, "must be one of keep-one, keep-best, keep-all, skip")
	}
}

// Decision pairs an Action with its parameters.
type Decision struct {
	Action Action

	// Index selects the surviving member for KeepOne. Ignored otherwise.
	Index int
}

// ApplyDecision resolves a pending cluster according to a decision and
// returns the surviving items. It is the only path in the package that
// discards records: Group never drops a reviewable member on its own.
//
// A survivor of a merging action carries the cluster's merged notes; all of
// its other fields are left exactly as imported. Input items are cloned, so
// the cluster can be re-resolved with a different decision.
func ApplyDecision(c *Cluster, d Decision) ([]vault.Item, error) {
	if c == nil || len(c.Members) == 0 {
		return nil, errors.NewValidationError("cluster", "", "cluster has no members")
	}

	switch d.Action {
	case KeepOne:
		if d.Index < 0 || d.Index >= len(c.Members) {
			return nil, errors.NewValidationError("index", d.Index,
				fmt.Sprintf("cluster has %d members", len(c.Members)))
		}
		return []vault.Item{mergedSurvivor(c, d.Index)}, nil

	case KeepBest:
		return []vault.Item{mergedSurvivor(c, c.Preferred)}, nil

	case KeepAll, Skip:
		out := make([]vault.Item, 0, len(c.Members))
		for _, it := range c.Members {
			out = append(out, it.Clone())
		}
		return out, nil

	default:
		return nil, errors.NewValidationError("action", string(d.Action), "unknown decision action")
	}
}

// mergedSurvivor clones the member at idx and replaces its notes with the
// merged-notes text computed as if idx were the preferred member.
func mergedSurvivor(c *Cluster, idx int) vault.Item {
	view := *c
	view.Preferred = idx

	out := c.Members[idx].Clone()
	out.Notes = MergeNotes(&view)
	return out
}
