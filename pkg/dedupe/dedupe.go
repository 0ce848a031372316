// Package dedupe partitions imported vault items into duplicate-candidate
// clusters and reconciles each cluster into a single record that preserves
// all distinct information.
//
// Grouping is a single pass keyed on (domainOrName, loginID, password?); the
// password component participates only in strict mode, the default. Clusters
// whose members agree on every important field are auto-resolved; the rest
// are surfaced for review with a proposed preferred record and a merged-notes
// preview, and are only ever discarded through ApplyDecision.
package dedupe

import (
	"github.com/taggedzi/creddedupe/pkg/logging"
	"github.com/taggedzi/creddedupe/pkg/vault"
)

// Options controls grouping behavior.
type Options struct {
	// StrictPasswords includes the password in the grouping key, so records
	// whose passwords differ never share a cluster. Default true: safer,
	// merges only what is certainly the same credential.
	StrictPasswords bool

	// EmailEquivalence treats a record's email-bearing field as an alternate
	// login identifier when the username is empty. Default true.
	EmailEquivalence bool
}

// DefaultOptions returns the default grouping options: strict passwords and
// email/username equivalence both enabled.
func DefaultOptions() Options {
	return Options{
		StrictPasswords:  true,
		EmailEquivalence: true,
	}
}

// Key is the grouping key that buckets duplicate candidates.
type Key struct {
	Domain   string
	Login    string
	Password string
}

// keyFor derives the grouping key of an item under the given options.
func keyFor(it vault.Item, opts Options) Key {
	k := Key{
		Domain: vault.DomainOrName(it),
		Login:  vault.LoginID(it, opts.EmailEquivalence),
	}
	if opts.StrictPasswords {
		k.Password = it.Password
	}
	return k
}

// Cluster is a set of items sharing a grouping key. Members preserve the
// first-seen order of the input; Preferred indexes the member proposed as the
// survivor, and NotesPreview is the merged-notes text that survivor would
// carry if the cluster were merged.
type Cluster struct {
	Key          Key
	Members      []vault.Item
	Preferred    int
	NotesPreview string
}

// Result is the outcome of one grouping pass.
type Result struct {
	// Resolved holds every item that needs no review: singletons and the
	// survivors of auto-resolved exact-duplicate clusters, in the order
	// their clusters were first seen.
	Resolved []vault.Item

	// Pending holds the clusters that require a caller decision.
	Pending []*Cluster

	// Ungrouped counts records excluded from grouping because they carry no
	// identity signal at all. They are kept as-is: merging them would risk
	// destroying unrelated entries.
	Ungrouped int

	// Collapsed holds the clusters resolved by the exact-duplicate
	// short-circuit; their surviving members are already in Resolved.
	Collapsed []*Cluster

	// AutoMerged counts clusters collapsed by the exact-duplicate
	// short-circuit, and Removed the records discarded by it.
	AutoMerged int
	Removed    int
}

// Group partitions items into duplicate-candidate clusters and resolves the
// trivial ones. It is a single pass: stable, deterministic for a given input
// order and options, and never mutates its input.
func Group(items []vault.Item, opts Options) Result {
	var res Result

	// Buckets preserve first-seen order of both keys and members.
	buckets := make(map[Key]int)
	var clusters []*Cluster

	for _, it := range items {
		k := keyFor(it, opts)
		if k.Domain == "" && k.Login == "" {
			// No reliable shared identity signal: never group.
			res.Ungrouped++
			clusters = append(clusters, &Cluster{Key: k, Members: []vault.Item{it}})
			continue
		}
		idx, ok := buckets[k]
		if !ok {
			idx = len(clusters)
			buckets[k] = idx
			clusters = append(clusters, &Cluster{Key: k})
		}
		clusters[idx].Members = append(clusters[idx].Members, it)
	}

	for _, c := range clusters {
		if len(c.Members) == 1 {
			res.Resolved = append(res.Resolved, c.Members[0])
			continue
		}

		c.Preferred = selectPreferred(c.Members)

		if exactDuplicates(c.Members) {
			// Only timestamps differ: keep the preferred member, drop the rest.
			res.Resolved = append(res.Resolved, c.Members[c.Preferred])
			res.Collapsed = append(res.Collapsed, c)
			res.AutoMerged++
			res.Removed += len(c.Members) - 1
			continue
		}

		c.NotesPreview = MergeNotes(c)
		res.Pending = append(res.Pending, c)
	}

	logging.Debug().
		Int("items", len(items)).
		Int("resolved", len(res.Resolved)).
		Int("pending", len(res.Pending)).
		Int("ungrouped", res.Ungrouped).
		Int("auto_merged", res.AutoMerged).
		Msg("grouping pass complete")

	return res
}
