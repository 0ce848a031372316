// Package detect proposes a provider for a CSV file by scoring its header row
// against the fingerprint of every registered plugin. Detection never commits:
// the result carries a confidence and an explanation, and ambiguous or
// low-confidence outcomes are first-class results requiring an explicit caller
// decision, not errors.
package detect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/taggedzi/creddedupe/pkg/provider"
)

// DefaultThreshold is the confidence below which detection reports Unknown.
const DefaultThreshold = 0.5

// Score component weights. Required columns dominate; header coverage
// rewards the fingerprint that accounts for more of the file's columns, so a
// format whose required set happens to be a subset of a richer format's
// header cannot outscore it; optional columns break remaining near-ties.
// The weights sum to 1, keeping every score in [0, 1].
const (
	requiredWeight = 0.7
	coverageWeight = 0.2
	optionalWeight = 0.1
)

// Match records how one plugin's fingerprint scored against a header row.
type Match struct {
	Provider        provider.ID `json:"provider"`
	Score           float64     `json:"score"`
	MatchedRequired int         `json:"matched_required"`
	TotalRequired   int         `json:"total_required"`
	MatchedOptional int         `json:"matched_optional"`
	TotalOptional   int         `json:"total_optional"`
	MissingRequired []string    `json:"missing_required,omitempty"`
}

// Result is the outcome of a detection pass.
//
// When Ambiguous is true, two or more plugins tied at the highest nonzero
// score; Provider is Unknown and Candidates holds the tied matches, and the
// caller must require explicit user selection. The same applies when the best
// confidence falls below the threshold.
type Result struct {
	Provider   provider.ID `json:"provider"`
	Confidence float64     `json:"confidence"`
	Reason     string      `json:"reason"`
	Ambiguous  bool        `json:"ambiguous,omitempty"`
	Candidates []Match     `json:"candidates,omitempty"`
}

// Option configures a detection pass.
type Option func(*config)

type config struct {
	threshold float64
}

// WithThreshold overrides the confidence threshold below which the result is
// Unknown.
func WithThreshold(threshold float64) Option {
	return func(c *config) {
		c.threshold = threshold
	}
}

// Detect scores the header row against every plugin in the registry and
// proposes the most likely provider.
func Detect(headers []string, reg *provider.Registry, opts ...Option) Result {
	cfg := config{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(headers) == 0 {
		return Result{Provider: provider.Unknown, Reason: "no headers provided"}
	}

	plugins := reg.Plugins()
	if len(plugins) == 0 {
		return Result{Provider: provider.Unknown, Reason: "no provider plugins registered"}
	}

	normalized := make(map[string]bool, len(headers))
	for _, h := range headers {
		normalized[provider.NormalizeHeader(h)] = true
	}

	matches := make([]Match, 0, len(plugins))
	for _, p := range plugins {
		if m := score(normalized, p); m.Score > 0 {
			matches = append(matches, m)
		}
	}
	if len(matches) == 0 {
		return Result{Provider: provider.Unknown, Reason: "no plugin matched the header row"}
	}

	// Stable sort keeps registration order among equal scores, so ambiguity
	// reporting is deterministic.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	best := matches[0]
	confidence := min(best.Score, 1.0)

	tied := matches[:1]
	for _, m := range matches[1:] {
		if m.Score == best.Score {
			tied = append(tied, m)
		}
	}
	if len(tied) > 1 {
		ids := make([]string, 0, len(tied))
		for _, m := range tied {
			ids = append(ids, m.Provider.String())
		}
		return Result{
			Provider:   provider.Unknown,
			Confidence: confidence,
			Ambiguous:  true,
			Candidates: tied,
			Reason:     fmt.Sprintf("ambiguous: %s tied at score %.2f", strings.Join(ids, ", "), best.Score),
		}
	}

	// A fingerprint missing required columns is never committed outright, no
	// matter how well its blended score clears the threshold. It stays a
	// candidate for the caller to confirm.
	if len(best.MissingRequired) > 0 {
		return Result{
			Provider:   provider.Unknown,
			Confidence: confidence,
			Candidates: matches,
			Reason: fmt.Sprintf("best match %s is missing required columns: %s",
				best.Provider, strings.Join(best.MissingRequired, ", ")),
		}
	}

	if confidence < cfg.threshold {
		return Result{
			Provider:   provider.Unknown,
			Confidence: confidence,
			Candidates: matches,
			Reason: fmt.Sprintf("best match %s below confidence threshold (%.2f < %.2f)",
				best.Provider, confidence, cfg.threshold),
		}
	}

	return Result{
		Provider:   best.Provider,
		Confidence: confidence,
		Candidates: matches,
		Reason:     explain(best),
	}
}

// score computes how well a plugin's fingerprint fits a normalized header
// set. Three components: the ratio of the plugin's required columns present,
// the fraction of the file's headers the plugin knows at all (coverage), and
// the ratio of its optional columns present. A plugin with no optional
// columns has its fingerprint fully stated by the required set, so the
// optional component reuses the required ratio rather than scoring zero.
func score(headers map[string]bool, p provider.Plugin) Match {
	spec := p.Headers()
	required := spec.NormalizedRequired()
	optional := spec.NormalizedOptional()

	m := Match{
		Provider:      p.ID(),
		TotalRequired: len(required),
		TotalOptional: len(optional),
	}

	for i, col := range required {
		if headers[col] {
			m.MatchedRequired++
		} else {
			m.MissingRequired = append(m.MissingRequired, spec.Required[i])
		}
	}
	for _, col := range optional {
		if headers[col] {
			m.MatchedOptional++
		}
	}

	var requiredRatio float64
	if m.TotalRequired > 0 {
		requiredRatio = float64(m.MatchedRequired) / float64(m.TotalRequired)
	}
	optionalRatio := requiredRatio
	if m.TotalOptional > 0 {
		optionalRatio = float64(m.MatchedOptional) / float64(m.TotalOptional)
	}

	known := 0
	for _, col := range required {
		if headers[col] {
			known++
		}
	}
	for _, col := range optional {
		if headers[col] {
			known++
		}
	}
	var coverage float64
	if len(headers) > 0 {
		coverage = float64(known) / float64(len(headers))
	}

	m.Score = requiredWeight*requiredRatio + coverageWeight*coverage + optionalWeight*optionalRatio
	return m
}

func explain(m Match) string {
	reason := fmt.Sprintf("best match: %s (score=%.2f, required %d/%d, optional %d/%d)",
		m.Provider, m.Score, m.MatchedRequired, m.TotalRequired, m.MatchedOptional, m.TotalOptional)
	if len(m.MissingRequired) > 0 {
		reason += fmt.Sprintf("; missing required: %s", strings.Join(m.MissingRequired, ", "))
	}
	return reason
}
