// Package output provides common output formatting utilities for CLI commands.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/taggedzi/creddedupe/pkg/dedupe"
	"github.com/taggedzi/creddedupe/pkg/detect"
	"github.com/taggedzi/creddedupe/pkg/provider"
	"github.com/taggedzi/creddedupe/pkg/vault"
)

// ProviderRow is one registry entry in provider listings.
type ProviderRow struct {
	ID       string `json:"id"`
	Required string `json:"required_columns"`
	Optional string `json:"optional_columns"`
}

// FormatProviders renders the registry's plugins in registration order.
func FormatProviders(w io.Writer, reg *provider.Registry, format Format) error {
	rows := make([]ProviderRow, 0, reg.Len())
	for _, p := range reg.Plugins() {
		spec := p.Headers()
		rows = append(rows, ProviderRow{
			ID:       string(p.ID()),
			Required: strings.Join(spec.Required, ", "),
			Optional: strings.Join(spec.Optional, ", "),
		})
	}
	return NewFormatter(format).Format(w, rows)
}

// DetectionView is the serializable form of a detection result.
type DetectionView struct {
	File       string   `json:"file"`
	Provider   string   `json:"provider"`
	Confidence string   `json:"confidence"`
	Reason     string   `json:"reason"`
	Candidates []string `json:"candidates,omitempty"`
}

// NewDetectionView flattens a detection result for output.
func NewDetectionView(file string, res detect.Result) DetectionView {
	v := DetectionView{
		File:       file,
		Provider:   string(res.Provider),
		Confidence: strconv.FormatFloat(res.Confidence, 'f', 2, 64),
		Reason:     res.Reason,
	}
	for _, m := range res.Candidates {
		v.Candidates = append(v.Candidates, string(m.Provider))
	}
	return v
}

// FormatDetections renders one detection result per input file.
func FormatDetections(w io.Writer, views []DetectionView, format Format) error {
	return NewFormatter(format).Format(w, views)
}

// ClusterView is the reviewer-facing rendering of a pending cluster.
type ClusterView struct {
	Index   int      `json:"index"`
	Domain  string   `json:"domain"`
	Login   string   `json:"login"`
	Members []string `json:"members"`
	Keeps   string   `json:"keeps"`
	Preview string   `json:"preview,omitempty"`
}

// NewClusterView flattens a pending cluster for review output. Passwords
// never appear in it.
func NewClusterView(index int, c *dedupe.Cluster) ClusterView {
	v := ClusterView{
		Index:   index,
		Domain:  c.Key.Domain,
		Login:   c.Key.Login,
		Keeps:   memberLabel(c.Members[c.Preferred]),
		Preview: c.NotesPreview,
	}
	for _, m := range c.Members {
		v.Members = append(v.Members, memberLabel(m))
	}
	return v
}

func memberLabel(it vault.Item) string {
	title := it.Title
	if title == "" {
		title = "(untitled)"
	}
	return fmt.Sprintf("%s [%s]", title, it.Source)
}

// FormatClusters renders the clusters awaiting a decision.
func FormatClusters(w io.Writer, clusters []*dedupe.Cluster, format Format) error {
	views := make([]ClusterView, 0, len(clusters))
	for i, c := range clusters {
		views = append(views, NewClusterView(i, c))
	}
	return NewFormatter(format).Format(w, views)
}

// Summary is the end-of-run accounting for a dedupe pass.
type Summary struct {
	Imported   int `json:"imported"`
	Kept       int `json:"kept"`
	Removed    int `json:"removed"`
	AutoMerged int `json:"auto_merged"`
	Pending    int `json:"pending"`
	Ungrouped  int `json:"ungrouped"`
}

// FormatSummary renders the run summary.
func FormatSummary(w io.Writer, s Summary, format Format) error {
	return NewFormatter(format).Format(w, s)
}
