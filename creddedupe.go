// Package creddedupe normalizes password manager CSV exports into a common
// record model, finds duplicate credentials across them, and writes cleaned
// exports back out in any supported provider's format.
package creddedupe

import (
	stderrors "errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taggedzi/creddedupe/internal/csvio"
	"github.com/taggedzi/creddedupe/pkg/dedupe"
	"github.com/taggedzi/creddedupe/pkg/detect"
	"github.com/taggedzi/creddedupe/pkg/errors"
	"github.com/taggedzi/creddedupe/pkg/logging"
	"github.com/taggedzi/creddedupe/pkg/provider"
	"github.com/taggedzi/creddedupe/pkg/vault"
)

// Client ties the provider registry, format detection, and deduplication
// together behind one entry point.
type Client interface {
	// Registry returns the provider registry in use.
	Registry() *provider.Registry

	// DetectFile sniffs a CSV file's source provider from its header row.
	DetectFile(path string) (detect.Result, error)

	// Import parses a CSV file with a specific provider plugin.
	Import(path string, id provider.ID) ([]vault.Item, error)

	// ImportAuto detects a file's provider and imports it.
	ImportAuto(path string) ([]vault.Item, provider.ID, error)

	// Group partitions items into duplicate-candidate clusters.
	Group(items []vault.Item) dedupe.Result

	// Resolve applies a reviewer decision to a pending cluster.
	Resolve(c *dedupe.Cluster, d dedupe.Decision) ([]vault.Item, error)

	// Export writes items to a CSV file in a provider's format.
	Export(path string, id provider.ID, items []vault.Item) error
}

type client struct {
	config *config
}

// New returns a Client with the given options applied. Without options it
// uses every built-in provider plugin and the default grouping behavior.
func New(opts ...Option) (Client, error) {
	c := &client{config: defaultConfig()}
	for _, opt := range opts {
		if err := opt(c.config); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *client) Registry() *provider.Registry {
	return c.config.registry
}

func (c *client) DetectFile(path string) (detect.Result, error) {
	headers, _, err := csvio.ReadFile(path)
	if err != nil {
		return detect.Result{}, err
	}
	res := detect.Detect(headers, c.config.registry, detect.WithThreshold(c.config.detectThreshold))
	c.log().Debug().
		Str("file", path).
		Str("provider", string(res.Provider)).
		Float64("confidence", res.Confidence).
		Msg("format detected")
	return res, nil
}

func (c *client) Import(path string, id provider.ID) ([]vault.Item, error) {
	plugin, err := c.config.registry.Get(id)
	if err != nil {
		return nil, err
	}

	_, rows, err := csvio.ReadFile(path)
	if err != nil {
		return nil, err
	}

	items := make([]vault.Item, 0, len(rows))
	var rowErrs []error
	for i, row := range rows {
		it, err := plugin.ImportRow(row)
		if err != nil {
			var missing *errors.MissingColumnError
			if stderrors.As(err, &missing) && missing.Row < 0 {
				missing.Row = i
			}
			rowErrs = append(rowErrs, err)
			continue
		}
		items = append(items, it)
	}
	if len(rowErrs) > 0 {
		return items, errors.NewImportError(string(id), rowErrs)
	}

	c.log().Info().
		Str("file", path).
		Str("provider", string(id)).
		Int("items", len(items)).
		Msg("imported")
	return items, nil
}

func (c *client) ImportAuto(path string) ([]vault.Item, provider.ID, error) {
	res, err := c.DetectFile(path)
	if err != nil {
		return nil, provider.Unknown, err
	}
	if res.Provider == provider.Unknown {
		return nil, provider.Unknown, fmt.Errorf("%w: cannot determine provider for %s: %s",
			errors.ErrNotFound, path, res.Reason)
	}
	items, err := c.Import(path, res.Provider)
	return items, res.Provider, err
}

func (c *client) Group(items []vault.Item) dedupe.Result {
	return dedupe.Group(items, c.config.dedupe)
}

func (c *client) Resolve(cl *dedupe.Cluster, d dedupe.Decision) ([]vault.Item, error) {
	return dedupe.ApplyDecision(cl, d)
}

func (c *client) Export(path string, id provider.ID, items []vault.Item) error {
	plugin, err := c.config.registry.Get(id)
	if err != nil {
		return err
	}

	rows := make([]map[string]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, plugin.ExportRow(it))
	}
	if err := csvio.WriteFile(path, plugin.Columns(), rows); err != nil {
		return err
	}

	c.log().Info().
		Str("file", path).
		Str("provider", string(id)).
		Int("items", len(items)).
		Msg("exported")
	return nil
}

func (c *client) log() *zerolog.Logger {
	if c.config.logger != nil {
		return c.config.logger
	}
	return logging.Default()
}
