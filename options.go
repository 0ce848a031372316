package creddedupe

import (
	"github.com/rs/zerolog"

	"github.com/taggedzi/creddedupe/pkg/dedupe"
	"github.com/taggedzi/creddedupe/pkg/detect"
	"github.com/taggedzi/creddedupe/pkg/errors"
	"github.com/taggedzi/creddedupe/pkg/provider"
)

type config struct {
	registry        *provider.Registry
	logger          *zerolog.Logger
	detectThreshold float64
	dedupe          dedupe.Options
}

func defaultConfig() *config {
	return &config{
		registry:        provider.NewDefaultRegistry(),
		detectThreshold: detect.DefaultThreshold,
		dedupe:          dedupe.DefaultOptions(),
	}
}

// Option is a function that configures a Client.
type Option func(*config) error

// WithRegistry replaces the default provider registry.
func WithRegistry(reg *provider.Registry) Option {
	return func(c *config) error {
		if reg == nil {
			return errors.NewValidationError("registry", nil, "must not be nil")
		}
		c.registry = reg
		return nil
	}
}

// WithLogger sets the logger used by the client.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithDetectThreshold sets the minimum confidence for format detection to
// name a provider rather than report unknown.
func WithDetectThreshold(threshold float64) Option {
	return func(c *config) error {
		if threshold < 0 || threshold > 1 {
			return errors.NewValidationError("threshold", threshold, "must be in [0, 1]")
		}
		c.detectThreshold = threshold
		return nil
	}
}

// WithDedupeOptions sets the grouping behavior used by Group.
func WithDedupeOptions(opts dedupe.Options) Option {
	return func(c *config) error {
		c.dedupe = opts
		return nil
	}
}
