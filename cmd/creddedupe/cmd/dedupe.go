package cmd

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taggedzi/creddedupe"
	"github.com/taggedzi/creddedupe/internal/cmd/output"
	"github.com/taggedzi/creddedupe/pkg/changelog"
	"github.com/taggedzi/creddedupe/pkg/dedupe"
	crederrors "github.com/taggedzi/creddedupe/pkg/errors"
	"github.com/taggedzi/creddedupe/pkg/logging"
	"github.com/taggedzi/creddedupe/pkg/provider"
	"github.com/taggedzi/creddedupe/pkg/vault"
)

var (
	dedupeOut            string
	dedupeProvider       string
	dedupeExportProvider string
	dedupeApply          string
	dedupeChangelog      string
	allowDiffPasswords   bool
	noEmailEquivalence   bool
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe <file.csv> [file.csv...]",
	Short: "Merge duplicate credentials across one or more exports",
	Long: `Dedupe imports one or more CSV exports, groups records that identify the
same credential, and writes a cleaned export.

Exact duplicates are collapsed automatically. Clusters whose records differ
are only merged when --apply names a decision; otherwise they are kept
untouched and listed for review.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDedupe,
}

func init() {
	dedupeCmd.Flags().StringVarP(&dedupeOut, "out", "o", "", "output CSV file (required)")
	dedupeCmd.Flags().StringVar(&dedupeProvider, "provider", "", "force the input format instead of detecting it")
	dedupeCmd.Flags().StringVar(&dedupeExportProvider, "export-provider", "", "output format (default: the first input's format)")
	dedupeCmd.Flags().StringVar(&dedupeApply, "apply", "", "resolve reviewable clusters without prompting: keep-best, keep-all, or skip")
	dedupeCmd.Flags().StringVar(&dedupeChangelog, "changelog", "", "write an audit log of removals to this file (.json or .yaml)")
	dedupeCmd.Flags().BoolVar(&allowDiffPasswords, "allow-different-passwords", false, "group records whose passwords differ")
	dedupeCmd.Flags().BoolVar(&noEmailEquivalence, "no-email-username-equivalence", false, "never match an email against a username")
	_ = dedupeCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(dedupeCmd)
}

func runDedupe(cmd *cobra.Command, args []string) error {
	ctx := logging.WithOperation(cmd.Context(), "dedupe")

	format, err := outputFormat()
	if err != nil {
		return err
	}

	decision := dedupe.Decision{Action: dedupe.Skip}
	if dedupeApply != "" {
		action, err := dedupe.ParseAction(dedupeApply)
		if err != nil {
			return err
		}
		if action == dedupe.KeepOne {
			return fmt.Errorf("--apply cannot use keep-one: it needs a per-cluster member index")
		}
		decision.Action = action
	}

	groupOpts := dedupe.DefaultOptions()
	groupOpts.StrictPasswords = !allowDiffPasswords
	groupOpts.EmailEquivalence = !noEmailEquivalence

	client, err := creddedupe.New(creddedupe.WithDedupeOptions(groupOpts))
	if err != nil {
		return err
	}

	log := changelog.New()
	items, firstProvider, err := importInputs(client, log, args)
	if err != nil {
		return err
	}

	res := client.Group(items)
	for _, c := range res.Collapsed {
		log.RecordAutoMerge(c.Key, c.Members[c.Preferred], len(c.Members)-1)
	}

	final := res.Resolved
	for _, c := range res.Pending {
		kept, err := client.Resolve(c, decision)
		if err != nil {
			return err
		}
		log.RecordDecision(c, decision, len(c.Members)-len(kept))
		final = append(final, kept...)
	}

	exportID, err := resolveExportProvider(firstProvider)
	if err != nil {
		return err
	}
	if err := client.Export(dedupeOut, exportID, final); err != nil {
		return err
	}

	if dedupeChangelog != "" {
		if err := saveChangelog(log, dedupeChangelog); err != nil {
			return err
		}
	}

	// Without an --apply decision, pending clusters were kept as-is; show
	// them so the user can rerun with a decision.
	if dedupeApply == "" && len(res.Pending) > 0 {
		logging.Ctx(ctx).Warn().
			Int("clusters", len(res.Pending)).
			Msg("reviewable duplicates were kept; rerun with --apply to resolve them")
		if err := output.FormatClusters(os.Stdout, res.Pending, format); err != nil {
			return err
		}
	}

	return output.FormatSummary(os.Stdout, output.Summary{
		Imported:   len(items),
		Kept:       len(final),
		Removed:    len(items) - len(final),
		AutoMerged: res.AutoMerged,
		Pending:    len(res.Pending),
		Ungrouped:  res.Ungrouped,
	}, format)
}

// importInputs imports every input file, recording each in the changelog.
// Row-level failures are reported and the rest of the file proceeds; only
// structural errors (unreadable file, unknown format) abort the run. The
// returned provider id is the first input's, the default export format.
func importInputs(client creddedupe.Client, log *changelog.Log, paths []string) ([]vault.Item, provider.ID, error) {
	var forced provider.ID
	if dedupeProvider != "" {
		forced = provider.ID(strings.ToLower(dedupeProvider))
	}

	var items []vault.Item
	first := provider.Unknown
	for _, path := range paths {
		if err := log.AddInput(path); err != nil {
			return nil, first, err
		}

		var (
			batch []vault.Item
			id    provider.ID
			err   error
		)
		if forced != "" {
			id = forced
			batch, err = client.Import(path, forced)
		} else {
			batch, id, err = client.ImportAuto(path)
		}
		if err != nil {
			var rowErrs *crederrors.ImportError
			if !stderrors.As(err, &rowErrs) {
				return nil, first, err
			}
			logging.Warn().
				Str("file", path).
				Int("rows_failed", len(rowErrs.Errs)).
				Err(rowErrs).
				Msg("some rows failed to import; continuing with the rest")
		}
		if first == provider.Unknown {
			first = id
			log.Provider = string(id)
		}
		items = append(items, batch...)
	}
	return items, first, nil
}

func resolveExportProvider(first provider.ID) (provider.ID, error) {
	if dedupeExportProvider != "" {
		return provider.ID(strings.ToLower(dedupeExportProvider)), nil
	}
	if first == provider.Unknown {
		return "", fmt.Errorf("cannot determine an export format; pass --export-provider")
	}
	return first, nil
}

func saveChangelog(log *changelog.Log, path string) error {
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return log.SaveYAML(path)
	}
	return log.Save(path)
}
