package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/taggedzi/creddedupe/internal/cmd/output"
	"github.com/taggedzi/creddedupe/pkg/provider"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the supported password manager formats",
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, err := outputFormat()
		if err != nil {
			return err
		}
		return output.FormatProviders(os.Stdout, provider.NewDefaultRegistry(), format)
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
