package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/securefab/traincore/config"
)

var checkFile string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a procedure definition without running it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewLoader(checkFile).Load()
		if err != nil {
			return err
		}
		// Building the manager exercises everything the run command would:
		// zone names, advance policy, step uniqueness.
		mgr, err := cfg.BuildManager()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d steps)\n", cfg.Metadata.Name, mgr.TotalSteps())
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "procedure.yaml", "procedure definition file")
	rootCmd.AddCommand(checkCmd)
}
