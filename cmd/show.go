package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/securefab/traincore/config"
)

var showFile string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the steps of a procedure definition",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewLoader(showFile).Load()
		if err != nil {
			return err
		}
		steps, err := cfg.BuildSteps()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Procedure: %s\n", cfg.Metadata.Name)
		if cfg.Metadata.Description != "" {
			fmt.Fprintf(out, "  %s\n", cfg.Metadata.Description)
		}
		fmt.Fprintf(out, "Options: advancePolicy=%s autoAdvance=%t stabilityThreshold=%d\n",
			cfg.Spec.Options.AdvancePolicy, *cfg.Spec.Options.AutoAdvance, cfg.Spec.Options.StabilityThreshold)
		fmt.Fprintf(out, "Steps (%d):\n", len(steps))

		for _, s := range steps {
			fmt.Fprintf(out, "  %d. %s\n", s.ID, s.Title)
			if s.Body != "" {
				body, err := s.RenderedBody()
				if err != nil {
					body = s.Body
				}
				fmt.Fprintf(out, "     %s\n", body)
			}
			fmt.Fprintf(out, "     expected: %s\n", s.Expected)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().StringVarP(&showFile, "file", "f", "procedure.yaml", "procedure definition file")
	rootCmd.AddCommand(showCmd)
}
