package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/securefab/traincore/procedure"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered built-in procedures",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := procedure.RegisteredNames()
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no procedures registered")
			return nil
		}
		for _, name := range names {
			mgr, err := procedure.Get(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d steps)\n", name, mgr.TotalSteps())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
