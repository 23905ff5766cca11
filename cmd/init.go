package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/securefab/traincore/file"
	"github.com/securefab/traincore/procedure/builtin"
)

var (
	initOutput string
	initForce  bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter procedure definition",
	RunE: func(cmd *cobra.Command, args []string) error {
		exists, err := file.PathExists(initOutput)
		if err != nil {
			return err
		}
		if exists && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", initOutput)
		}

		if err := file.WriteFile(initOutput, []byte(builtin.DemoDefinition)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", initOutput)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "procedure.yaml", "where to write the starter definition")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}
