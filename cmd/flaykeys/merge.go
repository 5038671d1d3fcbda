package flaykeys

import (
	"fmt"
	"os"

	"github.com/dasdy/flaykeys/db"
	"github.com/spf13/cobra"
)

var (
	mergeInputs []string
	mergeOutput string
)

// mergeCmd represents the merge command.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge touch databases into one",
	Long:  `Given several touch logs, create a new one holding the union of their touches.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if len(mergeInputs) == 0 {
			return fmt.Errorf("no input files given")
		}

		if _, err := os.Stat(mergeOutput); err == nil {
			return fmt.Errorf("output file %s already exists", mergeOutput)
		}

		inputs := make([]*db.SQLiteStorage, 0, len(mergeInputs))

		defer func() {
			for _, input := range inputs {
				input.Close()
			}
		}()

		for _, fn := range mergeInputs {
			store, err := db.NewStorageFromPath(fn, false)
			if err != nil {
				return err
			}

			inputs = append(inputs, store)
		}

		output, err := db.NewStorageFromPath(mergeOutput, false)
		if err != nil {
			return err
		}
		defer output.Close()

		return db.Merge(cmd.Context(), inputs, output)
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringSliceVarP(
		&mergeInputs,
		"file",
		"f",
		[]string{},
		"List of touch logs to merge")

	mergeCmd.Flags().StringVarP(
		&mergeOutput,
		"out",
		"o",
		"./merged.sqlite",
		"Output path for merged touches")
}
