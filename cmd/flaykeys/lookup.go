package flaykeys

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// lookupCmd represents the lookup command.
var lookupCmd = &cobra.Command{
	Use:   "lookup X Y",
	Short: "Print the key under a point",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("x must be an integer: %w", err)
		}

		y, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("y must be an integer: %w", err)
		}

		kb, _, err := loadLaidOutKeyboard()
		if err != nil {
			return err
		}

		key, ok := kb.KeyForPos(x, y)
		if !ok {
			return fmt.Errorf("no key at %d,%d", x, y)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) row %d col %d touch %s\n",
			key.Label, key.Code, key.Position.Row, key.Position.Col, formatRect(key.Bounds.Touch))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
