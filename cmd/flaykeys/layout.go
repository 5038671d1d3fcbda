package flaykeys

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dasdy/flaykeys/model"
	"github.com/spf13/cobra"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func formatRect(r model.Rect) string {
	return fmt.Sprintf("%d,%d-%d,%d", r.Left, r.Top, r.Right, r.Bottom)
}

// layoutCmd represents the layout command.
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the bounds of every key",
	Long:  `Lay the arrangement out for the configured width and print a table of key rectangles.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		kb, engine, err := loadLaidOutKeyboard()
		if err != nil {
			return err
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("row", "col", "key", "touch", "visible", "drawable", "label").
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}

				return cellStyle
			})

		for key := range kb.Keys() {
			t.Row(
				strconv.Itoa(key.Position.Row),
				strconv.Itoa(key.Position.Col),
				key.Label,
				formatRect(key.Bounds.Touch),
				formatRect(key.Bounds.Visible),
				formatRect(key.Bounds.Drawable),
				formatRect(key.Bounds.Label),
			)
		}

		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		fmt.Fprintf(cmd.OutOrStdout(), "%d keys in %d rows, %dx%d\n",
			kb.KeyCount(), kb.RowCount(), width, engine.Height(kb))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)
}
