package flaykeys

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dasdy/flaykeys/render"
	"github.com/spf13/cobra"
)

var (
	pdfPath   string
	fontPath  string
	pixelSize float64
)

// renderCmd represents the render command.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write a PDF preview of the layout",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		kb, engine, err := loadLaidOutKeyboard()
		if err != nil {
			return err
		}

		opts := []render.Option{render.WithPixelSize(pixelSize)}
		if fontPath != "" {
			opts = append(opts, render.WithFont(fontPath))
		}

		data, err := render.NewRenderer(opts...).Render(kb, width, engine.Height(kb))
		if err != nil {
			return err
		}

		if err := os.WriteFile(pdfPath, data, 0o644); err != nil {
			return fmt.Errorf("could not write %s: %w", pdfPath, err)
		}

		slog.Info("Preview written", "path", pdfPath, "bytes", len(data))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&pdfPath, "out", "o", "keyboard.pdf", "Output path for the preview")
	renderCmd.Flags().StringVar(&fontPath, "font", "", "TrueType/OpenType font used to draw labels")
	renderCmd.Flags().Float64Var(&pixelSize, "pixel-size", render.DefaultPixelSize,
		"Size of one layout pixel in millimetres")
}
