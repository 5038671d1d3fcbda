package flaykeys

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/dasdy/flaykeys/db"
	"github.com/dasdy/flaykeys/web"
	"github.com/dasdy/flaykeys/web/routes"
	"github.com/spf13/cobra"
)

var (
	serveStorage string
	servePort    int
	serveDev     bool
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Show collected statistics",
	Long:  `Use touches collected by the track command to show a web interface with a heatmap.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		slog.Debug("Serving", "storage", serveStorage, "arrangement", arrangementPath)

		kb, engine, err := loadKeyboard()
		if err != nil {
			return err
		}

		storage, err := db.NewStorageFromPath(serveStorage, true)
		if err != nil {
			return fmt.Errorf("could not open %s as sqlite file: %w", serveStorage, err)
		}
		defer storage.Close()

		tracker, err := db.NewTransitionCounterFromDB(storage)
		if err != nil {
			return fmt.Errorf("could not create transition tracker: %w", err)
		}

		handler, err := routes.NewServerHandler(storage, tracker, kb, engine, width)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return web.StartServer(ctx, servePort, handler, serveDev)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 9000,
		"Port on which server should be watching")

	serveCmd.Flags().StringVarP(
		&serveStorage,
		"storage",
		"s",
		"./touches.sqlite",
		"Path to collected touches")

	serveCmd.Flags().BoolVar(&serveDev,
		"dev",
		false,
		"Enable developer mode")
}
