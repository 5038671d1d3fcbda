package flaykeys

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dasdy/flaykeys/db"
	"github.com/dasdy/flaykeys/touchlog"
	"github.com/dasdy/flaykeys/touchlog/ports"
	"github.com/dasdy/flaykeys/web"
	"github.com/dasdy/flaykeys/web/routes"
	"github.com/spf13/cobra"
)

var (
	filenames        []string
	disableInterface bool
	monitor          bool
	baudRate         int
	trackStorage     string
	trackPort        int
	trackDev         bool
)

func openInputs(ctx context.Context) (<-chan string, func(), error) {
	if monitor {
		reader := ports.DefaultMonitoringDeviceReader(baudRate)

		return reader.Channel(ctx), func() { _ = reader.Close() }, nil
	}

	if len(filenames) == 0 {
		names, err := ports.GetAvailableDevices()
		if err != nil {
			slog.Warn("Could not list devices", "error", err)
		}

		slog.Info("Will proceed to read from stdin", "suggestedDevices", names)

		return ports.ReadFile(os.Stdin), func() {}, nil
	}

	readers := make([]io.Reader, 0, len(filenames))
	closers := make([]io.Closer, 0, len(filenames))
	closeAll := func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				slog.Error("Could not close input", "error", err)
			}
		}
	}

	for _, name := range filenames {
		port, err := ports.Open(name, baudRate)
		if err != nil {
			closeAll()

			names, errInner := ports.GetAvailableDevices()
			if errInner != nil {
				return nil, nil, fmt.Errorf("%w; could not suggest devices: %w", err, errInner)
			}

			if len(names) > 0 {
				return nil, nil, fmt.Errorf("%w. Maybe try instead: %+v", err, names)
			}

			return nil, nil, fmt.Errorf("%w. It does not seem like any touch device is connected", err)
		}

		readers = append(readers, port)
		closers = append(closers, port)
	}

	return ports.ReadFiles(readers...), closeAll, nil
}

// trackCmd represents the track command.
var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Connect to a touch device and log touches",
	Long: `Provide paths to serial devices, use --monitor to pick them up automatically,
or leave empty to read from stdin. Touches are resolved to keys and logged to a
sqlite file, and a web server can show them while tracking.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		kb, engine, err := loadKeyboard()
		if err != nil {
			return err
		}

		slog.Info("Output file", "path", trackStorage)

		storage, err := db.NewStorageFromPath(trackStorage, false)
		if err != nil {
			return fmt.Errorf("could not open %s as sqlite file: %w", trackStorage, err)
		}
		defer storage.Close()

		tracker, err := db.NewTransitionCounterFromDB(storage)
		if err != nil {
			return fmt.Errorf("could not create transition tracker: %w", err)
		}

		// The handler guards the keyboard for both the loop and the web server.
		handler, err := routes.NewServerHandler(storage, tracker, kb, engine, width)
		if err != nil {
			return err
		}

		ch, closer, err := openInputs(ctx)
		if err != nil {
			return err
		}
		defer closer()

		if !disableInterface {
			go func() {
				if err := web.StartServer(ctx, trackPort, handler, trackDev); err != nil {
					slog.Error("Web interface stopped", "error", err)
				}
			}()
		}

		stats := touchlog.Loop(ch, handler, storage, tracker, verbose)
		slog.Info("Tracking done", "resolved", stats.Resolved, "missed", stats.Missed, "failed", stats.Failed)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)

	trackCmd.Flags().StringSliceVarP(
		&filenames,
		"file",
		"f",
		[]string{},
		"List of serial devices to get input from")

	trackCmd.Flags().StringVarP(
		&trackStorage,
		"out",
		"o",
		"./touches.sqlite",
		"Output path for statistics")

	trackCmd.Flags().IntVarP(
		&trackPort, "port", "p", 3000,
		"Port on which server should be watching")

	trackCmd.Flags().BoolVar(&disableInterface,
		"no-interface",
		false,
		"If provided, no web server will be run with visualization")

	trackCmd.Flags().BoolVar(&monitor,
		"monitor",
		false,
		"Poll for touch devices and read from every one that shows up")

	trackCmd.Flags().IntVar(&baudRate,
		"baud",
		ports.DefaultBaudRate,
		"Baud rate of serial devices")

	trackCmd.Flags().BoolVar(&trackDev,
		"dev",
		false,
		"Enable developer mode")
}
