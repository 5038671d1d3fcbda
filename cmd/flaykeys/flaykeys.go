package flaykeys

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dasdy/flaykeys/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile         string
	arrangementPath string
	width           int
	keyWidth        int
	keyHeight       int
	keyMarginH      int
	keyMarginV      int
	logStyle        string
	verbose         bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "flaykeys",
	Short: "Lay out and track touch keyboards",
	Long: `Flaykeys lays out rows of keys that grow and shrink to fill a container.
It can preview the result, resolve touch coordinates to keys, and record touches
from a serial device into a heatmap.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd, args); err != nil {
			return err
		}

		setupLogging(cmd.ErrOrStderr())

		return nil
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// ExecuteArgs runs the command line args writing output to out.
func ExecuteArgs(args []string, out io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.flaykeys.toml)")
	flags.StringVarP(&arrangementPath, "arrangement", "a", "data/qwerty.toml",
		"Arrangement file (.toml, .json or .keys)")
	flags.IntVarP(&width, "width", "w", 1000, "Container width in pixels")
	flags.IntVar(&keyWidth, "key-width", 100, "Width of a single width key in pixels")
	flags.IntVar(&keyHeight, "key-height", 60, "Height of a row in pixels")
	flags.IntVar(&keyMarginH, "key-margin-h", 5, "Horizontal gap between touch and visible bounds")
	flags.IntVar(&keyMarginV, "key-margin-v", 4, "Vertical gap between touch and visible bounds")
	flags.StringVar(&logStyle, "log-style", logging.StyleSlogor,
		fmt.Sprintf("Log output style: %s or %s", logging.StyleSlogor, logging.StyleCharm))
	flags.BoolVarP(&verbose, "verbose", "v", false, "If provided, debug output will be shown")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".flaykeys" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("toml")
		viper.SetConfigName(".flaykeys")
	}

	viper.SetEnvPrefix("flaykeys")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			cobra.CheckErr(fmt.Errorf("error reading config file: %w", err))
		}

		slog.Debug("No config file found, using flags only")

		return
	}

	slog.Debug("Using config file", "path", viper.ConfigFileUsed())
}

func setupLogging(w io.Writer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(logging.NewHandler(logStyle, level, w)))
}

// set values to the PFlag variables from config, if they are set. Priority is still given to explicitly provided CLI flags.
func bindFlags(cmd *cobra.Command, _ []string) error {
	var bindErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}

		// Config files may use either key-width or keywidth.
		for _, configName := range []string{f.Name, strings.ReplaceAll(f.Name, "-", "")} {
			if f.Changed || !viper.IsSet(configName) {
				continue
			}

			val := viper.Get(configName)

			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				bindErr = fmt.Errorf("error setting flag %s from config: %w", f.Name, err)

				return
			}

			slog.Debug("Flag set to config value", "flag", f.Name, "value", val)

			break
		}
	})

	return bindErr
}
