package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/mdblocks/config"
)

const version = "0.1.0"

var log = commonlog.GetLogger("mdblocks.cli")

// settings is loaded before any subcommand runs.
var settings = config.DefaultConfig()

func main() {
	var configPath string
	var verbosity int
	var logFile string

	rootCmd := &cobra.Command{
		Use:           "mdblocks",
		Short:         "A block-level markdown parser",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if configPath != "" {
				settings, err = config.LoadFile(configPath)
			} else {
				settings, err = config.Load()
			}
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if cmd.Flags().Changed("verbose") {
				settings.Verbosity = verbosity
			}
			if cmd.Flags().Changed("log") {
				settings.LogFile = logFile
			}
			var path *string
			if settings.LogFile != "" {
				path = &settings.LogFile
			}
			commonlog.Configure(settings.Verbosity, path)
			log.Debug("config", "format", settings.Format, "max_depth", settings.MaxDepth)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/mdblocks/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "log verbosity (repeat for more)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newFmtCmd())
	rootCmd.AddCommand(newInlineCmd())
	rootCmd.AddCommand(newOutlineCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readInput reads the named file, or stdin when no file is given.
func readInput(args []string) (string, error) {
	if len(args) == 0 {
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(source), nil
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(source), nil
}
