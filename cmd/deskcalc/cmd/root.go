package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kehrlein/deskcalc/internal/config"
	"github.com/kehrlein/deskcalc/internal/logger"
	"github.com/kehrlein/deskcalc/internal/tui"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "deskcalc",
	Short: "deskcalc - exact decimal desk calculator",
	Long: `deskcalc is a terminal desk calculator that evaluates arithmetic
expressions over exact decimals with 28 significant digits.

Run it without arguments for the interactive calculator, or use the
eval command to evaluate one expression and print the result.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			printError("loading configuration", err)
			return err
		}
		defer logger.Default().Close()
		if err := tui.Run(cfg); err != nil {
			printError("running calculator", err)
			return err
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/deskcalc/config.toml)")
}

// setup loads the configuration and initializes the log file.
func setup() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(logger.ParseLevel(cfg.Log.Level), cfg.Log.File); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
