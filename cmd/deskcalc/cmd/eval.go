package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kehrlein/deskcalc"
	"github.com/kehrlein/deskcalc/internal/display"
	"github.com/kehrlein/deskcalc/internal/logger"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate one expression and print the result",
	Long: `Evaluate evaluates a single expression and prints the result on
stdout. The expression may be given as one quoted argument or spread
across several arguments, which are joined with spaces:

  deskcalc eval "2 * (3 + 4)"
  deskcalc eval 2 + 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			printError("loading configuration", err)
			return err
		}
		defer logger.Default().Close()

		input := strings.Join(args, " ")
		if len(input) > cfg.Input.MaxLength {
			err := fmt.Errorf("input exceeds %d characters", cfg.Input.MaxLength)
			printError("evaluating", err)
			return err
		}
		if err := display.CheckLiterals(input, cfg.Input.MaxLiteral); err != nil {
			printError("evaluating", err)
			return err
		}
		tokens, err := deskcalc.Tokenize(input)
		if err != nil {
			printError("evaluating", err)
			return err
		}
		v, err := deskcalc.Evaluate(tokens)
		if err != nil {
			printError("evaluating", err)
			return err
		}
		out, err := display.FormatResult(v, cfg.Display.DecimalPlaces, cfg.MaxResult())
		if err != nil {
			printError("formatting", err)
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}
