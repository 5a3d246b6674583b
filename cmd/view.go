package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Manu343726/hasm/internal/report"
	"github.com/Manu343726/hasm/internal/tui"
)

var viewOutputPath string

var viewCmd = &cobra.Command{
	Use:   "view <input-path>",
	Short: "Assemble a HYPO-16 source file in memory and browse the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func init() {
	viewCmd.Flags().StringVarP(&viewOutputPath, "output", "o", "", "also write the text object file to this path")
}

func runView(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	result, err := assembleFile(inputPath, logger)
	if err != nil {
		colorError.Println(err)
		os.Exit(1)
	}

	if viewOutputPath != "" {
		out, err := os.Create(viewOutputPath)
		if err != nil {
			return err
		}
		defer out.Close()
		if err := report.Write(out, result.Symbols, result.Relocations, result.Bytes); err != nil {
			return err
		}
	}

	return tui.New(result.Symbols, result.Relocations, result.Bytes).Run()
}
