package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Manu343726/hasm/internal/assembler"
	"github.com/Manu343726/hasm/internal/config"
	"github.com/Manu343726/hasm/internal/diagnostics"
	"github.com/Manu343726/hasm/internal/report"
	"github.com/Manu343726/hasm/internal/token"
	"github.com/Manu343726/hasm/internal/tui"
)

var (
	outputPath  string
	interactive bool
	verbose     bool
)

var assembleCmd = &cobra.Command{
	Use:   "assemble <input-path>",
	Short: "Assemble a HYPO-16 source file into a text object file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssemble,
}

func init() {
	assembleCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (default: input's base name with the configured suffix)")
	assembleCmd.Flags().BoolVar(&interactive, "interactive", false, "open the interactive symbol/relocation browser after assembling")
	assembleCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log assembly progress to stderr")
}

func runAssemble(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	level := diagnostics.ParseLevel(cfg.LogLevel)
	if verbose {
		level = diagnostics.ParseLevel("debug")
	}
	logger, closeLog, err := diagnostics.NewLogger(level, "")
	if err != nil {
		return err
	}
	defer closeLog()

	result, err := assembleFile(inputPath, logger)
	if err != nil {
		colorError.Println(err)
		os.Exit(1)
	}

	dest := outputPath
	if dest == "" {
		dest = defaultOutputPath(inputPath, cfg.OutputSuffix)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := report.Write(out, result.Symbols, result.Relocations, result.Bytes); err != nil {
		return err
	}

	colorSuccess.Printf("assembled %s -> %s (%d symbols, %d relocations)\n",
		inputPath, dest, result.Symbols.Len(), result.Relocations.Len())

	if interactive {
		return tui.New(result.Symbols, result.Relocations, result.Bytes).Run()
	}
	return nil
}

var (
	colorError   = color.New(color.FgRed, color.Bold)
	colorSuccess = color.New(color.FgGreen)
)

func assembleFile(inputPath string, logger *slog.Logger) (*assembler.Result, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", inputPath, err)
	}
	defer f.Close()

	lines, err := token.Scan(f)
	if err != nil {
		return nil, err
	}

	logger.Debug("tokenized source", "path", inputPath, "lines", len(lines))

	result, err := assembler.AssembleWithLogger(lines, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("assembly finished", "symbols", result.Symbols.Len(), "relocations", result.Relocations.Len())
	return result, nil
}

func defaultOutputPath(inputPath, suffix string) string {
	base := inputPath
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base + suffix
}
