package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "hasm",
	Short: "A two-pass assembler for the HYPO-16 instruction set",
	Long: `hasm assembles HYPO-16 source files into a text object file
containing the symbol table, per-section relocation tables, and the
encoded byte stream.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to
// happen once to RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hasmrc.yaml)")
	RootCmd.AddCommand(assembleCmd, viewCmd, isaCmd)
}
