package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Manu343726/hasm/internal/isa"
)

var isaCmd = &cobra.Command{
	Use:   "isa",
	Short: "Dump the HYPO-16 instruction table as YAML",
	Args:  cobra.NoArgs,
	RunE:  runISA,
}

func runISA(cmd *cobra.Command, args []string) error {
	out, err := yaml.Marshal(isa.All())
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}
