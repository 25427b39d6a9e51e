package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"debase/internal/abi"
)

var mangleCmd = &cobra.Command{
	Use:   "mangle qualified-name...",
	Short: "Mangle base-object destructor symbols",
	Long: `Mangle turns plain qualified names such as "a::b::C" into their
Itanium base-object destructor symbols ("_ZN1a1b1CD2Ev")`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMangle,
}

func runMangle(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, name := range args {
		sym, err := abi.MangleBaseDtor(name)
		if err != nil {
			return fmt.Errorf("failed to mangle %q: %w", name, err)
		}
		fmt.Fprintf(out, "%s\t%s\n", name, sym)
	}
	return nil
}
