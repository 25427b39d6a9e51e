package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"debase/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "debase",
	Short: "Base-structor symbol matcher",
	Long:  `debase classifies mangled C++ symbols and matches constructor/destructor families against scope patterns`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(mangleCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("mode", "strict", "error handling mode (strict|permissive)")
	rootCmd.PersistentFlags().String("target", "", "target triple or environment (selects the ABI)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
