package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"debase/internal/abi"
	"debase/internal/matcher"
)

var matchCmd = &cobra.Command{
	Use:   "match [flags] symbols.txt...",
	Short: "Match mangled structors against config patterns",
	Long: `Match loads scope patterns and a file list from a JSON or TOML config,
then reports which constructor/destructor symbols hit a pattern. Patterns
with {file.*} replacements rebind for every file the config lists; with no
symbol-file arguments, names are read from stdin`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringP("config", "c", "", "config file with patterns and files (required)")
	matchCmd.Flags().Bool("show-patterns", false, "dump the compiled pattern sets before matching")
	_ = matchCmd.MarkFlagRequired("config")
}

var (
	matchHitColor  = color.New(color.FgGreen, color.Bold)
	matchMissColor = color.New(color.Faint)
)

func runMatch(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	showPatterns, _ := cmd.Flags().GetBool("show-patterns")
	modeFlag, _ := cmd.Root().PersistentFlags().GetString("mode")
	target, _ := cmd.Root().PersistentFlags().GetString("target")

	mode, err := matcher.ParseMode(modeFlag)
	if err != nil {
		return err
	}
	color.NoColor = !useColor(cmd, os.Stdout)

	sm := matcher.New(abi.ForTriple(target), mode)
	var boundFiles []string
	if err := sm.LoadConfig(configPath, &boundFiles); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out := cmd.OutOrStdout()
	if showPatterns {
		for _, info := range sm.Patterns() {
			fmt.Fprintf(out, "pattern %q -> %s (ctor=%t dtor=%t)\n",
				info.Source, info.Compiled, info.Ctor, info.Dtor)
		}
	}

	syms, err := readSymbols(cmd, args)
	if err != nil {
		return err
	}

	if len(boundFiles) == 0 {
		return matchOnce(out, sm, syms)
	}
	for _, file := range boundFiles {
		if err := sm.SetFile(file); err != nil {
			return fmt.Errorf("failed to bind %s: %w", file, err)
		}
		fmt.Fprintf(out, "%s:\n", file)
		if err := matchOnce(out, sm, syms); err != nil {
			return err
		}
	}
	return nil
}

func matchOnce(out io.Writer, sm *matcher.SymbolMatcher, syms []string) error {
	for _, sym := range syms {
		if sm.MatchSymbol(sym) {
			fmt.Fprintf(out, "  %s %s\n", matchHitColor.Sprint("match"), sym)
		} else {
			fmt.Fprintf(out, "  %s  %s\n", matchMissColor.Sprint("skip"), sym)
		}
	}
	return nil
}

func readSymbols(cmd *cobra.Command, args []string) ([]string, error) {
	var syms []string
	appendFrom := func(r io.Reader, name string) error {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			sym := strings.TrimSpace(sc.Text())
			if sym == "" || strings.HasPrefix(sym, "#") {
				continue
			}
			syms = append(syms, sym)
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		return nil
	}
	if len(args) == 0 {
		if err := appendFrom(cmd.InOrStdin(), "stdin"); err != nil {
			return nil, err
		}
		return syms, nil
	}
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open symbol file: %w", err)
		}
		err = appendFrom(f, path)
		f.Close()
		if err != nil {
			return nil, err
		}
	}
	return syms, nil
}
