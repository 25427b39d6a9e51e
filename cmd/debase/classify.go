package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"debase/internal/abi"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [flags] symbols.txt...",
	Short: "Classify mangled symbol names",
	Long:  `Classify reads mangled C++ names, one per line, and reports each symbol's kind, qualified name and ABI variant`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().Bool("structors-only", false, "only print constructors and destructors")
}

var kindColors = map[abi.SymbolKind]*color.Color{
	abi.Constructor: color.New(color.FgGreen, color.Bold),
	abi.Destructor:  color.New(color.FgRed, color.Bold),
	abi.Other:       color.New(color.FgCyan),
	abi.Ignorable:   color.New(color.FgWhite),
	abi.Invalid:     color.New(color.FgYellow),
}

type classifiedLine struct {
	sym string
	f   abi.Features
}

func runClassify(cmd *cobra.Command, args []string) error {
	target, _ := cmd.Root().PersistentFlags().GetString("target")
	structorsOnly, _ := cmd.Flags().GetBool("structors-only")
	cls := abi.ForTriple(target)

	color.NoColor = !useColor(cmd, os.Stdout)

	var mu sync.Mutex
	results := make(map[string][]classifiedLine, len(args))

	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(4)
	for _, path := range args {
		path := path
		g.Go(func() error {
			lines, err := classifyFile(cls, path)
			if err != nil {
				return err
			}
			mu.Lock()
			results[path] = lines
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	paths := make([]string, 0, len(results))
	for p := range results {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		if len(args) > 1 {
			fmt.Fprintf(out, "%s:\n", p)
		}
		for _, line := range results[p] {
			if structorsOnly && !line.f.IsCtorDtor() {
				continue
			}
			printClassified(out, line)
		}
	}
	return nil
}

func classifyFile(cls abi.Classifier, path string) ([]classifiedLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open symbol file: %w", err)
	}
	defer f.Close()

	var lines []classifiedLine
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		sym := strings.TrimSpace(sc.Text())
		if sym == "" || strings.HasPrefix(sym, "#") {
			continue
		}
		lines = append(lines, classifiedLine{sym: sym, f: cls.Classify(sym)})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}

func printClassified(out io.Writer, line classifiedLine) {
	kind := kindColors[line.f.Kind].Sprint(line.f.Kind.String())
	switch {
	case line.f.IsCtorDtor():
		fmt.Fprintf(out, "  %-11s %s  %s (variant %d)\n",
			kind, line.sym, strings.Join(line.f.Names, "::"), line.f.Variant)
	case len(line.f.Names) > 0:
		fmt.Fprintf(out, "  %-11s %s  %s\n", kind, line.sym, strings.Join(line.f.Names, "::"))
	default:
		fmt.Fprintf(out, "  %-11s %s\n", kind, line.sym)
	}
}
