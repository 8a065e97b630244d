// Command cdecl parses a C11 translation unit and reports its declared
// symbols, or reads back the type of a declarator at a given offset.
//
// Usage:
//
//	cdecl translate <file.c> [--target NAME]
//	cdecl typename <file.c> --at <byte-offset> [--target NAME]
//	cdecl targets
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cfront/cdecl/internal/frontend"
	"github.com/cfront/cdecl/internal/invariants"
	"github.com/cfront/cdecl/internal/printer"
	"github.com/cfront/cdecl/internal/target"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "cdecl",
		Short:   "Process C11 declarations and report what they mean",
		Version: fmt.Sprintf("%s (%s)", version, commit),
	}

	var targetName string
	root.PersistentFlags().StringVar(&targetName, "target", target.Default, "ABI target descriptor")

	root.AddCommand(newTranslateCmd(&targetName))
	root.AddCommand(newTypenameCmd(&targetName))
	root.AddCommand(newTargetsCmd())

	return root
}

func newTranslateCmd(targetName *string) *cobra.Command {
	var checkInvariants bool

	cmd := &cobra.Command{
		Use:   "translate <file.c>",
		Short: "Parse a translation unit and list its declared symbols",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			result, err := frontend.Translate(string(source), *targetName)
			if err != nil {
				return err
			}

			pr := printer.New()
			for _, decl := range result.FileScope.Decls() {
				fmt.Println(pr.Declaration(decl))
			}

			if checkInvariants {
				scopeResult := invariants.CheckScope(result.FileScope)
				emitResult := invariants.CheckEmissions(result.Recorder)
				for _, v := range scopeResult.Violations {
					fmt.Fprintf(os.Stderr, "invariant violation: %s\n", v)
				}
				for _, v := range emitResult.Violations {
					fmt.Fprintf(os.Stderr, "invariant violation: %s\n", v)
				}
				if !scopeResult.Valid || !emitResult.Valid {
					return fmt.Errorf("invariant checks failed")
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&checkInvariants, "check", false, "verify structural invariants over the result before printing")
	return cmd
}

func newTypenameCmd(targetName *string) *cobra.Command {
	var at int

	cmd := &cobra.Command{
		Use:   "typename <file.c>",
		Short: "Print the canonical type of the declarator found at a byte offset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			name, err := frontend.TypeNameAt(string(source), *targetName, at)
			if err != nil {
				return err
			}

			fmt.Println(name)
			return nil
		},
	}

	cmd.Flags().IntVar(&at, "at", 0, "byte offset of the declarator to resolve")
	cmd.MarkFlagRequired("at")
	return cmd
}

func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the available ABI target descriptors",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range target.All() {
				fmt.Printf("%-12s pointer=%d long=%d signed-char=%t\n", t.Name, t.PointerSize, t.LongSize, t.SignedChar)
			}
			return nil
		},
	}
}
