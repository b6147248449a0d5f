package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phanxgames/pickit"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile <script>",
	Short: "Compile a script to bytecode",
	Long: `Compile a .star script into a .starc program that "pickit run" accepts.

Modules pulled in with load() are still read from source at run time.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringP("output", "o", "", "Output file (default: script with .starc extension)")
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	src := args[0]
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	prog, err := pickit.Compile(filepath.Base(src), data, pickit.Predeclared())
	if err != nil {
		return err
	}
	code, err := prog.Encode()
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		out = strings.TrimSuffix(src, filepath.Ext(src)) + pickit.BytecodeExt
	}
	if err := os.WriteFile(out, code, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(code))
	return nil
}
