package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/phanxgames/pickit"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [script]",
	Short: "Load a script and its resources without opening a window",
	Long: `Evaluate a script, resolve every declared resource and run init, then
report the callbacks it defines and the resources it loaded.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	entry, err := pickit.EntryFromFile(cfg.Entry)
	if err != nil {
		return err
	}
	h, err := pickit.New(cfg, entry)
	if err != nil {
		return err
	}
	defer h.Close()
	if err := h.Start(context.Background()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: ok\n", cfg.Entry)
	fmt.Fprintf(out, "callbacks: %s\n", strings.Join(h.Callbacks(), ", "))
	res := h.Resources()
	for _, kind := range []pickit.ResourceKind{pickit.KindSprite, pickit.KindAnimation, pickit.KindSound, pickit.KindFont} {
		names := res.Names(kind)
		fmt.Fprintf(out, "%ss: %d", kind, len(names))
		if len(names) > 0 {
			fmt.Fprintf(out, " (%s)", strings.Join(names, ", "))
		}
		fmt.Fprintln(out)
	}
	return nil
}
