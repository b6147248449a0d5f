package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/phanxgames/pickit"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pickit",
	Short: "Scripted 2D presentation runtime",
	Long: `pickit - Run small games and animated demos written in Starlark.

A script defines init, onload, update, draw and event callbacks and draws
through the predeclared qs module. Resources declared while the module loads
are fetched concurrently before init runs.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default: pickit.toml next to the script)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig reads the config named by --config, or pickit.toml in the
// script's directory, and applies the script argument.
func loadConfig(cmd *cobra.Command, args []string) (pickit.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		dir := "."
		if len(args) > 0 {
			dir = filepath.Dir(args[0])
		}
		path = filepath.Join(dir, pickit.DefaultConfigFile)
	}
	cfg, err := pickit.LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	if len(args) > 0 {
		cfg.Entry = args[0]
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if err := pickit.SetLogLevel(cfg.LogLevel); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// parseSize parses "WxH".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: dimensions must be positive", s)
	}
	return w, h, nil
}
