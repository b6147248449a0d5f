package main

import (
	"github.com/phanxgames/pickit"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Open a window and run a script",
	Long: `Run a script (.star) or compiled program (.starc) in a window.

Without an argument the entry named in pickit.toml is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("size", "", "Surface size WxH (overrides config)")
	runCmd.Flags().Bool("watch", false, "Reload the script when files change")
	runCmd.Flags().Bool("fps", false, "Show the FPS/TPS overlay")
	runCmd.Flags().String("test-script", "", "JSON file of synthetic input steps")
	runCmd.Flags().Bool("debug", false, "Log per-second frame statistics")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if size, _ := cmd.Flags().GetString("size"); size != "" {
		if cfg.Width, cfg.Height, err = parseSize(size); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch, _ = cmd.Flags().GetBool("watch")
	}
	if cmd.Flags().Changed("fps") {
		cfg.ShowFPS, _ = cmd.Flags().GetBool("fps")
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug, _ = cmd.Flags().GetBool("debug")
	}
	if ts, _ := cmd.Flags().GetString("test-script"); ts != "" {
		cfg.TestScript = ts
	}

	entry, err := pickit.EntryFromFile(cfg.Entry)
	if err != nil {
		return err
	}
	return pickit.Run(cfg, entry)
}
