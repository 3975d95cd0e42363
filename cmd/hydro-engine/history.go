// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hydro-engine/internal/render"
	"github.com/pdiddy/hydro-engine/internal/store"
	"github.com/pdiddy/hydro-engine/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Review recorded analysis runs (list, show, export)",
	Long: `History manages the local SQLite database of recorded analysis runs.
Use subcommands to list past runs, show one run in full, or export the
whole history to YAML.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded analysis runs, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	st, err := store.NewStore(historyConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer st.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := st.List(context.Background(), limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-8s  %-8s  %-7s  %s\n",
		"ID", "Analyzed", "Runoff%", "Routing%", "Flooded", "Surcharged")
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-8s  %-8s  %-7d  %d\n",
			r.ID, r.AnalyzedAt.Local().Format("2006-01-02 15:04:05"),
			formatPercent(r.RunoffError), formatPercent(r.RoutingError),
			r.FloodedCount, r.SurchargedCount)
	}
	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

func formatPercent(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f", *v)
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show one recorded run in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	st, err := store.NewStore(historyConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.Show(context.Background(), args[0])
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	}

	fmt.Printf("Run %s\n", run.ID)
	fmt.Printf("Report:   %s\n", run.ReportFile)
	if run.ModelFile != "" {
		fmt.Printf("Model:    %s\n", run.ModelFile)
	}
	fmt.Printf("Analyzed: %s\n\n", run.AnalyzedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Print(render.Summary(&run.Result))
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full history to YAML",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	cfg := historyConfigFromFlags(cmd)

	st, err := store.NewStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = filepath.Join(cfg.HistoryDir, "export.yaml")
	}

	if err := st.ExportYAML(context.Background(), out); err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", out)
	return nil
}

// --- shared helpers ---

// historyConfigFromFlags merges the config file with the history flags of
// whichever command is running; analyze defines the same history-dir flag
// as the history group. An explicitly set flag wins over the config file.
func historyConfigFromFlags(cmd *cobra.Command) types.HistoryConfig {
	var pipeline types.PipelineConfig
	_ = viper.Unmarshal(&pipeline)

	cfg := pipeline.History
	if dir, _ := cmd.Flags().GetString("history-dir"); cfg.HistoryDir == "" || cmd.Flags().Changed("history-dir") {
		cfg.HistoryDir = dir
	}
	if limit, _ := cmd.Flags().GetInt("max-results"); cfg.MaxResults == 0 || cmd.Flags().Changed("max-results") {
		cfg.MaxResults = limit
	}
	if cfg.HistoryDir == "" {
		cfg.HistoryDir = "history"
	}
	return cfg
}

func init() {
	historyCmd.PersistentFlags().String("history-dir", "history", "base directory for the history database")
	historyCmd.PersistentFlags().Int("max-results", 20, "default maximum number of runs listed")

	historyListCmd.Flags().Int("limit", 0, "maximum runs to list (0 = use default)")
	historyShowCmd.Flags().Bool("json", false, "output the run as JSON")
	historyExportCmd.Flags().String("out", "", "output path (default: <history-dir>/export.yaml)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
