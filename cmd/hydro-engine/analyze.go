package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hydro-engine/internal/render"
	"github.com/pdiddy/hydro-engine/internal/report"
	"github.com/pdiddy/hydro-engine/internal/store"
	"github.com/pdiddy/hydro-engine/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [report.rpt]",
	Short: "Extract a health summary from a simulation report",
	Long: `Analyze streams a simulation report file and extracts continuity errors,
the top five flooded nodes, and the top five surcharged conduits.

The companion model-definition (.inp) file may be supplied with --model; it
is recorded alongside the run for traceability but is not parsed. With
--save the run is written to the local history database.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := analyzeConfigFromFlags(cmd, args[0])

	res, err := report.Parse(cfg.ReportPath, cfg.ModelPath)
	if err != nil {
		return err
	}

	if err := writeResult(res, cfg.Format); err != nil {
		return err
	}

	if cfg.Save {
		id, err := saveRun(cmd, cfg, res)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Recorded run %s\n", id)
	}
	return nil
}

// analyzeConfigFromFlags merges the config file with command flags; an
// explicitly set flag wins over the config file.
func analyzeConfigFromFlags(cmd *cobra.Command, rptPath string) types.AnalyzeConfig {
	var pipeline types.PipelineConfig
	_ = viper.Unmarshal(&pipeline)

	cfg := pipeline.Analyze
	cfg.ReportPath = rptPath
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.ModelPath = model
	}
	if format, _ := cmd.Flags().GetString("format"); cfg.Format == "" || cmd.Flags().Changed("format") {
		cfg.Format = types.OutputFormat(format)
	}
	if save, _ := cmd.Flags().GetBool("save"); save {
		cfg.Save = true
	}
	return cfg
}

func writeResult(res *types.AnalysisResult, format types.OutputFormat) error {
	switch format {
	case types.OutputText, "":
		fmt.Print(render.Summary(res))
		fmt.Println()
		fmt.Print(render.Assessment(res))
	case types.OutputJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case types.OutputYAML:
		data, err := yaml.Marshal(res)
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		os.Stdout.Write(data)
	default:
		return fmt.Errorf("unsupported format %q: use text, json, or yaml", format)
	}
	return nil
}

func saveRun(cmd *cobra.Command, cfg types.AnalyzeConfig, res *types.AnalysisResult) (string, error) {
	st, err := store.NewStore(historyConfigFromFlags(cmd))
	if err != nil {
		return "", err
	}
	defer st.Close()

	meta := store.RunMeta{ReportFile: cfg.ReportPath, ModelFile: cfg.ModelPath}
	return st.Record(context.Background(), meta, res)
}

func init() {
	analyzeCmd.Flags().String("model", "", "companion model-definition (.inp) file, recorded but not parsed")
	analyzeCmd.Flags().String("format", "text", "output format: text, json, or yaml")
	analyzeCmd.Flags().Bool("save", false, "record the run in the history database")
	analyzeCmd.Flags().String("history-dir", "history", "base directory for the history database")

	rootCmd.AddCommand(analyzeCmd)
}
