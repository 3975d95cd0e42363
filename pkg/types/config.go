package types

// OutputFormat selects how an analysis result is rendered on stdout.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// AnalyzeConfig holds settings for the analyze command.
type AnalyzeConfig struct {
	// ReportPath is the simulation report (.rpt) to parse.
	ReportPath string `json:"report_path" yaml:"report_path" mapstructure:"report_path"`

	// ModelPath is an optional companion model definition (.inp). It is
	// recorded with the analysis for traceability but never read.
	ModelPath string `json:"model_path,omitempty" yaml:"model_path,omitempty" mapstructure:"model_path"`

	// Format selects the output rendering: text, json, or yaml.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	// Save controls whether the run is recorded in the history database.
	Save bool `json:"save" yaml:"save" mapstructure:"save"`
}

// HistoryConfig holds settings for the analysis history store.
type HistoryConfig struct {
	// HistoryDir is the directory containing history.db.
	HistoryDir string `json:"history_dir" yaml:"history_dir" mapstructure:"history_dir"`

	// MaxResults is the default maximum number of runs listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// PipelineConfig groups all command configurations. It is the schema of the
// hydro-engine.yaml config file; command-line flags override it.
type PipelineConfig struct {
	Analyze AnalyzeConfig `json:"analyze" yaml:"analyze" mapstructure:"analyze"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}
