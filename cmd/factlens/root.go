package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/factlens/internal/app"
)

// rootOptions carries the persistent flags shared by every subcommand.
type rootOptions struct {
	verbose    bool
	configPath string
	envFiles   []string

	scorer       string
	extractor    string
	llmBase      string
	llmModel     string
	llmKey       string
	systemPrompt string
	fetchTimeout time.Duration
	llmTimeout   time.Duration

	cfg app.Config
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	root := &cobra.Command{
		Use:          "factlens",
		Short:        "Credibility signals for news text",
		Long:         "factlens extracts, summarizes and scores news articles, labeling them Reliable, Fake or Borderline.",
		Version:      app.BuildVersion,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := o.resolve(cmd)
			if err != nil {
				return err
			}
			if cfg.Verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			o.cfg = cfg
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "Verbose logging")
	pf.StringVarP(&o.configPath, "config", "c", "", "Path to YAML or JSON config file")
	pf.StringSliceVar(&o.envFiles, "env-file", []string{".env"}, "Dotenv files to load before reading the environment")
	pf.StringVar(&o.scorer, "scorer", app.DefaultScorer, "Scoring strategy: rule or remote")
	pf.StringVar(&o.extractor, "extractor", app.DefaultExtractor, "Extraction strategy for URLs: heuristic or readability")
	pf.StringVar(&o.llmBase, "llm.base", "", "OpenAI-compatible base URL for the remote scorer")
	pf.StringVar(&o.llmModel, "llm.model", "", "Model name for the remote scorer")
	pf.StringVar(&o.llmKey, "llm.key", "", "API key for the OpenAI-compatible server")
	pf.StringVar(&o.systemPrompt, "llm.systemPrompt", "", "Override the classifier system prompt")
	pf.DurationVar(&o.fetchTimeout, "fetch.timeout", app.DefaultFetchTimeout, "Timeout for downloading a URL")
	pf.DurationVar(&o.llmTimeout, "llm.timeout", app.DefaultClassifierTimeout, "Timeout for one classifier call")

	root.AddCommand(newAnalyzeCmd(o))
	root.AddCommand(newSessionCmd(o))
	root.AddCommand(newVersionCmd())
	return root
}

// resolve builds the effective configuration. Precedence is flags, then
// environment, then config file, then defaults.
func (o *rootOptions) resolve(cmd *cobra.Command) (app.Config, error) {
	if err := app.LoadEnvFiles(o.envFiles...); err != nil {
		return app.Config{}, fmt.Errorf("load env files: %w", err)
	}
	cfg := app.Defaults()
	if o.configPath != "" {
		fc, err := app.LoadConfigFile(o.configPath)
		if err != nil {
			return app.Config{}, fmt.Errorf("loading config: %w", err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)

	flags := cmd.Flags()
	if flags.Changed("scorer") {
		cfg.Scorer = o.scorer
	}
	if flags.Changed("extractor") {
		cfg.Extractor = o.extractor
	}
	if flags.Changed("llm.base") {
		cfg.LLMBaseURL = o.llmBase
	}
	if flags.Changed("llm.model") {
		cfg.LLMModel = o.llmModel
	}
	if flags.Changed("llm.key") {
		cfg.LLMAPIKey = o.llmKey
	}
	if flags.Changed("llm.systemPrompt") {
		cfg.SystemPrompt = o.systemPrompt
	}
	if flags.Changed("fetch.timeout") {
		cfg.FetchTimeout = o.fetchTimeout
	}
	if flags.Changed("llm.timeout") {
		cfg.ClassifierTimeout = o.llmTimeout
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}
	return cfg, app.ValidateConfig(cfg)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.VersionString())
		},
	}
}
