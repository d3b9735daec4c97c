package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adelevie/eyecite/pkg/citation"
	"github.com/adelevie/eyecite/pkg/extract"
	"github.com/adelevie/eyecite/pkg/reporters"
)

var version = "0.1.0"

var (
	cfgFile      string
	reportersDir string
	outputFormat string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "eyecite",
		Short: "Legal citation extractor",
		Long: `Eyecite extracts legal citations from unstructured text and resolves
them into normalized records: full case citations, short-form citations,
"supra" and "id." back-references, and non-opinion references such as
statutes.

Reporter abbreviations are disambiguated against a reporters database of
date-bounded editions, courts are inferred where the reporter implies one,
and back-references are linked to their antecedent full citations.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: $HOME/.eyecite/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&reportersDir, "reporters", "",
		"directory of reporters database YAML files (default: built-in table)")
	_ = viper.BindPFlag("reporters", rootCmd.PersistentFlags().Lookup("reporters"))

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(reportersCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads the config file and EYECITE_* environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".eyecite"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("EYECITE")
	viper.AutomaticEnv()

	// Missing config file is fine; flags and defaults cover everything.
	_ = viper.ReadInConfig()
}

func extractCmd() *cobra.Command {
	var useCache bool
	var cacheTTL time.Duration

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract and resolve citations from a document",
		Long: `Extract reads a document from the given file (or stdin when no file is
given), extracts every citation, and prints the resolved records.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readDocument(args)
			if err != nil {
				return err
			}

			registry, err := loadRegistry()
			if err != nil {
				return err
			}

			engine, err := extract.NewEngine(registry)
			if err != nil {
				return err
			}

			var result *extract.Result
			if useCache {
				result = extract.NewCachedEngine(engine, cacheTTL, cacheTTL).Extract(text)
			} else {
				result = engine.Extract(text)
			}

			return writeResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format: json or text")
	cmd.Flags().BoolVar(&useCache, "cache", false, "cache extraction results by document hash")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 5*time.Minute, "how long cached results live")

	return cmd
}

func reportersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reporters",
		Short: "List the loaded reporters database",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, reporter := range registry.Reporters() {
				fmt.Fprintf(out, "%s\t%s\t%s\n", reporter.ShortName, reporter.CiteType, reporter.Name)
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "eyecite %s\n", version)
		},
	}
}

// loadRegistry loads the reporters database from the configured directory,
// falling back to the built-in table.
func loadRegistry() (*reporters.Registry, error) {
	dir := reportersDir
	if dir == "" {
		dir = viper.GetString("reporters")
	}
	if dir == "" {
		return reporters.DefaultRegistry(), nil
	}
	registry, err := reporters.NewRegistryWithDirectory(dir)
	if err != nil {
		return nil, fmt.Errorf("loading reporters database: %w", err)
	}
	return registry, nil
}

func readDocument(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

// citationView is the JSON projection of a citation record.
type citationView struct {
	Kind              string `json:"kind"`
	MatchedText       string `json:"matched_text"`
	Volume            string `json:"volume,omitempty"`
	Reporter          string `json:"reporter,omitempty"`
	Page              string `json:"page,omitempty"`
	CanonicalReporter string `json:"canonical_reporter,omitempty"`
	Court             string `json:"court,omitempty"`
	Year              int    `json:"year,omitempty"`
	Plaintiff         string `json:"plaintiff,omitempty"`
	Defendant         string `json:"defendant,omitempty"`
	AntecedentGuess   string `json:"antecedent_guess,omitempty"`
	Antecedent        *int   `json:"antecedent,omitempty"`
	HasPage           bool   `json:"has_page,omitempty"`
	SpanRegex         string `json:"span_regex"`
}

func viewOf(cit citation.Citation) citationView {
	view := citationView{
		MatchedText: cit.MatchedText(),
		SpanRegex:   cit.AsRegex(),
	}

	switch c := cit.(type) {
	case *citation.FullCaseCitation:
		view.Kind = "full"
		view.Volume = c.Volume
		view.Reporter = c.Reporter
		view.Page = c.Page
		view.CanonicalReporter = c.CanonicalReporter
		view.Court = c.Court
		view.Year = c.Year
		view.Plaintiff = c.Plaintiff
		view.Defendant = c.Defendant
	case *citation.ShortCaseCitation:
		view.Kind = "short"
		view.Volume = c.Volume
		view.Reporter = c.Reporter
		view.Page = c.Page
		view.CanonicalReporter = c.CanonicalReporter
		view.Court = c.Court
		view.AntecedentGuess = c.AntecedentGuess
		view.Antecedent = antecedentOf(c.Antecedent)
	case *citation.SupraCitation:
		view.Kind = "supra"
		view.Volume = c.Volume
		view.Page = c.Page
		view.AntecedentGuess = c.AntecedentGuess
		view.Antecedent = antecedentOf(c.Antecedent)
	case *citation.IdCitation:
		view.Kind = "id"
		view.HasPage = c.HasPage
		view.Antecedent = antecedentOf(c.Antecedent)
	case *citation.NonopinionCitation:
		view.Kind = "nonopinion"
	}
	return view
}

func antecedentOf(index int) *int {
	if index < 0 {
		return nil
	}
	return &index
}

func writeResult(w io.Writer, result *extract.Result) error {
	views := make([]citationView, len(result.Citations))
	for i, cit := range result.Citations {
		views[i] = viewOf(cit)
	}

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(views)
	case "text":
		for _, view := range views {
			fmt.Fprintf(w, "%-10s %s\n", view.Kind, view.MatchedText)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
}
