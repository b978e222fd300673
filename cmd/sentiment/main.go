package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"sentiment/internal/config"
	"sentiment/internal/corpus"
	"sentiment/internal/domain"
	"sentiment/internal/ingest"
	"sentiment/internal/modelcache"
	"sentiment/internal/report"
	"sentiment/internal/sentiment"
	"sentiment/internal/textnorm"
	"sentiment/internal/tui"
	"sentiment/internal/vectorizer"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("sentiment", flag.ContinueOnError)
	var cfgPath string
	var files bool
	var interactive bool
	var top int
	fs.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/sentiment/config.yaml if not provided)")
	fs.BoolVar(&files, "files", false, "Treat arguments as .txt files with one comment per line (\"-\" reads stdin)")
	fs.BoolVar(&interactive, "tui", false, "Start the interactive classifier")
	fs.IntVar(&top, "top", 0, "Number of frequent terms to show per label (overrides config)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if top > 0 {
		cfg.Report.TopTerms = top
	}
	log := logs.GetLoggerFromString(cfg.Log.Level)

	pipeline, err := buildPipeline(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build classifier: %w", err)
	}

	comments := fs.Args()
	if files {
		comments, err = ingest.LoadComments(comments)
		if err != nil {
			return fmt.Errorf("failed to read comments: %w", err)
		}
	}

	if interactive {
		m := tui.New(pipeline, pipeline.Normalizer().Tokens, pipeline.Describe(), comments, log)
		_, err := tea.NewProgram(m).Run()
		return err
	}
	if len(comments) == 0 {
		fs.SetOutput(stdout)
		fmt.Fprintln(stdout, "Usage: sentiment [-config=config.yaml] [-tui] [-files] comment|file ...")
		fs.PrintDefaults()
		return fmt.Errorf("no comments given")
	}

	predictions, err := pipeline.Analyze(comments)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}
	printPredictions(stdout, predictions, report.Summarize(predictions, pipeline.Normalizer().Tokens, cfg.Report.TopTerms))
	return nil
}

// buildPipeline assembles the classifier from configuration.
func buildPipeline(cfg *config.AppConfig, log *slog.Logger) (*sentiment.Pipeline, error) {
	stemmer, err := textnorm.NewStemmer(cfg.Normalizer.Stemmer)
	if err != nil {
		return nil, err
	}
	pcfg := sentiment.Config{
		Normalizer: textnorm.New(
			textnorm.WithStemmer(stemmer),
			textnorm.WithExtraStopwords(cfg.Normalizer.ExtraStopwords...),
		),
		Vectorizer: vectorizer.Options{
			NGramMin:       cfg.Vectorizer.NGramMin,
			NGramMax:       cfg.Vectorizer.NGramMax,
			MinTokenLength: cfg.Vectorizer.MinTokenLength,
		},
		Alpha: cfg.Classifier.Alpha,
	}
	if cfg.Corpus.Path != "" {
		examples, err := corpus.Load(cfg.Corpus.Path)
		if err != nil {
			return nil, err
		}
		log.Info("Loaded training corpus", "path", cfg.Corpus.Path, "examples", len(examples))
		pcfg.Corpus = func() []domain.SeedExample {
			return append([]domain.SeedExample(nil), examples...)
		}
	}
	if cfg.Cache.Enabled {
		pcfg.Cache = modelcache.NewStore()
	}
	return sentiment.NewPipeline(pcfg, log)
}

func printPredictions(w io.Writer, predictions []domain.Prediction, summary report.Summary) {
	for _, p := range predictions {
		fmt.Fprintf(w, "%s\t%.2f\t%s\n", tui.LabelStyle(p.Label).Render(p.Label.String()), p.Confidence, p.Comment)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, summary.String())
	for _, l := range domain.Labels {
		if terms := summary.TopTerms[l]; len(terms) > 0 {
			fmt.Fprintf(w, "  %s: %v\n", l, terms)
		}
	}
}
