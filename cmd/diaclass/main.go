package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/diaclass"
	"github.com/fwojciec/diaclass/fs"
	"github.com/fwojciec/diaclass/gemini"
	"github.com/fwojciec/diaclass/git"
	"github.com/fwojciec/diaclass/ollama"
	"github.com/fwojciec/diaclass/openai"
	"github.com/fwojciec/diaclass/pipeline"
	dslog "github.com/fwojciec/diaclass/slog"
	"github.com/fwojciec/diaclass/sqlite"
	"github.com/fwojciec/diaclass/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", diaclass.ErrorMessage(err))
		os.Exit(1)
	}
}

// openAIKeyPlaceholder is treated as an unset key.
const openAIKeyPlaceholder = "your-openai-api-key"

// Main represents the program.
type Main struct {
	// Getenv reads credentials. Defaults to os.Getenv.
	Getenv func(string) string

	// SQLite database backing the response cache, opened when --cache is set.
	DB *sqlite.DB

	// Services for end-to-end testing. When nil they are built from flags.
	Classifier   diaclass.Classifier
	Materializer diaclass.Materializer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv: os.Getenv,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("diaclass"),
		kong.Description("Scan MkDocs docs and classify them using the Diátaxis framework."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if slices.ContainsFunc(args, isHelp) {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	provider, err := diaclass.ParseProvider(cli.Provider)
	if err != nil {
		return err
	}
	model := cli.Model
	if model == "" {
		model = defaultModel(provider)
	}

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Credentials are checked before any other work.
	classifier := m.Classifier
	if classifier == nil {
		classifier, err = m.newClassifier(ctx, cli, provider, model, stderr)
		if err != nil {
			return err
		}
	}

	cfg, err := yaml.Load(cli.Config, yaml.WithWarnFunc(func(format string, args ...any) {
		fmt.Fprintf(stderr, "warning: "+format+"\n", args...)
	}))
	if err != nil {
		return err
	}
	deps.Config = cfg

	materializer := m.Materializer
	if materializer == nil {
		materializer = git.NewMaterializer(cli.RepoDir)
	}
	var locator diaclass.Locator = fs.NewLocator(cfg, cli.RepoDir)

	var cache diaclass.ResponseCache
	if cli.Cache != "" {
		m.DB = sqlite.NewDB(cli.Cache)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open cache at %q: %w", cli.Cache, err)
		}
		defer m.Close()
		cache = sqlite.NewResponseCache(m.DB)
	}

	if logger != nil {
		classifier = dslog.NewLoggingClassifier(classifier, provider, model, logger)
		materializer = dslog.NewLoggingMaterializer(materializer, logger)
		locator = dslog.NewLoggingLocator(locator, logger)
		if cache != nil {
			cache = dslog.NewLoggingResponseCache(cache, logger)
		}
	}

	deps.Pipeline = &pipeline.Pipeline{
		Materializer: materializer,
		Locator:      locator,
		Classifier:   classifier,
		Cache:        cache,
		Provider:     provider,
		Model:        model,
		MaxChars:     cli.MaxChars,
		Delay:        cli.Delay,
	}

	return kongCtx.Run(deps)
}

// credentialEnv names the environment variable holding each hosted
// provider's API key.
var credentialEnv = map[diaclass.Provider]string{
	diaclass.ProviderOpenAI: "OPENAI_API_KEY",
	diaclass.ProviderGemini: "GEMINI_API_KEY",
}

// apiKey reads the credential for a hosted provider.
func (m *Main) apiKey(provider diaclass.Provider) (string, error) {
	name := credentialEnv[provider]
	key := m.Getenv(name)
	if key == "" || (provider == diaclass.ProviderOpenAI && key == openAIKeyPlaceholder) {
		switch provider {
		case diaclass.ProviderGemini:
			return "", diaclass.Errorf(diaclass.EINVALID, "%s not set. Get a key at https://aistudio.google.com/apikey", name)
		default:
			return "", diaclass.Errorf(diaclass.EINVALID, "please set your OpenAI API key in the %s environment variable", name)
		}
	}
	return key, nil
}

// newClassifier builds the backend for provider, reading its credential.
func (m *Main) newClassifier(ctx context.Context, cli *CLI, provider diaclass.Provider, model string, stderr io.Writer) (diaclass.Classifier, error) {
	var apiKey string
	if provider.Hosted() {
		key, err := m.apiKey(provider)
		if err != nil {
			return nil, err
		}
		apiKey = key
	}

	switch provider {
	case diaclass.ProviderOpenAI:
		return openai.NewClassifier(openai.NewClient(apiKey, cli.OpenAIBaseURL), model,
			openai.WithMaxRetries(cli.MaxRetries),
			openai.WithLogger(func(format string, args ...any) {
				fmt.Fprintf(stderr, format+"\n", args...)
			}),
		), nil

	case diaclass.ProviderOllama:
		client, err := ollama.NewClient(cli.OllamaHost, ollama.DefaultTimeout)
		if err != nil {
			return nil, err
		}
		return ollama.NewClassifier(client, model), nil

	case diaclass.ProviderGemini:
		client, err := gemini.NewClient(ctx, apiKey)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewClassifier(client, model), nil
	}
	return nil, diaclass.Errorf(diaclass.EINVALID, "unsupported provider %q", provider)
}

func defaultModel(provider diaclass.Provider) string {
	switch provider {
	case diaclass.ProviderOllama:
		return ollama.DefaultModel
	case diaclass.ProviderGemini:
		return gemini.DefaultModel
	default:
		return openai.DefaultModel
	}
}

func isHelp(arg string) bool {
	return arg == "--help" || arg == "-h"
}
