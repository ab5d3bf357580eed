package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/diaclass"
	"github.com/fwojciec/diaclass/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Config   *diaclass.SiteConfig
	Pipeline *pipeline.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config        string        `short:"c" default:"mkdocs.yml" help:"Path to the MkDocs configuration file"`
	Provider      string        `short:"p" default:"openai" enum:"openai,ollama,gemini" help:"API provider to use (${enum})"`
	Model         string        `short:"M" help:"Model to use (default: gpt-4o for openai, llama3.1 for ollama, gemini-2.5-flash for gemini)"`
	OllamaHost    string        `name:"ollama-host" default:"http://localhost:11434" help:"Host for the Ollama server"`
	OpenAIBaseURL string        `name:"openai-base-url" help:"Override the OpenAI API endpoint"`
	MaxChars      int           `short:"l" name:"max-chars" default:"15000" help:"Max number of characters to include from each file's content"`
	RepoDir       string        `name:"repo-dir" default:"tmp" help:"Directory for cloned multi-repo repositories"`
	Delay         time.Duration `default:"1s" help:"Minimum delay between documents"`
	MaxRetries    int           `name:"max-retries" default:"5" help:"Attempts per document while rate limited (openai)"`
	Cache         string        `type:"path" help:"SQLite database for caching successful responses"`
	Verbose       bool          `short:"v" help:"Log every operation to stderr"`
}
