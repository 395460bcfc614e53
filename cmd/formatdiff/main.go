// Command formatdiff compares the paragraph formatting of two .docx files.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/JaimeStill/formatdiff/pkg/docx"
	"github.com/JaimeStill/formatdiff/pkg/paragraphs"
)

var version = "dev"

var (
	ErrDifferences    = errors.New("documents differ")
	ErrBelowThreshold = errors.New("similarity below threshold")
)

// Globals are shared by every command.
type Globals struct {
	LogLevel string `name:"log-level" enum:"debug,info,warn,error" default:"warn" help:"Log level (debug, info, warn, error)."`

	Out io.Writer `kong:"-"`
}

func (g *Globals) logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.LogLevel)); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With("service", "formatdiff")
}

func (g *Globals) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI defines the command line.
type CLI struct {
	Globals

	Compare    CompareCmd    `cmd:"" help:"Compare paragraph formatting of two documents."`
	Parse      ParseCmd      `cmd:"" help:"Print the paragraph records of a document as JSON."`
	Similarity SimilarityCmd `cmd:"" help:"Compare the format definition parts of two documents."`
	Version    VersionCmd    `cmd:"" help:"Print version information."`
}

func readDocument(path string) ([]byte, *paragraphs.DocumentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := docx.Parse(path, data)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return data, doc, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("formatdiff"),
		kong.Description("Paragraph-level formatting comparison for Word documents."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
