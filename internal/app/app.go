package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/vk/reqgrid/internal/ctxlog"
	"github.com/vk/reqgrid/internal/demo"
	"github.com/vk/reqgrid/internal/loader"
	"github.com/vk/reqgrid/internal/render"
	"github.com/vk/reqgrid/internal/report"
	"github.com/vk/reqgrid/internal/schema"
	"github.com/vk/reqgrid/internal/tui"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW   io.Writer
	logger *slog.Logger
}

// New is the constructor for the main application. Logs go to errW so the
// rendered output on outW stays clean for piping.
func New(outW, errW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.level, cfg.LogFormat, errW)
	logger.Debug("Logger configured successfully.")
	return &App{outW: outW, logger: logger}
}

// context embeds the app's logger so downstream packages can narrate.
func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Markdown loads the document and writes the rendered markdown document,
// optionally styled for terminal display.
func (a *App) Markdown(ctx context.Context, documentPath string, pretty bool) error {
	ctx = a.context(ctx)
	project, err := loader.Load(ctx, documentPath)
	if err != nil {
		return err
	}

	doc := render.Document(project, true)
	if pretty {
		styled, err := glamour.Render(doc, "auto")
		if err != nil {
			return fmt.Errorf("styling markdown for terminal: %w", err)
		}
		doc = styled
	}

	_, err = fmt.Fprintln(a.outW, doc)
	return err
}

// HTML loads the document and writes a standalone HTML page.
func (a *App) HTML(ctx context.Context, documentPath string) error {
	ctx = a.context(ctx)
	project, err := loader.Load(ctx, documentPath)
	if err != nil {
		return err
	}

	page, err := render.HTML(project)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.outW, page)
	return err
}

// Check loads the document and the test-result files, runs the compliance
// checker, and writes the report. Patterns are compiled first: an invalid
// pattern is a configuration error and must surface before any traversal.
func (a *App) Check(ctx context.Context, documentPath string, patternExprs, resultPaths []string) error {
	ctx = a.context(ctx)

	patterns, err := report.CompilePatterns(patternExprs)
	if err != nil {
		return err
	}
	project, err := loader.Load(ctx, documentPath)
	if err != nil {
		return err
	}
	texts, err := report.LoadTexts(ctx, resultPaths)
	if err != nil {
		return err
	}

	lines := report.Check(ctx, project, patterns, texts)
	_, err = fmt.Fprintln(a.outW, strings.Join(lines, "\n"))
	return err
}

// Schema writes the JSON schema of the document format.
func (a *App) Schema(ctx context.Context) error {
	out, err := schema.JSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.outW, out)
	return err
}

// Demo writes the embedded demo catalogue as YAML.
func (a *App) Demo(ctx context.Context) error {
	_, err := fmt.Fprint(a.outW, demo.Document())
	return err
}

// Browse opens the terminal browser on the given document, or on the
// embedded demo catalogue when documentPath is empty.
func (a *App) Browse(ctx context.Context, documentPath string) error {
	ctx = a.context(ctx)

	project := demo.Project(ctx)
	if documentPath != "" {
		loaded, err := loader.Load(ctx, documentPath)
		if err != nil {
			return err
		}
		project = loaded
	}
	return tui.Run(project)
}
