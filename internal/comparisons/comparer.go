package comparisons

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/formatdiff/internal/config"
	"github.com/JaimeStill/formatdiff/internal/templates"
	"github.com/JaimeStill/formatdiff/pkg/docx"
	"github.com/JaimeStill/formatdiff/pkg/paragraphs"
)

type comparer struct {
	templates templates.System
	compare   config.CompareConfig
	logger    *slog.Logger
}

// New creates a comparison system. Template comparisons resolve their
// reference document through tmpl.
func New(
	tmpl templates.System,
	compare config.CompareConfig,
	logger *slog.Logger,
) System {
	return &comparer{
		templates: tmpl,
		compare:   compare,
		logger:    logger.With("system", "comparisons"),
	}
}

func (c *comparer) Handler(maxUploadSize int64) *Handler {
	return NewHandler(c, c.logger, maxUploadSize)
}

func (c *comparer) Parse(ctx context.Context, upload Upload) (*paragraphs.DocumentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !docx.IsDocx(upload.Filename) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, upload.Filename)
	}

	doc, err := docx.Parse(upload.Filename, upload.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailed, upload.Filename, err)
	}
	return doc, nil
}

func (c *comparer) Compare(ctx context.Context, left, right Upload) (*Report, error) {
	start := time.Now()

	var ld, rd *paragraphs.DocumentRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ld, err = c.Parse(gctx, left)
		return err
	})
	g.Go(func() (err error) {
		rd, err = c.Parse(gctx, right)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result, err := c.compareRecords(ld, rd)
	if err != nil {
		return nil, err
	}

	pkg, err := docx.CompareParsed(left.Data, right.Data, ld, rd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	c.logger.Info(
		"documents compared",
		"left", left.Filename,
		"right", right.Filename,
		"positions", result.Statistics.Total(),
		"modified", result.Statistics.Modified,
		"added", result.Statistics.Added,
		"removed", result.Statistics.Removed,
		"similarity", pkg.OverallSimilarity,
		"duration", time.Since(start),
	)

	return &Report{Paragraphs: result, Package: pkg}, nil
}

func (c *comparer) CompareTemplate(ctx context.Context, id *uuid.UUID, upload Upload) (*Report, error) {
	tmpl, err := c.resolveTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	_, body, err := c.templates.Download(ctx, tmpl.ID)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", tmpl.ID, err)
	}

	report, err := c.Compare(ctx, Upload{Filename: tmpl.Filename, Data: data}, upload)
	if err != nil {
		return nil, err
	}

	report.Template = tmpl
	return report, nil
}

func (c *comparer) resolveTemplate(ctx context.Context, id *uuid.UUID) (*templates.Template, error) {
	if id == nil {
		return c.templates.FindDefault(ctx)
	}
	return c.templates.Find(ctx, *id)
}

func (c *comparer) compareRecords(left, right *paragraphs.DocumentRecord) (*paragraphs.Result, error) {
	positions := max(left.TotalParagraphs, right.TotalParagraphs)
	if c.compare.Concurrent(positions) {
		return paragraphs.CompareConcurrent(left, right, c.compare.Workers)
	}
	return paragraphs.Compare(left, right)
}
