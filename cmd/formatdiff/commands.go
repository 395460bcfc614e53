package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/JaimeStill/formatdiff/pkg/docx"
	"github.com/JaimeStill/formatdiff/pkg/formatting"
	"github.com/JaimeStill/formatdiff/pkg/paragraphs"
)

// CompareCmd compares two documents paragraph by paragraph.
type CompareCmd struct {
	Left       string `arg:"" help:"Reference document." type:"existingfile"`
	Right      string `arg:"" help:"Document to check." type:"existingfile"`
	JSON       bool   `name:"json" help:"Emit the result as JSON."`
	Workers    int    `name:"workers" short:"w" default:"1" help:"Goroutines used to classify paragraphs."`
	OnlyDiffs  bool   `name:"only-diffs" help:"Omit unchanged paragraphs."`
	FailOnDiff bool   `name:"fail-on-diff" help:"Exit non-zero when the documents differ."`
}

func (c *CompareCmd) Run(g *Globals) error {
	logger := g.logger().With("command", "compare")
	start := time.Now()

	_, left, err := readDocument(c.Left)
	if err != nil {
		return err
	}
	_, right, err := readDocument(c.Right)
	if err != nil {
		return err
	}

	var result *paragraphs.Result
	if c.Workers > 1 {
		result, err = paragraphs.CompareConcurrent(left, right, c.Workers)
	} else {
		result, err = paragraphs.Compare(left, right)
	}
	if err != nil {
		return err
	}

	logger.Info("comparison complete",
		"left", c.Left,
		"right", c.Right,
		"positions", result.Statistics.Total(),
		"duration", time.Since(start),
	)

	if c.OnlyDiffs {
		result.Entries = result.Changes()
	}

	if c.JSON {
		enc := json.NewEncoder(g.out())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	} else {
		fmt.Fprint(g.out(), formatReport(result))
	}

	if c.FailOnDiff && result.Statistics.Changed() {
		return ErrDifferences
	}
	return nil
}

// ParseCmd prints the paragraph records of one document.
type ParseCmd struct {
	File string `arg:"" help:"Document to parse." type:"existingfile"`
}

func (c *ParseCmd) Run(g *Globals) error {
	data, doc, err := readDocument(c.File)
	if err != nil {
		return err
	}

	g.logger().Debug("document parsed",
		"file", c.File,
		"size", formatting.FormatBytes(int64(len(data)), 1),
		"paragraphs", doc.TotalParagraphs,
	)

	enc := json.NewEncoder(g.out())
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

// SimilarityCmd compares the format definition parts of two packages.
type SimilarityCmd struct {
	Left      string  `arg:"" help:"Reference document." type:"existingfile"`
	Right     string  `arg:"" help:"Document to check." type:"existingfile"`
	Threshold float64 `name:"threshold" short:"t" default:"0.9" help:"Minimum overall similarity."`
	JSON      bool    `name:"json" help:"Emit the result as JSON."`
}

func (c *SimilarityCmd) Run(g *Globals) error {
	left, err := os.ReadFile(c.Left)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.Left, err)
	}
	right, err := os.ReadFile(c.Right)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.Right, err)
	}

	cmp, err := docx.ComparePackages(left, right)
	if err != nil {
		return err
	}

	g.logger().Info("package comparison complete",
		"parts", len(cmp.Parts),
		"similarity", cmp.OverallSimilarity,
	)

	if c.JSON {
		enc := json.NewEncoder(g.out())
		enc.SetIndent("", "  ")
		if err := enc.Encode(cmp); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	} else {
		fmt.Fprint(g.out(), formatSimilarity(cmp))
	}

	if cmp.OverallSimilarity < c.Threshold {
		return fmt.Errorf("%w: %.3f < %.3f", ErrBelowThreshold, cmp.OverallSimilarity, c.Threshold)
	}
	return nil
}

// VersionCmd prints the build version.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintf(g.out(), "formatdiff %s\n", version)
	return nil
}
