// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts per-page plain text from PDF files with poppler's
// pdftotext. Two backends are available: the pdftotext binary on PATH, or
// pdftotext inside a container image run by docker or podman.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/nhis-import/internal/container"
	"github.com/pdiddy/nhis-import/pkg/types"
)

const (
	binPdftotext = "pdftotext"

	// DefaultImage is a small image that ships poppler-utils.
	DefaultImage = "minidocks/poppler:latest"

	// pageBreak is the separator pdftotext writes between pages.
	pageBreak = "\f"
)

// ErrEmptyOutput indicates pdftotext ran but produced no text, which usually
// means the PDF is scanned images without a text layer.
var ErrEmptyOutput = errors.New("pdftotext produced no text")

// Extractor returns the text of each page of a PDF, in page order.
type Extractor interface {
	Pages(ctx context.Context, pdfPath string) ([]string, error)
}

// runner abstracts command execution for testing.
type runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}

// LocalExtractor runs the pdftotext binary found on PATH.
type LocalExtractor struct {
	runner runner
	log    *zap.Logger
}

// NewLocalExtractor returns an extractor backed by pdftotext on PATH.
func NewLocalExtractor(log *zap.Logger) *LocalExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &LocalExtractor{runner: execRunner{}, log: log}
}

// Pages runs `pdftotext -enc UTF-8 -eol unix <pdf> -` and splits the output
// into pages.
func (e *LocalExtractor) Pages(ctx context.Context, pdfPath string) ([]string, error) {
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	out, errb, err := e.runner.Run(ctx, binPdftotext, "-enc", "UTF-8", "-eol", "unix", pdfPath, "-")
	if err != nil {
		return nil, fmt.Errorf("running %s on %s: %w (%s)", binPdftotext, pdfPath, err, strings.TrimSpace(string(errb)))
	}
	pages := SplitPages(string(out))
	if len(pages) == 0 {
		return nil, fmt.Errorf("%s: %w", pdfPath, ErrEmptyOutput)
	}
	e.log.Debug("extracted pdf text", zap.String("path", pdfPath), zap.Int("pages", len(pages)), zap.Int("bytes", len(out)))
	return pages, nil
}

// ContainerExtractor pipes the PDF through pdftotext inside a container.
type ContainerExtractor struct {
	runtime container.Runtime
	image   string
	log     *zap.Logger
}

// NewContainerExtractor verifies that image exists in rt before returning.
func NewContainerExtractor(ctx context.Context, rt container.Runtime, image string, log *zap.Logger) (*ContainerExtractor, error) {
	if image == "" {
		image = DefaultImage
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerExtractor{runtime: rt, image: image, log: log}, nil
}

// Pages streams the PDF to the container's stdin and reads text from stdout.
func (c *ContainerExtractor) Pages(ctx context.Context, pdfPath string) ([]string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	args := []string{binPdftotext, "-enc", "UTF-8", "-eol", "unix", "fd://0", "-"}
	if err := c.runtime.Run(ctx, c.image, args, f, &out); err != nil {
		return nil, fmt.Errorf("extracting text from %s: %w", pdfPath, err)
	}
	pages := SplitPages(out.String())
	if len(pages) == 0 {
		return nil, fmt.Errorf("%s: %w", pdfPath, ErrEmptyOutput)
	}
	c.log.Debug("extracted pdf text in container",
		zap.String("runtime", c.runtime.Name()), zap.String("image", c.image),
		zap.String("path", pdfPath), zap.Int("pages", len(pages)))
	return pages, nil
}

// New builds the extractor selected by cfg.Backend. An empty backend means
// pdftotext on PATH.
func New(ctx context.Context, cfg types.MedicinesConfig, log *zap.Logger) (Extractor, error) {
	switch cfg.Backend {
	case types.BackendPdftotext, "":
		return NewLocalExtractor(log), nil
	case types.BackendContainer:
		rt, err := container.DetectRuntime(ctx)
		if err != nil {
			return nil, err
		}
		return NewContainerExtractor(ctx, rt, cfg.Image, log)
	default:
		return nil, fmt.Errorf("unsupported pdf backend %q: use pdftotext or container", cfg.Backend)
	}
}

// SplitPages splits pdftotext output on form feeds. The empty tail after the
// final form feed is dropped; an all-whitespace document yields no pages.
func SplitPages(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	pages := strings.Split(text, pageBreak)
	if last := len(pages) - 1; last > 0 && strings.TrimSpace(pages[last]) == "" {
		pages = pages[:last]
	}
	return pages
}
