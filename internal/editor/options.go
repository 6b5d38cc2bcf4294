package editor

import (
	"context"
	"log"

	"github.com/example/cardalign/internal/export"
	"github.com/example/cardalign/internal/layout"
	"github.com/example/cardalign/internal/render"
	"github.com/example/cardalign/internal/source"
)

// ExportOptions controls the encoded payload.
type ExportOptions struct {
	Format  export.Format
	Quality int
	Padding float64
}

// DefaultExportOptions returns JPEG at the default quality with the standard
// bleed padding.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{Format: export.JPEG, Quality: export.DefaultQuality, Padding: export.Padding}
}

// Option modifies an Editor during creation.
type Option func(*Editor)

// WithTitle sets the caption drawn above the photo.
func WithTitle(title string) Option { return func(e *Editor) { e.title = title } }

// WithViewport sets the initial drawing surface size.
func WithViewport(vp layout.Size) Option { return func(e *Editor) { e.viewport = vp } }

// WithLoader sets how Load resolves image references.
func WithLoader(l source.Loader) Option { return func(e *Editor) { e.loader = l } }

// WithRenderer replaces the default renderer.
func WithRenderer(r *render.Renderer) Option { return func(e *Editor) { e.renderer = r } }

// WithExportOptions sets the payload format, quality and padding.
func WithExportOptions(o ExportOptions) Option { return func(e *Editor) { e.exportOpts = o } }

// WithExporter replaces the export function.
func WithExporter(fn func(context.Context, export.Request) (export.Result, error)) Option {
	return func(e *Editor) { e.exportFn = fn }
}

// WithOnConfirm is called once with the payload after a successful export.
func WithOnConfirm(fn func(export.Result)) Option { return func(e *Editor) { e.onConfirm = fn } }

// WithOnCancel is called once when the editor is cancelled.
func WithOnCancel(fn func()) Option { return func(e *Editor) { e.onCancel = fn } }

// WithOnPhase observes every phase transition.
func WithOnPhase(fn func(Phase)) Option { return func(e *Editor) { e.onPhase = fn } }

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option { return func(e *Editor) { e.logger = l } }
