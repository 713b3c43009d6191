// Package editor is the composition controller: it owns the live solid
// set, runs insertion and export in the background and exposes the
// picking, dragging and layout operations of the text tool.
package editor

import (
	"context"
	"errors"
	"fmt"

	"text-creator/config"
	"text-creator/glyph"
	"text-creator/layout"
	"text-creator/scene"
)

var (
	ErrEmptyText        = errors.New("editor: empty text")
	ErrLocked           = errors.New("editor: busy")
	ErrNothingToExport  = errors.New("editor: nothing to export")
	ErrExportFailed     = errors.New("editor: export failed")
	ErrUnableToSave     = errors.New("editor: unable to save")
	ErrPermissionDenied = fmt.Errorf("%w: permission denied", ErrUnableToSave)
)

// Library receives every exported file, e.g. to list it for printing.
type Library interface {
	AddItem(name, path string) error
}

// Option configures an Editor.
type Option func(*Editor)

func WithLibrary(l Library) Option {
	return func(e *Editor) { e.library = l }
}

// WithCamera sets the camera used by the screen-space helpers.
func WithCamera(c *scene.Camera) Option {
	return func(e *Editor) { e.camera = c }
}

// Editor is not safe for concurrent use: call it from one goroutine and
// let Await or Poll collect background results on that goroutine.
type Editor struct {
	cfg     *config.Config
	mesher  *glyph.Mesher
	library Library
	camera  *scene.Camera

	live      *scene.SolidSet
	text      string
	settings  layout.Settings
	Selection Selection
	History   *History

	job        *job
	dirty      bool
	lastExport string
}

// job is the background operation holding the editor lock.
type job struct {
	name string
	// waitable parts of the task
	done    <-chan struct{}
	percent func() int
	cancel  func()
	// finish runs on the controlling goroutine once done is closed.
	finish func() error
}

// New builds an editor meshing text from src.
func New(cfg *config.Config, src glyph.OutlineSource, opts ...Option) *Editor {
	e := &Editor{
		cfg:      cfg,
		mesher:   glyph.NewMesher(src, cfg.Font.Depth),
		camera:   scene.NewCamera(0.7854, 16.0/9.0, 0.1, 1000),
		live:     scene.NewSolidSet(),
		settings: defaultSettings(cfg),
		History:  NewHistory(cfg.Editor.HistoryDepth),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open loads the configured font and builds an editor over it.
func Open(cfg *config.Config, opts ...Option) (*Editor, error) {
	face, err := glyph.LoadFont(glyph.Options{
		Name:       cfg.Font.Name,
		PointSize:  cfg.Font.PointSize,
		CurveSteps: cfg.Font.CurveSteps,
	})
	if err != nil {
		return nil, err
	}
	return New(cfg, face, opts...), nil
}

func defaultSettings(cfg *config.Config) layout.Settings {
	return layout.Settings{
		Spacing:   cfg.Layout.Spacing.Default,
		Size:      cfg.Layout.Size.Default,
		Height:    cfg.Layout.Height.Default,
		Underline: cfg.Layout.Underline,
	}
}

// Solids returns the live set. Callers must not modify it.
func (e *Editor) Solids() *scene.SolidSet { return e.live }

func (e *Editor) Text() string { return e.text }

func (e *Editor) Settings() layout.Settings { return e.settings }

func (e *Editor) Camera() *scene.Camera { return e.camera }

// Dirty reports unsaved changes since the last insertion or export.
func (e *Editor) Dirty() bool { return e.dirty }

// Locked reports whether a background task is pending.
func (e *Editor) Locked() bool { return e.job != nil }

// LastExport is the path written by the last successful export.
func (e *Editor) LastExport() string { return e.lastExport }

// Selected returns the index of the selected solid, or -1.
func (e *Editor) Selected() int { return e.Selection.Index(e.live) }

// Progress returns the pending task's percentage, or 100 when idle.
func (e *Editor) Progress() int {
	if e.job == nil {
		return 100
	}
	return e.job.percent()
}

func (e *Editor) start(j *job) {
	e.job = j
	e.Selection.drag = nil
}

// Await blocks until the pending task ends and applies its result. It
// returns the task's error, or ctx's if ctx ends first, in which case the
// task is still pending.
func (e *Editor) Await(ctx context.Context) error {
	if e.job == nil {
		return nil
	}
	select {
	case <-e.job.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return e.complete()
}

// Poll applies the pending task's result if it has finished. done is true
// when the editor is unlocked afterwards.
func (e *Editor) Poll() (done bool, err error) {
	if e.job == nil {
		return true, nil
	}
	select {
	case <-e.job.done:
		return true, e.complete()
	default:
		return false, nil
	}
}

// Cancel asks the pending task to stop; Await or Poll still collect it.
func (e *Editor) Cancel() {
	if e.job != nil {
		e.job.cancel()
	}
}

// complete always unlocks, whatever the task's outcome.
func (e *Editor) complete() error {
	j := e.job
	e.job = nil
	return j.finish()
}

func (e *Editor) checkUnlocked() error {
	if e.job != nil {
		return fmt.Errorf("%w: %s pending", ErrLocked, e.job.name)
	}
	return nil
}
