package editor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"text-creator/core"
	"text-creator/csg"
	meshio "text-creator/io"
	"text-creator/scene"
	"text-creator/task"
)

// MergeAndExport bakes every solid, unions them into one mesh and writes it
// to a new file in the output directory. The work runs on a snapshot of
// the composition; the live set is never touched. Await or Poll returns
// ErrExportFailed, ErrUnableToSave or ErrPermissionDenied on failure and
// LastExport holds the path on success.
func (e *Editor) MergeAndExport(ctx context.Context) (*task.Task[string], error) {
	if err := e.checkUnlocked(); err != nil {
		return nil, err
	}
	if e.live.Len() == 0 {
		return nil, ErrNothingToExport
	}
	ser, err := meshio.ForFormat(e.cfg.Export.Format)
	if err != nil {
		return nil, err
	}

	staging := e.live.Clone()
	name := e.text
	path := filepath.Join(e.cfg.Export.OutputDir,
		e.cfg.Export.FilePrefix+uuid.NewString()+"."+string(ser.Format()))

	t := task.Go(ctx, "export", func(ctx context.Context, report func(int)) (string, error) {
		return exportSet(ctx, staging, name, path, report)
	})

	e.start(&job{
		name:    "export",
		done:    t.Done(),
		percent: t.Percent,
		cancel:  t.Cancel,
		finish: func() error {
			path, _, err := t.Poll()
			if err != nil {
				core.Logger().Warn("export failed", "err", err)
				return err
			}
			e.lastExport = path
			e.dirty = false
			core.Logger().Info("exported", "path", path)
			if e.library != nil {
				if err := e.library.AddItem(name, path); err != nil {
					return fmt.Errorf("add %s to library: %w", path, err)
				}
			}
			return nil
		},
	})
	return t, nil
}

// exportSet consumes set. Progress: bake to 40%, union to 80%, write to 100%.
func exportSet(ctx context.Context, set *scene.SolidSet, name, path string, report func(int)) (string, error) {
	n := set.Len()
	meshes := make([]*scene.Mesh, n)
	for i, solid := range set.Solids {
		solid.Mesh.Transform(set.Transforms[i].Total())
		meshes[i] = solid.Mesh
		report((i + 1) * 40 / n)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	merged, err := csg.UnionAll(meshes, func(done, total int) {
		report(40 + done*40/total)
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	if name != "" {
		merged.Name = name
	}
	report(80)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", saveError(err)
	}
	if err := meshio.WriteFile(path, merged); err != nil {
		return "", saveError(err)
	}
	return path, nil
}

func saveError(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return fmt.Errorf("%w: %w", ErrUnableToSave, err)
}
