// Package export writes the aggregated app configuration to a single JSON
// file on the public disk and serves it back for download.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/AppShell-Admin/AppShell-Admin/internal/appconfig"
	"github.com/AppShell-Admin/AppShell-Admin/internal/config"
)

const (
	indent   = "    "
	dirPerm  = 0o755
	filePerm = 0o644
)

// Generator builds the configuration document.
type Generator interface {
	Generate(ctx context.Context) (*appconfig.Config, error)
}

// Status describes the exported file.
type Status struct {
	Exists  bool
	Path    string
	Size    int64
	ModTime time.Time
}

// Exporter writes the configuration to dir/filename on fs.
type Exporter struct {
	fs       afero.Fs
	gen      Generator
	dir      string
	filename string
	metrics  *Metrics
}

// New creates an Exporter. metrics may be nil.
func New(fs afero.Fs, gen Generator, dir, filename string, metrics *Metrics) *Exporter {
	if filename == "" {
		filename = config.DefaultExportFilename
	}

	return &Exporter{
		fs:       fs,
		gen:      gen,
		dir:      path.Clean("/" + dir)[1:],
		filename: filename,
		metrics:  metrics,
	}
}

// DiskFs returns the filesystem rooted at the export disk, creating the root.
func DiskFs(cfg *config.Config) (afero.Fs, error) {
	root := cfg.DiskRoot(cfg.Export.Disk)
	if root == "" {
		return nil, errors.Wrap(ErrUnknownDisk, cfg.Export.Disk)
	}

	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, errors.Wrapf(err, "create export disk %s", root)
	}

	return afero.NewBasePathFs(afero.NewOsFs(), root), nil
}

// Path returns the location of the export relative to the disk root.
func (e *Exporter) Path() string {
	return path.Join(e.dir, e.filename)
}

// Filename returns the base name of the export.
func (e *Exporter) Filename() string {
	return e.filename
}

// Generate builds the configuration and records its duration.
func (e *Exporter) Generate(ctx context.Context) (*appconfig.Config, error) {
	start := time.Now()
	cfg, err := e.gen.Generate(ctx)
	e.metrics.ObserveGenerate(time.Since(start))

	return cfg, err
}

// Encode renders cfg as indented JSON without HTML or slash escaping.
func Encode(cfg *appconfig.Config) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)

	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	return buf.Bytes(), nil
}

// ExportToFile generates the configuration and replaces the export file.
// The file is written to a temporary name and renamed into place, so a
// failure leaves the previous export untouched.
func (e *Exporter) ExportToFile(ctx context.Context) (string, error) {
	cfg, err := e.Generate(ctx)
	if err != nil {
		e.metrics.result(ResultGenerateError)
		log.Error().Err(err).Msg("export: generate configuration")

		return "", errors.Wrap(err, "generate configuration")
	}

	data, err := Encode(cfg)
	if err != nil {
		e.metrics.result(ResultSerializationError)
		log.Error().Err(err).Msg("export: encode configuration")

		return "", err
	}

	target := e.Path()
	if err = e.write(target, data); err != nil {
		e.metrics.result(ResultStorageError)
		log.Error().Err(err).Str("path", target).Msg("export: write configuration")

		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}

	e.metrics.success(len(data), time.Now())
	log.Info().Str("path", target).Int("bytes", len(data)).Str("generated_at", cfg.GeneratedAt).
		Msg("configuration exported")

	return target, nil
}

func (e *Exporter) write(target string, data []byte) error {
	dir := path.Dir(target)
	if err := e.fs.MkdirAll(dir, dirPerm); err != nil {
		return errors.Wrapf(err, "create directory %s", dir)
	}

	tmp, err := afero.TempFile(e.fs, dir, "."+e.filename+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temporary file")
	}

	tmpName := tmp.Name()
	cleanup := func() {
		if rmErr := e.fs.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warn().Err(rmErr).Str("path", tmpName).Msg("export: remove temporary file")
		}
	}

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()

		return errors.Wrap(err, "write temporary file")
	}

	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()

		return errors.Wrap(err, "sync temporary file")
	}

	if err = tmp.Close(); err != nil {
		cleanup()

		return errors.Wrap(err, "close temporary file")
	}

	if err = e.fs.Chmod(tmpName, filePerm); err != nil {
		log.Debug().Err(err).Str("path", tmpName).Msg("export: chmod temporary file")
	}

	if err = e.fs.Rename(tmpName, target); err != nil {
		cleanup()

		return errors.Wrap(err, "rename into place")
	}

	return nil
}

// Open returns the exported file for streaming. The caller closes it.
func (e *Exporter) Open(_ context.Context) (afero.File, os.FileInfo, error) {
	target := e.Path()

	info, err := e.fs.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrNotExported
		}

		return nil, nil, fmt.Errorf("%w: stat %s: %w", ErrStorage, target, err)
	}

	if info.IsDir() {
		return nil, nil, ErrNotExported
	}

	f, err := e.fs.Open(target)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: open %s: %w", ErrStorage, target, err)
	}

	return f, info, nil
}

// Status reports whether an export exists and when it was written.
func (e *Exporter) Status(_ context.Context) (Status, error) {
	st := Status{Path: e.Path()}

	info, err := e.fs.Stat(st.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}

		return st, fmt.Errorf("%w: stat %s: %w", ErrStorage, st.Path, err)
	}

	st.Exists = !info.IsDir()
	st.Size = info.Size()
	st.ModTime = info.ModTime()

	return st, nil
}
