// Package upload stores and resizes images for the admin forms and resolves
// stored references into public URLs.
package upload

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/AppShell-Admin/AppShell-Admin/internal/config"
	"github.com/AppShell-Admin/AppShell-Admin/internal/uniuri"
)

const (
	// PublicPrefix is the route serving the public disk.
	PublicPrefix = "/storage/"

	dirPerm  = 0o755
	filePerm = 0o644

	defaultQuality = 85
)

// Service stores images on an afero filesystem rooted at the upload disk.
type Service struct {
	fs      afero.Fs
	cfg     config.Upload
	baseURL string
}

// New creates a Service on fs. baseURL is the public url of the web server.
func New(fs afero.Fs, cfg config.Upload, baseURL string) *Service {
	if cfg.Quality < 1 || cfg.Quality > 100 {
		cfg.Quality = defaultQuality
	}

	return &Service{
		fs:      fs,
		cfg:     cfg,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// NewFromConfig creates a Service on the local directory of the upload disk.
func NewFromConfig(cfg *config.Config) (*Service, error) {
	root := cfg.DiskRoot(cfg.Upload.Disk)
	if root == "" {
		return nil, errors.Wrap(ErrUnknownDisk, cfg.Upload.Disk)
	}

	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, errors.Wrapf(err, "create upload disk %s", root)
	}

	return New(afero.NewBasePathFs(afero.NewOsFs(), root), cfg.Upload, cfg.Webserver.URL), nil
}

// Fs returns the underlying filesystem.
func (s *Service) Fs() afero.Fs {
	return s.fs
}

// UploadImage stores the uploaded image below dir and returns its reference.
func (s *Service) UploadImage(fh *multipart.FileHeader, dir string) (string, error) {
	if fh == nil || fh.Size == 0 {
		return "", ErrEmptyFile
	}

	if s.cfg.MaxFileSize > 0 && fh.Size > s.cfg.MaxFileSize {
		return "", ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer f.Close()

	return s.Store(f, fh.Filename, dir)
}

// Store decodes the image read from r, fits it into the configured bounds and
// writes it below dir under a random name keeping the original extension.
func (s *Service) Store(r io.Reader, filename, dir string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if !s.allowed(ext) {
		return "", errors.Wrap(ErrExtensionNotAllowed, ext)
	}

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return "", errors.Wrap(ErrExtensionNotAllowed, ext)
	}

	limit := s.cfg.MaxFileSize
	if limit <= 0 {
		limit = 1 << 30
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", errors.Wrap(err, "read upload")
	}

	if len(data) == 0 {
		return "", ErrEmptyFile
	}

	if int64(len(data)) > limit {
		return "", ErrFileTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", errors.Wrap(ErrInvalidImage, err.Error())
	}

	b := img.Bounds()
	if s.cfg.MaxWidth > 0 && s.cfg.MaxHeight > 0 && (b.Dx() > s.cfg.MaxWidth || b.Dy() > s.cfg.MaxHeight) {
		img = imaging.Fit(img, s.cfg.MaxWidth, s.cfg.MaxHeight, imaging.Lanczos)
	}

	dir, err = cleanRef(dir)
	if err != nil {
		return "", err
	}

	if err = s.fs.MkdirAll(dir, dirPerm); err != nil {
		return "", errors.Wrapf(err, "create directory %s", dir)
	}

	ref := path.Join(dir, uniuri.FileName()+"."+ext)

	out, err := s.fs.OpenFile(ref, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", ref)
	}

	if err = imaging.Encode(out, img, format, imaging.JPEGQuality(s.cfg.Quality)); err != nil {
		_ = out.Close()
		_ = s.fs.Remove(ref)

		return "", errors.Wrapf(err, "encode %s", ref)
	}

	if err = out.Close(); err != nil {
		_ = s.fs.Remove(ref)

		return "", errors.Wrapf(err, "close %s", ref)
	}

	log.Debug().Str("ref", ref).Int("width", img.Bounds().Dx()).Int("height", img.Bounds().Dy()).Msg("image stored")

	return ref, nil
}

// DeleteFile removes a stored file. A missing file is not an error.
func (s *Service) DeleteFile(ref string) error {
	ref, err := cleanRef(ref)
	if err != nil {
		return err
	}

	if ref == "" {
		return nil
	}

	if err = s.fs.Remove(ref); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete %s", ref)
	}

	return nil
}

// URL resolves ref into a public url, nil when ref is empty.
func (s *Service) URL(ref string) *string {
	if ref == "" {
		return nil
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return &ref
	}

	u := s.baseURL + PublicPrefix + strings.TrimLeft(ref, "/")

	return &u
}

func (s *Service) allowed(ext string) bool {
	if ext == "" {
		return false
	}

	if len(s.cfg.AllowedExtensions) == 0 {
		return true
	}

	return slices.ContainsFunc(s.cfg.AllowedExtensions, func(a string) bool {
		return strings.EqualFold(strings.TrimPrefix(a, "."), ext)
	})
}

// cleanRef normalises a slash separated reference and rejects traversal.
func cleanRef(ref string) (string, error) {
	ref = strings.ReplaceAll(ref, "\\", "/")
	if strings.Contains(ref, "..") {
		return "", errors.Wrap(ErrInvalidReference, ref)
	}

	return strings.TrimPrefix(path.Clean("/"+ref), "/"), nil
}
