package upload

import "errors"

var (
	// ErrEmptyFile is returned for zero byte uploads.
	ErrEmptyFile = errors.New("uploaded file is empty")
	// ErrFileTooLarge is returned when the upload exceeds the configured maximum.
	ErrFileTooLarge = errors.New("uploaded file is too large")
	// ErrExtensionNotAllowed is returned for file types outside the allow list.
	ErrExtensionNotAllowed = errors.New("file extension is not allowed")
	// ErrInvalidImage is returned when the upload cannot be decoded as an image.
	ErrInvalidImage = errors.New("uploaded file is not a valid image")
	// ErrInvalidReference is returned for references escaping the disk root.
	ErrInvalidReference = errors.New("invalid file reference")
	// ErrUnknownDisk is returned when the upload disk has no root directory.
	ErrUnknownDisk = errors.New("upload disk is not configured")
)

// Rejection returns the reason a file was refused, or nil when err is not a
// rejection of the file itself (e.g. a storage failure).
func Rejection(err error) error {
	for _, reason := range []error{ErrEmptyFile, ErrFileTooLarge, ErrExtensionNotAllowed, ErrInvalidImage} {
		if errors.Is(err, reason) {
			return reason
		}
	}

	return nil
}
