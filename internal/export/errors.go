package export

import "errors"

var (
	// ErrSerialization is returned when the configuration cannot be encoded as JSON.
	ErrSerialization = errors.New("configuration is not serializable")
	// ErrStorage is returned when the export file cannot be written or read.
	ErrStorage = errors.New("export storage failure")
	// ErrNotExported is returned when no export exists yet.
	ErrNotExported = errors.New("configuration has not been exported yet")
	// ErrUnknownDisk is returned when the export disk has no root directory.
	ErrUnknownDisk = errors.New("export disk is not configured")
)
