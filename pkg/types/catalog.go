package types

import "time"

// Entry describes one file selected for embedding.
type Entry struct {
	// Path is the matched source path, separators normalized to '/'.
	Path string

	// Name is the logical name the file is looked up under at runtime:
	// Path with the configured strip-prefix removed.
	Name string

	// Size is the original file size in bytes.
	Size int64

	// Stored is the encoded content size in bytes: equal to Size for
	// pass-through entries, the minified size otherwise. Set by the
	// encoder; the sentinel byte is not included.
	Stored int64

	// MTime is the file's modification time, embedded in the lookup table.
	MTime time.Time
}

// Result summarizes a completed generation run.
type Result struct {
	// OutFile is the path of the generated file.
	OutFile string

	// FileCount is the number of embedded files.
	FileCount int

	// BytesIn is the total original size of all embedded files.
	BytesIn int64

	// BytesOut is the total encoded size after minification.
	BytesOut int64

	// AlreadyMinified counts files embedded as-is because their name
	// carries a .min.css or .min.js marker.
	AlreadyMinified int
}
