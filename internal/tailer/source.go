// Package tailer reads the trailing lines of remote sandbox files, in
// parallel, and keeps following their growth on request.
package tailer

import "context"

// Source is a remote file the engine can tail. *mesos.File implements it;
// tests substitute in-memory files. A Source's cursor is touched only by the
// coordinating goroutine's sequential passes, one worker per file per pass,
// so implementations need no locking of their own.
type Source interface {
	// String is the stable header identity for the file, e.g. "taskID:path".
	String() string
	// Size reports the file's current size.
	Size(ctx context.Context) (int64, error)
	// Seek moves the cursor; whence is io.SeekStart/SeekCurrent/SeekEnd.
	Seek(ctx context.Context, offset int64, whence int) (int64, error)
	// Read returns up to n bytes from the cursor, or everything to EOF when
	// n is negative, advancing the cursor by the bytes returned.
	Read(ctx context.Context, n int64) ([]byte, error)
}
