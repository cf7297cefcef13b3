package tailer

import (
	"context"
	"io"
	"strings"
)

// lineSizeEstimate is a liberal guess at the byte length of one line, used
// to size the first read-from-end window when fetching N lines.
const lineSizeEstimate = 200

// LastLines returns the last n lines of f, or every line when the file has
// fewer. It reads a window from the end of the file and widens it until
// enough lines are present, so small tails of large files stay cheap. The
// cursor is left at the size observed at the start of the call, ready for a
// follow-up ReadRest.
func LastLines(ctx context.Context, f Source, n int) ([]string, error) {
	size, err := f.Size(ctx)
	if err != nil {
		return nil, err
	}

	window := int64(lineSizeEstimate * n)
	end := size
	start := max(size-window, 0)

	var data []byte
	var lines []string
	for {
		if _, err := f.Seek(ctx, start, io.SeekStart); err != nil {
			return nil, err
		}
		chunk, err := f.Read(ctx, end-start)
		if err != nil {
			return nil, err
		}
		data = append(chunk, data...)

		lines = strings.Split(stripTrailingNewline(string(data)), "\n")
		if len(lines) > n {
			lines = lines[len(lines)-n:]
			break
		}
		if start == 0 {
			break
		}

		// Not enough lines in the window: widen it and read the newly
		// uncovered range just before the current one.
		window += int64(lineSizeEstimate * n)
		end = start
		start = max(size-window, 0)
	}

	if _, err := f.Seek(ctx, size, io.SeekStart); err != nil {
		return nil, err
	}
	return lines, nil
}

// ReadRest returns the lines appended since the cursor, or nil when the file
// has not grown.
func ReadRest(ctx context.Context, f Source) ([]string, error) {
	data, err := f.Read(ctx, -1)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return strings.Split(stripTrailingNewline(string(data)), "\n"), nil
}

// stripTrailingNewline removes a single trailing newline, if present, so a
// newline-terminated file does not split into a phantom empty final line.
func stripTrailingNewline(s string) string {
	return strings.TrimSuffix(s, "\n")
}
