package mesos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
)

// File exposes seek/read/size semantics over a file in a task's sandbox,
// backed by the agent's paginated files/read.json endpoint:
//
//	request:  path (absolute on the host), offset (-1 = report size only),
//	          length (-1 = read to EOF)
//	response: data (may be shorter than requested, empty at EOF),
//	          offset (equals the file size when the request offset was -1)
//
// The endpoint caps how much it returns per request, so a single read may
// take several round trips. An empty chunk, not a short one, signals EOF.
//
// The cursor is mutated only by the sequential calls of one goroutine per
// pass; File is not safe for concurrent use on the same instance.
type File struct {
	task   *Task
	agent  *Agent
	path   string
	dir    string
	cursor int64
}

// NewFile builds a File for path, relative to the task's sandbox. It
// resolves the sandbox directory through the task's executor, so the agent's
// state must be fetchable.
func NewFile(ctx context.Context, task *Task, path string) (*File, error) {
	agent, err := task.Agent(ctx)
	if err != nil {
		return nil, err
	}
	dir, err := task.Directory(ctx)
	if err != nil {
		return nil, err
	}
	return &File{task: task, agent: agent, path: path, dir: dir}, nil
}

// String is the file's stable header identity: "taskID:path".
func (f *File) String() string {
	return f.task.ID + ":" + f.path
}

// Size reports the file's size via a size-only request.
func (f *File) Size(ctx context.Context) (int64, error) {
	resp, err := f.request(ctx, -1, 0)
	if err != nil {
		return 0, err
	}
	return resp.Offset, nil
}

// Seek moves the cursor. whence is io.SeekStart, io.SeekCurrent or
// io.SeekEnd; io.SeekEnd costs one size round trip.
func (f *File) Seek(ctx context.Context, offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		f.cursor = offset
	case io.SeekCurrent:
		f.cursor += offset
	case io.SeekEnd:
		size, err := f.Size(ctx)
		if err != nil {
			return f.cursor, err
		}
		f.cursor = size + offset
	default:
		return f.cursor, fmt.Errorf("seek %s: invalid whence %d", f, whence)
	}
	return f.cursor, nil
}

// Tell returns the current cursor position.
func (f *File) Tell() int64 {
	return f.cursor
}

// Read returns up to n bytes starting at the cursor, advancing it by the
// bytes received. It keeps requesting chunks until n bytes have arrived or a
// chunk comes back empty.
func (f *File) Read(ctx context.Context, n int64) ([]byte, error) {
	var data []byte
	for n < 0 || int64(len(data)) < n {
		chunkLen := int64(-1)
		if n >= 0 {
			chunkLen = n - int64(len(data))
		}
		chunk, err := f.fetchChunk(ctx, chunkLen)
		if err != nil {
			return nil, err
		}
		if len(chunk) == 0 {
			break
		}
		data = append(data, chunk...)
	}
	return data, nil
}

// ReadAll reads from the cursor to EOF.
func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	return f.Read(ctx, -1)
}

// hostPath is the file's absolute path on the agent host.
func (f *File) hostPath() string {
	if strings.HasSuffix(f.dir, "/") {
		return f.dir + f.path
	}
	return f.dir + "/" + f.path
}

func (f *File) fetchChunk(ctx context.Context, length int64) ([]byte, error) {
	resp, err := f.request(ctx, f.cursor, length)
	if err != nil {
		return nil, err
	}
	f.cursor += int64(len(resp.Data))
	return []byte(resp.Data), nil
}

type readResponse struct {
	Data   string `json:"data"`
	Offset int64  `json:"offset"`
}

func (f *File) request(ctx context.Context, offset, length int64) (*readResponse, error) {
	query := url.Values{
		"path":   {f.hostPath()},
		"offset": {strconv.FormatInt(offset, 10)},
		"length": {strconv.FormatInt(length, 10)},
	}
	body, err := f.agent.fetch(ctx, "files/read.json", query)
	if err != nil {
		return nil, err
	}
	var resp readResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("read %s: %w", f, err)
	}
	return &resp, nil
}
