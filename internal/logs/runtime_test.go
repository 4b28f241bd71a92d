package logs

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
)

// trackingReader records whether Close was called.
type trackingReader struct {
	io.Reader
	closed  atomic.Bool
	onClose func()
}

func (r *trackingReader) Close() error {
	if r.closed.CompareAndSwap(false, true) && r.onClose != nil {
		r.onClose()
	}
	return nil
}

func (r *trackingReader) Closed() bool {
	return r.closed.Load()
}

type listCall struct {
	labels []string
	all    bool
}

// fakeRuntime is an in-memory Runtime.
type fakeRuntime struct {
	mu sync.Mutex

	containers []Container
	listErr    error
	listCalls  []listCall

	logsErr  error
	logsCall []LogOptions
	// open builds the reader for a Logs call; defaults to text.
	open    func(ctx context.Context, id string, opts LogOptions) io.Reader
	text    string
	readers []*trackingReader
}

func (f *fakeRuntime) ListContainers(_ context.Context, labels []string, all bool) ([]Container, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, listCall{labels: labels, all: all})
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.containers, nil
}

func (f *fakeRuntime) Logs(ctx context.Context, id string, opts LogOptions) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logsCall = append(f.logsCall, opts)
	if f.logsErr != nil {
		return nil, f.logsErr
	}
	var src io.Reader = strings.NewReader(f.text)
	if f.open != nil {
		src = f.open(ctx, id, opts)
	}
	r := &trackingReader{Reader: src}
	if c, ok := src.(io.Closer); ok {
		r.onClose = func() { _ = c.Close() }
	}
	f.readers = append(f.readers, r)
	return r, nil
}

func (f *fakeRuntime) lastReader() *trackingReader {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.readers) == 0 {
		return nil
	}
	return f.readers[len(f.readers)-1]
}

// followReader returns a reader that emits text and then blocks until ctx
// is cancelled, like a following log read with no new output.
func followReader(ctx context.Context, text string) io.Reader {
	pr, pw := io.Pipe()
	go func() {
		if text != "" {
			if _, err := io.WriteString(pw, text); err != nil {
				return
			}
		}
		<-ctx.Done()
		_ = pw.CloseWithError(ctx.Err())
	}()
	return pr
}

// failingReader returns text, then err.
func failingReader(text string, err error) io.Reader {
	return io.MultiReader(strings.NewReader(text), errReader{err: err})
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

var errConnReset = errors.New("connection reset by peer")
