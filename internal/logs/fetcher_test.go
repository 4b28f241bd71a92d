package logs

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaspa-ng/status-api/internal/models"
)

var testHandle = Handle{Service: "kaspad", ID: "abc123", Name: "kaspa-node-kaspad-1", State: "running"}

func TestFetcherText(t *testing.T) {
	rt := &fakeRuntime{text: "\x1b[32mone\x1b[0m\n\ntwo\r\n   \nthree\n"}
	f := NewFetcher(rt, true)

	text, err := f.Text(context.Background(), testHandle, 50)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\nthree", text)

	require.Len(t, rt.logsCall, 1)
	assert.Equal(t, LogOptions{Tail: 50, Timestamps: true}, rt.logsCall[0])
	assert.True(t, rt.lastReader().Closed())
}

func TestFetcherParsed(t *testing.T) {
	rt := &fakeRuntime{text: "2026-01-15 10:00:00 [INFO] synced\nno structure here\n"}
	f := NewFetcher(rt, false)

	lines, err := f.Parsed(context.Background(), testHandle, 12, "kaspad")
	require.NoError(t, err)
	assert.Equal(t, []models.LogLine{
		{Timestamp: "2026-01-15 10:00:00", Level: "INFO", Message: "synced", Source: "kaspad"},
		{Timestamp: "--", Level: "--", Message: "no structure here", Source: "kaspad"},
	}, lines)
	assert.False(t, rt.logsCall[0].Timestamps)
}

func TestFetcherEmptyLog(t *testing.T) {
	f := NewFetcher(&fakeRuntime{}, true)

	text, err := f.Text(context.Background(), testHandle, 10)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestFetcherRuntimeErrors(t *testing.T) {
	f := NewFetcher(&fakeRuntime{logsErr: errConnReset}, true)
	_, err := f.Text(context.Background(), testHandle, 10)
	assert.ErrorIs(t, err, ErrFetch)
	assert.ErrorIs(t, err, errConnReset)

	rt := &fakeRuntime{open: func(context.Context, string, LogOptions) io.Reader {
		return failingReader("partial\n", errConnReset)
	}}
	_, err = NewFetcher(rt, true).Tail(context.Background(), testHandle, 10)
	assert.ErrorIs(t, err, ErrFetch)
	assert.True(t, rt.lastReader().Closed())
}
