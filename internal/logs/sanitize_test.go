package logs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"color codes", "\x1b[32mINFO\x1b[0m started", "INFO started"},
		{"cursor movement", "\x1b[2K\x1b[1Aprogress 50%", "progress 50%"},
		{"trailing crlf", "line\r\n", "line"},
		{"nested sequence", "a\x1b[\x1b[31m0mb", "ab"},
		{"bare escape kept", "a\x1bb", "a\x1bb"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sanitize(tc.in))
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"\x1b[1;31mERROR\x1b[0m disk full",
		"a\x1b[\x1b[\x1b[32m1m0mz",
		"  spaced  \n",
		"\x1b[38;5;208morange\x1b[m",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
		assert.NotRegexp(t, ansiEscapeRegex, once)
	}
}

func TestSanitizeLinesDropsBlankLines(t *testing.T) {
	text := "first\n\n   \n\x1b[0m\nsecond\r\nthird\n"
	assert.Equal(t, []string{"first", "second", "third"}, SanitizeLines(text))
}

func TestDecodeReplacesInvalidUTF8(t *testing.T) {
	assert.Equal(t, "ok", decode([]byte("ok")))
	assert.Equal(t, "a\uFFFDb", decode([]byte{'a', 0xff, 'b'}))
}
