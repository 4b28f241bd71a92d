package logs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTailBoundsClamp(t *testing.T) {
	cases := []struct {
		name   string
		bounds TailBounds
		raw    string
		want   int
	}{
		{"general missing", GeneralTail, "", 200},
		{"general in range", GeneralTail, "500", 500},
		{"general below min", GeneralTail, "0", 1},
		{"general negative", GeneralTail, "-5", 1},
		{"general above max", GeneralTail, "5000", 2000},
		{"general non numeric", GeneralTail, "all", 200},
		{"general whitespace", GeneralTail, " 42 ", 42},
		{"general overflow", GeneralTail, "99999999999999999999999", 2000},
		{"general negative overflow", GeneralTail, "-99999999999999999999999", 1},
		{"node missing", NodeTail, "", 200},
		{"node below min", NodeTail, "3", 10},
		{"node above max", NodeTail, "501", 500},
		{"node float", NodeTail, "12.5", 200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.bounds.Clamp(tc.raw))
		})
	}
}

func TestTailBoundsClampStaysInRange(t *testing.T) {
	for _, b := range []TailBounds{GeneralTail, NodeTail} {
		for _, raw := range []string{"-1000", "-1", "0", "1", "9", "10", "11", "499", "500", "501", "1999", "2000", "2001", "x", ""} {
			n := b.Clamp(raw)
			assert.GreaterOrEqual(t, n, b.Min, "raw %q", raw)
			assert.LessOrEqual(t, n, b.Max, "raw %q", raw)
		}
	}
}
