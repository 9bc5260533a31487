package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	buf := &bytes.Buffer{}
	bar := NewProgressBar(4, "Converting", buf)

	bar.Increment(true)
	bar.Increment(false)
	assert.Contains(t, buf.String(), " 50% 2/4 failed: 1")

	bar.Complete()
	bar.Complete()
	assert.Contains(t, buf.String(), "100% 4/4 failed: 1")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 500 * time.Millisecond, want: "0s"},
		{in: 42 * time.Second, want: "42s"},
		{in: 3*time.Minute + 5*time.Second, want: "3m05s"},
		{in: 2*time.Hour + 7*time.Second, want: "2h00m07s"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatDuration(tc.in))
		})
	}
}

func TestProgressBarClear(t *testing.T) {
	buf := &bytes.Buffer{}
	bar := NewProgressBar(2, "Converting", buf)

	bar.Increment(true)
	bar.Clear()
	assert.True(t, strings.HasSuffix(buf.String(), "\r\033[K"))

	bar.Complete()
	n := buf.Len()
	bar.Clear()
	assert.Equal(t, n, buf.Len())
}
