package ffmpeg

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBinary writes an executable shell script standing in for ffmpeg.
func fakeBinary(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestProber_Available(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		expected bool
	}{
		{"version banner", `echo "ffmpeg version 6.1.1 Copyright (c) 2000-2023"`, true},
		{"banner on stderr only", `echo "ffmpeg version 6.1.1" 1>&2`, false},
		{"other program", `echo "avconv version 12"`, false},
		{"non-zero exit with banner", `echo "ffmpeg version 6.1.1"; exit 1`, true},
		{"non-zero exit without banner", `echo "broken install"; exit 1`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Prober{BinaryPath: fakeBinary(t, tt.script)}
			assert.Equal(t, tt.expected, p.Available(context.Background()))
		})
	}
}

func TestProber_MissingBinary(t *testing.T) {
	p := &Prober{BinaryPath: filepath.Join(t.TempDir(), "does-not-exist")}
	assert.False(t, p.Available(context.Background()))
}

func TestProber_Timeout(t *testing.T) {
	p := &Prober{
		BinaryPath: fakeBinary(t, "exec sleep 5"),
		Timeout:    100 * time.Millisecond,
	}

	start := time.Now()
	assert.False(t, p.Available(context.Background()))
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestProber_Idempotent(t *testing.T) {
	var results []bool
	p := &Prober{
		BinaryPath: fakeBinary(t, `echo "ffmpeg version n7.0"`),
		OnResult:   func(ok bool) { results = append(results, ok) },
	}

	assert.True(t, p.Available(context.Background()))
	assert.True(t, p.Available(context.Background()))
	assert.Equal(t, []bool{true, true}, results)
}
