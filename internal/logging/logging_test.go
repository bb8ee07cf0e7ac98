package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"actioncore/pkg/env"
)

type replaceMasker string

func (m replaceMasker) Mask(s string) string {
	return strings.ReplaceAll(s, string(m), "***")
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		env       map[string]string
		wantDebug bool
	}{
		{name: "default", wantDebug: false},
		{name: "verbose", verbose: true, wantDebug: true},
		{name: "runner debug", env: map[string]string{"RUNNER_DEBUG": "1"}, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			logger, closer := New(Config{Env: env.NewMap(tt.env), Stderr: &stderr, Verbose: tt.verbose})
			defer func() { _ = closer.Close() }()

			logger.Debug("debug line")
			logger.Info("info line")
			logger.Warn("warn line")

			out := stderr.String()
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "debug line"))
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "info line"))
			assert.Contains(t, out, "warn line")
		})
	}
}

func TestNew_MasksSecrets(t *testing.T) {
	var stderr bytes.Buffer
	logger, _ := New(Config{Env: env.NewMap(nil), Stderr: &stderr, Masker: replaceMasker("hunter2")})

	logger.Warn("token hunter2 rejected", "token", "hunter2", "error", errors.New("bad hunter2"), "count", 3)

	out := stderr.String()
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, `msg="token *** rejected"`)
	assert.Contains(t, out, "token=***")
	assert.Contains(t, out, `error="bad ***"`)
	assert.Contains(t, out, "count=3")
}

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions-core.log")
	var stderr bytes.Buffer
	logger, closer := New(Config{
		Env:    env.NewMap(map[string]string{FileVariable: path}),
		Stderr: &stderr,
		Masker: replaceMasker("hunter2"),
	})

	logger.Debug("file only", "secret", "hunter2")
	logger.Warn("both")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"file only"`)
	assert.Contains(t, string(data), `"secret":"***"`)
	assert.Contains(t, string(data), `"msg":"both"`)

	assert.NotContains(t, stderr.String(), "file only")
	assert.Contains(t, stderr.String(), "both")
}

func TestNewFileLogger_Config(t *testing.T) {
	l := newFileLogger(env.NewMap(map[string]string{
		MaxSizeVariable:    "5",
		MaxBackupsVariable: "0",
		MaxAgeVariable:     "-1",
	}), "x.log")
	assert.Equal(t, "x.log", l.Filename)
	assert.Equal(t, 5, l.MaxSize)
	assert.Equal(t, 0, l.MaxBackups)
	assert.Equal(t, 30, l.MaxAge)

	l = newFileLogger(env.NewMap(map[string]string{MaxSizeVariable: "big"}), "x.log")
	assert.Equal(t, 1, l.MaxSize)
	assert.Equal(t, 2, l.MaxBackups)
}
