package validator

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChuLiYu/epub-pager/pkg/types"
)

// fakeEpubcheck writes a script that mimics "epubcheck <doc> --json <file>".
func fakeEpubcheck(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "epubcheck")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func TestParseReport(t *testing.T) {
	counts, err := parseReport([]byte(`{
		"checker": {"path": "book.epub", "nFatal": 1, "nError": 0, "nWarning": 3, "nUsage": 7},
		"messages": []
	}`))
	require.NoError(t, err)
	assert.Equal(t, types.Counts{Fatal: 1, Warn: 3}, counts)
}

func TestParseReport_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `epubcheck 5.1.0`},
		{"no checker", `{"messages": []}`},
		{"partial counts", `{"checker": {"nFatal": 0, "nError": 1}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseReport([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}

func TestCheck_CleanBook(t *testing.T) {
	bin := fakeEpubcheck(t, `echo '{"checker": {"nFatal": 0, "nError": 0, "nWarning": 0}}' > "$3"`+"\n")

	counts, err := NewEpubcheck(bin).Check(context.Background(), "book.epub")
	require.NoError(t, err)
	assert.Equal(t, types.Counts{}, counts)
}

func TestCheck_IssuesWithNonZeroExit(t *testing.T) {
	bin := fakeEpubcheck(t, `echo '{"checker": {"nFatal": 0, "nError": 2, "nWarning": 1}}' > "$3"
exit 1
`)

	counts, err := NewEpubcheck(bin).Check(context.Background(), "book.epub")
	require.NoError(t, err)
	assert.Equal(t, types.Counts{Error: 2, Warn: 1}, counts)
}

func TestCheck_NoReport(t *testing.T) {
	bin := fakeEpubcheck(t, "echo 'Unable to access jarfile' >&2\nexit 1\n")

	_, err := NewEpubcheck(bin).Check(context.Background(), "book.epub")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrote no report")
	assert.Contains(t, err.Error(), "Unable to access jarfile")
}

func TestCheck_MissingExecutable(t *testing.T) {
	_, err := NewEpubcheck("/nonexistent/epubcheck").Check(context.Background(), "book.epub")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run")
}
