package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_BothBinaries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, generate(dir, commandTrees()))

	tests := []struct {
		file string
		want string
	}{
		{file: filepath.Join("dealsense", "dealsense.md"), want: "Match, verify and rank shopping deals"},
		{file: filepath.Join("dealsense", "dealsense_serve.md"), want: "dealsense serve"},
		{file: filepath.Join("dsctl", "dsctl.md"), want: "dsctl"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			data, err := os.ReadFile(filepath.Join(dir, tt.file))
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
			assert.NotContains(t, string(data), "Auto generated by spf13/cobra")
		})
	}
}
