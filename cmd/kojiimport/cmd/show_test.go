package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCommandStructure(t *testing.T) {
	assert.NotNil(t, showCmd)
	assert.Equal(t, "show", showCmd.Use)
	assert.NotEmpty(t, showCmd.Short)
	assert.Contains(t, showCmd.Long, "Example:")
	assert.NotNil(t, showCmd.RunE)
}

func TestShowCommandFlags(t *testing.T) {
	flags := showCmd.Flags()

	outputFlag := flags.Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
	assert.Equal(t, "table", outputFlag.DefValue)

	assert.NotNil(t, flags.Lookup("manifest"))
	assert.NotNil(t, flags.Lookup("nvr"))
}

func runShowWith(t *testing.T, manifest, format string) (string, error) {
	t.Helper()
	isolateFlags(t)
	showManifest = writeManifest(t, manifest)
	showNVR = ""
	showOutput = format

	var out, errOut bytes.Buffer
	showCmd.SetOut(&out)
	showCmd.SetErr(&errOut)
	t.Cleanup(func() {
		showCmd.SetOut(nil)
		showCmd.SetErr(nil)
	})

	err := runShow(showCmd, nil)
	return out.String() + errOut.String(), err
}

func TestRunShowFormats(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{"table", []string{"✓ commons-io-2.4-1", "Build roots (1):", "commons-io-2.4.jar"}},
		{"json", []string{`"metadata_version": 0`, `"name": "commons-io"`, `"buildroot_id": 1`}},
		{"yaml", []string{"metadata_version: 0", "name: commons-io", "filename: commons-io-2.4.jar"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := runShowWith(t, completeManifest, tt.format)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRunShowMetadataVersionOverride(t *testing.T) {
	isolateFlags(t)
	metadataVersion = 2
	showManifest = writeManifest(t, completeManifest)
	showOutput = "json"

	var buf bytes.Buffer
	showCmd.SetOut(&buf)
	t.Cleanup(func() { showCmd.SetOut(nil) })

	require.NoError(t, runShow(showCmd, nil))
	assert.Contains(t, buf.String(), `"metadata_version": 2`)
}

func TestRunShowInvalidFormat(t *testing.T) {
	_, err := runShowWith(t, completeManifest, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid output format "xml"`)
}

func TestRunShowIncompleteManifest(t *testing.T) {
	out, err := runShowWith(t, incompleteManifest, "json")
	require.Error(t, err)
	assert.Contains(t, out, "9 missing properties")
}

func TestRunShowArchivedRequiresStore(t *testing.T) {
	isolateFlags(t)
	showManifest = ""
	showNVR = "commons-io-2.4-1"
	showOutput = "table"

	err := runShow(showCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archive store is disabled")
}
