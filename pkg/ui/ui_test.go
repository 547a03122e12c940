package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	SetQuietMode(false)
	SetColorEnabled(true)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		SetQuietMode(false)
		SetColorEnabled(true)
	})
	return buf
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 4, 20, "[                    ] 0%"},
		{1, 4, 20, "[=====               ] 25%"},
		{2, 4, 20, "[==========          ] 50%"},
		{1, 3, 20, "[======              ] 33%"},
		{3, 3, 20, "[====================] 100%"},
		{5, 3, 10, "[==========] 100%"},
		{0, 0, 10, "[          ] 0%"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressBar(tt.done, tt.total, tt.width))
	}
}

func TestPrintPlainWhenNotTerminal(t *testing.T) {
	buf := capture(t)

	PrintSuccess("done")
	PrintWarning("careful", "disk nearly full")
	PrintError("failed")
	PrintInfo("Query", "cats")
	Printf("Downloading %d/%d: %s\n", 1, 3, "https://example.com/1.jpg")
	Println("Saved")

	assert.Equal(t, "done\ncareful: disk nearly full\nfailed\nQuery: cats\nDownloading 1/3: https://example.com/1.jpg\nSaved\n", buf.String())
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestQuietMode(t *testing.T) {
	buf := capture(t)
	SetQuietMode(true)
	assert.True(t, IsQuiet())

	Printf("status\n")
	PrintSuccess("ok")
	PrintHighlight("look")
	ArchiveProgress(1, 2)
	PrintError("broken", "reason")

	assert.Equal(t, "broken: reason\n", buf.String())
}

func TestArchiveProgress(t *testing.T) {
	buf := capture(t)
	SetColorEnabled(false)

	ArchiveProgress(1, 2)
	ArchiveProgress(2, 2)

	assert.Equal(t, "Progress: [==========          ] 50%\rProgress: [====================] 100%\n", buf.String())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.5 KB", FormatBytes(1536))
	assert.Equal(t, "2.0 MB", FormatBytes(2*1024*1024))
}
