package ui

import (
	"fmt"
	"strings"
)

// ArchiveBarWidth is the width of the archive progress bar
const ArchiveBarWidth = 20

// ProgressBar renders "[====      ] 50%" for done out of total
func ProgressBar(done, total, width int) string {
	filled, percent := 0, 0
	if total > 0 {
		if done > total {
			done = total
		}
		filled = done * width / total
		percent = done * 100 / total
	}
	return fmt.Sprintf("[%s%s] %d%%", strings.Repeat("=", filled), strings.Repeat(" ", width-filled), percent)
}

// ArchiveProgress redraws the archive progress line in place. The line is
// terminated once the last file is reached.
func ArchiveProgress(done, total int) {
	mu.Lock()
	defer mu.Unlock()
	if quiet {
		return
	}

	line := "Progress: " + render(progressStyle, ProgressBar(done, total, ArchiveBarWidth))
	if done >= total {
		fmt.Fprintf(out, "%s\n", line)
		return
	}
	fmt.Fprintf(out, "%s\r", line)
}

// FormatBytes formats bytes to human readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
