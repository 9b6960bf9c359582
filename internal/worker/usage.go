package worker

import "fmt"

// String formats the sample as "CPU 12.5% · RSS 3.20 MB"
func (u Usage) String() string {
	return fmt.Sprintf("CPU %.1f%% · RSS %s", u.CPUPercent, FormatBytes(u.RSSBytes))
}

// FormatBytes renders a byte count with a binary unit suffix
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
