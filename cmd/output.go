package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("37"))            // dark green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))             // red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))            // yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))            // cyan
	streamStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))           // grey
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")) // purple
)

func printSuccess(w io.Writer, text string) {
	fmt.Fprintln(w, successStyle.Render("✓ "+text))
}
func printError(w io.Writer, text string) {
	fmt.Fprintln(w, errorStyle.Render("✗ "+text))
}
func printWarning(w io.Writer, text string) {
	fmt.Fprintln(w, warningStyle.Render("! "+text))
}
func printInfo(w io.Writer, text string) {
	fmt.Fprintln(w, infoStyle.Render("→ "+text))
}
func printStream(w io.Writer, text string) {
	fmt.Fprintln(w, streamStyle.Render("  "+text))
}
func printHeader(w io.Writer, text string) {
	fmt.Fprintln(w, headerStyle.Render(text))
}
