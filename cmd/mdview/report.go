package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"pkt.systems/mdview"
)

// report prints a one-line message for err. Labels are red when w is a
// color terminal.
func report(w io.Writer, path string, err error) {
	label := lipgloss.NewRenderer(w).NewStyle().Foreground(lipgloss.Color("1"))
	switch mdview.KindOf(err) {
	case mdview.KindNotFound:
		fmt.Fprintf(w, "%s File not found: %s\n", label.Render("Error:"), path)
	default:
		fmt.Fprintf(w, "%s %v\n", label.Render("An unexpected error occurred:"), err)
	}
}
