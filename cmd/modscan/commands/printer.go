package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/modscan/internal/ui/output"
	"go.trai.ch/modscan/internal/ui/style"
)

// printer writes human readable command output using the shared color profile.
type printer struct {
	w       io.Writer
	wd      string
	name    lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(output.ColorProfile()))
	wd, _ := os.Getwd()
	return &printer{
		w:       w,
		wd:      wd,
		name:    r.NewStyle().Foreground(style.Iris).Bold(true),
		muted:   r.NewStyle().Foreground(style.Slate),
		success: r.NewStyle().Foreground(style.Green),
		warning: r.NewStyle().Foreground(style.Yellow),
		failure: r.NewStyle().Foreground(style.Red),
	}
}

func (p *printer) line(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) write(data []byte) {
	_, _ = p.w.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, _ = io.WriteString(p.w, "\n")
	}
}

func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// rel shortens path against the working directory when it lies below it.
func (p *printer) rel(path string) string {
	if p.wd == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(p.wd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
