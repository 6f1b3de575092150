package render

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorHeading = lipgloss.Color("#20B9B4")
	colorMuted   = lipgloss.Color("#2C4A54")
)

// styles holds the heading styles bound to one output writer. Output that is
// not a terminal is written unstyled.
type styles struct {
	enabled bool
	heading lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		enabled: isTerminal(w),
		heading: r.NewStyle().Bold(true).Foreground(colorHeading),
		muted:   r.NewStyle().Foreground(colorMuted),
	}
}

func (s styles) title(text string) string {
	if !s.enabled {
		return text
	}
	return s.heading.Render(text)
}

func (s styles) note(text string) string {
	if !s.enabled {
		return text
	}
	return s.muted.Render(text)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
