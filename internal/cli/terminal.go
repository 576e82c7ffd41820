package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/bastiangx/wordhunt/pkg/grid"
	"github.com/charmbracelet/lipgloss"
)

var (
	filledStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	blankStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"})
)

// prompt shows the letters typed so far, blanks for the cells left, and
// the fill count.
func (h *InputHandler) prompt() {
	writePrompt(h.out, h.builder)
}

func writePrompt(w io.Writer, b *grid.Builder) {
	g := b.Grid()
	letters := b.Letters()

	var sb strings.Builder
	sb.WriteString(filledStyle.Render(letters))
	sb.WriteString(blankStyle.Render(strings.Repeat(string(grid.Blank), g.Size()-len(letters))))
	fmt.Fprintf(w, "[%s] %d/%d > ", sb.String(), len(letters), g.Size())
}
