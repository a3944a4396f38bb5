package formatter

import (
	"fmt"
	"strings"

	"github.com/mapwise/capmap/internal/board"
	"github.com/mapwise/capmap/internal/domain"
)

// FormatHours renders an hour count such as "16h", or a dim dash for zero.
func FormatHours(hours int) string {
	if hours <= 0 {
		return StyleDim.Render("–")
	}
	return fmt.Sprintf("%dh", hours)
}

// RenderBoard renders a derived board view as plain sections, one per
// category, for non-interactive output. Subcategories are indented under
// their parent column. Dimmed tiles (chip misses) render in the muted
// style; selected tiles get a "▸" marker.
func RenderBoard(m *domain.Map, v board.View) string {
	var b strings.Builder

	b.WriteString(Header(m.Name))
	b.WriteString("\n")

	var totalHours int
	for _, col := range v.Columns {
		indent := ""
		if col.Category.Subcategory {
			indent = "  "
		}
		b.WriteString("\n" + indent + StyleBold.Render(col.Category.Name))
		b.WriteString(Dim(fmt.Sprintf("  (%d)", len(col.Tiles))))
		b.WriteString("\n")

		for _, t := range col.Tiles {
			c := t.Capability
			marker := " "
			if t.Selected {
				marker = StyleHeader.Render("▸")
			}
			name := c.Name
			if !t.Highlight {
				name = Dim(name)
			}
			hours := c.EffectiveHours()
			totalHours += hours
			fmt.Fprintf(&b, "%s%s %s %s  %s  %s\n",
				indent, marker, SizeBadge(c.Size), name,
				FormatHours(hours), PhaseDot(c.Phase, t.Color))
		}
		if len(col.Tiles) == 0 {
			b.WriteString(indent + Dim("  (empty)") + "\n")
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("%d of %d capabilities shown · %dh total",
		v.Visible, v.Total, totalHours)))

	return b.String()
}
