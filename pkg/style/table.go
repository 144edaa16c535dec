package style

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// NewDefaultTableStyle is the rounded style of the report tables.
func NewDefaultTableStyle() *table.Style {
	style := table.StyleRounded
	style.Format.Header = text.FormatLower
	style.Title.Align = text.AlignCenter
	style.Title.Colors = text.Colors{text.FgHiCyan}
	return &style
}
