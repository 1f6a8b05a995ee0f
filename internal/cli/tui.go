package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/isostack/pkg/render"
	"github.com/matzehuels/isostack/pkg/shapes"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle       = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// ShapeListModel - Interactive shape selection
// =============================================================================

// ShapeListModel is the bubbletea model for interactive shape selection.
// Tab switches between 3D shapes and 2D decorations.
type ShapeListModel struct {
	Solids   []shapes.Definition
	Flats    []shapes.Definition
	Flat     bool
	Cursor   int
	Offset   int
	Height   int
	Selected *shapes.Definition
}

// NewShapeListModel creates a new shape list model.
func NewShapeListModel(lib *shapes.Library) ShapeListModel {
	return ShapeListModel{
		Solids: lib.Solids(),
		Flats:  lib.Flats(),
		Height: 12,
	}
}

func (m ShapeListModel) items() []shapes.Definition {
	if m.Flat {
		return m.Flats
	}
	return m.Solids
}

func (m ShapeListModel) Init() tea.Cmd {
	return nil
}

func (m ShapeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		items := m.items()
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.Flat = !m.Flat
			m.Cursor, m.Offset = 0, 0
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(items) == 0 {
				return m, nil
			}
			def := items[m.Cursor]
			m.Selected = &def
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m ShapeListModel) View() string {
	var b strings.Builder

	title := "3D shapes"
	if m.Flat {
		title = "2D decorations"
	}
	b.WriteString(StyleTitle.Render("Select " + title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab 3D/2D  ⏎ select  q quit"))
	b.WriteString("\n\n")

	items := m.items()
	end := min(m.Offset+m.Height, len(items))

	var rows [][]string
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, append([]string{cursor}, shapeRow(items[i])...))
	}

	t := shapeTable(rows).StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if m.Offset+row == m.Cursor {
			return listSelectedStyle
		}
		return lipgloss.NewStyle()
	})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(items)), len(items))))

	return b.String()
}

// =============================================================================
// Shape Table
// =============================================================================

func shapeTable(rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Shape", "Type", "Default face", "Anchors").
		Rows(rows...)
}

// shapeRow describes a definition: name, kind, default face and the
// anchors found in its markup.
func shapeRow(d shapes.Definition) []string {
	face := d.AttachTo
	if face == "" {
		face = "-"
	}
	var names []string
	if points, err := render.ExtractAttachmentPoints(d.Markup); err == nil {
		for _, p := range points {
			names = append(names, p.Name)
		}
	}
	anchors := strings.Join(names, ", ")
	if anchors == "" {
		anchors = "-"
	}
	return []string{d.Name, d.Kind.String(), face, anchors}
}

// renderShapeTable renders every definition of lib as a static table.
func renderShapeTable(lib *shapes.Library) string {
	var rows [][]string
	for _, d := range lib.Shapes() {
		rows = append(rows, append([]string{""}, shapeRow(d)...))
	}
	return shapeTable(rows).StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if col == 4 {
			return StyleDim
		}
		return StyleValue
	}).Render()
}
