package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/route"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NodeListModel - Interactive layout browser
// =============================================================================

// NodeListModel is the bubbletea model for browsing placed nodes. The
// selected node's incident edges are listed below the table.
type NodeListModel struct {
	Result *diagram.Result
	IDs    []string
	Cursor int
	Height int
	Offset int
}

// NewNodeListModel creates a browser over res, ordered by node id.
func NewNodeListModel(res *diagram.Result) NodeListModel {
	return NodeListModel{
		Result: res,
		IDs:    res.NodeIDs(),
		Height: 15,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.IDs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(len(m.IDs)-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 14
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout"))
	b.WriteString(" ")
	bb := m.Result.Bounds
	b.WriteString(StyleDim.Render(fmt.Sprintf("bounds %s,%s → %s,%s",
		num(bb.MinX), num(bb.MinY), num(bb.MaxX), num(bb.MaxY))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.IDs) == 0 {
		b.WriteString(listDimStyle.Render("  no nodes"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.IDs))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		id := m.IDs[i]
		n := m.Result.Nodes[id]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		parent := n.Parent
		if parent == "" {
			parent = "—"
		}
		rows = append(rows, []string{cursor, id, n.Kind.String(), parent, num(n.X), num(n.Y), num(n.Width), num(n.Height)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Kind", "Parent", "X", "Y", "W", "H").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			if col >= 4 {
				base = base.Foreground(colorGray).Align(lipgloss.Right)
			}
			if m.Offset+row == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			switch col {
			case 2:
				if st, ok := kindStyles[m.Result.Nodes[m.IDs[m.Offset+row]].Kind]; ok {
					return st
				}
			case 3:
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.IDs))))
	b.WriteString("\n\n")
	b.WriteString(m.edgeView(m.IDs[m.Cursor]))

	return b.String()
}

// edgeView lists the edges that start or end at id.
func (m NodeListModel) edgeView(id string) string {
	var b strings.Builder
	b.WriteString(listSelectedStyle.Render(id))
	b.WriteString("\n")

	count := 0
	for _, eid := range m.Result.EdgeIDs() {
		e := m.Result.Edges[eid]
		if e.Source != id && e.Target != id {
			continue
		}
		count++
		line := fmt.Sprintf("  %s %s %s %s", e.Source, iconArrow, e.Target, StyleDim.Render("("+eid+")"))
		if e.SourcePort != 0 || e.TargetPort != 0 {
			line += StyleDim.Render(fmt.Sprintf(" %s/%s", e.SourcePort, e.TargetPort))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if count == 0 {
		b.WriteString(listDimStyle.Render("  no edges"))
		b.WriteString("\n")
	}
	return b.String()
}

func num(v float64) string { return route.FormatNumber(v) }
