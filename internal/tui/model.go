// Package tui implements the interactive results browser: a ranked list
// of designs by total complexity with a per-node detail pane.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/finchworks/aviary/internal/complexity"
)

// listHeight is the number of design rows shown above the detail pane.
const listHeight = 12

// Model is the root BubbleTea model: a ranked design list plus a
// viewport holding the selected design's node table.
type Model struct {
	Corpus   complexity.CorpusResult
	Ranked   []string // design names, descending total complexity
	Selected int
	Keys     KeyMap
	Detail   viewport.Model
	Width    int
	Height   int
	ready    bool
}

// NewModel creates a browser over an analyzed corpus.
func NewModel(corpus complexity.CorpusResult) Model {
	ranked := make([]string, len(corpus.Order))
	copy(ranked, corpus.Order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return corpus.Designs[ranked[i]].System.TotalComplexity >
			corpus.Designs[ranked[j]].System.TotalComplexity
	})
	return Model{
		Corpus: corpus,
		Ranked: ranked,
		Keys:   DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		detailHeight := m.Height - listHeight - 4
		if detailHeight < 3 {
			detailHeight = 3
		}
		if !m.ready {
			m.Detail = viewport.New(m.Width-2, detailHeight)
			m.ready = true
		} else {
			m.Detail.Width = m.Width - 2
			m.Detail.Height = detailHeight
		}
		m.Detail.SetContent(m.detailContent())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Up):
			if m.Selected > 0 {
				m.Selected--
				m.Detail.SetContent(m.detailContent())
				m.Detail.GotoTop()
			}
		case key.Matches(msg, m.Keys.Down):
			if m.Selected < len(m.Ranked)-1 {
				m.Selected++
				m.Detail.SetContent(m.detailContent())
				m.Detail.GotoTop()
			}
		default:
			var cmd tea.Cmd
			m.Detail, cmd = m.Detail.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View renders the full browser.
func (m Model) View() string {
	if len(m.Ranked) == 0 {
		return styleFooter.Render("no analyzed designs — press q to quit")
	}

	var b strings.Builder
	bar := fmt.Sprintf("aviary — %d designs ranked by total complexity", len(m.Ranked))
	b.WriteString(styleStatusBar.Width(max(m.Width, len(bar))).Render(bar))
	b.WriteString("\n\n")

	start, end := m.listWindow()
	for i := start; i < end; i++ {
		name := m.Ranked[i]
		r := m.Corpus.Designs[name]
		line := fmt.Sprintf("%2d. %-20s total %.3f  (%d nodes, %d edges)",
			i+1, name, r.System.TotalComplexity, r.Nodes, r.Edges)
		switch {
		case i == m.Selected:
			b.WriteString(styleSelected.Render(selectionIndicator + line))
		case i == 0:
			b.WriteString(styleTopRank.Render(" " + line))
		default:
			b.WriteString(styleRow.Render(" " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleDetailHeader.Render("node complexity — " + m.Ranked[m.Selected]))
	b.WriteString("\n")
	if m.ready {
		b.WriteString(m.Detail.View())
		b.WriteString("\n")
	}
	b.WriteString(styleFooter.Render("↑/k up · ↓/j down · q quit"))
	return b.String()
}

// listWindow returns the visible slice bounds of the ranked list,
// keeping the selection in view.
func (m Model) listWindow() (start, end int) {
	if len(m.Ranked) <= listHeight {
		return 0, len(m.Ranked)
	}
	start = m.Selected - listHeight/2
	if start < 0 {
		start = 0
	}
	end = start + listHeight
	if end > len(m.Ranked) {
		end = len(m.Ranked)
		start = end - listHeight
	}
	return start, end
}

// detailContent renders the selected design's per-node table, ordered
// by descending node complexity.
func (m Model) detailContent() string {
	if len(m.Ranked) == 0 {
		return ""
	}
	r := m.Corpus.Designs[m.Ranked[m.Selected]]

	nodes := make([]complexity.NodeResult, 0, len(r.NodeScores))
	for _, n := range r.NodeScores {
		nodes = append(nodes, n)
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].TotalComplexity != nodes[j].TotalComplexity {
			return nodes[i].TotalComplexity > nodes[j].TotalComplexity
		}
		return nodes[i].ID < nodes[j].ID
	})

	var b strings.Builder
	fmt.Fprintf(&b, "%-26s %-16s %5s %5s %5s %9s %9s %9s\n",
		"node", "type", "deg", "in", "out", "neighbor", "conn", "total")
	for _, n := range nodes {
		fmt.Fprintf(&b, "%-26s %-16s %5d %5d %5d %9.3f %9.3f %9.3f\n",
			n.ID, n.ComponentType, n.Degree, n.InDegree, n.OutDegree,
			n.NeighborDiversity, n.ConnectionDiversity, n.TotalComplexity)
	}
	return b.String()
}

// Run launches the browser over an analyzed corpus and blocks until the
// user quits.
func Run(corpus complexity.CorpusResult) error {
	p := tea.NewProgram(NewModel(corpus), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
