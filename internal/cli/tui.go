package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/opcpack/pkg/io"
	"github.com/matzehuels/opcpack/pkg/render/nodelink"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <package|listing.json>",
		Short: "Browse parts and their relationships interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loadListing(cmd, args[0])
			if err != nil {
				return err
			}
			if len(l.Parts) == 0 {
				printInfo(cmd.OutOrStdout(), "Package has no parts")
				return nil
			}

			p := tea.NewProgram(NewPartListModel(l), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// PartListModel - Interactive part browser
// =============================================================================

// PartListModel is the bubbletea model for browsing the parts of a listing.
// Enter opens the relationships of the part under the cursor; esc returns.
type PartListModel struct {
	Listing *pkgio.Listing
	Cursor  int
	Height  int
	Offset  int

	// Open is the partname whose relationships are shown, or "" in list view.
	Open string
}

// NewPartListModel creates a new part list model.
func NewPartListModel(l *pkgio.Listing) PartListModel {
	return PartListModel{Listing: l, Height: 15}
}

func (m PartListModel) Init() tea.Cmd {
	return nil
}

func (m PartListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace", "left", "h":
			if m.Open == "" && msg.String() == "esc" {
				return m, tea.Quit
			}
			m.Open = ""
		case "up", "k":
			if m.Open == "" && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Open == "" && m.Cursor < len(m.Listing.Parts)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", "right", "l":
			if len(m.Listing.Parts) > 0 {
				m.Open = m.Listing.Parts[m.Cursor].Partname
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m PartListModel) View() string {
	if m.Open != "" {
		return m.relationshipsView()
	}
	return m.listView()
}

func (m PartListModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Parts"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ relationships  q quit"))
	b.WriteString("\n\n")

	parts := m.Listing.Parts
	end := min(m.Offset+m.Height, len(parts))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := parts[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, p.Partname, shortContentType(p.ContentType), strconv.Itoa(p.Size), strconv.Itoa(len(m.Listing.Outgoing(p.Partname)))})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Partname", "Type", "Size", "Rels").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col == 2 || col == 3 || col == 4 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(parts))))
	return b.String()
}

func (m PartListModel) relationshipsView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Open))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	rels := m.Listing.Outgoing(m.Open)
	if len(rels) == 0 {
		b.WriteString(listDimStyle.Render("  no relationships"))
		return b.String()
	}

	rows := make([][]string, 0, len(rels))
	for _, r := range rels {
		rows = append(rows, []string{r.ID, nodelink.ShortType(r.Type), formatTarget(r)})
	}
	b.WriteString(renderTable([]string{"Id", "Type", "Target"}, rows))
	return b.String()
}

// shortContentType drops the common vendor prefix of OOXML content types.
func shortContentType(ct string) string {
	const prefix = "application/vnd.openxmlformats-"
	return strings.TrimPrefix(ct, prefix)
}
