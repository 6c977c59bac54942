package shortlist

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hirewiz/hirewiz/internal/model"
)

// Lines per candidate item in the list view (title + subtitle + blank separator).
const candidateItemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")) // bright blue

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("39"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	nameStyle = lipgloss.NewStyle().
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	selectedNameStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")). // bright white
				Background(lipgloss.Color("24"))  // dark blue bg

	selectedSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("24"))

	scoreHighStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("40")) // green

	scoreMidStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")) // yellow

	scoreLowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203")) // red

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(14)

	detailValueStyle = lipgloss.NewStyle()

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				MarginBottom(1)

	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// Drafter produces a personalized outreach email for a candidate.
type Drafter interface {
	DraftOutreach(ctx context.Context, name, resume, message string) (string, error)
}

// draftDoneMsg is sent when an async outreach draft completes.
type draftDoneMsg struct {
	candidateID int64
	draft       string
	err         error
}

type shortlistModel struct {
	query      string
	candidates []model.RankedCandidate
	viewport   viewport.Model
	cursor     int
	width      int
	height     int
	ready      bool

	// Detail view state
	view           viewState
	detail         model.RankedCandidate
	detailViewport viewport.Model
	showResume     bool

	// Outreach draft state
	drafter      Drafter
	draftMessage string
	drafts       map[int64]string
	drafting     bool
	draftError   string

	wantQuit bool
}

func (m shortlistModel) Init() tea.Cmd {
	return nil
}

func (m shortlistModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		if m.view == viewDetail {
			m.detailViewport.Width = m.width - 4
			m.detailViewport.Height = m.height - 4
			m.detailViewport.SetContent(m.renderDetail())
		}
		return m, nil

	case draftDoneMsg:
		m.drafting = false
		if msg.err != nil {
			m.draftError = fmt.Sprintf("draft failed: %v", msg.err)
		} else {
			m.draftError = ""
			m.drafts[msg.candidateID] = msg.draft
		}
		m.detailViewport.SetContent(m.renderDetail())
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		return m.updateListView(msg)
	}

	return m, nil
}

func (m shortlistModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.wantQuit = true
		return m, tea.Quit
	case "up", "k":
		m.cursor = clamp(m.cursor-1, 0, max(len(m.candidates)-1, 0))
		m.recalcContent()
		m.ensureCursorVisible()
		return m, nil
	case "down", "j":
		m.cursor = clamp(m.cursor+1, 0, max(len(m.candidates)-1, 0))
		m.recalcContent()
		m.ensureCursorVisible()
		return m, nil
	case "enter":
		return m.openDetailView()
	}

	// Forward other keys (pgup/pgdn/home/end) to the viewport.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m shortlistModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	case "o":
		if m.detail.Email != "" {
			openURL("mailto:" + m.detail.Email)
		}
		return m, nil
	case "r":
		if m.detail.Resume != "" {
			m.showResume = !m.showResume
			m.detailViewport.SetContent(m.renderDetail())
			m.detailViewport.SetYOffset(0)
		}
		return m, nil
	case "d":
		if m.drafter != nil && !m.drafting {
			if _, ok := m.drafts[m.detail.ID]; !ok {
				m.drafting = true
				m.draftError = ""
				m.detailViewport.SetContent(m.renderDetail())
				return m, m.draftCmd(m.detail)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m shortlistModel) draftCmd(c model.RankedCandidate) tea.Cmd {
	drafter := m.drafter
	message := m.draftMessage
	return func() tea.Msg {
		draft, err := drafter.DraftOutreach(context.Background(), c.Name, c.Resume, message)
		return draftDoneMsg{candidateID: c.ID, draft: draft, err: err}
	}
}

func (m *shortlistModel) ensureCursorVisible() {
	cursorTop := m.cursor * candidateItemHeight
	cursorBottom := cursorTop + candidateItemHeight - 1

	if cursorTop < m.viewport.YOffset {
		m.viewport.SetYOffset(cursorTop)
	} else if cursorBottom >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(cursorBottom - m.viewport.Height + 1)
	}
}

func (m shortlistModel) openDetailView() (tea.Model, tea.Cmd) {
	if len(m.candidates) == 0 {
		return m, nil
	}

	m.view = viewDetail
	m.detail = m.candidates[m.cursor]
	m.showResume = false
	m.draftError = ""
	m.detailViewport = viewport.New(m.width-4, m.height-4)
	m.detailViewport.SetContent(m.renderDetail())
	return m, nil
}

func (m *shortlistModel) recalcLayout() {
	paneWidth := max(m.width-2, 20)

	// Header (1 line) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	paneHeight := max(m.height-4, 5)

	if !m.ready {
		m.viewport = viewport.New(paneWidth, paneHeight)
		m.ready = true
	} else {
		m.viewport.Width = paneWidth
		m.viewport.Height = paneHeight
	}

	m.recalcContent()
}

func (m *shortlistModel) recalcContent() {
	m.viewport.SetContent(renderCandidates(m.candidates, m.cursor))
}

func (m shortlistModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.view == viewDetail {
		return m.viewDetail()
	}

	return m.viewList()
}

func (m shortlistModel) viewList() string {
	header := headerStyle.Render(fmt.Sprintf(" Matches for %q (%d)", m.query, len(m.candidates)))

	border := activeBorderStyle.Width(m.viewport.Width)
	pane := border.Render(m.viewport.View())

	statusText := fmt.Sprintf(" %d candidates    ↑/↓ cursor  Enter detail  q quit", len(m.candidates))
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return header + "\n" + pane + "\n" + statusBar
}

func (m shortlistModel) viewDetail() string {
	title := detailTitleStyle.Render("Candidate Details")
	if m.drafting {
		title += "  (drafting...)"
	}

	border := activeBorderStyle.Width(m.width - 2)
	content := border.Render(m.detailViewport.View())

	statusText := " o email  esc/backspace back  ↑/↓ scroll  q quit"
	if m.detail.Resume != "" {
		if m.drafter != nil && !m.drafting {
			if _, ok := m.drafts[m.detail.ID]; !ok {
				statusText = " o email  r resume  d draft outreach  esc/backspace back  ↑/↓ scroll  q quit"
			} else {
				statusText = " o email  r resume  esc/backspace back  ↑/↓ scroll  q quit"
			}
		} else {
			statusText = " o email  r resume  esc/backspace back  ↑/↓ scroll  q quit"
		}
	}
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return title + "\n" + content + "\n" + statusBar
}

func (m shortlistModel) renderDetail() string {
	c := m.detail
	var b strings.Builder

	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(detailValueStyle.Render(value))
		b.WriteByte('\n')
	}

	addField("Name", c.Name)
	addField("Email", c.Email)
	addField("Phone", c.Phone)
	addField("Country", c.Country)
	addField("Open To", c.OpenTo)

	b.WriteByte('\n')
	addField("Score", scoreStyle(c.Score).Render(fmt.Sprintf("%d / 100", c.Score)))
	addField("Skills", c.Skills)

	wrapWidth := max(m.width-8, 20)
	divider := func(label string) string {
		fill := strings.Repeat("─", max(wrapWidth-len(label), 3))
		return dividerStyle.Render(label + fill)
	}

	if c.Explanation != "" {
		b.WriteByte('\n')
		b.WriteString(divider("── Why This Match ") + "\n\n")
		b.WriteString(bodyStyle.Render(wordWrap(c.Explanation, wrapWidth)) + "\n")
	}

	if m.draftError != "" {
		b.WriteByte('\n')
		b.WriteString(errorStyle.Render("⚠ "+m.draftError) + "\n")
	}

	if draft, ok := m.drafts[c.ID]; ok {
		b.WriteByte('\n')
		b.WriteString(divider("── Outreach Draft ") + "\n\n")
		b.WriteString(bodyStyle.Render(wordWrap(draft, wrapWidth)) + "\n")
	} else if m.drafting {
		b.WriteByte('\n')
		b.WriteString(hintStyle.Render("  drafting outreach email...") + "\n")
	} else if m.drafter != nil {
		b.WriteByte('\n')
		b.WriteString(hintStyle.Render("  press d to draft an outreach email") + "\n")
	}

	if c.Resume != "" {
		b.WriteByte('\n')
		if m.showResume {
			b.WriteString(divider("── Resume ") + "\n\n")
			b.WriteString(bodyStyle.Render(wordWrap(c.Resume, wrapWidth)) + "\n")
		} else {
			b.WriteString(hintStyle.Render("  press r to read the resume") + "\n")
		}
	}

	return b.String()
}

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return scoreHighStyle
	case score >= 50:
		return scoreMidStyle
	default:
		return scoreLowStyle
	}
}

func renderCandidates(candidates []model.RankedCandidate, cursor int) string {
	if len(candidates) == 0 {
		return "  (no candidates)"
	}

	var b strings.Builder
	for i, c := range candidates {
		isSelected := i == cursor

		nameSt := nameStyle
		subtitleSt := subtitleStyle
		prefix := "  "
		if isSelected {
			nameSt = selectedNameStyle
			subtitleSt = selectedSubtitleStyle
			prefix = "> "
		}

		b.WriteString(prefix)
		b.WriteString(scoreStyle(c.Score).Render(fmt.Sprintf("%3d", c.Score)))
		b.WriteString("  ")
		b.WriteString(nameSt.Render(c.Name))
		b.WriteByte('\n')

		country := c.Country
		if country == "" {
			country = "n/a"
		}
		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(fmt.Sprintf("     %s · %s", country, c.OpenTo)))
		b.WriteByte('\n')

		if i < len(candidates)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url with the default system handler, fire-and-forget.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// RunShortlist launches the interactive shortlist browser for a ranked search
// result. drafter may be nil; when non-nil the 'd' key drafts an outreach
// email in the detail view using draftMessage as the recruiter's pitch.
func RunShortlist(query string, candidates []model.RankedCandidate, drafter Drafter, draftMessage string) error {
	m := shortlistModel{
		query:        query,
		candidates:   candidates,
		drafter:      drafter,
		draftMessage: draftMessage,
		drafts:       make(map[int64]string),
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
