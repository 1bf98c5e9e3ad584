// Package tui is the interactive terminal front end: free text in, closest exhibits
// and the largest exhibitions out.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	domexh "github.com/kailas-cloud/museum-search/internal/domain/exhibition"
	"github.com/kailas-cloud/museum-search/internal/domain/search/result"
)

const (
	greeting = "Привет! Отправьте описание экспоната или новость из мира искусства, " +
		"и я найду схожие экспонаты и выставки."
	helpText  = "Введите текст с описанием экспоната и нажмите Enter. /help, /about, Ctrl+C для выхода."
	aboutText = "Поиск сравнивает тематический профиль запроса с профилями экспонатов каталога."
)

// Catalog is the TUI-facing subset of app.App.
type Catalog interface {
	Search(ctx context.Context, query string, topK int) ([]result.Result, error)
	TopExhibitions(ctx context.Context, topK int) ([]domexh.Group, error)
	Display(g domexh.Group) string
}

// answerMsg carries the outcome of one query back into Update.
type answerMsg struct {
	query       string
	exhibits    []result.Result
	exhibitions []domexh.Group
	err         error
}

// Model is the Bubble Tea model.
type Model struct {
	ctx      context.Context
	catalog  Catalog
	topK     int
	input    textinput.Model
	viewport viewport.Model
	content  string
	status   string
	busy     bool
	ready    bool
}

// New creates a model. topK<=0 lets the catalog pick its default.
func New(ctx context.Context, catalog Catalog, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Опишите экспонат и нажмите Enter"
	ti.Focus()
	ti.CharLimit = 2000
	return Model{
		ctx:      ctx,
		catalog:  catalog,
		topK:     max(topK, 0),
		input:    ti,
		viewport: viewport.New(0, 0),
		content:  greeting,
		status:   "Готово.",
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, resize and answer messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, bh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header + status + input box + spacer
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, msg.Height-reserved-bh)
		m.viewport.SetContent(m.content)
		return m, nil

	case answerMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Ошибка: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Результаты для %q", msg.query)
		m.setContent(RenderExhibits(msg.exhibits) + RenderExhibitions(msg.exhibitions, m.catalog.Display))
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	q := strings.TrimSpace(m.input.Value())
	if q == "" || m.busy {
		return m, nil
	}
	m.input.Reset()

	switch q {
	case "/start":
		m.setContent(greeting)
		return m, nil
	case "/help":
		m.setContent(helpText)
		return m, nil
	case "/about":
		m.setContent(aboutText)
		return m, nil
	}

	m.busy = true
	m.status = "Ищу..."
	return m, m.ask(q)
}

// ask runs both lookups off the UI goroutine.
func (m Model) ask(query string) tea.Cmd {
	ctx, catalog, topK := m.ctx, m.catalog, m.topK
	return func() tea.Msg {
		exhibits, err := catalog.Search(ctx, query, topK)
		if err != nil {
			return answerMsg{query: query, err: err}
		}
		exhibitions, err := catalog.TopExhibitions(ctx, topK)
		if err != nil {
			return answerMsg{query: query, err: err}
		}
		return answerMsg{query: query, exhibits: exhibits, exhibitions: exhibitions}
	}
}

func (m *Model) setContent(s string) {
	m.content = s
	m.viewport.SetContent(s)
	m.viewport.GotoTop()
}

// View renders the layout.
func (m Model) View() string {
	if !m.ready {
		return "Загрузка..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Поиск по музейному каталогу")
	body := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + body + "\n" + input + "\n" + status
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Run starts the program on the terminal and blocks until the user quits.
func Run(ctx context.Context, catalog Catalog, topK int) error {
	p := tea.NewProgram(New(ctx, catalog, topK), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
