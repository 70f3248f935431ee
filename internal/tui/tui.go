package tui

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/spellforge/internal/catalog"
	"github.com/tatianab/spellforge/internal/forge"
	"github.com/tatianab/spellforge/internal/models"
)

type sessionState int

const (
	stateBrowsing sessionState = iota
	stateFiltering
	stateEditingParam
	stateInvesting
	stateWritingPrompt
	stateGenerating
	stateResult
	stateError
)

// Generator turns a finalized draft into a spell. *engine.Engine implements it.
type Generator interface {
	GenerateSpell(ctx context.Context, req models.FinalizeRequest) (*models.Spell, error)
}

type model struct {
	state     sessionState
	generator Generator
	catalog   *catalog.Catalog
	items     *catalog.ItemTable
	wallet    models.Wallet

	filter     catalog.Filter
	visible    []models.Component
	cursor     int
	selection  models.Selection
	investment []models.ResourceCost
	prompt     string
	preview    forge.Preview

	textInput textinput.Model
	viewport  viewport.Model
	spell     *models.Spell
	notice    string
	err       error
	width     int
	height    int
}

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true)

	listStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	shortStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5FD75F"))
)

func NewModel(gen Generator, cat *catalog.Catalog, items *catalog.ItemTable, wallet models.Wallet) model {
	ti := textinput.New()
	ti.CharLimit = 156
	ti.Width = 40

	m := model{
		state:     stateBrowsing,
		generator: gen,
		catalog:   cat,
		items:     items,
		wallet:    wallet,
		textInput: ti,
		viewport:  viewport.New(80, 20),
	}
	m.refreshVisible()
	m.recompute()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

type spellGeneratedMsg struct {
	spell *models.Spell
}

type errMsg struct {
	err error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.state {
		case stateFiltering, stateEditingParam, stateInvesting, stateWritingPrompt:
			return m.updateInput(msg)
		case stateBrowsing:
			return m.updateBrowsing(msg)
		case stateResult, stateError:
			switch msg.String() {
			case "esc", "enter", "q":
				m.state = stateBrowsing
				m.err = nil
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.75)
		m.viewport.Height = msg.Height - 6

	case spellGeneratedMsg:
		m.spell = msg.spell
		m.state = stateResult
		m.viewport.SetContent(m.renderSpell())
		m.viewport.GotoTop()
		return m, nil

	case errMsg:
		m.err = msg.err
		m.state = stateError
		return m, nil
	}

	return m, nil
}

func (m model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch msg.String() {
	case "esc", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case " ", "space":
		if c, ok := m.current(); ok {
			m.selection = m.selection.Toggle(c.ID)
			m.recompute()
		}

	case "c":
		m.filter.Category = cycle(append([]models.Category{""}, models.Categories...), m.filter.Category)
		m.refreshVisible()

	case "t":
		m.filter.Tier = (m.filter.Tier + 1) % (models.MaxTier + 1)
		m.refreshVisible()

	case "e":
		m.filter.Element = cycle([]models.Element{"", models.ElementFire, models.ElementIce, models.ElementLightning,
			models.ElementEarth, models.ElementArcane, models.ElementShadow}, m.filter.Element)
		m.refreshVisible()

	case "/":
		return m.startInput(stateFiltering, "search by name", m.filter.Query)

	case "p":
		c, ok := m.current()
		if !ok || !m.selection.Contains(c.ID) || len(c.Parameters) == 0 {
			m.notice = "select a component with parameters first"
			return m, nil
		}
		return m.startInput(stateEditingParam, "key=value", "")

	case "i":
		return m.startInput(stateInvesting, "item=quantity (0 removes)", "")

	case "w":
		return m.startInput(stateWritingPrompt, "describe the spell you want", m.prompt)

	case "s":
		saved, err := models.SavePrompt(models.SavedPrompt{
			Name:         m.draftName(),
			Text:         m.prompt,
			ComponentIDs: m.selection.IDs(),
		})
		if err != nil {
			m.notice = fmt.Sprintf("could not save prompt: %v", err)
		} else {
			m.notice = fmt.Sprintf("saved prompt %q", saved.Name)
		}

	case "enter":
		return m.finalize()
	}
	return m, nil
}

func (m model) startInput(state sessionState, placeholder, value string) (tea.Model, tea.Cmd) {
	m.state = state
	m.textInput.Placeholder = placeholder
	m.textInput.SetValue(value)
	return m, m.textInput.Focus()
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.state == stateFiltering {
			m.filter.Query = ""
			m.refreshVisible()
		}
		m.stopInput()
		return m, nil

	case tea.KeyEnter:
		value := strings.TrimSpace(m.textInput.Value())
		switch m.state {
		case stateEditingParam:
			m.applyParam(value)
		case stateInvesting:
			m.applyInvestment(value)
		case stateWritingPrompt:
			m.prompt = value
		}
		m.stopInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if m.state == stateFiltering {
		m.filter.Query = m.textInput.Value()
		m.refreshVisible()
	}
	return m, cmd
}

func (m *model) stopInput() {
	m.state = stateBrowsing
	m.textInput.Blur()
	m.textInput.Reset()
}

func (m *model) applyParam(value string) {
	c, ok := m.current()
	if !ok {
		return
	}
	key, raw, found := strings.Cut(value, "=")
	key = strings.TrimSpace(key)
	if !found || !slices.ContainsFunc(c.Parameters, func(p models.ConfigurableParameter) bool { return p.Key == key }) {
		m.notice = fmt.Sprintf("unknown parameter %q", key)
		return
	}
	m.selection = m.selection.SetParam(c.ID, key, strings.TrimSpace(raw))
	m.recompute()
}

func (m *model) applyInvestment(value string) {
	item, raw, found := strings.Cut(value, "=")
	item = strings.TrimSpace(item)
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if !found || item == "" || err != nil {
		m.notice = "investment must look like item=quantity"
		return
	}

	m.investment = slices.DeleteFunc(slices.Clone(m.investment), func(rc models.ResourceCost) bool { return rc.ItemID == item })
	if qty > 0 {
		m.investment = append(m.investment, models.ResourceCost{ItemID: item, Quantity: qty})
	}
	m.recompute()
}

func (m model) finalize() (tea.Model, tea.Cmd) {
	req, err := forge.Finalize(m.preview, m.prompt)
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	if m.generator == nil {
		m.notice = "GEMINI_API_KEY is not set; cannot generate"
		return m, nil
	}
	m.state = stateGenerating
	return m, m.generateSpell(req)
}

func (m *model) recompute() {
	m.preview = forge.Compute(m.catalog, m.items, forge.Input{
		Selection:  m.selection,
		Investment: m.investment,
		Wallet:     m.wallet,
	})
}

func (m *model) refreshVisible() {
	m.visible = m.catalog.Filter(m.filter)
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
}

func (m model) current() (models.Component, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return models.Component{}, false
	}
	return m.visible[m.cursor], true
}

func (m model) draftName() string {
	if name := m.preview.Draft.Name(); name != "" {
		return name
	}
	return "untitled"
}

func cycle[T comparable](values []T, current T) T {
	i := slices.Index(values, current)
	return values[(i+1)%len(values)]
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateGenerating:
		s = "\n  Weaving your spell... please wait.\n"

	case stateResult:
		s = lipgloss.JoinVertical(lipgloss.Left,
			m.viewport.View(),
			"\n"+helpStyle.Render("Press Enter to return to the forge."),
		)

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Enter to return to the forge, Ctrl+C to quit.", m.err)

	default:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderList(),
			m.renderPreview(),
		)

		bottom := helpStyle.Render("space select · / search · c/t/e category/tier/element · p param · i invest · w prompt · s save · enter forge · q quit")
		if m.state != stateBrowsing {
			bottom = m.textInput.View() + "\n" + helpStyle.Render("enter to apply · esc to cancel")
		}
		if m.notice != "" {
			bottom = shortStyle.Render(m.notice) + "\n" + bottom
		}

		s = lipgloss.JoinVertical(lipgloss.Left, mainView, "\n"+bottom)
	}

	return "\n" + s + "\n"
}

func (m model) renderList() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("COMPONENTS") + "\n")
	b.WriteString(helpStyle.Render(m.describeFilter()) + "\n\n")

	if len(m.visible) == 0 {
		b.WriteString("(no matches)")
		if hints := m.catalog.Suggest(m.filter.Query, 3); len(hints) > 0 {
			b.WriteString("\ndid you mean: " + strings.Join(hints, ", "))
		}
		return b.String()
	}

	for i, c := range m.visible {
		mark := "[ ]"
		if m.selection.Contains(c.ID) {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s  T%d %s", mark, c.DisplayName(), c.Tier, c.Category)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(listStyle.Render("  "+line) + "\n")
		}
	}

	if c, ok := m.current(); ok && len(c.Parameters) > 0 {
		b.WriteString("\n" + titleStyle.Render("PARAMETERS") + "\n")
		bound := m.preview.Params[c.ID]
		for _, p := range c.Parameters {
			b.WriteString(fmt.Sprintf("%s (%s): %s\n", p.Label, p.Key, formatParam(p, bound[p.Key])))
		}
	}
	return b.String()
}

func (m model) describeFilter() string {
	parts := []string{}
	if m.filter.Category != "" {
		parts = append(parts, "category="+string(m.filter.Category))
	}
	if m.filter.Tier != 0 {
		parts = append(parts, fmt.Sprintf("tier=%d", m.filter.Tier))
	}
	if m.filter.Element != "" {
		parts = append(parts, "element="+string(m.filter.Element))
	}
	if m.filter.Query != "" {
		parts = append(parts, fmt.Sprintf("name~%q", m.filter.Query))
	}
	if len(parts) == 0 {
		return "all components"
	}
	return strings.Join(parts, " ")
}

func formatParam(p models.ConfigurableParameter, b models.BoundParam) string {
	if p.Kind == models.ParamDropdown {
		if b.Option == "" {
			return p.DefaultOption
		}
		return fmt.Sprintf("%s %v", b.Option, p.Options)
	}
	return fmt.Sprintf("%g [%g-%g]", b.Number, p.Min, p.Max)
}

func (m model) renderPreview() string {
	d := m.preview.Draft

	draft := titleStyle.Render("DRAFT") + "\n"
	if name := d.Name(); name != "" {
		draft += name + "\n"
	}
	draft += fmt.Sprintf("Damage: %d\nMana: %d\nEnergy: %d\n", d.Damage, d.ManaCost, d.EnergyCost)
	if d.Element != "" {
		draft += fmt.Sprintf("Element: %s\n", d.Element)
	}
	if d.ScalingStat != "" {
		draft += fmt.Sprintf("Scales with: %s\n", d.ScalingStat)
	}
	if d.Status != nil {
		draft += fmt.Sprintf("Status: %s (%g%%, %d turns)\n", d.Status.Status, d.Status.Chance, d.Status.Duration)
	}
	if len(d.Tags) > 0 {
		draft += "Tags: " + strings.Join(d.Tags, ", ") + "\n"
	}
	draft += "\n"

	cost := titleStyle.Render("COST") + "\n"
	cost += fmt.Sprintf("Gold: %d / %d\nEssence: %d / %d\n", d.GoldCost, m.wallet.Gold, d.EssenceCost, m.wallet.Essence)
	for _, rc := range d.ResourceCost {
		cost += fmt.Sprintf("%s: %d / %d\n", m.items.Name(rc.ItemID), rc.Quantity, m.wallet.Inventory[rc.ItemID])
	}
	if m.prompt != "" {
		cost += "\nPrompt: " + m.prompt + "\n"
	}
	cost += "\n"

	status := okStyle.Render("Affordable")
	if !m.preview.Affordability.Affordable {
		lines := []string{"Cannot afford:"}
		for _, s := range m.preview.Affordability.Shortfalls {
			lines = append(lines, "- "+s.String())
		}
		status = shortStyle.Render(strings.Join(lines, "\n"))
	}
	for _, w := range m.preview.Warnings {
		status += "\n" + helpStyle.Render("! "+w)
	}

	content := draft + cost + status

	stateWidth := int(float64(m.width) * 0.35)
	return stateStyle.Width(stateWidth).Render(content)
}

func (m model) renderSpell() string {
	s := m.spell
	out := titleStyle.Render(s.Name) + "\n\n"
	out += s.Description + "\n\n"
	out += fmt.Sprintf("Damage: %d\nMana: %d\n", s.Damage, s.ManaCost)
	if s.Element != "" {
		out += fmt.Sprintf("Element: %s\n", s.Element)
	}
	if s.StatusEffect != "" {
		out += fmt.Sprintf("Effect: %s\n", s.StatusEffect)
	}
	if len(s.Tags) > 0 {
		out += "Tags: " + strings.Join(s.Tags, ", ") + "\n"
	}
	if s.Flavor != "" {
		out += "\n" + helpStyle.Render(s.Flavor) + "\n"
	}
	return out
}

func (m model) generateSpell(req models.FinalizeRequest) tea.Cmd {
	return func() tea.Msg {
		spell, err := m.generator.GenerateSpell(context.Background(), req)
		if err != nil {
			return errMsg{err}
		}
		return spellGeneratedMsg{spell}
	}
}

// Run starts the forge screen. gen may be nil, in which case finalizing only validates.
func Run(gen Generator, cat *catalog.Catalog, items *catalog.ItemTable, wallet models.Wallet) error {
	p := tea.NewProgram(NewModel(gen, cat, items, wallet), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
