package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/jamesainslie/kerntune/pkg/kerntune/engine"
	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/profile"
)

// WizardState represents the current step of the wizard.
type WizardState int

const (
	StateFacts WizardState = iota
	StateProfile
	StateIPv6
	StateConfirm
)

// factField identifies one editable row on the facts step.
type factField int

const (
	fieldCores factField = iota
	fieldThreads
	fieldRAM
	fieldNIC
	fieldDisk
	fieldContainer
	fieldCount
)

// Options seeds the wizard with detected facts and configured defaults.
type Options struct {
	Facts       facts.Facts
	Profile     profile.Profile
	DisableIPv6 bool
}

// Result is what the wizard hands back to the generate command.
type Result struct {
	Facts       facts.Facts
	Profile     profile.Profile
	DisableIPv6 bool

	// Accepted is false when the user cancelled; nothing should be
	// written in that case.
	Accepted bool
}

// Model is the Bubble Tea model for the generation wizard.
type Model struct {
	state WizardState

	facts       facts.Facts
	profile     profile.Profile
	disableIPv6 bool

	// Facts step
	factCursor factField
	editing    bool
	input      textinput.Model
	inputErr   string

	// Profile step
	profiles      []profile.Profile
	profileCursor int

	// IPv6 step: 0 = keep enabled (hardened), 1 = disable
	ipv6Cursor int

	// Confirm step
	confirmCursor int // 0 = generate, 1 = cancel
	previewKeys   int
	previewErr    error

	accepted bool

	width  int
	height int
}

// NewModel creates a wizard model seeded with the given options.
func NewModel(opts Options) Model {
	input := textinput.New()
	input.CharLimit = 7
	input.Width = 10

	profiles := profile.All()
	cursor := 0
	for i, p := range profiles {
		if p == opts.Profile {
			cursor = i
		}
	}

	ipv6 := 0
	if opts.DisableIPv6 {
		ipv6 = 1
	}

	return Model{
		state:         StateFacts,
		facts:         opts.Facts,
		profile:       opts.Profile,
		disableIPv6:   opts.DisableIPv6,
		input:         input,
		profiles:      profiles,
		profileCursor: cursor,
		ipv6Cursor:    ipv6,
		width:         80,
		height:        24,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey handles navigation keys outside of field editing.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.accepted = false
		return m, tea.Quit
	}

	switch m.state {
	case StateFacts:
		return m.handleFactsKey(msg)
	case StateProfile:
		return m.handleProfileKey(msg)
	case StateIPv6:
		return m.handleIPv6Key(msg)
	case StateConfirm:
		return m.handleConfirmKey(msg)
	}
	return m, nil
}

func (m Model) handleFactsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.factCursor > 0 {
			m.factCursor--
		}
	case "down", "j":
		if m.factCursor < fieldCount-1 {
			m.factCursor++
		}
	case "enter", " ":
		switch m.factCursor {
		case fieldDisk:
			m.facts.Disk = nextMedium(m.facts.Disk)
		case fieldContainer:
			m.facts.Container = !m.facts.Container
		default:
			m.editing = true
			m.inputErr = ""
			m.input.SetValue(strconv.Itoa(m.factValue(m.factCursor)))
			m.input.Focus()
			return m, textinput.Blink
		}
	case "tab", "right", "l":
		m.state = StateProfile
	}
	return m, nil
}

// handleEditKey routes keys to the textinput while a numeric field is
// being edited.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.inputErr = ""
		return m, nil
	case "enter":
		n, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
		if err != nil || n <= 0 {
			m.inputErr = "enter a positive whole number"
			return m, nil
		}
		m.setFactValue(m.factCursor, n)
		m.editing = false
		m.inputErr = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.profileCursor > 0 {
			m.profileCursor--
		}
	case "down", "j":
		if m.profileCursor < len(m.profiles)-1 {
			m.profileCursor++
		}
	case "enter", "tab", "right", "l":
		m.profile = m.profiles[m.profileCursor]
		m.state = StateIPv6
	case "esc", "left", "h":
		m.state = StateFacts
	}
	return m, nil
}

func (m Model) handleIPv6Key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "down", "j":
		m.ipv6Cursor = 1 - m.ipv6Cursor
	case "enter", "tab", "right", "l":
		m.disableIPv6 = m.ipv6Cursor == 1
		m = m.preparePreview()
		m.state = StateConfirm
	case "esc", "left", "h":
		m.state = StateProfile
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "h", "l", "tab":
		m.confirmCursor = 1 - m.confirmCursor
	case "enter":
		m.accepted = m.confirmCursor == 0 && m.previewErr == nil
		return m, tea.Quit
	case "esc":
		m.state = StateIPv6
	}
	return m, nil
}

// preparePreview resolves the current selection so the confirm step can
// show the parameter count before anything is written.
func (m Model) preparePreview() Model {
	artifact, err := engine.Resolve(engine.Request{
		Facts:       m.facts,
		Profile:     m.profile,
		DisableIPv6: m.disableIPv6,
	})
	if err != nil {
		m.previewErr = err
		m.previewKeys = 0
		return m
	}
	m.previewErr = nil
	m.previewKeys = len(artifact.Entries)
	return m
}

// factValue returns the numeric value of an editable field.
func (m Model) factValue(f factField) int {
	switch f {
	case fieldCores:
		return m.facts.Cores
	case fieldThreads:
		return m.facts.Threads
	case fieldRAM:
		return m.facts.RAMGB
	case fieldNIC:
		return m.facts.NICMbps
	}
	return 0
}

// setFactValue stores a validated numeric value into a field.
func (m *Model) setFactValue(f factField, n int) {
	switch f {
	case fieldCores:
		m.facts.Cores = n
	case fieldThreads:
		m.facts.Threads = n
	case fieldRAM:
		m.facts.RAMGB = n
	case fieldNIC:
		m.facts.NICMbps = n
	}
}

// nextMedium cycles through the supported disk media.
func nextMedium(d facts.DiskMedium) facts.DiskMedium {
	switch d {
	case facts.HDD:
		return facts.SSD
	case facts.SSD:
		return facts.NVMe
	default:
		return facts.HDD
	}
}

// View renders the wizard.
func (m Model) View() string {
	var b strings.Builder

	switch m.state {
	case StateFacts:
		b.WriteString(m.viewFacts())
	case StateProfile:
		b.WriteString(m.viewProfile())
	case StateIPv6:
		b.WriteString(m.viewIPv6())
	case StateConfirm:
		b.WriteString(m.viewConfirm())
	}

	return outerBoxStyle.Width(min(m.width-2, 76)).Render(b.String())
}

func (m Model) viewFacts() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Step 1/4: Hardware"))
	b.WriteString("\n")
	b.WriteString(mutedTextStyle.Render("Detected facts; adjust any that are wrong."))
	b.WriteString("\n\n")

	rows := []struct {
		field factField
		label string
		value string
	}{
		{fieldCores, "CPU cores", strconv.Itoa(m.facts.Cores)},
		{fieldThreads, "CPU threads", strconv.Itoa(m.facts.Threads)},
		{fieldRAM, "RAM", humanize.IBytes(uint64(m.facts.RAMGB) * 1024 * 1024 * 1024)},
		{fieldNIC, "NIC speed", humanize.SI(float64(m.facts.NICMbps)*1e6, "bps")},
		{fieldDisk, "Disk medium", m.facts.Disk.String()},
		{fieldContainer, "Container host", yesNo(m.facts.Container)},
	}

	for _, row := range rows {
		line := fmt.Sprintf("  %-16s %s", row.label, row.value)
		if row.field == m.factCursor {
			if m.editing {
				line = fmt.Sprintf("> %-16s %s", row.label, m.input.View())
			} else {
				line = selectedStyle.Render(fmt.Sprintf("> %-16s %s", row.label, row.value))
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.inputErr != "" {
		b.WriteString("\n")
		b.WriteString(errorTextStyle.Render(m.inputErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.editing {
		b.WriteString(mutedTextStyle.Render("enter: save  esc: discard"))
	} else {
		b.WriteString(mutedTextStyle.Render("up/down: move  enter: edit/cycle  tab: next  q: quit"))
	}
	return b.String()
}

func (m Model) viewProfile() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Step 2/4: Workload profile"))
	b.WriteString("\n\n")

	for i, p := range m.profiles {
		line := fmt.Sprintf("  %-16s %s", p, mutedTextStyle.Render(p.Description()))
		if i == m.profileCursor {
			line = selectedStyle.Render(fmt.Sprintf("> %-16s", p)) + " " + p.Description()
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedTextStyle.Render("up/down: move  enter: select  esc: back  q: quit"))
	return b.String()
}

func (m Model) viewIPv6() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Step 3/4: IPv6"))
	b.WriteString("\n\n")

	options := []string{
		"Keep IPv6 enabled (apply hardening parameters)",
		"Disable IPv6 entirely",
	}
	for i, opt := range options {
		line := "  " + opt
		if i == m.ipv6Cursor {
			line = selectedStyle.Render("> " + opt)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.ipv6Cursor == 1 {
		b.WriteString("\n")
		b.WriteString(warningTextStyle.Render("Disabling IPv6 breaks services that bind IPv6 sockets."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedTextStyle.Render("up/down: toggle  enter: select  esc: back  q: quit"))
	return b.String()
}

func (m Model) viewConfirm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Step 4/4: Review"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  Profile:   %s\n", m.profile))
	b.WriteString(fmt.Sprintf("  Hardware:  %d cores / %d threads, %d GB RAM, %d Mbps, %s\n",
		m.facts.Cores, m.facts.Threads, m.facts.RAMGB, m.facts.NICMbps, m.facts.Disk))
	b.WriteString(fmt.Sprintf("  IPv6:      %s\n", map[bool]string{true: "disabled", false: "enabled (hardened)"}[m.disableIPv6]))

	if m.previewErr != nil {
		b.WriteString("\n")
		b.WriteString(errorTextStyle.Render(fmt.Sprintf("Cannot generate: %v", m.previewErr)))
		b.WriteString("\n")
	} else {
		b.WriteString(fmt.Sprintf("\n  %s\n", successTextStyle.Render(fmt.Sprintf("%d parameters ready", m.previewKeys))))
	}

	b.WriteString("\n")
	buttons := []string{"[ Generate ]", "[ Cancel ]"}
	for i, btn := range buttons {
		if i == m.confirmCursor {
			b.WriteString(selectedStyle.Render(btn))
		} else {
			b.WriteString(mutedTextStyle.Render(btn))
		}
		b.WriteString("  ")
	}

	b.WriteString("\n\n")
	b.WriteString(mutedTextStyle.Render("tab: switch  enter: confirm  esc: back  q: quit"))
	return b.String()
}

// result extracts the final selection after the program exits.
func (m Model) result() Result {
	return Result{
		Facts:       m.facts,
		Profile:     m.profile,
		DisableIPv6: m.disableIPv6,
		Accepted:    m.accepted,
	}
}

// Run launches the wizard and blocks until the user confirms or cancels.
func Run(opts Options) (Result, error) {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}

	model, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("unexpected model type %T", final)
	}
	return model.result(), nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
