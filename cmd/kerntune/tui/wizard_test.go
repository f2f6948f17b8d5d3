package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/profile"
)

func testOptions() Options {
	return Options{
		Facts:   facts.Facts{Cores: 4, Threads: 8, RAMGB: 16, NICMbps: 1000, Disk: facts.SSD},
		Profile: profile.General,
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}

func TestNewModelSeedsFromOptions(t *testing.T) {
	opts := testOptions()
	opts.Profile = profile.Database
	opts.DisableIPv6 = true

	m := NewModel(opts)

	if m.state != StateFacts {
		t.Errorf("expected StateFacts, got %v", m.state)
	}
	if m.facts != opts.Facts {
		t.Errorf("facts = %+v, want %+v", m.facts, opts.Facts)
	}
	if m.profiles[m.profileCursor] != profile.Database {
		t.Errorf("profile cursor on %v, want database", m.profiles[m.profileCursor])
	}
	if m.ipv6Cursor != 1 {
		t.Errorf("ipv6Cursor = %d, want 1", m.ipv6Cursor)
	}
}

func TestFactCursorMovement(t *testing.T) {
	m := NewModel(testOptions())

	m = update(t, m, "down", "down")
	if m.factCursor != fieldRAM {
		t.Errorf("cursor = %v, want fieldRAM", m.factCursor)
	}

	// Cursor stops at the bounds
	m = update(t, m, "up", "up", "up", "up")
	if m.factCursor != fieldCores {
		t.Errorf("cursor = %v, want fieldCores", m.factCursor)
	}
}

func TestEditNumericField(t *testing.T) {
	m := NewModel(testOptions())

	// Edit the cores field: enter edit mode, replace the value, commit
	m = update(t, m, "enter")
	if !m.editing {
		t.Fatal("expected edit mode after enter")
	}
	m.input.SetValue("32")
	m = update(t, m, "enter")

	if m.editing {
		t.Error("expected edit mode to end after commit")
	}
	if m.facts.Cores != 32 {
		t.Errorf("cores = %d, want 32", m.facts.Cores)
	}
}

func TestEditRejectsInvalidInput(t *testing.T) {
	m := NewModel(testOptions())

	m = update(t, m, "enter")
	m.input.SetValue("zero")
	m = update(t, m, "enter")

	if !m.editing {
		t.Error("expected to stay in edit mode on invalid input")
	}
	if m.inputErr == "" {
		t.Error("expected a validation message")
	}
	if m.facts.Cores != 4 {
		t.Errorf("cores = %d, want unchanged 4", m.facts.Cores)
	}

	// Esc discards the edit
	m = update(t, m, "esc")
	if m.editing {
		t.Error("expected esc to leave edit mode")
	}
}

func TestDiskFieldCycles(t *testing.T) {
	m := NewModel(testOptions())
	m.factCursor = fieldDisk

	m = update(t, m, "enter")
	if m.facts.Disk != facts.NVMe {
		t.Errorf("disk = %v, want NVMe after one cycle from SSD", m.facts.Disk)
	}
	m = update(t, m, "enter")
	if m.facts.Disk != facts.HDD {
		t.Errorf("disk = %v, want HDD", m.facts.Disk)
	}
}

func TestContainerFieldToggles(t *testing.T) {
	m := NewModel(testOptions())
	m.factCursor = fieldContainer

	m = update(t, m, "enter")
	if !m.facts.Container {
		t.Error("expected container toggle to true")
	}
}

func TestProfileSelection(t *testing.T) {
	m := NewModel(testOptions())

	m = update(t, m, "tab") // facts -> profile
	if m.state != StateProfile {
		t.Fatalf("state = %v, want StateProfile", m.state)
	}

	m = update(t, m, "down", "enter")
	if m.state != StateIPv6 {
		t.Fatalf("state = %v, want StateIPv6", m.state)
	}
	if m.profile == profile.General {
		t.Error("expected a different profile after moving the cursor")
	}
}

func TestConfirmPreviewAndAccept(t *testing.T) {
	m := NewModel(testOptions())

	m = update(t, m, "tab", "enter", "enter") // facts -> profile -> ipv6 -> confirm
	if m.state != StateConfirm {
		t.Fatalf("state = %v, want StateConfirm", m.state)
	}
	if m.previewErr != nil {
		t.Fatalf("preview error: %v", m.previewErr)
	}
	if m.previewKeys == 0 {
		t.Error("expected a nonzero parameter preview count")
	}

	m = update(t, m, "enter")
	res := m.result()
	if !res.Accepted {
		t.Error("expected Accepted after confirming Generate")
	}
	if res.Profile != profile.General {
		t.Errorf("profile = %v, want general", res.Profile)
	}
}

func TestConfirmCancel(t *testing.T) {
	m := NewModel(testOptions())

	m = update(t, m, "tab", "enter", "enter") // reach confirm
	m = update(t, m, "tab", "enter")          // switch to Cancel, confirm

	if m.result().Accepted {
		t.Error("expected Accepted=false after cancel")
	}
}

func TestQuitKeyCancels(t *testing.T) {
	m := NewModel(testOptions())

	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if m.result().Accepted {
		t.Error("expected Accepted=false after quit")
	}
}

func TestViewRendersEachState(t *testing.T) {
	m := NewModel(testOptions())

	checks := []struct {
		state WizardState
		want  string
	}{
		{StateFacts, "Hardware"},
		{StateProfile, "Workload profile"},
		{StateIPv6, "IPv6"},
		{StateConfirm, "Review"},
	}

	for _, c := range checks {
		m.state = c.state
		if c.state == StateConfirm {
			m = m.preparePreview()
		}
		view := m.View()
		if !strings.Contains(view, c.want) {
			t.Errorf("view for state %v missing %q", c.state, c.want)
		}
	}
}
