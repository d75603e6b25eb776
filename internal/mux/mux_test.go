package mux

import (
	"testing"

	"ratline/internal/terminal"
)

func newTerm() *terminal.Terminal { return terminal.New("t", 80, 24) }

func TestNewTabBecomesActive(t *testing.T) {
	m := New()
	tid, pid := m.NewTab("shell", newTerm())
	if m.ActiveTab().ID != tid {
		t.Fatalf("expected new tab active")
	}
	if m.ActiveTab().Focused != pid {
		t.Fatalf("expected new pane focused")
	}
}

func TestCycleTabWraps(t *testing.T) {
	m := New()
	t1, _ := m.NewTab("a", newTerm())
	t2, _ := m.NewTab("b", newTerm())
	m.SelectTab(t1)
	m.CycleTab(1)
	if m.ActiveTab().ID != t2 {
		t.Fatalf("expected tab2 after cycling forward")
	}
	m.CycleTab(1)
	if m.ActiveTab().ID != t1 {
		t.Fatalf("expected wrap back to tab1")
	}
}

func TestSplitQuad2x2FocusDirection(t *testing.T) {
	m := New()
	m.NewTab("a", newTerm())
	m.Split(Quad2x2, newTerm(), newTerm(), newTerm())
	tab := m.ActiveTab()
	if len(tab.Panes) != 4 {
		t.Fatalf("expected 4 panes, got %d", len(tab.Panes))
	}
	// focused pane is slot 0 (top-left); move right then down.
	m.FocusDirection(DirRight)
	if m.panes[tab.Focused].Slot != 1 {
		t.Fatalf("expected slot 1 after DirRight, got %d", m.panes[tab.Focused].Slot)
	}
	m.FocusDirection(DirDown)
	if m.panes[tab.Focused].Slot != 3 {
		t.Fatalf("expected slot 3 after DirDown, got %d", m.panes[tab.Focused].Slot)
	}
}

func TestCloseTabRemovesPanes(t *testing.T) {
	m := New()
	tid, pid := m.NewTab("a", newTerm())
	m.CloseTab(tid)
	if m.Pane(pid) != nil {
		t.Fatalf("expected pane removed")
	}
	if m.Tab(tid) != nil {
		t.Fatalf("expected tab removed")
	}
}

func TestClosePaneDemotesLayout(t *testing.T) {
	m := New()
	m.NewTab("a", newTerm())
	m.Split(VerticalSplit, newTerm())
	tab := m.ActiveTab()
	second := tab.Panes[1]
	m.ClosePane(second)
	if tab.Layout != Single {
		t.Fatalf("expected Single after closing down to 1 pane, got %v", tab.Layout)
	}
	if len(tab.Panes) != 1 {
		t.Fatalf("expected 1 remaining pane, got %d", len(tab.Panes))
	}
}

func TestClosePaneLastPaneClosesTab(t *testing.T) {
	m := New()
	tid, pid := m.NewTab("a", newTerm())
	m.ClosePane(pid)
	if m.Tab(tid) != nil {
		t.Fatalf("expected tab closed when its last pane closes")
	}
	if m.TabCount() != 0 {
		t.Fatalf("expected 0 tabs remaining")
	}
}

func TestClosePaneMovesFocusToNeighbor(t *testing.T) {
	m := New()
	m.NewTab("a", newTerm())
	m.Split(VerticalSplit, newTerm())
	tab := m.ActiveTab()
	first, second := tab.Panes[0], tab.Panes[1]
	tab.Focused = first
	m.ClosePane(first)
	if tab.Focused != second {
		t.Fatalf("expected focus to move to remaining pane")
	}
}

func TestCycleFocusWithinSplit(t *testing.T) {
	m := New()
	m.NewTab("a", newTerm())
	m.Split(VerticalSplit, newTerm())
	tab := m.ActiveTab()
	start := tab.Focused
	m.CycleFocus(1)
	if tab.Focused == start {
		t.Fatalf("expected focus to move")
	}
	m.CycleFocus(-1)
	if tab.Focused != start {
		t.Fatalf("expected focus back to start")
	}
}
