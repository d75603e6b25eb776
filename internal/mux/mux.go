// Package mux implements the terminal multiplexer (C6): tabs, each holding
// one or more panes in a Single/VerticalSplit/Quad2x2 layout, and focus
// routing across them. Panes and tabs are addressed by stable integer ids
// held in owning slices/maps — no back-pointers — so a pane can be moved or
// removed without invalidating references held elsewhere.
package mux

import "ratline/internal/terminal"

// SplitLayout names a tab's pane arrangement.
type SplitLayout int

const (
	Single SplitLayout = iota
	VerticalSplit
	Quad2x2
)

// PaneID and TabID are stable indices into the Multiplexer's owning slices.
type PaneID int
type TabID int

// Pane holds one terminal and its position within a tab's layout.
type Pane struct {
	ID       PaneID
	Terminal *terminal.Terminal
	// Slot indexes this pane within its tab's Layout: 0 for Single and the
	// left half of VerticalSplit, 1 for the right half, 0-3 row-major for
	// Quad2x2.
	Slot int
}

// Tab owns a set of panes arranged per Layout, and tracks which pane has
// focus within it.
type Tab struct {
	ID      TabID
	Title   string
	Layout  SplitLayout
	Panes   []PaneID
	Focused PaneID
}

// Multiplexer owns every tab and pane; all cross-references go through its
// id-keyed maps rather than pointers between Tab/Pane structs.
type Multiplexer struct {
	tabs      map[TabID]*Tab
	panes     map[PaneID]*Pane
	tabOrder  []TabID
	nextTabID TabID
	nextPaneID PaneID
	activeTab TabID
}

// New returns an empty Multiplexer.
func New() *Multiplexer {
	return &Multiplexer{
		tabs:  make(map[TabID]*Tab),
		panes: make(map[PaneID]*Pane),
	}
}

// NewTab creates a tab with a single pane wrapping term and makes it active.
func (m *Multiplexer) NewTab(title string, term *terminal.Terminal) (TabID, PaneID) {
	pid := m.nextPaneID
	m.nextPaneID++
	m.panes[pid] = &Pane{ID: pid, Terminal: term, Slot: 0}

	tid := m.nextTabID
	m.nextTabID++
	t := &Tab{ID: tid, Title: title, Layout: Single, Panes: []PaneID{pid}, Focused: pid}
	m.tabs[tid] = t
	m.tabOrder = append(m.tabOrder, tid)
	m.activeTab = tid
	return tid, pid
}

// CloseTab removes a tab and every pane it owns.
func (m *Multiplexer) CloseTab(id TabID) {
	t, ok := m.tabs[id]
	if !ok {
		return
	}
	for _, pid := range t.Panes {
		delete(m.panes, pid)
	}
	delete(m.tabs, id)
	for i, tid := range m.tabOrder {
		if tid == id {
			m.tabOrder = append(m.tabOrder[:i], m.tabOrder[i+1:]...)
			break
		}
	}
	if m.activeTab == id && len(m.tabOrder) > 0 {
		m.activeTab = m.tabOrder[0]
	}
}

// ActiveTab returns the currently selected tab, or nil if there are none.
func (m *Multiplexer) ActiveTab() *Tab { return m.tabs[m.activeTab] }

// Tab looks up a tab by id.
func (m *Multiplexer) Tab(id TabID) *Tab { return m.tabs[id] }

// Pane looks up a pane by id.
func (m *Multiplexer) Pane(id PaneID) *Pane { return m.panes[id] }

// Tabs returns tabs in display order.
func (m *Multiplexer) Tabs() []*Tab {
	out := make([]*Tab, 0, len(m.tabOrder))
	for _, id := range m.tabOrder {
		out = append(out, m.tabs[id])
	}
	return out
}

// TabCount reports how many tabs remain; the event loop requests shutdown
// once this reaches zero (§3's "at least one tab exists while running").
func (m *Multiplexer) TabCount() int { return len(m.tabOrder) }

// SelectTab makes id the active tab, if it exists.
func (m *Multiplexer) SelectTab(id TabID) {
	if _, ok := m.tabs[id]; ok {
		m.activeTab = id
	}
}

// CycleTab moves the active tab forward (delta=1) or backward (delta=-1).
func (m *Multiplexer) CycleTab(delta int) {
	n := len(m.tabOrder)
	if n == 0 {
		return
	}
	idx := 0
	for i, id := range m.tabOrder {
		if id == m.activeTab {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%n + n) % n
	m.activeTab = m.tabOrder[idx]
}

// Split changes the active tab's layout, adding panes wrapping the given
// terminals to fill the new slots beyond slot 0.
func (m *Multiplexer) Split(layout SplitLayout, terms ...*terminal.Terminal) {
	t := m.ActiveTab()
	if t == nil {
		return
	}
	want := slotCount(layout)
	for len(t.Panes) < want && len(terms) > 0 {
		term := terms[0]
		terms = terms[1:]
		pid := m.nextPaneID
		m.nextPaneID++
		m.panes[pid] = &Pane{ID: pid, Terminal: term, Slot: len(t.Panes)}
		t.Panes = append(t.Panes, pid)
	}
	if len(t.Panes) > want {
		for _, pid := range t.Panes[want:] {
			delete(m.panes, pid)
		}
		t.Panes = t.Panes[:want]
	}
	t.Layout = layout
	if len(t.Panes) > 0 {
		found := false
		for _, pid := range t.Panes {
			if pid == t.Focused {
				found = true
				break
			}
		}
		if !found {
			t.Focused = t.Panes[0]
		}
	}
}

// ClosePane removes one pane. If it was its tab's last pane, the whole tab
// closes (CloseTab); otherwise the tab's layout demotes to fit the
// remaining pane count (1 -> Single, 2 -> VerticalSplit, 3-4 -> Quad2x2,
// the latter rendering with one slot left blank — the state diagram in
// §4.5 only names the Quad2x2->Vertical->Single chain for whole-layout
// transitions, so a 3-pane intermediate is this implementation's choice),
// and focus moves to the geometrically closest remaining neighbor: the
// pane that inherits the closed pane's slot index, clamped to the new
// layout's slot count.
func (m *Multiplexer) ClosePane(id PaneID) {
	p, ok := m.panes[id]
	if !ok {
		return
	}
	var tab *Tab
	for _, t := range m.tabs {
		for _, pid := range t.Panes {
			if pid == id {
				tab = t
				break
			}
		}
		if tab != nil {
			break
		}
	}
	if tab == nil {
		return
	}
	if len(tab.Panes) <= 1 {
		m.CloseTab(tab.ID)
		return
	}

	closedSlot := p.Slot
	wasFocused := tab.Focused == id
	remaining := make([]PaneID, 0, len(tab.Panes)-1)
	for _, pid := range tab.Panes {
		if pid != id {
			remaining = append(remaining, pid)
		}
	}
	delete(m.panes, id)

	tab.Layout = layoutForCount(len(remaining))
	for i, pid := range remaining {
		m.panes[pid].Slot = i
	}
	tab.Panes = remaining

	if wasFocused {
		idx := closedSlot
		if idx >= len(remaining) {
			idx = len(remaining) - 1
		}
		if idx < 0 {
			idx = 0
		}
		tab.Focused = remaining[idx]
	}
}

func layoutForCount(n int) SplitLayout {
	switch {
	case n <= 1:
		return Single
	case n == 2:
		return VerticalSplit
	default:
		return Quad2x2
	}
}

func slotCount(l SplitLayout) int {
	switch l {
	case VerticalSplit:
		return 2
	case Quad2x2:
		return 4
	default:
		return 1
	}
}

// CycleFocus moves focus to the next (delta=1) or previous (delta=-1) pane
// within the active tab, wrapping around.
func (m *Multiplexer) CycleFocus(delta int) {
	t := m.ActiveTab()
	if t == nil || len(t.Panes) == 0 {
		return
	}
	n := len(t.Panes)
	idx := 0
	for i, pid := range t.Panes {
		if pid == t.Focused {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%n + n) % n
	t.Focused = t.Panes[idx]
}

// Direction names a spatial focus move for FocusDirection.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// FocusDirection moves focus to the pane spatially adjacent to the current
// one, based on the active tab's layout grid. Layouts with no pane in that
// direction leave focus unchanged.
func (m *Multiplexer) FocusDirection(dir Direction) {
	t := m.ActiveTab()
	if t == nil {
		return
	}
	curSlot := 0
	for _, pid := range t.Panes {
		if pid == t.Focused {
			curSlot = m.panes[pid].Slot
			break
		}
	}
	target := -1
	switch t.Layout {
	case VerticalSplit:
		if dir == DirLeft {
			target = 0
		} else if dir == DirRight {
			target = 1
		}
	case Quad2x2:
		row, col := curSlot/2, curSlot%2
		switch dir {
		case DirUp:
			row = clampInt(row-1, 0, 1)
		case DirDown:
			row = clampInt(row+1, 0, 1)
		case DirLeft:
			col = clampInt(col-1, 0, 1)
		case DirRight:
			col = clampInt(col+1, 0, 1)
		}
		target = row*2 + col
	}
	if target < 0 {
		return
	}
	for _, pid := range t.Panes {
		if m.panes[pid].Slot == target {
			t.Focused = pid
			return
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
