// Package dashboard implements `pinnacle top`, a terminal status view
// over the running compositor's state. It is a normal RPC client that
// polls the state.snapshot request once a second — it never renders client surface contents, only
// compositor diagnostic state (window/tag/output counts and names), so it
// stays well clear of client-side surface rendering.
package dashboard

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pinnacle-wm/pinnacle/internal/rpcserver"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type snapshot struct {
	Outputs []outputRow
	Windows []windowRow
}

type outputRow struct {
	Name           string
	ActiveTags     string
	FocusedWindows int
}

type windowRow struct {
	ID     uint32
	AppID  string
	Mode   string
	Tags   string
	Output string
}

type tickMsg time.Time

type snapshotMsg struct {
	snap snapshot
	err  error
}

// wireSnapshot mirrors the command surface's state.snapshot response
// shape (cmd.snapshot): field names must line up for the JSON round trip
// through the RPC transport's generic any-typed Payload.
type wireSnapshot struct {
	Outputs []wireOutput
	Windows []wireWindow
}

type wireOutput struct {
	Name           string
	ActiveTags     []string
	FocusedWindows int
}

type wireWindow struct {
	ID     uint32
	AppID  string
	Mode   string
	Tags   []uint32
	Output string
}

// Model is the bubbletea model driving `pinnacle top`.
type Model struct {
	client   *rpcserver.Client
	outputs  table.Model
	windows  table.Model
	lastErr  error
	interval time.Duration
}

// New builds a dashboard Model talking to the compositor over client.
func New(client *rpcserver.Client) Model {
	outputs := table.New(
		table.WithColumns([]table.Column{
			{Title: "Output", Width: 12},
			{Title: "Active Tags", Width: 20},
			{Title: "Windows", Width: 8},
		}),
		table.WithFocused(false),
	)
	windows := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "App", Width: 20},
			{Title: "Mode", Width: 12},
			{Title: "Tags", Width: 16},
			{Title: "Output", Width: 10},
		}),
		table.WithFocused(false),
	)
	return Model{client: client, outputs: outputs, windows: windows, interval: time.Second}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), tick(m.interval))
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) fetch() tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.Call("state.snapshot", nil)
		if err != nil {
			return snapshotMsg{err: err}
		}
		if resp.Err != nil {
			return snapshotMsg{err: fmt.Errorf("%s: %s", resp.Err.Kind, resp.Err.Message)}
		}
		// resp.Payload round-tripped through JSON as a generic map; re-encode
		// and decode it into the concrete wire shape rather than the table
		// row shape, since ActiveTags/Tags arrive as arrays on the wire and
		// only get flattened to display strings in toSnapshot.
		b, err := json.Marshal(resp.Payload)
		if err != nil {
			return snapshotMsg{err: err}
		}
		var wire wireSnapshot
		if err := json.Unmarshal(b, &wire); err != nil {
			return snapshotMsg{err: err}
		}
		return snapshotMsg{snap: toSnapshot(wire)}
	}
}

// toSnapshot flattens a wireSnapshot's tag-ID arrays into the
// comma-joined display strings the tables render.
func toSnapshot(w wireSnapshot) snapshot {
	s := snapshot{
		Outputs: make([]outputRow, 0, len(w.Outputs)),
		Windows: make([]windowRow, 0, len(w.Windows)),
	}
	for _, o := range w.Outputs {
		s.Outputs = append(s.Outputs, outputRow{
			Name:           o.Name,
			ActiveTags:     strings.Join(o.ActiveTags, ","),
			FocusedWindows: o.FocusedWindows,
		})
	}
	for _, win := range w.Windows {
		tags := make([]string, 0, len(win.Tags))
		for _, t := range win.Tags {
			tags = append(tags, strconv.FormatUint(uint64(t), 10))
		}
		s.Windows = append(s.Windows, windowRow{
			ID:     win.ID,
			AppID:  win.AppID,
			Mode:   win.Mode,
			Tags:   strings.Join(tags, ","),
			Output: win.Output,
		})
	}
	return s
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		return m, tea.Batch(m.fetch(), tick(m.interval))
	case snapshotMsg:
		m.lastErr = msg.err
		if msg.err == nil {
			m.applySnapshot(msg.snap)
		}
	}
	return m, nil
}

func (m *Model) applySnapshot(s snapshot) {
	outRows := make([]table.Row, 0, len(s.Outputs))
	for _, o := range s.Outputs {
		outRows = append(outRows, table.Row{o.Name, o.ActiveTags, fmt.Sprintf("%d", o.FocusedWindows)})
	}
	m.outputs.SetRows(outRows)

	winRows := make([]table.Row, 0, len(s.Windows))
	for _, w := range s.Windows {
		winRows = append(winRows, table.Row{fmt.Sprintf("%d", w.ID), w.AppID, w.Mode, w.Tags, w.Output})
	}
	m.windows.SetRows(winRows)
}

func (m Model) View() string {
	var b string
	b += headerStyle.Render("pinnacle top") + "\n\n"
	b += headerStyle.Render("Outputs") + "\n" + m.outputs.View() + "\n\n"
	b += headerStyle.Render("Windows") + "\n" + m.windows.View() + "\n"
	if m.lastErr != nil {
		b += "\n" + errorStyle.Render(fmt.Sprintf("last refresh failed: %v", m.lastErr))
	}
	b += "\n\nq to quit"
	return b
}
