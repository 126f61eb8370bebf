package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/allbin/go-ledmatrix"
	"github.com/allbin/go-ledmatrix/internal/tui/components"
	"github.com/allbin/go-ledmatrix/internal/tui/keys"
	"github.com/allbin/go-ledmatrix/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
)

// BrightnessStep is the change applied by one brightness key press.
const BrightnessStep = 16

// Device is the part of a matrix handle the control UI drives.
type Device interface {
	String() string
	Names() []string
	Brightness() ([]byte, error)
	SetBrightness(level byte) error
	Percent(percent uint8) error
	ShowPattern(p ledmatrix.Pattern) error
	Sleep() ([]bool, error)
	SetSleep(sleep bool) error
	Animate() ([]bool, error)
	SetAnimate(animate bool) error
}

type stateMsg struct {
	levels  []byte
	sleep   []bool
	animate []bool
	err     error
}

type doneMsg struct {
	action string
	err    error
}

const (
	columnKeyDevice     = "device"
	columnKeyBrightness = "brightness"
	columnKeySleep      = "sleep"
	columnKeyAnimate    = "animate"
)

// Control is the bubbletea model behind `mctl control`. Device I/O runs
// one command at a time; keys pressed while a command is in flight are
// dropped.
type Control struct {
	dev    Device
	names  []string
	keys   keys.ControlKeys
	help   help.Model
	status *components.StatusBar

	levels  []byte
	sleep   []bool
	animate []bool

	patterns []ledmatrix.Pattern
	pattern  int

	busy     bool
	width    int
	quitting bool
}

func NewControl(dev Device, backend string) Control {
	return Control{
		dev:      dev,
		names:    dev.Names(),
		keys:     keys.NewControlKeys(),
		help:     help.New(),
		status:   components.NewStatusBar(dev.String(), backend),
		patterns: ledmatrix.Patterns(),
		pattern:  -1,
		busy:     true,
	}
}

func (m Control) Init() tea.Cmd {
	return readState(m.dev)
}

func readState(dev Device) tea.Cmd {
	return func() tea.Msg {
		levels, err := dev.Brightness()
		if err != nil {
			return stateMsg{err: err}
		}
		sleep, err := dev.Sleep()
		if err != nil {
			return stateMsg{levels: levels, err: err}
		}
		animate, err := dev.Animate()
		return stateMsg{levels: levels, sleep: sleep, animate: animate, err: err}
	}
}

func run(action string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return doneMsg{action: action, err: fn()}
	}
}

func (m Control) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.status.SetWidth(msg.Width)
		return m, nil

	case stateMsg:
		m.busy = false
		if msg.levels != nil {
			m.levels = msg.levels
		}
		if msg.sleep != nil {
			m.sleep = msg.sleep
		}
		if msg.animate != nil {
			m.animate = msg.animate
		}
		if msg.err != nil {
			m.status.SetDone("Reading state", msg.err)
		} else if m.status.Err() == nil {
			m.status.SetDone("Ready", nil)
		}
		return m, nil

	case doneMsg:
		if msg.err != nil {
			m.busy = false
			m.status.SetDone(msg.action, msg.err)
			return m, nil
		}
		m.status.SetDone(msg.action, nil)
		return m, readState(m.dev)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Control) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	dev := m.dev
	switch {
	case key.Matches(msg, m.keys.BrightnessUp):
		level := stepBrightness(m.level(), BrightnessStep)
		return m.start(fmt.Sprintf("Brightness %d", level), func() error { return dev.SetBrightness(level) })

	case key.Matches(msg, m.keys.BrightnessDown):
		level := stepBrightness(m.level(), -BrightnessStep)
		return m.start(fmt.Sprintf("Brightness %d", level), func() error { return dev.SetBrightness(level) })

	case key.Matches(msg, m.keys.Percent):
		digit, err := strconv.Atoi(msg.String())
		if err != nil {
			return m, nil
		}
		percent := uint8(digit * 10)
		return m.start(fmt.Sprintf("Percent %d%%", percent), func() error { return dev.Percent(percent) })

	case key.Matches(msg, m.keys.NextPattern):
		m.pattern = (m.pattern + 1) % len(m.patterns)
		p := m.patterns[m.pattern]
		return m.start("Pattern "+p.String(), func() error { return dev.ShowPattern(p) })

	case key.Matches(msg, m.keys.PrevPattern):
		if m.pattern <= 0 {
			m.pattern = len(m.patterns)
		}
		m.pattern--
		p := m.patterns[m.pattern]
		return m.start("Pattern "+p.String(), func() error { return dev.ShowPattern(p) })

	case key.Matches(msg, m.keys.Sleep):
		on := !all(m.sleep)
		return m.start("Sleep "+onOff(on), func() error { return dev.SetSleep(on) })

	case key.Matches(msg, m.keys.Animate):
		on := !all(m.animate)
		return m.start("Animate "+onOff(on), func() error { return dev.SetAnimate(on) })

	case key.Matches(msg, m.keys.Refresh):
		m.busy = true
		m.status.SetBusy("Reading device state...")
		return m, readState(dev)
	}
	return m, nil
}

func (m Control) start(action string, fn func() error) (tea.Model, tea.Cmd) {
	m.busy = true
	m.status.SetBusy(action + "...")
	return m, run(action, fn)
}

// level is the brightness of the first device, the reference for steps.
func (m Control) level() int {
	if len(m.levels) == 0 {
		return 0
	}
	return int(m.levels[0])
}

func stepBrightness(level, step int) byte {
	level += step
	if level < 0 {
		return 0
	}
	if level > 255 {
		return 255
	}
	return byte(level)
}

func all(states []bool) bool {
	if len(states) == 0 {
		return false
	}
	for _, s := range states {
		if !s {
			return false
		}
	}
	return true
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func (m Control) deviceTable() table.Model {
	columns := []table.Column{
		table.NewColumn(columnKeyDevice, "Device", 24),
		table.NewColumn(columnKeyBrightness, "Brightness", 12),
		table.NewColumn(columnKeySleep, "Sleep", 8),
		table.NewColumn(columnKeyAnimate, "Animate", 9),
	}

	rows := make([]table.Row, 0, len(m.names))
	for i, name := range m.names {
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyDevice:     name,
			columnKeyBrightness: levelAt(m.levels, i),
			columnKeySleep:      toggleAt(m.sleep, i),
			columnKeyAnimate:    toggleAt(m.animate, i),
		}))
	}

	return table.New(columns).
		WithRows(rows).
		BorderRounded().
		WithBaseStyle(styles.TableBaseStyle).
		HeaderStyle(styles.TableHeaderStyle)
}

func levelAt(levels []byte, i int) string {
	if i >= len(levels) {
		return "?"
	}
	return strconv.Itoa(int(levels[i]))
}

func toggleAt(states []bool, i int) string {
	if i >= len(states) {
		return "?"
	}
	return styles.Toggle(states[i])
}

func (m Control) View() string {
	if m.quitting {
		return ""
	}

	pattern := "none"
	if m.pattern >= 0 {
		pattern = m.patterns[m.pattern].String()
	}

	var b strings.Builder
	b.WriteString(m.status.View())
	b.WriteString("\n\n")
	b.WriteString(m.deviceTable().View())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left,
		styles.TitleStyle.Render("Pattern"),
		" ",
		styles.InfoStyle.Render(pattern),
	))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Busy reports whether a device command is in flight.
func (m Control) Busy() bool {
	return m.busy
}

// Status returns the status bar message.
func (m Control) Status() string {
	return m.status.Status()
}
