package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-deck/button"
	"go-deck/global"
	"go-deck/hardware"
	"go-deck/messaging"
	"go-deck/midi"
)

const eventLogSize = 14

type Model struct {
	Engine   *button.Buttons
	Hardware *hardware.Virtual
	Bus      *messaging.Dispatcher
	Program  *global.MidiProgram
	BPM      *global.BPM

	layout   button.Layout
	keys     string // one rune per digital input
	readings <-chan midi.ButtonReading
	events   []string
	quitting bool
}

// ReadingMsg carries a virtual button edge from an external MIDI keyboard.
type ReadingMsg midi.ButtonReading

// NewModel builds the monitor and subscribes to outbound bus traffic so
// every emitted event shows up in the log pane. The engine runs inside
// Update, so appends here stay on the single logical thread.
func NewModel(engine *button.Buttons, hw *hardware.Virtual, bus *messaging.Dispatcher,
	program *global.MidiProgram, bpm *global.BPM,
	layout button.Layout, keys string, readings <-chan midi.ButtonReading) *Model {

	m := &Model{
		Engine:   engine,
		Hardware: hw,
		Bus:      bus,
		Program:  program,
		BPM:      bpm,
		layout:   layout,
		keys:     keys,
		readings: readings,
	}

	bus.Listen(messaging.EventButton, func(e messaging.Event) {
		m.logEvent("out", e)
	})
	bus.Listen(messaging.EventSystem, func(e messaging.Event) {
		if e.System == messaging.SystemPresetChangeRequest {
			m.log(fmt.Sprintf("sys  preset change request (button %d)", e.ComponentIndex))
		}
	})

	return m
}

func (m *Model) logEvent(tag string, e messaging.Event) {
	if e.Message == midi.MessageSysEx {
		m.log(fmt.Sprintf("%-4s %s % X", tag, e.Message, e.SysEx))
		return
	}
	m.log(fmt.Sprintf("%-4s %-17s ch:%02d idx:%3d val:%3d", tag, e.Message, e.Channel+1, e.Index, e.Value))
}

func (m *Model) log(line string) {
	m.events = append(m.events, line)
	if len(m.events) > eventLogSize {
		m.events = m.events[len(m.events)-eventLogSize:]
	}
}

func listenForReadings(readings <-chan midi.ButtonReading) tea.Cmd {
	if readings == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-readings
		if !ok {
			return nil
		}
		return ReadingMsg(r)
	}
}

func (m *Model) Init() tea.Cmd {
	return listenForReadings(m.readings)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "r":
			m.Bus.Notify(messaging.EventSystem, messaging.Event{System: messaging.SystemForceIORefresh})
			m.log("sys  force refresh")

		case "1", "2", "3", "4", "5", "6", "7", "8":
			entry := int(key[0] - '1')
			note := uint16(60 + entry)
			if err := m.Engine.CaptureFingeringEntry(entry, note); err != nil {
				m.log(fmt.Sprintf("err  %v", err))
			} else {
				m.log(fmt.Sprintf("cap  fingering entry %d -> note %d", entry, note))
			}

		default:
			if idx := strings.IndexAny(m.keys, key); idx >= 0 && len(key) == 1 && idx < m.layout.DigitalInputs {
				// terminals have no key-up, so keys toggle the reading
				m.Hardware.Toggle(idx)
				m.Engine.Update(idx, false)
			}
		}

	case ReadingMsg:
		m.Hardware.Push(msg.Index, msg.Pressed)
		m.Engine.Update(msg.Index, false)
		return m, listenForReadings(m.readings)
	}

	return m, nil
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	onStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	latchStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	header := headerStyle.Render(fmt.Sprintf("go-deck  bpm:%3d  pc-offset:%3d", m.BPM.Value(), m.Program.Offset()))

	// Digital input rows: key legend, pressed bits, latch bits.
	var legend, pressed, latched strings.Builder
	for i := 0; i < m.layout.DigitalInputs; i++ {
		label := "?"
		if i < len(m.keys) {
			label = string(m.keys[i])
		}
		legend.WriteString(" " + label + " ")

		if m.Engine.State(i) {
			pressed.WriteString(onStyle.Render(" # "))
		} else {
			pressed.WriteString(dimStyle.Render(" . "))
		}

		if m.Engine.LatchingState(i) {
			latched.WriteString(latchStyle.Render(" # "))
		} else {
			latched.WriteString(dimStyle.Render(" . "))
		}
	}

	log := dimStyle.Render("(no events yet)")
	if len(m.events) > 0 {
		log = strings.Join(m.events, "\n")
	}

	help := dimStyle.Render("keys:toggle inputs  1-8:capture fingering  r:force refresh  q:quit")

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render("key   ") + legend.String() + "\n")
	out.WriteString(dimStyle.Render("state ") + pressed.String() + "\n")
	out.WriteString(dimStyle.Render("latch ") + latched.String() + "\n\n")
	out.WriteString(log)
	out.WriteString("\n\n")
	out.WriteString(help)

	return out.String()
}
