package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-deck/button"
	"go-deck/config"
	"go-deck/database"
	"go-deck/debug"
	"go-deck/global"
	"go-deck/hardware"
	"go-deck/messaging"
	"go-deck/midi"
	"go-deck/sysconfig"
	"go-deck/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	debug.Enable()
	defer debug.Disable()

	layout := button.Layout{
		DigitalInputs:     cfg.Layout.DigitalInputs,
		AnalogInputs:      cfg.Layout.AnalogInputs,
		TouchscreenInputs: cfg.Layout.TouchscreenInputs,
	}

	db := database.New(database.Sizes{
		Buttons:        layout.Size(),
		Encoders:       layout.DigitalInputs / 2,
		FingeringTable: button.FingeringTableEntries,
	})

	dbPath, err := cfg.DatabasePath()
	if err == nil {
		if err := db.Load(dbPath); err != nil && !os.IsNotExist(err) {
			debug.Log("database", "load failed: %v", err)
		}
	}

	bus := messaging.NewDispatcher()
	program := global.NewMidiProgram()
	bpm := global.NewBPM()
	hw := hardware.NewVirtual(layout.DigitalInputs)

	engine, err := button.New(button.Config{
		Layout:    layout,
		Hardware:  hw,
		Filter:    hardware.PassFilter{},
		Store:     db,
		Bus:       bus,
		Program:   program,
		BPM:       bpm,
		Chromatic: cfg.Chromatic,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	handler := sysconfig.NewHandler()
	engine.RegisterSysConfig(handler)

	// Optional real MIDI output: forward every outbound button event.
	if cfg.MIDI.OutPort != "" {
		sender, err := midi.NewSender(cfg.MIDI.OutPort)
		if err != nil {
			debug.Log("midi", "output disabled: %v", err)
		} else {
			debug.Log("midi", "output: %s", sender.PortName())
			bus.Listen(messaging.EventButton, func(e messaging.Event) {
				if err := sender.Send(e.Message, e.Channel, e.Index, e.Value, e.SysEx); err != nil {
					debug.Log("midi", "send failed: %v", err)
				}
			})
		}
	}

	// Optional real MIDI input: a keyboard drives the virtual buttons.
	var readings chan midi.ButtonReading
	if cfg.MIDI.InPort != "" {
		readings = make(chan midi.ButtonReading, 32)
		stop, err := midi.ListenButtons(cfg.MIDI.InPort, cfg.MIDI.BaseNote, layout.DigitalInputs, func(r midi.ButtonReading) {
			select {
			case readings <- r:
			default:
			}
		})
		if err != nil {
			debug.Log("midi", "input disabled: %v", err)
			readings = nil
		} else {
			defer stop()
		}
	}

	m := tui.NewModel(engine, hw, bus, program, bpm, layout, cfg.Keys, readings)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if dbPath != "" {
		if err := db.Save(dbPath); err != nil {
			debug.Log("database", "save failed: %v", err)
		}
	}
	if err := cfg.Save(); err != nil {
		debug.Log("config", "save failed: %v", err)
	}
}
