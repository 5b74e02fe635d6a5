package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-deck/midi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "note":
		sendNote()
	case "watch":
		watchPort()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("go-deck MIDI port test")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                 - List all MIDI ports")
	fmt.Println("  note <port> <note>   - Send a short note to an output port")
	fmt.Println("  watch <port>         - Print incoming messages from an input port")
}

func listPorts() {
	ins, outs, err := midi.ListPorts()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println("=== MIDI Input Ports ===")
	for i, name := range ins {
		fmt.Printf("  %d: %s\n", i, name)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, name := range outs {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func sendNote() {
	if len(os.Args) < 4 {
		usage()
		return
	}

	note, err := strconv.Atoi(os.Args[3])
	if err != nil || note < 0 || note > 127 {
		fmt.Println("note must be 0-127")
		return
	}

	sender, err := midi.NewSender(os.Args[2])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Sending note %d to %s\n", note, sender.PortName())

	if err := sender.Send(midi.MessageNoteOn, 0, uint16(note), 100, nil); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	time.Sleep(300 * time.Millisecond)
	if err := sender.Send(midi.MessageNoteOff, 0, uint16(note), 0, nil); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println("Done!")
}

func watchPort() {
	if len(os.Args) < 3 {
		usage()
		return
	}

	stop, err := midi.ListenButtons(os.Args[2], 0, 128, func(r midi.ButtonReading) {
		state := "released"
		if r.Pressed {
			state = "pressed"
		}
		fmt.Printf("[%s] button %d %s\n", time.Now().Format("15:04:05.000"), r.Index, state)
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer stop()
	defer gomidi.CloseDriver()

	fmt.Println("Watching... Ctrl+C to exit.")
	select {}
}
