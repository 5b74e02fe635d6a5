package midi

import (
	"fmt"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Sender writes outbound events to a MIDI output port.
type Sender struct {
	port drivers.Out
	send func(gomidi.Message) error
}

// NewSender opens the named output port. Matching is case-insensitive
// substring, same as port detection elsewhere.
func NewSender(portName string) (*Sender, error) {
	port := findOutPort(portName)
	if port == nil {
		return nil, fmt.Errorf("output port not found: %s", portName)
	}

	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", port.String(), err)
	}

	return &Sender{port: port, send: send}, nil
}

// PortName returns the resolved name of the open port.
func (s *Sender) PortName() string {
	return s.port.String()
}

// Send encodes and writes a single outbound event. MessageNone events are
// silently dropped.
func (s *Sender) Send(t MessageType, channel uint8, index, value uint16, sysEx []byte) error {
	msg, ok := Encode(t, channel, index, value, sysEx)
	if !ok {
		return nil
	}
	return s.send(msg)
}

// ListPorts returns the names of all MIDI ports, inputs and outputs.
// Port enumeration runs in a goroutine with a timeout since some backends
// can hang during discovery.
func ListPorts() (ins, outs []string, err error) {
	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}

	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		for _, p := range r.ins {
			ins = append(ins, p.String())
		}
		for _, p := range r.outs {
			outs = append(outs, p.String())
		}
		return ins, outs, nil
	case <-time.After(3 * time.Second):
		return nil, nil, fmt.Errorf("port enumeration timed out")
	}
}

func findOutPort(name string) drivers.Out {
	want := strings.ToLower(name)
	for _, p := range gomidi.GetOutPorts() {
		if strings.Contains(strings.ToLower(p.String()), want) {
			return p
		}
	}
	return nil
}

func findInPort(name string) drivers.In {
	want := strings.ToLower(name)
	for _, p := range gomidi.GetInPorts() {
		if strings.Contains(strings.ToLower(p.String()), want) {
			return p
		}
	}
	return nil
}
