package sysconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnregisteredBlockFails(t *testing.T) {
	h := NewHandler()

	_, status := h.Get(BlockButtons, 0, 0)
	assert.Equal(t, StatusErrorRead, status)

	status = h.Set(BlockButtons, 0, 0, 1)
	assert.Equal(t, StatusErrorWrite, status)
}

func TestRegisteredCallbacksReceiveAddress(t *testing.T) {
	h := NewHandler()

	var gotSection, gotIndex int
	var gotValue uint16
	h.Register(BlockGlobal,
		func(section, index int) (uint16, Status) {
			gotSection, gotIndex = section, index
			return 42, StatusAck
		},
		func(section, index int, value uint16) Status {
			gotSection, gotIndex, gotValue = section, index, value
			return StatusAck
		})

	value, status := h.Get(BlockGlobal, 1, 2)
	assert.Equal(t, StatusAck, status)
	assert.Equal(t, uint16(42), value)
	assert.Equal(t, 1, gotSection)
	assert.Equal(t, 2, gotIndex)

	status = h.Set(BlockGlobal, 3, 4, 7)
	assert.Equal(t, StatusAck, status)
	assert.Equal(t, 3, gotSection)
	assert.Equal(t, 4, gotIndex)
	assert.Equal(t, uint16(7), gotValue)
}

func TestReRegisterReplacesCallbacks(t *testing.T) {
	h := NewHandler()

	h.Register(BlockButtons,
		func(int, int) (uint16, Status) { return 1, StatusAck },
		func(int, int, uint16) Status { return StatusAck })
	h.Register(BlockButtons,
		func(int, int) (uint16, Status) { return 2, StatusAck },
		func(int, int, uint16) Status { return StatusAck })

	value, status := h.Get(BlockButtons, 0, 0)
	assert.Equal(t, StatusAck, status)
	assert.Equal(t, uint16(2), value)
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "ack", StatusAck.String())
	assert.Equal(t, "read error", StatusErrorRead.String())
	assert.Equal(t, "write error", StatusErrorWrite.String())
	assert.Equal(t, "unknown", Status(99).String())
}
