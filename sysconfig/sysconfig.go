// Package sysconfig is the adapter between the system-wide configuration
// protocol and the components that own the configured values. Components
// register get/set callbacks per block; the protocol layer addresses them
// by block, section and index.
package sysconfig

// Status is the two-valued protocol result for a read or write.
type Status uint8

const (
	StatusAck Status = iota
	StatusErrorRead
	StatusErrorWrite
)

func (s Status) String() string {
	switch s {
	case StatusAck:
		return "ack"
	case StatusErrorRead:
		return "read error"
	case StatusErrorWrite:
		return "write error"
	}
	return "unknown"
}

// Block identifies a configurable component.
type Block int

const (
	BlockButtons Block = iota
	BlockGlobal
)

// GetFunc reads one value for a block.
type GetFunc func(section, index int) (uint16, Status)

// SetFunc writes one value for a block.
type SetFunc func(section, index int, value uint16) Status

type blockHandlers struct {
	get GetFunc
	set SetFunc
}

// Handler routes protocol requests to registered blocks.
type Handler struct {
	blocks map[Block]blockHandlers
}

func NewHandler() *Handler {
	return &Handler{blocks: make(map[Block]blockHandlers)}
}

// Register installs the callbacks for a block, replacing any previous
// registration.
func (h *Handler) Register(block Block, get GetFunc, set SetFunc) {
	h.blocks[block] = blockHandlers{get: get, set: set}
}

// Get reads a value through the block's registered callback.
func (h *Handler) Get(block Block, section, index int) (uint16, Status) {
	bh, ok := h.blocks[block]
	if !ok || bh.get == nil {
		return 0, StatusErrorRead
	}
	return bh.get(section, index)
}

// Set writes a value through the block's registered callback.
func (h *Handler) Set(block Block, section, index int, value uint16) Status {
	bh, ok := h.blocks[block]
	if !ok || bh.set == nil {
		return StatusErrorWrite
	}
	return bh.set(section, index, value)
}
