package button

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-deck/sysconfig"
)

func newSysConfigEnv(t *testing.T) (*testEnv, *sysconfig.Handler) {
	t.Helper()
	env := newTestEnv(t, defaultLayout(), false)
	h := sysconfig.NewHandler()
	env.engine.RegisterSysConfig(h)
	return env, h
}

func TestSysConfigReadWriteRoundTrip(t *testing.T) {
	_, h := newSysConfigEnv(t)

	status := h.Set(sysconfig.BlockButtons, SysSectionMIDIID, 3, 64)
	require.Equal(t, sysconfig.StatusAck, status)

	value, status := h.Get(sysconfig.BlockButtons, SysSectionMIDIID, 3)
	require.Equal(t, sysconfig.StatusAck, status)
	assert.Equal(t, uint16(64), value)
}

func TestSysConfigRejectsUnknownSection(t *testing.T) {
	_, h := newSysConfigEnv(t)

	_, status := h.Get(sysconfig.BlockButtons, sysSectionCount, 0)
	assert.Equal(t, sysconfig.StatusErrorRead, status)

	status = h.Set(sysconfig.BlockButtons, -1, 0, 0)
	assert.Equal(t, sysconfig.StatusErrorWrite, status)
}

func TestSysConfigRejectsOutOfRangeIndex(t *testing.T) {
	env, h := newSysConfigEnv(t)

	_, status := h.Get(sysconfig.BlockButtons, SysSectionType, env.engine.layout.Size())
	assert.Equal(t, sysconfig.StatusErrorRead, status)

	status = h.Set(sysconfig.BlockButtons, SysSectionType, env.engine.layout.Size(), 1)
	assert.Equal(t, sysconfig.StatusErrorWrite, status)
}

func TestSysConfigTypeRewriteResetsInputState(t *testing.T) {
	env, h := newSysConfigEnv(t)
	env.configure(t, 0, TypeLatching, KindNote, 0, 60, 100)

	env.press(t, 0)
	require.True(t, env.engine.State(0))
	require.True(t, env.engine.LatchingState(0))

	status := h.Set(sysconfig.BlockButtons, SysSectionType, 0, uint16(TypeMomentary))
	require.Equal(t, sysconfig.StatusAck, status)

	assert.False(t, env.engine.State(0))
	assert.False(t, env.engine.LatchingState(0))
}

func TestSysConfigMessageTypeRewriteResetsInputState(t *testing.T) {
	env, h := newSysConfigEnv(t)
	env.configure(t, 0, TypeMomentary, KindNote, 0, 60, 100)

	env.press(t, 0)
	require.True(t, env.engine.State(0))

	status := h.Set(sysconfig.BlockButtons, SysSectionMessageType, 0, uint16(KindControlChange))
	require.Equal(t, sysconfig.StatusAck, status)

	assert.False(t, env.engine.State(0))
}

func TestSysConfigValueWriteKeepsInputState(t *testing.T) {
	env, h := newSysConfigEnv(t)
	env.configure(t, 0, TypeMomentary, KindNote, 0, 60, 100)

	env.press(t, 0)
	require.True(t, env.engine.State(0))

	status := h.Set(sysconfig.BlockButtons, SysSectionValue, 0, 42)
	require.Equal(t, sysconfig.StatusAck, status)

	assert.True(t, env.engine.State(0), "value writes do not reset state")
}
