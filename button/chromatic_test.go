package button

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-deck/database"
	"go-deck/midi"
)

func (env *testEnv) setSetting(t *testing.T, s database.Setting, value uint16) {
	t.Helper()
	require.True(t, env.db.Update(database.SectionSystemSettings, int(s), value))
}

// newChromaticEnv enables the strategy at runtime with neutral transpose
// and a known base note.
func newChromaticEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t, defaultLayout(), true)
	env.setSetting(t, database.SettingSaxChromaticEnable, 1)
	env.setSetting(t, database.SettingSaxChromaticBaseNote, 60)
	env.setSetting(t, database.SettingSaxChromaticTranspose, 24)
	return env
}

func TestChromaticLegacyHighestKeyPriority(t *testing.T) {
	env := newChromaticEnv(t)

	env.press(t, 2)
	require.Len(t, env.rec.buttons, 1)
	assert.Equal(t, midi.MessageNoteOn, env.rec.buttons[0].Message)
	assert.Equal(t, uint16(62), env.rec.buttons[0].Index)
	assert.Equal(t, uint16(127), env.rec.buttons[0].Value)

	// higher key takes over
	env.press(t, 4)
	require.Len(t, env.rec.buttons, 3)
	assert.Equal(t, midi.MessageNoteOff, env.rec.buttons[1].Message)
	assert.Equal(t, uint16(62), env.rec.buttons[1].Index)
	assert.Equal(t, midi.MessageNoteOn, env.rec.buttons[2].Message)
	assert.Equal(t, uint16(64), env.rec.buttons[2].Index)

	// releasing it falls back to the still-held lower key
	env.release(t, 4)
	require.Len(t, env.rec.buttons, 5)
	assert.Equal(t, midi.MessageNoteOff, env.rec.buttons[3].Message)
	assert.Equal(t, uint16(64), env.rec.buttons[3].Index)
	assert.Equal(t, midi.MessageNoteOn, env.rec.buttons[4].Message)
	assert.Equal(t, uint16(62), env.rec.buttons[4].Index)

	env.release(t, 2)
	require.Len(t, env.rec.buttons, 6)
	assert.Equal(t, midi.MessageNoteOff, env.rec.buttons[5].Message)
	assert.Equal(t, uint16(62), env.rec.buttons[5].Index)
}

func TestChromaticLegacyKeyRemap(t *testing.T) {
	env := newChromaticEnv(t)

	// stored remap is one-based: 4 maps key 2 to key 3
	require.True(t, env.db.Update(database.SectionButtonSaxKeyMap, 2, 4))

	env.press(t, 2)
	require.Len(t, env.rec.buttons, 1)
	assert.Equal(t, uint16(63), env.rec.buttons[0].Index)
}

func TestChromaticLegacyOutOfRangeRemapFallsBackToIdentity(t *testing.T) {
	env := newChromaticEnv(t)

	require.True(t, env.db.Update(database.SectionButtonSaxKeyMap, 1, 200))

	env.press(t, 1)
	require.Len(t, env.rec.buttons, 1)
	assert.Equal(t, uint16(61), env.rec.buttons[0].Index)
}

func TestChromaticTableModeScoring(t *testing.T) {
	env := newChromaticEnv(t)

	// entry 0: keys {0,1} -> 70, entry 1: keys {0,1,2} -> 72
	require.True(t, env.db.Update(database.SectionSaxFingeringMaskLo14, 0, 0b011))
	require.True(t, env.db.Update(database.SectionSaxFingeringMaskHi10Enable, 0, fingeringEnableMask))
	require.True(t, env.db.Update(database.SectionSaxFingeringNote, 0, 70))
	require.True(t, env.db.Update(database.SectionSaxFingeringMaskLo14, 1, 0b111))
	require.True(t, env.db.Update(database.SectionSaxFingeringMaskHi10Enable, 1, fingeringEnableMask))
	require.True(t, env.db.Update(database.SectionSaxFingeringNote, 1, 72))

	// one key alone matches no entry: silence
	env.press(t, 0)
	require.Empty(t, env.rec.buttons)

	env.press(t, 1)
	require.Len(t, env.rec.buttons, 1)
	assert.Equal(t, midi.MessageNoteOn, env.rec.buttons[0].Message)
	assert.Equal(t, uint16(70), env.rec.buttons[0].Index)

	// both entries match, the larger subset wins
	env.press(t, 2)
	require.Len(t, env.rec.buttons, 3)
	assert.Equal(t, midi.MessageNoteOff, env.rec.buttons[1].Message)
	assert.Equal(t, uint16(70), env.rec.buttons[1].Index)
	assert.Equal(t, midi.MessageNoteOn, env.rec.buttons[2].Message)
	assert.Equal(t, uint16(72), env.rec.buttons[2].Index)

	// all keys up silences the stream
	env.release(t, 0)
	env.release(t, 1)
	env.release(t, 2)
	last := env.rec.buttons[len(env.rec.buttons)-1]
	assert.Equal(t, midi.MessageNoteOff, last.Message)
}

func TestChromaticTableTieKeepsEarliestEntry(t *testing.T) {
	env := newChromaticEnv(t)

	require.True(t, env.db.Update(database.SectionSaxFingeringMaskLo14, 0, 0b1))
	require.True(t, env.db.Update(database.SectionSaxFingeringMaskHi10Enable, 0, fingeringEnableMask))
	require.True(t, env.db.Update(database.SectionSaxFingeringNote, 0, 80))
	require.True(t, env.db.Update(database.SectionSaxFingeringMaskLo14, 1, 0b1))
	require.True(t, env.db.Update(database.SectionSaxFingeringMaskHi10Enable, 1, fingeringEnableMask))
	require.True(t, env.db.Update(database.SectionSaxFingeringNote, 1, 90))

	env.press(t, 0)
	require.Len(t, env.rec.buttons, 1)
	assert.Equal(t, uint16(80), env.rec.buttons[0].Index)
}

func TestChromaticTableSkipsEntryWithUnsetNote(t *testing.T) {
	env := newChromaticEnv(t)

	// mask enabled but note never captured
	require.True(t, env.db.Update(database.SectionSaxFingeringMaskLo14, 0, 0b1))
	require.True(t, env.db.Update(database.SectionSaxFingeringMaskHi10Enable, 0, fingeringEnableMask))

	env.press(t, 0)
	require.Empty(t, env.rec.buttons)
}

func TestChromaticInvertedInputs(t *testing.T) {
	env := newChromaticEnv(t)
	env.setSetting(t, database.SettingSaxChromaticInputInvert, 1)

	// with key 0 held, every other key reads as pressed after inversion,
	// so the highest key wins
	env.press(t, 0)
	require.Len(t, env.rec.buttons, 1)
	assert.Equal(t, uint16(67), env.rec.buttons[0].Index)
}

func TestChromaticTransposeClampsNote(t *testing.T) {
	env := newChromaticEnv(t)
	env.setSetting(t, database.SettingSaxChromaticBaseNote, 120)
	env.setSetting(t, database.SettingSaxChromaticTranspose, 48) // +24

	env.press(t, 7)
	require.Len(t, env.rec.buttons, 1)
	assert.Equal(t, uint16(127), env.rec.buttons[0].Index)
}

func TestChromaticChannelFromGlobalSetting(t *testing.T) {
	env := newChromaticEnv(t)
	env.setSetting(t, database.SettingGlobalMIDIChannel, 5)

	env.press(t, 0)
	require.Len(t, env.rec.buttons, 1)
	assert.Equal(t, uint8(4), env.rec.buttons[0].Channel)
}

func TestChromaticChannelFallback(t *testing.T) {
	env := newChromaticEnv(t)
	env.setSetting(t, database.SettingGlobalMIDIChannel, 20)

	env.press(t, 0)
	require.Len(t, env.rec.buttons, 1)
	assert.Equal(t, uint8(0), env.rec.buttons[0].Channel)
}

func TestCaptureFingeringEntryRoundTrip(t *testing.T) {
	env := newTestEnv(t, defaultLayout(), true)

	// hold keys 0 and 2 while the strategy is runtime-disabled, then
	// capture them into entry 1
	env.configure(t, 0, TypeMomentary, KindNone, 0, 0, 0)
	env.configure(t, 2, TypeMomentary, KindNone, 0, 0, 0)
	env.press(t, 0)
	env.press(t, 2)

	require.NoError(t, env.engine.CaptureFingeringEntry(1, 70))

	lo, ok := env.db.Read(database.SectionSaxFingeringMaskLo14, 1)
	require.True(t, ok)
	assert.Equal(t, uint16(0b101), lo)

	hiEn, ok := env.db.Read(database.SectionSaxFingeringMaskHi10Enable, 1)
	require.True(t, ok)
	assert.Equal(t, uint16(fingeringEnableMask), hiEn)

	note, ok := env.db.Read(database.SectionSaxFingeringNote, 1)
	require.True(t, ok)
	assert.Equal(t, uint16(70), note)
}

func TestCaptureKeepsNoteUnsetWhenOutOfRange(t *testing.T) {
	env := newTestEnv(t, defaultLayout(), true)

	require.NoError(t, env.engine.CaptureFingeringEntry(0, 500))

	note, ok := env.db.Read(database.SectionSaxFingeringNote, 0)
	require.True(t, ok)
	assert.Equal(t, uint16(database.FingeringNoteUnset), note)
}

func TestCaptureRejectsBadEntryIndex(t *testing.T) {
	env := newTestEnv(t, defaultLayout(), true)

	require.ErrorIs(t, env.engine.CaptureFingeringEntry(-1, 60), ErrBadEntryIndex)
	require.ErrorIs(t, env.engine.CaptureFingeringEntry(FingeringTableEntries, 60), ErrBadEntryIndex)
}

func TestCaptureRequiresChromaticStrategy(t *testing.T) {
	env := newTestEnv(t, defaultLayout(), false)

	require.Error(t, env.engine.CaptureFingeringEntry(0, 60))
}

func TestChromaticRuntimeDisabledUsesNormalTranslation(t *testing.T) {
	env := newTestEnv(t, defaultLayout(), true)
	env.configure(t, 0, TypeMomentary, KindControlChange, 0, 7, 99)

	env.press(t, 0)

	require.Len(t, env.rec.buttons, 1)
	assert.Equal(t, midi.MessageControlChange, env.rec.buttons[0].Message)
	assert.Equal(t, uint16(99), env.rec.buttons[0].Value)
}

func TestChromaticOnlyCoversDigitalInputs(t *testing.T) {
	layout := defaultLayout()
	env := newTestEnv(t, layout, true)
	env.setSetting(t, database.SettingSaxChromaticEnable, 1)

	analogIndex := layout.StartIndex(GroupAnalog)
	env.configure(t, analogIndex, TypeMomentary, KindControlChange, 0, 7, 99)

	require.NoError(t, env.engine.Process(analogIndex, true))

	require.Len(t, env.rec.buttons, 1)
	assert.Equal(t, midi.MessageControlChange, env.rec.buttons[0].Message)
}
