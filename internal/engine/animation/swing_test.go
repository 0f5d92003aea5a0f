package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseAtBracket(t *testing.T) {
	tests := []struct {
		t    float64
		want Phase
	}{
		{0.0, Neutral},
		{2.0, Neutral},
		{3.0, Neutral},
		{2.5, Deflected},
		{3.5, Deflected},
		{0.001, Deflected},
		{7.999, Deflected},
		{-1.5, Deflected},
		{-4.0, Neutral},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PhaseAt(tt.t, ModeBracket), "t=%v", tt.t)
	}
}

func TestPhaseAtBracketHalfSeconds(t *testing.T) {
	for k := -5; k <= 50; k++ {
		require.Equal(t, Deflected, PhaseAt(float64(k)+0.5, ModeBracket), "k=%d", k)
		require.Equal(t, Neutral, PhaseAt(float64(k), ModeBracket), "k=%d", k)
	}
}

func TestPhaseAtRounded(t *testing.T) {
	tests := []struct {
		t    float64
		want Phase
	}{
		{0.2, Neutral},
		{0.7, Deflected},
		{1.0, Deflected},
		{1.4, Deflected},
		{1.6, Neutral},
		{2.0, Neutral},
		{2.5, Deflected},
		{3.0, Deflected},
		{3.49, Deflected},
		{3.51, Neutral},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PhaseAt(tt.t, ModeRounded), "t=%v", tt.t)
	}
}

func TestRoundedTogglesOncePerSecond(t *testing.T) {
	d := NewDriver(ModeRounded, true)
	for ms := 0; ms < 10000; ms += 16 {
		d.Sample(float64(ms) / 1000)
	}
	// One toggle into and one out of each odd second.
	assert.InDelta(t, 10, d.Transitions(), 1)
}

// frameClock returns n timestamps of a 60 Hz loop that never lands on a whole second.
func frameClock(n int) []float64 {
	times := make([]float64, n)
	for k := range times {
		times[k] = 0.0123 + float64(k)/60
	}
	return times
}

func TestDriverOnFrameClock(t *testing.T) {
	tests := []struct {
		mode        Mode
		transitions int
		deflected   int
	}{
		// In at 0.5, 2.5, 4.5, 6.5, 8.5 and out at 1.5, 3.5, 5.5, 7.5, 9.5.
		{ModeRounded, 10, 300},
		// Deflected from the first frame on; whole seconds are never sampled.
		{ModeBracket, 1, 600},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			d := NewDriver(tt.mode, true)
			deflected := 0
			for _, ts := range frameClock(600) {
				if d.Sample(ts) == Deflected {
					deflected++
				}
			}
			assert.Equal(t, tt.transitions, d.Transitions())
			assert.InDelta(t, tt.deflected, deflected, 2)
		})
	}
}

func TestDriverDisabled(t *testing.T) {
	d := NewDriver(ModeBracket, false)
	assert.Equal(t, Neutral, d.Sample(2.5))
	assert.Equal(t, Neutral, d.Phase())
	assert.Zero(t, d.Transitions())
}

func TestDriverRemembersPhase(t *testing.T) {
	d := NewDriver(ModeBracket, true)

	assert.Equal(t, Deflected, d.Sample(2.5))
	assert.Equal(t, Deflected, d.Phase())
	assert.Equal(t, Neutral, d.Sample(3.0))
	assert.Equal(t, 2, d.Transitions())
	assert.Equal(t, ModeBracket, d.Mode())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("rounded")
	require.NoError(t, err)
	assert.Equal(t, ModeRounded, m)

	m, err = ParseMode("bracket")
	require.NoError(t, err)
	assert.Equal(t, ModeBracket, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeRounded, m)

	_, err = ParseMode("smooth")
	assert.Error(t, err)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "deflected", Deflected.String())
	assert.Equal(t, "neutral", Neutral.String())
	assert.Equal(t, "rounded", ModeRounded.String())
}
