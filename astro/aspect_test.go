package astro

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindAspect_Major(t *testing.T) {
	tests := []struct {
		name    string
		lon1    float64
		lon2    float64
		want    AspectType
		wantOrb float64
		wantHit bool
	}{
		{"exact conjunction", 100, 100, Conjunction, 0, true},
		{"conjunction within orb", 100, 107, Conjunction, 7, true},
		{"conjunction across seam", 358, 3, Conjunction, 5, true},
		{"exact sextile", 10, 70, Sextile, 0, true},
		{"square inside orb", 0, 95, Square, 5, true},
		{"square outside orb", 0, 98, "", 0, false},
		{"exact trine", 15, 135, Trine, 0, true},
		{"opposition within orb", 0, 174, Opposition, 6, true},
		{"no aspect", 0, 40, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aspect, orb, ok := FindAspect(tt.lon1, tt.lon2, false)
			assert.Equal(t, tt.wantHit, ok)
			if tt.wantHit {
				assert.Equal(t, tt.want, aspect)
				assert.InDelta(t, tt.wantOrb, orb, 1e-9)
			}
		})
	}
}

func TestFindAspect_MinorOnlyWhenRequested(t *testing.T) {
	// 150° is a quincunx, which only matches with minors enabled.
	_, _, ok := FindAspect(0, 150, false)
	assert.False(t, ok)

	aspect, orb, ok := FindAspect(0, 150, true)
	assert.True(t, ok)
	assert.Equal(t, Quincunx, aspect)
	assert.InDelta(t, 0, orb, 1e-9)
}

func TestFindAspect_Symmetric(t *testing.T) {
	a1, o1, ok1 := FindAspect(42, 160, false)
	a2, o2, ok2 := FindAspect(160, 42, false)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, a1, a2)
	assert.InDelta(t, o1, o2, 1e-9)
}

func TestAspectType_Tables(t *testing.T) {
	assert.Equal(t, 180.0, Opposition.Angle())
	assert.Equal(t, 8.0, Trine.DefaultOrb())
	assert.Equal(t, 7.0, Square.DefaultOrb())
	assert.Equal(t, 3.0, Quincunx.DefaultOrb())
	assert.True(t, Opposition.IsMajor())
	assert.False(t, SemiSquare.IsMajor())
	assert.Len(t, MajorAspects(), 5)
	assert.Len(t, AllAspects(), 9)
}

func TestNewAspect_Exactness(t *testing.T) {
	assert.True(t, NewAspect("moon", Trine, 0.4).IsExact)
	assert.False(t, NewAspect("moon", Trine, 1.0).IsExact)
}

func TestPhaseNameFromAngle(t *testing.T) {
	tests := []struct {
		angle float64
		want  LunarPhaseName
	}{
		{0, NewMoon},
		{22.4, NewMoon},
		{22.5, WaxingCrescent},
		{45, WaxingCrescent},
		{90, FirstQuarter},
		{135, WaxingGibbous},
		{180, FullMoon},
		{200, FullMoon},
		{225, WaningGibbous},
		{270, LastQuarter},
		{315, WaningCrescent},
		{337.5, NewMoon},
		{359, NewMoon},
		{360, NewMoon},
		{-10, NewMoon}, // wraps to 350
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PhaseNameFromAngle(tt.angle), "angle %v", tt.angle)
	}
}

func TestIlluminationFromAngle(t *testing.T) {
	assert.InDelta(t, 0, IlluminationFromAngle(0), 1e-9)
	assert.InDelta(t, 0.5, IlluminationFromAngle(90), 1e-9)
	assert.InDelta(t, 1, IlluminationFromAngle(180), 1e-9)
	assert.InDelta(t, 0.5, IlluminationFromAngle(270), 1e-9)
	// Symmetric about full moon.
	assert.InDelta(t, IlluminationFromAngle(150), IlluminationFromAngle(210), 1e-9)
}

func TestBody_Properties(t *testing.T) {
	assert.False(t, Sun.CanRetrograde())
	assert.False(t, Moon.CanRetrograde())
	assert.True(t, Mercury.CanRetrograde())
	assert.True(t, NorthNode.CanRetrograde())
	assert.True(t, NorthNode.IsLunarNode())
	assert.False(t, Pluto.IsLunarNode())
	assert.Equal(t, "North Node", NorthNode.String())
	assert.Len(t, Bodies(), 11)
}

func TestBody_TextRoundTrip(t *testing.T) {
	for _, b := range Bodies() {
		data, err := b.MarshalText()
		assert.NoError(t, err)

		var back Body
		assert.NoError(t, back.UnmarshalText(data))
		assert.Equal(t, b, back)
	}

	var b Body
	assert.Error(t, b.UnmarshalText([]byte("chiron")))
}
