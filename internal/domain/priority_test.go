package domain

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestPriorityRankOrder(t *testing.T) {
	assert.Greater(t, PriorityHigh.Rank(), PriorityUrgent.Rank())
	assert.Greater(t, PriorityUrgent.Rank(), PriorityMedium.Rank())
	assert.Greater(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Equal(t, PriorityMedium.Rank(), Priority("").Rank())
	assert.Equal(t, PriorityMedium.Rank(), Priority("garbled").Rank())
	assert.Equal(t, 4, Priority(" high ").Rank())
}

func TestPriorityRankIsTotal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := Priority(rapid.String().Draw(t, "priority"))
		r := p.Rank()
		if r < 1 || r > 4 {
			t.Fatalf("rank %d out of range for %q", r, p)
		}
		if !p.Valid() && r != 2 {
			t.Fatalf("unknown priority %q ranked %d", p, r)
		}
	})
}

func TestPriorityDisplayText(t *testing.T) {
	cases := map[Priority]string{
		"":             "Medium",
		PriorityLow:    "Low",
		PriorityMedium: "Medium",
		PriorityHigh:   "High",
		PriorityUrgent: "Urgent",
		"someday":      "Someday",
	}
	for in, want := range cases {
		assert.Equal(t, want, in.DisplayText(), "priority %q", in)
	}
}

func TestPriorityDisplayTextMultibyte(t *testing.T) {
	got := Priority("ÉLEVÉ").DisplayText()
	assert.Equal(t, "Élevé", got)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "Ärgerlich", Priority(" ärgerlich ").DisplayText())
}

func TestPriorityColor(t *testing.T) {
	assert.Equal(t, ColorGreen, PriorityLow.Color())
	assert.Equal(t, ColorOrange, PriorityMedium.Color())
	assert.Equal(t, ColorRed, PriorityHigh.Color())
	assert.Equal(t, ColorDarkRed, PriorityUrgent.Color())
	assert.Equal(t, ColorGray, Priority("").Color())
	assert.Equal(t, ColorGray, Priority("x").Color())
}
