package manacost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_GenericAndColors(t *testing.T) {
	c := Parse("{2}{W}{W}{U}")
	assert.Equal(t, 2, c.Generic)
	assert.Equal(t, 2, c.Count(ColorWhite))
	assert.Equal(t, 1, c.Count(ColorBlue))
	assert.False(t, c.HasX)
}

func TestParse_X(t *testing.T) {
	c := Parse("{X}{X}{R}")
	assert.True(t, c.HasX)
	assert.Equal(t, 1, c.Count(ColorRed))
}

func TestParse_Phyrexian(t *testing.T) {
	c := Parse("{W/P}{U/P}")
	assert.Equal(t, 1, c.Count(ColorWhite))
	assert.Equal(t, 1, c.Count(ColorBlue))
}

func TestParse_HybridColorColor(t *testing.T) {
	c := Parse("{W/U}{W/U}")
	assert.Len(t, c.Hybrids, 2)
	assert.Equal(t, 2, c.DevotionTo(ColorWhite))
	assert.Equal(t, 2, c.DevotionTo(ColorBlue))
}

func TestParse_GenericHybrid(t *testing.T) {
	c := Parse("{2/W}{2/W}")
	assert.Equal(t, 4, c.Generic)
	assert.Equal(t, 0, c.Count(ColorWhite))
}

func TestParse_UnknownSymbolIgnored(t *testing.T) {
	c := Parse("{Q}{1}")
	assert.Equal(t, 1, c.Generic)
}

func TestDevotion_HybridHalvesCount(t *testing.T) {
	c := Parse("{W}{W/U}{B/W}")
	assert.Equal(t, 3, c.DevotionTo(ColorWhite))
	assert.Equal(t, 1, c.DevotionTo(ColorBlue))
	assert.Equal(t, 1, c.DevotionTo(ColorBlack))
}
