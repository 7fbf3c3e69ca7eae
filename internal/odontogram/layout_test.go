package odontogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToothType(t *testing.T) {
	for q := 1; q <= Quadrants; q++ {
		for p, want := range map[int]ToothKind{
			1: KindIncisor, 2: KindIncisor, 3: KindCanine,
			4: KindPremolar, 5: KindPremolar,
			6: KindMolar, 7: KindMolar, 8: KindMolar,
		} {
			assert.Equal(t, want, ToothType(toothID(q, p)), "tooth %d.%d", q, p)
		}
	}
	assert.Equal(t, KindIncisor, ToothType("garbage"))
}

func TestLayout_Order(t *testing.T) {
	jaws := Layout()
	require.Len(t, jaws, 2)
	assert.Equal(t, "Maxilar Superior", jaws[0].Label)
	assert.Equal(t, "Mandíbula Inferior", jaws[1].Label)

	ids := func(q Quadrant) []string {
		out := make([]string, 0, len(q.Teeth))
		for _, tooth := range q.Teeth {
			out = append(out, tooth.ID)
		}
		return out
	}
	assert.Equal(t, []string{"1.8", "1.7", "1.6", "1.5", "1.4", "1.3", "1.2", "1.1"}, ids(jaws[0].Quadrants[0]))
	assert.Equal(t, []string{"2.1", "2.2", "2.3", "2.4", "2.5", "2.6", "2.7", "2.8"}, ids(jaws[0].Quadrants[1]))
	assert.Equal(t, []string{"3.8", "3.7", "3.6", "3.5", "3.4", "3.3", "3.2", "3.1"}, ids(jaws[1].Quadrants[0]))
	assert.Equal(t, []string{"4.1", "4.2", "4.3", "4.4", "4.5", "4.6", "4.7", "4.8"}, ids(jaws[1].Quadrants[1]))
}

func TestAllTeeth_Unique(t *testing.T) {
	teeth := AllTeeth()
	require.Len(t, teeth, TotalTeeth)

	seen := make(map[string]bool)
	for _, tooth := range teeth {
		assert.False(t, seen[tooth.ID], "duplicate %s", tooth.ID)
		seen[tooth.ID] = true
	}
}

func TestNewTooth_Titles(t *testing.T) {
	assert.Equal(t, "Muela del juicio superior derecha", NewTooth(1, 8).Title)
	assert.Equal(t, "Incisivo central superior izquierdo", NewTooth(2, 1).Title)
	assert.Equal(t, "Canino inferior izquierdo", NewTooth(3, 3).Title)
	assert.Equal(t, "Primer molar inferior derecho", NewTooth(4, 6).Title)
	assert.Equal(t, "18", NewTooth(1, 8).Short())
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID("1.1"))
	assert.True(t, IsValidID("4.8"))
	assert.False(t, IsValidID("5.1"))
	assert.False(t, IsValidID("1.9"))
	assert.False(t, IsValidID("1.01"))
	assert.False(t, IsValidID("11"))

	_, ok := Lookup("0.0")
	assert.False(t, ok)
	tooth, ok := Lookup("2.3")
	require.True(t, ok)
	assert.Equal(t, KindCanine, tooth.Kind)
}
