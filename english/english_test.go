package english

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlural(t *testing.T) {
	assert.Equal(t, "cats", Plural("cat"))
	assert.Equal(t, "boxes", Plural("box"))
	assert.Equal(t, "parties", Plural("party"))
	assert.Equal(t, "days", Plural("day"))
	assert.Equal(t, "children", Plural("child"))
	assert.Equal(t, "sheep", Plural("sheep"))
}

func TestCardinalAndOrdinal(t *testing.T) {
	assert.Equal(t, "three", Cardinal(3))
	assert.Equal(t, "42", Cardinal(42))
	assert.Equal(t, "1st", Ordinal(1))
	assert.Equal(t, "2nd", Ordinal(2))
	assert.Equal(t, "11th", Ordinal(11))
	assert.Equal(t, "22nd", Ordinal(22))
}

func TestNumberOf(t *testing.T) {
	assert.Equal(t, "one cat", NumberOf(1, "cat", "", 21))
	assert.Equal(t, "three cats", NumberOf(3, "cat", "", 21))
	assert.Equal(t, "25 cats", NumberOf(25, "cat", "", 21))
}

func TestCommaList(t *testing.T) {
	assert.Equal(t, "", CommaList(nil, "and"))
	assert.Equal(t, "a", CommaList([]string{"a"}, "and"))
	assert.Equal(t, "a and b", CommaList([]string{"a", "b"}, "and"))
	assert.Equal(t, "a, b, and c", CommaList([]string{"a", "b", "c"}, "and"))
	assert.Equal(t, "a, b, c", CommaList([]string{"a", "b", "c"}, ""))
}
