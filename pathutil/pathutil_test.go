package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeafBaseExt(t *testing.T) {
	p := "/a/b/report.final.csv"
	assert.Equal(t, "report.final.csv", Leaf(p))
	assert.Equal(t, "report.final", Base(p))
	assert.Equal(t, ".csv", Ext(p))
	assert.Equal(t, "/a/b", Parent(p))
}

func TestIsAbsolute(t *testing.T) {
	assert.True(t, IsAbsolute("/etc/hosts"))
	assert.False(t, IsAbsolute("relative/path"))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a/b/c", Join("a", "b", "c"))
}

func TestWithExt(t *testing.T) {
	assert.Equal(t, "report.json", WithExt("report.csv", ".json"))
	assert.Equal(t, "report", WithExt("report.csv", ""))
}
