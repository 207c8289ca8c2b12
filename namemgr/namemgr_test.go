package namemgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNameSequenceWithAdd(t *testing.T) {
	m := New("net", "")
	assert.Equal(t, "net0", m.NewName(true))
	assert.Equal(t, "net1", m.NewName(true))
	assert.Equal(t, "net2", m.NewName(true))
}

func TestNewNameWithoutAddRepeats(t *testing.T) {
	m := New("net", "")
	assert.Equal(t, "net0", m.NewName(false))
	assert.Equal(t, "net0", m.NewName(false))
}

func TestEraseFreesNumberForReuse(t *testing.T) {
	m := New("n", "_x")
	assert.Equal(t, "n0_x", m.NewName(true))
	assert.Equal(t, "n1_x", m.NewName(true))
	m.Erase("n0_x")
	assert.Equal(t, "n0_x", m.NewName(true))
}

func TestAddRegistersExternalName(t *testing.T) {
	m := New("n", "")
	m.Add("n5")
	assert.Equal(t, "n0", m.NewName(true))
	assert.Equal(t, "n1", m.NewName(true))
}

func TestMalformedNameIgnored(t *testing.T) {
	m := New("n", "_s")
	m.Add("totally-unrelated")
	assert.Equal(t, "n0_s", m.NewName(true))
}

func TestChangeClearsAllocations(t *testing.T) {
	m := New("a", "")
	m.NewName(true)
	m.NewName(true)
	m.Change("b", "")
	assert.Equal(t, "b0", m.NewName(true))
}
