package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New("a", "b")
	s.Add("c")
	assert.True(t, s.Has("c"))
	assert.False(t, s.Has("d"))
	assert.Len(t, s, 3)
}

func TestOrdered_PreservesFirstInsertion(t *testing.T) {
	o := NewOrdered("b", "a", "b", "c")
	assert.Equal(t, []string{"b", "a", "c"}, o.Values())
	assert.Equal(t, 3, o.Len())
	assert.False(t, o.Add("a"))
	assert.True(t, o.Add("d"))
	assert.True(t, o.Has("d"))
}

func TestOrdered_Difference(t *testing.T) {
	built := NewOrdered("A", "C", "B", "D")
	expected := NewOrdered("B", "A")

	assert.Equal(t, []string{"C", "D"}, built.Difference(expected).Values())
	assert.Empty(t, expected.Difference(built).Values())
	assert.Equal(t, []string{"A", "C", "B", "D"}, built.Difference(nil).Values())
}
