package memory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow_AppendAndEvict(t *testing.T) {
	w := NewWindow(3)
	for i := 0; i < 5; i++ {
		w.Append(RoleUser, fmt.Sprintf("m%d", i))
	}
	turns := w.Turns()
	assert.Len(t, turns, 3)
	assert.Equal(t, "m2", turns[0].Text)
	assert.Equal(t, "m4", turns[2].Text)
}

func TestWindow_DefaultCapacity(t *testing.T) {
	w := NewWindow(0)
	for i := 0; i < DefaultCapacity+4; i++ {
		w.Append(RoleAssistant, "x")
	}
	assert.Equal(t, DefaultCapacity, w.Len())
}

func TestWindow_Render(t *testing.T) {
	w := NewWindow(4)
	assert.Equal(t, "", w.Render())

	w.Append(RoleUser, "ada ayam, mau masak apa?")
	w.Append(RoleAssistant, "Coba ayam geprek.")
	assert.Equal(t, "Human: ada ayam, mau masak apa?\nAI: Coba ayam geprek.", w.Render())
}

func TestWindow_Clear(t *testing.T) {
	w := NewWindow(4)
	w.Append(RoleUser, "halo")
	w.Clear()
	assert.Zero(t, w.Len())
	assert.Equal(t, "", w.Render())
}
