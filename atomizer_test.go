package pointerflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomizePerContactEvents(t *testing.T) {
	h := NewAtomicHandler(quietConfig())
	var got []*AtomEvent
	h.OnAtom(func(ev *AtomEvent) { got = append(got, ev) })

	in := NewInjector(h)
	in.TouchStart("a", 0, 0, 0)
	in.TouchStart("b", 1, 50, 0)
	in.TouchMove(0, 5, 5)
	in.TouchEnd(0, 5, 5)
	in.Flush()

	require.Len(t, got, 4)
	assert.Equal(t, AtomStart, got[0].Kind)
	assert.Equal(t, EntityID("a"), got[0].ID)
	assert.Equal(t, AtomStart, got[1].Kind)
	assert.Equal(t, EntityID("b"), got[1].ID)
	assert.Equal(t, AtomMove, got[2].Kind)
	assert.Equal(t, 5.0, got[2].Pointer.Detail.ClientX)
	assert.Equal(t, AtomEnd, got[3].Kind)

	assert.Equal(t, []EntityID{"b"}, h.IDs())
}

func TestAtomizeContextFollowsContact(t *testing.T) {
	h := NewAtomicHandler(quietConfig())
	var seen []any
	h.OnAtom(func(ev *AtomEvent) {
		if ev.Kind == AtomStart {
			ev.Context["picked"] = ev.Pointer.Detail.Identifier
		}
		seen = append(seen, ev.Context["picked"])
	})

	in := NewInjector(h)
	in.TouchStart("a", 3, 0, 0)
	in.TouchMove(3, 1, 1)
	in.TouchEnd(3, 1, 1)
	in.Flush()

	want := ContactID("t/3")
	assert.Equal(t, []any{want, want, want}, seen)

	contexts, _ := Get(h.Processor, PointerContextsKey)
	assert.Empty(t, contexts)
}

func TestAtomizeSkipsBatchesWithoutPointers(t *testing.T) {
	h := NewAtomicHandler(quietConfig())
	var n int
	h.OnAtom(func(*AtomEvent) { n++ })

	in := NewInjector(h)
	in.Move(10, 10)
	in.Key("a")
	in.Wheel(0, 0, 10)
	in.Flush()

	assert.Zero(t, n)
}
