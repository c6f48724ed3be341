package pointerflow

import (
	"sort"
	"time"
)

// PointerDetail is the mutable snapshot of one contact. Adapters overwrite it
// on every move.
type PointerDetail struct {
	Identifier       ContactID
	ClientX, ClientY float64
	Buttons          int
	Pressure         float64
	Rotate2D         float64 // rotation hint in degrees, 0 if the device reports none
	Scale            float64 // intrinsic scale hint (e.g. trackpad pinch), 0 if none
	Cancel           bool    // set when the platform canceled the contact
	Source           Event   // event the detail was read from
}

// PointerContext is captured when a pointer is created and never changes.
type PointerContext struct {
	Device    DeviceType
	StartTime time.Time
	Modifiers KeyModifiers
	Button    PointerButton
}

// Pointer associates one physical contact with an entity.
type Pointer struct {
	ID      EntityID
	Detail  PointerDetail
	Context PointerContext
}

// NewPointer creates a pointer for the given entity.
func NewPointer(id EntityID, detail PointerDetail, ctx PointerContext) *Pointer {
	if ctx.StartTime.IsZero() {
		ctx.StartTime = time.Now()
	}
	return &Pointer{ID: id, Detail: detail, Context: ctx}
}

// Identified reports whether the pointer is attached to an entity.
func (p *Pointer) Identified() bool {
	return p.ID != NoEntity
}

// PointerMap holds every live pointer keyed by contact.
type PointerMap map[ContactID]*Pointer

// ForEntity returns the pointers attached to id ordered by contact id, so
// aggregates computed from them are deterministic.
func (m PointerMap) ForEntity(id EntityID) []*Pointer {
	var out []*Pointer
	for _, p := range m {
		if p.ID == id {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Detail.Identifier < out[j].Detail.Identifier
	})
	return out
}

// EntityFromArgs returns the entity a start event was dispatched for. The
// first dispatch argument may be an EntityID or a string; anything else
// yields NoEntity.
func EntityFromArgs(args []any) EntityID {
	if len(args) == 0 {
		return NoEntity
	}
	switch v := args[0].(type) {
	case EntityID:
		return v
	case string:
		return EntityID(v)
	}
	return NoEntity
}
