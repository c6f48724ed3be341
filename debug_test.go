package pointerflow

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/kataras/golog"
)

func debugProcessor(debug bool) (*Processor, *bytes.Buffer) {
	var buf bytes.Buffer
	l := golog.New()
	l.SetOutput(&buf)
	return NewProcessor(Config{Debug: debug, Logger: l}), &buf
}

func TestDebugCheckDepthWarnsWhenNested(t *testing.T) {
	p, buf := debugProcessor(true)
	p.UseFunc(func(*EventData, *Processor) Result {
		if p.Depth() < 10 {
			p.Dispatch(newTestEvent("nested"))
		}
		return Next()
	})
	p.Dispatch(newTestEvent("nested"))

	out := buf.String()
	for _, depth := range []int{9, 10} {
		want := fmt.Sprintf("dispatched at depth %d (limit %d)", depth, DefaultMaxDepth)
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "dispatched at depth 8 ") {
		t.Errorf("warned at depth 8:\n%s", out)
	}
}

func TestDebugCheckDepthSilentWithoutDebug(t *testing.T) {
	p, buf := debugProcessor(false)
	p.UseFunc(func(*EventData, *Processor) Result {
		if p.Depth() < 12 {
			p.Dispatch(newTestEvent("nested"))
		}
		return Next()
	})
	p.Dispatch(newTestEvent("nested"))

	if buf.Len() != 0 {
		t.Errorf("expected no output, got:\n%s", buf.String())
	}
}

func TestDebugCheckGestures(t *testing.T) {
	gestures := func(n int) GestureMap {
		m := make(GestureMap, n)
		for i := range n {
			m[EntityID(fmt.Sprintf("e%d", i))] = NewTransformGesture(Identity(), nil)
		}
		return m
	}

	p, buf := debugProcessor(true)
	debugCheckGestures(p, gestures(debugMaxGestures))
	if buf.Len() != 0 {
		t.Errorf("warned at the threshold:\n%s", buf.String())
	}
	debugCheckGestures(p, gestures(debugMaxGestures+1))
	if want := fmt.Sprintf("%d live gestures", debugMaxGestures+1); !strings.Contains(buf.String(), want) {
		t.Errorf("missing %q in:\n%s", want, buf.String())
	}

	quiet, qbuf := debugProcessor(false)
	debugCheckGestures(quiet, gestures(debugMaxGestures+1))
	if qbuf.Len() != 0 {
		t.Errorf("warned without debug mode:\n%s", qbuf.String())
	}
}
