package tui_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestPrinter_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := tui.NewPrinter(&buf)

	p.Step(runner.Step{Index: 2, State: "Carry", Tracer: 1, Elapsed: 1500 * time.Microsecond})
	p.Done(runner.Result{RunID: "abc", Steps: 2})
	p.Warn("path %q rejected", "Armature-Mover-Map")

	out := buf.String()
	assert.Contains(t, out, "#2   Carry -> 1 1.5ms")
	assert.Contains(t, out, "done 2 steps run abc")
	assert.Contains(t, out, `warn path "Armature-Mover-Map" rejected`)
	assert.NotContains(t, out, "\x1b[", "buffers get no escape sequences")
}

func TestPrinter_Colored(t *testing.T) {
	var buf bytes.Buffer
	p := tui.NewPrinterWithProfile(&buf, termenv.TrueColor)

	p.Banner("1.0.0")
	p.Step(runner.Step{Index: 1, State: "NonCarry"})

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "NonCarry")
	assert.NotContains(t, buf.String(), "->", "nil tracers are omitted")
}
