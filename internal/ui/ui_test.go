package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderer_Summary_ColdStart(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Summary(Stats{
		Documents: 3,
		Tokens:    42,
		ColdStart: true,
		Duration:  1500 * time.Millisecond,
	})

	assert.Contains(t, buf.String(), "Built full index: 3 documents, 42 tokens")
}

func TestRenderer_Summary_Incremental(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Summary(Stats{
		Added:     1,
		Removed:   2,
		Modified:  3,
		Unchanged: 4,
		Tokens:    10,
	})

	out := buf.String()
	assert.Contains(t, out, "+1 -2 ~3 (4 unchanged)")
	assert.Contains(t, out, "10 tokens")
}

func TestRenderer_Summary_Warnings(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Summary(Stats{Warnings: 2})

	assert.Contains(t, buf.String(), "WARN: 2 document(s) failed extraction")
}

func TestRenderer_NoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Warnf("plain")

	assert.Equal(t, "WARN: plain\n", buf.String())
}
