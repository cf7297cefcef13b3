package tailer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinterGroupsByHeader(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Print("task-1:stdout", []string{"a", "b"})
	p.Print("task-1:stdout", []string{"c"})
	p.Print("task-2:stdout", []string{"d"})
	p.Print("task-1:stdout", []string{"e"})

	assert.Equal(t,
		"===> task-1:stdout <===\n"+
			"a\n"+
			"b\n"+
			"c\n"+
			"===> task-2:stdout <===\n"+
			"d\n"+
			"===> task-1:stdout <===\n"+
			"e\n",
		buf.String())
}

func TestPrinterSkipsEmptyResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Print("task-1:stdout", []string{"a"})
	p.Print("task-2:stdout", nil)
	p.Print("task-1:stdout", []string{"b"})

	assert.Equal(t,
		"===> task-1:stdout <===\n"+
			"a\n"+
			"b\n",
		buf.String(), "an empty result changes neither output nor grouping state")
	assert.Equal(t, "task-1:stdout", p.LastHeader())
}

func TestPrinterUnstyledForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Print("h", []string{"x"})
	// No ANSI escapes when the writer is not a terminal.
	assert.NotContains(t, buf.String(), "\x1b[")
}
