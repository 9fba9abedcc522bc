package io

import (
	"io"

	"github.com/ezrec/ls8/translate"
)

// Tape is a line oriented output channel over an io.Writer.
// A nil Output discards everything written.
type Tape struct {
	Output io.Writer

	Lines int // Lines written since the last Rewind.
}

var _ Channel = (*Tape)(nil)

// Rewind resets the line counter. The output itself cannot be rewound.
func (tc *Tape) Rewind() {
	tc.Lines = 0
}

func (tc *Tape) writeLine(text string) (err error) {
	tc.Lines++

	if tc.Output == nil {
		return
	}

	_, err = io.WriteString(tc.Output, text)
	return
}

// Print writes a value as a decimal line.
func (tc *Tape) Print(value byte) error {
	return tc.writeLine(translate.Line("%d", value))
}

// Notice writes a message line.
func (tc *Tape) Notice(text string) error {
	return tc.writeLine(text + "\n")
}
