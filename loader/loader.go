// Package loader reads LS8 program text: one binary literal per token,
// with '#' comments, separated by whitespace or commas.
package loader

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

const (
	MEMORY_SIZE = 256 // Largest image that can be loaded.
)

var (
	ErrLoadSyntax = errors.New(f("syntax"))
	ErrLoadValue  = errors.New(f("value exceeds a byte"))
	ErrLoadSize   = errors.New(f("program exceeds memory"))
)

// ErrLoad locates a load error in the program text.
type ErrLoad struct {
	LineNo int
	Token  string
	Err    error
}

func (err *ErrLoad) Error() string {
	if len(err.Token) == 0 {
		return f("line %d %v", err.LineNo, err.Err)
	}
	return f("line %d '%v' %v", err.LineNo, err.Token, err.Err)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}

// File is the top-level AST node.
type File struct {
	Literals []*Literal `parser:"@@*"`
}

// Literal is a single binary literal byte.
type Literal struct {
	Pos  lexer.Position
	Bits string `parser:"@Binary"`
}

// Value returns the byte value of the literal.
func (lit *Literal) Value() (value byte, err error) {
	v64, err := strconv.ParseUint(lit.Bits, 2, 8)
	if err != nil {
		err = ErrLoadValue
		return
	}

	value = byte(v64)
	return
}

var ls8Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Binary", Pattern: `[01]+`},
	{Name: "Whitespace", Pattern: `[\s,]+`},
})

// Parser is the LS8 program text parser.
var Parser = participle.MustBuild[File](
	participle.Lexer(ls8Lexer),
	participle.Elide("Whitespace", "Comment"),
)

// Parse reads program text into a memory image.
func Parse(input io.Reader) (image []byte, err error) {
	return ParseNamed("", input)
}

// ParseNamed reads program text into a memory image, naming the source in errors.
func ParseNamed(name string, input io.Reader) (image []byte, err error) {
	file, err := Parser.Parse(name, input)
	if err != nil {
		lineno := 0
		var perr participle.Error
		if errors.As(err, &perr) {
			lineno = perr.Position().Line
		}
		err = &ErrLoad{LineNo: lineno, Err: errors.Join(ErrLoadSyntax, err)}
		return
	}

	for _, lit := range file.Literals {
		if len(image) == MEMORY_SIZE {
			err = &ErrLoad{LineNo: lit.Pos.Line, Token: lit.Bits, Err: ErrLoadSize}
			return
		}

		var value byte
		value, err = lit.Value()
		if err != nil {
			err = &ErrLoad{LineNo: lit.Pos.Line, Token: lit.Bits, Err: err}
			return
		}
		image = append(image, value)
	}

	return
}

// ParseString reads program text from a string.
func ParseString(text string) (image []byte, err error) {
	return Parse(strings.NewReader(text))
}
