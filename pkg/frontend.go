package simplelang

import (
	"io"
	"os"
)

// Frontend runs the lexer and the parser back to back.
type Frontend struct {
	opts []Option
}

func NewFrontend(opts ...Option) *Frontend {
	return &Frontend{opts: opts}
}

// Load parses the file at filename.
func (f *Frontend) Load(filename string) (*Program, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return f.FromReader(file)
}

func (f *Frontend) FromReader(reader io.Reader) (*Program, error) {
	tokens, err := NewLexer(reader).Run()
	if err != nil {
		return nil, err
	}

	return f.parse(tokens)
}

func (f *Frontend) FromString(source string) (*Program, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}

	return f.parse(tokens)
}

// parse returns the partial program along with any parse error.
func (f *Frontend) parse(tokens []Token) (*Program, error) {
	p := NewParser(tokens, f.opts...)
	program := p.Parse()

	return program, p.Err()
}
