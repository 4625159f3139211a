package simplelang

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

type TokenType uint64

// Declaration order is match priority: the first pattern that matches at the
// cursor wins, so longer or more specific lexemes come first.
const (
	TokenRealLiteral TokenType = iota
	TokenNaturalLiteral
	TokenBoolLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenKeyword

	TokenLineComment
	TokenBlockComment

	TokenPlus
	TokenMinus
	TokenMultiply
	TokenDivide
	TokenExponent

	TokenEquals
	TokenNotEquals
	TokenGreaterEqual
	TokenLessEqual
	TokenGreaterThan
	TokenLessThan
	TokenAnd
	TokenOr
	TokenNot

	TokenOpenParentheses
	TokenCloseParentheses
	TokenOpenCurly
	TokenCloseCurly
	TokenOpenBracket
	TokenCloseBracket
	TokenSemicolon
	TokenComma
	TokenAssign

	TokenIdentifier
	TokenArrayLiteral
	TokenWhitespace
	TokenEOF
)

// Keywords is every keyword dispatched on by the parser.
var Keywords = []string{
	"var", "if", "else", "function", "return",
	"while", "for", "print", "break", "continue", "try", "catch",
}

var tokenPatterns = []struct {
	typ     TokenType
	name    string
	pattern string
}{
	{TokenRealLiteral, "RealLiteral", `\d+\.\d+`},
	{TokenNaturalLiteral, "NaturalLiteral", `\d+`},
	{TokenBoolLiteral, "BoolLiteral", `(?:true|false)\b`},
	{TokenCharLiteral, "CharLiteral", `'[^']'`},
	{TokenStringLiteral, "StringLiteral", `"[^"]*"`},
	{TokenKeyword, "Keyword", `(?:` + strings.Join(Keywords, "|") + `)\b`},
	{TokenLineComment, "LineComment", `//[^\n]*`},
	{TokenBlockComment, "BlockComment", `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
	{TokenPlus, "Plus", `\+`},
	{TokenMinus, "Minus", `-`},
	{TokenMultiply, "Multiply", `\*`},
	{TokenDivide, "Divide", `/`},
	{TokenExponent, "Exponent", `\^`},
	{TokenEquals, "Equals", `==`},
	{TokenNotEquals, "NotEquals", `!=`},
	{TokenGreaterEqual, "GreaterEqual", `>=`},
	{TokenLessEqual, "LessEqual", `<=`},
	{TokenGreaterThan, "GreaterThan", `>`},
	{TokenLessThan, "LessThan", `<`},
	{TokenAnd, "And", `&&`},
	{TokenOr, "Or", `\|\|`},
	{TokenNot, "Not", `!`},
	{TokenOpenParentheses, "OpenParentheses", `\(`},
	{TokenCloseParentheses, "CloseParentheses", `\)`},
	{TokenOpenCurly, "OpenCurly", `\{`},
	{TokenCloseCurly, "CloseCurly", `\}`},
	{TokenOpenBracket, "OpenBracket", `\[`},
	{TokenCloseBracket, "CloseBracket", `\]`},
	{TokenSemicolon, "Semicolon", `;`},
	{TokenComma, "Comma", `,`},
	{TokenAssign, "Assign", `=`},
	{TokenIdentifier, "Identifier", `[a-zA-Z_]\w*`},
	// Shadowed by TokenOpenBracket, arrays reach the parser bracket by bracket.
	{TokenArrayLiteral, "ArrayLiteral", `\[[^\]]*\]`},
	{TokenWhitespace, "Whitespace", `\s+`},
	{TokenEOF, "EOF", ""},
}

type matcher struct {
	typ TokenType
	re  *regexp.Regexp
}

var matchers = compilePatterns()

func compilePatterns() []matcher {
	var ms []matcher
	for i, p := range tokenPatterns {
		if TokenType(i) != p.typ {
			panic("token pattern table out of order at " + p.name)
		}

		if p.pattern == "" {
			continue
		}

		ms = append(ms, matcher{p.typ, regexp.MustCompile(`^(?:` + p.pattern + `)`)})
	}

	return ms
}

func (t TokenType) String() string {
	if int(t) < len(tokenPatterns) {
		return tokenPatterns[t].name
	}

	return fmt.Sprintf("TokenType(%d)", uint64(t))
}

type Token struct {
	Typ   TokenType
	Value string
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Typ, t.Value)
}

func (t Token) isComment() bool {
	return t.Typ == TokenLineComment || t.Typ == TokenBlockComment
}

func (t Token) isKeyword(word string) bool {
	return t.Typ == TokenKeyword && t.Value == word
}

// LexError reports the first character no pattern matches. Pos is a byte offset.
type LexError struct {
	Char rune
	Pos  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character '%c' at position %d", e.Char, e.Pos)
}

type Lexer struct {
	reader io.Reader
	source string
	read   bool
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{reader: reader}
}

func NewLexerFromString(source string) *Lexer {
	return &Lexer{source: source, read: true}
}

// Run reads the whole input and tokenizes it.
func (l *Lexer) Run() ([]Token, error) {
	if !l.read {
		data, err := io.ReadAll(l.reader)
		if err != nil {
			return nil, err
		}

		l.source = string(data)
		l.read = true
	}

	return Tokenize(l.source)
}

// Tokenize splits source into tokens, discarding whitespace.
func Tokenize(source string) ([]Token, error) {
	var tokens []Token
	for pos := 0; pos < len(source); {
		typ, n := matchAt(source[pos:])
		if n == 0 {
			r, _ := utf8.DecodeRuneInString(source[pos:])
			err := &LexError{Char: r, Pos: pos}
			log.WithFields(logrus.Fields{
				"char":     string(r),
				"position": pos,
			}).Warn("tokenize failed")

			return nil, err
		}

		if typ != TokenWhitespace {
			tokens = append(tokens, Token{
				Typ:   typ,
				Value: strings.TrimSpace(source[pos : pos+n]),
			})
		}

		pos += n
	}

	log.WithField("tokens", len(tokens)).Debug("tokenize done")
	return tokens, nil
}

// matchAt returns the first matching type and the match length, 0 if none.
func matchAt(rest string) (TokenType, int) {
	for _, m := range matchers {
		if loc := m.re.FindStringIndex(rest); loc != nil && loc[1] > 0 {
			return m.typ, loc[1]
		}
	}

	return TokenEOF, 0
}
