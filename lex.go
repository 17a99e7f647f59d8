package calculator

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Token is a single lexical element of an input line. Start and End are
// inclusive character offsets into the input.
type Token struct {
	Kind  TokenKind
	Op    Op
	Text  string
	Num   float32
	Start int
	End   int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Start) + "-" + strconv.Itoa(t.End)
}

// TokenKind is the category of a token.
type TokenKind int8

const (
	// TokenEOF ends every token sequence.
	TokenEOF TokenKind = iota
	// TokenNum is a numeric literal.
	TokenNum
	// TokenAdd is + or -.
	TokenAdd
	// TokenMul is *, /, or %.
	TokenMul
	// TokenExp is ** or //.
	TokenExp
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
	// TokenIdent is a variable or function name.
	TokenIdent
	// TokenLet is the let keyword.
	TokenLet
	// TokenEquals is the assignment sign.
	TokenEquals
	// TokenLast is $, the last result.
	TokenLast
)

var tokenKindNames = [...]string{
	TokenEOF:    "EOF",
	TokenNum:    "Num",
	TokenAdd:    "Add",
	TokenMul:    "Mul",
	TokenExp:    "Exp",
	TokenOpen:   "Open",
	TokenClose:  "Close",
	TokenIdent:  "Ident",
	TokenLet:    "Let",
	TokenEquals: "Equals",
	TokenLast:   "Last",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Op identifies the operator of a TokenAdd, TokenMul, or TokenExp token.
type Op int8

const (
	OpNone Op = iota
	OpAdd     // +
	OpSub     // -
	OpMul     // *
	OpDiv     // /
	OpMod     // %
	OpPow     // **
	OpRoot    // //
)

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// col is the offset of the next rune to be read.
	col int
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.col++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.col--
}

// peek returns the next rune without consuming it. ok is false at the end of
// the input.
func (l *lexer) peek() (r rune, ok bool, err error) {
	r, err = l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, false, nil
		}
		return 0, false, err
	}
	l.unreadRune()
	return r, true, nil
}

// next scans the next token from the input. At the end of the input, the
// result is an EOF token positioned at the final offset.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	for {
		start := l.col
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Token{Kind: TokenEOF, Text: "EOF", Start: start, End: start}, nil
			}
			return Token{}, err
		}
		tok := Token{Text: string(r), Start: start, End: start}
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		case '(':
			tok.Kind = TokenOpen
		case ')':
			tok.Kind = TokenClose
		case '+':
			tok.Kind, tok.Op = TokenAdd, OpAdd
		case '-':
			tok.Kind, tok.Op = TokenAdd, OpSub
		case '=':
			tok.Kind = TokenEquals
		case '$':
			tok.Kind = TokenLast
		case '%':
			tok.Kind, tok.Op = TokenMul, OpMod
		case '*', '/':
			tok.Kind, tok.Op = TokenMul, OpMul
			if r == '/' {
				tok.Op = OpDiv
			}
			n, ok, err := l.peek()
			if err != nil {
				return Token{}, err
			}
			if ok && n == r {
				l.readRune()
				tok.Kind, tok.Op = TokenExp, OpPow
				if r == '/' {
					tok.Op = OpRoot
				}
				tok.Text += tok.Text
				tok.End++
			}
		default:
			switch {
			case '0' <= r && r <= '9':
				l.unreadRune()
				if err := l.scanNum(); err != nil {
					return Token{}, err
				}
				tok.Kind = TokenNum
				tok.Text = l.buf.String()
				// Literals too large for float32 become +Inf.
				f, err := strconv.ParseFloat(tok.Text, 32)
				if err != nil && !errors.Is(err, strconv.ErrRange) {
					return Token{}, &FatalError{Msg: "cannot parse number " + strconv.Quote(tok.Text)}
				}
				tok.Num = float32(f)
			case r == '_', unicode.IsLetter(r):
				l.unreadRune()
				if err := l.scanIdent(); err != nil {
					return Token{}, err
				}
				tok.Text = l.buf.String()
				tok.Kind = TokenIdent
				if tok.Text == "let" {
					tok.Kind = TokenLet
				}
			default:
				return Token{}, &CharacterError{Char: r, Col: start}
			}
			tok.End = l.col - 1
		}
		return tok, nil
	}
}

// scanNum scans digits with at most one decimal point. A second point ends
// the number rather than being an error.
func (l *lexer) scanNum() error {
	var dot bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch {
		case '0' <= r && r <= '9':
		case r == '.' && !dot:
			dot = true
		default:
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		switch {
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return nil
		}
	}
}

// Tokenize converts an input line into tokens. The result always ends with
// an EOF token. On error, no tokens are returned.
func Tokenize(input string) ([]Token, error) {
	return tokenize(strings.NewReader(input))
}

func tokenize(src io.RuneScanner) ([]Token, error) {
	scan := lex(src)
	var toks []Token
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}
