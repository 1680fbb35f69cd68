package lexer

import "github.com/eddndev/achronyme/pkg/ast"

// TokenType identifies the lexical category of a Token.
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	IDENT
	NUMBER
	IMAGINARY
	STRING

	literalEnd

	TRUE
	FALSE
	NULL
	LET
	MUT
	TYPE
	DO
	WHILE
	FOR
	IN
	TRY
	CATCH
	THROW
	MATCH
	GENERATE
	YIELD
	RETURN
	REC
	SELF
	IMPORT
	EXPORT

	keywordEnd

	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	CARET
	BANG
	ASSIGN
	EQ
	NEQ
	LT
	LTE
	GT
	GTE
	AND
	OR
	ARROW      // ->
	UNDIRECTED // <>
	FATARROW   // =>
	QUESTION

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	COLON
	SEMI
	DOT
	DOTDOT  // ..
	ELLIPSIS // ...
	PIPE     // | (union types)
	UNDERSCORE
)

var keywords = map[string]TokenType{
	"true":      TRUE,
	"false":     FALSE,
	"null":      NULL,
	"let":       LET,
	"mut":       MUT,
	"type": TYPE,
	"do":   DO,
	// "if" and "piecewise" are deliberately NOT keywords: spec 4.4.4 treats
	// them as ordinary call-form identifiers, e.g. if(c, t, e). They lex
	// as plain IDENT and the parser builds a CallExpression like any other
	// call.
	"while":     WHILE,
	"for":       FOR,
	"in":        IN,
	"try":       TRY,
	"catch":     CATCH,
	"throw":     THROW,
	"match":     MATCH,
	"generate":  GENERATE,
	"yield":     YIELD,
	"return":    RETURN,
	"rec":       REC,
	"self":      SELF,
	"import":    IMPORT,
	"export":    EXPORT,
}

func LookupIdent(name string) TokenType {
	if tok, ok := keywords[name]; ok {
		return tok
	}
	return IDENT
}

// Token is a single lexical unit with its source position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     ast.Position
}

func (t Token) String() string { return t.Literal }
