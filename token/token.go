// Package token defines the lexical token table that Sapling's lexer
// produces and the parser consumes (spec.md §4.1).
package token

import "github.com/ardnew/sapling/errs"

// Type identifies a lexical category. The zero value, T_ILLEGAL, marks a
// token that could not be classified — it never appears in a successful
// lex, only in diagnostics.
type Type int

const (
	T_ILLEGAL Type = iota
	T_EOF

	// Literals
	T_INT
	T_FLOAT
	T_HEX
	T_STRING
	T_REGEX
	T_ID

	// Keywords
	T_IF
	T_ELSE
	T_WHILE
	T_FUNC
	T_IMPORT
	T_RETURN
	T_STRUCT
	T_ENUM
	T_CONST
	T_NEW
	T_REPEAT
	T_UNTIL
	T_FROM
	T_IN
	T_TRUE
	T_FALSE
	T_NIL
	T_ANY
	T_BREAK
	T_CONTINUE

	// Operators and punctuation, two-character forms listed before their
	// one-character prefixes so the lexer's ordered table matches greedily.
	T_EQ     // ==
	T_NE     // !=
	T_LE     // <=
	T_GE     // >=
	T_AND    // &&
	T_OR     // ||
	T_PLUSEQ // +=
	T_MINUSEQ
	T_STAREQ
	T_SLASHEQ
	T_PERCENTEQ

	T_PLUS
	T_MINUS
	T_STAR
	T_SLASH
	T_PERCENT
	T_LT
	T_GT
	T_NOT
	T_ASSIGN
	T_DOT
	T_QDOT // ?.
	T_COMMA
	T_COLON
	T_SEMI
	T_LPAREN
	T_RPAREN
	T_LBRACE
	T_RBRACE
	T_LBRACKET
	T_RBRACKET
)

var names = map[Type]string{
	T_ILLEGAL: "illegal", T_EOF: "eof",
	T_INT: "int", T_FLOAT: "float", T_HEX: "hex", T_STRING: "string",
	T_REGEX: "regex", T_ID: "identifier",
	T_IF: "if", T_ELSE: "else", T_WHILE: "while", T_FUNC: "func",
	T_IMPORT: "import", T_RETURN: "return", T_STRUCT: "struct",
	T_ENUM: "enum", T_CONST: "const", T_NEW: "new", T_REPEAT: "repeat",
	T_UNTIL: "until", T_FROM: "from", T_IN: "in", T_TRUE: "true",
	T_FALSE: "false", T_NIL: "nil", T_ANY: "any",
	T_BREAK: "break", T_CONTINUE: "continue",
	T_EQ: "==", T_NE: "!=", T_LE: "<=", T_GE: ">=", T_AND: "&&", T_OR: "||",
	T_PLUSEQ: "+=", T_MINUSEQ: "-=", T_STAREQ: "*=", T_SLASHEQ: "/=",
	T_PERCENTEQ: "%=",
	T_PLUS:      "+", T_MINUS: "-", T_STAR: "*", T_SLASH: "/",
	T_PERCENT: "%", T_LT: "<", T_GT: ">", T_NOT: "!", T_ASSIGN: "=",
	T_DOT: ".", T_QDOT: "?.", T_COMMA: ",", T_COLON: ":", T_SEMI: ";",
	T_LPAREN: "(", T_RPAREN: ")", T_LBRACE: "{", T_RBRACE: "}",
	T_LBRACKET: "[", T_RBRACKET: "]",
}

// String returns the token type's canonical spelling (its keyword or
// operator text, or a short category name for literals).
func (t Type) String() string {
	if s, ok := names[t]; ok {
		return s
	}

	return "?"
}

// Keywords maps keyword spelling to its token type. The lexer consults
// this after matching a bare identifier pattern, which is why keywords
// must be anchored with a "not followed by identifier character"
// assertion in the lexer (spec.md §4.1) — otherwise "iffy" would lex as
// "if" + "fy".
var Keywords = map[string]Type{
	"if": T_IF, "else": T_ELSE, "while": T_WHILE, "func": T_FUNC,
	"import": T_IMPORT, "return": T_RETURN, "struct": T_STRUCT,
	"enum": T_ENUM, "const": T_CONST, "new": T_NEW, "repeat": T_REPEAT,
	"until": T_UNTIL, "from": T_FROM, "in": T_IN, "true": T_TRUE,
	"false": T_FALSE, "nil": T_NIL, "any": T_ANY,
	"break": T_BREAK, "continue": T_CONTINUE,
}

// Token is a single lexical unit: its type, literal text, and source
// position (spec.md §3.1).
type Token struct {
	Type    Type
	Literal string
	Pos     errs.Position
}

// New creates a Token at the given position.
func New(typ Type, literal string, line, col int) Token {
	return Token{Type: typ, Literal: literal, Pos: errs.Position{Line: line, Column: col}}
}

// Is reports whether the token has the given type.
func (t Token) Is(typ Type) bool { return t.Type == typ }
