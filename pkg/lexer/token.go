package lexer

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	TokenEOF TokenType = iota

	// Literals and identifiers
	TokenIdent
	TokenInt
	TokenFloat
	TokenString

	// Keywords
	TokenVar
	TokenFunc
	TokenObject
	TokenOn
	TokenIf
	TokenElif
	TokenElse
	TokenThen
	TokenWhile
	TokenFor
	TokenDo
	TokenEnd
	TokenReturn
	TokenBreak
	TokenContinue
	TokenTrue
	TokenFalse
	TokenNil
	TokenAnd
	TokenOr
	TokenNot

	// Operators
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenStarStar
	TokenAssign
	TokenEqual
	TokenNotEqual
	TokenLess
	TokenLessEqual
	TokenGreater
	TokenGreaterEqual
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenDot
	TokenColon
	TokenSemicolon
)

var tokenNames = map[TokenType]string{
	TokenEOF:          "end of input",
	TokenIdent:        "identifier",
	TokenInt:          "integer literal",
	TokenFloat:        "float literal",
	TokenString:       "string literal",
	TokenVar:          "'var'",
	TokenFunc:         "'func'",
	TokenObject:       "'object'",
	TokenOn:           "'on'",
	TokenIf:           "'if'",
	TokenElif:         "'elif'",
	TokenElse:         "'else'",
	TokenThen:         "'then'",
	TokenWhile:        "'while'",
	TokenFor:          "'for'",
	TokenDo:           "'do'",
	TokenEnd:          "'end'",
	TokenReturn:       "'return'",
	TokenBreak:        "'break'",
	TokenContinue:     "'continue'",
	TokenTrue:         "'true'",
	TokenFalse:        "'false'",
	TokenNil:          "'nil'",
	TokenAnd:          "'and'",
	TokenOr:           "'or'",
	TokenNot:          "'not'",
	TokenPlus:         "'+'",
	TokenMinus:        "'-'",
	TokenStar:         "'*'",
	TokenSlash:        "'/'",
	TokenPercent:      "'%'",
	TokenStarStar:     "'**'",
	TokenAssign:       "'='",
	TokenEqual:        "'=='",
	TokenNotEqual:     "'!='",
	TokenLess:         "'<'",
	TokenLessEqual:    "'<='",
	TokenGreater:      "'>'",
	TokenGreaterEqual: "'>='",
	TokenPlusAssign:   "'+='",
	TokenMinusAssign:  "'-='",
	TokenStarAssign:   "'*='",
	TokenSlashAssign:  "'/='",
	TokenLParen:       "'('",
	TokenRParen:       "')'",
	TokenLBrace:       "'{'",
	TokenRBrace:       "'}'",
	TokenLBracket:     "'['",
	TokenRBracket:     "']'",
	TokenComma:        "','",
	TokenDot:          "'.'",
	TokenColon:        "':'",
	TokenSemicolon:    "';'",
}

// String returns a human-readable name used in diagnostics.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown token"
}

var keywords = map[string]TokenType{
	"var":      TokenVar,
	"func":     TokenFunc,
	"object":   TokenObject,
	"on":       TokenOn,
	"if":       TokenIf,
	"elif":     TokenElif,
	"else":     TokenElse,
	"then":     TokenThen,
	"while":    TokenWhile,
	"for":      TokenFor,
	"do":       TokenDo,
	"end":      TokenEnd,
	"return":   TokenReturn,
	"break":    TokenBreak,
	"continue": TokenContinue,
	"true":     TokenTrue,
	"false":    TokenFalse,
	"nil":      TokenNil,
	"and":      TokenAnd,
	"or":       TokenOr,
	"not":      TokenNot,
}

// Token is a single lexical unit. For TokenString the Lexeme holds the decoded
// string contents (escapes resolved, quotes stripped); for all other types it
// is the literal source text. Line and Column are 1-based and refer to the
// token's first character; EndLine and EndColumn point one past its last
// character.
type Token struct {
	Type      TokenType
	Lexeme    string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}
