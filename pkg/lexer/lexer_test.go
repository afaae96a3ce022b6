package lexer

import "testing"

func mustTokenize(t *testing.T, src string) []Token {
	t.Helper()
	tokens, errs := Tokenize(src)
	if len(errs) > 0 {
		t.Fatalf("Tokenize(%q) returned errors: %v", src, errs)
	}
	return tokens
}

func wantTypes(t *testing.T, tokens []Token, types ...TokenType) {
	t.Helper()
	if len(tokens) != len(types) {
		t.Fatalf("got %d tokens, want %d: %#v", len(tokens), len(types), tokens)
	}
	for i, want := range types {
		if tokens[i].Type != want {
			t.Fatalf("token %d = %v (%q), want %v", i, tokens[i].Type, tokens[i].Lexeme, want)
		}
	}
}

func TestTokenizeStatement(t *testing.T) {
	tokens := mustTokenize(t, `var hp = 100;`)
	wantTypes(t, tokens,
		TokenVar, TokenIdent, TokenAssign, TokenInt, TokenSemicolon, TokenEOF)
	if tokens[1].Lexeme != "hp" {
		t.Fatalf("identifier lexeme = %q, want hp", tokens[1].Lexeme)
	}
	if tokens[3].Lexeme != "100" {
		t.Fatalf("int lexeme = %q, want 100", tokens[3].Lexeme)
	}
}

func TestTokenizeKeywordsAndOperators(t *testing.T) {
	tokens := mustTokenize(t, `if not a and b or c then { } end`)
	wantTypes(t, tokens,
		TokenIf, TokenNot, TokenIdent, TokenAnd, TokenIdent, TokenOr,
		TokenIdent, TokenThen, TokenLBrace, TokenRBrace, TokenEnd, TokenEOF)
}

func TestTokenizeCompoundAssign(t *testing.T) {
	tokens := mustTokenize(t, `x += 1 y -= 2 z *= 3 w /= 4`)
	want := []TokenType{
		TokenIdent, TokenPlusAssign, TokenInt,
		TokenIdent, TokenMinusAssign, TokenInt,
		TokenIdent, TokenStarAssign, TokenInt,
		TokenIdent, TokenSlashAssign, TokenInt,
		TokenEOF,
	}
	wantTypes(t, tokens, want...)
}

func TestTokenizePower(t *testing.T) {
	tokens := mustTokenize(t, `2 ** 3 * 4`)
	wantTypes(t, tokens, TokenInt, TokenStarStar, TokenInt, TokenStar, TokenInt, TokenEOF)
}

func TestTokenizeNumbers(t *testing.T) {
	tokens := mustTokenize(t, `42 3.14 0.5`)
	wantTypes(t, tokens, TokenInt, TokenFloat, TokenFloat, TokenEOF)
	if tokens[1].Lexeme != "3.14" {
		t.Fatalf("float lexeme = %q, want 3.14", tokens[1].Lexeme)
	}
}

func TestTokenizeDotAfterInt(t *testing.T) {
	// A dot with no digits after it is member access, not a fractional part.
	tokens := mustTokenize(t, `t.x`)
	wantTypes(t, tokens, TokenIdent, TokenDot, TokenIdent, TokenEOF)
}

func TestTokenizeStringEscapes(t *testing.T) {
	tokens := mustTokenize(t, `"line1\nline2\t\"q\"\\"`)
	wantTypes(t, tokens, TokenString, TokenEOF)
	if got, want := tokens[0].Lexeme, "line1\nline2\t\"q\"\\"; got != want {
		t.Fatalf("decoded string = %q, want %q", got, want)
	}
}

func TestTokenizeComments(t *testing.T) {
	src := `
// leading comment
var a = 1; /* inline
spans lines */ var b = 2;
`
	tokens := mustTokenize(t, src)
	wantTypes(t, tokens,
		TokenVar, TokenIdent, TokenAssign, TokenInt, TokenSemicolon,
		TokenVar, TokenIdent, TokenAssign, TokenInt, TokenSemicolon, TokenEOF)
}

func TestTokenizePositions(t *testing.T) {
	tokens := mustTokenize(t, "var x = 1\nvar y = 2")
	if tokens[0].Line != 1 || tokens[0].Column != 1 {
		t.Fatalf("first token at %d:%d, want 1:1", tokens[0].Line, tokens[0].Column)
	}
	// tokens[4] is the second 'var'.
	if tokens[4].Line != 2 || tokens[4].Column != 1 {
		t.Fatalf("second var at %d:%d, want 2:1", tokens[4].Line, tokens[4].Column)
	}
	if tokens[5].Lexeme != "y" || tokens[5].Column != 5 {
		t.Fatalf("y at column %d, want 5", tokens[5].Column)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, errs := Tokenize("var s = \"oops")
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if errs[0].Line != 1 || errs[0].Column != 9 {
		t.Fatalf("error at %d:%d, want 1:9", errs[0].Line, errs[0].Column)
	}
}

func TestTokenizeUnterminatedBlockComment(t *testing.T) {
	_, errs := Tokenize("var a = 1; /* no close")
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	tokens, errs := Tokenize("var a = 1 ~ 2")
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if errs[0].Line != 1 || errs[0].Column != 11 {
		t.Fatalf("error at %d:%d, want 1:11", errs[0].Line, errs[0].Column)
	}
	// The bad character is skipped; scanning continues past it.
	wantTypes(t, tokens, TokenVar, TokenIdent, TokenAssign, TokenInt, TokenInt, TokenEOF)
}

func TestTokenizeCollectsIndependentErrors(t *testing.T) {
	tokens, errs := Tokenize("var a = ~;\nvar s = \"oops")
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	if errs[0].Line != 1 || errs[0].Column != 9 {
		t.Fatalf("first error at %d:%d, want 1:9", errs[0].Line, errs[0].Column)
	}
	if errs[1].Line != 2 || errs[1].Column != 9 {
		t.Fatalf("second error at %d:%d, want 2:9", errs[1].Line, errs[1].Column)
	}
	wantTypes(t, tokens,
		TokenVar, TokenIdent, TokenAssign, TokenSemicolon,
		TokenVar, TokenIdent, TokenAssign, TokenEOF)
}

func TestBlockCommentsDoNotNest(t *testing.T) {
	// The first */ closes the comment; the rest must lex normally.
	tokens := mustTokenize(t, "/* outer /* inner */ var a = 1")
	wantTypes(t, tokens, TokenVar, TokenIdent, TokenAssign, TokenInt, TokenEOF)
}
