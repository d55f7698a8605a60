// Package expr tokenizes and evaluates the arithmetic typed into the calculator.
package expr

// Token identifies the kind of a scanned item
type Token int

const (
	EOF Token = iota
	NUMBER
	PLUS    // +
	MINUS   // -
	STAR    // * or ×
	SLASH   // / or ÷
	PERCENT // % (remainder)
	LPAREN  // (
	RPAREN  // )
)

// Display glyphs the keypad shows for multiply and divide
const (
	RuneTimes  = '×'
	RuneDivide = '÷'
)

// IsOperator returns true if the rune is a binary operator (including display glyphs)
func IsOperator(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', RuneTimes, RuneDivide:
		return true
	}
	return false
}

// TokenFromRune returns the token type for a single-rune item.
// Returns EOF for runes that don't start a single-rune token.
func TokenFromRune(r rune) Token {
	switch r {
	case '+':
		return PLUS
	case '-':
		return MINUS
	case '*', RuneTimes:
		return STAR
	case '/', RuneDivide:
		return SLASH
	case '%':
		return PERCENT
	case '(':
		return LPAREN
	case ')':
		return RPAREN
	}
	return EOF
}

// String returns the string representation of a token.
func (t Token) String() string {
	switch t {
	case EOF:
		return "EOF"
	case NUMBER:
		return "NUMBER"
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case STAR:
		return "*"
	case SLASH:
		return "/"
	case PERCENT:
		return "%"
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	}
	return "UNKNOWN"
}

// binaryPrecedence returns the binding power of a binary operator, 0 if t is not one
func binaryPrecedence(t Token) int {
	switch t {
	case PLUS, MINUS:
		return 1
	case STAR, SLASH, PERCENT:
		return 2
	}
	return 0
}
