package expr

import (
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Item represents a scanned token with its value
type Item struct {
	Token Token
	Text  string  // Source text of the item
	Value float64 // Numeric value for NUMBER items
	Pos   int     // Byte offset where the item starts
}

// Scanner splits an expression into items
type Scanner struct {
	src string
	pos int
}

// NewScanner creates a scanner over src
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

// Scan tokenizes src completely. The returned slice always ends with an EOF item.
func Scan(src string) ([]Item, error) {
	s := NewScanner(src)
	var items []Item
	for {
		item, err := s.Next()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if item.Token == EOF {
			return items, nil
		}
	}
}

// Next returns the next item from the source
func (s *Scanner) Next() (Item, error) {
	s.skipSpaces()
	if s.pos >= len(s.src) {
		return Item{Token: EOF, Pos: s.pos}, nil
	}

	start := s.pos
	r, size := utf8.DecodeRuneInString(s.src[s.pos:])

	if isDigit(r) || r == '.' {
		return s.scanNumber()
	}

	if tok := TokenFromRune(r); tok != EOF {
		s.pos += size
		return Item{Token: tok, Text: s.src[start:s.pos], Pos: start}, nil
	}

	return Item{}, errAt(start, ErrUnexpectedChar)
}

func (s *Scanner) skipSpaces() {
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		s.pos += size
	}
}

// scanNumber reads digits[.digits][e[+-]digits]; ".5" and "5." are both accepted
func (s *Scanner) scanNumber() (Item, error) {
	start := s.pos
	digits := s.acceptDigits()

	if s.peek() == '.' {
		s.pos++
		digits += s.acceptDigits()
	}
	if digits == 0 {
		return Item{}, errAt(start, ErrBadNumber)
	}
	// A second decimal point ("1.2.3") is never valid
	if s.peek() == '.' {
		return Item{}, errAt(s.pos, ErrBadNumber)
	}

	if c := s.peek(); c == 'e' || c == 'E' {
		s.pos++
		if c := s.peek(); c == '+' || c == '-' {
			s.pos++
		}
		if s.acceptDigits() == 0 {
			return Item{}, errAt(start, ErrBadNumber)
		}
	}

	text := s.src[start:s.pos]
	v, err := strconv.ParseFloat(text, 64)
	if math.IsInf(v, 0) {
		// ParseFloat reports overflow as ±Inf with a range error
		return Item{}, errAt(start, ErrNotFinite)
	}
	if err != nil {
		return Item{}, errAt(start, ErrBadNumber)
	}

	return Item{Token: NUMBER, Text: text, Value: v, Pos: start}, nil
}

func (s *Scanner) acceptDigits() int {
	n := 0
	for s.pos < len(s.src) && isDigit(rune(s.src[s.pos])) {
		s.pos++
		n++
	}
	return n
}

func (s *Scanner) peek() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
