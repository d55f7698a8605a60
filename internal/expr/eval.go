package expr

import (
	"math"
)

// MaxDepth bounds nesting of parentheses and unary signs
const MaxDepth = 256

// Eval evaluates an arithmetic expression made of numbers, + - * / %,
// unary signs and parentheses. * and / bind tighter than + and -; operators
// of equal precedence associate to the left. % is the floating-point
// remainder with the sign of the dividend.
func Eval(src string) (float64, error) {
	items, err := Scan(src)
	if err != nil {
		return 0, err
	}
	if items[0].Token == EOF {
		return 0, errAt(0, ErrEmpty)
	}

	p := &parser{items: items}
	v, err := p.parseBinary(1)
	if err != nil {
		return 0, err
	}

	switch tail := p.peek(); tail.Token {
	case EOF:
	case RPAREN:
		return 0, errAt(tail.Pos, ErrUnbalanced)
	default:
		return 0, errAt(tail.Pos, ErrTrailing)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errAt(0, ErrNotFinite)
	}
	return v, nil
}

type parser struct {
	items []Item
	pos   int
	depth int
}

func (p *parser) peek() Item {
	return p.items[p.pos]
}

func (p *parser) next() Item {
	item := p.items[p.pos]
	if item.Token != EOF {
		p.pos++
	}
	return item
}

// parseBinary implements precedence climbing: it consumes operators whose
// precedence is at least minPrec
func (p *parser) parseBinary(minPrec int) (float64, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return 0, err
	}

	for {
		op := p.peek()
		prec := binaryPrecedence(op.Token)
		if prec == 0 || prec < minPrec {
			return lhs, nil
		}
		p.next()

		rhs, err := p.parseBinary(prec + 1)
		if err != nil {
			return 0, err
		}

		lhs, err = apply(op, lhs, rhs)
		if err != nil {
			return 0, err
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	item := p.peek()
	if item.Token != PLUS && item.Token != MINUS {
		return p.parsePrimary()
	}

	if err := p.enter(item.Pos); err != nil {
		return 0, err
	}
	defer p.leave()

	p.next()
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	if item.Token == MINUS {
		return -v, nil
	}
	return v, nil
}

func (p *parser) parsePrimary() (float64, error) {
	item := p.next()

	switch item.Token {
	case NUMBER:
		return item.Value, nil

	case LPAREN:
		if err := p.enter(item.Pos); err != nil {
			return 0, err
		}
		defer p.leave()

		v, err := p.parseBinary(1)
		if err != nil {
			return 0, err
		}
		if closing := p.next(); closing.Token != RPAREN {
			return 0, errAt(closing.Pos, ErrUnbalanced)
		}
		return v, nil

	}

	// EOF, an operator or ")" where an operand should be: "3+", "*3", "()"
	return 0, errAt(item.Pos, ErrMissingOperand)
}

func (p *parser) enter(pos int) error {
	p.depth++
	if p.depth > MaxDepth {
		return errAt(pos, ErrTooDeep)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func apply(op Item, lhs, rhs float64) (float64, error) {
	var v float64
	switch op.Token {
	case PLUS:
		v = lhs + rhs
	case MINUS:
		v = lhs - rhs
	case STAR:
		v = lhs * rhs
	case SLASH:
		if rhs == 0 {
			return 0, errAt(op.Pos, ErrDivideByZero)
		}
		v = lhs / rhs
	case PERCENT:
		if rhs == 0 {
			return 0, errAt(op.Pos, ErrDivideByZero)
		}
		v = math.Mod(lhs, rhs)
	}

	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, errAt(op.Pos, ErrNotFinite)
	}
	return v, nil
}
