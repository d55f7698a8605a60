// Package calc holds the calculator state: the expression being typed, the
// last result, the memory register and the session history.
package calc

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ellery/starcalc/internal/expr"
)

const (
	// Placeholder is the expression shown when nothing has been typed
	Placeholder = "0"

	// ErrorText is shown as the result after a failed evaluation
	ErrorText = "Error"
)

// Function names a unary scientific function
type Function string

const (
	FuncSin    Function = "sin"
	FuncCos    Function = "cos"
	FuncTan    Function = "tan"
	FuncLog    Function = "log" // Base 10
	FuncLn     Function = "ln"
	FuncSqrt   Function = "sqrt"
	FuncSquare Function = "square"
)

// Functions lists the scientific functions in keypad order
var Functions = []Function{FuncSin, FuncCos, FuncTan, FuncLog, FuncLn, FuncSqrt, FuncSquare}

var functionImpls = map[Function]func(float64) float64{
	FuncSin:    math.Sin,
	FuncCos:    math.Cos,
	FuncTan:    math.Tan,
	FuncLog:    math.Log10,
	FuncLn:     math.Log,
	FuncSqrt:   math.Sqrt,
	FuncSquare: func(x float64) float64 { return x * x },
}

// MemoryOp is one of the four memory register operations
type MemoryOp int

const (
	MemoryAdd MemoryOp = iota
	MemorySubtract
	MemoryRecall
	MemoryClear
)

// String returns the keypad label for the operation
func (op MemoryOp) String() string {
	switch op {
	case MemoryAdd:
		return "M+"
	case MemorySubtract:
		return "M-"
	case MemoryRecall:
		return "MR"
	case MemoryClear:
		return "MC"
	}
	return "M?"
}

// Operators are the non-digit tokens AppendOperator accepts
const Operators = "+-*/.()%"

// replaceable is the set of trailing characters a new operator overwrites
const replaceable = "+-*/."

// Controller owns the expression, result, memory and history.
// It is not safe for concurrent use; the UI drives it from a single goroutine.
type Controller struct {
	expression string
	result     string
	hasResult  bool
	memory     float64
	history    []Entry
}

// NewController creates a controller in its initial state
func NewController() *Controller {
	return &Controller{
		expression: Placeholder,
	}
}

// Expression returns the current editable expression (never empty)
func (c *Controller) Expression() string {
	return c.expression
}

// Result returns the last evaluation outcome, if there has been one since the last Clear
func (c *Controller) Result() (string, bool) {
	return c.result, c.hasResult
}

// HasResult returns true once an evaluation has completed (successfully or not)
func (c *Controller) HasResult() bool {
	return c.hasResult
}

// IsError returns true if the last evaluation failed
func (c *Controller) IsError() bool {
	return c.hasResult && c.result == ErrorText
}

// Preview returns the line shown above the expression: "<expression> =" once
// a result exists, empty otherwise
func (c *Controller) Preview() string {
	if !c.hasResult {
		return ""
	}
	return c.expression + " ="
}

// MemoryValue returns the memory register
func (c *Controller) MemoryValue() float64 {
	return c.memory
}

// History returns a copy of the history, oldest first
func (c *Controller) History() []Entry {
	out := make([]Entry, len(c.history))
	copy(out, c.history)
	return out
}

// HistoryLen returns the number of history entries
func (c *Controller) HistoryLen() int {
	return len(c.history)
}

// AppendDigit adds a digit, replacing the "0" placeholder
func (c *Controller) AppendDigit(d rune) error {
	if d < '0' || d > '9' {
		return fmt.Errorf("%w: %q", ErrInvalidInput, d)
	}
	if c.expression == Placeholder {
		c.expression = string(d)
	} else {
		c.expression += string(d)
	}
	return nil
}

// AppendOperator adds an operator, parenthesis, percent sign or decimal point.
// If the expression already ends in an operator or decimal point, that
// character is replaced so two operators never sit side by side.
// The display glyphs × and ÷ are stored as * and /.
func (c *Controller) AppendOperator(op rune) error {
	switch op {
	case expr.RuneTimes:
		op = '*'
	case expr.RuneDivide:
		op = '/'
	}
	if !strings.ContainsRune(Operators, op) {
		return fmt.Errorf("%w: %q", ErrInvalidInput, op)
	}

	last, size := utf8.DecodeLastRuneInString(c.expression)
	if strings.ContainsRune(replaceable, last) {
		c.expression = c.expression[:len(c.expression)-size] + string(op)
	} else {
		c.expression += string(op)
	}
	return nil
}

// Evaluate computes the expression. On success the formatted result becomes
// both the displayed result and the new expression, and a history entry is
// appended. On failure the result shows ErrorText and the expression resets.
func (c *Controller) Evaluate() error {
	input := c.expression

	v, err := expr.Eval(sanitize(input))
	if err != nil {
		c.fail()
		return fmt.Errorf("%w: %w", ErrEvaluation, err)
	}

	c.succeed("", input, FormatResult(v))
	return nil
}

// ApplyFunction applies a scientific function to the expression read as a
// single number (not evaluated as arithmetic)
func (c *Controller) ApplyFunction(fn Function) error {
	impl, ok := functionImpls[fn]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFunction, fn)
	}

	input := c.expression
	v := impl(ParseLeadingFloat(input))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		c.fail()
		return fmt.Errorf("%w: %s(%s): %w", ErrEvaluation, fn, input, ErrNotFinite)
	}

	c.succeed(fn, input, FormatResult(v))
	return nil
}

// ApplyMemory runs a memory operation. Add and subtract read the expression
// as a number; an expression that is not a number is rejected and the
// register keeps its value.
func (c *Controller) ApplyMemory(op MemoryOp) error {
	switch op {
	case MemoryAdd, MemorySubtract:
		operand := ParseLeadingFloat(c.expression)
		if math.IsNaN(operand) || math.IsInf(operand, 0) {
			return fmt.Errorf("%w: %s %q", ErrInvalidOperand, op, c.expression)
		}
		if op == MemorySubtract {
			operand = -operand
		}
		next := c.memory + operand
		if math.IsInf(next, 0) {
			return fmt.Errorf("%w: %s overflows memory", ErrInvalidOperand, op)
		}
		c.memory = next
	case MemoryRecall:
		c.expression = NumberString(c.memory)
	case MemoryClear:
		c.memory = 0
	default:
		return fmt.Errorf("%w: memory op %d", ErrInvalidInput, op)
	}
	return nil
}

// Clear resets the expression and result. Memory and history are kept.
func (c *Controller) Clear() {
	c.expression = Placeholder
	c.result = ""
	c.hasResult = false
}

// DeleteLast removes the last character, falling back to the placeholder
func (c *Controller) DeleteLast() {
	_, size := utf8.DecodeLastRuneInString(c.expression)
	c.expression = c.expression[:len(c.expression)-size]
	if c.expression == "" {
		c.expression = Placeholder
	}
}

// Paste types text into the expression as if each character had been
// pressed. Whitespace and thousands separators are skipped. Input stops at
// the first character that is neither a digit nor an operator.
func (c *Controller) Paste(text string) error {
	for _, r := range text {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ',':
			continue
		case r >= '0' && r <= '9':
			c.AppendDigit(r)
		default:
			if err := c.AppendOperator(r); err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidOperand, text)
			}
		}
	}
	return nil
}

// Load replaces the expression verbatim and clears the result. An empty
// string loads the placeholder.
func (c *Controller) Load(expression string) {
	c.Clear()
	if expression != "" {
		c.expression = expression
	}
}

// UseHistory loads the result of a history entry as the expression
func (c *Controller) UseHistory(id string) error {
	for _, e := range c.history {
		if e.ID == id {
			c.Load(e.Output)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownEntry, id)
}

func (c *Controller) succeed(fn Function, input, formatted string) {
	c.history = append(c.history, newEntry(fn, input, formatted))
	c.result = formatted
	c.hasResult = true
	c.expression = formatted
}

func (c *Controller) fail() {
	c.result = ErrorText
	c.hasResult = true
	c.expression = Placeholder
}

// sanitize swaps the display glyphs for the operators the evaluator reads
func sanitize(s string) string {
	return strings.NewReplacer(string(expr.RuneTimes), "*", string(expr.RuneDivide), "/").Replace(s)
}
