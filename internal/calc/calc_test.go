package calc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeKeys(t *testing.T, c *Controller, keys string) {
	t.Helper()
	for _, r := range keys {
		var err error
		if r >= '0' && r <= '9' {
			err = c.AppendDigit(r)
		} else {
			err = c.AppendOperator(r)
		}
		require.NoError(t, err, "key %q", r)
	}
}

func TestNewController_Defaults(t *testing.T) {
	c := NewController()

	assert.Equal(t, "0", c.Expression())
	_, ok := c.Result()
	assert.False(t, ok)
	assert.Equal(t, 0.0, c.MemoryValue())
	assert.Empty(t, c.History())
	assert.Equal(t, "", c.Preview())
}

func TestAppendDigit_ReplacesPlaceholder(t *testing.T) {
	c := NewController()
	require.NoError(t, c.AppendDigit('5'))
	assert.Equal(t, "5", c.Expression())

	require.NoError(t, c.AppendDigit('0'))
	require.NoError(t, c.AppendDigit('7'))
	assert.Equal(t, "507", c.Expression())
}

func TestAppendDigit_ZeroOnPlaceholderStaysZero(t *testing.T) {
	c := NewController()
	require.NoError(t, c.AppendDigit('0'))
	assert.Equal(t, "0", c.Expression())
}

func TestAppendDigit_RejectsNonDigits(t *testing.T) {
	c := NewController()
	err := c.AppendDigit('x')
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "0", c.Expression())
}

func TestAppendOperator_ReplacesTrailingOperator(t *testing.T) {
	tests := []struct {
		start string
		op    rune
		want  string
	}{
		{"3+", '-', "3-"},
		{"3*", '/', "3/"},
		{"3.", '+', "3+"},
		{"3-", '.', "3."},
		{"3+", '(', "3("},
		{"3", '+', "3+"},
		{"3", '%', "3%"},
		{"(", '(', "(("},
		{"3)", ')', "3))"},
		{"3%", '+', "3%+"},
		{"0", '.', "0."},
		{"0", '(', "0("},
		{"3", '×', "3*"},
		{"3+", '÷', "3/"},
	}

	for _, tt := range tests {
		t.Run(tt.start+string(tt.op), func(t *testing.T) {
			c := NewController()
			c.Load(tt.start)
			require.NoError(t, c.AppendOperator(tt.op))
			assert.Equal(t, tt.want, c.Expression())
		})
	}
}

func TestAppendOperator_RejectsUnknown(t *testing.T) {
	c := NewController()
	err := c.AppendOperator('^')
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "0", c.Expression())
}

func TestEvaluate_Success(t *testing.T) {
	c := NewController()
	typeKeys(t, c, "2+2")

	require.NoError(t, c.Evaluate())

	res, ok := c.Result()
	assert.True(t, ok)
	assert.Equal(t, "4", res)
	assert.Equal(t, "4", c.Expression())
	assert.Equal(t, "4 =", c.Preview())
	require.Len(t, c.History(), 1)
	assert.Equal(t, "2+2 = 4", c.History()[0].String())
}

func TestEvaluate_IdempotentOnOwnOutput(t *testing.T) {
	c := NewController()
	typeKeys(t, c, "2+2")
	require.NoError(t, c.Evaluate())
	require.NoError(t, c.Evaluate())

	assert.Equal(t, "4", c.Expression())
	res, _ := c.Result()
	assert.Equal(t, "4", res)
	require.Len(t, c.History(), 2)
	assert.Equal(t, "4 = 4", c.History()[1].String())
}

func TestEvaluate_Formatting(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10", "10"},
		{"0.1+0.2", "0.3"},
		{"1/3", "0.33333333"},
		{"2/3", "0.66666667"},
		{"-1/4", "-0.25"},
		{"7%3", "1"},
		{"1.5*2", "3"},
		{"100.000000001", "100"},
		{"1e21*10", "1e+22"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := NewController()
			c.Load(tt.input)
			require.NoError(t, c.Evaluate())
			assert.Equal(t, tt.want, c.Expression())
		})
	}
}

func TestEvaluate_DisplayGlyphs(t *testing.T) {
	c := NewController()
	c.Load("6×7÷2")
	require.NoError(t, c.Evaluate())
	assert.Equal(t, "21", c.Expression())
	assert.Equal(t, "6×7÷2 = 21", c.History()[0].String())
}

func TestEvaluate_DivideByZero(t *testing.T) {
	c := NewController()
	typeKeys(t, c, "5/0")

	err := c.Evaluate()

	assert.True(t, errors.Is(err, ErrEvaluation))
	res, ok := c.Result()
	assert.True(t, ok)
	assert.Equal(t, "Error", res)
	assert.True(t, c.IsError())
	assert.Equal(t, "0", c.Expression())
	assert.Empty(t, c.History(), "failed evaluations are not recorded")
}

func TestEvaluate_Malformed(t *testing.T) {
	for _, input := range []string{"3+", "(1+2", "0(", "()"} {
		t.Run(input, func(t *testing.T) {
			c := NewController()
			c.Load(input)
			assert.True(t, errors.Is(c.Evaluate(), ErrEvaluation))
			assert.Equal(t, "0", c.Expression())
			assert.True(t, c.IsError())
		})
	}
}

func TestApplyFunction(t *testing.T) {
	tests := []struct {
		input string
		fn    Function
		want  string
		entry string
	}{
		{"16", FuncSqrt, "4", "sqrt(16) = 4"},
		{"3", FuncSquare, "9", "square(3) = 9"},
		{"100", FuncLog, "2", "log(100) = 2"},
		{"1", FuncLn, "0", "ln(1) = 0"},
		{"0", FuncSin, "0", "sin(0) = 0"},
		{"0", FuncCos, "1", "cos(0) = 1"},
		{"1", FuncTan, "1.55740772", "tan(1) = 1.55740772"},
		{"2", FuncLn, "0.69314718", "ln(2) = 0.69314718"},
		{"12+3", FuncSquare, "144", "square(12+3) = 144"},
	}

	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			c := NewController()
			c.Load(tt.input)
			require.NoError(t, c.ApplyFunction(tt.fn))

			assert.Equal(t, tt.want, c.Expression())
			res, _ := c.Result()
			assert.Equal(t, tt.want, res)
			require.Len(t, c.History(), 1)
			assert.Equal(t, tt.entry, c.History()[0].String())
		})
	}
}

func TestApplyFunction_DomainErrors(t *testing.T) {
	tests := []struct {
		input string
		fn    Function
	}{
		{"-4", FuncSqrt},
		{"0", FuncLog},
		{"-1", FuncLn},
		{"(", FuncSin},
	}

	for _, tt := range tests {
		t.Run(string(tt.fn)+"("+tt.input+")", func(t *testing.T) {
			c := NewController()
			c.Load(tt.input)

			err := c.ApplyFunction(tt.fn)

			assert.True(t, errors.Is(err, ErrEvaluation))
			assert.True(t, errors.Is(err, ErrNotFinite))
			assert.True(t, c.IsError())
			assert.Equal(t, "0", c.Expression())
			assert.Empty(t, c.History())
		})
	}
}

func TestApplyFunction_SqrtOfTypedNegative(t *testing.T) {
	c := NewController()
	require.NoError(t, c.AppendOperator('-'))
	require.NoError(t, c.AppendDigit('4'))
	assert.Equal(t, "0-4", c.Expression(), "operators never replace the placeholder")

	// "0-4" reads as 0, so the typed negative has to come from an evaluation
	require.NoError(t, c.Evaluate())
	assert.Equal(t, "-4", c.Expression())

	assert.Error(t, c.ApplyFunction(FuncSqrt))
	res, _ := c.Result()
	assert.Equal(t, "Error", res)
	assert.Equal(t, "0", c.Expression())
}

func TestApplyFunction_Unknown(t *testing.T) {
	c := NewController()
	c.Load("5")

	err := c.ApplyFunction(Function("cbrt"))

	assert.True(t, errors.Is(err, ErrUnknownFunction))
	assert.Equal(t, "5", c.Expression())
	assert.False(t, c.HasResult())
}

func TestMemory_ClearThenRecall(t *testing.T) {
	c := NewController()
	c.Load("42")
	require.NoError(t, c.ApplyMemory(MemoryAdd))

	require.NoError(t, c.ApplyMemory(MemoryClear))
	require.NoError(t, c.ApplyMemory(MemoryRecall))

	assert.Equal(t, "0", c.Expression())
	assert.Equal(t, 0.0, c.MemoryValue())
}

func TestMemory_AddThenRecall(t *testing.T) {
	c := NewController()
	typeKeys(t, c, "5")
	require.NoError(t, c.ApplyMemory(MemoryAdd))

	c.Clear()
	require.NoError(t, c.ApplyMemory(MemoryRecall))

	assert.Equal(t, "5", c.Expression())
}

func TestMemory_Accumulates(t *testing.T) {
	c := NewController()
	c.Load("10")
	require.NoError(t, c.ApplyMemory(MemoryAdd))
	c.Load("2.5")
	require.NoError(t, c.ApplyMemory(MemorySubtract))
	c.Load("0.1")
	require.NoError(t, c.ApplyMemory(MemoryAdd))

	require.NoError(t, c.ApplyMemory(MemoryRecall))
	assert.Equal(t, "7.6", c.Expression())
}

func TestMemory_RejectsNonNumericOperand(t *testing.T) {
	c := NewController()
	c.Load("7")
	require.NoError(t, c.ApplyMemory(MemoryAdd))

	c.Load("(3")
	err := c.ApplyMemory(MemoryAdd)

	assert.True(t, errors.Is(err, ErrInvalidOperand))
	assert.Equal(t, 7.0, c.MemoryValue(), "a bad operand must not touch the register")
	assert.Equal(t, "(3", c.Expression())
}

func TestMemory_NeverAppendsHistory(t *testing.T) {
	c := NewController()
	c.Load("3")
	for _, op := range []MemoryOp{MemoryAdd, MemorySubtract, MemoryRecall, MemoryClear} {
		require.NoError(t, c.ApplyMemory(op))
	}
	assert.Empty(t, c.History())
}

func TestClear_KeepsMemoryAndHistory(t *testing.T) {
	c := NewController()
	typeKeys(t, c, "1+1")
	require.NoError(t, c.Evaluate())
	require.NoError(t, c.ApplyMemory(MemoryAdd))

	c.Clear()

	assert.Equal(t, "0", c.Expression())
	assert.False(t, c.HasResult())
	assert.Equal(t, "", c.Preview())
	assert.Equal(t, 2.0, c.MemoryValue())
	assert.Len(t, c.History(), 1)
}

func TestDeleteLast(t *testing.T) {
	c := NewController()
	typeKeys(t, c, "12+")

	c.DeleteLast()
	assert.Equal(t, "12", c.Expression())
	c.DeleteLast()
	assert.Equal(t, "1", c.Expression())
	c.DeleteLast()
	assert.Equal(t, "0", c.Expression(), "deleting the last character yields the placeholder")
	c.DeleteLast()
	assert.Equal(t, "0", c.Expression())
	assert.Empty(t, c.History())
}

func TestDeleteLast_MultiByte(t *testing.T) {
	c := NewController()
	c.Load("6×")
	c.DeleteLast()
	assert.Equal(t, "6", c.Expression())
}

func TestHistory_OnePerSuccess(t *testing.T) {
	c := NewController()
	c.Load("1+2")
	require.NoError(t, c.Evaluate())
	c.Load("9")
	require.NoError(t, c.ApplyFunction(FuncSqrt))
	c.Load("1/0")
	_ = c.Evaluate()
	c.DeleteLast()
	c.Clear()

	h := c.History()
	require.Len(t, h, 2)
	assert.Equal(t, "1+2 = 3", h[0].String())
	assert.Equal(t, "sqrt(9) = 3", h[1].String())
	assert.NotEqual(t, h[0].ID, h[1].ID)
}

func TestHistory_ReturnsCopy(t *testing.T) {
	c := NewController()
	c.Load("1+1")
	require.NoError(t, c.Evaluate())

	h := c.History()
	h[0].Output = "tampered"

	assert.Equal(t, "2", c.History()[0].Output)
}

func TestUseHistory(t *testing.T) {
	c := NewController()
	c.Load("20*2")
	require.NoError(t, c.Evaluate())
	c.Load("1")
	id := c.History()[0].ID

	require.NoError(t, c.UseHistory(id))

	assert.Equal(t, "40", c.Expression())
	assert.False(t, c.HasResult())
	assert.Len(t, c.History(), 1)

	assert.True(t, errors.Is(c.UseHistory("missing"), ErrUnknownEntry))
}

func TestPaste(t *testing.T) {
	c := NewController()
	require.NoError(t, c.Paste("1,234 × 2"))
	assert.Equal(t, "1234*2", c.Expression())

	err := c.Paste("+x")
	assert.True(t, errors.Is(err, ErrInvalidOperand))
	assert.Equal(t, "1234*2+", c.Expression())
}
