package calc

import (
	"fmt"

	"github.com/google/uuid"
)

// Entry is one completed evaluation. Entries are never modified after they
// are appended to the history.
type Entry struct {
	ID     string   // Unique per entry, stable for the session
	Func   Function // Empty for arithmetic evaluations
	Input  string   // Expression as typed, before evaluation
	Output string   // Formatted result
}

// String renders the entry as "<input> = <result>" or "<func>(<input>) = <result>"
func (e Entry) String() string {
	if e.Func != "" {
		return fmt.Sprintf("%s(%s) = %s", e.Func, e.Input, e.Output)
	}
	return fmt.Sprintf("%s = %s", e.Input, e.Output)
}

func newEntry(fn Function, input, output string) Entry {
	return Entry{
		ID:     uuid.New().String(),
		Func:   fn,
		Input:  input,
		Output: output,
	}
}
