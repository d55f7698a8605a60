package config

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/micro-editor/tcell/v2"
	"gopkg.in/yaml.v2"
)

//go:embed bindings.yaml
var defaultBindings []byte

// Action names something a key can trigger
type Action string

const (
	ActionEvaluate       Action = "evaluate"
	ActionDelete         Action = "delete"
	ActionClear          Action = "clear"
	ActionSin            Action = "sin"
	ActionCos            Action = "cos"
	ActionTan            Action = "tan"
	ActionLog            Action = "log"
	ActionLn             Action = "ln"
	ActionSqrt           Action = "sqrt"
	ActionSquare         Action = "square"
	ActionMemoryAdd      Action = "memory-add"
	ActionMemorySubtract Action = "memory-subtract"
	ActionMemoryRecall   Action = "memory-recall"
	ActionMemoryClear    Action = "memory-clear"
	ActionToggleHistory  Action = "toggle-history"
	ActionFilterHistory  Action = "filter-history"
	ActionCopy           Action = "copy"
	ActionPaste          Action = "paste"
	ActionHelp           Action = "help"
	ActionMoveUp         Action = "move-up"
	ActionMoveDown       Action = "move-down"
	ActionMoveLeft       Action = "move-left"
	ActionMoveRight      Action = "move-right"
	ActionQuit           Action = "quit"
)

var (
	// ErrUnknownAction is returned for binding overrides naming no action
	ErrUnknownAction = errors.New("unknown action")

	// ErrBadKey is returned for key strings that can't be parsed
	ErrBadKey = errors.New("unrecognised key")
)

// Binding ties an action to its keys
type Binding struct {
	Action Action   `yaml:"action"`
	Keys   []string `yaml:"keys"`
	Help   string   `yaml:"help"`
}

// BindingSection groups bindings for the help screen
type BindingSection struct {
	Section  string    `yaml:"section"`
	Bindings []Binding `yaml:"bindings"`
}

// Key is a parsed key string
type Key struct {
	Code tcell.Key
	Rune rune // Only for tcell.KeyRune
}

var namedKeys = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"tab":       tcell.KeyTab,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
}

// ParseKey parses a single key string such as "q", "Enter" or "Ctrl-V"
func ParseKey(s string) (Key, error) {
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return Key{Code: tcell.KeyRune, Rune: r}, nil
	}

	lower := strings.ToLower(s)
	if lower == "space" {
		return Key{Code: tcell.KeyRune, Rune: ' '}, nil
	}
	if k, ok := namedKeys[lower]; ok {
		return Key{Code: k}, nil
	}

	if rest, ok := strings.CutPrefix(lower, "ctrl-"); ok && len(rest) == 1 && rest[0] >= 'a' && rest[0] <= 'z' {
		return Key{Code: tcell.KeyCtrlA + tcell.Key(rest[0]-'a')}, nil
	}

	var n int
	if _, err := fmt.Sscanf(lower, "f%d", &n); err == nil && n >= 1 && n <= 12 && lower == fmt.Sprintf("f%d", n) {
		return Key{Code: tcell.KeyF1 + tcell.Key(n-1)}, nil
	}

	return Key{}, fmt.Errorf("%w: %q", ErrBadKey, s)
}

// splitKeys splits an override value like "Enter, =" into key strings
func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// DefaultBindings parses the embedded binding table
func DefaultBindings() ([]BindingSection, error) {
	var sections []BindingSection
	if err := yaml.Unmarshal(defaultBindings, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func knownAction(a Action) bool {
	sections, err := DefaultBindings()
	if err != nil {
		return false
	}
	for _, s := range sections {
		for _, b := range s.Bindings {
			if b.Action == a {
				return true
			}
		}
	}
	return false
}

func validateBinding(action, keys string) error {
	if !knownAction(Action(action)) {
		return ErrUnknownAction
	}
	ks := splitKeys(keys)
	if len(ks) == 0 {
		return fmt.Errorf("%w: no keys given", ErrBadKey)
	}
	for _, k := range ks {
		if _, err := ParseKey(k); err != nil {
			return err
		}
	}
	return nil
}

// KeyMap resolves key events to actions
type KeyMap struct {
	sections []BindingSection
	lookup   map[Key]Action
}

// NewKeyMap builds the key map from the defaults plus overrides, which map
// action names to comma separated keys. An override replaces all of the
// action's default keys and takes its keys away from any other action.
// Invalid overrides are reported and skipped.
func NewKeyMap(overrides map[string]string) (*KeyMap, []ValidationError) {
	sections, err := DefaultBindings()
	if err != nil {
		return nil, []ValidationError{{Field: "bindings", Message: err.Error()}}
	}

	var errs []ValidationError
	valid := make(map[string]string, len(overrides))
	for action, keys := range overrides {
		if err := validateBinding(action, keys); err != nil {
			errs = append(errs, ValidationError{Field: "bindings." + action, Message: err.Error()})
			continue
		}
		valid[action] = keys
	}
	overrides = valid

	claimed := make(map[Key]Action)
	for action, keys := range overrides {
		for _, k := range splitKeys(keys) {
			key, _ := ParseKey(k)
			claimed[key] = Action(action)
		}
	}

	m := &KeyMap{lookup: make(map[Key]Action)}
	for _, s := range sections {
		sec := BindingSection{Section: s.Section}
		for _, b := range s.Bindings {
			var keys []string
			if o, ok := overrides[string(b.Action)]; ok {
				keys = splitKeys(o)
			} else {
				for _, k := range b.Keys {
					key, err := ParseKey(k)
					if err != nil {
						errs = append(errs, ValidationError{Field: "bindings." + string(b.Action), Message: err.Error()})
						continue
					}
					if owner, ok := claimed[key]; ok && owner != b.Action {
						continue
					}
					keys = append(keys, k)
				}
			}

			for _, k := range keys {
				key, _ := ParseKey(k)
				m.lookup[key] = b.Action
			}
			sec.Bindings = append(sec.Bindings, Binding{Action: b.Action, Keys: keys, Help: b.Help})
		}
		m.sections = append(m.sections, sec)
	}

	return m, errs
}

// Lookup returns the action bound to a key event
func (m *KeyMap) Lookup(ev *tcell.EventKey) (Action, bool) {
	key := Key{Code: ev.Key()}
	switch ev.Key() {
	case tcell.KeyRune:
		key.Rune = ev.Rune()
	case tcell.KeyBackspace:
		// Terminals disagree on which backspace they send
		key.Code = tcell.KeyBackspace2
	}
	a, ok := m.lookup[key]
	return a, ok
}

// KeysFor returns the key strings bound to action
func (m *KeyMap) KeysFor(action Action) []string {
	for _, s := range m.sections {
		for _, b := range s.Bindings {
			if b.Action == action {
				return b.Keys
			}
		}
	}
	return nil
}

// Sections returns the bindings grouped for display
func (m *KeyMap) Sections() []BindingSection {
	return m.sections
}
