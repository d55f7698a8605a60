package keypad

import (
	"sync"

	"github.com/zyedidia/clipper"
)

// Clipboard is where copy and paste go
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct {
	c clipper.Clipboard
}

// SystemClipboard returns the first working system clipboard (pbcopy,
// wl-copy, xclip, xsel, OSC 52 ...)
func SystemClipboard() (Clipboard, error) {
	c, err := clipper.GetClipboard(clipper.Clipboards...)
	if err != nil {
		return nil, err
	}
	return &systemClipboard{c: c}, nil
}

func (s *systemClipboard) ReadAll() (string, error) {
	b, err := s.c.ReadAll(clipper.RegClipboard)
	return string(b), err
}

func (s *systemClipboard) WriteAll(text string) error {
	return s.c.WriteAll(clipper.RegClipboard, []byte(text))
}

// MemoryClipboard only shares text within this process
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

// NewMemoryClipboard returns an empty in-process clipboard
func NewMemoryClipboard() *MemoryClipboard {
	return &MemoryClipboard{}
}

func (m *MemoryClipboard) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *MemoryClipboard) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}
