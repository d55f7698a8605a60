package keypad

import (
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/ellery/starcalc/internal/calc"
	"github.com/sahilm/fuzzy"
)

// HistoryRow is one visible line of the history list
type HistoryRow struct {
	Entry   calc.Entry
	Text    string
	Matched map[int]bool // Byte offsets into Text matched by the filter
}

// HistoryView is the scrollable, filterable history list. Rows are kept
// oldest first so the newest entry sits at the bottom.
type HistoryView struct {
	entries []calc.Entry
	rows    []HistoryRow

	Filter    string
	Filtering bool

	selected string // Entry ID
	scroll   int
	follow   bool // Keep the selection in view on the next layout
}

// NewHistoryView creates an empty view
func NewHistoryView() *HistoryView {
	return &HistoryView{follow: true}
}

// Reset replaces the entries and selects the newest one
func (h *HistoryView) Reset(entries []calc.Entry) {
	h.entries = entries
	h.selected = ""
	h.refilter()
}

// Rows returns the entries that pass the filter
func (h *HistoryView) Rows() []HistoryRow {
	return h.rows
}

// Total returns the number of entries before filtering
func (h *HistoryView) Total() int {
	return len(h.entries)
}

func (h *HistoryView) refilter() {
	h.rows = nil

	if h.Filter == "" {
		for _, e := range h.entries {
			h.rows = append(h.rows, HistoryRow{Entry: e, Text: e.String()})
		}
	} else {
		source := make([]string, len(h.entries))
		for i, e := range h.entries {
			source[i] = e.String()
		}
		matches := fuzzy.Find(h.Filter, source)

		// Keep history order rather than score order
		sort.Slice(matches, func(i, j int) bool { return matches[i].Index < matches[j].Index })
		for _, m := range matches {
			matched := make(map[int]bool, len(m.MatchedIndexes))
			for _, idx := range m.MatchedIndexes {
				matched[idx] = true
			}
			h.rows = append(h.rows, HistoryRow{Entry: h.entries[m.Index], Text: m.Str, Matched: matched})
		}
	}

	if h.indexOf(h.selected) < 0 {
		h.selected = ""
		if n := len(h.rows); n > 0 {
			h.selected = h.rows[n-1].Entry.ID
		}
	}
	h.follow = true
}

func (h *HistoryView) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, r := range h.rows {
		if r.Entry.ID == id {
			return i
		}
	}
	return -1
}

// SelectedID returns the ID of the selected entry, or "" with no rows
func (h *HistoryView) SelectedID() string {
	return h.selected
}

// SelectedIndex returns the selected row, or -1
func (h *HistoryView) SelectedIndex() int {
	return h.indexOf(h.selected)
}

// MoveSelection moves the selection by delta rows, clamped to the list
func (h *HistoryView) MoveSelection(delta int) {
	if len(h.rows) == 0 {
		return
	}
	i := h.indexOf(h.selected) + delta
	if i < 0 {
		i = 0
	}
	if i >= len(h.rows) {
		i = len(h.rows) - 1
	}
	h.selected = h.rows[i].Entry.ID
	h.follow = true
}

func (h *HistoryView) selectIndex(i int) {
	if i >= 0 && i < len(h.rows) {
		h.selected = h.rows[i].Entry.ID
	}
}

// ScrollBy scrolls without moving the selection
func (h *HistoryView) ScrollBy(delta int) {
	h.scroll += delta
	h.follow = false
}

// Window returns the range of rows to draw in height lines
func (h *HistoryView) Window(height int) (start, end int) {
	if height <= 0 {
		return 0, 0
	}
	if h.follow {
		if i := h.indexOf(h.selected); i >= 0 {
			if i < h.scroll {
				h.scroll = i
			}
			if i >= h.scroll+height {
				h.scroll = i - height + 1
			}
		}
	}

	maxScroll := len(h.rows) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if h.scroll > maxScroll {
		h.scroll = maxScroll
	}
	if h.scroll < 0 {
		h.scroll = 0
	}

	end = h.scroll + height
	if end > len(h.rows) {
		end = len(h.rows)
	}
	return h.scroll, end
}

// StartFilter begins typing a filter
func (h *HistoryView) StartFilter() {
	h.Filtering = true
}

// StopFilter leaves filter mode and clears the filter
func (h *HistoryView) StopFilter() {
	h.Filtering = false
	if h.Filter != "" {
		h.Filter = ""
		h.refilter()
	}
}

// TypeFilter appends to the filter
func (h *HistoryView) TypeFilter(r rune) {
	h.Filter += string(r)
	h.refilter()
}

// BackspaceFilter removes the last rune of the filter
func (h *HistoryView) BackspaceFilter() {
	if h.Filter == "" {
		return
	}
	runes := []rune(h.Filter)
	h.Filter = string(runes[:len(runes)-1])
	h.refilter()
}

// Footer describes the list, e.g. "12 entries" or "3 of 1,024 entries"
func (h *HistoryView) Footer() string {
	total := len(h.entries)
	noun := "entries"
	if total == 1 {
		noun = "entry"
	}
	if h.Filter != "" {
		return humanize.Comma(int64(len(h.rows))) + " of " + humanize.Comma(int64(total)) + " " + noun
	}
	return humanize.Comma(int64(total)) + " " + noun
}
