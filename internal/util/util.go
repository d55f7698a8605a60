// Package util holds build information and small text helpers shared by
// the calculator screen and the command line tools.
package util

import (
	"log"
	"os"
	"strings"

	"github.com/blang/semver"
	runewidth "github.com/mattn/go-runewidth"
)

var (
	// These variables should be set by the linker when compiling

	// Version is the version number or commit hash
	Version = "0.0.0-unknown"
	// CommitHash is the commit this binary was built from
	CommitHash = "Unknown"
	// CompileDate is the date this binary was compiled on
	CompileDate = "Unknown"
	// Debug logging
	Debug = "OFF"

	// SemVersion is the Semantic version
	SemVersion semver.Version
)

// FileMode is the mode log and settings files are created with
const FileMode os.FileMode = 0644

func init() {
	var err error
	SemVersion, err = semver.ParseTolerant(Version)
	if err != nil {
		log.Println("Invalid version: ", Version, err)
	}
}

// VersionString is the one-line description printed by -version
func VersionString() string {
	s := "starcalc " + SemVersion.String()
	if CommitHash != "Unknown" {
		s += " (" + CommitHash + ")"
	}
	return s
}

// StringWidth is the number of terminal cells s occupies
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TailFit returns the longest suffix of s that fits in width cells. When s
// has to be cut, the first cell shows ellipsis instead.
func TailFit(s string, width int, ellipsis string) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}

	ew := runewidth.StringWidth(ellipsis)
	if ew >= width {
		ellipsis, ew = "", 0
	}

	runes := []rune(s)
	used := ew
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > width {
			break
		}
		used += w
		start--
	}
	return ellipsis + string(runes[start:])
}

// HeadFit truncates s to width cells, ending with ellipsis when cut
func HeadFit(s string, width int, ellipsis string) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// PadLeft right-aligns s in width cells
func PadLeft(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// Center pads s on both sides to width cells
func Center(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
