package search

import "strings"

// Mode selects which kinds of entries a search returns
type Mode int

const (
	All Mode = iota
	FileOnly
	DirectoryOnly
)

// Keyword ids as they appear in the [search] config table
const (
	KeywordAll       = "fa_kw"
	KeywordFile      = "ff_kw"
	KeywordDirectory = "fd_kw"
)

func (m Mode) String() string {
	switch m {
	case FileOnly:
		return "file"
	case DirectoryOnly:
		return "directory"
	default:
		return "all"
	}
}

// typeFilter returns the fd -t value for the mode, empty for All
func (m Mode) typeFilter() string {
	switch m {
	case FileOnly:
		return "f"
	case DirectoryOnly:
		return "d"
	default:
		return ""
	}
}

// ParseMode accepts the names printed by Mode.String
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(s) {
	case "all", "":
		return All, true
	case "file", "f":
		return FileOnly, true
	case "directory", "dir", "d":
		return DirectoryOnly, true
	default:
		return All, false
	}
}
