package selection

import (
	"golang.org/x/text/unicode/norm"
)

// PrefixLength is the number of leading filename characters that identify a shoot location.
const PrefixLength = 4

// Photo is a single catalog entry. Records are treated as immutable.
type Photo struct {
	Filename string `json:"filename"`
	Color    Color  `json:"color"`
	Category string `json:"category,omitempty"`
}

// Prefix returns the photo's location prefix.
func (p Photo) Prefix() string {
	return LocationPrefix(p.Filename)
}

// LocationPrefix returns the first PrefixLength characters of a filename.
// Filenames are NFC-normalized first so decomposed names from macOS volumes
// share a prefix with their composed form.
func LocationPrefix(filename string) string {
	s := norm.NFC.String(filename)
	n := 0
	for i := range s {
		if n == PrefixLength {
			return s[:i]
		}
		n++
	}
	return s
}
