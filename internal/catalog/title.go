package catalog

import (
	"regexp"
	"strings"
)

var titleSuffix = regexp.MustCompile(`[-_(（].*|\.\w+$`)

// BaseLocationName turns a photo filename into its display title by dropping
// everything from the first separator and the file extension.
// "九份老街-02.jpg" becomes "九份老街".
func BaseLocationName(filename string) string {
	return strings.TrimSpace(titleSuffix.ReplaceAllString(filename, ""))
}
