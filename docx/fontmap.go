package docx

import "strings"

// fontAliases maps substrings of extracted PDF face names to installed
// Word font families. Matching is case-insensitive and first-hit wins,
// so more specific entries come before generic ones.
var fontAliases = []struct {
	match  string
	family string
}{
	{"times", "Times New Roman"},
	{"helvetica", "Arial"},
	{"arial", "Arial"},
	{"courier", "Courier New"},
	{"calibri", "Calibri"},
	{"cambria", "Cambria"},
	{"georgia", "Georgia"},
	{"verdana", "Verdana"},
	{"tahoma", "Tahoma"},
	{"garamond", "Garamond"},
	{"symbol", "Symbol"},
	{"mincho", "MS Mincho"},
	{"gothic", "MS Gothic"},
	{"simsun", "SimSun"},
	{"simhei", "SimHei"},
	{"batang", "Batang"},
}

// defaultFamily is the substitution for faces nothing in the alias table
// recognizes.
const defaultFamily = "Arial"

// NormalizeFont maps an extracted PDF face name to an installed font
// family. Subset prefixes ("ABCDEF+Times-Roman") are stripped before
// matching.
func NormalizeFont(face string) string {
	if i := strings.IndexByte(face, '+'); i >= 0 && i == 6 {
		face = face[i+1:]
	}
	lower := strings.ToLower(face)
	for _, a := range fontAliases {
		if strings.Contains(lower, a.match) {
			return a.family
		}
	}
	return defaultFamily
}
