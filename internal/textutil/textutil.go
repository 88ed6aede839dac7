// Package textutil holds small string helpers shared by the document and table tools.
package textutil

import (
	"strconv"
	"strings"
)

// Search returns the values that contain expr, ignoring case.
func Search(values []string, expr string) []string {
	out := []string{}
	needle := strings.ToLower(expr)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			out = append(out, v)
		}
	}
	return out
}

// IsNumeric reports whether s parses as a number, or as an integer when integer is set.
func IsNumeric(s string, integer bool) bool {
	s = strings.TrimSpace(s)
	if integer {
		_, err := strconv.Atoi(s)
		return err == nil
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// SplitNumberAndTitle splits a document name into its designation and title.
// The designation is made of the first occurrences non-empty parts separated
// by sep; the title is what remains with leading separator characters trimmed.
// With sep " " and one occurrence, "ABC.123.001 Bracket" yields
// "ABC.123.001" and "Bracket".
func SplitNumberAndTitle(name, sep string, occurrences int) (number, title string) {
	if name == "" || sep == "" {
		return "", ""
	}
	var parts []string
	for _, p := range strings.Split(name, sep) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	n := min(max(occurrences, 0), len(parts))
	number = strings.Join(parts[:n], sep)
	if strings.TrimSpace(number) == "" {
		return number, name
	}
	title = strings.TrimLeft(strings.Replace(name, number, "", -1), sep)
	return number, title
}
