// Package sheetsize classifies drawing sheets into GOST 2.301 formats and
// tallies formats across drawing documents.
package sheetsize

import (
	"math"

	"cadtools/internal/domain"
)

// dimension is the reference height and width of a format in millimeters.
type dimension struct {
	height int
	width  int
}

// reference is indexed by domain.SheetSize. It is never written after init.
var reference = [domain.StandardSheetSizeCount]dimension{
	domain.SheetSizeA0:   {841, 1189},
	domain.SheetSizeA1:   {594, 841},
	domain.SheetSizeA2:   {420, 594},
	domain.SheetSizeA3:   {297, 420},
	domain.SheetSizeA4:   {210, 297},
	domain.SheetSizeA5:   {148, 210},
	domain.SheetSizeA0x2: {1189, 1682},
	domain.SheetSizeA0x3: {1189, 2523},
	domain.SheetSizeA1x3: {841, 1783},
	domain.SheetSizeA1x4: {841, 2378},
	domain.SheetSizeA2x3: {594, 1261},
	domain.SheetSizeA2x4: {594, 1682},
	domain.SheetSizeA2x5: {594, 2102},
	domain.SheetSizeA3x3: {420, 891},
	domain.SheetSizeA3x4: {420, 1189},
	domain.SheetSizeA3x5: {420, 1486},
	domain.SheetSizeA3x6: {420, 1783},
	domain.SheetSizeA3x7: {420, 2080},
	domain.SheetSizeA4x3: {297, 630},
	domain.SheetSizeA4x4: {297, 841},
	domain.SheetSizeA4x5: {297, 1051},
	domain.SheetSizeA4x6: {297, 1261},
	domain.SheetSizeA4x7: {297, 1471},
	domain.SheetSizeA4x8: {297, 1682},
	domain.SheetSizeA4x9: {297, 1892},
}

var a4Area = Area(domain.SheetSizeA4)

// Sizes returns the standard formats in table order.
func Sizes() []domain.SheetSize {
	out := make([]domain.SheetSize, domain.StandardSheetSizeCount)
	for i := range out {
		out[i] = domain.SheetSize(i)
	}
	return out
}

// AllSizes returns the standard formats followed by domain.SheetSizeNonStandard.
func AllSizes() []domain.SheetSize {
	return append(Sizes(), domain.SheetSizeNonStandard)
}

// Height returns the reference height of s, or 0 for non-standard sheets.
func Height(s domain.SheetSize) int {
	if !isStandard(s) {
		return 0
	}
	return reference[s].height
}

// Width returns the reference width of s, or 0 for non-standard sheets.
func Width(s domain.SheetSize) int {
	if !isStandard(s) {
		return 0
	}
	return reference[s].width
}

// Area returns the reference area of s in square millimeters.
func Area(s domain.SheetSize) int {
	return Height(s) * Width(s)
}

// A4Equivalent returns how many A4 sheets make up s: the ratio of the areas
// rounded half to even.
func A4Equivalent(s domain.SheetSize) int {
	return int(math.RoundToEven(float64(Area(s)) / float64(a4Area)))
}

// Lookup resolves a format name such as "A3" or "a2x3".
func Lookup(name string) (domain.SheetSize, bool) {
	return domain.ParseSheetSize(name)
}

func isStandard(s domain.SheetSize) bool {
	return s >= domain.SheetSizeA0 && int(s) < domain.StandardSheetSizeCount
}
