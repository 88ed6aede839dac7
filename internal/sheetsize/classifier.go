package sheetsize

import (
	"math"

	"cadtools/internal/domain"
)

// Tolerance returns the allowed deviation in millimeters for a reference dimension.
func Tolerance(ref int) float64 {
	switch {
	case ref <= 150:
		return 1.5
	case ref <= 600:
		return 2.0
	default:
		return 3.0
	}
}

func within(value float64, ref int) bool {
	return math.Abs(value-float64(ref)) <= Tolerance(ref)
}

// Classify maps a sheet's height and width in millimeters to a standard format.
// Portrait and landscape orientations both match. When several formats match,
// the last one in table order wins. No match yields domain.SheetSizeNonStandard.
func Classify(height, width float64) domain.SheetSize {
	result := domain.SheetSizeNonStandard
	for i, ref := range reference {
		portrait := within(height, ref.height) && within(width, ref.width)
		landscape := within(height, ref.width) && within(width, ref.height)
		if portrait || landscape {
			result = domain.SheetSize(i)
		}
	}
	return result
}

// NewSheet builds an immutable sheet with its format classified.
func NewSheet(height, width float64, views ...domain.View) *domain.Sheet {
	return &domain.Sheet{
		Height:    height,
		Width:     width,
		Size:      Classify(height, width),
		Landscape: width > height,
		Views:     views,
	}
}
