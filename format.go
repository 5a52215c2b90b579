package demand

import "fmt"

// ElemType identifies the numeric type of a single band element.
type ElemType uint8

const (
	// ElemUint8 is an unsigned 8-bit element (1 byte).
	ElemUint8 ElemType = iota

	// ElemUint16 is an unsigned 16-bit element (2 bytes).
	ElemUint16

	// ElemUint32 is an unsigned 32-bit element (4 bytes).
	ElemUint32

	// ElemFloat32 is a 32-bit float element (4 bytes).
	ElemFloat32

	// ElemFloat64 is a 64-bit float element (8 bytes).
	ElemFloat64

	// elemCount is the number of element types (for table sizing).
	elemCount
)

// elemSizeTable maps each element type to its size in bytes.
var elemSizeTable = [elemCount]int{
	ElemUint8:   1,
	ElemUint16:  2,
	ElemUint32:  4,
	ElemFloat32: 4,
	ElemFloat64: 8,
}

// Size returns the element size in bytes, or 0 for an unknown type.
func (e ElemType) Size() int {
	if int(e) >= len(elemSizeTable) {
		return 0
	}
	return elemSizeTable[e]
}

// String returns a short name for the element type.
func (e ElemType) String() string {
	switch e {
	case ElemUint8:
		return "uint8"
	case ElemUint16:
		return "uint16"
	case ElemUint32:
		return "uint32"
	case ElemFloat32:
		return "float32"
	case ElemFloat64:
		return "float64"
	default:
		return fmt.Sprintf("elem(%d)", uint8(e))
	}
}

// Format describes the storage layout of one pixel: the element type and
// the number of interleaved bands. Pixels are stored band-interleaved,
// rows top to bottom, with no padding inside a row.
type Format struct {
	Elem  ElemType
	Bands int
}

// Common formats.
var (
	// Gray8 is single-band 8-bit data.
	Gray8 = Format{Elem: ElemUint8, Bands: 1}

	// Gray16 is single-band 16-bit data.
	Gray16 = Format{Elem: ElemUint16, Bands: 1}

	// RGB8 is three-band 8-bit data.
	RGB8 = Format{Elem: ElemUint8, Bands: 3}

	// RGBA8 is four-band 8-bit data, the format produced by the source
	// package and consumed by most ops.
	RGBA8 = Format{Elem: ElemUint8, Bands: 4}

	// GrayF32 is single-band float data.
	GrayF32 = Format{Elem: ElemFloat32, Bands: 1}
)

// Valid reports whether the format is usable: a known element type and a
// positive band count.
func (f Format) Valid() bool {
	return f.Elem.Size() > 0 && f.Bands > 0
}

// PixelBytes returns the storage size of one pixel in bytes.
func (f Format) PixelBytes() int {
	return f.Elem.Size() * f.Bands
}

// RowBytes returns the storage size of one row of width w.
func (f Format) RowBytes(w int) int {
	return f.PixelBytes() * w
}

// String returns a compact description such as "uint8x4".
func (f Format) String() string {
	return fmt.Sprintf("%sx%d", f.Elem, f.Bands)
}
