package demand

import "testing"

func TestElemType_Size(t *testing.T) {
	tests := []struct {
		elem ElemType
		want int
	}{
		{ElemUint8, 1},
		{ElemUint16, 2},
		{ElemUint32, 4},
		{ElemFloat32, 4},
		{ElemFloat64, 8},
		{ElemType(200), 0},
	}
	for _, tt := range tests {
		if got := tt.elem.Size(); got != tt.want {
			t.Errorf("%v.Size() = %d, want %d", tt.elem, got, tt.want)
		}
	}
}

func TestFormat_Bytes(t *testing.T) {
	if got := RGBA8.PixelBytes(); got != 4 {
		t.Errorf("RGBA8.PixelBytes() = %d, want 4", got)
	}
	if got := Gray16.RowBytes(10); got != 20 {
		t.Errorf("Gray16.RowBytes(10) = %d, want 20", got)
	}
	if got := GrayF32.RowBytes(3); got != 12 {
		t.Errorf("GrayF32.RowBytes(3) = %d, want 12", got)
	}
}

func TestFormat_Valid(t *testing.T) {
	if !RGBA8.Valid() {
		t.Error("RGBA8 should be valid")
	}
	if (Format{Elem: ElemUint8, Bands: 0}).Valid() {
		t.Error("zero bands should be invalid")
	}
	if (Format{Elem: ElemType(99), Bands: 1}).Valid() {
		t.Error("unknown element type should be invalid")
	}
}

func TestFormat_String(t *testing.T) {
	if got := RGBA8.String(); got != "uint8x4" {
		t.Errorf("RGBA8.String() = %q, want %q", got, "uint8x4")
	}
	if got := GrayF32.String(); got != "float32x1" {
		t.Errorf("GrayF32.String() = %q, want %q", got, "float32x1")
	}
}
