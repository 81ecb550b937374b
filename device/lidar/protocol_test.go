package lidar

import "testing"

func TestDecodeSampleSeedScenario(t *testing.T) {
	rec := [5]byte{0b10000101, 0b00000011, 0x1E, 0x64, 0x00}
	p, ok := decodeSample(rec)
	if !ok {
		t.Fatal("expected a valid sample")
	}
	if p.Quality != 0x21 {
		t.Errorf("quality = 0x%02X, want 0x21", p.Quality)
	}
	if p.Angle != 0x0F01 {
		t.Errorf("angle = 0x%04X, want 0x0F01", p.Angle)
	}
	if p.Distance != 0x0064 {
		t.Errorf("distance = 0x%04X, want 0x0064", p.Distance)
	}
}

func TestDecodeSampleRejectsBadStartFlag(t *testing.T) {
	// low bits equal (both 0) -> invalid start flag.
	rec := [5]byte{0b00000100, 0b00000011, 0x00, 0x00, 0x00}
	if _, ok := decodeSample(rec); ok {
		t.Fatal("expected start-flag validation to reject this record")
	}
}

func TestDecodeSampleRejectsBadCheckBit(t *testing.T) {
	rec := [5]byte{0b10000101, 0b00000010, 0x00, 0x00, 0x00}
	if _, ok := decodeSample(rec); ok {
		t.Fatal("expected check-bit validation to reject this record")
	}
}
