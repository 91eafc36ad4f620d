package cart

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestValidateLogo(t *testing.T) {
	rom := buildROM("TEST", 0x00, 0x00, 0x00, 32*1024)
	h, _ := ParseHeader(rom)
	if err := h.ValidateLogo(); err != nil {
		t.Fatalf("canonical logo rejected: %v", err)
	}

	for i := logoStart; i < logoEnd; i++ {
		for bit := 0; bit < 8; bit++ {
			rom[i] ^= 1 << bit
			h, _ := ParseHeader(rom)
			if err := h.ValidateLogo(); !errors.Is(err, ErrLogoMismatch) {
				t.Fatalf("flip 0x%04X bit %d: got %v", i, bit, err)
			}
			rom[i] ^= 1 << bit
		}
	}
}

func TestHeaderChecksum_AllZero(t *testing.T) {
	rom := make([]byte, MinROMSize)
	// 25 bytes, each step subtracts 1: 0 - 25 = 0xE7
	if got := HeaderChecksum(rom); got != 0xE7 {
		t.Fatalf("got %02X want E7", got)
	}

	h, _ := ParseHeader(rom)
	if !errors.Is(h.ValidateHeaderChecksum(), ErrHeaderChecksumMismatch) {
		t.Fatal("stored 00 should not match computed E7")
	}
	rom[0x014D] = 0xE7
	h, _ = ParseHeader(rom)
	if err := h.ValidateHeaderChecksum(); err != nil {
		t.Fatal(err)
	}
}

func TestHeaderChecksum_Bad(t *testing.T) {
	rom := buildROM("TEST", 0x00, 0x00, 0x00, 32*1024)
	rom[0x0134] ^= 0xFF // corrupt a header byte
	h, _ := ParseHeader(rom)
	err := h.ValidateHeaderChecksum()
	if !errors.Is(err, ErrHeaderChecksumMismatch) {
		t.Fatalf("got %v, want header checksum mismatch after corruption", err)
	}
	if h.ComputedHeaderChecksum() == h.HeaderChecksum {
		t.Fatal("computed checksum should differ from stored")
	}
}

func TestGlobalChecksum(t *testing.T) {
	rom := buildROM("TEST", 0x00, 0x00, 0x00, 32*1024)
	h, _ := ParseHeader(rom)
	if err := h.ValidateGlobalChecksum(); err != nil {
		t.Fatal(err)
	}

	// the stored checksum bytes themselves are excluded
	rom[0x014E], rom[0x014F] = 0xFF, 0xFF
	if GlobalChecksum(rom) != h.GlobalChecksum {
		t.Fatal("checksum bytes leaked into the sum")
	}

	rom = buildROM("TEST", 0x00, 0x00, 0x00, 32*1024)
	rom[0x7FFF]++ // outside the header
	h, _ = ParseHeader(rom)
	if !errors.Is(h.ValidateGlobalChecksum(), ErrGlobalChecksumMismatch) {
		t.Fatal("expected global checksum mismatch")
	}
	if err := h.ValidateHeaderChecksum(); err != nil {
		t.Fatalf("header checksum should still pass: %v", err)
	}
}

func TestGlobalChecksum_Wraps(t *testing.T) {
	rom := make([]byte, 0x10000)
	for i := range rom {
		rom[i] = 0xFF
	}
	// (0x10000 - 2) * 0xFF mod 0x10000
	want := uint16((0x10000 - 2) * 0xFF % 0x10000)
	if got := GlobalChecksum(rom); got != want {
		t.Fatalf("got %04X want %04X", got, want)
	}
}

func TestValidate_Independent(t *testing.T) {
	rom := buildROM("TEST", 0x00, 0x00, 0x00, 32*1024)
	rom[0x0104] = 0x00 // logo, also breaks the global checksum
	rom[0x014D]++      // header checksum
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatal(err)
	}

	r := h.Validate()
	if r.OK() {
		t.Fatal("report OK on a broken ROM")
	}
	if !errors.Is(r.Logo, ErrLogoMismatch) {
		t.Errorf("Logo: %v", r.Logo)
	}
	if !errors.Is(r.HeaderChecksum, ErrHeaderChecksumMismatch) {
		t.Errorf("HeaderChecksum: %v", r.HeaderChecksum)
	}
	if !errors.Is(r.GlobalChecksum, ErrGlobalChecksumMismatch) {
		t.Errorf("GlobalChecksum: %v", r.GlobalChecksum)
	}
	err = r.Err()
	for _, want := range []error{ErrLogoMismatch, ErrHeaderChecksumMismatch, ErrGlobalChecksumMismatch} {
		if !errors.Is(err, want) {
			t.Errorf("joined error %v missing %v", err, want)
		}
	}

	// header is still fully usable
	if h.Title != "TEST" || h.Licensee == "" {
		t.Fatalf("header not decoded: %+v", h)
	}
}

func TestDescribe(t *testing.T) {
	rom := buildROM("TETRIS", 0x00, 0x00, 0x00, 32*1024)
	h, _ := ParseHeader(rom)

	var buf bytes.Buffer
	if err := h.Describe(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`title:             "TETRIS"`,
		"logo:              " + nintendoLogoHex,
		"licensee:          Nintendo Research & Development 1 (new code \"01\")",
		"cartridge_type:    00 ROM ONLY",
		"entry_point:       00 C3 50 01",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Describe output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(h.String(), `"TETRIS"`) {
		t.Errorf("String got %q", h.String())
	}
}
