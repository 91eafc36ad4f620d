package cart

import "testing"

func TestLicensee_Resolution(t *testing.T) {
	tests := []struct {
		name string
		old  byte
		new  string
		want string
	}{
		{"old nintendo", 0x01, "", "Nintendo"},
		{"old capcom", 0x08, "", "Capcom"},
		{"new nintendo", 0x33, "01", "Nintendo Research & Development 1"},
		{"new konami", 0x33, "A4", "Konami (Yu-Gi-Oh!)"},
		{"old miss", 0xFE, "", UnknownLicensee},
		{"new miss", 0x33, "ZZ", UnknownLicensee},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rom := buildROM("TEST", 0x00, 0x00, 0x00, 32*1024)
			rom[0x014B] = tt.old
			if tt.new != "" {
				copy(rom[0x0144:0x0146], tt.new)
			}
			h, err := ParseHeader(rom)
			if err != nil {
				t.Fatal(err)
			}
			if h.Licensee != tt.want {
				t.Fatalf("got %q want %q", h.Licensee, tt.want)
			}
		})
	}
}

func TestLicensee_NewCodeIgnoredUnlessSentinel(t *testing.T) {
	rom := buildROM("TEST", 0x00, 0x00, 0x00, 32*1024)
	rom[0x014B] = 0x01
	copy(rom[0x0144:0x0146], "A4")

	code := licenseeCodeFrom(rom)
	if code.Kind != OldLicenseeKind || code.New != "" {
		t.Fatalf("got %+v, want old code only", code)
	}
	h, _ := ParseHeader(rom)
	if h.Licensee != "Nintendo" || h.NewLicensee != "" {
		t.Fatalf("got %q (new %q)", h.Licensee, h.NewLicensee)
	}
}

func TestLicenseeTable_Custom(t *testing.T) {
	old := map[byte]string{0x01: "Homebrew Co."}
	tbl := NewLicenseeTable(old, map[string]string{"HB": "Homebrew Co."})
	old[0x01] = "changed"

	if got := tbl.Resolve(LicenseeCode{Kind: OldLicenseeKind, Old: 0x01}); got != "Homebrew Co." {
		t.Fatalf("table not copied: %q", got)
	}
	if got := tbl.Resolve(LicenseeCode{Kind: NewLicenseeKind, New: "HB"}); got != "Homebrew Co." {
		t.Fatalf("new code got %q", got)
	}

	rom := buildROM("TEST", 0x00, 0x00, 0x00, 32*1024)
	h, err := NewDecoder(tbl).Decode(rom) // "01" is not in the custom table
	if err != nil {
		t.Fatal(err)
	}
	if h.Licensee != UnknownLicensee {
		t.Fatalf("got %q", h.Licensee)
	}
}

func TestDefaultLicensees_Shared(t *testing.T) {
	if DefaultLicensees() != DefaultLicensees() {
		t.Fatal("default tables rebuilt per call")
	}
	if _, ok := oldLicensees[useNewLicensee]; ok {
		t.Fatal("sentinel 0x33 must not be an old licensee entry")
	}
}
