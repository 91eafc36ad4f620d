package cart

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

const (
	headerStart = 0x0100
	headerEnd   = 0x014F

	// MinROMSize is the smallest buffer that holds a complete header.
	MinROMSize = headerEnd + 1
)

// ErrTruncatedInput is returned when the buffer ends before the header does.
var ErrTruncatedInput = errors.New("ROM too small to contain header")

// CGBSupport is the decoded Color Game Boy flag at 0x0143.
type CGBSupport int

const (
	CGBNone     CGBSupport = iota // anything but 0x80/0xC0, usually part of the title
	CGBEnhanced                   // 0x80, also runs on DMG
	CGBOnly                       // 0xC0
)

func (c CGBSupport) String() string {
	switch c {
	case CGBEnhanced:
		return "CGB enhanced (backwards compatible)"
	case CGBOnly:
		return "CGB only"
	default:
		return "No CGB flags"
	}
}

func decodeCGB(b byte) CGBSupport {
	switch b {
	case 0x80:
		return CGBEnhanced
	case 0xC0:
		return CGBOnly
	default:
		return CGBNone
	}
}

// SGBSupport is the decoded Super Game Boy flag at 0x0146.
type SGBSupport int

const (
	SGBNone SGBSupport = iota
	SGBEnhanced
)

func (s SGBSupport) String() string {
	if s == SGBEnhanced {
		return "SGB enhanced"
	}
	return "No SGB support"
}

func decodeSGB(b byte) SGBSupport {
	if b == 0x03 {
		return SGBEnhanced
	}
	return SGBNone
}

// Destination is the region byte at 0x014A.
type Destination int

const (
	DestinationUnknown Destination = iota
	DestinationJapan
	DestinationOverseas
)

func (d Destination) String() string {
	switch d {
	case DestinationJapan:
		return "Japan (and possibly overseas)"
	case DestinationOverseas:
		return "Overseas only"
	default:
		return "Unknown"
	}
}

func decodeDestination(b byte) Destination {
	switch b {
	case 0x00:
		return DestinationJapan
	case 0x01:
		return DestinationOverseas
	default:
		return DestinationUnknown
	}
}

// Header is the cartridge header found at 0x0100-0x014F. It owns copies of
// everything it was decoded from and is not modified after decoding.
type Header struct {
	EntryPoint       [4]byte        // 0x0100-0x0103
	Logo             [LogoSize]byte // 0x0104-0x0133
	Title            string         // 0x0134-0x0143 (lossy UTF-8, NULs trimmed)
	ManufacturerCode string         // 0x013F-0x0142
	CGB              CGBSupport     // 0x0143
	NewLicensee      string         // 0x0144-0x0145 (ASCII), if old==0x33
	SGB              SGBSupport     // 0x0146
	CartType         byte           // 0x0147
	ROMSizeCode      byte           // 0x0148
	RAMSizeCode      byte           // 0x0149
	Destination      Destination    // 0x014A
	OldLicensee      byte           // 0x014B
	ROMVersion       byte           // 0x014C
	HeaderChecksum   byte           // 0x014D
	GlobalChecksum   uint16         // 0x014E-0x014F

	// Decoded helpers
	Licensee     string
	ROMSizeBytes int
	ROMBanks     int
	RAMSizeBytes int
	CartTypeStr  string

	// checksums computed over the source buffer
	computedHeaderChecksum byte
	computedGlobalChecksum uint16
}

// Decoder turns ROM buffers into headers. It only reads its licensee table,
// so one Decoder may be used from many goroutines.
type Decoder struct {
	licensees *LicenseeTable
}

// NewDecoder returns a decoder resolving publishers through t. A nil table
// selects DefaultLicensees.
func NewDecoder(t *LicenseeTable) *Decoder {
	if t == nil {
		t = DefaultLicensees()
	}
	return &Decoder{licensees: t}
}

var defaultDecoder = NewDecoder(nil)

// ParseHeader decodes rom with the built-in licensee tables.
func ParseHeader(rom []byte) (*Header, error) {
	return defaultDecoder.Decode(rom)
}

// Decode reads the header out of rom. The only failure is a buffer shorter
// than MinROMSize; unknown codes decode to their "unknown" labels.
func (d *Decoder) Decode(rom []byte) (*Header, error) {
	if len(rom) < MinROMSize {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrTruncatedInput, len(rom), MinROMSize)
	}

	h := &Header{
		Title:            strings.TrimRight(decodeText(rom[0x0134:0x0144]), "\x00"),
		ManufacturerCode: decodeText(rom[0x013F:0x0143]),
		CGB:              decodeCGB(rom[0x0143]),
		SGB:              decodeSGB(rom[0x0146]),
		CartType:         rom[0x0147],
		ROMSizeCode:      rom[0x0148],
		RAMSizeCode:      rom[0x0149],
		Destination:      decodeDestination(rom[0x014A]),
		OldLicensee:      rom[0x014B],
		ROMVersion:       rom[0x014C],
		HeaderChecksum:   rom[0x014D],
		GlobalChecksum:   binary.BigEndian.Uint16(rom[0x014E:0x0150]),
	}
	copy(h.EntryPoint[:], rom[headerStart:0x0104])
	copy(h.Logo[:], rom[logoStart:logoEnd])

	code := licenseeCodeFrom(rom)
	if code.Kind == NewLicenseeKind {
		h.NewLicensee = code.New
	}
	h.Licensee = d.licensees.Resolve(code)

	h.ROMSizeBytes, h.ROMBanks = decodeROMSize(h.ROMSizeCode)
	h.RAMSizeBytes = decodeRAMSize(h.RAMSizeCode)
	h.CartTypeStr = cartTypeString(h.CartType)

	h.computedHeaderChecksum = HeaderChecksum(rom)
	h.computedGlobalChecksum = GlobalChecksum(rom)

	return h, nil
}

// decodeText converts header bytes to a string. Invalid UTF-8 becomes U+FFFD;
// header text is cosmetic and must never fail a decode.
func decodeText(b []byte) string {
	// encoding.Decoder is not safe for concurrent use, so one per call.
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}

func decodeROMSize(code byte) (size, banks int) {
	switch {
	case code <= 0x08:
		// 32 KiB << code, in 16 KiB banks
		return (32 * 1024) << code, 2 << code
	case code == 0x52:
		return 1152 * 1024, 72
	case code == 0x53:
		return 1280 * 1024, 80
	case code == 0x54:
		return 1536 * 1024, 96
	default:
		return 0, 0
	}
}

func decodeRAMSize(code byte) int {
	switch code {
	case 0x00:
		return 0
	case 0x01:
		return 2 * 1024 // unofficial, seen on some homebrew
	case 0x02:
		return 8 * 1024
	case 0x03:
		return 32 * 1024
	case 0x04:
		return 128 * 1024
	case 0x05:
		return 64 * 1024
	default:
		return 0
	}
}

var cartTypes = map[byte]string{
	0x00: "ROM ONLY",
	0x01: "MBC1",
	0x02: "MBC1+RAM",
	0x03: "MBC1+RAM+BATTERY",
	0x05: "MBC2",
	0x06: "MBC2+BATTERY",
	0x08: "ROM+RAM",
	0x09: "ROM+RAM+BATTERY",
	0x0B: "MMM01",
	0x0C: "MMM01+RAM",
	0x0D: "MMM01+RAM+BATTERY",
	0x0F: "MBC3+TIMER+BATTERY",
	0x10: "MBC3+TIMER+RAM+BATTERY",
	0x11: "MBC3",
	0x12: "MBC3+RAM",
	0x13: "MBC3+RAM+BATTERY",
	0x19: "MBC5",
	0x1A: "MBC5+RAM",
	0x1B: "MBC5+RAM+BATTERY",
	0x1C: "MBC5+RUMBLE",
	0x1D: "MBC5+RUMBLE+RAM",
	0x1E: "MBC5+RUMBLE+RAM+BATTERY",
	0x20: "MBC6",
	0x22: "MBC7+SENSOR+RUMBLE+RAM+BATTERY",
	0xFC: "POCKET CAMERA",
	0xFD: "BANDAI TAMA5",
	0xFE: "HuC3",
	0xFF: "HuC1+RAM+BATTERY",
}

func cartTypeString(code byte) string {
	if s, ok := cartTypes[code]; ok {
		return s
	}
	return "Other/unknown"
}
