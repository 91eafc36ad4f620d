package cart

import (
	"errors"
	"fmt"
)

var (
	ErrLogoMismatch           = errors.New("logo does not match")
	ErrHeaderChecksumMismatch = errors.New("header checksum mismatch")
	ErrGlobalChecksumMismatch = errors.New("global checksum mismatch")
)

// HeaderChecksum computes the Pan Docs header checksum over 0x0134-0x014C.
// rom must be at least MinROMSize bytes.
func HeaderChecksum(rom []byte) byte {
	var sum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	return sum
}

// GlobalChecksum sums every byte of rom except 0x014E-0x014F.
func GlobalChecksum(rom []byte) uint16 {
	var sum uint16
	for i, b := range rom {
		if i == 0x014E || i == 0x014F {
			continue
		}
		sum += uint16(b)
	}
	return sum
}

// ValidateLogo checks the logo against the boot ROM's copy. The check is
// all or nothing, like the hardware.
func (h *Header) ValidateLogo() error {
	if LogoHex(h.Logo) != nintendoLogoHex {
		return ErrLogoMismatch
	}
	return nil
}

// ValidateHeaderChecksum compares the stored header checksum with the one
// computed at decode time.
func (h *Header) ValidateHeaderChecksum() error {
	if h.computedHeaderChecksum != h.HeaderChecksum {
		return fmt.Errorf("%w: header=%02X computed=%02X", ErrHeaderChecksumMismatch, h.HeaderChecksum, h.computedHeaderChecksum)
	}
	return nil
}

// ValidateGlobalChecksum compares the stored global checksum with the one
// computed at decode time. Real hardware never checks it, and plenty of
// commercial ROMs get it wrong.
func (h *Header) ValidateGlobalChecksum() error {
	if h.computedGlobalChecksum != h.GlobalChecksum {
		return fmt.Errorf("%w: header=%04X computed=%04X", ErrGlobalChecksumMismatch, h.GlobalChecksum, h.computedGlobalChecksum)
	}
	return nil
}

// ComputedHeaderChecksum returns the header checksum of the decoded buffer.
func (h *Header) ComputedHeaderChecksum() byte { return h.computedHeaderChecksum }

// ComputedGlobalChecksum returns the global checksum of the decoded buffer.
func (h *Header) ComputedGlobalChecksum() uint16 { return h.computedGlobalChecksum }

// Report collects the outcome of every validator. A nil field passed.
type Report struct {
	Logo           error
	HeaderChecksum error
	GlobalChecksum error
}

// Validate runs all checks; a failing check does not skip the others.
func (h *Header) Validate() Report {
	return Report{
		Logo:           h.ValidateLogo(),
		HeaderChecksum: h.ValidateHeaderChecksum(),
		GlobalChecksum: h.ValidateGlobalChecksum(),
	}
}

func (r Report) OK() bool {
	return r.Logo == nil && r.HeaderChecksum == nil && r.GlobalChecksum == nil
}

// Err joins the failed checks, or returns nil.
func (r Report) Err() error {
	return errors.Join(r.Logo, r.HeaderChecksum, r.GlobalChecksum)
}
