package cart

import (
	"fmt"
	"io"
)

// String is a one-line summary, suitable for logs.
func (h *Header) String() string {
	return fmt.Sprintf("%q (%s) type=%s rom=%dKiB ram=%dKiB %s",
		h.Title, h.Licensee, h.CartTypeStr, h.ROMSizeBytes/1024, h.RAMSizeBytes/1024, h.CGB)
}

// Describe writes every header field, one per line.
func (h *Header) Describe(w io.Writer) error {
	var err error
	p := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	p("Header {\n")
	p("  entry_point:       % X\n", h.EntryPoint[:])
	p("  logo:              %s\n", LogoHex(h.Logo))
	p("  title:             %q\n", h.Title)
	p("  manufacturer_code: %q\n", h.ManufacturerCode)
	p("  cgb_flag:          %s\n", h.CGB)
	if h.OldLicensee == useNewLicensee {
		p("  licensee:          %s (new code %q)\n", h.Licensee, h.NewLicensee)
	} else {
		p("  licensee:          %s (old code %02X)\n", h.Licensee, h.OldLicensee)
	}
	p("  sgb_flag:          %s\n", h.SGB)
	p("  cartridge_type:    %02X %s\n", h.CartType, h.CartTypeStr)
	p("  rom_size:          %02X %d bytes, %d banks\n", h.ROMSizeCode, h.ROMSizeBytes, h.ROMBanks)
	p("  ram_size:          %02X %d bytes\n", h.RAMSizeCode, h.RAMSizeBytes)
	p("  destination:       %s\n", h.Destination)
	p("  version_number:    %d\n", h.ROMVersion)
	p("  header_checksum:   %02X (computed %02X)\n", h.HeaderChecksum, h.computedHeaderChecksum)
	p("  global_checksum:   %04X (computed %04X)\n", h.GlobalChecksum, h.computedGlobalChecksum)
	p("}\n")
	return err
}
