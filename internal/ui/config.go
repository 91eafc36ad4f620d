package ui

// Config contains viewer window settings.
type Config struct {
	Title  string // window title
	Scale  int    // integer upscaling factor
	Scroll bool   // scroll the logo in from the top like the boot ROM
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "gbheader"
	}
	if c.Scale <= 0 {
		c.Scale = 3
	}
}
