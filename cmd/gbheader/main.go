package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/golang/glog"

	"github.com/FabianRolfMatthiasNoll/gbheader/internal/cart"
	"github.com/FabianRolfMatthiasNoll/gbheader/internal/romfile"
	"github.com/FabianRolfMatthiasNoll/gbheader/internal/ui"
)

type CLIFlags struct {
	ROMPaths []string
	Strict   bool // exit 1 when a ROM fails validation
	PNGOut   string
	Show     bool
	Scale    int
	Scroll   bool
	Title    string
}

func parseFlags() CLIFlags {
	var f CLIFlags
	romPath := flag.String("rom", "", "path to ROM (.gb/.gbc); more ROMs may follow as arguments")
	flag.BoolVar(&f.Strict, "strict", false, "exit non-zero if any logo or checksum check fails")
	flag.StringVar(&f.PNGOut, "outpng", "", "write the first ROM's logo bitmap to PNG at path")
	flag.BoolVar(&f.Show, "show", false, "open a window showing the first ROM's logo")
	flag.IntVar(&f.Scale, "scale", 3, "window and PNG scale")
	flag.BoolVar(&f.Scroll, "scroll", true, "scroll the logo in like the boot ROM")
	flag.StringVar(&f.Title, "title", "gbheader", "window title")

	// glog writes to files in the temp dir unless told otherwise
	_ = flag.Set("logtostderr", "true")
	flag.Parse()

	if *romPath != "" {
		f.ROMPaths = append(f.ROMPaths, *romPath)
	}
	f.ROMPaths = append(f.ROMPaths, flag.Args()...)
	return f
}

// printReport describes every result on w and reports whether all of them
// decoded and validated.
func printReport(w io.Writer, results []romfile.Result) bool {
	ok := true
	for _, r := range results {
		fmt.Fprintf(w, "== %s\n", r.Path)
		if r.Err != nil {
			fmt.Fprintf(w, "error: %v\n", r.Err)
			glog.Errorf("%s: %v", r.Path, r.Err)
			ok = false
			continue
		}
		_ = r.Header.Describe(w)

		rep := r.Header.Validate()
		fmt.Fprintf(w, "logo: %s\nheader checksum: %s\nglobal checksum: %s\n",
			status(rep.Logo), status(rep.HeaderChecksum), status(rep.GlobalChecksum))
		if err := rep.Err(); err != nil {
			glog.Warningf("%s: %v", r.Path, err)
			ok = false
		}
	}
	return ok
}

func status(err error) string {
	if err != nil {
		return "FAIL (" + err.Error() + ")"
	}
	return "ok"
}

func saveLogoPNG(logo [cart.LogoSize]byte, scale int, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, cart.LogoImage(logo, scale))
}

func main() {
	f := parseFlags()
	defer glog.Flush()

	if len(f.ROMPaths) == 0 {
		glog.Fatal("-rom or at least one ROM argument is required")
	}

	results, err := romfile.Inspect(context.Background(), cart.NewDecoder(cart.DefaultLicensees()), f.ROMPaths)
	if err != nil {
		glog.Fatal(err)
	}
	ok := printReport(os.Stdout, results)

	first := results[0]
	if first.Err == nil {
		glog.Infof("ROM: %s", first.Header)
		if f.PNGOut != "" {
			if err := saveLogoPNG(first.Header.Logo, f.Scale, f.PNGOut); err != nil {
				glog.Fatalf("write PNG: %v", err)
			}
			glog.Infof("wrote %s", f.PNGOut)
		}
		if f.Show {
			app := ui.NewApp(ui.Config{Title: f.Title, Scale: f.Scale, Scroll: f.Scroll}, first.Header)
			if err := app.Run(); err != nil {
				glog.Fatal(err)
			}
		}
	}

	if f.Strict && !ok {
		glog.Flush()
		os.Exit(1)
	}
}
