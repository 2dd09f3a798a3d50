// Command bjpegdump decodes a baseline JPEG file and writes it out as a
// PPM (color) or PGM (grayscale) image. File I/O, output serialization,
// and flag parsing live here rather than in the jpeg package itself, per
// spec.md §1's scope boundary: the core decoder's only contract with
// these is the Image value it returns.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jrm-1535/bjpeg"
)

func main() {
	var verbosity int
	var out string
	flag.IntVar(&verbosity, "v", 0, "verbosity: 0=errors 1=info 2=markers 3=coeffs 4=bits")
	flag.StringVar(&out, "o", "", "output path (default: input path with .ppm/.pgm appended)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-v level] [-o path] FILE.JPG\n", os.Args[0])
		os.Exit(2)
	}
	in := flag.Arg(0)

	if err := run(in, out, verbosity); err != nil {
		fmt.Fprintf(os.Stderr, "bjpegdump: %v\n", err)
		os.Exit(1)
	}
}

func run(in, out string, verbosity int) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	logger := jpeg.NewStdLogger(jpeg.Level(verbosity), func(msg string) {
		fmt.Fprintln(os.Stderr, msg)
	})
	img, err := jpeg.Decode(data, &jpeg.Options{Logger: logger})
	if err != nil {
		return err
	}

	if out == "" {
		if img.Channels == 1 {
			out = in + ".pgm"
		} else {
			out = in + ".ppm"
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	return writePNM(f, img)
}

// writePNM emits the P5 (grayscale) or P6 (color) header jpeg_dec.c's
// _save_to_ppm writes, followed by the raw raster.
func writePNM(f *os.File, img *jpeg.Image) error {
	magic := "P5"
	if img.Channels == 3 {
		magic = "P6"
	}
	if _, err := fmt.Fprintf(f, "%s\n%d %d\n255\n", magic, img.Width, img.Height); err != nil {
		return err
	}
	_, err := f.Write(img.Pix)
	return err
}
