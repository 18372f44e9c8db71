// Command tableinfo prints the contents of band-limited wavetable sets.
//
// Usage:
//
//	tableinfo [flags] [waveform ...]
//
// Without arguments it prints every built-in periodic waveform.
//
// Examples:
//
//	tableinfo saw
//	tableinfo -sr 48000 -len 4096 square triangle
//	tableinfo -list
//	tableinfo -cpu
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-ugen/dsp/table"
	"github.com/cwbudde/algo-ugen/internal/vecmath"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tableinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	sampleRate := fs.Float64("sr", 44100, "sample rate in Hz")
	length := fs.Int("len", 2048, "table length in samples (power of two)")
	base := fs.Float64("base", table.DefaultBase, "fundamental of the lowest table in Hz")
	list := fs.Bool("list", false, "list available table types")
	showCPU := fs.Bool("cpu", false, "print detected CPU features")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tableinfo [flags] [waveform ...]\n\n")
		fmt.Fprintf(stderr, "Prints the tables of band-limited wavetable sets.\n")
		fmt.Fprintf(stderr, "Without arguments, prints every periodic waveform.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		return printList(stdout)
	}
	if *showCPU {
		return printCPU(stdout)
	}

	types, err := resolveTypes(fs.Args())
	if err != nil {
		return err
	}

	return printSets(stdout, types, *sampleRate, *length, *base)
}

func printList(w io.Writer) error {
	for _, t := range table.Types() {
		kind := "window"
		if t.Waveform() {
			kind = "waveform"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", t, kind); err != nil {
			return err
		}
	}
	return nil
}

func printCPU(w io.Writer) error {
	f := cpu.DetectFeatures()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "arch\t%s\n", f.Architecture)
	fmt.Fprintf(tw, "sse2\t%t\n", f.HasSSE2)
	fmt.Fprintf(tw, "avx\t%t\n", f.HasAVX)
	fmt.Fprintf(tw, "avx2\t%t\n", f.HasAVX2)
	fmt.Fprintf(tw, "avx512\t%t\n", f.HasAVX512)
	fmt.Fprintf(tw, "neon\t%t\n", f.HasNEON)
	return tw.Flush()
}

func resolveTypes(names []string) ([]table.Type, error) {
	if len(names) == 0 {
		var all []table.Type
		for _, t := range table.Types() {
			if t.Waveform() {
				all = append(all, t)
			}
		}
		return all, nil
	}

	types := make([]table.Type, 0, len(names))
	for _, name := range names {
		t, err := table.ParseType(name)
		if err != nil {
			return nil, fmt.Errorf("%w (use -list to see available)", err)
		}
		if !t.Waveform() {
			return nil, fmt.Errorf("%s is a window, not a waveform", t)
		}
		types = append(types, t)
	}
	return types, nil
}

func printSets(w io.Writer, types []table.Type, sampleRate float64, length int, base float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Type\tTable\tUp to [Hz]\tHarmonics\tPeak\tRMS\n")
	fmt.Fprintf(tw, "----\t-----\t----------\t---------\t----\t---\n")

	for _, typ := range types {
		set, err := table.NewSet[float64](typ, sampleRate, length, table.WithBase(base))
		if err != nil {
			return fmt.Errorf("%s: %w", typ, err)
		}
		for k := range set.Len() {
			tbl := set.Table(k)
			data := tbl.Samples()
			rms := math.Sqrt(vecmath.Dot(data, data) / float64(len(data)))
			fmt.Fprintf(tw, "%s\t%d\t%.1f\t%d\t%.4f\t%.4f\n",
				typ, k, tbl.Base(), set.Harmonics(k), tbl.Peak(), rms)
		}
	}

	return tw.Flush()
}
