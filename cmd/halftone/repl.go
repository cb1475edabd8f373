package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"dasa.cc/npr/halftone"

	"github.com/chzyer/readline"
)

const replHelp = `lookup <tone> [lod]    corrected threshold, tone and lod in [0, 1]
response <tone> [row]  white fraction of histogram row at tone in [0, 1]
row <row>              histogram row and its correction samples
help                   this message
exit                   quit`

var errQuit = errors.New("quit")

// inspector evaluates repl commands against a histogram and screen.
type inspector struct {
	hist   *halftone.Histogram
	screen *halftone.Screen
}

func repl(h *halftone.Histogram, s *halftone.Screen) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "halftone: ",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("lookup"),
			readline.PcItem("response"),
			readline.PcItem("row"),
			readline.PcItem("help"),
			readline.PcItem("exit"),
		),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	log.SetOutput(rl.Stderr())
	in := &inspector{hist: h, screen: s}
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		}

		if err := in.eval(rl.Stdout(), line); err == errQuit {
			return nil
		} else if err != nil {
			log.Printf("%[1]T: %[1]v", err)
		}
	}
}

func (in *inspector) eval(w io.Writer, line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	switch args[0] {
	case "lookup":
		tone, lod, err := floats(args[1:])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%.4f\n", in.screen.Lookup(tone, lod))
	case "response":
		tone, row, err := floats(args[1:])
		if err != nil {
			return err
		}
		lod := int(row)
		if lod < 0 || lod >= halftone.LODRes {
			return fmt.Errorf("row %v out of range [0, %v)", lod, halftone.LODRes)
		}
		fmt.Fprintf(w, "%.4f\n", halftone.Response(in.hist, lod, tone))
	case "row":
		if len(args) != 2 {
			return errors.New("usage: row <row>")
		}
		lod, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		if lod < 0 || lod >= halftone.LODRes {
			return fmt.Errorf("row %v out of range [0, %v)", lod, halftone.LODRes)
		}
		in.row(w, lod)
	case "help":
		fmt.Fprintln(w, replHelp)
	case "exit", "quit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q; try help", args[0])
	}
	return nil
}

// row prints the occupied buckets of a histogram row and its correction every 32 tones.
func (in *inspector) row(w io.Writer, lod int) {
	fmt.Fprintf(w, "samples %v\n", in.hist.Samples)
	for i, c := range in.hist.Row(lod) {
		if c != 0 {
			fmt.Fprintf(w, "  bucket %3v: %v\n", i, c)
		}
	}
	f := float64(lod) / (halftone.LODRes - 1)
	for i := 0; i < halftone.CorrRes; i += 32 {
		tone := float64(i) / (halftone.CorrRes - 1)
		fmt.Fprintf(w, "  tone %.3f -> %.4f\n", tone, in.screen.Lookup(tone, f))
	}
}

// floats parses one required and one optional number.
func floats(args []string) (a, b float64, err error) {
	if len(args) < 1 || len(args) > 2 {
		return 0, 0, errors.New("expected one or two numbers")
	}
	if a, err = strconv.ParseFloat(args[0], 64); err != nil {
		return 0, 0, err
	}
	if len(args) == 2 {
		if b, err = strconv.ParseFloat(args[1], 64); err != nil {
			return 0, 0, err
		}
	}
	return a, b, nil
}
