package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go-ipconf/internal/export"
	"go-ipconf/internal/parser"

	"github.com/chzyer/readline"
	"github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

const msgNothingFound = "No interfaces with IP addresses found!"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("ipconf", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	output := flags.StringP("output", "o", "", "write the report to `file` instead of stdout")
	asJSON := flags.Bool("json", false, "print the result as JSON")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage: ipconf [-o file] [--json] [config-file ...]")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	text, err := readInput(flags.Args(), stdin, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "ipconf: %v\n", err)
		return 1
	}

	res := parser.Extract(text)
	if res.Empty() {
		fmt.Fprintln(stderr, msgNothingFound)
		if !*asJSON {
			return 0
		}
	}

	w := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(stderr, "ipconf: %v\n", err)
			return 1
		}
		defer f.Close()
		w = f
	}

	if *asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(res)
	} else {
		err = export.WriteText(w, res)
	}
	if err != nil {
		fmt.Fprintf(stderr, "ipconf: %v\n", err)
		return 1
	}
	return 0
}

// readInput concatenates the named files; with none (or "-") it reads stdin.
func readInput(paths []string, stdin io.Reader, stderr io.Writer) (string, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	var sb strings.Builder
	for _, p := range paths {
		var (
			data []byte
			err  error
		)
		if p == "-" {
			if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
				var text string
				text, err = readInteractive(stderr)
				data = []byte(text)
			} else {
				data, err = io.ReadAll(stdin)
			}
		} else {
			data, err = os.ReadFile(p)
		}
		if err != nil {
			return "", err
		}
		sb.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

// readInteractive collects pasted lines until a lone "end" or Ctrl-D.
func readInteractive(stderr io.Writer) (string, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "> ",
		HistoryLimit: -1,
		Stderr:       stderr,
	})
	if err != nil {
		return "", err
	}
	defer rl.Close()

	fmt.Fprintln(stderr, `Paste the configuration, finish with "end" or Ctrl-D.`)
	var sb strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == "end" {
			break
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
