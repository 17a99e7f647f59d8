package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/peterh/liner"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calculator"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb, envname string
		with                  [][2]string
		std, verbose          bool
		prec                  int
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file, one statement per line (- for stdin)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.StringVar(&envname, "env", "", "YAML file mapping names to constants")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.IntVar(&prec, "p", 64, "precision of exp, ln, log, and sqrt in bits")
	flag.BoolVar(&std, "std", true, "install pi, e, and the standard functions")
	flag.BoolVar(&verbose, "v", false, "log evaluations to stderr")
	flag.Parse()
	if prec <= 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}

	opts := []calculator.EnvOption{calculator.Prec(uint(prec))}
	if verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, calculator.Logger(h))
	}
	if std {
		opts = append(opts, calculator.WithBuiltins())
	}
	if envname != "" {
		vars, err := loadVars(envname)
		if err != nil {
			log.Fatal(err)
		}
		opts = append(opts, calculator.SetVars(vars))
	}
	env := calculator.NewEnvironment(opts...)
	for _, d := range with {
		nm := d[0]
		vl := d[1]
		r, err := calculator.Evaluate(vl, env)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		env.AssignConstant(nm, r)
	}

	verb += "\n"
	switch {
	case flag.NArg() > 0:
		failed := false
		for _, arg := range flag.Args() {
			if !evalLine(os.Stdout, os.Stderr, env, arg, verb) {
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if !run(f, os.Stdout, os.Stderr, env, verb) {
			os.Exit(1)
		}
	case inname == "-" || !isTerminal(os.Stdin):
		if !run(os.Stdin, os.Stdout, os.Stderr, env, verb) {
			os.Exit(1)
		}
	default:
		repl(env, verb)
	}
}

// loadVars reads a YAML mapping of names to numbers.
func loadVars(name string) (map[string]float32, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var m map[string]float64
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	r := make(map[string]float32, len(m))
	for k, v := range m {
		r[k] = float32(v)
	}
	return r, nil
}

// run evaluates each non-blank line of in. The result reports whether every
// line succeeded.
func run(in io.Reader, out, errs io.Writer, env *calculator.Environment, verb string) bool {
	ok := true
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !evalLine(out, errs, env, line, verb) {
			ok = false
		}
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintln(errs, red(err.Error()))
		return false
	}
	return ok
}

// evalLine evaluates one statement and prints its result or error.
func evalLine(out, errs io.Writer, env *calculator.Environment, line, verb string) bool {
	r, err := calculator.Evaluate(line, env)
	if err != nil {
		report(errs, line, err)
		return false
	}
	fmt.Fprintf(out, verb, r)
	return true
}

// report prints an error, underlining its span in the input if it has one.
func report(w io.Writer, line string, err error) {
	fmt.Fprintln(w, red("ERROR")+": "+err.Error())
	var ie calculator.InputError
	if !errors.As(err, &ie) {
		return
	}
	text, start, end := lineAt(line, ie.Pos(), ie.End())
	fmt.Fprintf(w, " %s %s\n %s %s\n", red("|"), text, red("|"), caret(text, start, end))
}

// lineAt finds the line of a multi-line input containing the character
// offset start and returns it with start and end relative to it. end is
// clipped to the line.
func lineAt(input string, start, end int) (string, int, int) {
	first := 0
	for _, text := range strings.Split(input, "\n") {
		n := utf8.RuneCountInString(text)
		if start <= first+n {
			return text, start - first, min(end, first+n) - first
		}
		first += n + 1
	}
	return "", 0, 0
}

// caret returns a line that underlines characters start through end of
// input. Whitespace before the span is kept so tabs line up.
func caret(input string, start, end int) string {
	var b strings.Builder
	i := 0
	for _, r := range input {
		if i >= start {
			break
		}
		switch r {
		case ' ', '\t':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
		i++
	}
	for ; i < start; i++ {
		b.WriteByte(' ')
	}
	return b.String() + red(strings.Repeat("^", end-start+1))
}

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func isTerminal(f *os.File) bool {
	st, err := f.Stat()
	if err != nil {
		return false
	}
	return st.Mode()&os.ModeCharDevice != 0
}

const historyFile = ".calc_history"

func repl(env *calculator.Environment, verb string) {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetWordCompleter(func(line string, pos int) (string, []string, string) {
		head, word := splitWord(line[:pos])
		var r []string
		for _, name := range env.Names() {
			if strings.HasPrefix(name, word) {
				r = append(r, name)
			}
		}
		return head, r, line[pos:]
	})

	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		src, ok := readStatement(ln, env)
		if !ok {
			fmt.Println()
			return
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		r, err := calculator.Evaluate(src, env)
		if err != nil {
			report(os.Stderr, src, err)
			continue
		}
		fmt.Printf("= "+verb, r)
	}
}

// readStatement reads lines until they form a statement that is not merely
// incomplete. Completeness is probed on a clone so that the real environment
// is only changed once.
func readStatement(ln *liner.State, env *calculator.Environment) (string, bool) {
	var b strings.Builder
	for {
		prompt := "> "
		if b.Len() > 0 {
			prompt = ". "
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl-C drops the pending input.
			return "", true
		}
		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if strings.TrimSpace(src) == "" {
			return src, true
		}
		_, err = calculator.Evaluate(src, env.Clone(calculator.Logger(nil)))
		var ee *calculator.EndError
		if !errors.As(err, &ee) {
			return src, true
		}
	}
}

// splitWord splits s before the identifier it ends with.
func splitWord(s string) (head, word string) {
	i := strings.LastIndexFunc(s, func(r rune) bool {
		return !(r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
	})
	return s[:i+1], s[i+1:]
}
