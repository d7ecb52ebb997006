package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/zephyrtronium/intexpr"
	"github.com/zephyrtronium/intexpr/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, time.Now))
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprint(w, "Evaluate expression\n\n")
	fmt.Fprint(w, "usage: intexpr [OPTIONS] EXPRESSION VALUE...\n")
	fmt.Fprint(w, "OPTIONS:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprint(w, "\nVALUEs set %0 through %9. An EXPRESSION starting with - and a digit\n")
	fmt.Fprint(w, "is not an option; use -- before any other EXPRESSION starting with -.\n")
}

// run is the command. It returns the exit status.
func run(args []string, stdout, stderr io.Writer, now func() time.Time) int {
	lg := log.New(stderr, "intexpr: ", 0)
	fs := flag.NewFlagSet("intexpr", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		hex, check, verbose bool
		hook, cfgname       string
		depth               int
	)
	fs.BoolVar(&hex, "x", false, "output hexadecimal")
	fs.BoolVar(&check, "check", false, "verify syntax only; report by exit status")
	fs.StringVar(&hook, "hook", "", "extension hook: "+strings.Join(config.Hooks, " or ")+" (default identity)")
	fs.StringVar(&cfgname, "config", "", "YAML settings file")
	fs.IntVar(&depth, "depth", 0, "maximum expression nesting; negative for no limit (default 10000)")
	fs.BoolVar(&verbose, "v", false, "log evaluation details to stderr")
	if err := fs.Parse(negatives(fs, args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(stdout, fs)
			return 0
		}
		lg.Print(err)
		usage(stderr, fs)
		return 2
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if fs.NArg() == 0 {
		usage(stderr, fs)
		return 0
	}

	var cfg config.Config
	if cfgname != "" {
		c, err := config.FromFile(cfgname)
		if err != nil {
			lg.Print(err)
			return 1
		}
		cfg = c
		logger.Debug("loaded config", slog.String("path", cfgname))
	}
	// Flags given on the command line override the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "x":
			cfg.Hex = hex
		case "hook":
			cfg.Hook = hook
		case "depth":
			cfg.MaxDepth = depth
		}
	})
	opts, err := cfg.Options()
	if err != nil {
		lg.Print(err)
		return 1
	}

	expr := fs.Arg(0)
	if check {
		opts = append(opts, intexpr.Inactive())
		if _, err := intexpr.Eval(expr, opts...); err != nil {
			logger.Debug("invalid expression", slog.String("expr", expr), slog.String("error", err.Error()))
			return 1
		}
		return 0
	}

	regs, err := registers(cfg, fs.Args()[1:], now(), logger)
	if err != nil {
		lg.Print(err)
		return 1
	}
	opts = append(opts, intexpr.WithRegisters(regs))
	logger.Debug("evaluating", slog.String("expr", expr), slog.String("hook", cfg.Hook))
	v, err := intexpr.Eval(expr, opts...)
	if err != nil {
		lg.Print(err)
		return 1
	}
	logger.Debug("evaluated", slog.String("expr", expr), slog.Uint64("result", v))
	fmt.Fprintln(stdout, format(v, cfg.Hex))
	return 0
}

// negatives returns args with "--" inserted before the first argument in
// option position that starts with - and a digit, so that such an argument is
// read as the expression instead of an unknown flag.
func negatives(fs *flag.FlagSet, args []string) []string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" || len(a) < 2 || a[0] != '-' {
			return args
		}
		if '0' <= a[1] && a[1] <= '9' {
			r := make([]string, 0, len(args)+1)
			r = append(r, args[:i]...)
			r = append(r, "--")
			return append(r, args[i:]...)
		}
		name := strings.TrimLeft(a, "-")
		if strings.Contains(name, "=") {
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			// Parse reports it.
			return args
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			continue
		}
		// The next argument is the flag's value.
		i++
	}
	return args
}

// registers builds the register bank: file settings, then positional values,
// then the builtin registers.
func registers(cfg config.Config, values []string, now time.Time, logger *slog.Logger) (*intexpr.Registers, error) {
	var regs intexpr.Registers
	if err := cfg.Apply(&regs); err != nil {
		return nil, err
	}
	if len(values) > 10 {
		logger.Warn("ignoring extra values", slog.Int("count", len(values)-10))
		values = values[:10]
	}
	for i, s := range values {
		v, err := intexpr.Eval(s)
		if err != nil {
			return nil, fmt.Errorf("value %d (%q): %w", i, s, err)
		}
		regs[i] = v
	}
	regs.Builtins(now)
	for k, v := range regs {
		if v != 0 {
			logger.Debug("register", slog.String("name", string(intexpr.RegisterName(k))), slog.Uint64("value", v))
		}
	}
	return &regs, nil
}

// format formats a result in decimal or, with hex, in hexadecimal with a 0x
// prefix for nonzero values.
func format(v uint64, hex bool) string {
	switch {
	case !hex:
		return fmt.Sprintf("%d", v)
	case v == 0:
		return "0"
	default:
		return fmt.Sprintf("%#x", v)
	}
}
