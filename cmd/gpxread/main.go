// Command gpxread unpacks GuitarPro 6 (.gpx) files.
//
// Usage:
//
//	gpxread [-l] [-x dir] [-raw] [-compat] [-v] [file]
//
// The file is read from stdin when no path is given.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/flanglet/kanzi-go/v2/hash"
	"github.com/woozymasta/bcfz"
	"github.com/woozymasta/bcfz/gpx"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type config struct {
	list    bool
	extract string
	raw     bool
	compat  bool
	verbose bool
	input   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	data, err := readInput(cfg.input, stdin)
	if err != nil {
		logger.Error("read input", "path", cfg.input, "err", err)
		return exitFailure
	}

	opts := bcfz.DefaultOptions()
	if cfg.compat {
		opts = bcfz.CompatOptions()
	}
	opts.Logger = logger

	if cfg.raw {
		payload, err := gpx.Payload(data, opts)
		if err != nil {
			reportDecodeError(logger, err)
			return exitFailure
		}
		if _, err := stdout.Write(payload); err != nil {
			logger.Error("write payload", "err", err)
			return exitFailure
		}
		return exitOK
	}

	files, err := gpx.Read(data, opts)
	if err != nil {
		reportDecodeError(logger, err)
		return exitFailure
	}
	logger.Debug("container read", "files", len(files))

	if cfg.list || cfg.extract == "" {
		if err := listFiles(stdout, files); err != nil {
			logger.Error("list files", "err", err)
			return exitFailure
		}
	}

	if cfg.extract != "" {
		if err := extractFiles(cfg.extract, files, logger); err != nil {
			logger.Error("extract files", "dir", cfg.extract, "err", err)
			return exitFailure
		}
	}

	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("gpxread", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cfg.list, "l", false, "list container entries with size and XXH64 digest")
	fs.StringVar(&cfg.extract, "x", "", "extract container entries into `dir`")
	fs.BoolVar(&cfg.raw, "raw", false, "write the decompressed BCFZ payload to stdout")
	fs.BoolVar(&cfg.compat, "compat", false, "clamp back-reference copies like the GuitarPro readers")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: gpxread [flags] [file]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return nil, fmt.Errorf("too many arguments: %d", fs.NArg())
	}
	cfg.input = fs.Arg(0)

	return cfg, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

func listFiles(w io.Writer, files []gpx.File) error {
	hasher, err := hash.NewXXHash64(0)
	if err != nil {
		return err
	}

	for _, f := range files {
		if _, err := fmt.Fprintf(w, "%016x %10d %s\n", hasher.Hash(f.Data), len(f.Data), f.Name); err != nil {
			return err
		}
	}

	return nil
}

func extractFiles(dir string, files []gpx.File, logger *slog.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, f := range files {
		name := filepath.Base(filepath.Clean("/" + f.Name))
		if name == "/" || name == "." {
			logger.Warn("skip entry without name", "size", len(f.Data))
			continue
		}

		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return err
		}
		logger.Debug("extracted", "path", path, "size", len(f.Data))
	}

	return nil
}

// reportDecodeError logs err, adding the bit position for corrupt BCFZ streams.
func reportDecodeError(logger *slog.Logger, err error) {
	var derr *bcfz.DecodeError
	if errors.As(err, &derr) {
		logger.Error("corrupt bcfz stream",
			"kind", derr.Kind.String(),
			"byte", derr.Offset,
			"bit", derr.Bit,
			"field", derr.Field,
			"output", derr.Output)
		return
	}

	logger.Error("read gpx", "err", err)
}
