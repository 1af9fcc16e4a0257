package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/docopt/docopt-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"redfile_reader/redfile"
)

const version = "redfile-reader 0.1.0"

const (
	defaultValuesPerDataPage = "-1"
	defaultDelimiter         = "|"
	defaultLogLevel          = "info"
)

const usage = `redfile-reader.

Reads a RED1 file from local disk, validates that it is correctly formed and
outputs values from each data page. The entire file is buffered in memory, so
this is not suitable for very large files.

Usage:
  redfile-reader [options]
  redfile-reader -h | --help | --version

Options:
  -h --help                 show this help message and exit
  --file PATH               file to read
  --values-per-data-page N  number of values to output per data page, -1 for all [default: -1]
  --output-page-header      output page headers to stderr
  --output-to-csv           output rows to stdout as CSV, quoting fields that hold the delimiter, a quote,
                            a line break or a leading space; forces all values of every page, this can be very slow
  --delimiter CHAR          field delimiter of the row output [default: |]
  --config PATH             YAML file with default options
  --log-level LEVEL         log level: debug, info, warn or error [default: info]`

type Config struct {
	File              string `docopt:"--file"`
	ValuesPerDataPage string `docopt:"--values-per-data-page"`
	OutputPageHeader  bool   `docopt:"--output-page-header"`
	OutputToCSV       bool   `docopt:"--output-to-csv"`
	Delimiter         string `docopt:"--delimiter"`
	Config            string `docopt:"--config"`
	LogLevel          string `docopt:"--log-level"`
}

// options is the validated form of Config.
type options struct {
	file              string
	valuesPerDataPage int
	outputPageHeader  bool
	outputToCSV       bool
	delimiter         rune
	logLevel          zapcore.Level
}

func (cfg *Config) options() (options, error) {
	opts := options{
		file:             cfg.File,
		outputPageHeader: cfg.OutputPageHeader,
		outputToCSV:      cfg.OutputToCSV,
	}

	n, err := strconv.Atoi(cfg.ValuesPerDataPage)
	if err != nil {
		return opts, fmt.Errorf("invalid --values-per-data-page %q: %w", cfg.ValuesPerDataPage, err)
	}
	opts.valuesPerDataPage = n
	// Rows need every value of every page.
	if opts.outputToCSV {
		opts.valuesPerDataPage = -1
	}

	if utf8.RuneCountInString(cfg.Delimiter) != 1 {
		return opts, fmt.Errorf("invalid --delimiter %q: must be a single character", cfg.Delimiter)
	}
	opts.delimiter, _ = utf8.DecodeRuneInString(cfg.Delimiter)

	if opts.logLevel, err = zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return opts, fmt.Errorf("invalid --log-level: %w", err)
	}
	return opts, nil
}

func main() {
	args, err := docopt.ParseArgs(usage, os.Args[1:], version)
	if err != nil {
		log.Fatal(err)
	}

	cfg := Config{}
	if err := args.Bind(&cfg); err != nil {
		log.Fatal(err)
	}

	fileCfg, err := ParseConfig(LoadConfig(cfg.Config))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading config: %v\n", err)
		os.Exit(2)
	}
	if fileCfg != nil {
		mergeConf(fileCfg, &cfg)
	}

	opts, err := cfg.options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if len(opts.file) == 0 {
		fmt.Println("Must specify input file.")
		os.Exit(2)
	}

	logger, err := newLogger(opts.logLevel)
	if err != nil {
		log.Fatal(err)
	}

	err = runParser(context.Background(), opts, os.Stdout, os.Stderr, logger)
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func runParser(ctx context.Context, opts options, stdout, stderr io.Writer, logger *zap.Logger) error {
	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("error opening file: %w", err)
	}

	data, err = decompressInput(data)
	if err != nil {
		return fmt.Errorf("error decompressing %s: %w", opts.file, err)
	}
	logger.Debug("loaded file", zap.String("file", opts.file), zap.Int("bytes", len(data)))

	reader := redfile.NewReader(
		redfile.WithLogger(logger),
		redfile.WithDiagnostics(stderr),
		redfile.WithValuesPerDataPage(opts.valuesPerDataPage),
		redfile.WithPageHeaders(opts.outputPageHeader),
		redfile.WithRowOutput(opts.outputToCSV),
	)

	res, err := reader.Read(ctx, data)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", opts.file, err)
	}

	redfile.NewReporter(stderr).Summary(&res.Stats)

	if opts.outputToCSV {
		if err := writeRows(stdout, res.Rows, opts.delimiter); err != nil {
			return fmt.Errorf("error writing rows: %w", err)
		}
	}
	return nil
}

// writeRows writes one line per row, fields separated by delim. Null values
// are empty fields.
func writeRows(w io.Writer, rows [][]string, delim rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
