package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/mcncl/jsonshape/internal/config"
	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/parser"
	"github.com/mcncl/jsonshape/internal/sample"
	"github.com/mcncl/jsonshape/internal/summary"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Config      string `help:"Path to a YAML config file. Defaults to the nearest .jsonshape.yml." short:"c" type:"path"`
	Format      string `help:"Output format: text, json or yaml." short:"f" env:"JSONSHAPE_FORMAT"`
	MaxDepth    int    `help:"Maximum nesting depth to walk, 0 for unlimited." default:"-1" env:"JSONSHAPE_MAX_DEPTH"`
	Counts      bool   `help:"Show how many times each shape occurs."`
	NoSource    bool   `help:"Do not print the parsed JSON after the structure."`
	KeyCase     string `help:"Case used for keys in displayed paths: original, snake, camel, lower_camel or kebab."`
	Demo        bool   `help:"Analyze the bundled demo payload."`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger *log.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Values from .env become defaults for env-bound flags
	_ = godotenv.Load()

	cli := kong.Must(&CLI,
		kong.Name("jsonshape"),
		kong.Description("A tool to summarize the structure of JSON documents"),
		kong.UsageOnError(),
	)

	if _, err := cli.Parse(os.Args[1:]); err != nil {
		cli.FatalIfErrorf(err)
	}

	// With no arguments, fall back to interactive mode
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if CLI.Version {
		fmt.Printf("jsonshape version %s\n", Version)
		return
	}

	ctx, err := newContext()
	if err == nil {
		err = run(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonshape --help\n")
		os.Exit(1)
	}
}

// newContext loads configuration and applies the flags that were set
func newContext() (*Context, error) {
	var override config.Overrides
	if CLI.MaxDepth >= 0 {
		override.MaxDepth = &CLI.MaxDepth
	}
	if CLI.Format != "" {
		override.Format = &CLI.Format
	}
	if CLI.KeyCase != "" {
		override.KeyCase = &CLI.KeyCase
	}
	if CLI.Counts {
		showCounts := true
		override.ShowCounts = &showCounts
	}
	if CLI.NoSource {
		showSource := false
		override.ShowSource = &showSource
	}
	if CLI.Debug {
		override.Debug = &CLI.Debug
	}

	cfg, err := config.LoadConfigWithCLI(CLI.Config, override)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to load configuration: %v", err), err)
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Dev.Debug {
		logger = log.New(os.Stderr, "jsonshape: ", log.Ltime)
	}

	return &Context{Debug: cfg.Dev.Debug, Config: cfg, Logger: logger}, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	if CLI.Demo && CLI.Input != "" {
		return errors.NewInputError("--demo cannot be combined with --input", errors.ErrInvalidFilePath)
	}

	s := summary.NewSummarizer(ctx.Config, ctx.Logger)
	var out bytes.Buffer

	if CLI.Input != "" {
		ctx.Logger.Printf("reading %s", CLI.Input)
		doc, err := parser.ParseFile(CLI.Input)
		if err != nil {
			return err
		}
		if _, err := s.SummarizeValue(doc, &out); err != nil {
			return err
		}
		return writeOutput(out.Bytes())
	}

	data, err := readInput()
	if err != nil {
		return err
	}
	if _, err := s.Summarize(data, &out); err != nil {
		return err
	}
	return writeOutput(out.Bytes())
}

// readInput reads JSON from the demo payload or stdin
func readInput() ([]byte, error) {
	if CLI.Demo {
		return []byte(sample.Payload()), nil
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput(os.Stdin)
		}
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}
	if len(bytes.TrimSpace(jsonData)) == 0 {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return jsonData, nil
}

// writeOutput writes the rendered summary to file or stdout
func writeOutput(data []byte) error {
	if CLI.Output != "" {
		if err := os.WriteFile(CLI.Output, data, 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Structure summary written to %s\n", CLI.Output)
		return nil
	}

	if _, err := os.Stdout.Write(data); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput lets users paste JSON and signal completion with
// Ctrl+D (EOF)
func readInteractiveInput(in io.Reader) ([]byte, error) {
	fmt.Fprintln(os.Stderr, "jsonshape interactive mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(in)
	var buf bytes.Buffer

	for {
		line, err := reader.ReadString('\n')
		buf.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewInputError("error reading input", err)
		}
	}

	if len(bytes.TrimSpace(buf.Bytes())) == 0 {
		return nil, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return buf.Bytes(), nil
}
