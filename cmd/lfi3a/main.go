package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"

	"github.com/zakarialaoui10/lfi3a/pkg/driver"
	"github.com/zakarialaoui10/lfi3a/pkg/interpreter"
	"github.com/zakarialaoui10/lfi3a/pkg/lexer"
)

const cliToolVersion = "lfi3a 0.1.0"

type options struct {
	verbose  bool
	maxDepth int
}

func main() {
	log.SetDefaultsForClientTools()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lfi3a", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }
	var opts options
	fs.BoolVar(&opts.verbose, "v", false, "trace lexing, parsing and evaluation")
	fs.BoolVar(&opts.verbose, "verbose", false, "trace lexing, parsing and evaluation")
	fs.IntVar(&opts.maxDepth, "max-depth", 0, "maximum call depth (0 uses the manifest or built-in default)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if opts.maxDepth < 0 {
		fmt.Fprintln(stderr, "Error: --max-depth must not be negative")
		return 1
	}
	if opts.verbose {
		log.SetLogLevel(log.Verbose)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(stderr)
		return 1
	}

	switch rest[0] {
	case "help":
		printUsage(stdout)
		return 0
	case "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return 0
	case "run":
		if len(rest) > 2 {
			fmt.Fprintf(stderr, "Error: unexpected arguments: %s\n", strings.Join(rest[2:], " "))
			return 1
		}
		path := ""
		if len(rest) == 2 {
			path = rest[1]
		}
		return runFile(path, opts, stdout, stderr)
	case "tokens":
		return withSingleFile(rest, stderr, func(path string) int { return dumpTokens(path, stdout, stderr) })
	case "ast":
		return withSingleFile(rest, stderr, func(path string) int { return dumpAST(path, stdout, stderr) })
	case "repl":
		return runRepl(opts, stdout, stderr)
	default:
		if len(rest) > 1 {
			fmt.Fprintln(stderr, "Usage: lfi3a <file.lfi3a>")
			return 1
		}
		return runFile(rest[0], opts, stdout, stderr)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lfi3a [flags] <file.lfi3a>")
	fmt.Fprintln(w, "       lfi3a [flags] run [file.lfi3a]")
	fmt.Fprintln(w, "       lfi3a tokens <file.lfi3a>")
	fmt.Fprintln(w, "       lfi3a ast <file.lfi3a>")
	fmt.Fprintln(w, "       lfi3a [flags] repl")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -v, --verbose      trace lexing, parsing and evaluation")
	fmt.Fprintln(w, "  --max-depth N      maximum call depth")
}

func withSingleFile(rest []string, stderr io.Writer, fn func(string) int) int {
	if len(rest) != 2 {
		fmt.Fprintf(stderr, "Usage: lfi3a %s <file.lfi3a>\n", rest[0])
		return 1
	}
	return fn(rest[1])
}

func reportError(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

// runFile executes a program. With no path it runs the main entry of the
// nearest lfi3a.yml.
func runFile(path string, opts options, stdout, stderr io.Writer) int {
	manifest, err := manifestFor(path)
	if err != nil {
		return reportError(stderr, err)
	}
	if path == "" {
		if manifest == nil || manifest.Main == "" {
			fmt.Fprintln(stderr, "Usage: lfi3a <file.lfi3a>")
			return 1
		}
		path = manifest.ResolveMain()
	}
	if manifest != nil && manifest.Trace && !opts.verbose {
		log.SetLogLevel(log.Verbose)
	}

	program, err := driver.CompileFile(path)
	if err != nil {
		return reportError(stderr, err)
	}

	out := bufio.NewWriter(stdout)
	interp := interpreter.NewWithOptions(interpreter.Options{
		Stdout:       out,
		MaxCallDepth: callDepth(opts, manifest),
	})
	runErr := interp.Run(program.Statements)
	if err := out.Flush(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return reportError(stderr, runErr)
	}
	return 0
}

// manifestFor locates the manifest governing path (or the working directory
// when path is empty). A broken manifest next to an explicit file only warns.
func manifestFor(path string) (*driver.Manifest, error) {
	dir := "."
	if path != "" {
		dir = filepath.Dir(path)
	}
	manifestPath, err := driver.FindManifest(dir)
	if err != nil {
		if errors.Is(err, driver.ErrManifestNotFound) {
			return nil, nil
		}
		return nil, err
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		if path != "" {
			log.Warnf("ignoring manifest %s: %v", manifestPath, err)
			return nil, nil
		}
		return nil, err
	}
	log.LogVf("using manifest %s", manifest.Path)
	return manifest, nil
}

func callDepth(opts options, manifest *driver.Manifest) int {
	if opts.maxDepth > 0 {
		return opts.maxDepth
	}
	if manifest != nil && manifest.MaxCallDepth > 0 {
		return manifest.MaxCallDepth
	}
	return interpreter.DefaultMaxCallDepth
}

func dumpTokens(path string, stdout, stderr io.Writer) int {
	src, err := driver.LoadSource(path)
	if err != nil {
		return reportError(stderr, err)
	}
	tokens := lexer.Tokenize(src.Text)
	out := bufio.NewWriter(stdout)
	defer out.Flush()
	enc := json.NewEncoder(out)
	for _, tok := range tokens {
		if err := enc.Encode(tok); err != nil {
			return reportError(stderr, err)
		}
	}
	return 0
}

func dumpAST(path string, stdout, stderr io.Writer) int {
	program, err := driver.CompileFile(path)
	if err != nil {
		return reportError(stderr, err)
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(program.Statements); err != nil {
		return reportError(stderr, err)
	}
	return 0
}
