package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"

	"github.com/zakarialaoui10/lfi3a/pkg/ast"
	"github.com/zakarialaoui10/lfi3a/pkg/lexer"
	"github.com/zakarialaoui10/lfi3a/pkg/parser"
)

// SourceExtension is the suffix every lfi3a program must carry.
const SourceExtension = ".lfi3a"

// ErrUnsupportedFile is returned for paths without the .lfi3a suffix.
var ErrUnsupportedFile = errors.New("Only .lfi3a files are allowed")

// Source is a program file read into memory.
type Source struct {
	Path string
	Text string
}

// Program is a compiled source: its token stream and top-level statements.
type Program struct {
	Path       string
	Tokens     []lexer.Token
	Statements []*ast.Node
}

// LoadSource reads the program at path after checking its extension.
func LoadSource(path string) (*Source, error) {
	if !strings.HasSuffix(path, SourceExtension) || len(path) == len(SourceExtension) {
		log.LogVf("rejecting %s", path)
		return nil, ErrUnsupportedFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.LogVf("read %s: %v", path, err)
		return nil, &OpenError{Path: path, Err: err}
	}
	log.LogVf("loaded %s (%d bytes)", path, len(data))
	return &Source{Path: path, Text: string(data)}, nil
}

// OpenError reports a source file that could not be read.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("Cannot open file '%s'", e.Path)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Compile runs the lexer and parser over src.
func Compile(src *Source) (*Program, error) {
	if src == nil {
		return nil, errors.New("driver: nil source")
	}
	tokens := lexer.Tokenize(src.Text)
	log.LogVf("%s: %d tokens", src.Path, len(tokens))
	statements, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	log.LogVf("%s: %d top-level statements", src.Path, len(statements))
	return &Program{Path: src.Path, Tokens: tokens, Statements: statements}, nil
}

// CompileFile loads and compiles the program at path.
func CompileFile(path string) (*Program, error) {
	src, err := LoadSource(path)
	if err != nil {
		return nil, err
	}
	return Compile(src)
}

// ResolveMain returns the manifest's main program path, relative to the
// manifest's directory.
func (m *Manifest) ResolveMain() string {
	if m == nil || m.Main == "" {
		return ""
	}
	if filepath.IsAbs(m.Main) {
		return m.Main
	}
	return filepath.Join(filepath.Dir(m.Path), m.Main)
}
