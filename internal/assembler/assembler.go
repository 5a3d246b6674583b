// Package assembler drives the two-pass HYPO-16 assembly: pass 1
// sizes every line and populates the symbol table, pass 2 re-walks
// the same lines in lockstep to emit bytes and relocations. Both
// passes share the exact same directive and instruction dispatch so
// a size computed in pass 1 can never drift from what pass 2 emits.
package assembler

import (
	"errors"
	"log/slog"

	"github.com/Manu343726/hasm/internal/diagnostics"
	"github.com/Manu343726/hasm/internal/isa"
	"github.com/Manu343726/hasm/internal/reloc"
	"github.com/Manu343726/hasm/internal/symtab"
	"github.com/Manu343726/hasm/internal/token"
)

const (
	sectionUND = "UND"
	sectionABS = "ABS"
)

var (
	ErrUnknownDirective   = errors.New("unknown directive")
	ErrMissingOperand     = errors.New("missing operand")
	ErrExtraOperand       = errors.New("junk after operand")
	ErrInvalidIdentifier  = errors.New("not a valid identifier")
	ErrUndefinedSymbol    = errors.New("undefined symbol")
	ErrImmediateStore     = errors.New("cannot store to immediate value")
	ErrSectionArgCount    = errors.New(".section requires exactly one operand")
	ErrEquArgCount        = errors.New(".equ requires exactly two operands")
	ErrWordLiteralExtra   = errors.New(".word literal operand must be the only operand")
	ErrNotARegister       = errors.New("operand is not a valid register")
)

func fatal(line int, err error) error {
	return diagnostics.New(line, err)
}

// Result is everything pass 2 produces: the finished symbol and
// relocation tables, and the emitted byte stream in program order.
type Result struct {
	Symbols     *symtab.Table
	Relocations *reloc.Table
	Bytes       []string
}

// Assembler holds the state shared by both passes: the token stream
// and the tables/cursors each pass mutates.
type Assembler struct {
	lines []token.Line

	symbols     symtab.Table
	relocations reloc.Table

	currentSection string
	locationCounter int
	endReached      bool

	logger *slog.Logger
}

// New builds an Assembler over an already-tokenized source. Debug
// logging is discarded until a logger is attached with AssembleWithLogger.
func New(lines []token.Line) *Assembler {
	return &Assembler{lines: lines, logger: slog.New(slog.DiscardHandler)}
}

// Assemble runs pass 1 then pass 2 to completion, returning the first
// fatal error encountered by either pass. Debug-level progress is
// discarded; use AssembleWithLogger to observe it.
func Assemble(lines []token.Line) (*Result, error) {
	return AssembleWithLogger(lines, slog.New(slog.DiscardHandler))
}

// AssembleWithLogger runs the same two passes as Assemble, additionally
// emitting slog.Debug records at section boundaries and for every
// instruction pass 2 encodes. The logger never affects control flow or
// the bytes produced: a nil-safe *slog.Logger wired to a discard
// handler makes Assemble's silent default and this one interchangeable
// in every other respect.
func AssembleWithLogger(lines []token.Line, logger *slog.Logger) (*Result, error) {
	a := New(lines)
	a.logger = logger

	if err := a.runPass1(); err != nil {
		return nil, err
	}

	a.currentSection = ""
	a.locationCounter = 0
	a.endReached = false

	bytesOut, err := a.runPass2()
	if err != nil {
		return nil, err
	}

	return &Result{
		Symbols:     &a.symbols,
		Relocations: &a.relocations,
		Bytes:       bytesOut,
	}, nil
}

// resolveMnemonic resolves a mnemonic token to its isa.Descriptor, or
// returns the lookup error tagged with the line number.
func (a *Assembler) resolveMnemonic(lineNo int, mnemonic string) (isa.Descriptor, error) {
	d, err := isa.Lookup(mnemonic)
	if err != nil {
		return isa.Descriptor{}, fatal(lineNo, err)
	}
	return d, nil
}
