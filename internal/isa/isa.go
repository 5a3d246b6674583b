// Package isa is the closed table of HYPO-16 mnemonics: the
// instruction family each belongs to, its opcode byte, and, for the
// branch and load/store families, the per-addressing-mode byte
// layout shared by both the first pass (sizing) and the second pass
// (emission). Keeping this table-driven is what guarantees the two
// passes can never disagree about an instruction's size.
package isa

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Manu343726/hasm/internal/classify"
	"github.com/Manu343726/hasm/pkg/utils"
)

// Family groups mnemonics that share an encoding shape.
type Family int

const (
	NoOperand Family = iota
	TwoRegister
	OneRegister
	Stack
	Branch
	MemAccess
)

// Descriptor is everything the assembler needs to size and encode one
// mnemonic.
type Descriptor struct {
	Mnemonic string
	Family   Family
	Opcode   byte
}

var ErrUnknownMnemonic = errors.New("unknown instruction mnemonic")

var mnemonics = map[string]Descriptor{
	"halt": {Mnemonic: "halt", Family: NoOperand, Opcode: 0x00},
	"iret": {Mnemonic: "iret", Family: NoOperand, Opcode: 0x20},
	"ret":  {Mnemonic: "ret", Family: NoOperand, Opcode: 0x40},

	"xchg": {Mnemonic: "xchg", Family: TwoRegister, Opcode: 0x60},
	"add":  {Mnemonic: "add", Family: TwoRegister, Opcode: 0x70},
	"sub":  {Mnemonic: "sub", Family: TwoRegister, Opcode: 0x71},
	"mul":  {Mnemonic: "mul", Family: TwoRegister, Opcode: 0x72},
	"div":  {Mnemonic: "div", Family: TwoRegister, Opcode: 0x73},
	"cmp":  {Mnemonic: "cmp", Family: TwoRegister, Opcode: 0x74},
	"and":  {Mnemonic: "and", Family: TwoRegister, Opcode: 0x81},
	"or":   {Mnemonic: "or", Family: TwoRegister, Opcode: 0x82},
	"xor":  {Mnemonic: "xor", Family: TwoRegister, Opcode: 0x83},
	"test": {Mnemonic: "test", Family: TwoRegister, Opcode: 0x84},
	"shl":  {Mnemonic: "shl", Family: TwoRegister, Opcode: 0x90},
	"shr":  {Mnemonic: "shr", Family: TwoRegister, Opcode: 0x91},

	"int": {Mnemonic: "int", Family: OneRegister, Opcode: 0x10},
	"not": {Mnemonic: "not", Family: OneRegister, Opcode: 0x80},

	"push": {Mnemonic: "push", Family: Stack, Opcode: 0xB0},
	"pop":  {Mnemonic: "pop", Family: Stack, Opcode: 0xA0},

	"jmp":  {Mnemonic: "jmp", Family: Branch, Opcode: 0x50},
	"jeq":  {Mnemonic: "jeq", Family: Branch, Opcode: 0x51},
	"jne":  {Mnemonic: "jne", Family: Branch, Opcode: 0x52},
	"jgt":  {Mnemonic: "jgt", Family: Branch, Opcode: 0x53},
	"call": {Mnemonic: "call", Family: Branch, Opcode: 0x30},

	"ldr": {Mnemonic: "ldr", Family: MemAccess, Opcode: 0xA0},
	"str": {Mnemonic: "str", Family: MemAccess, Opcode: 0xB0},
}

func init() {
	for mnemonic, d := range mnemonics {
		if d.Mnemonic != mnemonic {
			panic(fmt.Sprintf("isa: mnemonic table key %q does not match descriptor mnemonic %q", mnemonic, d.Mnemonic))
		}
	}
}

// Lookup resolves a mnemonic token (case-insensitive) to its
// descriptor.
func Lookup(token string) (Descriptor, error) {
	d, ok := mnemonics[strings.ToLower(token)]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownMnemonic, token)
	}
	return d, nil
}

// AllMnemonics returns every recognized mnemonic, in no particular
// order; All sorts this list to build the full instruction table.
func AllMnemonics() []string {
	return utils.Keys(mnemonics)
}

// All returns every recognized mnemonic's descriptor, sorted by
// mnemonic; used by the CLI's "isa" subcommand to dump the full
// instruction table.
func All() []Descriptor {
	names := AllMnemonics()
	sort.Strings(names)
	return utils.Map(names, func(name string) Descriptor { return mnemonics[name] })
}

// String renders a Family by name, the form the "isa" subcommand's
// YAML dump uses.
func (f Family) String() string {
	switch f {
	case NoOperand:
		return "no-operand"
	case TwoRegister:
		return "two-register"
	case OneRegister:
		return "one-register"
	case Stack:
		return "stack"
	case Branch:
		return "branch"
	case MemAccess:
		return "mem-access"
	default:
		return "unknown"
	}
}

// OneRegisterLowNibble is the fixed low nibble each one-register
// instruction's second byte carries alongside the register's high
// nibble.
func OneRegisterLowNibble(mnemonic string) byte {
	if mnemonic == "int" {
		return 0xF
	}
	return 0x0
}

// modeLayout describes, for one addressing-mode Kind, the mode byte
// and the "second nibble" value (either a fixed constant or, for
// register-bearing shapes, the operand's register number) the
// branch/memory encoding uses.
type modeLayout struct {
	mode        byte
	fixedNibble int  // meaningful only when hasFixed is true
	hasFixed    bool // false: the nibble comes from the operand's register instead
}

var branchModes = map[classify.Kind]modeLayout{
	classify.ImmLit:     {mode: 0x00, fixedNibble: 0, hasFixed: true},
	classify.ImmSym:     {mode: 0x00, fixedNibble: 0, hasFixed: true},
	classify.PCRelSym:   {mode: 0x05, fixedNibble: 7, hasFixed: true},
	classify.MemLit:     {mode: 0x04, fixedNibble: 0, hasFixed: true},
	classify.MemSym:     {mode: 0x04, fixedNibble: 0, hasFixed: true},
	classify.RegDir:     {mode: 0x01},
	classify.RegInd:     {mode: 0x02},
	classify.RegIndLit:  {mode: 0x03},
	classify.RegIndSym:  {mode: 0x03},
}

var loadStoreModes = map[classify.Kind]modeLayout{
	classify.ImmLit:    {mode: 0x00, fixedNibble: 0, hasFixed: true},
	classify.ImmSym:    {mode: 0x00, fixedNibble: 0, hasFixed: true},
	classify.MemLit:    {mode: 0x04, fixedNibble: 0, hasFixed: true},
	classify.MemSym:    {mode: 0x04, fixedNibble: 0, hasFixed: true},
	classify.PCRelSym:  {mode: 0x03, fixedNibble: 7, hasFixed: true},
	classify.RegDir:    {mode: 0x01},
	classify.RegInd:    {mode: 0x02},
	classify.RegIndLit: {mode: 0x03},
	classify.RegIndSym: {mode: 0x03},
}

// ErrUnencodableMode should never surface in practice: it means the
// classifier produced a Kind the mode-layout tables don't cover.
var ErrUnencodableMode = errors.New("addressing mode has no encoding")

// ModeByte returns the third byte ("mode byte") of a branch or
// load/store instruction's encoding for the given operand.
func ModeByte(family Family, op classify.Operand) (byte, error) {
	table := loadStoreModes
	if family == Branch {
		table = branchModes
	}
	layout, ok := table[op.Kind]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnencodableMode, op.Kind)
	}
	return layout.mode, nil
}

// SecondNibble returns the low nibble of a branch or load/store
// instruction's second byte: a fixed constant for immediate/memory
// modes, the operand's register number otherwise.
func SecondNibble(family Family, op classify.Operand) (byte, error) {
	table := loadStoreModes
	if family == Branch {
		table = branchModes
	}
	layout, ok := table[op.Kind]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnencodableMode, op.Kind)
	}
	if layout.hasFixed {
		return byte(layout.fixedNibble), nil
	}
	return byte(op.Register), nil
}
