package assembler

import (
	"fmt"

	"github.com/Manu343726/hasm/internal/classify"
	"github.com/Manu343726/hasm/internal/isa"
	"github.com/Manu343726/hasm/internal/reloc"
	"github.com/Manu343726/hasm/internal/token"
)

// instructionSize computes the encoded size of an instruction line,
// identically to what pass 2's emitInstruction will produce. Both
// passes call this (or the addressing-mode sizing it delegates to)
// so a size can never be computed two different ways.
func (a *Assembler) instructionSize(line token.Line) (int, error) {
	mnemonic := line.Tokens[0]
	d, err := a.resolveMnemonic(line.Number, mnemonic)
	if err != nil {
		return 0, err
	}

	operands := line.Tokens[1:]

	switch d.Family {
	case isa.NoOperand:
		if len(operands) != 0 {
			return 0, fatal(line.Number, ErrExtraOperand)
		}
		return 1, nil

	case isa.TwoRegister:
		if len(operands) != 2 {
			return 0, fatal(line.Number, ErrMissingOperand)
		}
		if !classify.IsArithRegister(operands[0]) || !classify.IsArithRegister(operands[1]) {
			return 0, fatal(line.Number, ErrNotARegister)
		}
		return 2, nil

	case isa.OneRegister:
		if len(operands) != 1 {
			return 0, fatal(line.Number, ErrMissingOperand)
		}
		if _, err := classify.RegisterNumber(operands[0]); err != nil {
			return 0, fatal(line.Number, err)
		}
		return 2, nil

	case isa.Stack:
		if len(operands) != 1 {
			return 0, fatal(line.Number, ErrMissingOperand)
		}
		if _, err := classify.RegisterNumber(operands[0]); err != nil {
			return 0, fatal(line.Number, err)
		}
		return 3, nil

	case isa.Branch:
		op, consumed, err := classify.ClassifyBranch(line.Tokens, 1)
		if err != nil {
			return 0, fatal(line.Number, err)
		}
		if 1+consumed != len(line.Tokens) {
			return 0, fatal(line.Number, ErrExtraOperand)
		}
		return op.Kind.Size(), nil

	case isa.MemAccess:
		if len(operands) < 1 {
			return 0, fatal(line.Number, ErrMissingOperand)
		}
		if _, err := classify.RegisterNumber(operands[0]); err != nil {
			return 0, fatal(line.Number, err)
		}
		op, consumed, err := classify.ClassifyLoadStore(line.Tokens, 2)
		if err != nil {
			return 0, fatal(line.Number, err)
		}
		if d.Mnemonic == "str" && (op.Kind == classify.ImmLit || op.Kind == classify.ImmSym) {
			return 0, fatal(line.Number, ErrImmediateStore)
		}
		if 2+consumed != len(line.Tokens) {
			return 0, fatal(line.Number, ErrExtraOperand)
		}
		return op.Kind.Size(), nil

	default:
		return 0, fatal(line.Number, fmt.Errorf("%w: %q", ErrUnknownDirective, mnemonic))
	}
}

// emitInstruction produces the hex entry (or entries) for an
// instruction line, advancing location_counter by exactly the size
// instructionSize computed for the same line.
func (a *Assembler) emitInstruction(line token.Line) (out []string, err error) {
	mnemonic := line.Tokens[0]
	d, err := a.resolveMnemonic(line.Number, mnemonic)
	if err != nil {
		return nil, err
	}
	operands := line.Tokens[1:]
	start := a.locationCounter
	defer func() {
		if err == nil {
			a.logger.Debug("emitted instruction", "mnemonic", mnemonic, "section", a.currentSection, "offset", start, "size", a.locationCounter-start)
		}
	}()

	switch d.Family {
	case isa.NoOperand:
		a.locationCounter += 1
		return []string{formatBytes([]byte{d.Opcode})}, nil

	case isa.TwoRegister:
		regD, _ := classify.RegisterNumber(operands[0])
		regS, _ := classify.RegisterNumber(operands[1])
		a.locationCounter += 2
		return []string{formatBytes([]byte{d.Opcode, byte(regD<<4 | regS)})}, nil

	case isa.OneRegister:
		reg, _ := classify.RegisterNumber(operands[0])
		low := isa.OneRegisterLowNibble(d.Mnemonic)
		a.locationCounter += 2
		return []string{formatBytes([]byte{d.Opcode, byte(reg)<<4 | low})}, nil

	case isa.Stack:
		reg, _ := classify.RegisterNumber(operands[0])
		a.locationCounter += 3
		if d.Mnemonic == "push" {
			return []string{formatBytes([]byte{0xB0, byte(0x60 | reg), 0x22})}, nil
		}
		return []string{formatBytes([]byte{0xA0, byte(reg<<4 | 0x6), 0x32})}, nil

	case isa.Branch:
		op, _, err := classify.ClassifyBranch(line.Tokens, 1)
		if err != nil {
			return nil, fatal(line.Number, err)
		}
		return a.emitAddressed(line.Number, d, isa.Branch, 0xF, start, op)

	case isa.MemAccess:
		reg, _ := classify.RegisterNumber(operands[0])
		op, _, err := classify.ClassifyLoadStore(line.Tokens, 2)
		if err != nil {
			return nil, fatal(line.Number, err)
		}
		return a.emitAddressed(line.Number, d, isa.MemAccess, byte(reg), start, op)

	default:
		return nil, fatal(line.Number, fmt.Errorf("%w: %q", ErrUnknownDirective, mnemonic))
	}
}

// emitAddressed encodes the shared branch/load-store layout: opcode,
// (firstNibble<<4)|secondNibble, mode byte, and an optional 16-bit
// payload — resolving a symbol operand against the symbol table and
// appending a relocation when required.
func (a *Assembler) emitAddressed(lineNo int, d isa.Descriptor, family isa.Family, firstNibble byte, start int, op classify.Operand) ([]string, error) {
	secondNibble, err := isa.SecondNibble(family, op)
	if err != nil {
		return nil, fatal(lineNo, err)
	}
	modeByte, err := isa.ModeByte(family, op)
	if err != nil {
		return nil, fatal(lineNo, err)
	}

	size := op.Kind.Size()
	a.locationCounter += size

	bs := []byte{d.Opcode, firstNibble<<4 | secondNibble, modeByte}
	if size == 3 {
		return []string{formatBytes(bs)}, nil
	}

	payload, err := a.resolveOperandPayload(lineNo, family, start, op)
	if err != nil {
		return nil, err
	}
	hi, lo := word16(uint64(payload))[0], word16(uint64(payload))[1]
	bs = append(bs, hi, lo)
	return []string{formatBytes(bs)}, nil
}

// resolveOperandPayload returns the 16-bit value to encode for op,
// appending a relocation to the table when op references a symbol
// whose section is not ABS.
func (a *Assembler) resolveOperandPayload(lineNo int, family isa.Family, instructionStart int, op classify.Operand) (int64, error) {
	switch op.Kind {
	case classify.ImmLit, classify.MemLit, classify.RegIndLit:
		return op.Literal, nil

	case classify.ImmSym, classify.MemSym, classify.PCRelSym, classify.RegIndSym:
		sym, ok := a.symbols.Lookup(op.Symbol)
		if !ok {
			return 0, fatal(lineNo, fmt.Errorf("%w: %q", ErrUndefinedSymbol, op.Symbol))
		}

		value := int64(0)
		switch sym.Section {
		case sectionUND:
			value = 0
		case sectionABS:
			value = int64(sym.Offset)
		default:
			value = int64(sym.Offset)
		}

		if sym.Section != sectionABS {
			relType := reloc.R_HYPO_16
			if op.Kind == classify.PCRelSym {
				relType = reloc.R_HYPO_PC16
			}
			a.relocations.Add(reloc.Record{
				Offset:       instructionStart,
				Type:         relType,
				SymbolNumber: sym.Index,
				Section:      a.currentSection,
			})
		}
		return value, nil

	default:
		return 0, nil
	}
}
