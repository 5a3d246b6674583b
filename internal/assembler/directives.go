package assembler

import (
	"fmt"

	"github.com/Manu343726/hasm/internal/classify"
	"github.com/Manu343726/hasm/internal/reloc"
	"github.com/Manu343726/hasm/internal/symtab"
	"github.com/Manu343726/hasm/internal/token"
)

// wordSize reports the location_counter delta a .word directive's
// operands take, identically for both passes: 2 bytes if a single
// literal, 2 bytes per identifier operand otherwise.
func wordSize(lineNo int, operands []string) (int, error) {
	if len(operands) == 0 {
		return 0, fatal(lineNo, ErrMissingOperand)
	}
	first, err := classify.ClassifyWordOperand(operands[0])
	if err != nil {
		return 0, fatal(lineNo, err)
	}
	if first.IsLiteral {
		if len(operands) != 1 {
			return 0, fatal(lineNo, ErrWordLiteralExtra)
		}
		return 2, nil
	}
	for _, op := range operands[1:] {
		if _, err := classify.ClassifyWordOperand(op); err != nil {
			return 0, fatal(lineNo, err)
		}
	}
	return 2 * len(operands), nil
}

// pass1Directive handles a directive line's effect on the symbol
// table and location_counter, returning the size consumed.
func (a *Assembler) pass1Directive(line token.Line) (int, error) {
	name := line.Tokens[0]
	operands := line.Tokens[1:]

	switch name {
	case ".global":
		if len(operands) == 0 {
			return 0, fatal(line.Number, ErrMissingOperand)
		}
		for _, sym := range operands {
			if !classify.IsValidIdentifier(sym) {
				return 0, fatal(line.Number, fmt.Errorf("%w: %q", ErrInvalidIdentifier, sym))
			}
		}
		return 0, nil

	case ".extern":
		if len(operands) == 0 {
			return 0, fatal(line.Number, ErrMissingOperand)
		}
		for _, sym := range operands {
			if !classify.IsValidIdentifier(sym) {
				return 0, fatal(line.Number, fmt.Errorf("%w: %q", ErrInvalidIdentifier, sym))
			}
			if _, err := a.symbols.Insert(sym, sectionUND, 0, symtab.Global); err != nil {
				return 0, fatal(line.Number, err)
			}
		}
		return 0, nil

	case ".section":
		if len(operands) != 1 {
			return 0, fatal(line.Number, ErrSectionArgCount)
		}
		name := stripLeadingDot(operands[0])
		a.currentSection = name
		a.locationCounter = 0
		if _, err := a.symbols.Insert(name, name, 0, symtab.Local); err != nil {
			return 0, fatal(line.Number, err)
		}
		return 0, nil

	case ".word":
		return wordSize(line.Number, operands)

	case ".skip":
		if len(operands) != 1 {
			return 0, fatal(line.Number, ErrMissingOperand)
		}
		n, err := classify.ParseLiteral(operands[0])
		if err != nil {
			return 0, fatal(line.Number, err)
		}
		return int(n), nil

	case ".equ":
		if len(operands) != 2 {
			return 0, fatal(line.Number, ErrEquArgCount)
		}
		if !classify.IsValidIdentifier(operands[0]) {
			return 0, fatal(line.Number, fmt.Errorf("%w: %q", ErrInvalidIdentifier, operands[0]))
		}
		v, err := classify.ParseLiteral(operands[1])
		if err != nil {
			return 0, fatal(line.Number, err)
		}
		if _, err := a.symbols.Insert(operands[0], sectionABS, int(v), symtab.Local); err != nil {
			return 0, fatal(line.Number, err)
		}
		return 0, nil

	case ".end":
		a.endReached = true
		return 0, nil

	default:
		return 0, fatal(line.Number, fmt.Errorf("%w: %q", ErrUnknownDirective, name))
	}
}

// pass2Directive mirrors pass1Directive's dispatch and size, emitting
// bytes for .word/.skip and performing .global's scope promotion.
func (a *Assembler) pass2Directive(line token.Line) ([]string, error) {
	name := line.Tokens[0]
	operands := line.Tokens[1:]

	switch name {
	case ".global":
		for _, sym := range operands {
			if err := a.symbols.PromoteScope(sym); err != nil {
				return nil, fatal(line.Number, err)
			}
		}
		return nil, nil

	case ".extern":
		return nil, nil

	case ".section":
		a.currentSection = stripLeadingDot(operands[0])
		a.locationCounter = 0
		a.logger.Debug("entered section", "section", a.currentSection, "line", line.Number)
		return nil, nil

	case ".word":
		return a.emitWord(line.Number, operands)

	case ".skip":
		n, err := classify.ParseLiteral(operands[0])
		if err != nil {
			return nil, fatal(line.Number, err)
		}
		a.locationCounter += int(n)
		return []string{zeroBytes(int(n))}, nil

	case ".equ":
		return nil, nil

	case ".end":
		a.endReached = true
		return nil, nil

	default:
		return nil, fatal(line.Number, fmt.Errorf("%w: %q", ErrUnknownDirective, name))
	}
}

// emitWord encodes a .word directive's payload, resolving each symbol
// operand and appending a relocation when its section is not ABS.
func (a *Assembler) emitWord(lineNo int, operands []string) ([]string, error) {
	first, err := classify.ClassifyWordOperand(operands[0])
	if err != nil {
		return nil, fatal(lineNo, err)
	}
	if first.IsLiteral {
		out := formatBytesOf(word16(uint64(first.Literal)))
		a.locationCounter += 2
		return []string{out}, nil
	}

	out := make([]string, 0, len(operands))
	for _, tok := range operands {
		op, err := classify.ClassifyWordOperand(tok)
		if err != nil {
			return nil, fatal(lineNo, err)
		}
		sym, ok := a.symbols.Lookup(op.Symbol)
		if !ok {
			return nil, fatal(lineNo, fmt.Errorf("%w: %q", ErrUndefinedSymbol, op.Symbol))
		}

		value := sym.Offset
		out = append(out, formatBytesOf(word16(uint64(value))))

		if sym.Section != sectionABS {
			a.relocations.Add(reloc.Record{
				Offset:       a.locationCounter,
				Type:         reloc.R_HYPO_16,
				SymbolNumber: sym.Index,
				Section:      a.currentSection,
			})
		}
		a.locationCounter += 2
	}
	return out, nil
}

func formatBytesOf(pair [2]byte) string {
	return formatBytes(pair[:])
}

func stripLeadingDot(s string) string {
	if len(s) > 0 && s[0] == '.' {
		return s[1:]
	}
	return s
}
