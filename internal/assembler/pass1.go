package assembler

import (
	"strings"

	"github.com/Manu343726/hasm/internal/symtab"
	"github.com/Manu343726/hasm/internal/token"
)

// runPass1 walks every line once, sizing instructions/directives and
// populating the symbol table. It stops at the first fatal error or
// at a .end directive.
func (a *Assembler) runPass1() error {
	for _, line := range a.lines {
		if a.endReached {
			return nil
		}
		if err := a.pass1Line(line); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembler) pass1Line(line token.Line) error {
	tokens := line.Tokens
	if len(tokens) == 0 {
		return nil
	}

	if strings.HasSuffix(tokens[0], ":") {
		label := strings.TrimSuffix(tokens[0], ":")
		if _, err := a.symbols.Insert(label, a.currentSection, a.locationCounter, symtab.Local); err != nil {
			return fatal(line.Number, err)
		}
		tokens = tokens[1:]
		if len(tokens) == 0 {
			return nil
		}
		line = token.Line{Number: line.Number, Tokens: tokens}
	}

	if strings.HasPrefix(line.Tokens[0], ".") {
		size, err := a.pass1Directive(line)
		if err != nil {
			return err
		}
		a.locationCounter += size
		return nil
	}

	size, err := a.instructionSize(line)
	if err != nil {
		return err
	}
	a.locationCounter += size
	return nil
}
