package assembler

import (
	"strings"

	"github.com/Manu343726/hasm/internal/token"
)

// runPass2 re-walks every line, emitting bytes into the output
// stream and relocations into the relocation table. location_counter
// must end each line at exactly the value pass 1 computed.
func (a *Assembler) runPass2() ([]string, error) {
	var out []string
	for _, line := range a.lines {
		if a.endReached {
			return out, nil
		}
		bytesOut, err := a.pass2Line(line)
		if err != nil {
			return nil, err
		}
		out = append(out, bytesOut...)
	}
	return out, nil
}

func (a *Assembler) pass2Line(line token.Line) ([]string, error) {
	tokens := line.Tokens
	if len(tokens) == 0 {
		return nil, nil
	}

	if strings.HasSuffix(tokens[0], ":") {
		tokens = tokens[1:]
		if len(tokens) == 0 {
			return nil, nil
		}
		line = token.Line{Number: line.Number, Tokens: tokens}
	}

	if strings.HasPrefix(line.Tokens[0], ".") {
		return a.pass2Directive(line)
	}

	return a.emitInstruction(line)
}
