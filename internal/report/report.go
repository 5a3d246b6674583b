// Package report serializes a finished assembly into the three-section
// text object file: the symbol table, the per-section relocation
// tables, and the emitted byte stream.
package report

import (
	"fmt"
	"io"

	"github.com/Manu343726/hasm/internal/reloc"
	"github.com/Manu343726/hasm/internal/symtab"
)

// column is the fixed field width every report column is right-aligned
// into.
const column = 15

// Write renders symbols, relocations and the emitted byte stream to
// w in the report's fixed three-section layout.
func Write(w io.Writer, symbols *symtab.Table, relocations *reloc.Table, bytesOut []string) error {
	rw := &reportWriter{w: w}
	if err := rw.writeSymbolTable(symbols); err != nil {
		return err
	}
	if err := rw.writeRelocationTables(relocations); err != nil {
		return err
	}
	if err := rw.writeObjectFile(bytesOut); err != nil {
		return err
	}
	return nil
}

type reportWriter struct {
	w io.Writer
}

func (rw *reportWriter) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(rw.w, format, args...)
	return err
}

func (rw *reportWriter) println(args ...any) error {
	_, err := fmt.Fprintln(rw.w, args...)
	return err
}

func (rw *reportWriter) writeSymbolTable(symbols *symtab.Table) error {
	if err := rw.println("# ------------------ SYMBOL TABLE ------------------"); err != nil {
		return err
	}
	if err := rw.printf("%*s%*s%*s%*s%*s\n", column, "LABEL", column, "SECTION", column, "OFFSET", column, "SCOPE", column, "NUMBER"); err != nil {
		return err
	}
	for _, sym := range symbols.InOrder() {
		if err := rw.printf("%*s%*s%*d%*s%*d\n", column, sym.Label, column, sym.Section, column, sym.Offset, column, sym.Scope.String(), column, sym.Index); err != nil {
			return err
		}
	}
	return nil
}

func (rw *reportWriter) writeRelocationTables(relocations *reloc.Table) error {
	for _, group := range relocations.BySection() {
		if err := rw.println(); err != nil {
			return err
		}
		if err := rw.println(); err != nil {
			return err
		}
		if err := rw.println(fmt.Sprintf("# ------------------ REL.%s ------------------", group.Section)); err != nil {
			return err
		}
		for _, rec := range group.Records {
			if err := rw.printf("%*d%*s%*d\n", column, rec.Offset, column, rec.Type.String(), column, rec.SymbolNumber); err != nil {
				return err
			}
		}
	}
	return nil
}

func (rw *reportWriter) writeObjectFile(bytesOut []string) error {
	if err := rw.println(); err != nil {
		return err
	}
	if err := rw.println(); err != nil {
		return err
	}
	if err := rw.println("# ------------------ OBJECT FILE ------------------"); err != nil {
		return err
	}
	for _, line := range bytesOut {
		if err := rw.println(line); err != nil {
			return err
		}
	}
	return nil
}
