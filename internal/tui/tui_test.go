package tui

import (
	"testing"

	"github.com/Manu343726/hasm/internal/reloc"
	"github.com/Manu343726/hasm/internal/symtab"
)

func TestNewDoesNotMutateTables(t *testing.T) {
	var symbols symtab.Table
	if _, err := symbols.Insert("text", "text", 0, symtab.Local); err != nil {
		t.Fatal(err)
	}
	var relocations reloc.Table
	relocations.Add(reloc.Record{Section: "text"})

	beforeSymbols, beforeRelocs := symbols.Len(), relocations.Len()

	_ = New(&symbols, &relocations, []string{"00"})

	if symbols.Len() != beforeSymbols {
		t.Errorf("symbol table length changed: %d -> %d", beforeSymbols, symbols.Len())
	}
	if relocations.Len() != beforeRelocs {
		t.Errorf("relocation table length changed: %d -> %d", beforeRelocs, relocations.Len())
	}
}
