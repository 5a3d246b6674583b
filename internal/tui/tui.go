// Package tui is a read-only terminal browser over a finished
// assembly: the symbol table, the per-section relocation tables, and
// the emitted byte stream. It never re-parses the report file and
// never mutates the assembler state it is given — there is nothing
// here that executes or loads the encoded program.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Manu343726/hasm/internal/reloc"
	"github.com/Manu343726/hasm/internal/symtab"
	"github.com/Manu343726/hasm/pkg/utils"
)

// Browser is the finished tview application, built but not yet run.
type Browser struct {
	app *tview.Application
}

// New builds a Browser over a finished assembly's tables. Constructing
// a Browser performs no mutation of symbols/relocations: it only
// reads them to populate widgets.
func New(symbols *symtab.Table, relocations *reloc.Table, bytesOut []string) *Browser {
	pages := tview.NewPages()

	pages.AddPage("symbols", symbolTable(symbols), true, true)
	pages.AddPage("relocations", relocationTable(relocations), true, false)
	pages.AddPage("bytes", byteView(bytesOut), true, false)

	order := []string{"symbols", "relocations", "bytes"}
	current := 0

	app := tview.NewApplication().SetRoot(pages, true)
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyTab:
			current = (current + 1) % len(order)
			pages.SwitchToPage(order[current])
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	return &Browser{app: app}
}

// Run blocks until the user quits the browser.
func (b *Browser) Run() error {
	return b.app.Run()
}

func symbolTable(symbols *symtab.Table) *tview.Table {
	t := tview.NewTable().SetBorders(false).SetFixed(1, 0)
	headers := []string{"LABEL", "SECTION", "OFFSET", "OFFSET (HEX)", "SCOPE", "NUMBER"}
	for col, h := range headers {
		t.SetCell(0, col, tview.NewTableCell(h).SetSelectable(false).SetTextColor(tcell.ColorYellow))
	}
	for row, sym := range symbols.InOrder() {
		t.SetCell(row+1, 0, tview.NewTableCell(sym.Label))
		t.SetCell(row+1, 1, tview.NewTableCell(sym.Section))
		t.SetCell(row+1, 2, tview.NewTableCell(fmt.Sprint(sym.Offset)))
		t.SetCell(row+1, 3, tview.NewTableCell(utils.FormatUintHex(uint64(sym.Offset), 4)))
		t.SetCell(row+1, 4, tview.NewTableCell(sym.Scope.String()))
		t.SetCell(row+1, 5, tview.NewTableCell(fmt.Sprint(sym.Index)))
	}
	return t
}

func relocationTable(relocations *reloc.Table) *tview.Table {
	t := tview.NewTable().SetBorders(false).SetFixed(1, 0)
	headers := []string{"SECTION", "OFFSET", "TYPE", "SYMBOL"}
	for col, h := range headers {
		t.SetCell(0, col, tview.NewTableCell(h).SetSelectable(false).SetTextColor(tcell.ColorYellow))
	}
	row := 1
	for _, group := range relocations.BySection() {
		for _, rec := range group.Records {
			t.SetCell(row, 0, tview.NewTableCell(rec.Section))
			t.SetCell(row, 1, tview.NewTableCell(fmt.Sprint(rec.Offset)))
			t.SetCell(row, 2, tview.NewTableCell(rec.Type.String()))
			t.SetCell(row, 3, tview.NewTableCell(fmt.Sprint(rec.SymbolNumber)))
			row++
		}
	}
	return t
}

func byteView(bytesOut []string) *tview.TextView {
	v := tview.NewTextView().SetDynamicColors(false)
	for _, line := range bytesOut {
		fmt.Fprintln(v, line)
	}
	return v
}
