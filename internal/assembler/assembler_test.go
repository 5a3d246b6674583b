package assembler

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manu343726/hasm/internal/reloc"
	"github.com/Manu343726/hasm/internal/token"
)

func assembleSource(t *testing.T, src string) *Result {
	t.Helper()
	lines, err := token.Scan(strings.NewReader(src))
	require.NoError(t, err)
	result, err := Assemble(lines)
	require.NoError(t, err)
	return result
}

func TestScenarioHaltAlone(t *testing.T) {
	result := assembleSource(t, ".section .text\nhalt\n")

	assert.Equal(t, []string{"00"}, result.Bytes)

	sym, ok := result.Symbols.Lookup("text")
	require.True(t, ok)
	assert.Equal(t, 0, sym.Offset)
}

func TestScenarioEquAndAbsWord(t *testing.T) {
	result := assembleSource(t, ".equ K, 0x10\n.section .data\n.word K\n")

	assert.Equal(t, []string{"00 10"}, result.Bytes)
	assert.Equal(t, 0, result.Relocations.Len())

	sym, ok := result.Symbols.Lookup("data")
	require.True(t, ok)
	assert.Equal(t, "data", sym.Section)
}

func TestScenarioExternWord(t *testing.T) {
	result := assembleSource(t, ".extern x\n.section .text\n.word x\n")

	require.Equal(t, []string{"00 00"}, result.Bytes)
	require.Equal(t, 1, result.Relocations.Len())

	rec := result.Relocations.All()[0]
	assert.Equal(t, "text", rec.Section)
	assert.Equal(t, 0, rec.Offset)
	assert.Equal(t, reloc.R_HYPO_16, rec.Type)

	sym, ok := result.Symbols.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, rec.SymbolNumber, sym.Index)
}

func TestScenarioLoadImmediate(t *testing.T) {
	result := assembleSource(t, ".section .text\nldr r1, $0x1234\n")

	require.Equal(t, []string{"A0 10 00 12 34"}, result.Bytes)
	assert.Equal(t, 0, result.Relocations.Len())
}

func TestScenarioPCRelativeBranchToLocalLabel(t *testing.T) {
	result := assembleSource(t, ".section .text\nlbl:\njmp %lbl\n")

	require.Equal(t, []string{"50 F7 05 00 00"}, result.Bytes)
	require.Equal(t, 1, result.Relocations.Len())

	rec := result.Relocations.All()[0]
	assert.Equal(t, "text", rec.Section)
	// Offset is the location_counter value at the instruction's start,
	// which is 0 here since the label itself consumes no bytes.
	assert.Equal(t, 0, rec.Offset)
	assert.Equal(t, reloc.R_HYPO_PC16, rec.Type)

	sym, ok := result.Symbols.Lookup("lbl")
	require.True(t, ok)
	assert.Equal(t, rec.SymbolNumber, sym.Index)
}

func TestScenarioPushPop(t *testing.T) {
	result := assembleSource(t, ".section .text\npush r3\npop r3\n")

	require.Equal(t, []string{"B0 63 22", "A0 36 32"}, result.Bytes)
}

func TestSizeConsistencyAcrossRegisterIndirectDisplacement(t *testing.T) {
	result := assembleSource(t, ".section .text\nldr r1, [r2+0x4]\nhalt\n")
	require.Equal(t, []string{"A0 12 03 00 04", "00"}, result.Bytes)
}

func TestUndefinedSymbolIsFatal(t *testing.T) {
	lines, err := token.Scan(strings.NewReader(".section .text\njmp nosuch\n"))
	require.NoError(t, err)
	_, err = Assemble(lines)
	assert.ErrorIs(t, err, ErrUndefinedSymbol)
}

func TestStrWithImmediateDestinationIsFatal(t *testing.T) {
	lines, err := token.Scan(strings.NewReader(".section .text\nstr r1, $0x12\n"))
	require.NoError(t, err)
	_, err = Assemble(lines)
	assert.ErrorIs(t, err, ErrImmediateStore)
}

func TestSkipEmitsExactZeroBytes(t *testing.T) {
	result := assembleSource(t, ".section .text\n.skip 3\nhalt\n")
	require.Equal(t, []string{"00 00 00", "00"}, result.Bytes)
}

func TestGlobalPromotesScope(t *testing.T) {
	result := assembleSource(t, ".section .text\nentry:\n.global entry\nhalt\n")

	sym, ok := result.Symbols.Lookup("entry")
	require.True(t, ok)
	assert.Equal(t, "GLOBAL", sym.Scope.String())
}

func TestUnknownDirectiveIsFatal(t *testing.T) {
	lines, err := token.Scan(strings.NewReader(".bogus 1\n"))
	require.NoError(t, err)
	_, err = Assemble(lines)
	assert.ErrorIs(t, err, ErrUnknownDirective)
}

func TestVerboseLoggingDoesNotAffectOutput(t *testing.T) {
	src := ".section .text\nlbl:\njmp %lbl\nhalt\n"
	lines, err := token.Scan(strings.NewReader(src))
	require.NoError(t, err)

	quiet, err := Assemble(lines)
	require.NoError(t, err)

	verbose, err := AssembleWithLogger(lines, slog.New(slog.NewTextHandler(&strings.Builder{}, &slog.HandlerOptions{Level: slog.LevelDebug})))
	require.NoError(t, err)

	assert.Equal(t, quiet.Bytes, verbose.Bytes)
	assert.Equal(t, quiet.Symbols.Len(), verbose.Symbols.Len())
	assert.Equal(t, quiet.Relocations.All(), verbose.Relocations.All())
}
