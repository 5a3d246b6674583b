package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manu343726/hasm/internal/classify"
)

func TestLookupKnownMnemonic(t *testing.T) {
	d, err := Lookup("JMP")
	require.NoError(t, err)
	assert.Equal(t, Branch, d.Family)
	assert.Equal(t, byte(0x50), d.Opcode)
}

func TestLookupUnknownMnemonic(t *testing.T) {
	_, err := Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownMnemonic)
}

func TestModeByteImmediateLiteralBranch(t *testing.T) {
	mode, err := ModeByte(Branch, classify.Operand{Kind: classify.ImmLit})
	require.NoError(t, err)
	assert.Equal(t, byte(0x00), mode)

	nibble, err := SecondNibble(Branch, classify.Operand{Kind: classify.ImmLit})
	require.NoError(t, err)
	assert.Equal(t, byte(0x00), nibble)
}

func TestModeBytePCRelativeBranch(t *testing.T) {
	mode, err := ModeByte(Branch, classify.Operand{Kind: classify.PCRelSym})
	require.NoError(t, err)
	assert.Equal(t, byte(0x05), mode)

	nibble, err := SecondNibble(Branch, classify.Operand{Kind: classify.PCRelSym})
	require.NoError(t, err)
	assert.Equal(t, byte(0x07), nibble)
}

func TestModeByteRegisterDirectUsesOperandRegister(t *testing.T) {
	mode, err := ModeByte(Branch, classify.Operand{Kind: classify.RegDir, Register: 3})
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), mode)

	nibble, err := SecondNibble(Branch, classify.Operand{Kind: classify.RegDir, Register: 3})
	require.NoError(t, err)
	assert.Equal(t, byte(0x03), nibble)
}

func TestModeByteLoadStorePCRelative(t *testing.T) {
	mode, err := ModeByte(MemAccess, classify.Operand{Kind: classify.PCRelSym})
	require.NoError(t, err)
	assert.Equal(t, byte(0x03), mode)

	nibble, err := SecondNibble(MemAccess, classify.Operand{Kind: classify.PCRelSym})
	require.NoError(t, err)
	assert.Equal(t, byte(0x07), nibble)
}

func TestOneRegisterLowNibble(t *testing.T) {
	assert.Equal(t, byte(0xF), OneRegisterLowNibble("int"))
	assert.Equal(t, byte(0x0), OneRegisterLowNibble("not"))
}

func TestAllIsSortedAndCoversEveryMnemonic(t *testing.T) {
	all := All()
	require.Len(t, all, len(mnemonics))
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Mnemonic, all[i].Mnemonic)
	}
}

func TestFamilyStringIsHumanReadable(t *testing.T) {
	assert.Equal(t, "branch", Branch.String())
	assert.Equal(t, "mem-access", MemAccess.String())
}
