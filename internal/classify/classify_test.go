package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBranchShapes(t *testing.T) {
	cases := []struct {
		tokens []string
		kind   Kind
		size   int
	}{
		{[]string{"0x12"}, ImmLit, 5},
		{[]string{"foo"}, ImmSym, 5},
		{[]string{"%foo"}, PCRelSym, 5},
		{[]string{"*0x12"}, MemLit, 5},
		{[]string{"*foo"}, MemSym, 5},
		{[]string{"*r3"}, RegDir, 3},
		{[]string{"*[r3]"}, RegInd, 3},
		{[]string{"*[r3+0x12]"}, RegIndLit, 5},
		{[]string{"*[r3+foo]"}, RegIndSym, 5},
	}
	for _, c := range cases {
		op, n, err := ClassifyBranch(c.tokens, 0)
		require.NoError(t, err, c.tokens)
		assert.Equal(t, c.kind, op.Kind, c.tokens)
		assert.Equal(t, c.size, op.Kind.Size(), c.tokens)
		assert.Equal(t, len(c.tokens), n, c.tokens)
	}
}

func TestClassifyBranchRegisterIndirectSplitAcrossTokens(t *testing.T) {
	op, n, err := ClassifyBranch([]string{"*[r3", "+", "0x12]"}, 0)
	require.NoError(t, err)
	assert.Equal(t, RegIndLit, op.Kind)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, op.Register)
	assert.Equal(t, int64(0x12), op.Literal)
}

func TestClassifyLoadStoreShapes(t *testing.T) {
	cases := []struct {
		tokens []string
		kind   Kind
		size   int
	}{
		{[]string{"$0x12"}, ImmLit, 5},
		{[]string{"$foo"}, ImmSym, 5},
		{[]string{"0x12"}, MemLit, 5},
		{[]string{"foo"}, MemSym, 5},
		{[]string{"%foo"}, PCRelSym, 5},
		{[]string{"r3"}, RegDir, 3},
		{[]string{"[r3]"}, RegInd, 3},
		{[]string{"[r3+0x12]"}, RegIndLit, 5},
		{[]string{"[r3+foo]"}, RegIndSym, 5},
	}
	for _, c := range cases {
		op, n, err := ClassifyLoadStore(c.tokens, 0)
		require.NoError(t, err, c.tokens)
		assert.Equal(t, c.kind, op.Kind, c.tokens)
		assert.Equal(t, c.size, op.Kind.Size(), c.tokens)
		assert.Equal(t, len(c.tokens), n, c.tokens)
	}
}

func TestClassifyLoadStoreBareRegisterIsRegisterDirectNotMemorySymbol(t *testing.T) {
	op, _, err := ClassifyLoadStore([]string{"r3"}, 0)
	require.NoError(t, err)
	assert.Equal(t, RegDir, op.Kind)
	assert.Equal(t, 3, op.Register)
}

func TestClassifyBranchBareStarRegisterIsRegisterDirectNotMemorySymbol(t *testing.T) {
	op, _, err := ClassifyBranch([]string{"*r3"}, 0)
	require.NoError(t, err)
	assert.Equal(t, RegDir, op.Kind)
}

func TestClassifyLoadStoreUnterminatedBracket(t *testing.T) {
	_, _, err := ClassifyLoadStore([]string{"[r3+0x12"}, 0)
	assert.ErrorIs(t, err, ErrUnterminatedBracket)
}

func TestClassifyWordOperandLiteralAndSymbol(t *testing.T) {
	lit, err := ClassifyWordOperand("0x10")
	require.NoError(t, err)
	assert.True(t, lit.IsLiteral)
	assert.Equal(t, int64(0x10), lit.Literal)

	sym, err := ClassifyWordOperand("foo")
	require.NoError(t, err)
	assert.False(t, sym.IsLiteral)
	assert.Equal(t, "foo", sym.Symbol)
}

func TestParseLiteralDecimalAndHex(t *testing.T) {
	v, err := ParseLiteral("18")
	require.NoError(t, err)
	assert.Equal(t, int64(18), v)

	v, err = ParseLiteral("0x12")
	require.NoError(t, err)
	assert.Equal(t, int64(18), v)
}

func TestIsArithRegisterRange(t *testing.T) {
	assert.True(t, IsArithRegister("r0"))
	assert.True(t, IsArithRegister("r5"))
	assert.False(t, IsArithRegister("r6"))
	assert.False(t, IsArithRegister("r7"))
}
