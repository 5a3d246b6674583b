package assembler

import (
	"fmt"

	"github.com/Manu343726/hasm/pkg/utils"
)

// formatBytes renders bs as the hex emission convention the report
// writer expects: uppercase, big-endian, one space between each pair
// of nibbles (each byte).
func formatBytes(bs []byte) string {
	hex := utils.Map(bs, func(b byte) string { return fmt.Sprintf("%02X", b) })
	return utils.FormatSlice(hex, " ")
}

// word16 splits a 16-bit value into its big-endian byte pair.
func word16(v uint64) [2]byte {
	return [2]byte{byte(v >> 8), byte(v)}
}

// zeroBytes renders n zero bytes in the same hex convention, the
// payload .skip emits in pass 2.
func zeroBytes(n int) string {
	bs := make([]byte, n)
	return formatBytes(bs)
}
