package lfo

import "math"

// TableBits is the log2 size of the decay table.
const (
	TableBits = 8
	TableSize = 1 << TableBits
)

// pow2InvTable[i] = floor(2^16 * 2^(-i/256)). Entry 0 is exactly 1.0 and is
// never read by Step, which only applies a decay once the index is non-zero.
var pow2InvTable = func() [TableSize]uint32 {
	var tbl [TableSize]uint32
	for i := range tbl {
		tbl[i] = uint32(math.Floor(65536 * math.Exp2(-float64(i)/TableSize)))
	}

	return tbl
}()

// Decay returns the s0.16 decay factor for table index i.
func Decay(i int) uint32 {
	return pow2InvTable[i&(TableSize-1)]
}
