package search

import "math"

// lmrMaxD and lmrMaxM size the precomputed LMR table.
const (
	lmrMaxD = 64
	lmrMaxM = 64
)

// lmrTable holds LMR_RED[depth][moveNumber], built once at init and read
// without synchronization by every worker thereafter — the table never
// changes after buildLMRTable runs.
var lmrTable [lmrMaxD + 1][lmrMaxM + 1]int

func init() {
	buildLMRTable(0.33, 3.6)
}

// buildLMRTable fills lmrTable with r = floor(base + log(d)*log(2+m)/scale),
// clamped to [0, d-1] and zero for tiny depth/move.
func buildLMRTable(base, scale float64) {
	for d := 0; d <= lmrMaxD; d++ {
		for m := 0; m <= lmrMaxM; m++ {
			var rd float64
			if d > 1 && m > 1 {
				rd = base + math.Log(float64(d))*math.Log(2+float64(m))/scale
			}
			r := int(rd)
			if r < 0 {
				r = 0
			}
			if d > 0 && r > d-1 {
				r = d - 1
			}
			lmrTable[d][m] = r
		}
	}
}

// lmrReduction looks up the table, clamping depth/moveNumber into range.
func lmrReduction(depth, moveNumber int) int {
	if depth > lmrMaxD {
		depth = lmrMaxD
	}
	if moveNumber > lmrMaxM {
		moveNumber = lmrMaxM
	}
	return lmrTable[depth][moveNumber]
}
