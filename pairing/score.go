/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"math"
	"strconv"
)

const (
	WinValue  = 1.0
	DrawValue = 0.5
)

// Points returns the tournament score of p rounded to one decimal.
func Points(p Player) float64 {
	pts := float64(p.Wins)*WinValue + float64(p.Draws)*DrawValue
	return math.Round(pts*10) / 10
}

// ScoreToString renders a score the way crosstables do, e.g. "2½" or "3".
func ScoreToString(score float64) string {
	whole := math.Floor(score)
	frac := score - whole
	ret := strconv.FormatFloat(whole, 'f', 0, 64)
	if frac >= 0.25 && frac < 0.75 {
		if whole == 0 {
			return "½"
		}
		ret += "½"
	}

	return ret
}
