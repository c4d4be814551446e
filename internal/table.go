/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import "strings"

// WriteTable writes rows under headers with every column padded to its
// widest cell, followed by a blank line.
func WriteTable(sb *strings.Builder, headers []string, rows [][]string) {
	// Compute column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	for _, r := range rows {
		for i, c := range r {
			if l := len([]rune(c)); i < len(widths) && l > widths[i] {
				widths[i] = l
			}
		}
	}

	writeRow := func(cells []string) {
		var line strings.Builder
		for i, c := range cells {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				line.WriteString("  ")
			}
			line.WriteString(c)
			line.WriteString(strings.Repeat(" ", widths[i]-len([]rune(c))))
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteString("\n")
	}
	writeRow(headers)
	for _, r := range rows {
		writeRow(r)
	}
	sb.WriteString("\n")
}
