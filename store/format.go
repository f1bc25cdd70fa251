package store

import "strconv"

func formatBalance(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
