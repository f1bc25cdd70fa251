package indicator

// emaSeries returns the EMA(period) series aligned to closes, seeding the
// first value with a simple average over the first `period` closes exactly
// like the teacher's calculateEMA (simple-average seed + multiplier loop),
// but returning the full series instead of only the final value, since MACD
// histogram flip detection needs the last two samples.
func emaSeries(closes []float64, period int) []float64 {
	if len(closes) < period {
		return nil
	}
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += closes[i]
	}
	ema := sum / float64(period)

	out := make([]float64, 0, len(closes)-period+1)
	out = append(out, ema)

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(closes); i++ {
		ema = (closes[i]-ema)*multiplier + ema
		out = append(out, ema)
	}
	return out
}

// MACDHistogram computes MACD(12,26,9) over closes and returns the
// histogram series (macd line minus signal line, signal = EMA9 of the macd
// line). Returns nil if there isn't enough data.
func MACDHistogram(closes []float64) []float64 {
	const fast, slow, signalPeriod = 12, 26, 9

	emaFast := emaSeries(closes, fast)
	emaSlow := emaSeries(closes, slow)
	if emaFast == nil || emaSlow == nil {
		return nil
	}

	// Align: emaFast starts at index `fast-1` of closes, emaSlow at `slow-1`.
	// The macd line only exists once both are defined, i.e. from index
	// slow-1 onward.
	offset := slow - fast
	if len(emaFast) <= offset {
		return nil
	}
	macdLine := make([]float64, len(emaSlow))
	for i := range emaSlow {
		macdLine[i] = emaFast[i+offset] - emaSlow[i]
	}

	signal := emaSeries(macdLine, signalPeriod)
	if signal == nil {
		return nil
	}

	histOffset := len(macdLine) - len(signal)
	hist := make([]float64, len(signal))
	for i := range signal {
		hist[i] = macdLine[i+histOffset] - signal[i]
	}
	return hist
}
