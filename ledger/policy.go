package ledger

// Exchange fee and profit-target constants. These mirror the exchange's
// published taker/maker schedule and the engine's own grid policy; they are
// not user-configurable per symbol.
const (
	TakerFee      = 0.002
	MakerFee      = 0.002
	TakerMakerFee = TakerFee + MakerFee

	TargetProfit        = 0.01  // full-ledger sell threshold
	PartlyTargetProfit  = 0.006 // partial-sell-per-order threshold
	GridStep            = 0.01  // default grid spacing before indicator rescale
	FeeReserve          = 0.2   // extra base qty reserved on buy to cover sell-side fee
	AccountBalanceFloor = 2.0   // USDT floor below which trading is considered starved
)

// LotBucket maps a USDT account balance range to a base lot size in USDT.
type LotBucket struct {
	Min, Max float64
	Lot      float64
}

// MainLotMap is the piecewise USDT-balance -> base-lot table (§6).
var MainLotMap = []LotBucket{
	{0, 400, 10},
	{400, 900, 20},
	{900, 1400, 30},
	{1400, 2000, 40},
	{2000, 2600, 50},
	{2600, 3200, 60},
	{3200, 3900, 70},
	{3900, 4600, 80},
	{4600, 5300, 90},
}

// MainLotFor looks up the base lot size for the given USDT balance. Balances
// above the top bucket use the top bucket's lot.
func MainLotFor(usdtBalance float64) float64 {
	for _, b := range MainLotMap {
		if usdtBalance >= b.Min && usdtBalance < b.Max {
			return b.Lot
		}
	}
	if len(MainLotMap) > 0 {
		return MainLotMap[len(MainLotMap)-1].Lot
	}
	return 0
}

// RSIBand maps an RSI(14) reading to a lot/grid multiplier pair.
type RSIBand struct {
	UpperBound      float64 // band applies when rsi <= UpperBound (the top band uses 1e18)
	LotMultiplier   float64
	GridMultiplier  float64
}

// RSILotGridTable is the piecewise RSI-band -> (lot, grid) multiplier table
// (§4.5). The lot multiplier decreases monotonically as RSI rises; the grid
// multiplier decreases up to RSI 70 and returns to 1.0 above it.
var RSILotGridTable = []RSIBand{
	{20, 3.0, 3.8},
	{30, 2.0, 2.6},
	{40, 1.5, 1.8},
	{50, 1.0, 1.0},
	{60, 0.6, 0.6},
	{70, 0.3, 0.3},
	{1e18, 0.15, 1.0},
}

// LookupRSIBand returns the (lot, grid) multiplier pair for the given RSI value.
func LookupRSIBand(rsi float64) (lotMult, gridMult float64) {
	for _, b := range RSILotGridTable {
		if rsi <= b.UpperBound {
			return b.LotMultiplier, b.GridMultiplier
		}
	}
	last := RSILotGridTable[len(RSILotGridTable)-1]
	return last.LotMultiplier, last.GridMultiplier
}
