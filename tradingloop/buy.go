package tradingloop

import (
	"context"
	"fmt"
	"time"

	"bingxgrid/ledger"
	"bingxgrid/store"
)

// buy places a market buy for symbol at the current lot size, honouring the
// three-state USDT latch and fee-reserve mode (SPEC_FULL.md §4.6).
func (e *Engine) buy(ctx context.Context, symbol string, price float64) (string, error) {
	lot := e.ledger.GetLot(symbol)
	if lot == 0 {
		return "", fmt.Errorf("lot not yet set")
	}

	report, ok := e.acct.CheckUSDTBalance(lot)
	if !ok {
		return report, nil
	}

	stepSize := e.ledger.GetStepSize(symbol)
	executeQty := roundToStep(lot/price, stepSize)
	if executeQty <= 0 {
		return "", fmt.Errorf("computed quantity rounds to zero")
	}

	if e.cfg.FeeReserveMode {
		baseBalance := e.acct.GetBalance(symbol)
		if baseBalance < executeQty*ledger.FeeReserve {
			executeQty = roundDownToStep(executeQty*(1+ledger.FeeReserve), stepSize)
		}
	}

	result, code, status := e.client.PlaceOrder(ctx, symbol, "BUY", executeQty)
	if status != "OK" {
		if code == 100202 {
			e.acct.SetUSDTBlock(store.USDTBlocked)
		}
		return "", fmt.Errorf("%s", status)
	}

	order := ledger.Order{
		Price:       result.Price,
		ExecutedQty: result.ExecutedQty,
		Cost:        result.CummulativeQuoteQty,
		CostWithFee: result.CummulativeQuoteQty * (1 + ledger.TakerMakerFee),
		OpenTime:    time.UnixMilli(result.TransactTime),
	}

	id, err := e.mirror.AppendOrder(symbol, order)
	if err != nil {
		return "", fmt.Errorf("mirror append: %w", err)
	}
	order.ID = id
	e.ledger.UpdateOrder(symbol, order)

	return fmt.Sprintf("bought %.8f %s @ %.8f", order.ExecutedQty, symbol, order.Price), nil
}
