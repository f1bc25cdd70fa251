package tradingloop

import (
	"context"
	"fmt"

	"bingxgrid/ledger"
)

// fullSell sells the symbol's entire open ledger, used when profit_to_target
// rises above zero (legacy policy retained per original_source — Open
// Question 3 resolution, DESIGN.md).
func (e *Engine) fullSell(ctx context.Context, symbol string, price float64) (string, error) {
	qty := e.ledger.GetSummaryExecutedQty(symbol)
	if qty <= 0 {
		return "", nil
	}
	totalCostWithFee := e.ledger.GetTotalCostWithFee(symbol)
	stepSize := e.ledger.GetStepSize(symbol)
	sellQty := roundDownToStep(qty, stepSize)
	if sellQty <= 0 {
		return "", nil
	}

	result, _, status := e.client.PlaceOrder(ctx, symbol, "SELL", sellQty)
	if status != "OK" {
		return "", fmt.Errorf("%s", status)
	}

	realProfit := result.CummulativeQuoteQty - totalCostWithFee
	newProfit := e.ledger.GetProfit(symbol) + realProfit

	if err := e.mirror.RemoveOrders(symbol, nil, newProfit); err != nil {
		return "", fmt.Errorf("mirror remove: %w", err)
	}
	e.ledger.UpdateProfit(symbol, realProfit)
	e.ledger.DelOrders(symbol, nil)
	e.ledger.SetPauseAfterSell(symbol, true)

	return fmt.Sprintf("sold %.8f %s @ %.8f, profit %.8f", sellQty, symbol, price, realProfit), nil
}

// partialSell scans the symbol's orders newest-to-oldest, accumulating a
// running (profit, cost_with_fee) pair and only keeping an order in the
// candidate sell if the running profit clears PARTLY_TARGET_PROFIT;
// rejected orders are rolled back but scanning continues over earlier
// orders (Open Question 1 resolution, confirmed against original_source).
func (e *Engine) partialSell(ctx context.Context, symbol string, price float64) (report string, sold bool, err error) {
	orders := e.ledger.GetOrders(symbol)
	if len(orders) == 0 {
		return "", false, nil
	}

	var partlyProfit, partlyCostWithFee, qtySum float64
	ids := make([]int64, 0, len(orders))

	for i := len(orders) - 1; i >= 0; i-- {
		o := orders[i]
		candProfit := partlyProfit + price*o.ExecutedQty
		candCost := partlyCostWithFee + o.CostWithFee
		if candProfit >= candCost*(1+ledger.PartlyTargetProfit) {
			partlyProfit = candProfit
			partlyCostWithFee = candCost
			qtySum += o.ExecutedQty
			ids = append(ids, o.ID)
		}
	}

	if qtySum <= 0 {
		return "", false, nil
	}

	stepSize := e.ledger.GetStepSize(symbol)
	sellQty := roundDownToStep(qtySum, stepSize)
	if sellQty <= 0 {
		return "", false, nil
	}

	result, _, status := e.client.PlaceOrder(ctx, symbol, "SELL", sellQty)
	if status != "OK" {
		return "", false, fmt.Errorf("%s", status)
	}

	realProfit := result.CummulativeQuoteQty - partlyCostWithFee
	newProfit := e.ledger.GetProfit(symbol) + realProfit

	if err := e.mirror.RemoveOrders(symbol, ids, newProfit); err != nil {
		return "", false, fmt.Errorf("mirror remove: %w", err)
	}

	idSet := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	e.ledger.UpdateProfit(symbol, realProfit)
	e.ledger.DelOrders(symbol, idSet)
	e.ledger.SetPauseAfterSell(symbol, true)

	return fmt.Sprintf("sold %.8f %s @ %.8f, profit %.8f", sellQty, symbol, price, realProfit), true, nil
}
