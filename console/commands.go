package console

import (
	"context"
	"fmt"

	"bingxgrid/ledger"
)

func (d *Dispatcher) track(symbol string) string {
	d.ledger.SetState(symbol, ledger.StateTrack)
	if err := d.mirror.UpdateState(symbol, string(ledger.StateTrack)); err != nil {
		return fmt.Sprintf("%s: state set to track, mirror failed: %v", symbol, err)
	}
	if !d.tasks.Running(symbol) && d.bootstrap != nil {
		d.bootstrap(symbol)
	}
	return fmt.Sprintf("%s: tracking", symbol)
}

func (d *Dispatcher) pause(symbol string) string {
	d.ledger.SetState(symbol, ledger.StatePause)
	if err := d.mirror.UpdateState(symbol, string(ledger.StatePause)); err != nil {
		return fmt.Sprintf("%s: state set to pause, mirror failed: %v", symbol, err)
	}
	return fmt.Sprintf("%s: paused", symbol)
}

func (d *Dispatcher) stop(symbol string) string {
	d.ledger.SetState(symbol, ledger.StateStop)
	if err := d.mirror.UpdateState(symbol, string(ledger.StateStop)); err != nil {
		return fmt.Sprintf("%s: state set to stop, mirror failed: %v", symbol, err)
	}
	d.tasks.Stop(symbol)
	return fmt.Sprintf("%s: stopped", symbol)
}

func (d *Dispatcher) add(ctx context.Context, symbol string) string {
	stepSize, status := d.client.GetSymbolInfo(ctx, symbol)
	if status != "OK" {
		return fmt.Sprintf("%s: failed to fetch symbol info: %s", symbol, status)
	}
	d.ledger.AddSymbol(symbol, stepSize)
	d.ledger.SetLotGrid(symbol, 0, ledger.GridStep)
	if err := d.mirror.UpsertSymbol(symbol, stepSize, 0, 0, ledger.GridStep, string(ledger.StateStop)); err != nil {
		return fmt.Sprintf("%s: added in memory, mirror failed: %v", symbol, err)
	}
	return fmt.Sprintf("%s: added, step_size=%v", symbol, stepSize)
}

func (d *Dispatcher) del(symbol string) string {
	if d.ledger.GetState(symbol) != ledger.StateStop {
		return fmt.Sprintf("%s: must be stopped before delete", symbol)
	}
	if !d.ledger.IsEmpty(symbol) {
		return fmt.Sprintf("%s: has open orders, cannot delete", symbol)
	}
	if d.ledger.GetProfit(symbol) != 0 {
		return fmt.Sprintf("%s: profit must be settled before delete", symbol)
	}
	if err := d.mirror.DeleteSymbol(symbol); err != nil {
		return fmt.Sprintf("%s: mirror delete failed: %v", symbol, err)
	}
	d.ledger.DeleteSymbol(symbol)
	return fmt.Sprintf("%s: deleted", symbol)
}

func (d *Dispatcher) manualBuy(ctx context.Context, symbol string) string {
	report, err := d.loop.ManualBuy(ctx, symbol)
	if err != nil {
		return fmt.Sprintf("%s: buy failed: %v", symbol, err)
	}
	return fmt.Sprintf("%s: %s", symbol, report)
}

func (d *Dispatcher) manualFullSell(ctx context.Context, symbol string) string {
	report, err := d.loop.ManualFullSell(ctx, symbol)
	if err != nil {
		return fmt.Sprintf("%s: full sell failed: %v", symbol, err)
	}
	if report == "" {
		return fmt.Sprintf("%s: no open orders", symbol)
	}
	return fmt.Sprintf("%s: %s", symbol, report)
}

func (d *Dispatcher) manualPartialSell(ctx context.Context, symbol string) string {
	report, err := d.loop.ManualPartialSell(ctx, symbol)
	if err != nil {
		return fmt.Sprintf("%s: partial sell failed: %v", symbol, err)
	}
	return fmt.Sprintf("%s: %s", symbol, report)
}

func (d *Dispatcher) profit(symbol string) string {
	return fmt.Sprintf("%s: profit=%.8f", symbol, d.ledger.GetProfit(symbol))
}

func (d *Dispatcher) deleteAllOrders(symbol string) string {
	profit := d.ledger.GetProfit(symbol)
	if err := d.mirror.RemoveOrders(symbol, nil, profit); err != nil {
		return fmt.Sprintf("%s: mirror clear failed: %v", symbol, err)
	}
	d.ledger.DelOrders(symbol, nil)
	return fmt.Sprintf("%s: all orders cleared (no sell)", symbol)
}
