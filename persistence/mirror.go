package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"bingxgrid/ledger"
)

// Mirror wraps a *gorm.DB with the symbol/order operations the trading loop
// and start-up restore path need.
type Mirror struct {
	db *gorm.DB
}

func NewMirror(db *gorm.DB) *Mirror {
	return &Mirror{db: db}
}

// RestoredSymbol is one symbol's full mirrored state, returned by LoadAll.
type RestoredSymbol struct {
	Name     string
	StepSize float64
	Profit   float64
	State    string
	Lot      float64
	GridSize float64
	Orders   []ledger.Order
}

// LoadAll reads every symbol row, its config row, and its open orders, for
// the start-up ledger restore (SPEC_FULL.md §6).
func (m *Mirror) LoadAll() ([]RestoredSymbol, error) {
	var symbolRows []SymbolRow
	if err := m.db.Find(&symbolRows).Error; err != nil {
		return nil, fmt.Errorf("load symbols: %w", err)
	}

	out := make([]RestoredSymbol, 0, len(symbolRows))
	for _, sr := range symbolRows {
		var cfgRow SymbolConfigRow
		m.db.Where("symbol_name = ?", sr.Name).First(&cfgRow)

		var orderRows []OrderRow
		if err := m.db.Where("symbol_id = ?", sr.ID).Order("open_time asc").Find(&orderRows).Error; err != nil {
			return nil, fmt.Errorf("load orders for %s: %w", sr.Name, err)
		}

		orders := make([]ledger.Order, len(orderRows))
		for i, or := range orderRows {
			orders[i] = ledger.Order{
				ID:          or.ID,
				Price:       or.Price,
				ExecutedQty: or.ExecutedQty,
				Cost:        or.Cost,
				CostWithFee: or.CostWithFee,
				OpenTime:    or.OpenTime,
			}
		}

		out = append(out, RestoredSymbol{
			Name:     sr.Name,
			StepSize: sr.StepSize,
			Profit:   sr.Profit,
			State:    sr.State,
			Lot:      cfgRow.Lot,
			GridSize: cfgRow.GridSize,
			Orders:   orders,
		})
	}
	return out, nil
}

// UpsertSymbol creates or updates a symbol's durable row plus its config row.
func (m *Mirror) UpsertSymbol(name string, stepSize, profit, lot, gridSize float64, state string) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		row := SymbolRow{Name: name, StepSize: stepSize, Profit: profit, State: state}
		if err := tx.Where("name = ?", name).Assign(row).FirstOrCreate(&row).Error; err != nil {
			return err
		}
		cfg := SymbolConfigRow{SymbolName: name, Lot: lot, GridSize: gridSize}
		return tx.Where("symbol_name = ?", name).Assign(cfg).FirstOrCreate(&cfg).Error
	})
}

// UpdateState persists a symbol's state tag only.
func (m *Mirror) UpdateState(name, state string) error {
	return m.db.Model(&SymbolRow{}).Where("name = ?", name).Update("state", state).Error
}

// UpdateProfit persists a symbol's running profit.
func (m *Mirror) UpdateProfit(name string, profit float64) error {
	return m.db.Model(&SymbolRow{}).Where("name = ?", name).Update("profit", profit).Error
}

// DeleteSymbol removes a symbol's row and its config row; callers must
// ensure there are no remaining orders (the ledger lifecycle invariant).
func (m *Mirror) DeleteSymbol(name string) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("symbol_name = ?", name).Delete(&SymbolConfigRow{}).Error; err != nil {
			return err
		}
		return tx.Where("name = ?", name).Delete(&SymbolRow{}).Error
	})
}

// symbolIDByName looks up the durable row id for a symbol name.
func (m *Mirror) symbolIDByName(name string) (uint, error) {
	var row SymbolRow
	if err := m.db.Where("name = ?", name).First(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

// AppendOrder mirrors a new buy order and returns its durable id. Runs in
// its own transaction, completing before the caller appends to the
// in-memory ledger (ordering guarantee, SPEC_FULL.md §4.6).
func (m *Mirror) AppendOrder(symbolName string, o ledger.Order) (int64, error) {
	symbolID, err := m.symbolIDByName(symbolName)
	if err != nil {
		return 0, fmt.Errorf("lookup symbol %s: %w", symbolName, err)
	}
	row := OrderRow{
		SymbolID:    symbolID,
		Price:       o.Price,
		ExecutedQty: o.ExecutedQty,
		Cost:        o.Cost,
		CostWithFee: o.CostWithFee,
		OpenTime:    o.OpenTime,
	}
	if err := m.db.Create(&row).Error; err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return row.ID, nil
}

// RemoveOrders deletes the mirrored rows for ids and updates the symbol's
// profit in one transaction (invariant 2).
func (m *Mirror) RemoveOrders(symbolName string, ids []int64, newProfit float64) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		if len(ids) > 0 {
			if err := tx.Where("id IN ?", ids).Delete(&OrderRow{}).Error; err != nil {
				return err
			}
		} else {
			symbolID, err := m.symbolIDByName(symbolName)
			if err != nil {
				return err
			}
			if err := tx.Where("symbol_id = ?", symbolID).Delete(&OrderRow{}).Error; err != nil {
				return err
			}
		}
		return tx.Model(&SymbolRow{}).Where("name = ?", symbolName).Update("profit", newProfit).Error
	})
}
