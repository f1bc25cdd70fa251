// Package persistence is the ledger mirror: a GORM-backed reflection of the
// in-memory order ledger used to restore state at start-up and to survive
// restarts across add/delete order operations (SPEC_FULL.md §6).
//
// Grounded on the teacher's store/gorm.go dual sqlite/postgres init and
// store/order.go GORM model shape, generalized from the teacher's
// multi-exchange TraderOrder/TraderFill schema to the three tables named in
// SPEC_FULL.md §6: symbols_config, symbols, orders_info.
package persistence

import "time"

// SymbolRow mirrors ledger.symbolEntry's durable fields.
type SymbolRow struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"uniqueIndex;column:name"`
	StepSize float64
	Profit   float64
	State    string
}

func (SymbolRow) TableName() string { return "symbols" }

// SymbolConfigRow mirrors the dynamic lot/grid pair the indicator engine
// mutates.
type SymbolConfigRow struct {
	ID         uint   `gorm:"primaryKey"`
	SymbolName string `gorm:"uniqueIndex;column:symbol_name"`
	GridSize   float64
	Lot        float64
}

func (SymbolConfigRow) TableName() string { return "symbols_config" }

// OrderRow mirrors one open ledger.Order.
type OrderRow struct {
	ID          int64 `gorm:"primaryKey"`
	SymbolID    uint  `gorm:"index"`
	Price       float64
	ExecutedQty float64
	Cost        float64
	CostWithFee float64
	OpenTime    time.Time
}

func (OrderRow) TableName() string { return "orders_info" }
