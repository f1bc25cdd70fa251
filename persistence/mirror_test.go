package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bingxgrid/ledger"
)

func newTestMirror(t *testing.T) *Mirror {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&SymbolRow{}, &SymbolConfigRow{}, &OrderRow{}))
	return NewMirror(db)
}

func TestUpsertAndLoadSymbol(t *testing.T) {
	m := newTestMirror(t)
	require.NoError(t, m.UpsertSymbol("ADA", 0.1, 0, 10, 0.01, "stop"))

	restored, err := m.LoadAll()
	require.NoError(t, err)
	require.Len(t, restored, 1)
	require.Equal(t, "ADA", restored[0].Name)
	require.Equal(t, 0.1, restored[0].StepSize)
	require.Equal(t, 10.0, restored[0].Lot)
	require.Equal(t, "stop", restored[0].State)
}

func TestAppendOrderThenRemove(t *testing.T) {
	m := newTestMirror(t)
	require.NoError(t, m.UpsertSymbol("ADA", 0.1, 0, 10, 0.01, "track"))

	id, err := m.AppendOrder("ADA", ledger.Order{
		Price: 0.5, ExecutedQty: 10, Cost: 5, CostWithFee: 5.02, OpenTime: time.Now(),
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	restored, err := m.LoadAll()
	require.NoError(t, err)
	require.Len(t, restored[0].Orders, 1)
	require.Equal(t, id, restored[0].Orders[0].ID)

	require.NoError(t, m.RemoveOrders("ADA", []int64{id}, 0.5))

	restored, err = m.LoadAll()
	require.NoError(t, err)
	require.Empty(t, restored[0].Orders)
	require.Equal(t, 0.5, restored[0].Profit)
}

func TestDeleteSymbolRemovesConfigRow(t *testing.T) {
	m := newTestMirror(t)
	require.NoError(t, m.UpsertSymbol("ADA", 0.1, 0, 10, 0.01, "stop"))
	require.NoError(t, m.DeleteSymbol("ADA"))

	restored, err := m.LoadAll()
	require.NoError(t, err)
	require.Empty(t, restored)
}
