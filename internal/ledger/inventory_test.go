package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductNeedsReorder(t *testing.T) {
	assert.True(t, Product{QuantityOnHand: dec("5"), ReorderLevel: dec("5")}.NeedsReorder())
	assert.False(t, Product{QuantityOnHand: dec("6"), ReorderLevel: dec("5")}.NeedsReorder())
	assert.False(t, Product{QuantityOnHand: dec("0"), ReorderLevel: dec("0")}.NeedsReorder())
}

func TestStockMoveValidate(t *testing.T) {
	m := StockMove{ProductID: 1, WarehouseID: 1, DepartmentID: 2, Date: "2024-05-01",
		Quantity: dec("4"), MoveType: MoveOut}
	require.NoError(t, m.Validate())

	bad := m
	bad.MoveType = "sideways"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidMoveType)

	noDept := m
	noDept.DepartmentID = 0
	assert.ErrorIs(t, noDept.Validate(), ErrMissingID)

	zero := m
	zero.Quantity = dec("0")
	assert.ErrorIs(t, zero.Validate(), ErrNonPositive)
}

func TestAssetValidate(t *testing.T) {
	a := Asset{Name: "Van", Cost: dec("20000"), DepreciationRate: dec("12.5")}
	require.NoError(t, a.Validate())
	assert.True(t, a.AnnualDepreciation().Equal(dec("2500")))

	over := a
	over.DepreciationRate = dec("101")
	assert.Error(t, over.Validate())

	badDate := a
	badDate.PurchaseDate = "last year"
	assert.ErrorIs(t, badDate.Validate(), ErrInvalidDate)
}

func TestExpenseAnalysisRanked(t *testing.T) {
	e := ExpenseAnalysis{
		TotalExpenses: dec("900"),
		ByAccount: map[string][]MonthlyAmount{
			"Rent":      {{Month: "2024-04", Amount: dec("300")}, {Month: "2024-05", Amount: dec("300")}},
			"Utilities": {{Month: "2024-05", Amount: dec("150")}},
			"Supplies":  {{Month: "2024-05", Amount: dec("150")}},
		},
	}
	ranked := e.Ranked()
	require.Len(t, ranked, 3)
	assert.Equal(t, "Rent", ranked[0].Account)
	assert.True(t, ranked[0].Total.Equal(dec("600")))
	assert.Equal(t, "Supplies", ranked[1].Account)
	assert.Equal(t, "Utilities", ranked[2].Account)
}
