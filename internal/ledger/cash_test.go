package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stocker-hk/stocker-backend/internal/fx"
	"github.com/stocker-hk/stocker-backend/internal/ledger"
	"github.com/stocker-hk/stocker-backend/internal/model"
)

func TestReconcileCash_DepositThenBuy(t *testing.T) {
	// Deposit 1000 USD; buy 5 @ 100 with fee 5 leaves 1000 - 500 - 5 = 495.
	flows := []model.CashFlow{
		{Type: model.FlowDeposit, Amount: 1000, Currency: fx.USD, Date: day(1)},
	}
	txs := []model.Transaction{
		tx(model.ActionBuy, day(2), 100, 5, 5),
	}

	balances := ledger.ReconcileCash(flows, txs, 1)

	assert.InDelta(t, 495.0, balances.Cash(fx.USD), 1e-9)
	assert.Zero(t, balances.Cash(fx.HKD))
	assert.InDelta(t, 495.0, balances.TotalInBase, 1e-9)
}

func TestReconcileCash_AllEventTypes(t *testing.T) {
	flows := []model.CashFlow{
		{Type: model.FlowDeposit, Amount: 2000, Currency: fx.USD, Date: day(1)},
		{Type: model.FlowWithdraw, Amount: 300, Currency: fx.USD, Date: day(2)},
		{Type: model.FlowDeposit, Amount: 7800, Currency: fx.HKD, Date: day(3)},
	}
	txs := []model.Transaction{
		tx(model.ActionBuy, day(4), 50, 10, 2),     // -502 USD
		tx(model.ActionSell, day(5), 60, 5, 1),     // +299 USD
		tx(model.ActionDividend, day(6), 0.5, 100, 0), // +50 USD
		{Action: model.ActionBuy, Date: day(7), Price: 390, Quantity: 10, Fee: 10, Currency: fx.HKD}, // -3910 HKD
	}

	balances := ledger.ReconcileCash(flows, txs, 7.8)

	assert.InDelta(t, 2000-300-502+299+50, balances.Cash(fx.USD), 1e-9)
	assert.InDelta(t, 7800-3910, balances.Cash(fx.HKD), 1e-9)
	assert.InDelta(t, 1547+3890/7.8, balances.TotalInBase, 1e-9)
}

func TestReconcileCash_EmptyInput(t *testing.T) {
	balances := ledger.ReconcileCash(nil, nil, 7.8)

	assert.Zero(t, balances.Cash(fx.USD))
	assert.Zero(t, balances.Cash(fx.HKD))
	assert.Zero(t, balances.TotalInBase)
}

func TestTotalDeposited(t *testing.T) {
	flows := []model.CashFlow{
		{Type: model.FlowDeposit, Amount: 1000, Currency: fx.USD},
		{Type: model.FlowDeposit, Amount: 780, Currency: fx.HKD},
		{Type: model.FlowWithdraw, Amount: 200, Currency: fx.USD},
	}

	total := ledger.TotalDeposited(flows, 7.8)

	assert.InDelta(t, 1000+100-200, total, 1e-9)
}
