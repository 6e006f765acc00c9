package ledger

import (
	"github.com/stocker-hk/stocker-backend/internal/fx"
	"github.com/stocker-hk/stocker-backend/internal/model"
)

// CashBalances holds one running balance per tracked currency plus the total
// normalized into the base currency. This is the single source of truth for
// available cash; any persisted copy is rebuilt from it by full replay.
type CashBalances struct {
	ByCurrency  map[fx.Currency]float64
	TotalInBase float64
}

// Cash returns the balance for one currency.
func (c CashBalances) Cash(currency fx.Currency) float64 {
	return c.ByCurrency[currency]
}

// ReconcileCash replays an account's cash flows and transactions into
// per-currency balances. Deposits add and withdrawals subtract in the flow's
// own currency. A buy subtracts price*quantity + fee, a sell adds
// price*quantity − fee, a dividend adds price*quantity, each bucketed by the
// transaction's currency (the repository resolves a missing transaction
// currency to the asset's currency before the engine sees it).
//
// usdToHKD is the single rate used to compute the base-currency total.
func ReconcileCash(flows []model.CashFlow, txs []model.Transaction, usdToHKD float64) CashBalances {
	balances := CashBalances{ByCurrency: make(map[fx.Currency]float64, 2)}
	for _, c := range fx.Currencies() {
		balances.ByCurrency[c] = 0
	}

	for _, f := range flows {
		switch f.Type {
		case model.FlowDeposit:
			balances.ByCurrency[f.Currency] += f.Amount
		case model.FlowWithdraw:
			balances.ByCurrency[f.Currency] -= f.Amount
		}
	}

	for _, t := range txs {
		switch t.Action {
		case model.ActionBuy:
			balances.ByCurrency[t.Currency] -= t.GrossAmount() + t.Fee
		case model.ActionSell:
			balances.ByCurrency[t.Currency] += t.GrossAmount() - t.Fee
		case model.ActionDividend:
			balances.ByCurrency[t.Currency] += t.GrossAmount()
		}
	}

	for currency, amount := range balances.ByCurrency {
		balances.TotalInBase += fx.Convert(amount, currency, usdToHKD)
	}

	return balances
}

// TotalDeposited sums deposits minus withdrawals in the base currency. It is
// the invested-capital figure the dashboard reports ROI against.
func TotalDeposited(flows []model.CashFlow, usdToHKD float64) float64 {
	var total float64
	for _, f := range flows {
		amount := fx.Convert(f.Amount, f.Currency, usdToHKD)
		switch f.Type {
		case model.FlowDeposit:
			total += amount
		case model.FlowWithdraw:
			total -= amount
		}
	}
	return total
}
