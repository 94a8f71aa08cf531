package cash

import (
	"sort"
	"strings"

	"github.com/ipang84/retailmaster/internal/domain"
)

type VarianceState string

const (
	Balanced VarianceState = "balanced"
	Over     VarianceState = "over"
	Short    VarianceState = "short"
)

// Reconciliation compares a closing count against what the drawer should hold.
type Reconciliation struct {
	StartingCash domain.Cents  `json:"startingCash"`
	ExpectedCash domain.Cents  `json:"expectedCash"`
	CountedCash  domain.Cents  `json:"countedCash"`
	Variance     domain.Cents  `json:"variance"`
	State        VarianceState `json:"state"`
}

// ExpectedCash is the starting float plus net cash movements: cash sales and
// pay-ins add, cash refunds and payouts subtract. Other methods do not touch the drawer.
func ExpectedCash(session domain.RegisterSession) domain.Cents {
	expected := session.StartingCash
	for _, tx := range session.Transactions {
		if !tx.PaidWith(domain.PaymentCash) {
			continue
		}
		switch {
		case tx.IsType(domain.TransactionSale), tx.IsType(domain.TransactionPayIn):
			expected += tx.Amount
		case tx.IsType(domain.TransactionRefund), tx.IsType(domain.TransactionPayout):
			expected -= tx.Amount
		}
	}
	return expected
}

// Variance is counted minus expected: positive means over, negative means short.
func Variance(counted, expected domain.Cents) domain.Cents {
	return counted - expected
}

func stateOf(variance domain.Cents) VarianceState {
	switch {
	case variance > 0:
		return Over
	case variance < 0:
		return Short
	default:
		return Balanced
	}
}

// Reconcile evaluates closingCounts against session without modifying it.
func Reconcile(session domain.RegisterSession, closingCounts domain.DenominationCount) Reconciliation {
	expected := ExpectedCash(session)
	counted := Total(closingCounts)
	variance := Variance(counted, expected)
	return Reconciliation{
		StartingCash: session.StartingCash,
		ExpectedCash: expected,
		CountedCash:  counted,
		Variance:     variance,
		State:        stateOf(variance),
	}
}

// MethodTotal is the net amount taken through one payment method.
type MethodTotal struct {
	Method string       `json:"method"`
	Sales  domain.Cents `json:"sales"`
	Refund domain.Cents `json:"refunds"`
	Net    domain.Cents `json:"net"`
}

// Summary aggregates a session's transactions for the close-out report.
type Summary struct {
	TransactionCount int           `json:"transactionCount"`
	SaleCount        int           `json:"saleCount"`
	RefundCount      int           `json:"refundCount"`
	GrossSales       domain.Cents  `json:"grossSales"`
	Refunds          domain.Cents  `json:"refunds"`
	NetSales         domain.Cents  `json:"netSales"`
	ByMethod         []MethodTotal `json:"byMethod"`
}

// Summarize totals sales and refunds per payment method, methods sorted by name.
func Summarize(session domain.RegisterSession) Summary {
	summary := Summary{TransactionCount: len(session.Transactions)}
	methods := make(map[string]*MethodTotal)

	for _, tx := range session.Transactions {
		isSale := tx.IsType(domain.TransactionSale)
		isRefund := tx.IsType(domain.TransactionRefund)
		if !isSale && !isRefund {
			continue
		}

		name := strings.ToLower(strings.TrimSpace(tx.PaymentMethod))
		if name == "" {
			name = "unknown"
		}
		m, ok := methods[name]
		if !ok {
			m = &MethodTotal{Method: name}
			methods[name] = m
		}

		if isSale {
			summary.SaleCount++
			summary.GrossSales += tx.Amount
			m.Sales += tx.Amount
		} else {
			summary.RefundCount++
			summary.Refunds += tx.Amount
			m.Refund += tx.Amount
		}
		m.Net = m.Sales - m.Refund
	}

	summary.NetSales = summary.GrossSales - summary.Refunds
	summary.ByMethod = make([]MethodTotal, 0, len(methods))
	for _, m := range methods {
		summary.ByMethod = append(summary.ByMethod, *m)
	}
	sort.Slice(summary.ByMethod, func(i, j int) bool {
		return summary.ByMethod[i].Method < summary.ByMethod[j].Method
	})
	return summary
}
