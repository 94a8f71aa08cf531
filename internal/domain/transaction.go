package domain

import (
	"strings"
	"time"
)

const (
	TransactionSale   = "sale"
	TransactionRefund = "refund"
	TransactionPayIn  = "pay_in"
	TransactionPayout = "payout"

	PaymentCash = "cash"
	PaymentCard = "card"
)

// Transaction is a drawer event recorded against a register session.
// Type and PaymentMethod are free-form; the constants above are the ones the
// cash reconciliation understands.
type Transaction struct {
	Type          string            `json:"type"`
	PaymentMethod string            `json:"paymentMethod"`
	Amount        Cents             `json:"amount"`
	OrderID       string            `json:"orderId,omitempty"`
	Note          string            `json:"note,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
}

func (t Transaction) IsType(kind string) bool {
	return strings.EqualFold(strings.TrimSpace(t.Type), kind)
}

func (t Transaction) PaidWith(method string) bool {
	return strings.EqualFold(strings.TrimSpace(t.PaymentMethod), method)
}

func (t Transaction) Clone() Transaction {
	out := t
	if t.Metadata != nil {
		out.Metadata = make(map[string]string, len(t.Metadata))
		for k, v := range t.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}
