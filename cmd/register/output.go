package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/ipang84/retailmaster/internal/cash"
	"github.com/ipang84/retailmaster/internal/dashboard"
	"github.com/ipang84/retailmaster/internal/domain"
)

const timeLayout = "2006-01-02 15:04"

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func (c *cli) localTime(t time.Time) string {
	return t.In(c.loc).Format(timeLayout)
}

func (c *cli) printSession(s domain.RegisterSession) {
	fmt.Fprintf(c.stdout, "Session:       %s (%s)\n", s.ID, s.Status)
	fmt.Fprintf(c.stdout, "Opened:        %s\n", c.localTime(s.StartTime))
	fmt.Fprintf(c.stdout, "Starting cash: %s\n", s.StartingCash)
	if s.EndTime != nil {
		fmt.Fprintf(c.stdout, "Closed:        %s\n", c.localTime(*s.EndTime))
	}
	if s.EndingCash != nil {
		fmt.Fprintf(c.stdout, "Ending cash:   %s\n", *s.EndingCash)
	}
	fmt.Fprintf(c.stdout, "Transactions:  %d\n", len(s.Transactions))
}

func (c *cli) printBreakdown(counts domain.DenominationCount) {
	lines := cash.Breakdown(counts)
	if len(lines) == 0 {
		fmt.Fprintln(c.stdout, "Drawer is empty.")
		return
	}
	tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "DENOMINATION\tKIND\tCOUNT\tSUBTOTAL\t")
	var total domain.Cents
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t\n", l.Denomination.Key, l.Denomination.Kind, l.Count, l.Subtotal)
		total += l.Subtotal
	}
	fmt.Fprintf(tw, "total\t\t\t%s\t\n", total)
	_ = tw.Flush()
}

func (c *cli) printTransactions(txs []domain.Transaction) {
	if len(txs) == 0 {
		return
	}
	tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tTYPE\tMETHOD\tAMOUNT\tORDER\tNOTE")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", c.localTime(tx.Timestamp), tx.Type, tx.PaymentMethod, tx.Amount, tx.OrderID, tx.Note)
	}
	_ = tw.Flush()
}

func (c *cli) printSummary(s cash.Summary) {
	fmt.Fprintf(c.stdout, "Sales:   %d totalling %s\n", s.SaleCount, s.GrossSales)
	fmt.Fprintf(c.stdout, "Refunds: %d totalling %s\n", s.RefundCount, s.Refunds)
	fmt.Fprintf(c.stdout, "Net:     %s\n", s.NetSales)
	for _, m := range s.ByMethod {
		fmt.Fprintf(c.stdout, "  %-8s sales %s, refunds %s, net %s\n", m.Method, m.Sales, m.Refund, m.Net)
	}
}

func (c *cli) printReconciliation(r cash.Reconciliation) {
	fmt.Fprintf(c.stdout, "Starting cash: %s\n", r.StartingCash)
	fmt.Fprintf(c.stdout, "Expected cash: %s\n", r.ExpectedCash)
	fmt.Fprintf(c.stdout, "Counted cash:  %s\n", r.CountedCash)
	fmt.Fprintf(c.stdout, "Variance:      %s (%s)\n", r.Variance, r.State)
}

func (c *cli) printHistory(sessions []domain.RegisterSession) {
	if len(sessions) == 0 {
		fmt.Fprintln(c.stdout, "No sessions recorded.")
		return
	}
	tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tOPENED\tCLOSED\tSTART\tEND\tTXNS")
	for _, s := range sessions {
		closed, ending := "-", "-"
		if s.EndTime != nil {
			closed = c.localTime(*s.EndTime)
		}
		if s.EndingCash != nil {
			ending = s.EndingCash.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n", s.ID, s.Status, c.localTime(s.StartTime), closed, s.StartingCash, ending, len(s.Transactions))
	}
	_ = tw.Flush()
}

func (c *cli) printDashboard(s dashboard.Summary) {
	fmt.Fprintf(c.stdout, "Today (%s): %d orders, gross %s, refunds %s, net %s\n",
		s.Today.Date, s.Today.OrderCount, s.Today.Gross, s.Today.Refunds, s.Today.Net)
	fmt.Fprintf(c.stdout, "Inventory: %d products, %d units, cost %s, retail %s\n",
		s.Inventory.Products, s.Inventory.Units, s.Inventory.CostValue, s.Inventory.RetailValue)

	if len(s.TopSellers) > 0 {
		fmt.Fprintln(c.stdout, "Top sellers:")
		tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
		for i, t := range s.TopSellers {
			fmt.Fprintf(tw, "  %d.\t%s\t%d units\t%s\n", i+1, t.Name, t.Units, t.Revenue)
		}
		_ = tw.Flush()
	}
	if len(s.LowStock) > 0 {
		fmt.Fprintln(c.stdout, "Low stock:")
		tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
		for _, l := range s.LowStock {
			fmt.Fprintf(tw, "  %s\t%d left\tmin %d\n", l.Name, l.Inventory, l.MinStock)
		}
		_ = tw.Flush()
	}
}
