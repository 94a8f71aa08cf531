package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/ipang84/retailmaster/internal/adapter/catalog"
	"github.com/ipang84/retailmaster/internal/app"
	"github.com/ipang84/retailmaster/internal/cash"
	"github.com/ipang84/retailmaster/internal/dashboard"
	"github.com/ipang84/retailmaster/internal/domain"
	"github.com/ipang84/retailmaster/internal/errors"
	"github.com/jonboulle/clockwork"
)

type cli struct {
	register *app.Register
	clock    clockwork.Clock
	loc      *time.Location
	stdout   io.Writer
	stderr   io.Writer
	json     bool
}

type command struct {
	name    string
	summary string
	run     func(c *cli, ctx context.Context, args []string) error
}

var commands = []command{
	{"status", "show the open session and its expected cash", (*cli).status},
	{"open", "open a session with an opening drawer count", (*cli).open},
	{"sale", "record a sale in the open session", (*cli).sale},
	{"refund", "record a refund in the open session", (*cli).refund},
	{"record", "record a transaction of any type (payout, pay_in, ...)", (*cli).record},
	{"preview", "reconcile a proposed closing count without closing", (*cli).preview},
	{"close", "close the open session with a closing drawer count", (*cli).close},
	{"history", "list recorded sessions, newest first", (*cli).history},
	{"show", "show one session by id", (*cli).show},
	{"dashboard", "summarize sales and stock from product and order files", (*cli).dashboard},
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: register <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintf(w, "  %-10s %s\n", "version", "print build information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'register <command> -h' for command flags.")
}

func (c *cli) execute(ctx context.Context, args []string) error {
	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(c, ctx, args[1:])
		}
	}
	printUsage(c.stderr)
	return errors.ValidationError(fmt.Sprintf("unknown command %q", args[0]))
}

// report prints err for the operator and returns the process exit code.
func (c *cli) report(ctx context.Context, err error) int {
	if err == nil || stderrors.Is(err, flag.ErrHelp) {
		return 0
	}
	serr := errors.AsStructuredError(err)
	if serr.Type == errors.TypeInternal {
		slog.ErrorContext(ctx, "Command failed", "error", err)
	}
	if c.json {
		enc := json.NewEncoder(c.stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(serr.ToResponse())
	} else {
		fmt.Fprintf(c.stderr, "error: %s\n", serr.Message)
	}
	return serr.ExitCode()
}

func (c *cli) flags(name, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.BoolVar(&c.json, "json", false, "print JSON instead of text")
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "usage: register %s %s\n", name, synopsis)
		fs.PrintDefaults()
	}
	return fs
}

// parse runs fs over args and rejects leftover positional arguments unless allowed.
func parse(fs *flag.FlagSet, args []string, maxArgs int) error {
	if err := fs.Parse(args); err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return err
		}
		return errors.ValidationError(err.Error())
	}
	if fs.NArg() > maxArgs {
		return errors.ValidationError(fmt.Sprintf("unexpected arguments: %s", strings.Join(fs.Args()[maxArgs:], " ")))
	}
	return nil
}

// drawerCounts turns -count pairs into a sanitized count, logging unknown denominations.
func drawerCounts(ctx context.Context, raw countFlag) domain.DenominationCount {
	for key, val := range raw {
		if _, known := cash.Lookup(key); !known {
			slog.WarnContext(ctx, "Ignoring unknown denomination", "denomination", key, "count", val)
		}
	}
	return cash.ParseCounts(raw)
}

// --- Session commands ---

type statusView struct {
	Active       bool                    `json:"active"`
	Session      *domain.RegisterSession `json:"session,omitempty"`
	ExpectedCash *domain.Cents           `json:"expectedCash,omitempty"`
}

func (c *cli) status(ctx context.Context, args []string) error {
	fs := c.flags("status", "[-json]")
	if err := parse(fs, args, 0); err != nil {
		return err
	}

	session, err := c.register.CurrentSession(ctx)
	if err != nil {
		return err
	}

	view := statusView{Active: session != nil, Session: session}
	if session != nil {
		expected := cash.ExpectedCash(*session)
		view.ExpectedCash = &expected
	}
	if c.json {
		return c.printJSON(view)
	}

	if session == nil {
		fmt.Fprintln(c.stdout, "No register session is open.")
		return nil
	}
	c.printSession(*session)
	fmt.Fprintf(c.stdout, "Expected cash: %s\n", *view.ExpectedCash)
	return nil
}

func (c *cli) open(ctx context.Context, args []string) error {
	fs := c.flags("open", "-count DENOM=N [-count DENOM=N ...] [-json]")
	counts := countFlag{}
	fs.Var(counts, "count", "opening drawer count as DENOM=N, repeatable")
	if err := parse(fs, args, 0); err != nil {
		return err
	}

	session, err := c.register.StartSession(ctx, drawerCounts(ctx, counts))
	if err != nil {
		return err
	}
	if c.json {
		return c.printJSON(session)
	}

	fmt.Fprintf(c.stdout, "Opened session %s with %s starting cash.\n", session.ID, session.StartingCash)
	c.printBreakdown(session.CashCounts)
	return nil
}

func (c *cli) sale(ctx context.Context, args []string) error {
	return c.transaction(ctx, "sale", domain.TransactionSale, args)
}

func (c *cli) refund(ctx context.Context, args []string) error {
	return c.transaction(ctx, "refund", domain.TransactionRefund, args)
}

func (c *cli) record(ctx context.Context, args []string) error {
	return c.transaction(ctx, "record", "", args)
}

type transactionView struct {
	SessionID    string             `json:"sessionId"`
	Transaction  domain.Transaction `json:"transaction"`
	ExpectedCash domain.Cents       `json:"expectedCash"`
}

// transaction records one entry. When txType is empty the caller must pass -type.
func (c *cli) transaction(ctx context.Context, name, txType string, args []string) error {
	synopsis := "-amount N [-method cash|card|...] [-order ID] [-note TEXT] [-meta KEY=VALUE ...] [-json]"
	if txType == "" {
		synopsis = "-type TYPE " + synopsis
	}
	fs := c.flags(name, synopsis)
	amount := fs.String("amount", "", "transaction amount, e.g. 12.50")
	method := fs.String("method", domain.PaymentCash, "payment method")
	orderID := fs.String("order", "", "order id")
	note := fs.String("note", "", "free-form note")
	meta := pairsFlag{}
	fs.Var(meta, "meta", "extra field as KEY=VALUE, repeatable")
	typeFlag := &txType
	if txType == "" {
		typeFlag = fs.String("type", "", "transaction type, e.g. payout or pay_in")
	}
	if err := parse(fs, args, 0); err != nil {
		return err
	}

	if strings.TrimSpace(*typeFlag) == "" {
		return errors.ValidationError("-type is required")
	}
	if *amount == "" {
		return errors.ValidationError("-amount is required")
	}
	cents, err := domain.ParseCents(*amount)
	if err != nil {
		return errors.ValidationError(err.Error())
	}
	if cents < 0 {
		return errors.ValidationError("-amount must not be negative").WithContext("amount", *amount)
	}

	tx := domain.Transaction{
		Type:          strings.TrimSpace(*typeFlag),
		PaymentMethod: strings.TrimSpace(*method),
		Amount:        cents,
		OrderID:       *orderID,
		Note:          *note,
	}
	if len(meta) > 0 {
		tx.Metadata = map[string]string(meta)
	}

	session, err := c.register.AddTransaction(ctx, tx)
	if err != nil {
		return err
	}
	recorded := session.Transactions[len(session.Transactions)-1]
	expected := cash.ExpectedCash(session)
	if c.json {
		return c.printJSON(transactionView{SessionID: session.ID, Transaction: recorded, ExpectedCash: expected})
	}

	fmt.Fprintf(c.stdout, "Recorded %s of %s (%s) in session %s.\n", recorded.Type, recorded.Amount, recorded.PaymentMethod, session.ID)
	fmt.Fprintf(c.stdout, "Expected cash: %s\n", expected)
	return nil
}

func (c *cli) preview(ctx context.Context, args []string) error {
	fs := c.flags("preview", "-count DENOM=N [-count DENOM=N ...] [-json]")
	counts := countFlag{}
	fs.Var(counts, "count", "proposed closing drawer count as DENOM=N, repeatable")
	if err := parse(fs, args, 0); err != nil {
		return err
	}

	rec, err := c.register.PreviewClose(ctx, drawerCounts(ctx, counts))
	if err != nil {
		return err
	}
	if c.json {
		return c.printJSON(rec)
	}
	c.printReconciliation(rec)
	return nil
}

type closeView struct {
	Session        domain.RegisterSession `json:"session"`
	Reconciliation cash.Reconciliation    `json:"reconciliation"`
	Summary        cash.Summary           `json:"summary"`
}

func (c *cli) close(ctx context.Context, args []string) error {
	fs := c.flags("close", "-count DENOM=N [-count DENOM=N ...] [-json]")
	counts := countFlag{}
	fs.Var(counts, "count", "closing drawer count as DENOM=N, repeatable")
	if err := parse(fs, args, 0); err != nil {
		return err
	}

	session, err := c.register.EndSession(ctx, drawerCounts(ctx, counts))
	if err != nil {
		return err
	}
	view := closeView{
		Session:        session,
		Reconciliation: cash.Reconcile(session, session.EndCashCounts),
		Summary:        cash.Summarize(session),
	}
	if c.json {
		return c.printJSON(view)
	}

	fmt.Fprintf(c.stdout, "Closed session %s.\n", session.ID)
	c.printBreakdown(session.EndCashCounts)
	c.printSummary(view.Summary)
	c.printReconciliation(view.Reconciliation)
	return nil
}

// --- History commands ---

func (c *cli) history(ctx context.Context, args []string) error {
	fs := c.flags("history", "[-limit N] [-json]")
	limit := fs.Int("limit", 0, "show at most N sessions (0 for all)")
	if err := parse(fs, args, 0); err != nil {
		return err
	}
	if *limit < 0 {
		return errors.ValidationError("-limit must not be negative")
	}

	sessions, err := c.register.Sessions(ctx)
	if err != nil {
		return err
	}
	slices.Reverse(sessions)
	if *limit > 0 && len(sessions) > *limit {
		sessions = sessions[:*limit]
	}
	if c.json {
		return c.printJSON(sessions)
	}
	c.printHistory(sessions)
	return nil
}

type sessionView struct {
	Session        domain.RegisterSession `json:"session"`
	Summary        cash.Summary           `json:"summary"`
	ExpectedCash   domain.Cents           `json:"expectedCash"`
	Reconciliation *cash.Reconciliation   `json:"reconciliation,omitempty"`
}

func (c *cli) show(ctx context.Context, args []string) error {
	fs := c.flags("show", "[-json] SESSION_ID")
	if err := parse(fs, args, 1); err != nil {
		return err
	}
	id := strings.TrimSpace(fs.Arg(0))
	if id == "" {
		return errors.ValidationError("session id is required")
	}

	session, err := c.register.Session(ctx, id)
	if err != nil {
		return err
	}
	view := sessionView{
		Session:      session,
		Summary:      cash.Summarize(session),
		ExpectedCash: cash.ExpectedCash(session),
	}
	if !session.IsActive() {
		rec := cash.Reconcile(session, session.EndCashCounts)
		view.Reconciliation = &rec
	}
	if c.json {
		return c.printJSON(view)
	}

	c.printSession(session)
	c.printTransactions(session.Transactions)
	c.printSummary(view.Summary)
	if view.Reconciliation != nil {
		c.printReconciliation(*view.Reconciliation)
	} else {
		fmt.Fprintf(c.stdout, "Expected cash: %s\n", view.ExpectedCash)
	}
	return nil
}

// --- Dashboard ---

func (c *cli) dashboard(ctx context.Context, args []string) error {
	fs := c.flags("dashboard", "[-products FILE] [-orders FILE] [-top N] [-json]")
	products := fs.String("products", "", "JSON file with the product catalog")
	orders := fs.String("orders", "", "JSON file with the order history")
	top := fs.Int("top", 5, "number of top sellers to list")
	if err := parse(fs, args, 0); err != nil {
		return err
	}
	if *top < 1 {
		return errors.ValidationError("-top must be at least 1")
	}

	svc := dashboard.NewService(catalog.ProductFile{Path: *products}, catalog.OrderFile{Path: *orders}, c.clock, c.loc, *top)
	summary, err := svc.Summary(ctx)
	if err != nil {
		return err
	}
	if c.json {
		return c.printJSON(summary)
	}
	c.printDashboard(summary)
	return nil
}
