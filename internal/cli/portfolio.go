package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/models"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/services"
)

// Add prompts for a new asset and stores it in the portfolio.
func (a *App) Add(ctx context.Context) error {
	session := a.session.Current()
	if session == nil {
		printlnFn("Log in first")
		return nil
	}

	symbol, err := getSimpleText(a.reader, "Symbol (e.g. BTC, AAPL)", os.Stdout)
	if err != nil {
		return err
	}
	class, err := getSimpleText(a.reader, "Asset class (crypto/equity)", os.Stdout)
	if err != nil {
		return err
	}
	quantity, err := getSimpleText(a.reader, "Quantity", os.Stdout)
	if err != nil {
		return err
	}
	price, err := getSimpleText(a.reader, "Purchase price (USD)", os.Stdout)
	if err != nil {
		return err
	}

	position, err := a.portfolio.Add(ctx, services.AddInput{
		Owner:          session.AccountID,
		Symbol:         symbol,
		AssetClass:     normalizeClass(class),
		Quantity:       quantity,
		CostBasisPrice: price,
	})
	if err != nil {
		printlnFn(userMessage(err))
		return err
	}

	printlnFn("Added", position.Symbol, "("+position.ID+")")
	return nil
}

// List prints the portfolio with current valuation. Crypto quotes come from
// the price source; a fetch failure silently falls back to cost basis.
func (a *App) List(ctx context.Context) error {
	session := a.session.Current()
	if session == nil {
		printlnFn("Log in first")
		return nil
	}

	positions, err := a.portfolio.ListForOwner(ctx, session.AccountID)
	if err != nil {
		printlnFn(userMessage(err))
		return err
	}
	if len(positions) == 0 {
		printlnFn("Portfolio is empty")
		return nil
	}

	v := a.valuation.Valuate(ctx, positions)
	for _, pv := range v.Positions {
		p := pv.Position
		printlnFn(fmt.Sprintf("%-38s %-8s %-8s qty %-12s price %-14s value %-14s p/l %s",
			p.ID, p.Symbol, strings.ToLower(string(p.AssetClass)), p.Quantity.String(),
			services.FormatUSD(pv.CurrentPrice), services.FormatUSD(pv.MarketValue),
			services.FormatUSD(pv.ProfitLoss)))
	}
	printlnFn(fmt.Sprintf("Total: %s invested, %s current, %s (%s%%)",
		services.FormatUSD(v.Invested), services.FormatUSD(v.MarketValue),
		services.FormatUSD(v.ProfitLoss), v.ProfitLossPercent.StringFixed(2)))
	return nil
}

// Update changes a position's quantity or, for equities, its manual current
// price. Empty answers leave the field unchanged; the purchase price can
// never be edited.
func (a *App) Update(ctx context.Context) error {
	session := a.session.Current()
	if session == nil {
		printlnFn("Log in first")
		return nil
	}

	id, err := getSimpleText(a.reader, "Position id", os.Stdout)
	if err != nil {
		return err
	}
	quantity, err := getSimpleText(a.reader, "New quantity (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	price, err := getSimpleText(a.reader, "New current price, equities only (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	in := services.UpdateInput{Owner: session.AccountID, PositionID: id}
	if quantity != "" {
		in.Quantity = &quantity
	}
	if price != "" {
		in.ManualCurrentPrice = &price
	}

	position, err := a.portfolio.Update(ctx, in)
	if err != nil {
		printlnFn(userMessage(err))
		return err
	}

	printlnFn("Updated", position.Symbol)
	return nil
}

// Delete removes a position after an explicit confirmation.
func (a *App) Delete(ctx context.Context) error {
	session := a.session.Current()
	if session == nil {
		printlnFn("Log in first")
		return nil
	}

	id, err := getSimpleText(a.reader, "Position id to delete", os.Stdout)
	if err != nil {
		return err
	}
	answer, err := getSimpleText(a.reader, "Delete "+id+"? (y/n)", os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.portfolio.Delete(ctx, session.AccountID, id); err != nil {
		printlnFn(userMessage(err))
		return err
	}

	printlnFn("Deleted")
	return nil
}

// Logs prints the most recent activity log entries for the account.
func (a *App) Logs(ctx context.Context) error {
	session := a.session.Current()
	if session == nil {
		printlnFn("Log in first")
		return nil
	}

	events, err := a.audit.ListForActor(ctx, session.AccountID, 50)
	if err != nil {
		printlnFn(userMessage(err))
		return err
	}

	for _, e := range events {
		printlnFn(fmt.Sprintf("%s  %-24s %s",
			e.RecordedAt.Format("2006-01-02 15:04:05"), e.Kind, payloadSummary(e.Payload)))
	}
	return nil
}

func normalizeClass(s string) models.AssetClass {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "crypto", "c":
		return models.AssetClassCrypto
	case "equity", "stock", "e", "s":
		return models.AssetClassEquity
	}
	return models.AssetClass(strings.ToUpper(strings.TrimSpace(s)))
}

func payloadSummary(payload map[string]any) string {
	if len(payload) == 0 {
		return ""
	}
	parts := make([]string, 0, len(payload))
	for k, v := range payload {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, " ")
}
