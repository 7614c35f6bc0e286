package services

import (
	"context"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/logging"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/models"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/prices"
)

var hundred = decimal.NewFromInt(100)

// PositionValuation is one position priced at current market conditions.
type PositionValuation struct {
	Position     models.Position
	CurrentPrice decimal.Decimal
	Invested     decimal.Decimal
	MarketValue  decimal.Decimal
	ProfitLoss   decimal.Decimal
}

// PortfolioValuation aggregates a whole portfolio.
type PortfolioValuation struct {
	Positions         []PositionValuation
	Invested          decimal.Decimal
	MarketValue       decimal.Decimal
	ProfitLoss        decimal.Decimal
	ProfitLossPercent decimal.Decimal
}

// ValuationService computes market values for the presentation layer. It
// consumes a price source for crypto quotes; equities use their manually
// set price. A missing quote falls back to the cost basis, never an error.
type ValuationService struct {
	source prices.Source
	log    logging.Logger
}

// NewValuationService constructs the service over the given price source.
func NewValuationService(source prices.Source, log logging.Logger) *ValuationService {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &ValuationService{source: source, log: log}
}

// Valuate fetches quotes for the crypto symbols present and prices the
// portfolio. A failing price source degrades to cost-basis valuation.
func (s *ValuationService) Valuate(ctx context.Context, positionList []models.Position) PortfolioValuation {
	var symbols []string
	seen := map[string]bool{}
	for _, p := range positionList {
		if p.AssetClass == models.AssetClassCrypto && !seen[p.Symbol] {
			seen[p.Symbol] = true
			symbols = append(symbols, p.Symbol)
		}
	}

	quotes := map[string]decimal.Decimal{}
	if len(symbols) > 0 {
		fetched, err := s.source.Fetch(ctx, symbols)
		if err != nil {
			s.log.Warn(ctx, "price fetch failed, valuing at cost basis", "error", err)
		} else {
			quotes = fetched
		}
	}

	return Valuate(positionList, quotes)
}

// Valuate prices positions against the given quotes. Price resolution:
// crypto takes the quote for its symbol, equity takes its manual price;
// in both cases a missing price falls back to the cost basis.
func Valuate(positionList []models.Position, quotes map[string]decimal.Decimal) PortfolioValuation {
	out := PortfolioValuation{}

	for _, p := range positionList {
		price := p.CostBasisPrice
		switch p.AssetClass {
		case models.AssetClassCrypto:
			if quote, ok := quotes[p.Symbol]; ok {
				price = quote
			}
		case models.AssetClassEquity:
			if p.ManualCurrentPrice != nil {
				price = *p.ManualCurrentPrice
			}
		}

		invested := p.Quantity.Mul(p.CostBasisPrice)
		value := p.Quantity.Mul(price)

		pv := PositionValuation{
			Position:     p,
			CurrentPrice: price,
			Invested:     invested,
			MarketValue:  value,
			ProfitLoss:   value.Sub(invested),
		}
		out.Positions = append(out.Positions, pv)
		out.Invested = out.Invested.Add(invested)
		out.MarketValue = out.MarketValue.Add(value)
	}

	out.ProfitLoss = out.MarketValue.Sub(out.Invested)
	if out.Invested.IsPositive() {
		out.ProfitLossPercent = out.ProfitLoss.Div(out.Invested).Mul(hundred).Round(2)
	}
	return out
}

// FormatUSD renders a decimal amount as a US dollar string for display.
func FormatUSD(d decimal.Decimal) string {
	cents := d.Round(2).Mul(hundred).IntPart()
	return money.New(cents, money.USD).Display()
}
