package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetClass classifies a portfolio position.
type AssetClass string

const (
	AssetClassCrypto AssetClass = "CRYPTO"
	AssetClassEquity AssetClass = "EQUITY"
)

// Valid reports whether c is a known asset class.
func (c AssetClass) Valid() bool {
	return c == AssetClassCrypto || c == AssetClassEquity
}

// Position is one holding in an account's portfolio.
//
// CostBasisPrice is fixed at creation and never changes. ManualCurrentPrice
// is only meaningful for EQUITY positions; crypto prices come from an
// external source at read time and are never persisted.
type Position struct {
	ID                 string
	Owner              string
	Symbol             string
	AssetClass         AssetClass
	Quantity           decimal.Decimal
	CostBasisPrice     decimal.Decimal
	ManualCurrentPrice *decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
