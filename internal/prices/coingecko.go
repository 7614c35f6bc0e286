package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCoinGeckoURL is the public CoinGecko API base.
const DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"

// coinIDs maps common ticker symbols to CoinGecko coin ids. Symbols not in
// the map are passed through lowercased, which works for coins whose id
// matches their ticker.
var coinIDs = map[string]string{
	"btc":   "bitcoin",
	"eth":   "ethereum",
	"sol":   "solana",
	"ada":   "cardano",
	"dot":   "polkadot",
	"matic": "polygon",
	"avax":  "avalanche-2",
	"link":  "chainlink",
	"uni":   "uniswap",
	"atom":  "cosmos",
	"xrp":   "ripple",
	"doge":  "dogecoin",
	"ltc":   "litecoin",
	"bnb":   "binancecoin",
	"usdt":  "tether",
	"usdc":  "usd-coin",
}

// CoinGecko fetches spot prices from the CoinGecko simple-price endpoint.
type CoinGecko struct {
	baseURL string
	client  *http.Client
}

// NewCoinGecko returns a CoinGecko source. An empty baseURL selects the
// public API; tests point it at a local server.
func NewCoinGecko(baseURL string, timeout time.Duration) *CoinGecko {
	if baseURL == "" {
		baseURL = DefaultCoinGeckoURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CoinGecko{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch resolves the given symbols to coin ids and queries their USD price.
// Unknown coins are simply missing from the result.
func (c *CoinGecko) Fetch(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	if len(symbols) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	ids := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		ids = append(ids, coinID(sym))
	}

	u := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		c.baseURL, url.QueryEscape(strings.Join(ids, ",")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build price request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price service returned status %d", resp.StatusCode)
	}

	var body map[string]struct {
		USD decimal.Decimal `json:"usd"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode price response: %w", err)
	}

	out := make(map[string]decimal.Decimal, len(symbols))
	for _, sym := range symbols {
		if quote, ok := body[coinID(sym)]; ok {
			out[strings.ToUpper(sym)] = quote.USD
		}
	}
	return out, nil
}

func coinID(symbol string) string {
	s := strings.ToLower(symbol)
	if id, ok := coinIDs[s]; ok {
		return id
	}
	return s
}
