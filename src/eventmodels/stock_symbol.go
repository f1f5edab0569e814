package eventmodels

import (
	"encoding/json"
	"strings"
)

type StockSymbol string

func (s StockSymbol) String() string {
	return strings.ToUpper(string(s))
}

func (s StockSymbol) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func NewStockSymbol(s string) StockSymbol {
	return StockSymbol(strings.ToUpper(strings.TrimSpace(s)))
}

// NewStockSymbols upper-cases each ticker and drops blanks, keeping order.
func NewStockSymbols(tickers []string) []StockSymbol {
	symbols := make([]StockSymbol, 0, len(tickers))
	for _, t := range tickers {
		s := NewStockSymbol(t)
		if s == "" {
			continue
		}

		symbols = append(symbols, s)
	}

	return symbols
}
