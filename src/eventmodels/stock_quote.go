package eventmodels

// StockQuote is the latest close of a symbol and its change against the previous session.
type StockQuote struct {
	Symbol        StockSymbol `json:"symbol"`
	Price         float64     `json:"price"`
	ChangePercent float64     `json:"change_percent"`
}

// DailyQuotes maps symbols to quotes and remembers insertion order. The order
// decides which tile a quote is drawn on.
type DailyQuotes struct {
	order    []StockSymbol
	bySymbol map[StockSymbol]StockQuote
}

func NewDailyQuotes() *DailyQuotes {
	return &DailyQuotes{
		bySymbol: make(map[StockSymbol]StockQuote),
	}
}

// Set stores q under q.Symbol. A symbol that is already present keeps its
// position and has its value replaced.
func (d *DailyQuotes) Set(q StockQuote) {
	if d.bySymbol == nil {
		d.bySymbol = make(map[StockSymbol]StockQuote)
	}

	if _, found := d.bySymbol[q.Symbol]; !found {
		d.order = append(d.order, q.Symbol)
	}

	d.bySymbol[q.Symbol] = q
}

func (d *DailyQuotes) Get(symbol StockSymbol) (StockQuote, bool) {
	if d == nil {
		return StockQuote{}, false
	}

	q, found := d.bySymbol[symbol]
	return q, found
}

func (d *DailyQuotes) Len() int {
	if d == nil {
		return 0
	}

	return len(d.order)
}

// Items returns the quotes in insertion order.
func (d *DailyQuotes) Items() []StockQuote {
	if d == nil {
		return nil
	}

	items := make([]StockQuote, 0, len(d.order))
	for _, s := range d.order {
		items = append(items, d.bySymbol[s])
	}

	return items
}
