package receipt

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Item is one purchased product line. Price is the unit price.
type Item struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
	Category Category
}

// LineTotal is price times quantity.
func (it Item) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

type itemJSON struct {
	Name     string      `json:"name"`
	Quantity int         `json:"quantity"`
	Price    json.Number `json:"price"`
	Category Category    `json:"category"`
}

// MarshalJSON writes price as a bare JSON number.
func (it Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemJSON{
		Name:     it.Name,
		Quantity: it.Quantity,
		Price:    json.Number(it.Price.String()),
		Category: it.Category,
	})
}

func (it *Item) UnmarshalJSON(data []byte) error {
	var raw itemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	price, err := decimal.NewFromString(raw.Price.String())
	if err != nil {
		return err
	}
	*it = Item{Name: raw.Name, Quantity: raw.Quantity, Price: price, Category: raw.Category}
	return nil
}

// Result is the document produced for a successfully scanned receipt.
type Result struct {
	Items []Item
	Total decimal.Decimal
}

type resultJSON struct {
	Items []Item      `json:"items"`
	Total json.Number `json:"total"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	items := r.Items
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(resultJSON{Items: items, Total: json.Number(r.Total.String())})
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	total, err := decimal.NewFromString(raw.Total.String())
	if err != nil {
		return err
	}
	*r = Result{Items: raw.Items, Total: total}
	return nil
}

// ErrorResult replaces Result when a scan fails for any reason.
type ErrorResult struct {
	Error string `json:"error"`
}

func NewErrorResult(err error) ErrorResult {
	return ErrorResult{Error: err.Error()}
}
