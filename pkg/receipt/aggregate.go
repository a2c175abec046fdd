package receipt

import "github.com/shopspring/decimal"

// Aggregate totals items exactly; 19 items at 0.47 sum to 8.93, not 8.930000000000001.
func Aggregate(items []Item) Result {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	if items == nil {
		items = []Item{}
	}
	return Result{Items: items, Total: total}
}
