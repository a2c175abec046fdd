package receipt

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxItemPrice is the ceiling above which a matched price is treated as noise
// (order numbers, card digits) rather than a grocery item.
var MaxItemPrice = decimal.NewFromInt(50)

// Each pattern captures name, quantity and price. The currency prefix is "$"
// or "S", the usual OCR misread of "$".
var itemPatterns = []string{
	// Free Jalapeno Peppers(Qty:2)-$0.47
	`([^(]+?)\s*\(Qty:(\d+)\)\s*-\s*[$S](\d+\.\d{2})`,
	// Multi Grain Bread - 24oz (Qty:1)-$1.99
	`([^-]+?)-\s*[\w\s.]+?\(Qty:(\d+)\)-[$S](\d+\.\d{2})`,
	// Navel Orange (Q:2)- $2.89
	`([^(]+?)\s*\(Q:(\d+)\)-\s*[$S](\d+\.\d{2})`,
	// White Onion (Q:1) $1.08
	`([^(]+?)\s*\(Q:(\d+)\)\s*[$S](\d+\.\d{2})`,
}

var itemRules = compileRules(itemPatterns)

func compileRules(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

// Extract runs the item rules over line in priority order and returns the
// first match that yields a valid item. A match with an out-of-range price, a
// blank name or a zero quantity is rejected and the next rule is tried.
func Extract(line string) (Item, bool) {
	line = strings.TrimSpace(line)
	for _, re := range itemRules {
		m := re.FindStringSubmatch(line)
		if len(m) < 4 {
			continue
		}
		if it, ok := buildItem(m[1], m[2], m[3]); ok {
			return it, true
		}
	}
	return Item{}, false
}

func buildItem(rawName, rawQty, rawPrice string) (Item, bool) {
	name := CleanName(rawName)
	if name == "" {
		return Item{}, false
	}
	qty, err := strconv.Atoi(rawQty)
	if err != nil || qty < 1 {
		return Item{}, false
	}
	price, err := CleanPrice(rawPrice)
	if err != nil {
		return Item{}, false
	}
	if !price.IsPositive() || price.GreaterThan(MaxItemPrice) {
		return Item{}, false
	}
	return Item{
		Name:     name,
		Quantity: qty,
		Price:    price,
		Category: Categorize(name),
	}, true
}
