package receipt

import "strings"

type Category string

const (
	Produce    Category = "produce"
	Dairy      Category = "dairy"
	Bakery     Category = "bakery"
	Pantry     Category = "pantry"
	PaperGoods Category = "paper_goods"
	Other      Category = "other"
)

// categoryKeywords is checked in order; the first category with a keyword
// contained in the lowercased name wins.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{Produce, []string{"apple", "orange", "pepper", "tomato", "onion", "potato", "lemon", "jalapeno", "pear"}},
	{Dairy, []string{"yogurt", "greek"}},
	{Bakery, []string{"bread", "rolls"}},
	{Pantry, []string{"sauce"}},
	{PaperGoods, []string{"paper towels", "flora paper"}},
}

// Categories returns every category a name can map to, in lookup order with Other last.
func Categories() []Category {
	out := make([]Category, 0, len(categoryKeywords)+1)
	for _, ck := range categoryKeywords {
		out = append(out, ck.category)
	}
	return append(out, Other)
}

// Categorize maps an item name to its category by keyword containment.
func Categorize(name string) Category {
	low := strings.ToLower(name)
	for _, ck := range categoryKeywords {
		for _, kw := range ck.keywords {
			if strings.Contains(low, kw) {
				return ck.category
			}
		}
	}
	return Other
}
