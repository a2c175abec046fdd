package receipt

import (
	"strings"

	"go.uber.org/zap"
)

// Parser turns raw OCR text into a Result.
type Parser struct {
	logger *zap.Logger
}

// NewParser returns a Parser that logs each found item to logger. A nil
// logger discards the diagnostics.
func NewParser(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger}
}

// Parse classifies every line of text, extracts items from the candidates and
// totals them. Lines matching no rule contribute nothing.
func (p *Parser) Parse(text string) Result {
	var items []Item
	for _, line := range strings.Split(text, "\n") {
		if Classify(line) == Skip {
			continue
		}
		it, ok := Extract(line)
		if !ok {
			continue
		}
		p.logger.Info("found item",
			zap.String("name", it.Name),
			zap.Int("quantity", it.Quantity),
			zap.String("price", it.Price.StringFixed(2)),
			zap.String("category", string(it.Category)),
		)
		items = append(items, it)
	}
	return Aggregate(items)
}

// Parse is NewParser(nil).Parse(text).
func Parse(text string) Result {
	return NewParser(nil).Parse(text)
}
