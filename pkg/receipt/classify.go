package receipt

import "strings"

// LineClass is the classifier's verdict for one line of OCR text.
type LineClass int

const (
	Skip LineClass = iota
	Candidate
)

func (c LineClass) String() string {
	if c == Candidate {
		return "candidate"
	}
	return "skip"
}

// skipWords mark headers, totals and account metadata printed around the item list.
var skipWords = []string{
	"order", "total", "payment", "summary", "savings", "subtotal",
	"complete", "shopping", "visa", "method", "preferences", "profile",
	"receipt", "program", "services",
}

// Classify reports whether line may hold an item. A product name that merely
// contains a skip word (e.g. "Totally Nuts") is discarded too.
func Classify(line string) LineClass {
	line = strings.TrimSpace(line)
	if line == "" {
		return Skip
	}
	low := strings.ToLower(line)
	for _, w := range skipWords {
		if strings.Contains(low, w) {
			return Skip
		}
	}
	return Candidate
}
