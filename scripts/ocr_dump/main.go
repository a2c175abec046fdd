package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"receiptscan/pkg/config"
	"receiptscan/pkg/ocr"
	"receiptscan/pkg/receipt"
)

// Prints the raw OCR text of a receipt and how every line was treated, to
// help tune the item rules against real scans.
func main() {
	img := flag.String("img", "", "receipt image to OCR")
	flag.Parse()
	if *img == "" {
		log.Fatal("-img is required")
	}
	p, _ := filepath.Abs(*img)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	rec, err := ocr.NewRecognizer(cfg.OCR, nil)
	if err != nil {
		log.Fatalf("ocr engine: %v", err)
	}
	gray, err := ocr.LoadGrayscale(p)
	if err != nil {
		log.Fatalf("%v", err)
	}
	text, err := rec.Recognize(context.Background(), gray)
	if err != nil {
		log.Fatalf("ocr error: %v", err)
	}

	fmt.Printf("engine=%s image=%s\n", cfg.OCR.Engine, p)
	fmt.Println(strings.Repeat("-", 50))
	fmt.Print(text)
	fmt.Println(strings.Repeat("-", 50))
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		decision := receipt.Classify(line).String()
		if decision == "candidate" {
			if it, ok := receipt.Extract(line); ok {
				decision = fmt.Sprintf("item name=%q qty=%d price=%s category=%s", it.Name, it.Quantity, it.Price.StringFixed(2), it.Category)
			} else {
				decision = "candidate, no rule matched"
			}
		}
		fmt.Printf("%3d %-60q %s\n", i+1, line, decision)
	}

	var buf bytes.Buffer
	if err := receipt.WriteDocument(&buf, receipt.Parse(text)); err != nil {
		log.Fatalf("encode: %v", err)
	}
	fmt.Print(buf.String())
	if err := receipt.ValidateDocument(buf.Bytes()); err != nil {
		log.Fatalf("document check failed: %v", err)
	}
}
