package scanner

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"receiptscan/pkg/ocr"
	"receiptscan/pkg/receipt"

	"go.uber.org/zap"
)

// ErrEmptyPath is returned when Scan is called without an image path.
var ErrEmptyPath = errors.New("image path is required")

// LoadFunc loads the image to recognize; ocr.LoadGrayscale in production.
type LoadFunc func(path string) (*image.NRGBA, error)

// Scanner runs one receipt image through loading, OCR and parsing.
type Scanner struct {
	load       LoadFunc
	recognizer ocr.Recognizer
	parser     *receipt.Parser
	logger     *zap.Logger
}

func New(recognizer ocr.Recognizer, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		load:       ocr.LoadGrayscale,
		recognizer: recognizer,
		parser:     receipt.NewParser(logger),
		logger:     logger,
	}
}

// WithLoader replaces the image loader.
func (s *Scanner) WithLoader(load LoadFunc) *Scanner {
	s.load = load
	return s
}

// Scan extracts the items of the receipt image at path. The first failure
// aborts the scan; lines that match no rule are not failures.
func (s *Scanner) Scan(ctx context.Context, path string) (receipt.Result, error) {
	if strings.TrimSpace(path) == "" {
		return receipt.Result{}, ErrEmptyPath
	}
	img, err := s.load(path)
	if err != nil {
		return receipt.Result{}, err
	}
	text, err := s.recognizer.Recognize(ctx, img)
	if err != nil {
		return receipt.Result{}, fmt.Errorf("recognize text: %w", err)
	}
	s.logger.Info("extracted text",
		zap.String("path", path),
		zap.Int("lines", strings.Count(text, "\n")+1),
		zap.String("text", text),
	)
	res := s.parser.Parse(text)
	s.logger.Debug("scan complete",
		zap.String("path", path),
		zap.Int("items", len(res.Items)),
		zap.String("total", res.Total.StringFixed(2)),
	)
	return res, nil
}
