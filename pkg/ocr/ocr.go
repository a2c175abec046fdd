package ocr

import (
	"context"
	"fmt"
	"image"

	"receiptscan/pkg/config"

	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
)

const (
	EngineGosseract = "gosseract"
	EngineCLI       = "cli"
)

// Recognizer turns a (grayscale) receipt image into raw multi-line text.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// NewRecognizer builds the engine selected by cfg.Engine.
func NewRecognizer(cfg config.OCRConfig, logger *zap.Logger) (Recognizer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Engine {
	case "", EngineGosseract:
		return &GosseractEngine{
			Language:       cfg.Language,
			TessdataPrefix: cfg.TessdataPrefix,
			PageSegMode:    cfg.PageSegMode,
		}, nil
	case EngineCLI:
		return &CLIEngine{
			Command:     cfg.TesseractCmd,
			Language:    cfg.Language,
			TessdataDir: cfg.TessdataPrefix,
			PageSegMode: cfg.PageSegMode,
			Runner:      execRunner{logger: logger},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, cfg.Engine)
	}
}

// GosseractEngine runs Tesseract in-process through its C API.
type GosseractEngine struct {
	Language       string // default "eng"
	TessdataPrefix string // empty: TESSDATA_PREFIX / compiled-in default
	PageSegMode    int    // 0: engine default
}

func (e *GosseractEngine) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()
	if e.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.TessdataPrefix); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	lang := e.Language
	if lang == "" {
		lang = "eng"
	}
	if err := client.SetLanguage(lang); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if e.PageSegMode > 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(e.PageSegMode)); err != nil {
			return "", fmt.Errorf("set page segmentation mode: %w", err)
		}
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr error: %w", err)
	}
	return text, nil
}
