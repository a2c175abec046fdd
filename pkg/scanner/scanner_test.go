package scanner

import (
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/shopspring/decimal"
)

type fakeRecognizer struct {
	text  string
	err   error
	calls int
}

func (f *fakeRecognizer) Recognize(_ context.Context, _ image.Image) (string, error) {
	f.calls++
	return f.text, f.err
}

func blankLoader(string) (*image.NRGBA, error) {
	return imaging.New(8, 8, color.NRGBA{255, 255, 255, 255}), nil
}

func TestScanParsesRecognizedText(t *testing.T) {
	rec := &fakeRecognizer{text: "Free Jalapeno Peppers(Qty:2)-$0.47\nOrder Total: $45.67\nNavel Orange (Q:2)- S2.89\n"}
	s := New(rec, nil).WithLoader(blankLoader)
	res, err := s.Scan(context.Background(), "receipt.png")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(res.Items) != 2 || !res.Total.Equal(decimal.RequireFromString("6.72")) {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestScanEmptyText(t *testing.T) {
	res, err := New(&fakeRecognizer{}, nil).WithLoader(blankLoader).Scan(context.Background(), "x.png")
	if err != nil {
		t.Fatal(err)
	}
	if res.Items == nil || len(res.Items) != 0 || !res.Total.IsZero() {
		t.Fatalf("expected empty result got %+v", res)
	}
}

func TestScanMissingImage(t *testing.T) {
	rec := &fakeRecognizer{}
	_, err := New(rec, nil).Scan(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	if err == nil || !strings.Contains(err.Error(), "open image") {
		t.Fatalf("expected open image error got %v", err)
	}
	if rec.calls != 0 {
		t.Fatalf("recognizer must not run after a load failure")
	}
}

func TestScanErrors(t *testing.T) {
	if _, err := New(&fakeRecognizer{}, nil).Scan(context.Background(), " "); !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("expected ErrEmptyPath got %v", err)
	}
	boom := errors.New("engine unavailable")
	_, err := New(&fakeRecognizer{err: boom}, nil).WithLoader(blankLoader).Scan(context.Background(), "x.png")
	if !errors.Is(err, boom) || !strings.HasPrefix(err.Error(), "recognize text: ") {
		t.Fatalf("expected wrapped engine error got %v", err)
	}
}
