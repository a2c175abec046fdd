package commands

import (
	"context"
	"fmt"
	"io"

	"receiptscan/pkg/config"
	"receiptscan/pkg/logger"
	"receiptscan/pkg/ocr"
	"receiptscan/pkg/receipt"
	"receiptscan/pkg/scanner"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ScanFunc scans one image path.
type ScanFunc func(ctx context.Context, path string) (receipt.Result, error)

// Execute runs the CLI and returns the process exit code. Failures are
// reported as a JSON error document on stdout with exit code 0, unless
// RECEIPTSCAN_STRICT_EXIT is set.
func Execute() int {
	cfg := config.Load()
	log := logger.Must(cfg.Env)
	defer func() { _ = log.Sync() }()

	scan := func(ctx context.Context, path string) (receipt.Result, error) {
		if err := cfg.Validate(); err != nil {
			return receipt.Result{}, err
		}
		rec, err := ocr.NewRecognizer(cfg.OCR, log)
		if err != nil {
			return receipt.Result{}, err
		}
		return scanner.New(rec, log).Scan(ctx, path)
	}

	failed := false
	root := NewRootCmd(scan, log, &failed)
	if err := root.Execute(); err != nil {
		// argument errors never reach RunE
		writeError(root.OutOrStdout(), log, err)
		failed = true
	}
	if failed && cfg.StrictExit {
		return 1
	}
	return 0
}

// NewRootCmd builds the receiptscan command. failed is set when an error
// document was written.
func NewRootCmd(scan ScanFunc, log *zap.Logger, failed *bool) *cobra.Command {
	if log == nil {
		log = zap.NewNop()
	}
	return &cobra.Command{
		Use:           "receiptscan <image-path>",
		Short:         "Extract grocery line items from a receipt image as JSON",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			res, err := safeScan(cmd.Context(), scan, args[0])
			if err != nil {
				writeError(out, log, err)
				*failed = true
				return nil
			}
			return receipt.WriteDocument(out, res)
		},
	}
}

func safeScan(ctx context.Context, scan ScanFunc, path string) (res receipt.Result, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()
	return scan(ctx, path)
}

func writeError(w io.Writer, log *zap.Logger, err error) {
	log.Error("scan failed", zap.Error(err))
	if werr := receipt.WriteDocument(w, receipt.NewErrorResult(err)); werr != nil {
		log.Error("write error document", zap.Error(werr))
	}
}
