package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// Runner lets tests stub the external tesseract process.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct {
	logger *zap.Logger
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	dur := time.Since(start)
	if err != nil {
		r.logger.Error("exec failed",
			zap.String("cmd", name),
			zap.Int64("duration_ms", dur.Milliseconds()),
			zap.Error(err),
			zap.String("stderr", Snippet(errb.String(), 8<<10)),
		)
	} else {
		r.logger.Debug("exec ok",
			zap.String("cmd", name),
			zap.String("args", strings.Join(args, " ")),
			zap.Int64("duration_ms", dur.Milliseconds()),
			zap.Int("stdout_bytes", out.Len()),
		)
	}
	return out.Bytes(), errb.Bytes(), err
}

// CLIEngine shells out to a tesseract executable at a configurable path.
type CLIEngine struct {
	Command     string // binary name or absolute path; default "tesseract"
	Language    string // default "eng"
	TessdataDir string
	PageSegMode int
	Runner      Runner
}

func (e *CLIEngine) Recognize(ctx context.Context, img image.Image) (string, error) {
	tmpFile, err := os.CreateTemp("", "receipt-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp image: %w", err)
	}
	tmp := tmpFile.Name()
	_ = tmpFile.Close()
	defer os.Remove(tmp)
	if err := imaging.Save(img, tmp); err != nil {
		return "", fmt.Errorf("save temp image: %w", err)
	}

	out, errb, err := e.runner().Run(ctx, e.command(), e.args(tmp)...)
	if err != nil {
		if msg := strings.TrimSpace(string(errb)); msg != "" {
			return "", fmt.Errorf("tesseract: %w: %s", err, Snippet(msg, 300))
		}
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil
}

// args builds: <image> stdout -l <lang> [--psm n] [--tessdata-dir dir]
func (e *CLIEngine) args(imagePath string) []string {
	lang := e.Language
	if lang == "" {
		lang = "eng"
	}
	args := []string{imagePath, "stdout", "-l", lang}
	if e.PageSegMode > 0 {
		args = append(args, "--psm", strconv.Itoa(e.PageSegMode))
	}
	if e.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.TessdataDir)
	}
	return args
}

func (e *CLIEngine) command() string {
	if e.Command == "" {
		return "tesseract"
	}
	return e.Command
}

func (e *CLIEngine) runner() Runner {
	if e.Runner == nil {
		return execRunner{logger: zap.NewNop()}
	}
	return e.Runner
}
