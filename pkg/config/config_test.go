package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"ENV", "RECEIPT_OCR_ENGINE", "TESSERACT_CMD", "RECEIPT_OCR_LANG", "RECEIPT_OCR_PSM", "RECEIPT_ADDR", "JWT_SECRET", "RECEIPT_MAX_UPLOAD_BYTES", "RECEIPTSCAN_STRICT_EXIT"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	if c.OCR.Engine != "gosseract" || c.OCR.TesseractCmd != "tesseract" || c.OCR.Language != "eng" || c.OCR.PageSegMode != 0 {
		t.Fatalf("unexpected ocr defaults %+v", c.OCR)
	}
	if c.Server.Addr != ":8081" || c.Server.MaxUploadBytes != 5*1024*1024 || c.Server.JWTSecret != "" {
		t.Fatalf("unexpected server defaults %+v", c.Server)
	}
	if c.StrictExit {
		t.Fatalf("strict exit should default off")
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("RECEIPT_OCR_ENGINE", "cli")
	t.Setenv("TESSERACT_CMD", `C:\Program Files\Tesseract-OCR\tesseract.exe`)
	t.Setenv("RECEIPT_OCR_PSM", "6")
	t.Setenv("RECEIPTSCAN_STRICT_EXIT", "true")
	t.Setenv("RECEIPT_MAX_UPLOAD_BYTES", "not-a-number")
	c := FromEnv()
	if c.OCR.Engine != "cli" || c.OCR.TesseractCmd != `C:\Program Files\Tesseract-OCR\tesseract.exe` || c.OCR.PageSegMode != 6 {
		t.Fatalf("overrides not applied %+v", c.OCR)
	}
	if !c.StrictExit {
		t.Fatalf("strict exit not applied")
	}
	if c.Server.MaxUploadBytes != 5*1024*1024 {
		t.Fatalf("bad int should fall back to default, got %d", c.Server.MaxUploadBytes)
	}
}

func TestValidate(t *testing.T) {
	bad := []func(c *Config){
		func(c *Config) { c.OCR.Engine = "easyocr" },
		func(c *Config) { c.OCR.Engine = "cli"; c.OCR.TesseractCmd = " " },
		func(c *Config) { c.OCR.PageSegMode = 14 },
		func(c *Config) { c.Server.MaxUploadBytes = 0 },
	}
	for i, mutate := range bad {
		c := &Config{OCR: OCRConfig{Engine: "gosseract", TesseractCmd: "tesseract"}, Server: ServerConfig{MaxUploadBytes: 1}}
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("RECEIPT_OCR_LANG=deu\nRECEIPT_ADDR=:9000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	t.Setenv("RECEIPT_OCR_LANG", "")
	os.Unsetenv("RECEIPT_OCR_LANG")
	t.Setenv("RECEIPT_ADDR", ":7000")
	c := Load()
	if c.OCR.Language != "deu" {
		t.Fatalf(".env value not loaded: %q", c.OCR.Language)
	}
	if c.Server.Addr != ":7000" {
		t.Fatalf("environment should win over .env, got %q", c.Server.Addr)
	}
}
