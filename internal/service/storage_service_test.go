package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalProviderUpload(t *testing.T) {
	p := &LocalProvider{Dir: t.TempDir()}

	url, err := p.Upload(context.Background(), "avatar/7/pic.png", strings.NewReader("png bytes"), 9, "image/png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "/uploads/avatar/7/pic.png" {
		t.Fatalf("unexpected url %q", url)
	}

	data, err := os.ReadFile(filepath.Join(p.Dir, "avatar", "7", "pic.png"))
	if err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
	if string(data) != "png bytes" {
		t.Fatalf("unexpected file content %q", data)
	}
}

func TestLocalProviderDelete(t *testing.T) {
	p := &LocalProvider{Dir: t.TempDir()}

	if _, err := p.Upload(context.Background(), "resume/1/cv.pdf", strings.NewReader("pdf"), 3, "application/pdf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Delete(context.Background(), "resume/1/cv.pdf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(p.Dir, "resume", "1", "cv.pdf")); !os.IsNotExist(err) {
		t.Fatalf("expected file gone, got %v", err)
	}
}

func TestLocalProviderGetURL(t *testing.T) {
	p := &LocalProvider{Dir: "./uploads"}
	if got := p.GetURL("avatar/2/x.jpg"); got != "/uploads/avatar/2/x.jpg" {
		t.Fatalf("unexpected url %q", got)
	}
}
