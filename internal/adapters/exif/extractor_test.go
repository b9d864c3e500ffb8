package exif

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"photonotes/internal/domain"
)

type bytesHandle []byte

func (b bytesHandle) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}

type failingHandle struct{}

func (failingHandle) Open() (io.ReadCloser, error) {
	return nil, errors.New("permission denied")
}

func TestExtract_Failures(t *testing.T) {
	tests := []struct {
		name   string
		handle domain.Handle
	}{
		{"unreadable file", failingHandle{}},
		{"empty file", bytesHandle(nil)},
		{"not an image", bytesHandle("plain text, no exif here")},
		{"png signature", bytesHandle("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewExtractor().Extract(context.Background(), tt.handle, domain.ExtractableFields)
			if !errors.Is(err, domain.ErrExtractionFailed) {
				t.Fatalf("expected ErrExtractionFailed, got %v", err)
			}
			if out != nil {
				t.Errorf("expected no fields, got %v", out)
			}
		})
	}
}

func TestExtract_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewExtractor().Extract(ctx, bytesHandle(nil), domain.ExtractableFields); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestClean(t *testing.T) {
	tests := map[string]string{
		"Canon\x00\x00": "Canon",
		" EOS R5 ":      "EOS R5",
		"\x00":          "",
		"":              "",
	}
	for in, want := range tests {
		if got := clean(in); got != want {
			t.Errorf("clean(%q) = %q, want %q", in, got, want)
		}
	}
}
