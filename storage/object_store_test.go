package storage

import (
	"context"
	"errors"
	"io"
	"testing"
)

func TestLocalStorePutAndOpen(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "https://quotes.example/")
	if err != nil {
		t.Fatal(err)
	}

	url, err := store.Put(context.Background(), "quotations/RLE-107_Quotation.pdf", []byte("%PDF-1.3 first"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if want := "https://quotes.example/api/get-file?file=quotations%2FRLE-107_Quotation.pdf"; url != want {
		t.Errorf("url = %q, want %q", url, want)
	}

	// a second save replaces the object
	if _, err := store.Put(context.Background(), "quotations/RLE-107_Quotation.pdf", []byte("%PDF-1.3 second")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	f, err := store.Open("quotations/RLE-107_Quotation.pdf")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	got, _ := io.ReadAll(f)
	if string(got) != "%PDF-1.3 second" {
		t.Errorf("content = %q", got)
	}
}

func TestLocalStoreRejectsEscapes(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"", "../secret", "quotations/../../etc/passwd", "/etc/passwd", "a//b"} {
		if _, err := store.Resolve(name); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("Resolve(%q) = %v, want ErrInvalidPath", name, err)
		}
	}
	if _, err := store.Open("quotations/missing.pdf"); !errors.Is(err, ErrNoSuchFile) {
		t.Errorf("Open missing = %v, want ErrNoSuchFile", err)
	}
}
