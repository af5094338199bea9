package pdfgen

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"quotations/models"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.NRGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func imageServer(t *testing.T, routes map[string][]byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func serverHost(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	return u.Hostname()
}

func TestDecodeImageDownscalesAndClassifies(t *testing.T) {
	cases := []struct {
		name         string
		w, h         int
		wantW, wantH int
		wide         bool
	}{
		{name: "large wide", w: 1600, h: 600, wantW: 800, wantH: 300, wide: true},
		{name: "small tall", w: 300, h: 500, wantW: 300, wantH: 500, wide: false},
		{name: "square", w: 400, h: 400, wantW: 400, wantH: 400, wide: false},
		{name: "just over ratio", w: 131, h: 100, wantW: 131, wantH: 100, wide: true},
		{name: "exact ratio", w: 130, h: 100, wantW: 130, wantH: 100, wide: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			asset, err := DecodeImage(pngBytes(t, tc.w, tc.h))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if asset.Width != tc.w || asset.Height != tc.h {
				t.Errorf("intrinsic size %dx%d, want %dx%d", asset.Width, asset.Height, tc.w, tc.h)
			}
			if asset.IsWide != tc.wide {
				t.Errorf("IsWide = %v, want %v", asset.IsWide, tc.wide)
			}
			cfg, err := jpeg.DecodeConfig(bytes.NewReader(asset.Data))
			if err != nil {
				t.Fatalf("re-encoded data is not jpeg: %v", err)
			}
			if cfg.Width != tc.wantW || cfg.Height != tc.wantH {
				t.Errorf("encoded size %dx%d, want %dx%d", cfg.Width, cfg.Height, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestDecodeImageRejectsGarbage(t *testing.T) {
	if _, err := DecodeImage([]byte("not an image")); err == nil {
		t.Fatal("expected an error")
	}
}

func TestLoadIsolatesFailures(t *testing.T) {
	srv := imageServer(t, map[string][]byte{
		"/logo.png": pngBytes(t, 300, 100),
		"/a.png":    pngBytes(t, 900, 300),
		"/c.png":    pngBytes(t, 200, 400),
	})
	core, logs := observer.New(zapcore.WarnLevel)
	loader := NewAssetLoader(&SourceFetcher{Client: srv.Client(), Timeout: 5 * time.Second, AllowedHosts: []string{serverHost(t, srv)}}, zap.New(core))

	items := []models.LineItem{
		{ID: "a", Name: "A", ImageURL: srv.URL + "/a.png"},
		{ID: "b", Name: "B", ImageURL: srv.URL + "/missing.png"},
		{ID: "c", Name: "C", ImageURL: srv.URL + "/c.png"},
		{ID: "d", Name: "D"},
	}
	assets := loader.Load(context.Background(), srv.URL+"/logo.png", items)

	if assets.Logo == nil || assets.Logo.Name != LogoAssetName {
		t.Fatalf("logo not loaded: %+v", assets.Logo)
	}
	if len(assets.Items) != 2 {
		t.Fatalf("got %d item assets, want 2", len(assets.Items))
	}
	if !assets.Items["a"].IsWide || assets.Items["c"].IsWide {
		t.Error("aspect classification is wrong")
	}
	if _, ok := assets.Items["b"]; ok {
		t.Error("failed item should have no asset")
	}
	if assets.Items["a"].Name != "item:a" {
		t.Errorf("asset name = %q", assets.Items["a"].Name)
	}

	failures := logs.FilterMessage("could not load item image").All()
	if len(failures) != 1 {
		t.Fatalf("got %d logged failures, want 1", len(failures))
	}
	fields := failures[0].ContextMap()
	if fields["item_id"] != "b" || fields["url"] != srv.URL+"/missing.png" {
		t.Errorf("unexpected log fields: %v", fields)
	}
}

func TestLoadMissingLogoIsNotFatal(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	loader := NewAssetLoader(&SourceFetcher{Root: t.TempDir()}, zap.New(core))

	assets := loader.Load(context.Background(), "quotation-logo.jpg", nil)
	if assets.Logo != nil {
		t.Error("logo should be absent")
	}
	if logs.FilterMessage("could not load quotation logo").Len() != 1 {
		t.Error("logo failure not logged")
	}
}

func TestSourceFetcherReadsUnderRoot(t *testing.T) {
	root := t.TempDir()
	want := pngBytes(t, 10, 10)
	if err := os.WriteFile(filepath.Join(root, "quotation-logo.png"), want, 0o644); err != nil {
		t.Fatal(err)
	}
	f := &SourceFetcher{Root: root}

	got, err := f.Fetch(context.Background(), "/quotation-logo.png")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Error("file content differs")
	}

	if _, err := f.Fetch(context.Background(), "../../etc/passwd"); err == nil {
		t.Error("path outside root should not resolve")
	}
}

func TestSourceFetcherTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	f := &SourceFetcher{Client: srv.Client(), Timeout: 50 * time.Millisecond, AllowedHosts: []string{serverHost(t, srv)}}
	if _, err := f.Fetch(context.Background(), srv.URL+"/slow.png"); err == nil {
		t.Fatal("expected a timeout error")
	}
}

func TestHostAllowed(t *testing.T) {
	f := &SourceFetcher{AllowedHosts: []string{"quotes.example", "*.cdn.example"}}
	cases := []struct {
		raw  string
		want bool
	}{
		{"https://quotes.example/logo.png", true},
		{"https://QUOTES.example:8443/logo.png", true},
		{"https://img.cdn.example/a.png", true},
		{"https://cdn.example/a.png", false},
		{"https://evilcdn.example/a.png", false},
		{"http://169.254.169.254/latest/meta-data", false},
		{"http://127.0.0.1:9000/api/get-file", false},
		{"ftp://quotes.example/a.png", false},
	}
	for _, tc := range cases {
		u, err := url.Parse(tc.raw)
		if err != nil {
			t.Fatal(err)
		}
		if got := f.HostAllowed(u); got != tc.want {
			t.Errorf("HostAllowed(%s) = %v, want %v", tc.raw, got, tc.want)
		}
	}
	if (&SourceFetcher{}).HostAllowed(&url.URL{Scheme: "https", Host: "quotes.example"}) {
		t.Error("empty allow-list must refuse remote hosts")
	}
}

func TestSourceFetcherRefusesHostBeforeDialing(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	f := &SourceFetcher{Client: srv.Client(), AllowedHosts: []string{"quotes.example"}}
	_, err := f.Fetch(context.Background(), srv.URL+"/a.png")
	if !errors.Is(err, ErrHostNotAllowed) {
		t.Fatalf("err = %v, want ErrHostNotAllowed", err)
	}
	if hits.Load() != 0 {
		t.Error("refused host was contacted")
	}
}

func TestSourceFetcherRefusesRedirectToOtherHost(t *testing.T) {
	var inner atomic.Int32
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner.Add(1)
	}))
	defer target.Close()
	port := target.URL[strings.LastIndex(target.URL, ":")+1:]

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://localhost:"+port+"/secret", http.StatusFound)
	}))
	defer srv.Close()

	f := &SourceFetcher{Client: srv.Client(), AllowedHosts: []string{serverHost(t, srv)}}
	if _, err := f.Fetch(context.Background(), srv.URL+"/a.png"); !errors.Is(err, ErrHostNotAllowed) {
		t.Fatalf("err = %v, want ErrHostNotAllowed", err)
	}
	if inner.Load() != 0 {
		t.Error("redirect target was contacted")
	}
}
