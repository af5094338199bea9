package pdfgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"quotations/models"
)

const (
	MaxImageWidth = 800
	JPEGQuality   = 85
	WideRatio     = 1.3

	LogoAssetName = "logo"

	maxImageBytes = 20 << 20
)

// ImageAsset is a decoded, size-bounded image ready to embed.
// Width and Height are the intrinsic source dimensions.
type ImageAsset struct {
	Name   string
	Data   []byte
	Format string // gofpdf image type, JPEG when empty
	Width  int
	Height int
	IsWide bool
}

func (a *ImageAsset) imageType() string {
	if a.Format == "" {
		return "JPEG"
	}
	return a.Format
}

// Assets is the per-generation image cache.
type Assets struct {
	Logo  *ImageAsset
	Items map[string]*ImageAsset
	Extra map[string]*ImageAsset
}

func NewAssets() *Assets {
	return &Assets{Items: map[string]*ImageAsset{}, Extra: map[string]*ImageAsset{}}
}

// Lookup finds an asset by its registration name.
func (a *Assets) Lookup(name string) (*ImageAsset, bool) {
	if a == nil {
		return nil, false
	}
	if a.Logo != nil && a.Logo.Name == name {
		return a.Logo, true
	}
	for _, set := range []map[string]*ImageAsset{a.Items, a.Extra} {
		for _, im := range set {
			if im.Name == name {
				return im, true
			}
		}
	}
	return nil, false
}

// ItemKey identifies a line item in the asset map. Items without an id fall back to their position.
func ItemKey(index int, item models.LineItem) string {
	if item.ID != "" {
		return item.ID
	}
	return fmt.Sprintf("item-%d", index)
}

// Fetcher dereferences an image reference into raw bytes.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// ErrHostNotAllowed is returned for remote images outside SourceFetcher.AllowedHosts.
var ErrHostNotAllowed = errors.New("image host not allowed")

// SourceFetcher reads http(s) URLs over the network and anything else from Root.
// Remote URLs are fetched only from AllowedHosts, which holds exact host names
// or "*.example.com" suffix patterns. An empty list disables remote fetches.
type SourceFetcher struct {
	Client       *http.Client
	Root         string
	Timeout      time.Duration // per fetch; zero means no limit
	AllowedHosts []string
}

// HostAllowed reports whether u points at one of the allowed hosts.
func (f *SourceFetcher) HostAllowed(u *url.URL) bool {
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	for _, allowed := range f.AllowedHosts {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if suffix, ok := strings.CutPrefix(allowed, "*."); ok {
			if strings.HasSuffix(host, "."+suffix) {
				return true
			}
			continue
		}
		if host == allowed {
			return true
		}
	}
	return false
}

func (f *SourceFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return f.fetchURL(ctx, ref)
	}
	path := filepath.Join(f.Root, filepath.Clean("/"+strings.TrimPrefix(ref, "file://")))
	return os.ReadFile(path)
}

func (f *SourceFetcher) fetchURL(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if !f.HostAllowed(u) {
		return nil, fmt.Errorf("fetch %s: %w", u.Host, ErrHostNotAllowed)
	}

	client := http.Client{}
	if f.Client != nil {
		client = *f.Client
	}
	// redirects must stay on allowed hosts too
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= 5 {
			return errors.New("too many redirects")
		}
		if !f.HostAllowed(req.URL) {
			return fmt.Errorf("redirect to %s: %w", req.URL.Host, ErrHostNotAllowed)
		}
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", u.Host, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}

// AssetLoader fetches the logo and item images for one document.
type AssetLoader struct {
	fetcher Fetcher
	log     *zap.Logger
}

func NewAssetLoader(fetcher Fetcher, log *zap.Logger) *AssetLoader {
	if log == nil {
		log = zap.NewNop()
	}
	return &AssetLoader{fetcher: fetcher, log: log}
}

// Load fetches every image concurrently. Failures are logged and leave the
// corresponding asset absent; Load itself never fails.
func (l *AssetLoader) Load(ctx context.Context, logoRef string, items []models.LineItem) *Assets {
	assets := NewAssets()
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	if logoRef != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			asset, err := l.loadImage(ctx, logoRef)
			if err != nil {
				l.log.Warn("could not load quotation logo", zap.String("url", logoRef), zap.Error(err))
				return
			}
			asset.Name = LogoAssetName
			mu.Lock()
			assets.Logo = asset
			mu.Unlock()
		}()
	}

	for i, item := range items {
		if item.ImageURL == "" {
			continue
		}
		key := ItemKey(i, item)
		wg.Add(1)
		go func(key, ref string) {
			defer wg.Done()
			asset, err := l.loadImage(ctx, ref)
			if err != nil {
				l.log.Warn("could not load item image", zap.String("item_id", key), zap.String("url", ref), zap.Error(err))
				return
			}
			asset.Name = "item:" + key
			mu.Lock()
			assets.Items[key] = asset
			mu.Unlock()
		}(key, item.ImageURL)
	}

	wg.Wait()
	return assets
}

func (l *AssetLoader) loadImage(ctx context.Context, ref string) (*ImageAsset, error) {
	if l.fetcher == nil {
		return nil, errors.New("no image fetcher configured")
	}
	raw, err := l.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	return DecodeImage(raw)
}

// DecodeImage decodes raw, flattens it onto white, caps its width at
// MaxImageWidth and re-encodes it as JPEG.
func DecodeImage(raw []byte) (*ImageAsset, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, errors.New("decode image: empty bounds")
	}

	dw, dh := w, h
	if w > MaxImageWidth {
		dw = MaxImageWidth
		dh = int(math.Max(1, math.Round(float64(h)*MaxImageWidth/float64(w))))
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, xdraw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	return &ImageAsset{
		Data:   buf.Bytes(),
		Width:  w,
		Height: h,
		IsWide: float64(w) > float64(h)*WideRatio,
	}, nil
}
