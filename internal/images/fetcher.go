package images

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"net/http"
	"time"

	"church-calendar/pkg/logger"

	"go.uber.org/zap"
)

const (
	// Bodies smaller than this are share-page stubs or error documents,
	// not real images.
	minImageBytes = 1024

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// placeholder is a flat gray card substituted whenever a fetch fails.
var placeholder []byte

func init() {
	img := image.NewRGBA(image.Rect(0, 0, 320, 180))
	gray := color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
	for y := 0; y < 180; y++ {
		for x := 0; x < 320; x++ {
			img.SetRGBA(x, y, gray)
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		panic(err)
	}
	placeholder = buf.Bytes()
}

// Placeholder returns the fixed stand-in image bytes.
func Placeholder() []byte {
	return placeholder
}

type Fetcher struct {
	client *http.Client
	log    *zap.Logger
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 15 * time.Second},
		log:    logger.WithComponent("images"),
	}
}

// Fetch downloads the image behind url with one bounded-time request.
// An empty url means no image and returns nil. Every failure mode — bad
// url, network error, non-200 status, undersized body — substitutes the
// placeholder so one broken graphic never sinks a sync pass.
func (f *Fetcher) Fetch(ctx context.Context, url string) []byte {
	if url == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.log.Warn("bad image url, using placeholder", zap.String("url", url), zap.Error(err))
		return placeholder
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Warn("image fetch failed, using placeholder", zap.String("url", url), zap.Error(err))
		return placeholder
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.log.Warn("image fetch non-OK, using placeholder",
			zap.String("url", url), zap.Int("status", resp.StatusCode))
		return placeholder
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		f.log.Warn("image read failed, using placeholder", zap.String("url", url), zap.Error(err))
		return placeholder
	}
	if len(body) < minImageBytes {
		f.log.Warn("image body too small, using placeholder",
			zap.String("url", url), zap.Int("bytes", len(body)))
		return placeholder
	}

	return body
}
