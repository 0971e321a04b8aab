package providers

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	_ "image/png"
	"time"

	"golang.org/x/image/draw"

	"github.com/haasonsaas/acc/internal/backoff"
)

func base64Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// policyFromDelay derives a backoff.BackoffPolicy from a provider's
// configured base retry delay, keeping the per-provider config surface
// (a single RetryDelay field) while reusing the shared jittered
// exponential backoff calculation for every backend's retry loop.
func policyFromDelay(delay time.Duration) backoff.BackoffPolicy {
	p := backoff.DefaultPolicy()
	p.InitialMs = float64(delay.Milliseconds())
	if p.InitialMs <= 0 {
		p.InitialMs = 100
	}
	return p
}

// DownscaleJPEG resizes img to fit within maxDim on its longest side and
// re-encodes as JPEG, keeping vision payloads small for "detail:low"
// requests (§4.3, §9 Open Question on VisionDetail).
func DownscaleJPEG(src []byte, maxDim int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return src, nil
	}

	scale := float64(maxDim) / float64(w)
	if h > w {
		scale = float64(maxDim) / float64(h)
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
