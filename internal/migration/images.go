package migration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"crickstore/internal/logger"
	"crickstore/internal/services/woocommerce"
)

// AssetStore is the filesystem/object-storage surface the pipeline writes
// through.
type AssetStore interface {
	EnsureDir(relDir string) error
	WriteFile(relPath string, data []byte) error
	Exists(relPath string) bool
	PublicURL(relPath string) string
}

// DownloadResult is the outcome for a single image. A failed download is a
// normal outcome: the caller records OriginalURL instead of a local path.
type DownloadResult struct {
	Success     bool
	LocalPath   string
	OriginalURL string
	Error       string
	SizeBytes   int64
	Format      string
}

// bucketRule classifies a product into a storage bucket. Rules run top to
// bottom; the first match wins. This is a best-effort heuristic, not a
// guaranteed-correct classifier.
type bucketRule struct {
	name   string
	bucket string
	match  func(haystack string) bool
}

var batBrands = []string{"sg ", "ss ", "mrf ", "gm ", "ca ", "kookaburra", "gray-nicolls", "new balance", "dsc ", "sf "}

var bucketRules = []bucketRule{
	{
		// Batting gloves and pads share the word "bat" with bats; match
		// them first so the bats rule never swallows them.
		name:   "batting-gear",
		bucket: "batting-gear",
		match: func(h string) bool {
			return strings.Contains(h, "batting glove") || strings.Contains(h, "batting pad") ||
				strings.Contains(h, "batting leg guard")
		},
	},
	{
		name:   "wicket-keeping",
		bucket: "wicket-keeping",
		match: func(h string) bool {
			return strings.Contains(h, "wicket keeping") || strings.Contains(h, "wicket-keeping") ||
				strings.Contains(h, "keeping glove") || strings.Contains(h, "keeping pad")
		},
	},
	{
		name:   "bats-brand-prefix",
		bucket: "bats",
		match: func(h string) bool {
			if !strings.Contains(h, "bat") || strings.Contains(h, "batting") {
				return false
			}
			for _, brand := range batBrands {
				if strings.HasPrefix(h, brand) {
					return true
				}
			}
			return strings.Contains(h, " bat")
		},
	},
	{
		name:   "balls",
		bucket: "balls",
		match:  func(h string) bool { return strings.Contains(h, "ball") },
	},
	{
		name:   "bags",
		bucket: "bags",
		match:  func(h string) bool { return strings.Contains(h, "bag") || strings.Contains(h, "kitbag") },
	},
	{
		name:   "protection",
		bucket: "protection",
		match: func(h string) bool {
			for _, kw := range []string{"helmet", "pad", "guard", "protector", "thigh", "arm "} {
				if strings.Contains(h, kw) {
					return true
				}
			}
			return false
		},
	},
	{
		name:   "junior",
		bucket: "junior",
		match: func(h string) bool {
			return strings.Contains(h, "junior") || strings.Contains(h, "youth") || strings.Contains(h, "kids")
		},
	},
	{
		name:   "training",
		bucket: "training",
		match: func(h string) bool {
			return strings.Contains(h, "training") || strings.Contains(h, "practice") || strings.Contains(h, "coaching")
		},
	},
	{
		name:   "accessories",
		bucket: "accessories",
		match: func(h string) bool {
			for _, kw := range []string{"grip", "oil", "tape", "stump", "bail", "scorebook", "cone"} {
				if strings.Contains(h, kw) {
					return true
				}
			}
			return false
		},
	},
}

type ImagePipeline struct {
	store      AssetStore
	httpClient *http.Client
	logger     *logger.Logger
	delay      time.Duration
}

func NewImagePipeline(store AssetStore, delay time.Duration, logger *logger.Logger) *ImagePipeline {
	return &ImagePipeline{
		store: store,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
		delay:  delay,
	}
}

// ClassifyBucket picks the storage bucket for a product from its name and
// category names. Unmatched products land in "uncategorized".
func (p *ImagePipeline) ClassifyBucket(productName string, categories []string) string {
	haystack := strings.ToLower(productName + " " + strings.Join(categories, " "))

	for _, rule := range bucketRules {
		if rule.match(haystack) {
			p.logger.Debug("Product %q classified into %q by rule %q", productName, rule.bucket, rule.name)
			return rule.bucket
		}
	}

	p.logger.Debug("Product %q fell through to uncategorized", productName)
	return "uncategorized"
}

// DownloadAll pulls every image for one product, in order, primary first.
// Failures never abort the batch; they come back as Success=false results.
func (p *ImagePipeline) DownloadAll(ctx context.Context, productName, productSlug string, categories []string, images []woocommerce.Image) []DownloadResult {
	bucket := p.ClassifyBucket(productName, categories)
	if err := p.store.EnsureDir(bucket); err != nil {
		p.logger.Error("Failed to prepare bucket %q: %v", bucket, err)
	}

	results := make([]DownloadResult, 0, len(images))
	for i, img := range images {
		if i > 0 {
			p.pause(ctx)
		}

		base := productSlug + "-main"
		if i > 0 {
			base = fmt.Sprintf("%s-%d", productSlug, i)
		}

		results = append(results, p.downloadOne(ctx, bucket, base, img.Src))
	}
	return results
}

func (p *ImagePipeline) downloadOne(ctx context.Context, bucket, baseName, srcURL string) DownloadResult {
	fail := func(err error) DownloadResult {
		p.logger.Warn("Image download failed for %s, keeping remote URL: %v", srcURL, err)
		return DownloadResult{Success: false, OriginalURL: srcURL, Error: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", srcURL, nil)
	if err != nil {
		return fail(fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fail(fmt.Errorf("failed to make request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(fmt.Errorf("image request failed: %d", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(fmt.Errorf("failed to read image body: %w", err))
	}

	ext := extensionFor(srcURL, resp.Header.Get("Content-Type"))

	name, err := firstAvailable(baseName, func(candidate string) (bool, error) {
		return p.store.Exists(bucket + "/" + candidate + ext), nil
	})
	if err != nil {
		return fail(err)
	}

	relPath := bucket + "/" + name + ext
	if err := p.store.WriteFile(relPath, data); err != nil {
		return fail(err)
	}

	return DownloadResult{
		Success:     true,
		LocalPath:   p.store.PublicURL(relPath),
		OriginalURL: srcURL,
		SizeBytes:   int64(len(data)),
		Format:      strings.TrimPrefix(ext, "."),
	}
}

// extensionFor takes the extension from the URL path when it has one, falls
// back to the response content type, and defaults to .jpg.
func extensionFor(srcURL, contentType string) string {
	if u, err := url.Parse(srcURL); err == nil {
		if ext := strings.ToLower(path.Ext(u.Path)); ext != "" {
			return ext
		}
	}

	switch {
	case strings.Contains(contentType, "png"):
		return ".png"
	case strings.Contains(contentType, "gif"):
		return ".gif"
	case strings.Contains(contentType, "webp"):
		return ".webp"
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return ".jpg"
	}
	return ".jpg"
}

func (p *ImagePipeline) pause(ctx context.Context) {
	if p.delay <= 0 {
		return
	}
	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
	}
}
