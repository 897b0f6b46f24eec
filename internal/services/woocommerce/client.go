package woocommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"crickstore/internal/logger"
)

const defaultPageSize = 100

type Client struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	pageSize       int
	pageDelay      time.Duration
	httpClient     *http.Client
	logger         *logger.Logger
}

func NewClient(baseURL, consumerKey, consumerSecret string, pageSize int, logger *logger.Logger) *Client {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		pageSize:       pageSize,
		pageDelay:      200 * time.Millisecond,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// get performs a single page request. A non-2xx status fails only this
// request; retry policy belongs to the caller.
func (c *Client) get(ctx context.Context, path string, query map[string]string, out interface{}) error {
	url := fmt.Sprintf("%s/wp-json/wc/v3%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.consumerKey, c.consumerSecret)
	req.Header.Set("Content-Type", "application/json")

	q := req.URL.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed: %d - %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// FetchAllCategories pages through /products/categories until a short or
// empty page. The source sends no usable total-count header, so paging is
// deduced entirely from response size.
func (c *Client) FetchAllCategories(ctx context.Context) ([]Category, error) {
	var all []Category

	for page := 1; ; page++ {
		query := map[string]string{
			"page":     fmt.Sprintf("%d", page),
			"per_page": fmt.Sprintf("%d", c.pageSize),
		}

		var categories []Category
		if err := c.get(ctx, "/products/categories", query, &categories); err != nil {
			return nil, fmt.Errorf("failed to fetch categories page %d: %w", page, err)
		}

		all = append(all, categories...)
		c.logger.Debug("Fetched categories page %d (%d items)", page, len(categories))

		if len(categories) < c.pageSize {
			break
		}
		c.pause(ctx)
	}

	c.logger.Info("Fetched %d categories from source store", len(all))
	return all, nil
}

// FetchAllProducts pages through /products, optionally narrowed by filter.
func (c *Client) FetchAllProducts(ctx context.Context, filter *ProductFilter) ([]Product, error) {
	var all []Product

	for page := 1; ; page++ {
		query := map[string]string{
			"page":     fmt.Sprintf("%d", page),
			"per_page": fmt.Sprintf("%d", c.pageSize),
		}
		if filter != nil {
			if filter.CategoryID != 0 {
				query["category"] = fmt.Sprintf("%d", filter.CategoryID)
			}
			if filter.Search != "" {
				query["search"] = filter.Search
			}
		}

		var products []Product
		if err := c.get(ctx, "/products", query, &products); err != nil {
			return nil, fmt.Errorf("failed to fetch products page %d: %w", page, err)
		}

		all = append(all, products...)
		c.logger.Debug("Fetched products page %d (%d items)", page, len(products))

		if len(products) < c.pageSize {
			break
		}
		c.pause(ctx)
	}

	c.logger.Info("Fetched %d products from source store", len(all))
	return all, nil
}

// FetchProductsByCategoryKeyword collects products from every category whose
// name or slug contains keyword (broad inclusion mode), deduplicated by
// product id.
func (c *Client) FetchProductsByCategoryKeyword(ctx context.Context, keyword string) ([]Product, error) {
	categories, err := c.FetchAllCategories(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(keyword)
	var all []Product
	seen := make(map[int64]bool)

	for _, cat := range categories {
		if !strings.Contains(strings.ToLower(cat.Name), needle) &&
			!strings.Contains(strings.ToLower(cat.Slug), needle) {
			continue
		}
		c.logger.Info("Category %q matched keyword %q", cat.Name, keyword)

		products, err := c.FetchAllProducts(ctx, &ProductFilter{CategoryID: cat.ID})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch products for category %q: %w", cat.Name, err)
		}
		for _, p := range products {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			all = append(all, p)
		}
	}

	return all, nil
}

// FetchProductsByKeywordSet is the exhaustive match mode: fetch everything,
// include on any synonym hit, then drop on any exclusion hit. Every rule
// that fires is logged so a run can be audited afterwards.
func (c *Client) FetchProductsByKeywordSet(ctx context.Context, set KeywordSet) ([]Product, error) {
	products, err := c.FetchAllProducts(ctx, nil)
	if err != nil {
		return nil, err
	}
	return c.FilterByKeywordSet(products, set), nil
}

// FilterByKeywordSet applies a KeywordSet to an already-fetched batch.
func (c *Client) FilterByKeywordSet(products []Product, set KeywordSet) []Product {
	var matched []Product

	for _, p := range products {
		haystack := strings.ToLower(p.Name + " " + p.Slug)

		included := ""
		for _, syn := range set.Synonyms {
			if strings.Contains(haystack, strings.ToLower(syn)) {
				included = syn
				break
			}
		}
		if included == "" {
			continue
		}

		excluded := ""
		for _, term := range set.Exclusions {
			if strings.Contains(haystack, strings.ToLower(term)) {
				excluded = term
				break
			}
		}
		if excluded != "" {
			c.logger.Info("Product %q matched synonym %q but excluded by term %q", p.Name, included, excluded)
			continue
		}

		c.logger.Info("Product %q included by synonym %q", p.Name, included)
		matched = append(matched, p)
	}

	return matched
}

// TestConnection probes the store with a single-item category request.
func (c *Client) TestConnection(ctx context.Context) (*ConnectionInfo, error) {
	var categories []Category
	query := map[string]string{"page": "1", "per_page": "1"}

	if err := c.get(ctx, "/products/categories", query, &categories); err != nil {
		return &ConnectionInfo{OK: false, Info: err.Error()}, err
	}

	info := &ConnectionInfo{
		OK:            true,
		CategoryCount: len(categories),
		Info:          fmt.Sprintf("connected to %s", c.baseURL),
	}
	return info, nil
}

func (c *Client) pause(ctx context.Context) {
	select {
	case <-time.After(c.pageDelay):
	case <-ctx.Done():
	}
}
