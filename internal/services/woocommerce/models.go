package woocommerce

// Category represents a WooCommerce product category
type Category struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Parent      int64          `json:"parent"`
	Description string         `json:"description"`
	Image       *CategoryImage `json:"image"`
	Count       int            `json:"count"`
}

type CategoryImage struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Product represents a WooCommerce product. Prices come over the wire as
// strings, per the WooCommerce REST convention.
type Product struct {
	ID               int64         `json:"id"`
	Name             string        `json:"name"`
	Slug             string        `json:"slug"`
	Description      string        `json:"description"`
	ShortDescription string        `json:"short_description"`
	SKU              string        `json:"sku"`
	Price            string        `json:"price"`
	RegularPrice     string        `json:"regular_price"`
	SalePrice        string        `json:"sale_price"`
	StockQuantity    *int          `json:"stock_quantity"`
	StockStatus      string        `json:"stock_status"`
	Weight           string        `json:"weight"`
	Dimensions       Dimensions    `json:"dimensions"`
	Categories       []CategoryRef `json:"categories"`
	Images           []Image       `json:"images"`
	Attributes       []Attribute   `json:"attributes"`
}

type Dimensions struct {
	Length string `json:"length"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

// CategoryRef is the abbreviated category record embedded on a product.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Image struct {
	ID   int64  `json:"id"`
	Src  string `json:"src"`
	Name string `json:"name"`
	Alt  string `json:"alt"`
}

type Attribute struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// ProductFilter narrows a product listing request server-side.
type ProductFilter struct {
	CategoryID int64
	Search     string
}

// KeywordSet is the exhaustive match mode: a product is included when its
// name or slug contains any synonym, then dropped again when it contains
// any exclusion term. Used for logical categories spread across
// inconsistently named source categories.
type KeywordSet struct {
	Synonyms   []string
	Exclusions []string
}

// ConnectionInfo is the result of a connection probe against the source store.
type ConnectionInfo struct {
	OK            bool   `json:"ok"`
	CategoryCount int    `json:"category_count"`
	Info          string `json:"info"`
}
