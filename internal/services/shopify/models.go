package shopify

// GraphQL Admin API shapes for the paginated products query. Cursors are
// opaque and passed back verbatim.

// ProductsPage is one page of the product graph.
type ProductsPage struct {
	Edges       []ProductEdge
	HasNextPage bool
	EndCursor   string
}

type ProductEdge struct {
	Cursor string      `json:"cursor"`
	Node   ProductNode `json:"node"`
}

type ProductNode struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Handle        string            `json:"handle"`
	FeaturedImage *ImageNode        `json:"featuredImage"`
	Images        ImageConnection   `json:"images"`
	Variants      VariantConnection `json:"variants"`
}

type ImageConnection struct {
	Edges []ImageEdge `json:"edges"`
}

type ImageEdge struct {
	Node ImageNode `json:"node"`
}

type ImageNode struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type VariantConnection struct {
	Edges []VariantEdge `json:"edges"`
}

type VariantEdge struct {
	Node VariantNode `json:"node"`
}

type VariantNode struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Price string     `json:"price"`
	SKU   string     `json:"sku"`
	Image *ImageNode `json:"image"`
}

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type productConnection struct {
	PageInfo *pageInfo     `json:"pageInfo"`
	Edges    []ProductEdge `json:"edges"`
}

type productsData struct {
	Products *productConnection `json:"products"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   *productsData  `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// WebhookPayload is the subset of a product webhook body the bridge cares
// about; the payload only identifies the product, a full re-sync follows.
type WebhookPayload struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
}
