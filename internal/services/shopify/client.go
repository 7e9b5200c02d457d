package shopify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shopsync/internal/logger"
)

const (
	// DefaultPageSize bounds one page of a full sync traversal.
	DefaultPageSize = 50
	// LookupPageSize bounds ad-hoc product lookups.
	LookupPageSize = 10

	apiVersion = "2023-10"
)

const productsQuery = `query products($limit: Int!, $cursor: String) {
  products(first: $limit, after: $cursor) {
    pageInfo { hasNextPage endCursor }
    edges {
      cursor
      node {
        id
        title
        handle
        featuredImage { id url altText width height }
        images(first: 50) {
          edges { node { id url altText width height } }
        }
        variants(first: 100) {
          edges { node { id title price sku image { id url altText width height } } }
        }
      }
    }
  }
}`

type Client struct {
	shopDomain  string
	accessToken string
	apiURL      string
	httpClient  *http.Client
	logger      *logger.Logger
}

func NewClient(shopDomain, accessToken string, logger *logger.Logger) *Client {
	return &Client{
		shopDomain:  shopDomain,
		accessToken: accessToken,
		apiURL:      fmt.Sprintf("https://%s.myshopify.com/admin/api/%s/graphql.json", shopDomain, apiVersion),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// FetchPage fetches one page of the product graph. An empty cursor requests
// the first page; subsequent cursors are passed back verbatim. One attempt
// per call; retrying is the caller's decision.
func (c *Client) FetchPage(limit int, cursor string) (*ProductsPage, error) {
	if c.accessToken == "" {
		return nil, &AuthError{Shop: c.shopDomain}
	}

	variables := map[string]interface{}{
		"limit": limit,
	}
	if cursor != "" {
		variables["cursor"] = cursor
	}

	body, err := json.Marshal(map[string]interface{}{
		"query":     productsQuery,
		"variables": variables,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequest("POST", c.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Shop: c.shopDomain, Cursor: cursor, Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{Shop: c.shopDomain, Cursor: cursor, Status: resp.StatusCode, Reason: string(respBody)}
	}

	var gqlResp graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return nil, &UpstreamError{Shop: c.shopDomain, Cursor: cursor, Reason: "malformed response body", Err: err}
	}

	if len(gqlResp.Errors) > 0 {
		return nil, &UpstreamError{Shop: c.shopDomain, Cursor: cursor, Reason: gqlResp.Errors[0].Message}
	}
	if gqlResp.Data == nil || gqlResp.Data.Products == nil || gqlResp.Data.Products.PageInfo == nil {
		return nil, &UpstreamError{Shop: c.shopDomain, Cursor: cursor, Reason: "response missing products payload"}
	}

	conn := gqlResp.Data.Products
	c.logger.Debug("Fetched %d products from %s (hasNextPage=%t)", len(conn.Edges), c.shopDomain, conn.PageInfo.HasNextPage)

	return &ProductsPage{
		Edges:       conn.Edges,
		HasNextPage: conn.PageInfo.HasNextPage,
		EndCursor:   conn.PageInfo.EndCursor,
	}, nil
}
