package shopify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsync/internal/logger"
)

const pageBody = `{
  "data": {
    "products": {
      "pageInfo": {"hasNextPage": true, "endCursor": "eyJsYXN0X2lkIjo0Mn0="},
      "edges": [
        {
          "cursor": "eyJsYXN0X2lkIjo0Mn0=",
          "node": {
            "id": "gid://shopify/Product/42",
            "title": "Shirt",
            "handle": "shirt",
            "featuredImage": {"id": "gid://shopify/ProductImage/1", "url": "https://cdn.example.com/1.png", "altText": "front", "width": 800, "height": 600},
            "images": {"edges": [{"node": {"id": "gid://shopify/ProductImage/1", "url": "https://cdn.example.com/1.png"}}]},
            "variants": {"edges": [{"node": {"id": "gid://shopify/ProductVariant/7", "title": "Default", "price": "19.99", "sku": "SHIRT-1"}}]}
          }
        }
      ]
    }
  }
}`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("demo", "token", logger.New("error"))
	client.apiURL = server.URL
	return client
}

func TestFetchPageParsesProducts(t *testing.T) {
	var gotCursor interface{}
	var gotToken string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Shopify-Access-Token")

		var body struct {
			Variables map[string]interface{} `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotCursor = body.Variables["cursor"]

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(pageBody))
	})

	page, err := client.FetchPage(50, "")
	require.NoError(t, err)

	assert.Equal(t, "token", gotToken)
	assert.Nil(t, gotCursor, "first page must not send a cursor")

	assert.True(t, page.HasNextPage)
	assert.Equal(t, "eyJsYXN0X2lkIjo0Mn0=", page.EndCursor)
	require.Len(t, page.Edges, 1)

	node := page.Edges[0].Node
	assert.Equal(t, "gid://shopify/Product/42", node.ID)
	assert.Equal(t, "Shirt", node.Title)
	require.NotNil(t, node.FeaturedImage)
	assert.Equal(t, "front", node.FeaturedImage.AltText)
	require.Len(t, node.Variants.Edges, 1)
	assert.Equal(t, "19.99", node.Variants.Edges[0].Node.Price)
}

func TestFetchPagePassesCursorVerbatim(t *testing.T) {
	var gotCursor interface{}
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Variables map[string]interface{} `json:"variables"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotCursor = body.Variables["cursor"]
		w.Write([]byte(pageBody))
	})

	_, err := client.FetchPage(50, "opaque==cursor//value")
	require.NoError(t, err)
	assert.Equal(t, "opaque==cursor//value", gotCursor)
}

func TestFetchPageMissingToken(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(server.Close)

	client := NewClient("demo", "", logger.New("error"))
	client.apiURL = server.URL

	_, err := client.FetchPage(50, "")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "demo", authErr.Shop)
	assert.False(t, called, "auth must fail before any network call")
}

func TestFetchPageUpstreamStatus(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	})

	_, err := client.FetchPage(50, "cursor-3")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusTooManyRequests, ue.Status)
	assert.Equal(t, "demo", ue.Shop)
	assert.Equal(t, "cursor-3", ue.Cursor)
	assert.Contains(t, err.Error(), "demo")
	assert.Contains(t, err.Error(), "cursor-3")
}

func TestFetchPageGraphQLErrors(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [{"message": "field does not exist"}]}`))
	})

	_, err := client.FetchPage(50, "")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.Reason, "field does not exist")
}

func TestFetchPageMalformedResponse(t *testing.T) {
	for name, body := range map[string]string{
		"not json":         `<html>gateway error</html>`,
		"missing products": `{"data": {}}`,
		"missing pageInfo": `{"data": {"products": {"edges": []}}}`,
	} {
		t.Run(name, func(t *testing.T) {
			payload := body
			client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(payload))
			})

			_, err := client.FetchPage(50, "")
			var ue *UpstreamError
			require.ErrorAs(t, err, &ue)
		})
	}
}
