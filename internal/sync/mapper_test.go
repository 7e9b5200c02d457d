package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsync/internal/services/shopify"
)

func productEdge(id, title string) shopify.ProductEdge {
	return shopify.ProductEdge{
		Cursor: "cursor-" + id,
		Node: shopify.ProductNode{
			ID:     id,
			Title:  title,
			Handle: "handle-" + id,
			FeaturedImage: &shopify.ImageNode{
				ID:     "img-featured",
				URL:    "https://cdn.example.com/featured.png",
				Width:  800,
				Height: 600,
			},
			Images: shopify.ImageConnection{
				Edges: []shopify.ImageEdge{
					{Node: shopify.ImageNode{ID: "img-1", URL: "https://cdn.example.com/1.png", AltText: "first"}},
					{Node: shopify.ImageNode{ID: "img-2", URL: "https://cdn.example.com/2.png"}},
				},
			},
			Variants: shopify.VariantConnection{
				Edges: []shopify.VariantEdge{
					{Node: shopify.VariantNode{ID: "var-1", Title: "Small", Price: "10.00", SKU: "SKU-1",
						Image: &shopify.ImageNode{ID: "img-1", URL: "https://cdn.example.com/1.png"}}},
					{Node: shopify.VariantNode{ID: "var-2", Title: "Large", Price: "12.00", SKU: "SKU-2"}},
				},
			},
		},
	}
}

func TestMapPageFields(t *testing.T) {
	docs := MapPage("demo", []shopify.ProductEdge{productEdge("p1", "Shirt")})
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "demo", doc.ShopName)
	assert.Equal(t, "p1", doc.ProductID)
	assert.Equal(t, "Shirt", doc.Title)
	assert.Equal(t, "handle-p1", doc.Handle)

	require.NotNil(t, doc.FeaturedImage)
	assert.Equal(t, "img-featured", doc.FeaturedImage.ID)
	assert.Equal(t, 800, doc.FeaturedImage.Width)

	// Platform ordering is preserved
	require.Len(t, doc.Images, 2)
	assert.Equal(t, "img-1", doc.Images[0].ID)
	assert.Equal(t, "first", doc.Images[0].AltText)
	assert.Equal(t, "img-2", doc.Images[1].ID)

	require.Len(t, doc.Variants, 2)
	assert.Equal(t, "var-1", doc.Variants[0].VariantID)
	assert.Equal(t, "10.00", doc.Variants[0].Price)
	assert.Equal(t, "SKU-1", doc.Variants[0].SKU)
	require.NotNil(t, doc.Variants[0].Image)
	assert.Equal(t, "img-1", doc.Variants[0].Image.ID)
	assert.Nil(t, doc.Variants[1].Image)
}

func TestMapPageDefaultsMissingSubFields(t *testing.T) {
	edge := shopify.ProductEdge{
		Node: shopify.ProductNode{
			ID:    "p-bare",
			Title: "Bare",
		},
	}

	docs := MapPage("demo", []shopify.ProductEdge{edge})
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Nil(t, doc.FeaturedImage)
	assert.NotNil(t, doc.Images)
	assert.Empty(t, doc.Images)
	assert.NotNil(t, doc.Variants)
	assert.Empty(t, doc.Variants)
}

func TestMapPageDoesNotMutateInput(t *testing.T) {
	edges := []shopify.ProductEdge{productEdge("p1", "Shirt")}
	original := productEdge("p1", "Shirt")

	docs := MapPage("demo", edges)

	// Mutating the output must not leak back into the input.
	docs[0].Images[0].URL = "mutated"
	docs[0].Variants[0].Image.URL = "mutated"
	docs[0].FeaturedImage.URL = "mutated"

	assert.Equal(t, original, edges[0])
}

func TestMapPageEmpty(t *testing.T) {
	docs := MapPage("demo", nil)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}
