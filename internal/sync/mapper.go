package sync

import (
	"shopsync/internal/models"
	"shopsync/internal/services/shopify"
)

// MapPage flattens one page of product edges into storage-ready documents.
// Pure function: no I/O, input is not mutated. Missing optional sub-fields
// default rather than fail.
func MapPage(shopName string, edges []shopify.ProductEdge) []models.ProductDocument {
	docs := make([]models.ProductDocument, 0, len(edges))

	for _, edge := range edges {
		node := edge.Node

		images := make([]models.ImageRef, 0, len(node.Images.Edges))
		for _, imgEdge := range node.Images.Edges {
			images = append(images, mapImage(imgEdge.Node))
		}

		variants := make([]models.VariantRecord, 0, len(node.Variants.Edges))
		for _, varEdge := range node.Variants.Edges {
			v := varEdge.Node
			record := models.VariantRecord{
				VariantID: v.ID,
				Title:     v.Title,
				Price:     v.Price,
				SKU:       v.SKU,
			}
			if v.Image != nil {
				img := mapImage(*v.Image)
				record.Image = &img
			}
			variants = append(variants, record)
		}

		doc := models.ProductDocument{
			ShopName:  shopName,
			ProductID: node.ID,
			Title:     node.Title,
			Handle:    node.Handle,
			Images:    images,
			Variants:  variants,
		}
		if node.FeaturedImage != nil {
			img := mapImage(*node.FeaturedImage)
			doc.FeaturedImage = &img
		}

		docs = append(docs, doc)
	}

	return docs
}

func mapImage(img shopify.ImageNode) models.ImageRef {
	return models.ImageRef{
		ID:      img.ID,
		URL:     img.URL,
		AltText: img.AltText,
		Width:   img.Width,
		Height:  img.Height,
	}
}
