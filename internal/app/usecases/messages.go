package usecases

import (
	"fmt"

	"dummy-data/internal/domain/model"
)

const (
	msgImagesLoaded    = "Successfully inserted product images."
	msgImagesNotLoaded = "Couldn't insert product images."
	msgDataRemoved     = "Successfully removed data."
	msgDataNotRemoved  = "Couldn't remove any data."
)

func productsAndTagsMessage(p model.LoadProductsAndTagsPayload) string {
	return fmt.Sprintf("Successfully created %s and %s.",
		countNoun(p.ProductsCreated, "product"),
		countNoun(p.TagsCreated, "tag"))
}

func ordersMessage(p model.LoadOrdersPayload) string {
	return fmt.Sprintf("Successfully created %s.", countNoun(p.OrdersCreated, "order"))
}

// countNoun pluralizes only above one, so 0 reads "0 product".
func countNoun(n int, noun string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss", n, noun)
	}
	return fmt.Sprintf("%d %s", n, noun)
}
