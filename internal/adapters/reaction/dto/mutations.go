package dto

import "dummy-data/internal/domain/model"

type LoadProductsAndTagsData struct {
	LoadProductsAndTags *model.LoadProductsAndTagsPayload `json:"loadProductsAndTags"`
}

type LoadOrdersData struct {
	LoadOrders *model.LoadOrdersPayload `json:"loadOrders"`
}

type LoadProductImagesData struct {
	LoadProductImages *model.LoadProductImagesPayload `json:"loadProductImages"`
}

type RemoveAllDataData struct {
	RemoveAllData *model.RemoveAllDataPayload `json:"removeAllData"`
}

type PrimaryShopIDData struct {
	PrimaryShopID *string `json:"primaryShopId"`
}
