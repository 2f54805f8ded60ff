package model

import "fmt"

type Operation string

const (
	OpLoadProductsAndTags Operation = "loadProductsAndTags"
	OpLoadOrders          Operation = "loadOrders"
	OpLoadProductImages   Operation = "loadProductImages"
	OpRemoveAllData       Operation = "removeAllData"
)

var Operations = []Operation{
	OpLoadProductsAndTags,
	OpLoadOrders,
	OpLoadProductImages,
	OpRemoveAllData,
}

func ParseOperation(value string) (Operation, error) {
	for _, op := range Operations {
		if string(op) == value {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown operation %q", value)
}

func (o Operation) Title() string {
	switch o {
	case OpLoadProductsAndTags:
		return "Generate Products and Tags"
	case OpLoadOrders:
		return "Generate Orders"
	case OpLoadProductImages:
		return "Generate Product Images"
	case OpRemoveAllData:
		return "Delete All Data"
	}
	return string(o)
}

// Fields lists the count fields an operation reads from the form.
func (o Operation) Fields() []CountField {
	switch o {
	case OpLoadProductsAndTags:
		return []CountField{FieldProduct, FieldTag}
	case OpLoadOrders:
		return []CountField{FieldOrder}
	}
	return nil
}

// Outcome is what a settled operation leaves in the notification.
// Err is set when the outcome came from a rejected call or a local check;
// a successful round trip reporting no work leaves it nil.
type Outcome struct {
	Operation Operation
	Message   string
	Severity  Severity
	Err       error
}

func (o Outcome) OK() bool {
	return o.Severity == SeveritySuccess
}

type LoadProductsAndTagsInput struct {
	ShopID              string `json:"shopId"`
	DesiredProductCount int    `json:"desiredProductCount"`
	DesiredTagCount     int    `json:"desiredTagCount"`
}

type LoadProductsAndTagsPayload struct {
	ProductsCreated int `json:"productsCreated"`
	TagsCreated     int `json:"tagsCreated"`
}

type LoadOrdersInput struct {
	ShopID            string `json:"shopId"`
	DesiredOrderCount int    `json:"desiredOrderCount"`
}

type LoadOrdersPayload struct {
	OrdersCreated int `json:"ordersCreated"`
}

type LoadProductImagesInput struct {
	ShopID string `json:"shopId"`
}

type LoadProductImagesPayload struct {
	WasDataLoaded bool `json:"wasDataLoaded"`
}

type RemoveAllDataInput struct {
	ShopID string `json:"shopId"`
}

type RemoveAllDataPayload struct {
	WasDataRemoved bool `json:"wasDataRemoved"`
}
