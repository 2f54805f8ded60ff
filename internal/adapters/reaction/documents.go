package reaction

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

const LoadProductsAndTagsMutation = `
mutation loadProductsAndTags($input: LoadProductsAndTagsInput!) {
	loadProductsAndTags(input: $input) {
		productsCreated
		tagsCreated
	}
}`

const LoadOrdersMutation = `
mutation loadOrders($input: LoadOrdersInput!) {
	loadOrders(input: $input) {
		ordersCreated
	}
}`

const LoadProductImagesMutation = `
mutation loadProductImages($input: LoadProductImagesInput!) {
	loadProductImages(input: $input) {
		wasDataLoaded
	}
}`

const RemoveAllDataMutation = `
mutation removeAllData($input: RemoveDataInput!) {
	removeAllData(input: $input) {
		wasDataRemoved
	}
}`

const PrimaryShopIDQuery = `
query primaryShopId {
	primaryShopId
}`

//go:embed schema.graphql
var schemaSDL string

type document struct {
	name  string
	field string
	query string
}

type documentSet struct {
	loadProductsAndTags document
	loadOrders          document
	loadProductImages   document
	removeAllData       document
	primaryShopID       document
}

var (
	documentsOnce sync.Once
	documents     *documentSet
	documentsErr  error
)

// loadDocuments validates every operation against the embedded schema once.
func loadDocuments() (*documentSet, error) {
	documentsOnce.Do(func() {
		documents, documentsErr = parseDocuments(schemaSDL)
	})
	return documents, documentsErr
}

func parseDocuments(sdl string) (*documentSet, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: sdl})
	if err != nil {
		return nil, fmt.Errorf("reaction schema: %w", err)
	}

	parse := func(query string) (document, error) {
		doc, errs := gqlparser.LoadQuery(schema, query)
		if len(errs) > 0 {
			return document{}, fmt.Errorf("reaction document: %s", errs.Error())
		}
		if len(doc.Operations) != 1 {
			return document{}, fmt.Errorf("reaction document: expected one operation, got %d", len(doc.Operations))
		}
		op := doc.Operations[0]
		if len(op.SelectionSet) != 1 {
			return document{}, fmt.Errorf("reaction document %s: expected one root field", op.Name)
		}
		field, ok := op.SelectionSet[0].(*ast.Field)
		if !ok {
			return document{}, fmt.Errorf("reaction document %s: root selection is not a field", op.Name)
		}
		return document{name: op.Name, field: field.Alias, query: strings.TrimSpace(query)}, nil
	}

	set := &documentSet{}
	for _, d := range []struct {
		dst   *document
		query string
	}{
		{&set.loadProductsAndTags, LoadProductsAndTagsMutation},
		{&set.loadOrders, LoadOrdersMutation},
		{&set.loadProductImages, LoadProductImagesMutation},
		{&set.removeAllData, RemoveAllDataMutation},
		{&set.primaryShopID, PrimaryShopIDQuery},
	} {
		parsed, err := parse(d.query)
		if err != nil {
			return nil, err
		}
		*d.dst = parsed
	}
	return set, nil
}
