package reaction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dummy-data/internal/adapters/reaction/dto"
	"dummy-data/internal/config"
	"dummy-data/internal/domain/model"
)

type MutationService interface {
	LoadProductsAndTags(ctx context.Context, input model.LoadProductsAndTagsInput) (model.LoadProductsAndTagsPayload, error)
	LoadOrders(ctx context.Context, input model.LoadOrdersInput) (model.LoadOrdersPayload, error)
	LoadProductImages(ctx context.Context, input model.LoadProductImagesInput) (model.LoadProductImagesPayload, error)
	RemoveAllData(ctx context.Context, input model.RemoveAllDataInput) (model.RemoveAllDataPayload, error)
}

type ShopService interface {
	PrimaryShopID(ctx context.Context) (string, error)
}

var (
	_ MutationService = (*Client)(nil)
	_ ShopService     = (*Client)(nil)
)

type Client struct {
	config     config.APIConfig
	endpoint   string
	httpClient *http.Client
	documents  *documentSet
}

func NewClient(cfg config.APIConfig, httpClient *http.Client) (*Client, error) {
	endpoint, err := graphqlEndpoint(cfg.BaseUrl)
	if err != nil {
		return nil, err
	}
	docs, err := loadDocuments()
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		config:     cfg,
		endpoint:   endpoint,
		httpClient: httpClient,
		documents:  docs,
	}, nil
}

func graphqlEndpoint(base string) (string, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return "", errors.New("reaction api url is empty")
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("reaction api url: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("reaction api url %q has no host", base)
	}
	if strings.Trim(u.Path, "/") == "" {
		u.Path = "/graphql"
	}
	return u.String(), nil
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) LoadProductsAndTags(ctx context.Context, input model.LoadProductsAndTagsInput) (model.LoadProductsAndTagsPayload, error) {
	var data dto.LoadProductsAndTagsData
	if err := c.mutate(ctx, c.documents.loadProductsAndTags, input, &data); err != nil {
		return model.LoadProductsAndTagsPayload{}, err
	}
	if data.LoadProductsAndTags == nil {
		return model.LoadProductsAndTagsPayload{}, missingPayload(c.documents.loadProductsAndTags)
	}
	return *data.LoadProductsAndTags, nil
}

func (c *Client) LoadOrders(ctx context.Context, input model.LoadOrdersInput) (model.LoadOrdersPayload, error) {
	var data dto.LoadOrdersData
	if err := c.mutate(ctx, c.documents.loadOrders, input, &data); err != nil {
		return model.LoadOrdersPayload{}, err
	}
	if data.LoadOrders == nil {
		return model.LoadOrdersPayload{}, missingPayload(c.documents.loadOrders)
	}
	return *data.LoadOrders, nil
}

func (c *Client) LoadProductImages(ctx context.Context, input model.LoadProductImagesInput) (model.LoadProductImagesPayload, error) {
	var data dto.LoadProductImagesData
	if err := c.mutate(ctx, c.documents.loadProductImages, input, &data); err != nil {
		return model.LoadProductImagesPayload{}, err
	}
	if data.LoadProductImages == nil {
		return model.LoadProductImagesPayload{}, missingPayload(c.documents.loadProductImages)
	}
	return *data.LoadProductImages, nil
}

func (c *Client) RemoveAllData(ctx context.Context, input model.RemoveAllDataInput) (model.RemoveAllDataPayload, error) {
	var data dto.RemoveAllDataData
	if err := c.mutate(ctx, c.documents.removeAllData, input, &data); err != nil {
		return model.RemoveAllDataPayload{}, err
	}
	if data.RemoveAllData == nil {
		return model.RemoveAllDataPayload{}, missingPayload(c.documents.removeAllData)
	}
	return *data.RemoveAllData, nil
}

func (c *Client) PrimaryShopID(ctx context.Context) (string, error) {
	var data dto.PrimaryShopIDData
	if err := c.graphqlRequest(ctx, c.documents.primaryShopID, nil, &data); err != nil {
		return "", err
	}
	if data.PrimaryShopID == nil || strings.TrimSpace(*data.PrimaryShopID) == "" {
		return "", errors.New("reaction api returned no primary shop")
	}
	return strings.TrimSpace(*data.PrimaryShopID), nil
}

func (c *Client) mutate(ctx context.Context, doc document, input any, out any) error {
	return c.graphqlRequest(ctx, doc, map[string]any{"input": input}, out)
}

func missingPayload(doc document) error {
	return fmt.Errorf("reaction %s returned no payload", doc.field)
}

func (c *Client) graphqlRequest(ctx context.Context, doc document, variables map[string]any, out any) error {
	bodyBytes, err := json.Marshal(dto.GraphQLRequest{
		Query:         doc.query,
		Variables:     variables,
		OperationName: doc.name,
	})
	if err != nil {
		return err
	}

	statusCode, status, raw, err := c.apiRequest(ctx, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}

	var resp dto.RawResponse
	decodeErr := json.Unmarshal(raw, &resp)
	if decodeErr == nil && len(resp.Errors) > 0 {
		return GraphQLErrors(resp.Errors)
	}
	if statusCode < 200 || statusCode >= 300 {
		return newHTTPStatusError(statusCode, status, raw)
	}
	if decodeErr != nil {
		return fmt.Errorf("reaction %s: decode response: %w", doc.name, decodeErr)
	}
	if out == nil {
		return nil
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return errors.New("reaction graphql response missing data")
	}
	return json.Unmarshal(resp.Data, out)
}

func (c *Client) apiRequest(ctx context.Context, body io.Reader) (int, string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return 0, "", nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := strings.TrimSpace(c.config.Token); token != "" {
		if !strings.HasPrefix(strings.ToLower(token), "bearer ") {
			token = "Bearer " + token
		}
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", nil, err
	}
	return resp.StatusCode, resp.Status, respBody, nil
}
