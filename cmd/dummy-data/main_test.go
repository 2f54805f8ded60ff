package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"dummy-data/internal/app/shop"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReaction struct {
	mu        sync.Mutex
	responses map[string]string
	requests  []graphqlBody
}

type graphqlBody struct {
	OperationName string                     `json:"operationName"`
	Variables     map[string]json.RawMessage `json:"variables"`
}

func (f *fakeReaction) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body graphqlBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		f.mu.Lock()
		f.requests = append(f.requests, body)
		resp, ok := f.responses[body.OperationName]
		f.mu.Unlock()
		if !ok {
			http.Error(w, "unexpected operation", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(resp))
	}
}

func (f *fakeReaction) operations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ops := make([]string, 0, len(f.requests))
	for _, r := range f.requests {
		ops = append(ops, r.OperationName)
	}
	return ops
}

var shopOpaque = shop.EncodeOpaqueID(shop.ShopNamespace, "J8Bhq3uTtdgwZx3rz")

func setupEnv(t *testing.T, responses map[string]string) *fakeReaction {
	t.Helper()
	fake := &fakeReaction{responses: responses}
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	for _, key := range []string{
		"DUMMY_DATA_API_TOKEN", "DUMMY_DATA_API_TIMEOUT", "DUMMY_DATA_TOAST_TIMEOUT",
		"DUMMY_DATA_SINGLE_FLIGHT", "DUMMY_DATA_LOG_LEVEL", "DUMMY_DATA_LOG_FILE",
		"DUMMY_DATA_JOURNAL_DRIVER", "DUMMY_DATA_JOURNAL_DSN", "DUMMY_DATA_METRICS_ADDR",
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "MYSQL_PORT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("DUMMY_DATA_API_URL", srv.URL)
	t.Setenv("DUMMY_DATA_SHOP_ID", shopOpaque)
	t.Setenv("DUMMY_DATA_LOG_LEVEL", "error")
	return fake
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestProductsCommand(t *testing.T) {
	fake := setupEnv(t, map[string]string{
		"loadProductsAndTags": `{"data":{"loadProductsAndTags":{"productsCreated":2,"tagsCreated":3}}}`,
	})

	out, err := execute(t, "products", "--count", "2", "--tags", "3")
	require.NoError(t, err)
	assert.Equal(t, "[success] Successfully created 2 products and 3 tags.\n", out)

	require.Len(t, fake.requests, 1)
	assert.JSONEq(t,
		`{"shopId":"J8Bhq3uTtdgwZx3rz","desiredProductCount":2,"desiredTagCount":3}`,
		string(fake.requests[0].Variables["input"]))
}

func TestOrdersCommand_InvalidCountNeverSent(t *testing.T) {
	fake := setupEnv(t, nil)

	out, err := execute(t, "orders", "--count", "abc")
	require.Error(t, err)
	var outcomeErr *errOutcome
	assert.ErrorAs(t, err, &outcomeErr)
	assert.Equal(t, "[error] Number of orders must be a non-negative integer\n", out)
	assert.Empty(t, fake.operations())
}

func TestImagesCommand_NotLoadedIsError(t *testing.T) {
	setupEnv(t, map[string]string{
		"loadProductImages": `{"data":{"loadProductImages":{"wasDataLoaded":false}}}`,
	})

	out, err := execute(t, "images")
	require.Error(t, err)
	assert.Equal(t, "[error] Couldn't insert product images.\n", out)
}

func TestRemoveCommand_RequiresConfirmation(t *testing.T) {
	fake := setupEnv(t, map[string]string{
		"removeAllData": `{"data":{"removeAllData":{"wasDataRemoved":true}}}`,
	})

	_, err := execute(t, "remove")
	assert.ErrorIs(t, err, errRemoveNotConfirmed)
	assert.Empty(t, fake.operations())

	out, err := execute(t, "remove", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "[success] Successfully removed data.\n", out)
}

func TestRejectionPrintedVerbatim(t *testing.T) {
	setupEnv(t, map[string]string{
		"loadOrders": `{"errors":[{"message":"Network unreachable"}],"data":null}`,
	})

	out, err := execute(t, "orders", "--count", "1")
	require.Error(t, err)
	assert.Equal(t, "[error] Network unreachable\n", out)
}

func TestPrimaryShopFallback(t *testing.T) {
	fake := setupEnv(t, map[string]string{
		"primaryShopId":     `{"data":{"primaryShopId":"` + shop.EncodeOpaqueID(shop.ShopNamespace, "primary-1") + `"}}`,
		"loadProductImages": `{"data":{"loadProductImages":{"wasDataLoaded":true}}}`,
	})
	t.Setenv("DUMMY_DATA_SHOP_ID", "")

	out, err := execute(t, "images")
	require.NoError(t, err)
	assert.Equal(t, "[success] Successfully inserted product images.\n", out)
	assert.Equal(t, []string{"primaryShopId", "loadProductImages"}, fake.operations())
	assert.JSONEq(t, `{"shopId":"primary-1"}`, string(fake.requests[1].Variables["input"]))
}

func TestHistoryCommand(t *testing.T) {
	setupEnv(t, map[string]string{
		"loadOrders": `{"data":{"loadOrders":{"ordersCreated":1}}}`,
	})
	t.Setenv("DUMMY_DATA_JOURNAL_DRIVER", "sqlite")
	t.Setenv("DUMMY_DATA_JOURNAL_DSN", filepath.Join(t.TempDir(), "journal.db"))

	_, err := execute(t, "orders", "--count", "1")
	require.NoError(t, err)

	out, err := execute(t, "history", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "OPERATION")
	assert.Contains(t, out, "loadOrders")
	assert.Contains(t, out, "J8Bhq3uTtdgwZx3rz")
	assert.Contains(t, out, "Successfully created 1 order.")
}

func TestHistoryCommand_JournalDisabled(t *testing.T) {
	setupEnv(t, nil)
	_, err := execute(t, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal is disabled")
}

func TestMissingAPIURL(t *testing.T) {
	setupEnv(t, nil)
	t.Setenv("DUMMY_DATA_API_URL", "")

	_, err := execute(t, "images")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DUMMY_DATA_API_URL")
}

func TestProductsCommand_BadShopReferenceExplained(t *testing.T) {
	fake := setupEnv(t, nil)
	t.Setenv("DUMMY_DATA_SHOP_ID", "not-a-shop")

	out, err := execute(t, "products", "--count", "1")
	require.Error(t, err)
	assert.Equal(t, "[error] Shop is not resolved yet.\n", out)
	assert.ErrorIs(t, err, shop.ErrInvalidOpaqueID)
	assert.Contains(t, err.Error(), "not-a-shop")
	assert.Empty(t, fake.operations())
}
