package shop

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingDecoder struct {
	calls []string
}

func (d *countingDecoder) Decode(ctx context.Context, opaque string) (string, error) {
	d.calls = append(d.calls, opaque)
	return OpaqueDecoder{}.Decode(ctx, opaque)
}

func TestDecodeOpaqueID(t *testing.T) {
	opaque := EncodeOpaqueID(ShopNamespace, "J8Bhq3uTtdgwZx3rz")
	assert.Equal(t, "cmVhY3Rpb24vc2hvcDpKOEJocTN1VHRkZ3daeDNyeg==", opaque)

	id, err := DecodeOpaqueID(ShopNamespace, opaque)
	require.NoError(t, err)
	assert.Equal(t, "J8Bhq3uTtdgwZx3rz", id)

	id, err = DecodeOpaqueID(ShopNamespace, "cmVhY3Rpb24vc2hvcDpKOEJocTN1VHRkZ3daeDNyeg")
	require.NoError(t, err)
	assert.Equal(t, "J8Bhq3uTtdgwZx3rz", id)
}

func TestDecodeOpaqueID_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":           "",
		"not base64":      "%%%",
		"no separator":    "cmVhY3Rpb24=",
		"wrong namespace": EncodeOpaqueID("reaction/product", "abc"),
		"empty id":        EncodeOpaqueID(ShopNamespace, " "),
	}
	for name, opaque := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeOpaqueID(ShopNamespace, opaque)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidOpaqueID))
		})
	}
}

func TestResolver_IdenticalReferencesDecodeOnce(t *testing.T) {
	dec := &countingDecoder{}
	r := NewResolver(dec)
	opaque := EncodeOpaqueID(ShopNamespace, "shop-1")

	assert.Empty(t, r.CurrentShopID())

	id, changed, err := r.Resolve(t.Context(), opaque)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "shop-1", id)

	id, changed, err = r.Resolve(t.Context(), opaque)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "shop-1", id)

	assert.Len(t, dec.calls, 1)
}

func TestResolver_DistinctReferencesEndAtSecond(t *testing.T) {
	dec := &countingDecoder{}
	r := NewResolver(dec)

	_, _, err := r.Resolve(t.Context(), EncodeOpaqueID(ShopNamespace, "shop-1"))
	require.NoError(t, err)
	_, _, err = r.Resolve(t.Context(), EncodeOpaqueID(ShopNamespace, "shop-2"))
	require.NoError(t, err)

	assert.Equal(t, "shop-2", r.CurrentShopID())
	assert.Len(t, dec.calls, 2)
}

func TestResolver_StaleCompletionIgnored(t *testing.T) {
	r := NewResolver(nil)
	first := EncodeOpaqueID(ShopNamespace, "shop-1")
	second := EncodeOpaqueID(ShopNamespace, "shop-2")

	require.True(t, r.Begin(first))
	require.True(t, r.Begin(second))

	assert.True(t, r.Accept(second, "shop-2"))
	assert.False(t, r.Accept(first, "shop-1"))
	assert.Equal(t, "shop-2", r.CurrentShopID())
}

func TestResolver_DecodeFailureKeepsPreviousID(t *testing.T) {
	r := NewResolver(DecoderFunc(func(_ context.Context, opaque string) (string, error) {
		if opaque == "bad" {
			return "", ErrInvalidOpaqueID
		}
		return "shop-" + opaque, nil
	}))

	_, _, err := r.Resolve(t.Context(), "1")
	require.NoError(t, err)

	id, changed, err := r.Resolve(t.Context(), "bad")
	require.ErrorIs(t, err, ErrInvalidOpaqueID)
	assert.False(t, changed)
	assert.Equal(t, "shop-1", id)
}

func TestResolver_IsLatest(t *testing.T) {
	r := NewResolver(nil)
	assert.False(t, r.IsLatest(""))

	r.Begin("a")
	r.Begin("b")
	assert.False(t, r.IsLatest("a"))
	assert.True(t, r.IsLatest("b"))
}

func TestResolver_SupersededResolveReturnsCurrentID(t *testing.T) {
	var r *Resolver
	r = NewResolver(DecoderFunc(func(ctx context.Context, opaque string) (string, error) {
		// a newer reference arrives and completes while this decode runs
		newer := EncodeOpaqueID(ShopNamespace, "shop-2")
		r.Begin(newer)
		r.Accept(newer, "shop-2")
		return DecodeOpaqueID(ShopNamespace, opaque)
	}))

	id, accepted, err := r.Resolve(t.Context(), EncodeOpaqueID(ShopNamespace, "shop-1"))
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.Equal(t, "shop-2", id)
	assert.Equal(t, "shop-2", r.CurrentShopID())
}
