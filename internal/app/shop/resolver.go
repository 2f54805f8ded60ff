package shop

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
)

const ShopNamespace = "reaction/shop"

var ErrInvalidOpaqueID = errors.New("invalid opaque shop id")

type Decoder interface {
	Decode(ctx context.Context, opaque string) (string, error)
}

type DecoderFunc func(ctx context.Context, opaque string) (string, error)

func (f DecoderFunc) Decode(ctx context.Context, opaque string) (string, error) {
	return f(ctx, opaque)
}

// OpaqueDecoder decodes base64("reaction/shop:<id>").
type OpaqueDecoder struct{}

func (OpaqueDecoder) Decode(_ context.Context, opaque string) (string, error) {
	return DecodeOpaqueID(ShopNamespace, opaque)
}

func DecodeOpaqueID(namespace, opaque string) (string, error) {
	raw, err := decodeBase64(strings.TrimSpace(opaque))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidOpaqueID, err)
	}
	ns, id, ok := strings.Cut(string(raw), ":")
	if !ok {
		return "", fmt.Errorf("%w: missing namespace separator", ErrInvalidOpaqueID)
	}
	if ns != namespace {
		return "", fmt.Errorf("%w: namespace %q, want %q", ErrInvalidOpaqueID, ns, namespace)
	}
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%w: empty id", ErrInvalidOpaqueID)
	}
	return id, nil
}

func EncodeOpaqueID(namespace, id string) string {
	return base64.StdEncoding.EncodeToString([]byte(namespace + ":" + id))
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty value")
	}
	if raw, err := base64.StdEncoding.DecodeString(value); err == nil {
		return raw, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(value, "="))
}

// Resolver turns the upstream opaque reference into the shop id the API
// expects. It only decodes when the reference changes.
type Resolver struct {
	decoder Decoder

	mu         sync.Mutex
	lastOpaque string
	requested  bool
	currentID  string
}

func NewResolver(decoder Decoder) *Resolver {
	if decoder == nil {
		decoder = OpaqueDecoder{}
	}
	return &Resolver{decoder: decoder}
}

// Begin records opaque as the latest requested reference. It reports false
// when opaque equals the previous reference and no decode is needed.
func (r *Resolver) Begin(opaque string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.requested && opaque == r.lastOpaque {
		return false
	}
	r.requested = true
	r.lastOpaque = opaque
	return true
}

func (r *Resolver) Decode(ctx context.Context, opaque string) (string, error) {
	return r.decoder.Decode(ctx, opaque)
}

// Accept stores id if opaque is still the latest requested reference.
func (r *Resolver) Accept(opaque, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.requested || opaque != r.lastOpaque {
		return false
	}
	r.currentID = id
	return true
}

// IsLatest reports whether opaque is the most recent requested reference.
func (r *Resolver) IsLatest(opaque string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requested && opaque == r.lastOpaque
}

// Resolve runs Begin, Decode and Accept in order. A decode superseded by a
// newer reference yields the current id instead of its own.
func (r *Resolver) Resolve(ctx context.Context, opaque string) (string, bool, error) {
	if !r.Begin(opaque) {
		return r.CurrentShopID(), false, nil
	}
	id, err := r.Decode(ctx, opaque)
	if err != nil {
		return r.CurrentShopID(), false, err
	}
	if !r.Accept(opaque, id) {
		return r.CurrentShopID(), false, nil
	}
	return id, true, nil
}

// CurrentShopID is empty until a reference has been resolved.
func (r *Resolver) CurrentShopID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentID
}
