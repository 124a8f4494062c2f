package storage

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
)

// CacheOptions carries the optional read cache shared by bun stores.
type CacheOptions struct {
	Service    cache.CacheService
	Serializer cache.KeySerializer
}

// Enabled reports whether both cache collaborators are configured.
func (o CacheOptions) Enabled() bool {
	return o.Service != nil && o.Serializer != nil
}

// WrapWithCache decorates base with the go-repository-cache layer when the
// cache options are enabled.
func WrapWithCache[T any](base repository.Repository[T], opts CacheOptions) repository.Repository[T] {
	if !opts.Enabled() {
		return base
	}
	return repositorycache.New(base, opts.Service, opts.Serializer)
}

// CachePrefix returns the key prefix used to invalidate a namespace.
func CachePrefix(namespace string) string {
	if namespace == "" {
		return ""
	}
	return namespace + cache.KeySeparator
}

// Invalidate drops cached entries for namespace. It is a no-op without a cache.
func (o CacheOptions) Invalidate(ctx context.Context, namespace string) error {
	if !o.Enabled() {
		return nil
	}
	prefix := CachePrefix(namespace)
	if prefix == "" {
		return nil
	}
	return o.Service.DeleteByPrefix(ctx, prefix)
}
