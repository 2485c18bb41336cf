package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/naulin/internal/db"
	"github.com/Nixie-Tech-LLC/naulin/internal/model"
	"github.com/Nixie-Tech-LLC/naulin/internal/redis"
)

// StoreProvider reads content from the database through a read-through cache.
type StoreProvider struct {
	store db.Store
	cache redis.Cache
	ttl   time.Duration
}

var (
	_ Provider      = (*StoreProvider)(nil)
	_ PayloadSource = (*StoreProvider)(nil)
)

func NewStoreProvider(store db.Store, cache redis.Cache, ttl time.Duration) *StoreProvider {
	if cache == nil {
		cache = redis.NewMemoryCache()
	}
	return &StoreProvider{store: store, cache: cache, ttl: ttl}
}

func CacheKey(kind Kind) string {
	return fmt.Sprintf("content:%s", kind)
}

func ETagKey(kind Kind) string {
	return fmt.Sprintf("content:%s:etag", kind)
}

// ETag returns the quoted entity tag of an encoded payload.
func ETag(body []byte) string {
	sum := sha256.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func (p *StoreProvider) FetchPrincipalMessage(ctx context.Context) (model.PrincipalMessage, error) {
	var m model.PrincipalMessage
	err := p.decode(ctx, KindPrincipalMessage, &m)
	return m, err
}

func (p *StoreProvider) FetchNewsArticles(ctx context.Context) ([]model.NewsArticle, error) {
	var out []model.NewsArticle
	err := p.decode(ctx, KindNews, &out)
	return out, err
}

func (p *StoreProvider) FetchFacilities(ctx context.Context) ([]model.Facility, error) {
	var out []model.Facility
	err := p.decode(ctx, KindFacilities, &out)
	return out, err
}

func (p *StoreProvider) decode(ctx context.Context, kind Kind, v any) error {
	payload, err := p.Payload(ctx, kind)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload.Body, v); err != nil {
		return fmt.Errorf("decode %s: %w", kind, err)
	}
	return nil
}

// Payload returns the cached encoding of kind, loading it from the store on a miss.
// Cache errors are logged and fall through to the store.
func (p *StoreProvider) Payload(ctx context.Context, kind Kind) (Payload, error) {
	body, err := p.cache.Get(ctx, CacheKey(kind))
	if err == nil {
		etag, err := p.cache.Get(ctx, ETagKey(kind))
		if err == nil {
			return Payload{Body: body, ETag: string(etag)}, nil
		}
		// body without its tag; recompute rather than trust a partial entry
		return Payload{Body: body, ETag: ETag(body)}, nil
	}
	if !errors.Is(err, redis.ErrMiss) {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("[content] cache read failed")
	}

	v, err := p.load(ctx, kind)
	if err != nil {
		return Payload{}, err
	}
	body, err = json.Marshal(v)
	if err != nil {
		return Payload{}, fmt.Errorf("encode %s: %w", kind, err)
	}
	payload := Payload{Body: body, ETag: ETag(body)}

	if err := p.cache.Set(ctx, CacheKey(kind), payload.Body, p.ttl); err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("[content] cache write failed")
	} else if err := p.cache.Set(ctx, ETagKey(kind), []byte(payload.ETag), p.ttl); err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("[content] cache etag write failed")
	}
	return payload, nil
}

func (p *StoreProvider) load(ctx context.Context, kind Kind) (any, error) {
	switch kind {
	case KindPrincipalMessage:
		m, err := p.store.GetPrincipalMessage(ctx)
		if err != nil {
			return nil, fmt.Errorf("principal message: %w", err)
		}
		return m, nil
	case KindNews:
		return p.store.ListNewsArticles(ctx)
	case KindFacilities:
		return p.store.ListFacilities(ctx)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Invalidate drops the cached payloads of the given kinds, or of every kind when none are given.
func (p *StoreProvider) Invalidate(ctx context.Context, kinds ...Kind) error {
	if len(kinds) == 0 {
		kinds = Kinds
	}
	keys := make([]string, 0, 2*len(kinds))
	for _, k := range kinds {
		keys = append(keys, CacheKey(k), ETagKey(k))
	}
	if err := p.cache.Del(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("[content] failed to invalidate cache")
		return err
	}
	log.Debug().Strs("keys", keys).Msg("[content] invalidated cache")
	return nil
}
