// Package provider defines the read-only content source the page depends on
// and the connection handle through which it becomes available.
package provider

import (
	"context"
	"errors"

	"github.com/Nixie-Tech-LLC/naulin/internal/model"
)

// Kind names one of the three content collections.
type Kind string

const (
	KindPrincipalMessage Kind = "principal-message"
	KindNews             Kind = "news"
	KindFacilities       Kind = "facilities"
)

// Kinds lists every content kind in page order.
var Kinds = []Kind{KindPrincipalMessage, KindNews, KindFacilities}

func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

var (
	ErrNotReady    = errors.New("content provider not ready")
	ErrUnknownKind = errors.New("unknown content kind")
)

// Provider serves the page content. Reads take no parameters and have no side effects.
// Any failure to produce a value is returned as an error.
type Provider interface {
	FetchPrincipalMessage(ctx context.Context) (model.PrincipalMessage, error)
	FetchNewsArticles(ctx context.Context) ([]model.NewsArticle, error)
	FetchFacilities(ctx context.Context) ([]model.Facility, error)
}

// Payload is the JSON encoding of one content kind with its entity tag.
type Payload struct {
	Body []byte
	ETag string
}

// PayloadSource is implemented by providers that can hand out encoded payloads
// directly, so the content API does not re-encode on every request.
type PayloadSource interface {
	Payload(ctx context.Context, kind Kind) (Payload, error)
}
