package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Nixie-Tech-LLC/naulin/internal/model"
)

const maxPayloadBytes = 4 << 20

// HTTPProvider reads content from a remote content API.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

var (
	_ Provider      = (*HTTPProvider)(nil)
	_ PayloadSource = (*HTTPProvider)(nil)
)

func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Ping checks that the remote API answers its health endpoint.
func (p *HTTPProvider) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (p *HTTPProvider) FetchPrincipalMessage(ctx context.Context) (model.PrincipalMessage, error) {
	var m model.PrincipalMessage
	err := p.decode(ctx, KindPrincipalMessage, &m)
	return m, err
}

func (p *HTTPProvider) FetchNewsArticles(ctx context.Context) ([]model.NewsArticle, error) {
	var out []model.NewsArticle
	err := p.decode(ctx, KindNews, &out)
	return out, err
}

func (p *HTTPProvider) FetchFacilities(ctx context.Context) ([]model.Facility, error) {
	var out []model.Facility
	err := p.decode(ctx, KindFacilities, &out)
	return out, err
}

func (p *HTTPProvider) decode(ctx context.Context, kind Kind, v any) error {
	payload, err := p.Payload(ctx, kind)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload.Body, v); err != nil {
		return fmt.Errorf("decode %s: %w", kind, err)
	}
	return nil
}

func (p *HTTPProvider) Payload(ctx context.Context, kind Kind) (Payload, error) {
	if _, ok := ParseKind(string(kind)); !ok {
		return Payload{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/content/"+string(kind), nil)
	if err != nil {
		return Payload{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return Payload{}, fmt.Errorf("fetch %s: %w", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return Payload{}, fmt.Errorf("fetch %s: unexpected status %d", kind, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return Payload{}, fmt.Errorf("read %s: %w", kind, err)
	}

	etag := resp.Header.Get("ETag")
	if etag == "" {
		etag = ETag(body)
	}
	return Payload{Body: body, ETag: etag}, nil
}
