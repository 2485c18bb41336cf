package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Opener produces a provider once its backing service is reachable.
type Opener func(ctx context.Context) (Provider, error)

// Dial calls open until it succeeds, then establishes conn with the result.
// It blocks until the connection is established or ctx is done.
func Dial(ctx context.Context, conn *Connection, open Opener, retry time.Duration) error {
	for attempt := 1; ; attempt++ {
		p, err := open(ctx)
		if err == nil {
			conn.Establish(p)
			log.Info().Int("attempt", attempt).Msg("[content] provider connection established")
			return nil
		}

		log.Warn().Err(err).
			Int("attempt", attempt).
			Msgf("[content] provider not reachable, retrying in %s", retry)

		select {
		case <-ctx.Done():
			return fmt.Errorf("dial provider: %w", ctx.Err())
		case <-time.After(retry):
		}
	}
}

// HTTPOpener opens an HTTPProvider after its health endpoint answers.
func HTTPOpener(baseURL string, timeout time.Duration) Opener {
	return func(ctx context.Context) (Provider, error) {
		p := NewHTTPProvider(baseURL, timeout)
		if err := p.Ping(ctx); err != nil {
			return nil, err
		}
		return p, nil
	}
}
