package content

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/naulin/internal/model"
	"github.com/Nixie-Tech-LLC/naulin/internal/provider"
)

// FetchFunc reads one value from an established provider.
type FetchFunc[T any] func(ctx context.Context, p provider.Provider) (T, error)

// Result is a snapshot of a Loader. Data is meaningful only when State is Loaded,
// Err only when State is Failed.
type Result[T any] struct {
	State State
	Data  T
	Err   error
}

// Loader fetches one kind of content at most once, and only after the
// connection is ready.
type Loader[T any] struct {
	kind    provider.Kind
	conn    *provider.Connection
	fetch   FetchFunc[T]
	timeout time.Duration

	once sync.Once
	done chan struct{}

	mu     sync.RWMutex
	result Result[T]
}

func NewLoader[T any](kind provider.Kind, conn *provider.Connection, fetch FetchFunc[T], timeout time.Duration) *Loader[T] {
	return &Loader[T]{
		kind:    kind,
		conn:    conn,
		fetch:   fetch,
		timeout: timeout,
		done:    make(chan struct{}),
	}
}

func NewMessageLoader(conn *provider.Connection, timeout time.Duration) *Loader[model.PrincipalMessage] {
	return NewLoader[model.PrincipalMessage](provider.KindPrincipalMessage, conn, func(ctx context.Context, p provider.Provider) (model.PrincipalMessage, error) {
		return p.FetchPrincipalMessage(ctx)
	}, timeout)
}

func NewNewsLoader(conn *provider.Connection, timeout time.Duration) *Loader[[]model.NewsArticle] {
	return NewLoader[[]model.NewsArticle](provider.KindNews, conn, func(ctx context.Context, p provider.Provider) ([]model.NewsArticle, error) {
		return p.FetchNewsArticles(ctx)
	}, timeout)
}

func NewFacilitiesLoader(conn *provider.Connection, timeout time.Duration) *Loader[[]model.Facility] {
	return NewLoader[[]model.Facility](provider.KindFacilities, conn, func(ctx context.Context, p provider.Provider) ([]model.Facility, error) {
		return p.FetchFacilities(ctx)
	}, timeout)
}

// Load waits for the connection, then performs the single fetch.
// If ctx ends before the connection is ready the loader stays Idle and a later
// call may still fetch. A ready connection always starts the fetch, even with
// ctx already done. Once a fetch has started, every call returns its outcome.
func (l *Loader[T]) Load(ctx context.Context) Result[T] {
	if !l.conn.IsReady() {
		select {
		case <-l.conn.Ready():
		case <-ctx.Done():
			return l.Result()
		}
	}

	l.once.Do(func() { l.run(ctx) })
	return l.Result()
}

func (l *Loader[T]) run(ctx context.Context) {
	defer close(l.done)

	l.set(Result[T]{State: Loading})

	p, err := l.conn.Provider()
	if err != nil {
		l.fail(err)
		return
	}

	fetchCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	data, err := l.fetch(fetchCtx, p)
	if err != nil {
		l.fail(err)
		return
	}
	l.set(Result[T]{State: Loaded, Data: data})
}

func (l *Loader[T]) fail(err error) {
	log.Warn().Err(err).Str("kind", string(l.kind)).Msg("[content] load failed, using fallback")
	l.set(Result[T]{State: Failed, Err: err})
}

func (l *Loader[T]) set(r Result[T]) {
	l.mu.Lock()
	l.result = r
	l.mu.Unlock()
}

func (l *Loader[T]) Result() Result[T] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.result
}

// Done is closed when the loader reaches Loaded or Failed.
func (l *Loader[T]) Done() <-chan struct{} {
	return l.done
}
