package content

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Nixie-Tech-LLC/naulin/internal/model"
	"github.com/Nixie-Tech-LLC/naulin/internal/provider"
)

const DefaultFetchTimeout = 3 * time.Second

type pageOptions struct {
	fetchTimeout time.Duration
}

type PageOption func(*pageOptions)

// WithFetchTimeout bounds each individual provider read.
func WithFetchTimeout(d time.Duration) PageOption {
	return func(o *pageOptions) { o.fetchTimeout = d }
}

// Page owns the three independent content loaders of one page view.
type Page struct {
	message    *Loader[model.PrincipalMessage]
	news       *Loader[[]model.NewsArticle]
	facilities *Loader[[]model.Facility]
}

func NewPage(conn *provider.Connection, opts ...PageOption) *Page {
	o := pageOptions{fetchTimeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return &Page{
		message:    NewMessageLoader(conn, o.fetchTimeout),
		news:       NewNewsLoader(conn, o.fetchTimeout),
		facilities: NewFacilitiesLoader(conn, o.fetchTimeout),
	}
}

// Load runs the three loaders concurrently and returns when each has settled or ctx is done.
// The error is the first loader failure, if any; a failed section still renders its fallback.
// A section whose loader has not settled renders as pending.
func (p *Page) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return p.message.Load(ctx).Err })
	g.Go(func() error { return p.news.Load(ctx).Err })
	g.Go(func() error { return p.facilities.Load(ctx).Err })
	return g.Wait()
}

type MessageSection struct {
	State   State
	Pending bool
	Message model.PrincipalMessage
}

type NewsSection struct {
	State    State
	Pending  bool
	Articles []model.NewsArticle
	// Notice is non-empty when the articles could not be loaded.
	Notice string
}

// FacilityView is a facility paired with its resolved icon.
type FacilityView struct {
	model.Facility
	Icon Icon
}

type FacilitiesSection struct {
	State      State
	Pending    bool
	Facilities []FacilityView
}

func (p *Page) Message() MessageSection {
	r := p.message.Result()
	s := MessageSection{State: r.State, Pending: !r.State.Terminal()}
	if !s.Pending {
		s.Message = DisplayMessage(r)
	}
	return s
}

func (p *Page) News() NewsSection {
	r := p.news.Result()
	s := NewsSection{State: r.State, Pending: !r.State.Terminal()}
	if s.Pending {
		return s
	}
	s.Articles = DisplayArticles(r)
	if r.State == Failed {
		s.Notice = NewsErrorNotice
	}
	return s
}

func (p *Page) Facilities() FacilitiesSection {
	r := p.facilities.Result()
	s := FacilitiesSection{State: r.State, Pending: !r.State.Terminal()}
	if s.Pending {
		return s
	}
	for _, f := range DisplayFacilities(r) {
		s.Facilities = append(s.Facilities, FacilityView{Facility: f, Icon: ResolveIcon(f.IconName)})
	}
	return s
}

// Pending reports whether any section is still waiting on its loader.
func (p *Page) Pending() bool {
	return !p.message.Result().State.Terminal() ||
		!p.news.Result().State.Terminal() ||
		!p.facilities.Result().State.Terminal()
}
