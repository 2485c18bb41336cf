// exposes a Store interface that is passed to providers and API calls
package db

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/naulin/internal/model"
)

type Store interface {
	// page content reads
	GetPrincipalMessage(ctx context.Context) (model.PrincipalMessage, error)
	ListNewsArticles(ctx context.Context) ([]model.NewsArticle, error)
	ListFacilities(ctx context.Context) ([]model.Facility, error)

	// admin writes
	UpsertPrincipalMessage(ctx context.Context, m model.PrincipalMessage) error
	CreateNewsArticle(ctx context.Context, a model.NewsArticle) (model.NewsArticle, error)
	UpdateNewsArticle(ctx context.Context, a model.NewsArticle) error
	DeleteNewsArticle(ctx context.Context, id uint64) error
	CreateFacility(ctx context.Context, f model.Facility) (model.Facility, error)
	UpdateFacility(ctx context.Context, f model.Facility) error
	DeleteFacility(ctx context.Context, id uint64) error

	// seeding
	ReplaceContent(ctx context.Context, m model.PrincipalMessage, news []model.NewsArticle, facilities []model.Facility) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(db *sqlx.DB) Store {
	return &pgStore{db: db}
}
