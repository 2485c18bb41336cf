package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/naulin/internal/model"
)

// ids are NUMERIC(20,0); database/sql will not bind a uint64 with the high bit set
func idArg(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// @ PRINCIPAL MESSAGE
func (s *pgStore) GetPrincipalMessage(ctx context.Context) (model.PrincipalMessage, error) {
	var m model.PrincipalMessage
	const q = `
	SELECT title, name, image_url, message
	FROM principal_message
	WHERE id = 1;`

	err := s.db.GetContext(ctx, &m, q)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PrincipalMessage{}, ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Msg("[db] GetPrincipalMessage: failed to select principal message")
		return model.PrincipalMessage{}, err
	}
	return m, nil
}

func (s *pgStore) UpsertPrincipalMessage(ctx context.Context, m model.PrincipalMessage) error {
	if err := upsertPrincipalMessage(ctx, s.db, m); err != nil {
		log.Error().Err(err).Msg("[db] UpsertPrincipalMessage: failed to write principal message")
		return err
	}
	return nil
}

func upsertPrincipalMessage(ctx context.Context, ex sqlx.ExecerContext, m model.PrincipalMessage) error {
	const q = `
	INSERT INTO principal_message (id, title, name, image_url, message, updated_at)
	VALUES (1, $1, $2, $3, $4, now())
	ON CONFLICT (id) DO UPDATE
	SET title = EXCLUDED.title,
	    name = EXCLUDED.name,
	    image_url = EXCLUDED.image_url,
	    message = EXCLUDED.message,
	    updated_at = now();`
	_, err := ex.ExecContext(ctx, q, m.Title, m.Name, m.ImageURL, m.Message)
	return err
}

// @ NEWS
func (s *pgStore) ListNewsArticles(ctx context.Context) ([]model.NewsArticle, error) {
	out := []model.NewsArticle{}
	const q = `
	SELECT id, category, date, title, short_description
	FROM news_articles
	ORDER BY position, id;`
	if err := s.db.SelectContext(ctx, &out, q); err != nil {
		log.Error().Err(err).Msg("[db] ListNewsArticles: failed to select articles")
		return nil, err
	}
	return out, nil
}

// CreateNewsArticle appends the article. A zero ID is replaced with the next free one.
func (s *pgStore) CreateNewsArticle(ctx context.Context, a model.NewsArticle) (model.NewsArticle, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.NewsArticle{}, err
	}
	defer tx.Rollback()

	if a.ID == 0 {
		if a.ID, err = nextID(ctx, tx, "news_articles"); err != nil {
			log.Error().Err(err).Msg("[db] CreateNewsArticle: failed to allocate id")
			return model.NewsArticle{}, err
		}
	}

	const q = `
	INSERT INTO news_articles (id, category, date, title, short_description, position, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, (SELECT COALESCE(MAX(position), 0) + 1 FROM news_articles), now(), now());`
	if _, err := tx.ExecContext(ctx, q, idArg(a.ID), a.Category, a.Date, a.Title, a.ShortDescription); err != nil {
		log.Error().Err(err).Uint64("id", a.ID).Msg("[db] CreateNewsArticle: failed to insert article")
		return model.NewsArticle{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.NewsArticle{}, err
	}
	return a, nil
}

func (s *pgStore) UpdateNewsArticle(ctx context.Context, a model.NewsArticle) error {
	const q = `
	UPDATE news_articles
	SET category = $2, date = $3, title = $4, short_description = $5, updated_at = now()
	WHERE id = $1;`
	res, err := s.db.ExecContext(ctx, q, idArg(a.ID), a.Category, a.Date, a.Title, a.ShortDescription)
	if err != nil {
		log.Error().Err(err).Uint64("id", a.ID).Msg("[db] UpdateNewsArticle: failed to update article")
		return err
	}
	return expectRow(res)
}

func (s *pgStore) DeleteNewsArticle(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM news_articles WHERE id = $1;`, idArg(id))
	if err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("[db] DeleteNewsArticle: failed to delete article")
		return err
	}
	return expectRow(res)
}

// @ FACILITIES
func (s *pgStore) ListFacilities(ctx context.Context) ([]model.Facility, error) {
	out := []model.Facility{}
	const q = `
	SELECT id, name, description, icon_name
	FROM facilities
	ORDER BY position, id;`
	if err := s.db.SelectContext(ctx, &out, q); err != nil {
		log.Error().Err(err).Msg("[db] ListFacilities: failed to select facilities")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) CreateFacility(ctx context.Context, f model.Facility) (model.Facility, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Facility{}, err
	}
	defer tx.Rollback()

	if f.ID == 0 {
		if f.ID, err = nextID(ctx, tx, "facilities"); err != nil {
			log.Error().Err(err).Msg("[db] CreateFacility: failed to allocate id")
			return model.Facility{}, err
		}
	}

	const q = `
	INSERT INTO facilities (id, name, description, icon_name, position, created_at, updated_at)
	VALUES ($1, $2, $3, $4, (SELECT COALESCE(MAX(position), 0) + 1 FROM facilities), now(), now());`
	if _, err := tx.ExecContext(ctx, q, idArg(f.ID), f.Name, f.Description, f.IconName); err != nil {
		log.Error().Err(err).Uint64("id", f.ID).Msg("[db] CreateFacility: failed to insert facility")
		return model.Facility{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Facility{}, err
	}
	return f, nil
}

func (s *pgStore) UpdateFacility(ctx context.Context, f model.Facility) error {
	const q = `
	UPDATE facilities
	SET name = $2, description = $3, icon_name = $4, updated_at = now()
	WHERE id = $1;`
	res, err := s.db.ExecContext(ctx, q, idArg(f.ID), f.Name, f.Description, f.IconName)
	if err != nil {
		log.Error().Err(err).Uint64("id", f.ID).Msg("[db] UpdateFacility: failed to update facility")
		return err
	}
	return expectRow(res)
}

func (s *pgStore) DeleteFacility(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM facilities WHERE id = $1;`, idArg(id))
	if err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("[db] DeleteFacility: failed to delete facility")
		return err
	}
	return expectRow(res)
}

// @ SEED

// ReplaceContent swaps all page content in a single transaction.
// Rows keep the order of the given slices.
func (s *pgStore) ReplaceContent(ctx context.Context, m model.PrincipalMessage, news []model.NewsArticle, facilities []model.Facility) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM news_articles; DELETE FROM facilities;`); err != nil {
		return fmt.Errorf("clear content: %w", err)
	}
	if err := upsertPrincipalMessage(ctx, tx, m); err != nil {
		return fmt.Errorf("write principal message: %w", err)
	}

	const qNews = `
	INSERT INTO news_articles (id, category, date, title, short_description, position, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, now(), now());`
	for i, a := range news {
		if _, err := tx.ExecContext(ctx, qNews, idArg(a.ID), a.Category, a.Date, a.Title, a.ShortDescription, i+1); err != nil {
			return fmt.Errorf("insert article %d: %w", a.ID, err)
		}
	}

	const qFacilities = `
	INSERT INTO facilities (id, name, description, icon_name, position, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, now(), now());`
	for i, f := range facilities {
		if _, err := tx.ExecContext(ctx, qFacilities, idArg(f.ID), f.Name, f.Description, f.IconName, i+1); err != nil {
			return fmt.Errorf("insert facility %d: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info().
		Int("news", len(news)).
		Int("facilities", len(facilities)).
		Msg("[db] content replaced")
	return nil
}

func nextID(ctx context.Context, tx *sqlx.Tx, table string) (uint64, error) {
	var raw string
	q := fmt.Sprintf(`SELECT (COALESCE(MAX(id), 0) + 1)::text FROM %s;`, table)
	if err := tx.GetContext(ctx, &raw, q); err != nil {
		return 0, err
	}
	return strconv.ParseUint(raw, 10, 64)
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
