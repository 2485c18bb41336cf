package db

import (
	"context"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/naulin/internal/model"
)

func TestMain(m *testing.M) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		// integration tests below skip themselves
		os.Exit(m.Run())
	}
	if err := InitTestDB("../../migrations"); err != nil {
		panic("could not initialize test database: " + err.Error())
	}
	os.Exit(m.Run())
}

func requireDB(t *testing.T) Store {
	t.Helper()
	if TestStore == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
	return TestStore
}

func TestIDArgKeepsFullRange(t *testing.T) {
	assert.Equal(t, "18446744073709551615", idArg(math.MaxUint64))
	assert.Equal(t, "0", idArg(0))
}

func TestReplaceContent_RoundTrip(t *testing.T) {
	store := requireDB(t)
	ctx := context.Background()

	msg := model.PrincipalMessage{Title: "Principal", Name: "Test Name", ImageURL: "/a.jpg", Message: "hello"}
	news := []model.NewsArticle{
		{ID: math.MaxUint64, Category: "Sports", Date: "Feb 1", Title: "Second by id", ShortDescription: "b"},
		{ID: 7, Category: "Academic", Date: "Jan 1", Title: "First by id", ShortDescription: "a"},
	}
	facilities := []model.Facility{
		{ID: 3, Name: "Library", Description: "books", IconName: "library"},
	}

	require.NoError(t, store.ReplaceContent(ctx, msg, news, facilities))

	gotMsg, err := store.GetPrincipalMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, msg, gotMsg)

	gotNews, err := store.ListNewsArticles(ctx)
	require.NoError(t, err)
	// slice order is preserved, not id order
	assert.Equal(t, news, gotNews)

	gotFacilities, err := store.ListFacilities(ctx)
	require.NoError(t, err)
	assert.Equal(t, facilities, gotFacilities)
}

func TestNewsArticle_CRUD(t *testing.T) {
	store := requireDB(t)
	ctx := context.Background()
	require.NoError(t, store.ReplaceContent(ctx, model.PrincipalMessage{Title: "P", Name: "N", Message: "M"}, nil, nil))

	created, err := store.CreateNewsArticle(ctx, model.NewsArticle{Category: "Academic", Date: "March 1, 2026", Title: "T", ShortDescription: "S"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), created.ID)

	created.Title = "Updated"
	require.NoError(t, store.UpdateNewsArticle(ctx, created))

	list, err := store.ListNewsArticles(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Updated", list[0].Title)

	require.NoError(t, store.DeleteNewsArticle(ctx, created.ID))
	assert.ErrorIs(t, store.DeleteNewsArticle(ctx, created.ID), ErrNotFound)
}

func TestFacility_CRUD(t *testing.T) {
	store := requireDB(t)
	ctx := context.Background()
	require.NoError(t, store.ReplaceContent(ctx, model.PrincipalMessage{Title: "P", Name: "N", Message: "M"}, nil, nil))

	a, err := store.CreateFacility(ctx, model.Facility{Name: "Lab", Description: "d", IconName: "science"})
	require.NoError(t, err)
	b, err := store.CreateFacility(ctx, model.Facility{Name: "Canteen", Description: "d", IconName: "canteen"})
	require.NoError(t, err)
	assert.Equal(t, a.ID+1, b.ID)

	assert.ErrorIs(t, store.UpdateFacility(ctx, model.Facility{ID: 999, Name: "x"}), ErrNotFound)

	list, err := store.ListFacilities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Facility{a, b}, list)
}
