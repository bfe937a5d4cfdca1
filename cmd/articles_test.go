package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleLifecycle(t *testing.T) {
	ta := newTestApp(t)
	authorToken := ta.register(t, "author")
	otherToken := ta.register(t, "other")

	slug := ta.createArticle(t, authorToken, "How to train your dragon", "dragons", "training")
	assert.Regexp(t, `^how-to-train-your-dragon-[a-z0-9]{6}$`, slug)

	res := ta.do(t, http.MethodGet, "/api/articles/"+slug, "", nil)
	require.Equal(t, http.StatusOK, res.Status)
	article := object(t, res.Body, "article")
	assert.Equal(t, []any{"dragons", "training"}, article["tagList"])
	assert.Equal(t, false, article["favorited"])
	assert.NotContains(t, object(t, article, "author"), "email")

	res = ta.do(t, http.MethodPut, "/api/articles/"+slug, otherToken, envelope{"article": envelope{"title": "Stolen"}})
	assert.Equal(t, http.StatusForbidden, res.Status)

	res = ta.do(t, http.MethodPut, "/api/articles/"+slug, authorToken, envelope{"article": envelope{"body": "updated"}})
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, slug, object(t, res.Body, "article")["slug"])

	res = ta.do(t, http.MethodPut, "/api/articles/"+slug, authorToken, envelope{"article": envelope{"title": "Dragons, revisited"}})
	require.Equal(t, http.StatusOK, res.Status)
	newSlug := object(t, res.Body, "article")["slug"].(string)
	assert.Regexp(t, `^dragons-revisited-[a-z0-9]{6}$`, newSlug)

	res = ta.do(t, http.MethodGet, "/api/articles/"+slug, "", nil)
	assert.Equal(t, http.StatusNotFound, res.Status)

	res = ta.do(t, http.MethodDelete, "/api/articles/"+newSlug, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, res.Status)
	res = ta.do(t, http.MethodDelete, "/api/articles/"+newSlug, authorToken, nil)
	assert.Equal(t, http.StatusNoContent, res.Status)
	res = ta.do(t, http.MethodGet, "/api/articles/"+newSlug, "", nil)
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestCreateArticleValidation(t *testing.T) {
	ta := newTestApp(t)
	token := ta.register(t, "author")

	res := ta.do(t, http.MethodPost, "/api/articles", token, envelope{"article": envelope{"title": "", "description": "d", "body": "b"}})
	require.Equal(t, http.StatusUnprocessableEntity, res.Status)
	assert.Contains(t, object(t, res.Body, "errorDetails"), "title")

	res = ta.do(t, http.MethodPost, "/api/articles", token, envelope{"article": envelope{"title": "t", "description": "d", "body": "b", "tagList": []string{"ok", " "}}})
	require.Equal(t, http.StatusUnprocessableEntity, res.Status)
	assert.Contains(t, object(t, res.Body, "errorDetails"), "tagList")
}

func TestFavoriteIsIdempotent(t *testing.T) {
	ta := newTestApp(t)
	authorToken := ta.register(t, "author")
	fanToken := ta.register(t, "fan")
	slug := ta.createArticle(t, authorToken, "Favorite me")

	for i := 0; i < 2; i++ {
		res := ta.do(t, http.MethodPost, "/api/articles/"+slug+"/favorite", fanToken, nil)
		require.Equal(t, http.StatusOK, res.Status)
		article := object(t, res.Body, "article")
		assert.Equal(t, true, article["favorited"])
		assert.Equal(t, float64(1), article["favoritesCount"])
	}

	res := ta.do(t, http.MethodGet, "/api/articles?favorited=fan", "", nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, float64(1), res.Body["articlesCount"])

	for i := 0; i < 2; i++ {
		res = ta.do(t, http.MethodDelete, "/api/articles/"+slug+"/favorite", fanToken, nil)
		require.Equal(t, http.StatusOK, res.Status)
		article := object(t, res.Body, "article")
		assert.Equal(t, false, article["favorited"])
		assert.Equal(t, float64(0), article["favoritesCount"])
	}

	res = ta.do(t, http.MethodGet, "/api/articles?favorited=fan", "", nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, float64(0), res.Body["articlesCount"])
	assert.Equal(t, []any{}, res.Body["articles"])

	res = ta.do(t, http.MethodPost, "/api/articles/missing/favorite", fanToken, nil)
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestListAndFeed(t *testing.T) {
	ta := newTestApp(t)
	aliceToken := ta.register(t, "alice")
	bobToken := ta.register(t, "bob")
	readerToken := ta.register(t, "reader")

	for i := 1; i <= 3; i++ {
		ta.createArticle(t, aliceToken, fmt.Sprintf("Alice %d", i), "go")
	}
	ta.createArticle(t, bobToken, "Bob 1", "golang")

	res := ta.do(t, http.MethodGet, "/api/articles/feed", readerToken, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, float64(0), res.Body["articlesCount"])
	assert.Equal(t, []any{}, res.Body["articles"])

	require.Equal(t, http.StatusOK, ta.do(t, http.MethodPost, "/api/profiles/alice/follow", readerToken, nil).Status)

	res = ta.do(t, http.MethodGet, "/api/articles/feed?limit=2", readerToken, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, float64(3), res.Body["articlesCount"])
	articles := res.Body["articles"].([]any)
	require.Len(t, articles, 2)
	first := articles[0].(map[string]any)
	assert.Equal(t, "Alice 3", first["title"])
	assert.Equal(t, true, object(t, first, "author")["following"])

	res = ta.do(t, http.MethodGet, "/api/articles?tag=go", "", nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, float64(3), res.Body["articlesCount"])

	res = ta.do(t, http.MethodGet, "/api/articles?author=bob", "", nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, float64(1), res.Body["articlesCount"])

	res = ta.do(t, http.MethodGet, "/api/articles?sortOrder=asc&limit=1", "", nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, float64(4), res.Body["articlesCount"])
	assert.Equal(t, "Alice 1", res.Body["articles"].([]any)[0].(map[string]any)["title"])

	for _, query := range []string{"limit=0", "limit=abc", "offset=-1", "sortOrder=sideways"} {
		res = ta.do(t, http.MethodGet, "/api/articles?"+query, "", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, res.Status, query)
	}

	res = ta.do(t, http.MethodGet, "/api/tags", "", nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, []any{"go", "golang"}, res.Body["tags"])
}

func TestComments(t *testing.T) {
	ta := newTestApp(t)
	authorToken := ta.register(t, "author")
	readerToken := ta.register(t, "reader")
	slug := ta.createArticle(t, authorToken, "Talk to me")

	res := ta.do(t, http.MethodPost, "/api/articles/"+slug+"/comments", readerToken, envelope{"comment": envelope{"body": "Nice!"}})
	require.Equal(t, http.StatusCreated, res.Status)
	comment := object(t, res.Body, "comment")
	assert.Equal(t, "Nice!", comment["body"])
	assert.Equal(t, "reader", object(t, comment, "author")["username"])
	commentPath := fmt.Sprintf("/api/articles/%s/comments/%v", slug, comment["id"])

	res = ta.do(t, http.MethodGet, "/api/articles/"+slug+"/comments", "", nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, res.Body["comments"], 1)

	res = ta.do(t, http.MethodPost, "/api/articles/"+slug+"/comments", readerToken, envelope{"comment": envelope{"body": "  "}})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Status)

	res = ta.do(t, http.MethodDelete, commentPath, authorToken, nil)
	assert.Equal(t, http.StatusForbidden, res.Status)
	res = ta.do(t, http.MethodDelete, "/api/articles/"+slug+"/comments/abc", readerToken, nil)
	assert.Equal(t, http.StatusNotFound, res.Status)
	res = ta.do(t, http.MethodDelete, commentPath, readerToken, nil)
	assert.Equal(t, http.StatusNoContent, res.Status)

	res = ta.do(t, http.MethodGet, "/api/articles/"+slug+"/comments", "", nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, []any{}, res.Body["comments"])
}
