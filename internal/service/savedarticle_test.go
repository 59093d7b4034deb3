package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsdesk/newsdesk/internal/metrics"
	"github.com/newsdesk/newsdesk/internal/model"
	"github.com/newsdesk/newsdesk/internal/repository"
)

type fakeSavedArticleStore struct {
	articlesByID  map[string]*model.Article
	articlesByURL map[string]*model.Article
	users         map[string]bool
	saved         map[string]*model.SavedArticle // key: userID + "/" + articleID

	createArticleErr      error
	createSavedArticleErr error
	urlMissesRemaining    int
}

func newFakeSavedArticleStore() *fakeSavedArticleStore {
	return &fakeSavedArticleStore{
		articlesByID:  make(map[string]*model.Article),
		articlesByURL: make(map[string]*model.Article),
		users:         make(map[string]bool),
		saved:         make(map[string]*model.SavedArticle),
	}
}

func (f *fakeSavedArticleStore) addArticle(article *model.Article) {
	f.articlesByID[article.ID] = article
	f.articlesByURL[article.URL] = article
}

func (f *fakeSavedArticleStore) GetArticleByID(ctx context.Context, id string) (*model.Article, error) {
	article, ok := f.articlesByID[id]
	if !ok {
		return nil, repository.ErrArticleNotFound
	}
	return article, nil
}

func (f *fakeSavedArticleStore) GetArticleByURL(ctx context.Context, url string) (*model.Article, error) {
	if f.urlMissesRemaining > 0 {
		f.urlMissesRemaining--
		return nil, repository.ErrArticleNotFound
	}
	article, ok := f.articlesByURL[url]
	if !ok {
		return nil, repository.ErrArticleNotFound
	}
	return article, nil
}

func (f *fakeSavedArticleStore) CreateArticle(ctx context.Context, article *model.Article) error {
	if f.createArticleErr != nil {
		return f.createArticleErr
	}
	if _, ok := f.articlesByURL[article.URL]; ok {
		return repository.ErrURLExists
	}
	f.addArticle(article)
	return nil
}

func (f *fakeSavedArticleStore) UserExists(ctx context.Context, id string) (bool, error) {
	return f.users[id], nil
}

func (f *fakeSavedArticleStore) GetSavedArticle(ctx context.Context, userID, articleID string) (*model.SavedArticle, error) {
	saved, ok := f.saved[userID+"/"+articleID]
	if !ok {
		return nil, repository.ErrSavedArticleNotFound
	}
	return saved, nil
}

func (f *fakeSavedArticleStore) CreateSavedArticle(ctx context.Context, saved *model.SavedArticle) error {
	if f.createSavedArticleErr != nil {
		return f.createSavedArticleErr
	}
	key := saved.UserID + "/" + saved.ArticleID
	if _, ok := f.saved[key]; ok {
		return repository.ErrAlreadySaved
	}
	f.saved[key] = saved
	return nil
}

func (f *fakeSavedArticleStore) ListSavedArticles(ctx context.Context, userID string) ([]*model.SavedArticle, error) {
	var out []*model.SavedArticle
	for _, saved := range f.saved {
		if saved.UserID == userID {
			out = append(out, saved)
		}
	}
	return out, nil
}

func (f *fakeSavedArticleStore) DeleteSavedArticle(ctx context.Context, userID, articleID string) error {
	key := userID + "/" + articleID
	if _, ok := f.saved[key]; !ok {
		return repository.ErrSavedArticleNotFound
	}
	delete(f.saved, key)
	return nil
}

func newSavedArticleFixture() (*SavedArticleService, *fakeSavedArticleStore) {
	store := newFakeSavedArticleStore()
	store.users["user-1"] = true
	return NewSavedArticleService(store, metrics.NewInMemory()), store
}

func TestSaveArticle_ByID(t *testing.T) {
	ctx := context.Background()
	svc, store := newSavedArticleFixture()

	article := &model.Article{ID: "article-1", URL: "https://news.example.com/a", Title: "A"}
	store.addArticle(article)

	saved, err := svc.SaveArticle(ctx, SaveArticleInput{UserID: "user-1", ArticleID: "article-1"})
	require.NoError(t, err)

	assert.Equal(t, "user-1", saved.UserID)
	assert.Equal(t, "article-1", saved.ArticleID)
	assert.NotEmpty(t, saved.ID)
	assert.Same(t, article, saved.Article)
}

func TestSaveArticle_DeduplicatesByURL(t *testing.T) {
	ctx := context.Background()
	svc, store := newSavedArticleFixture()

	// Persisted under a different primary key than the caller supplies.
	existing := &model.Article{ID: "internal-id", URL: "https://news.example.com/a", Title: "A"}
	store.addArticle(existing)

	saved, err := svc.SaveArticle(ctx, SaveArticleInput{
		UserID:    "user-1",
		ArticleID: "external-id",
		Article:   &ArticleData{URL: "https://news.example.com/a", Title: "A"},
	})
	require.NoError(t, err)

	assert.Equal(t, "internal-id", saved.ArticleID, "save should reference the already-persisted article")
}

func TestSaveArticle_LazyCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with defaults", func(t *testing.T) {
		svc, store := newSavedArticleFixture()

		saved, err := svc.SaveArticle(ctx, SaveArticleInput{
			UserID:    "user-1",
			ArticleID: "fresh-id",
			Article: &ArticleData{
				URL:   "https://news.example.com/fresh",
				Title: "Fresh",
			},
		})
		require.NoError(t, err)

		created := store.articlesByID["fresh-id"]
		require.NotNil(t, created, "article should be created under the supplied identifier")
		assert.Equal(t, model.DefaultCategory, created.Category)
		assert.Empty(t, created.Description)
		assert.False(t, created.PublishedAt.IsZero())
		assert.Equal(t, "fresh-id", saved.ArticleID)
	})

	t.Run("parses published_at", func(t *testing.T) {
		svc, store := newSavedArticleFixture()

		_, err := svc.SaveArticle(ctx, SaveArticleInput{
			UserID:    "user-1",
			ArticleID: "dated-id",
			Article: &ArticleData{
				URL:         "https://news.example.com/dated",
				Title:       "Dated",
				PublishedAt: "2026-01-15T08:30:00Z",
			},
		})
		require.NoError(t, err)

		created := store.articlesByID["dated-id"]
		require.NotNil(t, created)
		assert.Equal(t, time.Date(2026, 1, 15, 8, 30, 0, 0, time.UTC), created.PublishedAt)
	})

	t.Run("rejects malformed published_at", func(t *testing.T) {
		svc, _ := newSavedArticleFixture()

		_, err := svc.SaveArticle(ctx, SaveArticleInput{
			UserID:    "user-1",
			ArticleID: "bad-date-id",
			Article: &ArticleData{
				URL:         "https://news.example.com/bad-date",
				Title:       "Bad date",
				PublishedAt: "January 15th",
			},
		})
		assert.ErrorIs(t, err, ErrInvalidArticleData)
	})

	t.Run("rejects missing url or title", func(t *testing.T) {
		svc, _ := newSavedArticleFixture()

		_, err := svc.SaveArticle(ctx, SaveArticleInput{
			UserID:    "user-1",
			ArticleID: "no-title-id",
			Article:   &ArticleData{URL: "https://news.example.com/x"},
		})
		assert.ErrorIs(t, err, ErrInvalidArticleData)

		_, err = svc.SaveArticle(ctx, SaveArticleInput{
			UserID:    "user-1",
			ArticleID: "no-url-id",
			Article:   &ArticleData{Title: "X"},
		})
		assert.ErrorIs(t, err, ErrInvalidArticleData)
	})

	t.Run("race on url falls back to the winner", func(t *testing.T) {
		svc, store := newSavedArticleFixture()

		// Another request inserted the article between our by-URL lookup
		// and our insert: the first lookup misses, the insert conflicts,
		// the retry lookup finds the winner.
		winner := &model.Article{ID: "winner-id", URL: "https://news.example.com/raced", Title: "Raced"}
		store.addArticle(winner)
		store.urlMissesRemaining = 1
		store.createArticleErr = repository.ErrURLExists

		saved, err := svc.SaveArticle(ctx, SaveArticleInput{
			UserID:    "user-1",
			ArticleID: "loser-id",
			Article:   &ArticleData{URL: "https://news.example.com/raced", Title: "Raced"},
		})
		require.NoError(t, err)
		assert.Equal(t, "winner-id", saved.ArticleID)
	})
}

func TestSaveArticle_Unresolvable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSavedArticleFixture()

	_, err := svc.SaveArticle(ctx, SaveArticleInput{UserID: "user-1", ArticleID: "ghost-id"})
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestSaveArticle_UserMissing(t *testing.T) {
	ctx := context.Background()
	svc, store := newSavedArticleFixture()

	store.addArticle(&model.Article{ID: "article-1", URL: "https://news.example.com/a", Title: "A"})

	_, err := svc.SaveArticle(ctx, SaveArticleInput{UserID: "ghost-user", ArticleID: "article-1"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSaveArticle_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc, store := newSavedArticleFixture()

	store.addArticle(&model.Article{ID: "article-1", URL: "https://news.example.com/a", Title: "A"})

	_, err := svc.SaveArticle(ctx, SaveArticleInput{UserID: "user-1", ArticleID: "article-1"})
	require.NoError(t, err)

	_, err = svc.SaveArticle(ctx, SaveArticleInput{UserID: "user-1", ArticleID: "article-1"})
	assert.ErrorIs(t, err, ErrAlreadySaved)
}

func TestSaveArticle_DuplicateRace(t *testing.T) {
	ctx := context.Background()
	svc, store := newSavedArticleFixture()

	store.addArticle(&model.Article{ID: "article-1", URL: "https://news.example.com/a", Title: "A"})
	// Pre-check misses but the insert collides; simulate a concurrent save.
	store.createSavedArticleErr = repository.ErrAlreadySaved

	_, err := svc.SaveArticle(ctx, SaveArticleInput{UserID: "user-1", ArticleID: "article-1"})
	assert.ErrorIs(t, err, ErrAlreadySaved)
}

func TestRemoveSavedArticle(t *testing.T) {
	ctx := context.Background()
	svc, store := newSavedArticleFixture()

	store.addArticle(&model.Article{ID: "article-1", URL: "https://news.example.com/a", Title: "A"})

	_, err := svc.SaveArticle(ctx, SaveArticleInput{UserID: "user-1", ArticleID: "article-1"})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveSavedArticle(ctx, "user-1", "article-1"))
	assert.Empty(t, store.saved)

	err = svc.RemoveSavedArticle(ctx, "user-1", "article-1")
	assert.ErrorIs(t, err, ErrSavedArticleNotFound)
}
