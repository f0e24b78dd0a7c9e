package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinetrack/internal/app"
	"github.com/metinatakli/cinetrack/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"reference": {},
	"startTime": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for i := range cookies {
		req.AddCookie(&cookies[i])
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}

		switch nested := m[k].(type) {
		case map[string]any:
			cleanMap(nested)
		case []any:
			for _, item := range nested {
				if obj, ok := item.(map[string]any); ok {
					cleanMap(obj)
				}
			}
		}
	}
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read %s", path)

	_, err = db.Exec(context.Background(), string(content))
	require.NoError(t, err, "failed to execute %s", path)
}

// resetState empties every table and restarts the id sequences. Sessions are
// kept because scenario cookies are issued before BeforeTestFunc runs.
func resetState(t testing.TB, app *TestApp) {
	t.Helper()

	executeSQLFile(t, app.DB, "testdata/truncate.sql")
	flushCatalogCache(t, app.RedisClient)
	app.Mailer.Reset()
}

func flushCatalogCache(t testing.TB, client *redis.Client) {
	t.Helper()

	ctx := context.Background()

	keys, err := client.Keys(ctx, "catalog:*").Result()
	require.NoError(t, err)

	if len(keys) > 0 {
		require.NoError(t, client.Del(ctx, keys...).Err())
	}
}

// insertTestUser expects an empty users table so the row gets TestUserId.
func insertTestUser(t testing.TB, db *pgxpool.Pool) {
	t.Helper()

	user := &domain.User{Name: TestUserName, Email: TestUserEmail}
	require.NoError(t, user.Password.Set(TestUserPassword))

	_, err := db.Exec(context.Background(), `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)`,
		user.Name, user.Email, user.Password.Hash)
	require.NoError(t, err)
}

func countRows(t testing.TB, db *pgxpool.Pool, query string, args ...any) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(), query, args...).Scan(&count)
	require.NoError(t, err)

	return count
}

// authenticatedUserCookies commits a session for TestUserId straight to the
// session store and returns the cookie a browser would send back.
func (a *TestApp) authenticatedUserCookies(t testing.TB) []http.Cookie {
	return a.sessionCookies(t, TestUserId)
}

func (a *TestApp) sessionCookies(t testing.TB, userId int) []http.Cookie {
	t.Helper()

	ctx, err := a.SessionManager.Load(context.Background(), "")
	require.NoError(t, err)

	a.SessionManager.Put(ctx, app.SessionKeyUserId.String(), userId)

	token, expiry, err := a.SessionManager.Commit(ctx)
	require.NoError(t, err)

	return []http.Cookie{{
		Name:    a.SessionManager.Cookie.Name,
		Value:   token,
		Expires: expiry,
	}}
}

func newFakeOMDb() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("t") != TestCatalogTitle {
			w.Write([]byte(`{"Response": "False", "Error": "Movie not found!"}`))
			return
		}

		w.Write([]byte(`{
			"Response": "True",
			"Title": "` + TestCatalogTitle + `",
			"Year": "2014",
			"Genre": "Adventure, Drama, Sci-Fi",
			"Runtime": "169 min",
			"Poster": "N/A",
			"imdbRating": "8.7"
		}`))
	}))
}
