package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/atlas/internal/api"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "atlas.db"))
	require.NoError(t, err)
	return New(db, nil)
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestSaveCountry_IgnoresDuplicates(t *testing.T) {
	app := newTestApp(t)

	for i := 0; i < 2; i++ {
		status, body := doJSON(t, app, http.MethodPost, api.PathSaveCountry, `{"country_name":"Canada"}`)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Success! Country saved.", body)
	}
	doJSON(t, app, http.MethodPost, api.PathSaveCountry, `{"country_name":"Peru"}`)

	status, body := doJSON(t, app, http.MethodGet, api.PathSavedCountries, "")
	require.Equal(t, http.StatusOK, status)
	var saved []api.SavedCountry
	require.NoError(t, json.Unmarshal([]byte(body), &saved))
	assert.Equal(t, []api.SavedCountry{{CountryName: "Canada"}, {CountryName: "Peru"}}, saved)
}

func TestUpdateCountryCount_Increments(t *testing.T) {
	app := newTestApp(t)

	for want := 1; want <= 3; want++ {
		status, body := doJSON(t, app, http.MethodPost, api.PathUpdateCount, `{"country_name":"Canada"}`)
		require.Equal(t, http.StatusOK, status)
		var got api.ViewCount
		require.NoError(t, json.Unmarshal([]byte(body), &got))
		assert.Equal(t, want, got.Count)
	}

	_, body := doJSON(t, app, http.MethodPost, api.PathUpdateCount, `{"country_name":"Peru"}`)
	assert.JSONEq(t, `{"count":1}`, body)
}

func TestRejectsMalformedBodies(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, api.PathSaveCountry, `{"country_name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "country_name is required")

	status, _ = doJSON(t, app, http.MethodPost, api.PathUpdateCount, `{not json`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodPost, api.PathAddUser, `{"name":"Ada"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestNewestUser(t *testing.T) {
	app := newTestApp(t)

	_, body := doJSON(t, app, http.MethodGet, api.PathNewestUser, "")
	assert.JSONEq(t, `[]`, body)

	status, body := doJSON(t, app, http.MethodPost, api.PathAddUser, `{"name":"Ada","country_name":"Canada","email":"ada@example.com","bio":"first"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Success! User added.", body)
	doJSON(t, app, http.MethodPost, api.PathAddUser, `{"name":"Grace","country_name":"Peru","email":"grace@example.com","bio":"second"}`)

	_, body = doJSON(t, app, http.MethodGet, api.PathNewestUser, "")
	var users []api.User
	require.NoError(t, json.Unmarshal([]byte(body), &users))
	require.Len(t, users, 1)
	assert.Equal(t, api.User{Name: "Grace", CountryName: "Peru", Email: "grace@example.com", Bio: "second"}, users[0])
}

func TestRequestIDEchoed(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, api.PathSavedCountries, nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

// The client and the reference backend agree on the contract.
func TestClientAgainstServer(t *testing.T) {
	app := newTestApp(t)
	ts := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(ts.Close)

	client, err := api.NewClient(ts.URL, api.Options{})
	require.NoError(t, err)
	ctx := context.Background()

	msg, err := client.SaveCountry(ctx, "Canada")
	require.NoError(t, err)
	assert.Equal(t, "Success! Country saved.", msg)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.UpdateCountryCount(ctx, "Canada")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	count, err := client.UpdateCountryCount(ctx, "Canada")
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	saved, err := client.SavedCountries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []api.SavedCountry{{CountryName: "Canada"}}, saved)

	user, err := client.NewestUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	_, err = client.AddUser(ctx, api.User{Name: "Ada", CountryName: "Canada", Email: "ada@example.com", Bio: "hi"})
	require.NoError(t, err)
	user, err = client.NewestUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ada", user.Name)

	_, err = client.SaveCountry(ctx, " ")
	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.Status)
}
