package favorites

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinfolium/kinfolium/internal/favorites"
)

// parseForm posts the given form to a capture route and returns the
// parsed batch request.
func parseForm(t *testing.T, form url.Values) favorites.BatchRequest {
	t.Helper()

	var captured favorites.BatchRequest

	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		captured = parseBatch(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	return captured
}

func TestParseBatch_StaticFields(t *testing.T) {
	req := parseForm(t, url.Values{
		"selection":          {"-1"},
		"new-group":          {"Summer"},
		"default-group-name": {"Archive"},
	})

	assert.Equal(t, "-1", req.Selection)
	assert.Equal(t, "Summer", req.NewGroupText)
	assert.Equal(t, "Archive", req.DefaultGroupText)

	// absent sections stay absent
	assert.False(t, req.HasSecondary)
	assert.False(t, req.HasShared)
	assert.False(t, req.HasRenameDefault)
}

func TestParseBatch_SubmittedSections(t *testing.T) {
	req := parseForm(t, url.Values{
		"secondary-submitted": {"1"},
		"secondary":           {"2,Research", "3,Archive"},
		"shared-submitted":    {"1"},
		"shared":              {"deadbeef01020304"},
		"rename-default":      {"Starred"},
	})

	require.True(t, req.HasSecondary)
	assert.Equal(t, []string{"2,Research", "3,Archive"}, req.Secondary)

	require.True(t, req.HasShared)
	assert.Equal(t, []string{"deadbeef01020304"}, req.SharedKeys)

	require.True(t, req.HasRenameDefault)
	assert.Equal(t, "Starred", req.RenameDefaultTo)
}

func TestParseBatch_PerRowFields(t *testing.T) {
	req := parseForm(t, url.Values{
		"title-7":     {"New title"},
		"url-7":       {"https://example.org"},
		"was-title-7": {"Old title"},
		"was-url-7":   {"https://example.com"},
		"rename-3":    {"History"},
		"delete-5":    {"1"},
		"delete-2":    {"1"},
		"move-9":      {"deadbeef01020304"},
	})

	require.Len(t, req.URLEdits, 1)
	assert.Equal(t, favorites.URLEdit{
		FavoriteID: 7,
		Title:      "New title",
		URL:        "https://example.org",
		WasTitle:   "Old title",
		WasURL:     "https://example.com",
	}, req.URLEdits[0])

	require.Len(t, req.Renames, 1)
	assert.Equal(t, favorites.GroupRename{FavoriteID: 3, NewName: "History"}, req.Renames[0])

	// delete ids come back sorted
	assert.Equal(t, []uint64{2, 5}, req.DeleteIDs)

	require.Len(t, req.Moves, 1)
	assert.Equal(t, favorites.Move{FavoriteID: 9, TargetKey: "deadbeef01020304"}, req.Moves[0])
}

func TestParseBatch_NewURLRows(t *testing.T) {
	req := parseForm(t, url.Values{
		"new-title-aaaa": {"Library"},
		"new-url-aaaa":   {"https://library.example.com"},
		"new-title-bbbb": {""},
		"new-url-bbbb":   {""}, // fully empty rows dropped
	})

	require.Len(t, req.NewURLs, 1)
	assert.Equal(t, favorites.NewURLFavorite{
		Title:    "Library",
		URL:      "https://library.example.com",
		GroupKey: "aaaa",
	}, req.NewURLs[0])
}

func TestParseBatch_MalformedIDsDropped(t *testing.T) {
	req := parseForm(t, url.Values{
		"delete-abc": {"1"},
		"delete-0":   {"1"},
		"rename-":    {"History"},
		"move-xyz":   {"token"},
	})

	assert.Empty(t, req.DeleteIDs)
	assert.Empty(t, req.Renames)
	assert.Empty(t, req.Moves)
}
