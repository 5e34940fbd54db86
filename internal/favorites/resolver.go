package favorites

import (
	"strings"

	"github.com/kinfolium/kinfolium/internal/db/models"
)

// treeMarker is the fixed path segment that opens the tree scope:
// /tree/<name>/<view>/<xref>.
const treeMarker = "tree"

// viewLexicon maps record-view path segments to favorite types.
var viewLexicon = map[string]models.FavoriteType{
	"individual": models.TypeIndividual,
	"family":     models.TypeFamily,
	"media":      models.TypeMedia,
	"source":     models.TypeSource,
	"repository": models.TypeRepository,
}

// viewSegments is the reverse of viewLexicon, used when deriving a
// record's address from its type.
var viewSegments = map[models.FavoriteType]string{
	models.TypeIndividual: "individual",
	models.TypeFamily:     "family",
	models.TypeMedia:      "media",
	models.TypeSource:     "source",
	models.TypeRepository: "repository",
}

// Viewed identifies the record the current request is looking at.
// For URL targets Xref is empty and URL carries the normalized
// path plus any surviving query string.
type Viewed struct {
	Type models.FavoriteType
	Xref string
	URL  string
	// TreeName is the tree-name path segment the marker introduced.
	TreeName string
}

// ResolveViewed derives the viewed GEDCOM record from a request path.
// It returns false when the path holds no tree marker, has too few
// segments after it, or names an unrecognized view; a marker with too
// few trailing segments behaves as if the marker were absent.
func ResolveViewed(path string) (Viewed, bool) {
	segments := strings.Split(strings.Trim(path, "/"), "/")

	marker := -1
	for i, seg := range segments {
		if seg == treeMarker {
			marker = i
			break
		}
	}
	if marker < 0 || len(segments) < marker+4 {
		return Viewed{}, false
	}

	favType, ok := viewLexicon[segments[marker+2]]
	if !ok {
		return Viewed{}, false
	}

	return Viewed{
		Type:     favType,
		Xref:     segments[marker+3],
		TreeName: segments[marker+1],
	}, true
}

// ResolveViewedOrURL derives the viewed target from a request path and
// query, classifying anything that is not a recognized record view as
// a URL target. Toggle control tokens are stripped from the query
// before it becomes part of the URL identity.
func ResolveViewedOrURL(path, rawQuery string) Viewed {
	if v, ok := ResolveViewed(path); ok {
		return v
	}

	url := path
	if _, extras := ParseToggle(rawQuery); len(extras) > 0 {
		url += "?" + strings.Join(extras, "&")
	}

	return Viewed{Type: models.TypeURL, URL: url}
}

// RecordPath derives the canonical address of a GEDCOM record within a
// tree, the inverse of ResolveViewed.
func RecordPath(treeName string, favType models.FavoriteType, xref string) string {
	seg, ok := viewSegments[favType]
	if !ok {
		return ""
	}

	return "/" + treeMarker + "/" + treeName + "/" + seg + "/" + xref
}
