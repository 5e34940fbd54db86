package favorites

import (
	"errors"
	"strconv"
	"strings"

	"github.com/kinfolium/kinfolium/internal/db/controller/favorite"
	treectl "github.com/kinfolium/kinfolium/internal/db/controller/tree"
	"github.com/kinfolium/kinfolium/internal/db/models"
)

// exportHeader is the literal column-name line opening every export.
const exportHeader = "gedcom_id, xref, favorite_type, url, title, note"

const exportColumns = 6

// ErrNoInput is returned when an import is attempted with no input at all.
var ErrNoInput = errors.New("import input is empty")

// escaper converts markup-significant characters to their text-safe
// entity equivalents before values are comma-joined. A value containing
// a raw comma still breaks a naive split on read-back; that is a known
// limitation of the flat format, kept as is.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
)

// unescaper reverses escaper; the ampersand entity goes last so it
// cannot manufacture new entities out of the others.
var unescaper = strings.NewReplacer(
	"&quot;", `"`,
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
)

// Export serializes every favorite a user owns, across all trees, as
// flat delimited text: a header line, then one six-column line per
// favorite.
func (e *Engine) Export(userID uint64) (string, error) {
	if userID == 0 {
		return "", favorite.ErrUserZero
	}

	var favs []models.Favorite
	if err := e.db.Where("user_id = ?", userID).Order("favorite_id").Find(&favs).Error; err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(exportHeader)
	b.WriteByte('\n')

	for _, fav := range favs {
		fields := []string{
			strconv.FormatUint(fav.TreeID, 10),
			escaper.Replace(fav.Xref),
			string(fav.Type),
			escaper.Replace(fav.URL),
			escaper.Replace(fav.Title),
			escaper.Replace(fav.Note),
		}
		b.WriteString(strings.Join(fields, ", "))
		b.WriteByte('\n')
	}

	return b.String(), nil
}

// ImportReport accumulates the three per-line outcome buckets of an
// import run. No bucket ever aborts the run; only total input absence
// is a hard failure.
type ImportReport struct {
	Added      []string
	Duplicates []string
	Errors     []string
}

// Counts returns the added, duplicate, and error totals.
func (r *ImportReport) Counts() (added, duplicates, errs int) {
	return len(r.Added), len(r.Duplicates), len(r.Errors)
}

// Import reads flat delimited text produced by Export and recreates
// the favorites for the given user. Each line is validated against the
// live tree set and, for GEDCOM types, against the actual records, so
// a stale export cannot plant dangling references. GEDCOM lines never
// take an import-supplied url; those are re-derived from the record at
// read time.
func (e *Engine) Import(userID uint64, input string) (*ImportReport, error) {
	if userID == 0 {
		return nil, favorite.ErrUserZero
	}
	if strings.TrimSpace(input) == "" {
		return nil, ErrNoInput
	}

	trees, err := treectl.List(e.db)
	if err != nil {
		return nil, err
	}
	treeByID := make(map[uint64]models.Tree, len(trees))
	for _, t := range trees {
		treeByID[t.ID] = t
	}

	report := &ImportReport{}

	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != exportColumns {
			report.Errors = append(report.Errors, line+" (wrong column count)")
			continue
		}
		for i := range fields {
			fields[i] = unescaper.Replace(strings.TrimSpace(fields[i]))
		}

		// Non-numeric tree ids are skipped outright; this also eats
		// the header line.
		treeID, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			continue
		}

		tree, known := treeByID[treeID]
		if !known {
			report.Errors = append(report.Errors, line+" (unknown tree)")
			continue
		}

		e.importLine(userID, tree, fields, line, report)
	}

	return report, nil
}

// importLine validates and inserts one parsed import line.
func (e *Engine) importLine(userID uint64, tree models.Tree, fields []string, line string, report *ImportReport) {
	var (
		xref    = fields[1]
		favType = models.FavoriteType(fields[2])
		url     = fields[3]
		title   = fields[4]
		note    = fields[5]
	)

	fav := &models.Favorite{
		UserID: userID,
		TreeID: tree.ID,
		Type:   favType,
		Title:  title,
		Note:   GroupNamed(note).Name(),
	}

	if favType == models.TypeURL {
		if _, err := favorite.GetByURL(e.db, userID, tree.ID, url); err == nil {
			report.Duplicates = append(report.Duplicates, line)
			return
		}
		fav.URL = url
	} else {
		if !favType.IsGedcom() {
			report.Errors = append(report.Errors, line+" (unknown favorite type)")
			return
		}
		if _, err := favorite.Get(e.db, userID, tree.ID, favType, xref); err == nil {
			report.Duplicates = append(report.Duplicates, line)
			return
		}
		if _, ok := e.records.FindRecord(favType, xref, tree); !ok {
			report.Errors = append(report.Errors, line+" (record not found)")
			return
		}
		fav.Xref = xref
	}

	err := favorite.Create(e.db, fav)
	switch {
	case errors.Is(err, favorite.ErrFavoriteExists):
		report.Duplicates = append(report.Duplicates, line)
	case err != nil:
		report.Errors = append(report.Errors, line+" ("+err.Error()+")")
	default:
		report.Added = append(report.Added, line)
	}
}
