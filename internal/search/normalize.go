package search

import (
	"net/http"
	"strings"

	libinjection "github.com/corazawaf/libinjection-go"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/GTDGit/pharmreg_api/internal/utils"
)

// Normalize is the one transformation applied to every incoming filter value:
// NFC composition, full/half-width folding, trimming and uppercasing.
// Accents are kept so that Greek names still match their stored form.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = width.Fold.String(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// Casers keep state and must not be shared between goroutines.
	return cases.Upper(language.Und).String(s)
}

// Screen rejects free-text values that look like SQL injection payloads.
// Values are always bound as parameters; this only turns obvious probes into
// a 400 instead of an empty result.
func Screen(field, value string) error {
	if value == "" {
		return nil
	}
	if isSQLi, fingerprint := libinjection.IsSQLi(value); isSQLi {
		return &utils.AppError{
			Status:  http.StatusBadRequest,
			Message: "Invalid search value",
			Details: field + " rejected (" + string(fingerprint) + ")",
		}
	}
	return nil
}
