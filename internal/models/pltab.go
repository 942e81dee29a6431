package models

// Reference columns that may be looked up through /pltab.
var PltabColumns = []string{
	"DRSTATUS", "FORM", "WSSTATUS", "LANGGREDIS", "COTYPE", "DRTYPE",
	"STCOUNTR", "UNIPS", "PATYPE", "PRESC", "APPLICPROC",
}

const (
	// PltabLanguages is the column listing the UI languages.
	PltabLanguages = "LANGGREDIS"
	// PltabColumnIndex is the column whose rows describe the other columns.
	PltabColumnIndex = "COLUMN"
)

// IsPltabColumn reports whether column is in the lookup allow-list.
func IsPltabColumn(column string) bool {
	for _, c := range PltabColumns {
		if c == column {
			return true
		}
	}
	return false
}

// PltabEntry is one localized reference value, keyed by (column, code, language).
type PltabEntry struct {
	Column      string  `db:"plcolumn" json:"column"`
	Code        string  `db:"plcode" json:"code"`
	Language    string  `db:"pllang" json:"language"`
	LongText    *string `db:"pltext" json:"longText"`
	ShortText   *string `db:"plstext" json:"shortText"`
	ExternalRef *string `db:"eutct" json:"externalRef"`
	Selectable  int     `db:"selectable" json:"selectable"`
	Seq         int     `db:"seq" json:"seq"`
	HTMLStyle   *string `db:"htmlstyle" json:"htmlStyle,omitempty"`
}

// PltabFields are the mutable attributes of a reference value.
type PltabFields struct {
	LongText    *string `json:"longText"`
	ShortText   *string `json:"shortText"`
	ExternalRef *string `json:"externalRef"`
	Selectable  *int    `json:"selectable"`
	Seq         *int    `json:"seq"`
	HTMLStyle   *string `json:"htmlStyle"`
}

// Option is a {value, label} pair for pick lists.
type Option struct {
	Value string `db:"plcode" json:"value"`
	Label string `db:"pltext" json:"label"`
}

// PltabInsert is the body of a new reference value.
type PltabInsert struct {
	Column   string `json:"column" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Language string `json:"language" binding:"required"`
	PltabFields
}
