package registryclient

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// APIError is a non-2xx answer decoded from the {error, details} body.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("registry: %d %s: %s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("registry: %d %s", e.StatusCode, e.Message)
}

// Unauthorized reports a missing or rejected token.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Lang     string `json:"lang,omitempty"`
}

type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Lang     string `json:"lang"`
}

// DrugQuery are the drug search filters. Empty fields are not sent.
type DrugQuery struct {
	DrName     string
	StartsWith bool
	DrStatus   string
	Form       string
	DrType     string
	ApplicProc string
	ATC        string
	Substance  string
	Company    string
	CoType     string
	Lang       string
	Limit      int
	Offset     int
}

func (q DrugQuery) values() url.Values {
	v := url.Values{}
	setString(v, "drname", q.DrName)
	if q.StartsWith {
		v.Set("drnameMatch", "startsWith")
	}
	setString(v, "drstatus", q.DrStatus)
	setString(v, "FORM", q.Form)
	setString(v, "drtype", q.DrType)
	setString(v, "applicproc", q.ApplicProc)
	setString(v, "atc", q.ATC)
	setString(v, "substancs", q.Substance)
	setString(v, "company", q.Company)
	setString(v, "cotype", q.CoType)
	setString(v, "lang", q.Lang)
	setInt(v, "limit", q.Limit)
	setInt(v, "offset", q.Offset)
	return v
}

type DrugRow struct {
	DrugID    string  `json:"drugid"`
	DrName    string  `json:"drname"`
	DrStatus  *string `json:"drstatus"`
	Form      *string `json:"form"`
	DrType    *string `json:"drtype"`
	ATCCode   *string `json:"atccode"`
	ATCDescr  *string `json:"atcdescr"`
	Substance *string `json:"substancs"`
	Company   *string `json:"company"`
}

type DrugPage struct {
	Results []DrugRow `json:"results"`
	Total   int       `json:"total"`
}

// CompanyQuery are the company search filters. Empty fields are not sent.
type CompanyQuery struct {
	CompID     string
	CoName     string
	EMEANumber string
	Country    string
	Lang       string
	Limit      int
	Offset     int
}

func (q CompanyQuery) values() url.Values {
	v := url.Values{}
	setString(v, "compid", q.CompID)
	setString(v, "coname", q.CoName)
	setString(v, "emeanumber", q.EMEANumber)
	setString(v, "country", q.Country)
	setString(v, "lang", q.Lang)
	setInt(v, "limit", q.Limit)
	setInt(v, "offset", q.Offset)
	return v
}

type CompanyRow struct {
	CompID      string  `json:"compid"`
	CoName      string  `json:"coname"`
	Address     *string `json:"address"`
	CountryText *string `json:"country_text"`
	RegNumber   *string `json:"regnumber"`
}

type CompanyPage struct {
	Results []CompanyRow `json:"results"`
	Total   int          `json:"total"`
}

type PltabEntry struct {
	Column      string  `json:"column"`
	Code        string  `json:"code"`
	Language    string  `json:"language"`
	LongText    *string `json:"longText"`
	ShortText   *string `json:"shortText"`
	ExternalRef *string `json:"externalRef"`
	Selectable  int     `json:"selectable"`
	Seq         int     `json:"seq"`
}

type PriceRow struct {
	DateFrom       string              `json:"datefrom"`
	DateUntil      *string             `json:"dateuntil"`
	ProducerPrice  decimal.NullDecimal `json:"producerPrice"`
	WholesalePrice decimal.NullDecimal `json:"wholesalePrice"`
	RetailPrice    decimal.NullDecimal `json:"retailPrice"`
	HospitalPrice  decimal.NullDecimal `json:"hospitalPrice"`
	VAT            decimal.Decimal     `json:"vat"`
	Misyfa         bool                `json:"misyfa"`
	Negative       bool                `json:"negative"`
	Status         string              `json:"status"`
}

type PriceFlags struct {
	Misyfa         bool   `json:"misyfa"`
	Negative       bool   `json:"negative"`
	Rule           string `json:"rule"`
	SourceDateFrom string `json:"sourceDateFrom"`
	Ambiguous      bool   `json:"ambiguous"`
}

type PriceList struct {
	Results []PriceRow `json:"results"`
	Total   int        `json:"total"`
	Flags   PriceFlags `json:"flags"`
}
