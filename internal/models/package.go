package models

import "github.com/shopspring/decimal"

// DrugPackage is a row of the drdp table: one marketed pack of a drug.
type DrugPackage struct {
	DrdpID   string  `db:"drdpid" json:"drdpid" binding:"required"`
	DrugID   string  `db:"drugid" json:"drugid" binding:"required"`
	PackNr   *string `db:"packnr" json:"packnr"`
	PaText   *string `db:"patext" json:"patext"`
	DpSize   *string `db:"dpsize" json:"dpsize"`
	DpUnit   *string `db:"dpunit" json:"dpunit"`
	DpStatus *string `db:"dpstatus" json:"dpstatus"`
	DpType   *string `db:"dptype" json:"dptype"`
	LeStatus *string `db:"lestatus" json:"lestatus"`
	NarCateg *string `db:"narcateg" json:"narcateg"`
	Barcode  *string `db:"barcode" json:"barcode"`
	EUNumber *string `db:"eunumber" json:"eunumber"`
}

// PackageSearchParams are the filters accepted by the package search.
type PackageSearchParams struct {
	DrugID   string
	PackNr   string
	PaText   string
	Barcode  string
	EUNumber string
	DpStatus string
	Lang     string
}

// PackageRow is a package with its reference codes resolved to labels.
type PackageRow struct {
	DrdpID       string  `db:"drdpid" json:"drdpid"`
	DrugID       string  `db:"drugid" json:"drugid"`
	PackNr       *string `db:"packnr" json:"packnr"`
	PaText       *string `db:"patext" json:"patext"`
	Size         *string `db:"size" json:"size"`
	StatusText   *string `db:"status_text" json:"status_text"`
	TypeText     *string `db:"type_text" json:"type_text"`
	LeStatusText *string `db:"lestatus_text" json:"lestatus_text"`
	NarCateg     *string `db:"narcateg" json:"narcateg"`
	Barcode      *string `db:"barcode" json:"barcode"`
	EUNumber     *string `db:"eunumber" json:"eunumber"`
}

// PackageOption is a package entry for the price-list pickers.
type PackageOption struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	DrdpID string `json:"drdpid"`
	PackNr string `json:"packnr"`
	PaText string `json:"patext"`
}

// PackageRef is the raw row behind a PackageOption.
type PackageRef struct {
	DrdpID string  `db:"drdpid"`
	PackNr *string `db:"packnr"`
	PaText *string `db:"patext"`
}

// Price-list row status labels.
const (
	PriceActive  = "ACTIVE"
	PriceExpired = "EXPIRED"
)

// PriceRow is one price-list period of a package. Amounts are fixed-point.
type PriceRow struct {
	DateFrom       string              `db:"datefrom" json:"datefrom"`
	DateUntil      *string             `db:"dateuntil" json:"dateuntil"`
	ProducerPrice  decimal.NullDecimal `db:"producerprice" json:"producerPrice"`
	WholesalePrice decimal.NullDecimal `db:"wholesaleprice" json:"wholesalePrice"`
	RetailPrice    decimal.NullDecimal `db:"retailprice" json:"retailPrice"`
	HospitalPrice  decimal.NullDecimal `db:"hospitalprice" json:"hospitalPrice"`
	VAT            decimal.Decimal     `db:"vat" json:"vat"`
	Misyfa         bool                `db:"misyfa" json:"misyfa"`
	Negative       bool                `db:"negative" json:"negative"`
	Status         string              `db:"status" json:"status"`
}

// PriceFlags are the package-level flags taken from one representative row.
type PriceFlags struct {
	Misyfa         bool   `json:"misyfa"`
	Negative       bool   `json:"negative"`
	Rule           string `json:"rule"`
	SourceDateFrom string `json:"sourceDateFrom"`
	Ambiguous      bool   `json:"ambiguous"`
}

// PriceList is the resolved price history of a package.
type PriceList struct {
	Results []PriceRow `json:"results"`
	Total   int        `json:"total"`
	Flags   PriceFlags `json:"flags"`
}

// Document is one stored version of a package leaflet (PL) or product
// characteristics summary (SPC). Doc is base64 encoded.
type Document struct {
	Version  int     `db:"version" json:"version"`
	Date     *string `db:"docdate" json:"date"`
	DocType  *string `db:"doctype" json:"doctype"`
	Username *string `db:"username" json:"username"`
	Doc      *string `db:"doc" json:"doc"`
}
