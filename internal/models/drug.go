package models

import "time"

// Drug is a row of the dr table.
type Drug struct {
	DrugID     string    `db:"drugid" json:"drugid" binding:"required"`
	DrName     string    `db:"drname" json:"drname" binding:"required"`
	DrStatus   *string   `db:"drstatus" json:"drstatus"`
	DrType     *string   `db:"drtype" json:"drtype"`
	ApplicProc *string   `db:"applicproc" json:"applicproc"`
	Barcode    *string   `db:"barcode" json:"barcode"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// DrugDetail is a drug with its reference codes resolved to labels.
type DrugDetail struct {
	Drug
	StatusText     *string `db:"status_text" json:"statusText"`
	TypeText       *string `db:"type_text" json:"typeText"`
	ApplicProcText *string `db:"applicproc_text" json:"applicprocText"`
}

// DrugUpdate carries the editable drug attributes.
type DrugUpdate struct {
	DrName     string  `json:"drname" binding:"required"`
	DrStatus   *string `json:"drstatus"`
	DrType     *string `json:"drtype"`
	ApplicProc *string `json:"applicproc"`
	Barcode    *string `json:"barcode"`
}

// DrugSearchParams are the filters accepted by the drug search.
type DrugSearchParams struct {
	DrName      string
	DrNameMatch string
	DrStatus    string
	Form        string
	DrType      string
	ApplicProc  string
	ATC         string
	Substance   string
	Company     string
	CoType      string
	Lang        string
}

// DrugMatchStartsWith switches the name filter from substring to prefix matching.
const DrugMatchStartsWith = "startsWith"

// DrugSearchRow is one line of the drug search result.
type DrugSearchRow struct {
	DrugID    string  `db:"drugid" json:"drugid"`
	DrName    string  `db:"drname" json:"drname"`
	DrStatus  *string `db:"drstatus" json:"drstatus"`
	Form      *string `db:"form" json:"form"`
	DrType    *string `db:"drtype" json:"drtype"`
	ATCCode   *string `db:"atccode" json:"atccode"`
	ATCDescr  *string `db:"atcdescr" json:"atcdescr"`
	Substance *string `db:"substancs" json:"substancs"`
	Company   *string `db:"company" json:"company"`
}

// DrugName is an autocomplete suggestion.
type DrugName struct {
	DrName string `db:"drname" json:"drname"`
}

// Substance is an active substance suggestion.
type Substance struct {
	Substance string `db:"substancs" json:"substancs"`
}

// DrugForm is a row of the drform table.
type DrugForm struct {
	PharmID      string  `db:"pharmid" json:"pharmid" binding:"required"`
	DrugID       string  `db:"drugid" json:"drugid" binding:"required"`
	FormCode     *string `db:"formcode" json:"formcode"`
	Seq          int     `db:"seq" json:"seq"`
	Strength     *string `db:"strength" json:"strength"`
	Administered *string `db:"administered" json:"administered"`
	PharmDescr   *string `db:"pharmdescr" json:"pharmdescr"`
	DrVolum      *string `db:"drvolum" json:"drvolum"`
	UnitCode     *string `db:"unitcode" json:"unitcode"`
	FormCateg    *string `db:"formcateg" json:"formcateg"`
}

// DrugATC links a drug to an ATC code.
type DrugATC struct {
	DrugID  string `db:"drugid" json:"drugid" binding:"required"`
	ATCCode string `db:"atccode" json:"atccode" binding:"required"`
}

// DrugATCRekey moves a drug/ATC link to a new key; empty fields keep the old value.
type DrugATCRekey struct {
	NewDrugID  string `json:"new_drugid"`
	NewATCCode string `json:"new_atccode"`
}

// ATC is an Anatomical Therapeutic Chemical classification code.
type ATC struct {
	ATCCode  string  `db:"atccode" json:"atccode" binding:"required"`
	ATCDescr *string `db:"atcdescr" json:"atcdescr"`
}
