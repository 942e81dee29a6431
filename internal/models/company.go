package models

// Company is a marketing authorisation holder, manufacturer or distributor.
type Company struct {
	CompID       string  `db:"compid" json:"compid" binding:"required"`
	CoName       string  `db:"coname" json:"coname" binding:"required"`
	CoSName      *string `db:"cosname" json:"cosname"`
	StreetNumber *string `db:"street_number" json:"street_number"`
	Town         *string `db:"town" json:"town"`
	Zip          *string `db:"zip" json:"zip"`
	Country      *string `db:"country" json:"country"`
	Phone        *string `db:"phone" json:"phone"`
	CoEmail      *string `db:"coemail" json:"coemail"`
	RegNumber    *string `db:"regnumber" json:"regnumber"`
	EMEANumber   *string `db:"emeanumber" json:"emeanumber"`
	Status       *string `db:"status" json:"status"`
	Selectable   int     `db:"selectable" json:"selectable"`
}

// CompanySearchParams are the filters accepted by the company search.
type CompanySearchParams struct {
	CompID     string
	CoName     string
	EMEANumber string
	Country    string
	Lang       string
}

// CompanyRow is a company search or pick-list line.
type CompanyRow struct {
	CompID      string  `db:"compid" json:"compid"`
	CoName      string  `db:"coname" json:"coname"`
	Address     *string `db:"address" json:"address"`
	CountryText *string `db:"country_text" json:"country_text"`
	RegNumber   *string `db:"regnumber" json:"regnumber"`
}

// DrugCompany links a drug to a company in a role (cotype).
type DrugCompany struct {
	DrComID  string  `db:"drcomid" json:"drcomid" binding:"required"`
	CompID   string  `db:"compid" json:"compid" binding:"required"`
	DrugID   string  `db:"drugid" json:"drugid" binding:"required"`
	CoType   *string `db:"cotype" json:"cotype"`
	Comments *string `db:"comments" json:"comments"`
	Process  *string `db:"process" json:"process"`
	Seq      int     `db:"seq" json:"seq"`
}

// DefaultCompanyRole is applied when a drug search names a company but no role.
const DefaultCompanyRole = "AG"
