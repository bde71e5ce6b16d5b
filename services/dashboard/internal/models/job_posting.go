package models

import (
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
)

// Source column names in the pre-processed spreadsheet.
const (
	ColumnPrice         = "Price_USD"
	ColumnClientCountry = "client_country"
	ColumnSkillCategory = "Skill_Category"
	ColumnFriction      = "Freelancer_Friction_Index"
	ColumnJobType       = "Job_Type"
)

// RequiredColumns lists every column a source table must carry.
var RequiredColumns = []string{
	ColumnPrice,
	ColumnClientCountry,
	ColumnSkillCategory,
	ColumnFriction,
	ColumnJobType,
}

var postingNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// JobPosting is one row of the source table. A blank or unreadable numeric
// cell sets the matching Missing flag; the row still counts as a posting but
// the value takes no part in averages.
type JobPosting struct {
	ID              string  `json:"id"`
	Row             int     `json:"row"`
	Price           float64 `json:"price"`
	PriceMissing    bool    `json:"price_missing,omitempty"`
	ClientCountry   string  `json:"client_country"`
	SkillCategory   string  `json:"skill_category"`
	FrictionIndex   float64 `json:"friction_index"`
	FrictionMissing bool    `json:"friction_missing,omitempty"`
	JobType         string  `json:"job_type"`
}

// PostingID derives a stable identifier from the source name and row number,
// so reloading the same file yields the same IDs.
func PostingID(source string, row int) string {
	return uuid.NewSHA1(postingNamespace, []byte(source+"#"+strconv.Itoa(row))).String()
}

// Dataset is the loaded job posting table. It is never mutated after load.
// MissingValues counts numeric cells that were blank or unreadable.
type Dataset struct {
	Source        string       `json:"source"`
	Postings      []JobPosting `json:"postings"`
	MissingValues int          `json:"missing_values"`
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Postings)
}

func (d *Dataset) MarshalBinary() ([]byte, error) {
	return json.Marshal(d)
}

func (d *Dataset) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, d)
}
