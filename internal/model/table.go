package model

// Record is one reconstructed table row. Values are kept verbatim from OCR;
// no numeric coercion is applied.
type Record struct {
	Name                 string `json:"name"`
	ID                   string `json:"id"`
	Basic                string `json:"basic"`
	EmployerContribution string `json:"employer_contribution"`
	EmployeeContribution string `json:"employee_contribution"`
	TotalContribution    string `json:"total_contribution"`
}

// RecordFieldCount is the number of positional fields in a Record.
const RecordFieldCount = 6

// RecordKeys lists the JSON keys of a Record in positional order.
var RecordKeys = [RecordFieldCount]string{
	"name", "id", "basic", "employer_contribution", "employee_contribution", "total_contribution",
}

// RecordFromFields maps values positionally onto a Record. Missing values stay empty,
// extra values are ignored.
func RecordFromFields(values []string) Record {
	var f [RecordFieldCount]string
	copy(f[:], values)
	return Record{
		Name:                 f[0],
		ID:                   f[1],
		Basic:                f[2],
		EmployerContribution: f[3],
		EmployeeContribution: f[4],
		TotalContribution:    f[5],
	}
}

// Fields returns the record values in positional order.
func (r Record) Fields() []string {
	return []string{r.Name, r.ID, r.Basic, r.EmployerContribution, r.EmployeeContribution, r.TotalContribution}
}

// ParsedTable is a table rebuilt from flat OCR lines. Headers and each row's fields
// line up position for position.
type ParsedTable struct {
	Headers []string `json:"headers"`
	Rows    []Record `json:"rows"`
}
