package entity

// Record is one exported row. Empty strings are empty cells.
type Record struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Age      string `json:"age"`
	Date     string `json:"date"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
	Location string `json:"location"`
	Salary   string `json:"salary"`
	Email    string `json:"email"`
	Filename string `json:"filename"`
}

// Values returns the row cells in export column order.
func (r Record) Values() []any {
	return []any{r.Index, r.Name, r.Gender, r.Age, r.Date, r.Phone, r.Position, r.Location, r.Salary, r.Email, r.Filename}
}

// Failure describes a document that produced no record.
type Failure struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Error    string `json:"error"`
}
