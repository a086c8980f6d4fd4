package pipeline

import (
	"github.com/joseph-ayodele/resume-extractor/internal/entity"
	"github.com/joseph-ayodele/resume-extractor/internal/fields"
)

// Assemble merges the values read from a résumé's text with those parsed from its
// filename. Per field the text value wins, then the filename value, then "".
func Assemble(filename string, fromText fields.Fields, fromName fields.FilenameInfo) entity.Record {
	return entity.Record{
		Name:     pick(fromText.Name, fromName.Name),
		Gender:   pick(fromText.Gender),
		Age:      pick(fromText.Age),
		Date:     pick(fromText.Date),
		Phone:    pick(fromText.Phone),
		Position: pick(fromText.Position, fromName.Position),
		Location: pick(fromText.Location, fromName.Location),
		Salary:   pick(fromText.Salary, fromName.Salary),
		Email:    pick(fromText.Email),
		Filename: filename,
	}
}

// pick returns the first present value.
func pick(candidates ...*string) string {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return ""
}
