package pipeline

import (
	"sort"

	"github.com/joseph-ayodele/resume-extractor/internal/entity"
)

// Stats summarizes one processing run.
type Stats struct {
	Total       int
	Succeeded   int
	Failed      int
	Reused      int
	FailedFiles []entity.Failure
}

// BuildReport orders outcomes by path, numbers the successful records from 1 and collects
// the failures.
func BuildReport(outcomes []Outcome) ([]entity.Record, Stats) {
	sorted := make([]Outcome, len(outcomes))
	copy(sorted, outcomes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	var records []entity.Record
	stats := Stats{Total: len(sorted)}
	for _, o := range sorted {
		if o.Err != nil {
			stats.Failed++
			stats.FailedFiles = append(stats.FailedFiles, entity.Failure{
				Filename: o.Filename,
				Path:     o.Path,
				Error:    o.Err.Error(),
			})
			continue
		}
		stats.Succeeded++
		if o.Reused {
			stats.Reused++
		}
		r := o.Record
		r.Index = len(records) + 1
		records = append(records, r)
	}
	return records, stats
}
