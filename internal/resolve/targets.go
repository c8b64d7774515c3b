package resolve

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/avelichko/jobsift/internal/model"
)

// ReadTargets parses the tabular target export: one header row, then data
// rows with id, source, company, title, url, location, fitscore columns.
// At most maxTargets data rows are scanned. Rows that are malformed, have
// fewer than 7 columns, or lack an id or URL are skipped, not fatal.
func ReadTargets(r io.Reader, maxTargets int) ([]model.Target, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // column count is checked per row below

	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read targets header: %w", err)
	}

	var targets []model.Target
	for scanned := 0; scanned < maxTargets; scanned++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if len(row) < 7 {
			continue
		}
		t := model.Target{
			ID:       row[0],
			Source:   row[1],
			Company:  row[2],
			Title:    row[3],
			URL:      row[4],
			Location: row[5],
			FitScore: row[6],
		}
		if t.ID == "" || t.URL == "" {
			continue
		}
		targets = append(targets, t)
	}
	return targets, nil
}
