package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the summary rows with a Category,Value,Notes header.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Category, r.Value, r.Notes}); err != nil {
			return fmt.Errorf("writing csv row %q: %w", r.Category, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
