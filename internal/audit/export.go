package audit

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// WriteCSV serialises decisions for compliance export.
func WriteCSV(w io.Writer, decisions []Decision) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Occurred At", "User", "Role", "Action", "Resource", "Allowed", "Reason"}); err != nil {
		return err
	}
	for _, d := range decisions {
		if err := writer.Write([]string{
			d.OccurredAt.UTC().Format(time.RFC3339),
			d.UserID,
			d.Role,
			d.Action,
			d.Resource,
			strconv.FormatBool(d.Allowed),
			d.Reason,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
