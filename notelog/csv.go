package notelog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// WriteCSV writes the log as CSV with a header row. Values are decimal
// strings.
func (l *Log) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"seq", "kind", "from", "to", "value", "at"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, e := range l.Entries() {
		rec := []string{
			strconv.FormatUint(e.Seq, 10),
			string(e.Kind),
			string(e.From),
			string(e.To),
			e.Value.Dec(),
			e.At.Format(time.RFC3339Nano),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing entry %d: %w", e.Seq, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
