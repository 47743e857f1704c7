package anomaly

import (
	"fmt"
	"strings"
)

// Column describes one exportable CSV column. Quoted columns are the
// free-text ones that may contain commas; their values are always wrapped in
// double quotes with embedded quotes doubled.
type Column struct {
	Header string
	Field  string
	Quoted bool
}

// DefaultColumns reproduces the dashboard table's export layout.
var DefaultColumns = []Column{
	{Header: "ID", Field: "id"},
	{Header: "User ID", Field: "user_id"},
	{Header: "Timestamp", Field: "login_time"},
	{Header: "IP Address", Field: "ip_address"},
	{Header: "Location", Field: "location", Quoted: true},
	{Header: "Device", Field: "device", Quoted: true},
	{Header: "Action", Field: "action"},
	{Header: "Score", Field: "score"},
	{Header: "Top Feature", Field: "top_feature", Quoted: true},
	{Header: "Message", Field: "message", Quoted: true},
}

// exportTimeLayout renders timestamps the way the dashboard displayed them.
const exportTimeLayout = "02/01/2006 15:04:05"

// ExportCSV serializes records into CSV text with '\n' line separators and
// no trailing newline. An empty record list yields the header line only.
func ExportCSV(records []Record, columns []Column) string {
	if len(columns) == 0 {
		columns = DefaultColumns
	}

	var b strings.Builder
	for i, col := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(col.Header)
	}

	for _, r := range records {
		b.WriteByte('\n')
		for i, col := range columns {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(csvValue(r, col))
		}
	}
	return b.String()
}

func csvValue(r Record, col Column) string {
	var v string
	switch col.Field {
	case "score":
		v = fmt.Sprintf("%.2f", r.Score)
	case "login_time":
		if ts, ok := r.Time(); ok {
			v = ts.Format(exportTimeLayout)
		} else {
			v = "N/A"
		}
	default:
		v = fieldValue(r, col.Field)
	}
	if col.Quoted {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}
