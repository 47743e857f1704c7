package anomaly

import (
	"sort"
	"strconv"
	"strings"
)

// DefaultPageSize matches the dashboard table's fixed page length.
const DefaultPageSize = 10

// ProjectionQuery describes one table view: a free-text search across all
// fields, a sort key with direction, and a 1-indexed page.
type ProjectionQuery struct {
	Search    string
	SortField string
	SortDesc  bool
	Page      int
	PageSize  int
}

// Projection is the materialized table view.
type Projection struct {
	Rows       []Record `json:"rows"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
}

// fieldValue coerces any record column to its display string. The column set
// is an explicit list so search behavior never depends on reflection.
func fieldValue(r Record, field string) string {
	switch field {
	case "id":
		return r.ID
	case "user_id":
		return r.UserID
	case "login_time":
		return r.LoginTime
	case "ip_address":
		return r.IPAddress
	case "action":
		return r.Action
	case "location":
		return r.Location
	case "device":
		return r.Device
	case "score":
		return strconv.FormatFloat(r.Score, 'f', 2, 64)
	case "top_feature":
		return r.TopFeature
	case "message":
		return r.Message
	default:
		return ""
	}
}

var searchableFields = []string{
	"id", "user_id", "login_time", "ip_address", "action",
	"location", "device", "score", "top_feature", "message",
}

func matchesSearch(r Record, term string) bool {
	if term == "" {
		return true
	}
	for _, f := range searchableFields {
		if containsFold(fieldValue(r, f), term) {
			return true
		}
	}
	return false
}

// compare orders a before b for ascending sorts. Timestamps compare by
// parsed instant with malformed values first, scores numerically, everything
// else case-insensitively; absent values read as empty strings.
func compare(a, b Record, field string) int {
	switch field {
	case "login_time":
		at, aok := a.Time()
		bt, bok := b.Time()
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return -1
		case !bok:
			return 1
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		default:
			return 0
		}
	case "score":
		switch {
		case a.Score < b.Score:
			return -1
		case a.Score > b.Score:
			return 1
		default:
			return 0
		}
	default:
		return strings.Compare(strings.ToLower(fieldValue(a, field)), strings.ToLower(fieldValue(b, field)))
	}
}

// Project searches, sorts and paginates records into one table page. The
// sort is stable so equal keys keep their input order regardless of
// direction, and out-of-range pages clamp instead of failing.
func Project(records []Record, q ProjectionQuery) Projection {
	filtered := make([]Record, 0, len(records))
	for _, r := range records {
		if matchesSearch(r, q.Search) {
			filtered = append(filtered, r)
		}
	}

	if q.SortField != "" {
		sort.SliceStable(filtered, func(i, j int) bool {
			c := compare(filtered[i], filtered[j], q.SortField)
			if q.SortDesc {
				return c > 0
			}
			return c < 0
		})
	}

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages := (len(filtered) + pageSize - 1) / pageSize

	page := q.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Projection{
		Rows:       filtered[start:end],
		Total:      len(filtered),
		Page:       page,
		TotalPages: totalPages,
	}
}
