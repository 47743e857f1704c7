package anomaly

// Filter returns the records matching every active predicate in spec; the
// input is never mutated. All predicates are ANDed, an empty result is valid
// output.
func Filter(records []Record, spec FilterSpec) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if matches(r, spec) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r Record, spec FilterSpec) bool {
	if spec.UserID != "" && !containsFold(r.UserID, spec.UserID) {
		return false
	}
	// Records without a location never match a non-empty location filter.
	if spec.Location != "" && (r.Location == "" || !containsFold(r.Location, spec.Location)) {
		return false
	}
	if spec.StartDate != "" || spec.EndDate != "" {
		ts, ok := r.Time()
		if !ok {
			// Malformed timestamps never match a date-bounded filter.
			return false
		}
		if spec.StartDate != "" {
			if start, ok := parseTimestamp(spec.StartDate); ok && ts.Before(start) {
				return false
			}
		}
		if spec.EndDate != "" {
			if end, ok := parseTimestamp(spec.EndDate); ok && ts.After(end) {
				return false
			}
		}
	}
	switch spec.Status {
	case "anomaly":
		if r.Score <= anomalyCutoff {
			return false
		}
	case "success":
		if r.Score > anomalyCutoff {
			return false
		}
	}
	return true
}
