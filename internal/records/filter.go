package records

import (
	"fmt"
	"strings"
)

// Reasons a record is rejected.
const (
	ReasonMissing = "missing"
	ReasonEmpty   = "empty"
)

// MissingFieldWarning reports a dropped record and the first required field
// that disqualified it.
type MissingFieldWarning struct {
	Position int // 1-based position in the parsed sequence
	Line     int
	Field    string
	Reason   string
}

func (w MissingFieldWarning) String() string {
	return fmt.Sprintf("row %d (line %d): required field %s is %s", w.Position, w.Line, w.Field, w.Reason)
}

// FilterResult splits records into accepted ones, in input order, and warnings
// for the rejected ones.
type FilterResult struct {
	Accepted []Record
	Rejected []MissingFieldWarning
}

// Filter keeps records whose required fields are all present and non-empty
// after trimming whitespace. With no required fields every record passes.
func Filter(recs []Record, required []string) FilterResult {
	var res FilterResult
	for _, rec := range recs {
		if w, ok := check(rec, required); !ok {
			res.Rejected = append(res.Rejected, w)
			continue
		}
		res.Accepted = append(res.Accepted, rec)
	}
	return res
}

func check(rec Record, required []string) (MissingFieldWarning, bool) {
	for _, field := range required {
		v, present := rec.Get(field)
		if !present {
			return MissingFieldWarning{Position: rec.Position, Line: rec.Line, Field: field, Reason: ReasonMissing}, false
		}
		if strings.TrimSpace(v) == "" {
			return MissingFieldWarning{Position: rec.Position, Line: rec.Line, Field: field, Reason: ReasonEmpty}, false
		}
	}
	return MissingFieldWarning{}, true
}
