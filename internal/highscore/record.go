package highscore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrNotList is returned when a persisted document is not a JSON list.
var ErrNotList = errors.New("highscore: persisted document is not a list")

// Record is one finished run in the ranked list. Lat and Lng are nil when
// no location fix was available. Time is milliseconds since the epoch.
type Record struct {
	Score int      `json:"score"`
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Time  int64    `json:"time"`
}

// NewRecord stamps a score with the moment it was achieved.
func NewRecord(score int, lat, lng *float64, at time.Time) Record {
	return Record{
		Score: score,
		Lat:   copyFloat(lat),
		Lng:   copyFloat(lng),
		Time:  at.UnixMilli(),
	}
}

// Location returns the coordinates when both are known.
func (r Record) Location() (lat, lng float64, ok bool) {
	if r.Lat == nil || r.Lng == nil {
		return 0, 0, false
	}
	return *r.Lat, *r.Lng, true
}

// At returns the record time.
func (r Record) At() time.Time {
	return time.UnixMilli(r.Time)
}

// Equal compares two records by value, including the coordinates.
func (r Record) Equal(o Record) bool {
	return r.Score == o.Score && r.Time == o.Time &&
		floatPtrEqual(r.Lat, o.Lat) && floatPtrEqual(r.Lng, o.Lng)
}

// Less reports whether r ranks above o: higher score first, then the more
// recent run.
func (r Record) Less(o Record) bool {
	if r.Score != o.Score {
		return r.Score > o.Score
	}
	return r.Time > o.Time
}

func (r Record) String() string {
	if lat, lng, ok := r.Location(); ok {
		return fmt.Sprintf("%d @ %s (%.5f, %.5f)", r.Score, r.At().Format(time.DateTime), lat, lng)
	}
	return fmt.Sprintf("%d @ %s", r.Score, r.At().Format(time.DateTime))
}

// rank sorts records in place and keeps at most capacity of them.
// The sort is stable, so among exact ties the earlier entry wins.
func rank(records []Record, capacity int) []Record {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Less(records[j])
	})
	if len(records) > capacity {
		records = records[:capacity]
	}
	return records
}

func sameRecords(a, b []Record) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// wireRecord mirrors Record with every field optional, so that missing or
// mistyped fields can be told apart from zero values.
type wireRecord struct {
	Score *int     `json:"score"`
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Time  *int64   `json:"time"`
}

// decodeRecords parses the flat JSON list. Entries without a score or time,
// or with a wrongly typed field, are skipped and counted.
func decodeRecords(data []byte) ([]Record, int, error) {
	if len(data) == 0 {
		return nil, 0, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrNotList, err)
	}

	records := make([]Record, 0, len(raw))
	skipped := 0
	for _, item := range raw {
		var w wireRecord
		if err := json.Unmarshal(item, &w); err != nil || w.Score == nil || w.Time == nil {
			skipped++
			continue
		}
		records = append(records, Record{
			Score: *w.Score,
			Lat:   w.Lat,
			Lng:   w.Lng,
			Time:  *w.Time,
		})
	}
	return records, skipped, nil
}

func encodeRecords(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("highscore: cannot encode records: %w", err)
	}
	return data, nil
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
