package models

import (
	"time"
)

// RawDocument is the JSON wire shape of a stored hour document:
// {"_id": {station, pollutant, hour}, "history": {"values": [...], "dates": [...]}}
type RawDocument struct {
	ID      DocumentID `json:"_id"`
	History RawHistory `json:"history"`
}

// RawHistory holds the parallel arrays of a stored document, oldest first
type RawHistory struct {
	Values []float64 `json:"values"`
	Dates  []string  `json:"dates"`
}

// Decode parses the dates of a raw document and validates it
func (r RawDocument) Decode() (HourDocument, error) {
	dates := make([]time.Time, len(r.History.Dates))
	for i, s := range r.History.Dates {
		t, err := ParseDate(s)
		if err != nil {
			return HourDocument{}, integrityError(r.ID, "date %d: %v", i, err)
		}
		dates[i] = t
	}
	return NewHourDocument(r.ID, r.History.Values, dates)
}

// DecodeAll decodes every raw document, stopping at the first integrity failure
func DecodeAll(raw []RawDocument) ([]HourDocument, error) {
	docs := make([]HourDocument, 0, len(raw))
	for _, r := range raw {
		doc, err := r.Decode()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Encode converts a validated document back to its wire shape
func (d HourDocument) Encode() RawDocument {
	raw := RawDocument{
		ID: d.ID,
		History: RawHistory{
			Values: make([]float64, len(d.History)),
			Dates:  make([]string, len(d.History)),
		},
	}
	for i, r := range d.History {
		raw.History.Values[i] = r.Value
		raw.History.Dates[i] = r.RecordedAt.UTC().Format(time.RFC3339)
	}
	return raw
}
