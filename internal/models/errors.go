package models

import (
	"fmt"
)

// DataIntegrityError reports a stored document that cannot be trusted:
// values/dates of unequal length, malformed or unordered dates, an hour
// outside 0-23 or duplicate documents for the same hour.
type DataIntegrityError struct {
	Station   string
	Pollutant string
	Hour      int
	Reason    string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity: station %s pollutant %s hour %d: %s", e.Station, e.Pollutant, e.Hour, e.Reason)
}

func integrityError(id DocumentID, format string, args ...interface{}) *DataIntegrityError {
	return &DataIntegrityError{
		Station:   id.Station,
		Pollutant: id.Pollutant,
		Hour:      id.Hour,
		Reason:    fmt.Sprintf(format, args...),
	}
}

// NewDataIntegrityError builds a DataIntegrityError for the given document
func NewDataIntegrityError(id DocumentID, reason string) *DataIntegrityError {
	return integrityError(id, "%s", reason)
}
