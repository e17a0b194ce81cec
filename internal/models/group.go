package models

import (
	"fmt"
	"strings"
)

// DayTypeGroup partitions calendar days into working days and weekends
type DayTypeGroup int

const (
	WorkingDay DayTypeGroup = iota
	Weekend
)

// DayTypeGroups lists the groups in display order
var DayTypeGroups = [...]DayTypeGroup{WorkingDay, Weekend}

// String returns the collection name the group is stored under
func (g DayTypeGroup) String() string {
	switch g {
	case WorkingDay:
		return "working_days"
	case Weekend:
		return "weekends"
	default:
		return fmt.Sprintf("DayTypeGroup(%d)", int(g))
	}
}

// Label returns the legend label of the group
func (g DayTypeGroup) Label() string {
	switch g {
	case WorkingDay:
		return "Working days"
	case Weekend:
		return "Week-end"
	default:
		return g.String()
	}
}

// MarshalText encodes the group as its collection name
func (g DayTypeGroup) MarshalText() ([]byte, error) {
	if g != WorkingDay && g != Weekend {
		return nil, fmt.Errorf("invalid day type group %d", int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText decodes a collection name
func (g *DayTypeGroup) UnmarshalText(text []byte) error {
	parsed, err := ParseDayTypeGroup(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ParseDayTypeGroup accepts the collection name or a short alias
func ParseDayTypeGroup(s string) (DayTypeGroup, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "working_days", "working_day", "workday", "weekday":
		return WorkingDay, nil
	case "weekends", "weekend", "week-end":
		return Weekend, nil
	default:
		return 0, fmt.Errorf("unknown day type group %q", s)
	}
}
