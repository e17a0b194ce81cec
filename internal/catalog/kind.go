package catalog

import (
	"fmt"
	"strings"
)

// QueryKind is the level of the location cascade a query lists
type QueryKind int

const (
	Regions QueryKind = iota
	Departments
	Cities
	Stations
	Pollutants
)

// QueryKinds lists the kinds in cascade order
var QueryKinds = [...]QueryKind{Regions, Departments, Cities, Stations, Pollutants}

func (k QueryKind) String() string {
	switch k {
	case Regions:
		return "regions"
	case Departments:
		return "departments"
	case Cities:
		return "cities"
	case Stations:
		return "stations"
	case Pollutants:
		return "pollutants"
	default:
		return fmt.Sprintf("QueryKind(%d)", int(k))
	}
}

// ParseQueryKind parses the plural kind name used in URLs
func ParseQueryKind(s string) (QueryKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range QueryKinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown catalog query kind %q", s)
}
