package rental

import (
	"github.com/csr-ugra/matrouh-rentals/internal/util"
	"strings"
)

// UnitFilter narrows the guest listing. Zero values match everything.
type UnitFilter struct {
	Location     string
	PropertyType PropertyType
	MinRooms     int
	Search       string
}

func (f UnitFilter) Match(u Unit) bool {
	if f.Location != "" && u.Location != f.Location {
		return false
	}
	if f.PropertyType != "" && u.PropertyType != f.PropertyType {
		return false
	}
	if u.Rooms < f.MinRooms {
		return false
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	if search == "" {
		return true
	}

	return strings.Contains(strings.ToLower(u.Title), search) ||
		strings.Contains(util.NormalizeStr(u.UnitId), util.NormalizeStr(search))
}

func FilterUnits(units []Unit, f UnitFilter) []Unit {
	filtered := make([]Unit, 0, len(units))
	for _, u := range units {
		if f.Match(u) {
			filtered = append(filtered, u)
		}
	}

	return filtered
}
