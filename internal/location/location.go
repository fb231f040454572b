package location

import "strings"

// Zone is a delivery-pricing tier derived from the selected district.
type Zone string

const (
	ZoneDhakaCity Zone = "dhaka_city"
	ZoneSuburban  Zone = "suburban"
	ZoneNational  Zone = "national"
)

// Base delivery charges per zone, in integer currency units (BDT).
const (
	ChargeDhakaCity int64 = 60
	ChargeSuburban  int64 = 100
	ChargeNational  int64 = 150
)

// OutsideZoneCharge is what an unknown or unselected district resolves to.
// Unknown districts must not block checkout, so they fall into the highest
// tier instead of failing.
const OutsideZoneCharge = ChargeNational

// District is one entry of the static delivery directory.
type District struct {
	Name  string
	Zone  Zone
	Areas []string
}

// Selection is a resolved district/area pair with its delivery charge.
type Selection struct {
	District   string
	Area       string
	Zone       Zone
	BaseCharge int64
}

// Directory answers zone and area lookups over a static district dataset.
// It is pure and safe for concurrent use.
type Directory struct {
	districts []District
	byName    map[string]*District
}

// NewDirectory builds a Directory from the given districts.
func NewDirectory(districts []District) *Directory {
	d := &Directory{
		districts: districts,
		byName:    make(map[string]*District, len(districts)),
	}
	for i := range districts {
		d.byName[strings.ToLower(districts[i].Name)] = &d.districts[i]
	}
	return d
}

// ChargeFor returns the base delivery charge for a zone.
func ChargeFor(zone Zone) int64 {
	switch zone {
	case ZoneDhakaCity:
		return ChargeDhakaCity
	case ZoneSuburban:
		return ChargeSuburban
	default:
		return ChargeNational
	}
}

// ResolveZone resolves a district name to its zone and base charge.
// Unknown districts resolve to the national tier with OutsideZoneCharge.
func (d *Directory) ResolveZone(district string) (Zone, int64) {
	if entry, ok := d.byName[strings.ToLower(strings.TrimSpace(district))]; ok {
		return entry.Zone, ChargeFor(entry.Zone)
	}
	return ZoneNational, OutsideZoneCharge
}

// Resolve returns the full selection for a district/area pair. The area is
// kept as entered even when the district is unknown; zone and charge follow
// ResolveZone.
func (d *Directory) Resolve(district, area string) Selection {
	zone, charge := d.ResolveZone(district)
	return Selection{
		District:   district,
		Area:       area,
		Zone:       zone,
		BaseCharge: charge,
	}
}

// AreasOf returns the areas of a district, or nil for unknown districts.
func (d *Directory) AreasOf(district string) []string {
	if entry, ok := d.byName[strings.ToLower(strings.TrimSpace(district))]; ok {
		return entry.Areas
	}
	return nil
}

// ValidArea reports whether the area belongs to the district.
// Blank areas are never valid.
func (d *Directory) ValidArea(district, area string) bool {
	area = strings.TrimSpace(area)
	if area == "" {
		return false
	}
	for _, a := range d.AreasOf(district) {
		if strings.EqualFold(a, area) {
			return true
		}
	}
	return false
}

// Districts returns all district names in dataset order.
func (d *Directory) Districts() []string {
	names := make([]string, len(d.districts))
	for i, dist := range d.districts {
		names[i] = dist.Name
	}
	return names
}

// SearchDistricts returns district names containing the query
// (case-insensitive substring). An empty query matches everything.
func (d *Directory) SearchDistricts(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []string
	for _, dist := range d.districts {
		if query == "" || strings.Contains(strings.ToLower(dist.Name), query) {
			out = append(out, dist.Name)
		}
	}
	return out
}

// SearchAreas returns areas of the district containing the query
// (case-insensitive substring). An empty query matches everything.
func (d *Directory) SearchAreas(district, query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []string
	for _, a := range d.AreasOf(district) {
		if query == "" || strings.Contains(strings.ToLower(a), query) {
			out = append(out, a)
		}
	}
	return out
}
