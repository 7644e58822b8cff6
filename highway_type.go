package osmnav

type HighwayType uint16

const (
	HIGHWAY_MOTORWAY = HighwayType(iota + 1)
	HIGHWAY_MOTORWAY_LINK
	HIGHWAY_TRUNK
	HIGHWAY_TRUNK_LINK
	HIGHWAY_PRIMARY
	HIGHWAY_PRIMARY_LINK
	HIGHWAY_SECONDARY
	HIGHWAY_SECONDARY_LINK
	HIGHWAY_TERTIARY
	HIGHWAY_TERTIARY_LINK
	HIGHWAY_RESIDENTIAL
	HIGHWAY_RESIDENTIAL_LINK
	HIGHWAY_LIVING_STREET
	HIGHWAY_SERVICE
	HIGHWAY_SERVICES
	HIGHWAY_CYCLEWAY
	HIGHWAY_FOOTWAY
	HIGHWAY_PEDESTRIAN
	HIGHWAY_STEPS
	HIGHWAY_TRACK
	HIGHWAY_UNCLASSIFIED
	HIGHWAY_ROAD
)

func (iotaIdx HighwayType) String() string {
	if iotaIdx == 0 || int(iotaIdx) > len(highwayNames) {
		return "undefined"
	}
	return highwayNames[iotaIdx-1]
}

var highwayNames = [...]string{"motorway", "motorway_link", "trunk", "trunk_link", "primary", "primary_link", "secondary", "secondary_link", "tertiary", "tertiary_link", "residential", "residential_link", "living_street", "service", "services", "cycleway", "footway", "pedestrian", "steps", "track", "unclassified", "road"}

// GetHighwayType returns category for `highway` tag value. Zero value means unknown category
func GetHighwayType(str string) HighwayType {
	if found, ok := highwaysTypes[str]; ok {
		return found
	}
	return 0
}

// DefaultSpeed returns free-flow speed for the category (km/h)
func (iotaIdx HighwayType) DefaultSpeed() float64 {
	if speed, ok := defaultSpeedByHighway[iotaIdx]; ok {
		return speed
	}
	return defaultSpeedFallback
}

const defaultSpeedFallback = 30.0

var (
	// DefaultHighwayTags is set of drivable `highway` values
	DefaultHighwayTags = []string{"motorway", "motorway_link", "trunk", "trunk_link", "primary", "primary_link", "secondary", "secondary_link", "tertiary", "tertiary_link", "residential", "living_street", "unclassified", "road", "service"}

	defaultSpeedByHighway = map[HighwayType]float64{
		HIGHWAY_MOTORWAY:         120,
		HIGHWAY_MOTORWAY_LINK:    60,
		HIGHWAY_TRUNK:            100,
		HIGHWAY_TRUNK_LINK:       50,
		HIGHWAY_PRIMARY:          80,
		HIGHWAY_PRIMARY_LINK:     40,
		HIGHWAY_SECONDARY:        60,
		HIGHWAY_SECONDARY_LINK:   40,
		HIGHWAY_TERTIARY:         40,
		HIGHWAY_TERTIARY_LINK:    30,
		HIGHWAY_RESIDENTIAL:      30,
		HIGHWAY_RESIDENTIAL_LINK: 30,
		HIGHWAY_LIVING_STREET:    10,
		HIGHWAY_SERVICE:          20,
		HIGHWAY_SERVICES:         20,
		HIGHWAY_CYCLEWAY:         15,
		HIGHWAY_FOOTWAY:          5,
		HIGHWAY_PEDESTRIAN:       5,
		HIGHWAY_STEPS:            3,
		HIGHWAY_TRACK:            20,
		HIGHWAY_UNCLASSIFIED:     30,
		HIGHWAY_ROAD:             30,
	}

	highwaysTypes = map[string]HighwayType{
		"motorway":         HIGHWAY_MOTORWAY,
		"motorway_link":    HIGHWAY_MOTORWAY_LINK,
		"trunk":            HIGHWAY_TRUNK,
		"trunk_link":       HIGHWAY_TRUNK_LINK,
		"primary":          HIGHWAY_PRIMARY,
		"primary_link":     HIGHWAY_PRIMARY_LINK,
		"secondary":        HIGHWAY_SECONDARY,
		"secondary_link":   HIGHWAY_SECONDARY_LINK,
		"tertiary":         HIGHWAY_TERTIARY,
		"tertiary_link":    HIGHWAY_TERTIARY_LINK,
		"residential":      HIGHWAY_RESIDENTIAL,
		"residential_link": HIGHWAY_RESIDENTIAL_LINK,
		"living_street":    HIGHWAY_LIVING_STREET,
		"service":          HIGHWAY_SERVICE,
		"services":         HIGHWAY_SERVICES,
		"cycleway":         HIGHWAY_CYCLEWAY,
		"footway":          HIGHWAY_FOOTWAY,
		"pedestrian":       HIGHWAY_PEDESTRIAN,
		"steps":            HIGHWAY_STEPS,
		"track":            HIGHWAY_TRACK,
		"unclassified":     HIGHWAY_UNCLASSIFIED,
		"road":             HIGHWAY_ROAD,
	}
)
