package weather

const unknownDescription = "Unknown"

// wmoCodes maps WMO weather interpretation codes to short descriptions.
var wmoCodes = map[int]string{
	0:  "Clear Sky",
	1:  "Cloudy",
	2:  "Cloudy",
	3:  "Cloudy",
	45: "Fog",
	48: "Fog",
	51: "Drizzle",
	53: "Drizzle",
	55: "Drizzle",
	61: "Rain",
	63: "Rain",
	65: "Rain",
	71: "Snow",
	73: "Snow",
	75: "Snow",
	80: "Rain Showers",
	81: "Rain Showers",
	82: "Rain Showers",
	95: "Thunderstorm",
	96: "Thunderstorm with hail",
	99: "Thunderstorm with hail",
}

// DescribeCode returns the description for a weather code, or "Unknown".
func DescribeCode(code int) string {
	if desc, ok := wmoCodes[code]; ok {
		return desc
	}
	return unknownDescription
}
