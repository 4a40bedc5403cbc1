package registry

// seedCities covers the Australian UV sensor network stations keyed by
// the ids the feed uses.
func seedCities() []City {
	return []City{
		{ID: "Adelaide", Name: "Adelaide", ShortName: "adl", State: "SA", Latitude: -34.92, Longitude: 138.60},
		{ID: "Alice Springs", Name: "Alice Springs", ShortName: "ali", State: "NT", Latitude: -23.70, Longitude: 133.88},
		{ID: "Brisbane", Name: "Brisbane", ShortName: "bri", State: "QLD", Latitude: -27.47, Longitude: 153.03},
		{ID: "Canberra", Name: "Canberra", ShortName: "can", State: "ACT", Latitude: -35.28, Longitude: 149.13},
		{ID: "Darwin", Name: "Darwin", ShortName: "dar", State: "NT", Latitude: -12.46, Longitude: 130.84},
		{ID: "Emerald", Name: "Emerald", ShortName: "emd", State: "QLD", Latitude: -23.53, Longitude: 148.16},
		{ID: "Gold Coast", Name: "Gold Coast", ShortName: "gco", State: "QLD", Latitude: -28.00, Longitude: 153.43},
		{ID: "Kingston", Name: "Kingston", ShortName: "kin", State: "TAS", Latitude: -42.98, Longitude: 147.31},
		{ID: "Melbourne", Name: "Melbourne", ShortName: "mel", State: "VIC", Latitude: -37.81, Longitude: 144.96},
		{ID: "Newcastle", Name: "Newcastle", ShortName: "new", State: "NSW", Latitude: -32.93, Longitude: 151.78},
		{ID: "Perth", Name: "Perth", ShortName: "per", State: "WA", Latitude: -31.95, Longitude: 115.86},
		{ID: "Sydney", Name: "Sydney", ShortName: "syd", State: "NSW", Latitude: -33.87, Longitude: 151.21},
		{ID: "Townsville", Name: "Townsville", ShortName: "tow", State: "QLD", Latitude: -19.26, Longitude: 146.82},
	}
}
