package feed

// syntheticReadings is the terminal fallback dataset, served only when
// the feed has never been fetched successfully. The station ids line up
// with the registry seed so matching stays functional during a total
// outage; callers must check Snapshot.Synthetic before trusting values.
func syntheticReadings() []StationReading {
	return []StationReading{
		{StationID: "Adelaide", ShortName: "adl", UVIndex: 5.9, Time: "12:00 PM", Date: "01/01/2025", Status: "ok"},
		{StationID: "Alice Springs", ShortName: "ali", UVIndex: 9.7, Time: "12:00 PM", Date: "01/01/2025", Status: "ok"},
		{StationID: "Brisbane", ShortName: "bri", UVIndex: 8.1, Time: "12:00 PM", Date: "01/01/2025", Status: "ok"},
		{StationID: "Canberra", ShortName: "can", UVIndex: 5.1, Time: "12:00 PM", Date: "01/01/2025", Status: "ok"},
		{StationID: "Darwin", ShortName: "dar", UVIndex: 10.4, Time: "12:00 PM", Date: "01/01/2025", Status: "ok"},
		{StationID: "Gold Coast", ShortName: "gco", UVIndex: 7.9, Time: "12:00 PM", Date: "01/01/2025", Status: "ok"},
		{StationID: "Kingston", ShortName: "kin", UVIndex: 3.6, Time: "12:00 PM", Date: "01/01/2025", Status: "ok"},
		{StationID: "Melbourne", ShortName: "mel", UVIndex: 4.8, Time: "12:00 PM", Date: "01/01/2025", Status: "ok"},
		{StationID: "Newcastle", ShortName: "new", UVIndex: 6.0, Time: "12:00 PM", Date: "01/01/2025", Status: "ok"},
		{StationID: "Perth", ShortName: "per", UVIndex: 7.3, Time: "12:00 PM", Date: "01/01/2025", Status: "ok"},
		{StationID: "Sydney", ShortName: "syd", UVIndex: 6.2, Time: "12:00 PM", Date: "01/01/2025", Status: "ok"},
		{StationID: "Townsville", ShortName: "tow", UVIndex: 9.2, Time: "12:00 PM", Date: "01/01/2025", Status: "ok"},
	}
}
