package shreeng

// Window is a named time span as the engine reports it: display strings in
// 12-hour local time plus ISO instants, with an activity flag computed by
// the engine for the requested datetime.
type Window struct {
	Start    string `json:"start"`
	StartISO string `json:"startIso"`
	End      string `json:"end"`
	EndISO   string `json:"endIso"`
	IsActive bool   `json:"isActive"`
}

// Tithi is the lunar day element of the panchang.
type Tithi struct {
	Name        string `json:"name"`
	NameHindi   string `json:"nameHindi"`
	Paksha      string `json:"paksha"`
	PakshaHindi string `json:"pakshaHindi"`
	Number      int    `json:"number"`
	EndTime     string `json:"endTime"`
	EndTimeISO  string `json:"endTimeIso"`
}

// Nakshatra is the lunar mansion element of the panchang.
type Nakshatra struct {
	Name       string `json:"name"`
	NameHindi  string `json:"nameHindi"`
	Number     int    `json:"number"`
	Lord       string `json:"lord"`
	LordHindi  string `json:"lordHindi"`
	EndTime    string `json:"endTime"`
	EndTimeISO string `json:"endTimeIso"`
}

// Yoga is the luni-solar yoga element of the panchang.
type Yoga struct {
	Name       string `json:"name"`
	NameHindi  string `json:"nameHindi"`
	Number     int    `json:"number"`
	EndTime    string `json:"endTime"`
	EndTimeISO string `json:"endTimeIso"`
}

// Karana is the half-tithi element of the panchang.
type Karana struct {
	Name       string `json:"name"`
	NameHindi  string `json:"nameHindi"`
	Number     int    `json:"number"`
	EndTime    string `json:"endTime"`
	EndTimeISO string `json:"endTimeIso"`
}

// Vara is the weekday element of the panchang.
type Vara struct {
	Name      string `json:"name"`
	NameHindi string `json:"nameHindi"`
	Number    int    `json:"number"`
	Lord      string `json:"lord"`
	LordHindi string `json:"lordHindi"`
}

// Masa is the lunar month.
type Masa struct {
	Name      string `json:"name"`
	NameHindi string `json:"nameHindi"`
	IsAdhika  bool   `json:"isAdhika"`
}

// PanchangResponse holds the five daily elements plus the lunar month.
type PanchangResponse struct {
	Tithi     Tithi     `json:"tithi"`
	Nakshatra Nakshatra `json:"nakshatra"`
	Yoga      Yoga      `json:"yoga"`
	Karana    Karana    `json:"karana"`
	Vara      Vara      `json:"vara"`
	Masa      Masa      `json:"masa"`
}

// SunTimes holds sunrise/sunset and solar longitude.
type SunTimes struct {
	Sunrise    string  `json:"sunrise"`
	SunriseISO string  `json:"sunriseIso"`
	Sunset     string  `json:"sunset"`
	SunsetISO  string  `json:"sunsetIso"`
	Longitude  float64 `json:"longitude"`
}

// MoonTimes holds moonrise/moonset, lunar longitude and phase.
type MoonTimes struct {
	Moonrise    string  `json:"moonrise"`
	MoonriseISO string  `json:"moonriseIso"`
	Moonset     string  `json:"moonset"`
	MoonsetISO  string  `json:"moonsetIso"`
	Longitude   float64 `json:"longitude"`
	Phase       float64 `json:"phase"`
}

// AstronomicalResponse bundles sun and moon facts.
type AstronomicalResponse struct {
	Sun  SunTimes  `json:"sun"`
	Moon MoonTimes `json:"moon"`
}

// MuhurtaResponse holds the named auspicious/inauspicious windows for a day.
// Abhijit and Brahma are absent on days the engine does not report them.
type MuhurtaResponse struct {
	RahuKaal   Window  `json:"rahuKaal"`
	Yamaganda  Window  `json:"yamaganda"`
	GulikaKaal Window  `json:"gulikaKaal"`
	Abhijit    *Window `json:"abhijit,omitempty"`
	Brahma     *Window `json:"brahma,omitempty"`
}

// Choghadiya period types.
const (
	ChoghadiyaShubh   = "shubh"
	ChoghadiyaAshubh  = "ashubh"
	ChoghadiyaNeutral = "neutral"
)

// ChoghadiyaPeriod is one day or night period.
type ChoghadiyaPeriod struct {
	Name      string `json:"name"`
	NameHindi string `json:"nameHindi"`
	Type      string `json:"type"` // shubh, ashubh or neutral
	Start     string `json:"start"`
	StartISO  string `json:"startIso"`
	End       string `json:"end"`
	EndISO    string `json:"endIso"`
	IsActive  bool   `json:"isActive"`
}

// ChoghadiyaResponse holds the day and night period sequences.
type ChoghadiyaResponse struct {
	Day   []ChoghadiyaPeriod `json:"day"`
	Night []ChoghadiyaPeriod `json:"night"`
}

// Festival is a calendar entry from the festivals endpoints.
type Festival struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	NameHindi        string `json:"nameHindi"`
	Date             string `json:"date"`
	DateISO          string `json:"dateIso"`
	Type             string `json:"type"` // major, regional, vrat, ekadashi
	Description      string `json:"description,omitempty"`
	DescriptionHindi string `json:"descriptionHindi,omitempty"`
}

// rawGeoResult is the engine's internal geocode record before field mapping.
type rawGeoResult struct {
	LocationID     int     `json:"locationId"`
	Name           string  `json:"name"`
	State          string  `json:"state"`
	Country        string  `json:"country"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Timezone       string  `json:"timezone"`
	Elevation      float64 `json:"elevation,omitempty"`
	MatchedName    string  `json:"matchedName,omitempty"`
	Similarity     float64 `json:"similarity,omitempty"`
	DistanceMeters float64 `json:"distanceMeters,omitempty"`
}

// GeoResult is a geocode match with the provider's location identifier
// mapped to ID.
type GeoResult struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// envelope is the wrapper the geocode endpoints respond with.
type envelope struct {
	Success bool           `json:"success"`
	Data    []rawGeoResult `json:"data"`
	Meta    struct {
		Timestamp      string `json:"timestamp"`
		ResponseTimeMs int    `json:"responseTimeMs"`
	} `json:"meta"`
}
