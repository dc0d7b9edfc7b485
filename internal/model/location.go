package model

// GeoPoint is a WGS84 coordinate. Cities and zip codes may have none.
type GeoPoint struct {
	Lat float64 `json:"lat" yaml:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" yaml:"lng" validate:"min=-180,max=180"`
}

// Country is the root of the location hierarchy.
type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// State belongs to a Country. Name holds the short code (e.g. "MA"),
// FullName the display name.
type State struct {
	ID        int64  `json:"id"`
	CountryID int64  `json:"country_id"`
	Name      string `json:"name"`
	FullName  string `json:"full_name"`
	Slug      string `json:"slug"`
}

// City belongs to a State.
type City struct {
	ID       int64     `json:"id"`
	StateID  int64     `json:"state_id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	Location *GeoPoint `json:"location,omitempty"`
}

// ZipCode belongs to a City.
type ZipCode struct {
	ID         int64     `json:"id"`
	CityID     int64     `json:"city_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	SystemName string    `json:"system_name"`
	Location   *GeoPoint `json:"location,omitempty"`
}

// StateView is the public representation of a state with its country name.
type StateView struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// CityView is the public representation of a city with joined parent names.
type CityView struct {
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	StateFullName string `json:"state_full_name"`
	State         string `json:"state"`
	Country       string `json:"country"`
}

// ZipCodeView is the public representation of a zip code with joined parent names.
type ZipCodeView struct {
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	State         string `json:"state"`
	StateFullName string `json:"state_full_name"`
	City          string `json:"city"`
}
