package api

// SavedCountry mirrors one element of /api/get-all-saved-countries.
// The service identifies saved countries by common name only.
type SavedCountry struct {
	CountryName string `json:"country_name"`
}

// ViewCount mirrors the /api/update-one-country-count response.
type ViewCount struct {
	Count int `json:"count"`
}

// User mirrors the user objects of /api/get-newest-user and the
// /api/add-one-user request body.
type User struct {
	Name        string `json:"name"`
	CountryName string `json:"country_name"`
	Email       string `json:"email"`
	Bio         string `json:"bio"`
}

type countryNameRequest struct {
	CountryName string `json:"country_name"`
}
