package dto

type StationResponse struct {
	StationID          string  `json:"station_id"`
	Name               string  `json:"name"`
	City               string  `json:"city"`
	State              string  `json:"state"`
	FuelPricePerGallon float64 `json:"fuel_price_per_gallon"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
}

type ListStationsResponse struct {
	CatalogVersion uint64            `json:"catalog_version"`
	Count          int               `json:"count"`
	Stations       []StationResponse `json:"stations"`
}

type RefreshCatalogResponse struct {
	CatalogVersion uint64 `json:"catalog_version"`
	Count          int    `json:"count"`
}
