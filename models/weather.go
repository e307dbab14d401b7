package models

import (
	"time"
)

// CurrentConditions represents the current weather observed for one city.
// Wind speed is stored in km/h (converted from the API's m/s).
type CurrentConditions struct {
	City         string    `json:"ciudad"`
	Country      string    `json:"pais"`
	Latitude     float64   `json:"latitud"`
	Longitude    float64   `json:"longitud"`
	Description  string    `json:"descripcion"`
	Icon         string    `json:"icono"`
	Temperature  float64   `json:"temperatura"`
	FeelsLike    float64   `json:"sensacion_termica"`
	TempMin      float64   `json:"temperatura_min"`
	TempMax      float64   `json:"temperatura_max"`
	Humidity     int       `json:"humedad"`
	Pressure     int       `json:"presion"`
	WindSpeed    float64   `json:"viento_kmh"`
	WindDeg      int       `json:"direccion_viento"`
	VisibilityKM float64   `json:"visibilidad_km"` // 0 when the API omits visibility
	Timestamp    time.Time `json:"timestamp"`
}
