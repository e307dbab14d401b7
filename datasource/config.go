package datasource

import (
	"encoding/json"
	"fmt"
	"os"
)

// CountryConfig pairs a country name with its ordered city queries
// ("CityName, ISO-3166-alpha2"). City order is the display order; the
// lists are assumed pre-deduplicated.
type CountryConfig struct {
	Name   string   `json:"name"`
	Cities []string `json:"cities"`
}

// Config represents the application configuration
type Config struct {
	DefaultCountry string          `json:"defaultCountry"`
	Countries      []CountryConfig `json:"countries"`
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	if len(config.Countries) == 0 {
		return nil, fmt.Errorf("config %s defines no countries", filename)
	}
	if config.DefaultCountry == "" {
		config.DefaultCountry = config.Countries[0].Name
	}
	if _, ok := config.CitiesFor(config.DefaultCountry); !ok {
		return nil, fmt.Errorf("default country %q not present in config", config.DefaultCountry)
	}

	return &config, nil
}

// CitiesFor returns the city list for a country, preserving config order.
func (c *Config) CitiesFor(country string) ([]string, bool) {
	for _, cc := range c.Countries {
		if cc.Name == country {
			return cc.Cities, true
		}
	}
	return nil, false
}

// CountryNames returns the configured country names in config order.
func (c *Config) CountryNames() []string {
	names := make([]string, 0, len(c.Countries))
	for _, cc := range c.Countries {
		names = append(names, cc.Name)
	}
	return names
}

// DefaultConfig creates the built-in South American country set, used
// when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		DefaultCountry: "Argentina",
		Countries: []CountryConfig{
			{Name: "Argentina", Cities: []string{
				"Buenos Aires, AR", "Cordoba, AR", "Rosario, AR", "Mendoza, AR",
				"San Miguel de Tucuman, AR", "La Plata, AR", "Mar del Plata, AR",
				"Salta, AR", "Santa Fe, AR", "San Luis, AR",
			}},
			{Name: "Venezuela", Cities: []string{
				"Caracas, VE", "Maracaibo, VE", "Valencia, VE", "Barquisimeto, VE",
			}},
			{Name: "Colombia", Cities: []string{
				"Bogota, CO", "Medellin, CO", "Cali, CO", "Barranquilla, CO",
			}},
			{Name: "Chile", Cities: []string{
				"Santiago, CL", "Valparaiso, CL", "Concepcion, CL", "La Serena, CL",
			}},
			{Name: "Peru", Cities: []string{
				"Lima, PE", "Arequipa, PE", "Trujillo, PE", "Cusco, PE",
			}},
		},
	}
}
