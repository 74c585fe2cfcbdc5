package config

// DefaultDistricts returns the built-in district catalog: the 18
// Portuguese mainland districts with attractiveness weights in [0,1].
// Used when the config file names no districts.
func DefaultDistricts() []DistrictConfig {
	return []DistrictConfig{
		{ID: 1, Name: "Lisboa", Attractiveness: 0.90, Urban: true},
		{ID: 2, Name: "Porto", Attractiveness: 0.82, Urban: true},
		{ID: 3, Name: "Braga", Attractiveness: 0.66, Urban: true},
		{ID: 4, Name: "Setubal", Attractiveness: 0.62, Urban: true},
		{ID: 5, Name: "Aveiro", Attractiveness: 0.52},
		{ID: 6, Name: "Coimbra", Attractiveness: 0.50},
		{ID: 7, Name: "Faro", Attractiveness: 0.58, Urban: true},
		{ID: 8, Name: "Leiria", Attractiveness: 0.44},
		{ID: 9, Name: "Santarem", Attractiveness: 0.40},
		{ID: 10, Name: "Viseu", Attractiveness: 0.34},
		{ID: 11, Name: "Viana do Castelo", Attractiveness: 0.32},
		{ID: 12, Name: "Vila Real", Attractiveness: 0.28},
		{ID: 13, Name: "Braganca", Attractiveness: 0.24},
		{ID: 14, Name: "Guarda", Attractiveness: 0.22},
		{ID: 15, Name: "Castelo Branco", Attractiveness: 0.26},
		{ID: 16, Name: "Portalegre", Attractiveness: 0.20},
		{ID: 17, Name: "Evora", Attractiveness: 0.30},
		{ID: 18, Name: "Beja", Attractiveness: 0.22},
	}
}
