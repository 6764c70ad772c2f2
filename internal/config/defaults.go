package config

// Goods traded in the default scenario.
var defaultGoods = []string{
	"Spice", "Silk", "Gems", "Iron Ore", "Grain",
	"Porcelain", "Tea", "Incense Wood", "Herbs", "Pearl",
	"Jade", "Amber", "Perfume", "Wine", "Wool",
}

// prices zips base prices onto defaultGoods in order.
func prices(values ...float64) map[string]float64 {
	out := make(map[string]float64, len(values))
	for i, v := range values {
		out[defaultGoods[i]] = v
	}
	return out
}

// Default returns the stock scenario: seven Mediterranean and Red Sea ports,
// seven ships, one simulated year.
func Default() Config {
	return Config{
		Seed:           42,
		Days:           365,
		LogLevel:       "info",
		PricePolicy:    "permanent",
		WeatherPolicy:  "oneshot",
		CurrencySupply: 20000,
		Cities: []CityConfig{
			{
				Name:        "Lisbon",
				BasePrices:  prices(50, 100, 500, 20, 5, 300, 40, 80, 150, 400, 450, 200, 120, 30, 15),
				Production:  map[string]float64{"Spice": 10, "Iron Ore": 50, "Grain": 200, "Wine": 80, "Wool": 100},
				Consumption: map[string]float64{"Silk": 15, "Gems": 5, "Iron Ore": 30, "Grain": 180, "Perfume": 20},
				Specialties: []string{"Wine", "Wool", "Iron Ore"},
			},
			{
				Name:        "Venice",
				BasePrices:  prices(60, 80, 450, 30, 8, 350, 35, 70, 160, 450, 500, 220, 100, 25, 20),
				Production:  map[string]float64{"Silk": 20, "Gems": 8, "Perfume": 25, "Wine": 90},
				Consumption: map[string]float64{"Spice": 12, "Silk": 18, "Gems": 10, "Iron Ore": 25, "Grain": 150, "Incense Wood": 15},
				Specialties: []string{"Silk", "Perfume"},
			},
			{
				Name:        "Constantinople",
				BasePrices:  prices(40, 120, 400, 25, 6, 400, 45, 60, 140, 420, 480, 180, 110, 35, 18),
				Production:  map[string]float64{"Spice": 15, "Silk": 15, "Grain": 180, "Tea": 30, "Herbs": 25},
				Consumption: map[string]float64{"Spice": 8, "Silk": 20, "Gems": 7, "Iron Ore": 40, "Grain": 200, "Pearl": 10},
				Specialties: []string{"Spice", "Silk", "Porcelain"},
			},
			{
				Name:        "Alexandria",
				BasePrices:  prices(45, 110, 420, 28, 7, 380, 50, 75, 130, 380, 470, 190, 95, 40, 22),
				Production:  map[string]float64{"Spice": 20, "Herbs": 30, "Perfume": 30},
				Consumption: map[string]float64{"Silk": 25, "Gems": 12, "Iron Ore": 35, "Grain": 170, "Amber": 15},
				Specialties: []string{"Spice", "Herbs", "Gems"},
			},
			{
				Name:        "Genoa",
				BasePrices:  prices(55, 90, 480, 22, 9, 320, 38, 85, 145, 430, 460, 210, 105, 20, 16),
				Production:  map[string]float64{"Wine": 70, "Wool": 90, "Iron Ore": 45},
				Consumption: map[string]float64{"Spice": 14, "Silk": 22, "Gems": 9, "Iron Ore": 20, "Porcelain": 15},
				Specialties: []string{"Wine", "Silk", "Iron Ore"},
			},
			{
				Name:        "Barcelona",
				BasePrices:  prices(58, 95, 460, 26, 10, 360, 42, 78, 155, 410, 490, 205, 115, 28, 12),
				Production:  map[string]float64{"Wine": 85, "Perfume": 35},
				Consumption: map[string]float64{"Spice": 16, "Silk": 17, "Gems": 8, "Grain": 160, "Incense Wood": 18, "Wool": 80},
				Specialties: []string{"Wine", "Perfume", "Wool"},
			},
			{
				Name:        "Aden",
				BasePrices:  prices(35, 130, 390, 32, 12, 370, 32, 90, 125, 440, 510, 195, 125, 45, 25),
				Production:  map[string]float64{"Spice": 25, "Incense Wood": 35, "Pearl": 15},
				Consumption: map[string]float64{"Tea": 20, "Gems": 6, "Grain": 190, "Porcelain": 18, "Herbs": 28},
				Specialties: []string{"Spice", "Incense Wood", "Pearl"},
			},
		},
		Ships: []ShipConfig{
			{Name: "Sea Serpent", Capacity: 100, Speed: 3, Preference: "price"},
			{Name: "Sea Lion", Capacity: 150, Speed: 2, Preference: "price"},
			{Name: "Golden Hind", Capacity: 120, Speed: 4, Preference: "quality"},
			{Name: "Polaris", Capacity: 200, Speed: 2, Preference: "quality"},
			{Name: "Dragon Knight", Capacity: 180, Speed: 3, Preference: "quality"},
			{Name: "Storm Bringer", Capacity: 130, Speed: 5, Preference: "price"},
			{Name: "Treasure", Capacity: 250, Speed: 1, Preference: "price"},
		},
	}
}
