package catalog

import "verdant_back_end/internal/models"

// fallbackPlants is a tiny embedded catalog so the cart keeps working when
// the plant API is down (demos, local development).
var fallbackPlants = []models.Plant{
	{
		ID:             "snake-plant",
		Name:           "Snake Plant",
		ScientificName: "Sansevieria trifasciata",
		Description:    "Hardy, air-purifying plant that tolerates low light and irregular watering.",
		Price:          599,
		Image:          "/images/plants/snake-plant.jpg",
		Category:       "indoor",
		InStock:        true,
		StockQuantity:  25,
	},
	{
		ID:             "monstera-deliciosa",
		Name:           "Monstera Deliciosa",
		ScientificName: "Monstera deliciosa",
		Description:    "Iconic split-leaf plant, fast growing in bright indirect light.",
		Price:          1299,
		Image:          "/images/plants/monstera-deliciosa.jpg",
		Category:       "indoor",
		InStock:        true,
		StockQuantity:  12,
	},
	{
		ID:             "peace-lily",
		Name:           "Peace Lily",
		ScientificName: "Spathiphyllum wallisii",
		Description:    "Elegant white blooms, thrives in shade and tells you when it is thirsty.",
		Price:          499,
		Image:          "/images/plants/peace-lily.jpg",
		Category:       "flowering",
		InStock:        true,
		StockQuantity:  18,
	},
}

func fallbackPlant(id string) (models.Plant, bool) {
	for _, plant := range fallbackPlants {
		if plant.ID == id {
			return plant, true
		}
	}
	return models.Plant{}, false
}
