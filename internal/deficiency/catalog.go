package deficiency

// Nutrient is one tracked nutrient with its default daily target.
type Nutrient struct {
	ID    string
	Name  string
	Unit  string
	RDA   float64
	Tier  int
	Foods []string
}

// Alertable reports whether the nutrient can raise alerts. Tier 3 is
// informational only.
func (n Nutrient) Alertable() bool {
	return n.Tier == 1 || n.Tier == 2
}

// MaxFoodSuggestions caps the foods attached to one alert.
const MaxFoodSuggestions = 4

var catalog = []Nutrient{
	{ID: "iron", Name: "Iron", Unit: "mg", RDA: 18, Tier: 1,
		Foods: []string{"spinach", "lentils", "lean beef", "fortified cereal", "tofu"}},
	{ID: "calcium", Name: "Calcium", Unit: "mg", RDA: 1000, Tier: 1,
		Foods: []string{"yogurt", "milk", "cheese", "fortified plant milk", "sardines"}},
	{ID: "vitamin_d", Name: "Vitamin D", Unit: "mcg", RDA: 15, Tier: 1,
		Foods: []string{"salmon", "eggs", "fortified milk", "mushrooms"}},
	{ID: "fiber", Name: "Fiber", Unit: "g", RDA: 28, Tier: 1,
		Foods: []string{"beans", "oats", "berries", "whole grain bread", "broccoli"}},
	{ID: "vitamin_b12", Name: "Vitamin B12", Unit: "mcg", RDA: 2.4, Tier: 1,
		Foods: []string{"eggs", "fish", "dairy", "fortified nutritional yeast"}},
	{ID: "magnesium", Name: "Magnesium", Unit: "mg", RDA: 420, Tier: 2,
		Foods: []string{"almonds", "pumpkin seeds", "spinach", "black beans"}},
	{ID: "potassium", Name: "Potassium", Unit: "mg", RDA: 3400, Tier: 2,
		Foods: []string{"bananas", "potatoes", "avocado", "white beans"}},
	{ID: "zinc", Name: "Zinc", Unit: "mg", RDA: 11, Tier: 2,
		Foods: []string{"chickpeas", "pumpkin seeds", "cashews", "lean beef"}},
	{ID: "vitamin_c", Name: "Vitamin C", Unit: "mg", RDA: 90, Tier: 2,
		Foods: []string{"oranges", "bell peppers", "strawberries", "kiwi"}},
	{ID: "folate", Name: "Folate", Unit: "mcg", RDA: 400, Tier: 2,
		Foods: []string{"lentils", "asparagus", "leafy greens", "avocado"}},
	{ID: "vitamin_a", Name: "Vitamin A", Unit: "mcg", RDA: 900, Tier: 3,
		Foods: []string{"carrots", "sweet potatoes", "spinach"}},
	{ID: "vitamin_e", Name: "Vitamin E", Unit: "mg", RDA: 15, Tier: 3,
		Foods: []string{"sunflower seeds", "almonds", "avocado"}},
	{ID: "omega_3", Name: "Omega-3", Unit: "g", RDA: 1.6, Tier: 3,
		Foods: []string{"salmon", "walnuts", "chia seeds", "flaxseed"}},
}

var byID = func() map[string]Nutrient {
	m := make(map[string]Nutrient, len(catalog))
	for _, n := range catalog {
		m[n.ID] = n
	}
	return m
}()

// Catalog returns every tracked nutrient in catalog order.
func Catalog() []Nutrient {
	out := make([]Nutrient, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a nutrient by id.
func Lookup(id string) (Nutrient, bool) {
	n, ok := byID[id]
	return n, ok
}

// FoodSuggestions returns up to MaxFoodSuggestions foods for a nutrient.
func FoodSuggestions(id string) []string {
	n, ok := byID[id]
	if !ok {
		return nil
	}
	foods := n.Foods
	if len(foods) > MaxFoodSuggestions {
		foods = foods[:MaxFoodSuggestions]
	}
	out := make([]string, len(foods))
	copy(out, foods)
	return out
}
