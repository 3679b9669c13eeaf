package menus

// MenuItem is the shape most read paths work with. scraped items only
// carry a name and their station name as category; the nutrition-rich
// fields live on MenuItemDetailed and exist only for seed items.
type MenuItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type MenuItemDetailed struct {
	ID          int64
	Name        string
	Description string
	Category    string
	Calories    int64
	Fat         float64
	Protein     float64
	Carbs       float64
	Fiber       float64
	Sugar       float64
	Allergens   string
	Ingredients string
	ImagePath   string
	Price       float64
}
