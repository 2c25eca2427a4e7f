package domain

type VillaFeature struct {
	Icon        string `json:"icon"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

type Villa struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	PricePerNight float64        `json:"pricePerNight"`
	MaxGuests     int            `json:"maxGuests"`
	Bedrooms      int            `json:"bedrooms"`
	Bathrooms     int            `json:"bathrooms"`
	SqftInterior  int            `json:"sqftInterior"`
	SqftDeck      int            `json:"sqftDeck"`
	Image         string         `json:"image"`
	Features      []VillaFeature `json:"features"`
}

type AddOnCategory string

const (
	CategorySpa     AddOnCategory = "spa"
	CategoryDining  AddOnCategory = "dining"
	CategorySpecial AddOnCategory = "special"
)

var AddOnCategories = []AddOnCategory{CategorySpa, CategoryDining, CategorySpecial}

func (c AddOnCategory) Label() string {
	switch c {
	case CategorySpa:
		return "Spa & Wellness"
	case CategoryDining:
		return "Culinary"
	case CategorySpecial:
		return "Special Occasions"
	default:
		return string(c)
	}
}

type AddOn struct {
	ID          string        `json:"id"`
	Category    AddOnCategory `json:"category"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Duration    string        `json:"duration,omitempty"`
	Price       float64       `json:"price"`
	Image       string        `json:"image"`
}

var VillaData = Villa{
	ID:            "cypress-villa",
	Name:          "The Cypress Villa",
	Description:   "A sanctuary of refined luxury nestled among ancient trees, where floor-to-ceiling windows frame the forest and every detail invites tranquility.",
	PricePerNight: 895,
	MaxGuests:     2,
	Bedrooms:      1,
	Bathrooms:     1,
	SqftInterior:  890,
	SqftDeck:      800,
	Image:         "/images/villa-exterior.jpg",
	Features: []VillaFeature{
		{Icon: "bed", Label: "King Bed", Description: "Luxury linens & plush bedding"},
		{Icon: "window", Label: "15-ft Windows", Description: "Panoramic forest views"},
		{Icon: "bath", Label: "Soaking Tub", Description: "Deep tub with rainfall shower"},
		{Icon: "hot-tub", Label: "Private Hot Tub", Description: "On your private deck"},
		{Icon: "flame", Label: "Sauna", Description: "Private in-villa sauna"},
		{Icon: "fire", Label: "Fire Pit", Description: "Wood-burning on deck"},
		{Icon: "utensils", Label: "Full Kitchen", Description: "Chef-grade appliances"},
		{Icon: "wifi", Label: "High-Speed WiFi", Description: "Seamless connectivity"},
	},
}

var AddOnsData = []AddOn{
	{ID: "forest-massage", Category: CategorySpa, Name: "Forest Renewal Massage", Description: "A deeply restorative 90-minute massage incorporating locally-sourced botanicals and warm stones.", Duration: "90 min", Price: 250, Image: "/images/cypress-23.jpg"},
	{ID: "couples-retreat", Category: CategorySpa, Name: "Couples Retreat", Description: "Side-by-side massage experience in your villa, followed by a private sound bath session.", Duration: "120 min", Price: 450, Image: "/images/cypress-41.jpg"},
	{ID: "sunrise-yoga", Category: CategorySpa, Name: "Sunrise Yoga Session", Description: "Private yoga session at dawn overlooking the forest, led by our resident instructor.", Duration: "60 min", Price: 75, Image: "/images/cypress-42.png"},
	{ID: "private-chef", Category: CategoryDining, Name: "Private Chef Dinner", Description: "A multi-course tasting menu prepared in your villa by our executive chef.", Duration: "3 hours", Price: 350, Image: "/images/cypress-47.jpg"},
	{ID: "waterfall-picnic", Category: CategoryDining, Name: "Waterfall Picnic Setup", Description: "An intimate gourmet picnic arranged at our private waterfall, complete with champagne.", Price: 175, Image: "/images/cypress-9.png"},
	{ID: "gourmet-provisions", Category: CategoryDining, Name: "Gourmet Provisions Package", Description: "Your kitchen pre-stocked with local cheeses, charcuterie, fresh bread, and premium beverages.", Price: 150, Image: "/images/instagram-605152610.jpg"},
	{ID: "romance-setup", Category: CategorySpecial, Name: "Rose Petal & Champagne", Description: "Transform your villa with rose petals, candles, and a bottle of premium champagne.", Price: 125, Image: "/images/instagram-590397587.jpg"},
	{ID: "photography", Category: CategorySpecial, Name: "Photography Session", Description: "One-hour portrait session with our professional photographer at the waterfall.", Duration: "60 min", Price: 300, Image: "/images/instagram-597936050.jpg"},
}

var SpecialOccasions = []string{"Anniversary", "Birthday", "Honeymoon", "Engagement", "Babymoon", "Proposal", "Just Because"}

var ArrivalTimes = []string{"3:00 PM", "4:00 PM", "5:00 PM", "6:00 PM", "7:00 PM", "8:00 PM", "9:00 PM"}

// FindAddOn looks id up in catalog.
func FindAddOn(catalog []AddOn, id string) (AddOn, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return AddOn{}, false
}
