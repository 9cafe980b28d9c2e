package catalog

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var categoryItems = map[Category][]string{
	CategoryElectronics: {
		"Smartphone", "Laptop", "Tablet", "Headphones", "Smart Watch", "Camera",
		"Speaker", "Monitor", "Keyboard", "Mouse", "Router", "Hard Drive",
		"Graphics Card", "Processor", "Motherboard", "RAM", "Power Supply",
		"Gaming Console", "VR Headset", "Drone", "Smart TV", "Soundbar",
		"Wireless Charger", "Phone Case", "Screen Protector", "USB Cable",
		"External Battery", "Webcam", "Microphone", "Printer", "Scanner",
		"Smart Home Hub", "Security Camera", "Smart Doorbell", "Smart Lock",
		"Fitness Tracker", "Electric Toothbrush", "Air Purifier", "Robot Vacuum",
		"Smart Thermostat", "Electric Scooter", "Bluetooth Earbuds", "Portable Speaker",
		"Gaming Mouse", "Gaming Keyboard", "Monitor Stand", "Desk Lamp", "Phone Stand",
	},
	CategoryFashion: {
		"T-Shirt", "Jeans", "Dress", "Sweater", "Jacket", "Shoes", "Sneakers",
		"Boots", "Sandals", "Hat", "Scarf", "Gloves", "Belt", "Watch",
		"Sunglasses", "Backpack", "Handbag", "Wallet", "Jewelry", "Necklace",
		"Earrings", "Bracelet", "Ring", "Hoodie", "Shorts", "Skirt", "Blouse",
		"Suit", "Tie", "Formal Shirt", "Casual Shirt", "Polo Shirt", "Tank Top",
		"Leggings", "Yoga Pants", "Sports Bra", "Running Shoes", "Casual Shoes",
		"High Heels", "Flats", "Loafers", "Winter Coat", "Raincoat", "Cardigan",
		"Blazer", "Vest", "Pajamas", "Underwear", "Socks", "Tights",
	},
	CategoryHomeDecor: {
		"Sofa", "Chair", "Table", "Bed", "Mattress", "Pillow", "Blanket",
		"Curtains", "Rug", "Lamp", "Vase", "Mirror", "Picture Frame", "Clock",
		"Candle", "Plant Pot", "Bookshelf", "Storage Box", "Wardrobe", "Dresser",
		"Nightstand", "Coffee Table", "Dining Table", "Bar Stool", "Office Chair",
		"Desk", "Shelf", "Cabinet", "TV Stand", "Floor Lamp", "Table Lamp",
		"Ceiling Fan", "Wall Art", "Throw Pillow", "Bed Sheet", "Comforter",
		"Window Blinds", "Area Rug", "Door Mat", "Waste Basket", "Laundry Basket",
		"Coat Rack", "Umbrella Stand", "Garden Chair", "Outdoor Table", "Planter",
		"Wind Chimes", "Garden Lights", "Patio Umbrella",
	},
	CategoryBooks: {
		"Fiction Novel", "Non-Fiction Book", "Biography", "Self-Help Book", "Cookbook",
		"Travel Guide", "History Book", "Science Book", "Art Book", "Photography Book",
		"Children's Book", "Textbook", "Dictionary", "Encyclopedia", "Poetry Book",
		"Comic Book", "Graphic Novel", "Magazine", "Journal", "Notebook",
		"Planner", "Calendar", "Recipe Book", "Gardening Book", "DIY Manual",
		"Computer Programming Book", "Business Book", "Finance Book", "Health Book",
		"Fitness Guide", "Language Learning Book", "Music Book", "Philosophy Book",
		"Psychology Book", "Education Book", "Parenting Book", "Romance Novel",
		"Mystery Novel", "Thriller Book", "Fantasy Novel", "Science Fiction",
		"Horror Book", "Adventure Book", "Drama Book", "Comedy Book", "Reference Book",
		"Atlas", "Almanac", "Workbook",
	},
	CategoryHealth: {
		"Vitamins", "Supplements", "Protein Powder", "Energy Bars", "First Aid Kit",
		"Thermometer", "Blood Pressure Monitor", "Scale", "Yoga Mat", "Dumbbells",
		"Resistance Bands", "Exercise Ball", "Jump Rope", "Foam Roller", "Water Bottle",
		"Pill Organizer", "Hand Sanitizer", "Face Mask", "Sunscreen", "Moisturizer",
		"Shampoo", "Conditioner", "Body Wash", "Toothbrush", "Toothpaste", "Mouthwash",
		"Floss", "Deodorant", "Perfume", "Cologne", "Nail Clippers", "Tweezers",
		"Hair Brush", "Comb", "Hair Dryer", "Razor", "Shaving Cream", "Massage Oil",
		"Essential Oils", "Diffuser", "Heating Pad", "Ice Pack", "Compression Socks",
		"Knee Brace", "Back Support", "Posture Corrector", "Sleep Mask", "Earplugs",
		"Meditation Cushion", "Stress Ball",
	},
}

var brands = []string{
	"TechPro", "StyleMax", "HomeEssentials", "BookWorld", "HealthPlus",
	"QualityFirst", "PremiumChoice", "EverydayBest", "TopTier", "Excellence",
}

var categoryTags = map[Category][]string{
	CategoryElectronics: {"tech", "digital", "smart", "wireless", "portable"},
	CategoryFashion:     {"style", "trendy", "comfortable", "fashionable", "elegant"},
	CategoryHomeDecor:   {"home", "decor", "furniture", "interior", "cozy"},
	CategoryBooks:       {"reading", "knowledge", "education", "entertainment", "literature"},
	CategoryHealth:      {"wellness", "fitness", "health", "care", "natural"},
}

// Generate produces the full product set from the fixed category tables.
// A seeded rng makes the catalog reproducible across runs and in tests.
func Generate(rng *rand.Rand, now time.Time) []*Product {
	var products []*Product
	id := int64(1)

	for _, category := range Categories() {
		for _, item := range categoryItems[category] {
			p := &Product{
				ID:          id,
				Name:        item,
				Category:    category,
				Price:       float64(rng.Intn(500) + 10),
				Rating:      roundRating(rng.Float64()*2 + 3), // 3.0 to 5.0
				Reviews:     rng.Intn(1000) + 10,
				Description: fmt.Sprintf("High-quality %s with excellent features and durability. Perfect for everyday use and built to last.", strings.ToLower(item)),
				Image:       "https://images.pexels.com/photos/1000/product-placeholder.jpg?auto=compress&cs=tinysrgb&w=300",
				Stock:       rng.Intn(100) + 1,
				InStock:     rng.Float64() > 0.1, // 90% chance of being in stock
				Featured:    rng.Float64() > 0.8, // 20% chance of being featured
				Brand:       brands[rng.Intn(len(brands))],
				Tags:        generateTags(category, item),
				CreatedAt:   now,
			}

			if rng.Float64() > 0.7 {
				p.Discount = rng.Intn(30) + 10
			}
			if p.Discount > 0 {
				original := p.Price
				p.OriginalPrice = &original
				p.Price = float64(int(original * (1 - float64(p.Discount)/100)))
			}

			products = append(products, p)
			id++
		}
	}

	return products
}

func generateTags(category Category, item string) []string {
	tags := append([]string{}, categoryTags[category]...)
	for _, word := range strings.Fields(strings.ToLower(item)) {
		tags = append(tags, word)
	}
	if len(tags) > 5 {
		tags = tags[:5]
	}
	return tags
}

func roundRating(r float64) float64 {
	return float64(int(r*10)) / 10
}
