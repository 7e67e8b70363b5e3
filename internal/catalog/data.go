package catalog

import "github.com/alexanderdross/V0-Desiree/internal/domain"

func defaultEntries() []domain.CatalogEntry {
	var out []domain.CatalogEntry
	out = append(out, cartDesigns()...)
	out = append(out, equipmentItems()...)
	out = append(out, packages()...)
	return out
}

var standardCartIncluded = []string{
	"Delivery within Oceanside and surrounding areas",
	"Professional setup and breakdown",
	"Basic cleaning after the event",
}

func cartDesigns() []domain.CatalogEntry {
	cart := func(id, name, desc, full, image string, price int64, features ...string) domain.CatalogEntry {
		return domain.CatalogEntry{
			ID:              id,
			Name:            name,
			Description:     desc,
			FullDescription: full,
			Price:           price,
			Image:           image,
			Category:        domain.CategoryCarts,
			Features:        features,
			Specifications: []string{
				"Dimensions: 60\" W x 24\" D x 40\" H",
				"Locking caster wheels",
				"Built-in shelving for glassware",
			},
			Included: standardCartIncluded,
		}
	}
	return []domain.CatalogEntry{
		cart("classic-white", "Classic White Mobile Bar Cart",
			"Timeless white cart with a natural wood top",
			"Our signature cart pairs a crisp white body with a warm wooden counter. It fits beach weddings, garden brunches and everything in between.",
			"/white-mobile-bar-cart-with-wooden-top-beach-setup-.jpg", 150,
			"Natural wood counter", "Front display shelf", "Fits 6 ft of bar space"),
		cart("coastal-blue", "Coastal Blue Mobile Bar Cart",
			"Ocean-inspired blue cart for seaside celebrations",
			"A soft coastal blue finish with whitewashed trim brings the Oceanside shoreline to your event.",
			"/coastal-blue-mobile-bar-cart.jpg", 165,
			"Whitewashed trim", "Rope accent handles"),
		cart("boho-chic", "Boho Chic Mobile Bar Cart",
			"Rattan and macrame details for a relaxed look",
			"Woven rattan panels, macrame fringe and pampas accents make this cart the centerpiece of any bohemian setup.",
			"/boho-chic-mobile-bar-cart.jpg", 175,
			"Rattan front panel", "Macrame fringe", "Pampas grass styling"),
		cart("tropical-paradise", "Tropical Paradise Mobile Bar Cart",
			"Tiki-style cart with thatched canopy",
			"Thatched canopy, bamboo siding and palm accents turn any backyard into an island bar.",
			"/tropical-paradise-mobile-bar-cart.jpg", 180,
			"Thatched canopy", "Bamboo siding", "Palm leaf accents"),
		cart("modern-noir", "Modern Noir Mobile Bar Cart",
			"Matte black cart with brass fixtures",
			"Sleek matte black panels and brushed brass hardware suit evening receptions and corporate events.",
			"/modern-noir-mobile-bar-cart.jpg", 185,
			"Matte black finish", "Brass fixtures", "Integrated LED under-glow"),
		cart("vintage-romance", "Vintage Romance Mobile Bar Cart",
			"Antique-finished cart with floral styling",
			"Distressed cream paint, scalloped edges and fresh-flower styling make this cart a favorite for weddings.",
			"/vintage-romance-mobile-bar-cart.jpg", 195,
			"Distressed cream finish", "Scalloped trim", "Floral garland mount"),
	}
}

func equipmentItems() []domain.CatalogEntry {
	item := func(id, name, sub, desc, image string, price int64, colors ...string) domain.CatalogEntry {
		return domain.CatalogEntry{
			ID:              id,
			Name:            name,
			Description:     desc,
			FullDescription: desc + ". Delivered, set up and collected by our team.",
			Price:           price,
			Image:           image,
			Category:        domain.CategoryEquipment,
			SubCategory:     sub,
			Colors:          colors,
			Included:        []string{"Delivery and setup", "Pickup after the event"},
		}
	}

	beach := item("beach-umbrella", "Beach Umbrella", "Shade",
		"7 ft beach umbrella with sand anchor", "/beach-umbrella.jpg", 25,
		"Blue", "White", "Yellow", "Striped")
	beach.Specifications = []string{"Canopy: 7 ft", "UPF 50+ fabric", "Sand anchor included"}

	tiki := item("tiki-umbrella", "Tiki Umbrella", "Shade",
		"Thatched tiki umbrella for a tropical feel", "/tiki-umbrella.jpg", 35)
	tiki.Specifications = []string{"Canopy: 8 ft", "Weighted base"}

	market := item("market-umbrella", "Market Umbrella", "Shade",
		"9 ft market umbrella with tilt function", "/market-umbrella.jpg", 30,
		"White", "Navy Blue", "Sage")
	market.Specifications = []string{"Canopy: 9 ft", "Crank lift and tilt", "Weighted base included"}

	return []domain.CatalogEntry{
		beach,
		tiki,
		market,
		item("string-lights", "Bistro String Lights", "Lighting",
			"48 ft of warm-white bistro lighting", "/string-lights.jpg", 40),
		item("marquee-letters", "Marquee Letters", "Lighting",
			"Light-up 4 ft marquee letters, priced per letter", "/marquee-letters.jpg", 45),
		item("floral-arch", "Floral Arch", "Decor",
			"Hexagon arch with silk floral arrangement", "/floral-arch.jpg", 85,
			"Blush", "Ivory", "Tropical"),
		item("lounge-set", "Boho Lounge Set", "Decor",
			"Rattan loveseat, two chairs and a coffee table", "/lounge-set.jpg", 120),
		item("drink-dispenser", "Glass Drink Dispenser", "Essentials",
			"2.5 gallon glass dispenser with stand", "/drink-dispenser.jpg", 15),
		item("cooler", "Rolling Cooler", "Essentials",
			"100 qt rolling cooler, delivered with ice", "/cooler.jpg", 20,
			"White", "Blue"),
	}
}

func packages() []domain.CatalogEntry {
	details := func(min string) *domain.RentalDetails {
		return &domain.RentalDetails{
			MinimumRental:    min,
			DeliveryIncluded: "25 miles of Oceanside",
			SetupTime:        "60 minutes before event",
			PickupTime:       "Within 2 hours after event",
		}
	}
	return []domain.CatalogEntry{
		{
			ID:              "beach-bash",
			Name:            "Beach Bash Package",
			Description:     "Everything for a sunny beach party",
			FullDescription: "Our Classic White cart with shade, cold drinks and lights for sunset. The easiest way to host on the sand.",
			Price:           235,
			PackagePrice:    199,
			OriginalPrice:   235,
			Savings:         36,
			Image:           "/beach-bash-package.jpg",
			Category:        domain.CategoryPackages,
			Items:           []string{"Classic White Mobile Bar Cart", "Beach Umbrella", "Rolling Cooler", "Bistro String Lights"},
			IdealFor:        []string{"Beach parties", "Birthdays", "Bonfires"},
			Specifications:  []string{"Serves up to 50 guests", "Setup area: 12 ft x 12 ft"},
			RentalDetails:   details("4 hours"),
		},
		{
			ID:              "wedding-elegance",
			Name:            "Wedding Elegance Package",
			Description:     "A romantic bar setup for your big day",
			FullDescription: "The Vintage Romance cart framed by a floral arch and warm lighting, with a dispenser station for welcome drinks.",
			Price:           380,
			PackagePrice:    299,
			OriginalPrice:   380,
			Savings:         81,
			Image:           "/wedding-elegance-package.jpg",
			Category:        domain.CategoryPackages,
			Items:           []string{"Vintage Romance Mobile Bar Cart", "Floral Arch", "Bistro String Lights", "Glass Drink Dispenser", "Marquee Letters"},
			IdealFor:        []string{"Weddings", "Engagements", "Anniversaries"},
			Specifications:  []string{"Serves up to 150 guests", "Setup area: 20 ft x 15 ft"},
			RentalDetails:   details("6 hours"),
			Popular:         true,
		},
		{
			ID:              "tropical-luau",
			Name:            "Tropical Luau Package",
			Description:     "Island vibes with a tiki bar and lounge",
			FullDescription: "Tropical Paradise cart, tiki umbrella shade and a boho lounge for guests to unwind.",
			Price:           335,
			PackagePrice:    279,
			OriginalPrice:   335,
			Savings:         56,
			Image:           "/tropical-luau-package.jpg",
			Category:        domain.CategoryPackages,
			Items:           []string{"Tropical Paradise Mobile Bar Cart", "Tiki Umbrella", "Boho Lounge Set"},
			IdealFor:        []string{"Luaus", "Summer parties", "Corporate retreats"},
			Specifications:  []string{"Serves up to 80 guests", "Setup area: 16 ft x 16 ft"},
			RentalDetails:   details("4 hours"),
		},
	}
}
