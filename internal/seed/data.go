package seed

// FeatureSeed is a feature with the options it offers.
type FeatureSeed struct {
	Name    string
	Options []OptionSeed
}

// OptionSeed is one option of a FeatureSeed. Prices are in cents.
type OptionSeed struct {
	Name                string
	PriceInCents        int64
	Image               string
	RequiresConvertible bool
}

// CarSeed is a sample configuration referring to options by name.
type CarSeed struct {
	Name          string
	Options       []string
	IsConvertible bool
}

// dollars converts whole dollars to cents.
func dollars(d int64) int64 { return d * 100 }

// DefaultFeatures is the standard catalog, in insertion order.
func DefaultFeatures() []FeatureSeed {
	return []FeatureSeed{
		{Name: "Exterior", Options: []OptionSeed{
			{Name: "Polar White", PriceInCents: dollars(0), Image: "/images/car-white.png"},
			{Name: "Obsidian Black", PriceInCents: dollars(500), Image: "/images/car-black.png"},
			{Name: "Velocity Red", PriceInCents: dollars(750), Image: "/images/car-red.png"},
			{Name: "Starlight Blue", PriceInCents: dollars(750), Image: "/images/car-blue.png"},
		}},
		{Name: "Roof", Options: []OptionSeed{
			{Name: "Standard Roof", PriceInCents: dollars(0), Image: "/images/roof-standard.png"},
			{Name: "Panoramic Sunroof", PriceInCents: dollars(1200), Image: "/images/roof-pano.png",
				RequiresConvertible: true},
			{Name: "Convertible Soft Top", PriceInCents: dollars(2500), Image: "/images/roof-convertible.png",
				RequiresConvertible: true},
		}},
		{Name: "Wheels", Options: []OptionSeed{
			{Name: "18-inch Aero", PriceInCents: dollars(0), Image: "/images/wheels-aero.png"},
			{Name: "19-inch Sport", PriceInCents: dollars(800), Image: "/images/wheels-sport.png"},
			{Name: "20-inch Performance", PriceInCents: dollars(1500), Image: "/images/wheels-performance.png"},
		}},
		{Name: "Interior", Options: []OptionSeed{
			{Name: "Black Synthetic", PriceInCents: dollars(0), Image: "/images/interior-black.png"},
			{Name: "White Premium", PriceInCents: dollars(1000), Image: "/images/interior-white.png"},
			{Name: "Red Accent", PriceInCents: dollars(1250), Image: "/images/interior-red.png"},
		}},
	}
}

// DefaultCars are the sample configurations created after the catalog.
func DefaultCars() []CarSeed {
	return []CarSeed{
		{
			Name:    "Lightning McQueen",
			Options: []string{"Velocity Red", "Standard Roof", "19-inch Sport", "Black Synthetic"},
		},
		{
			Name:          "White Fox",
			Options:       []string{"Polar White", "Panoramic Sunroof", "18-inch Aero", "White Premium"},
			IsConvertible: true,
		},
		{
			Name:          "Midnight Rider",
			Options:       []string{"Obsidian Black", "Convertible Soft Top", "20-inch Performance", "Red Accent"},
			IsConvertible: true,
		},
	}
}
