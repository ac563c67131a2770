package mat

import (
	"image/color"
	"strconv"
	"strings"
)

// Mat identifies a row of the material table.
type Mat uint8

const (
	None Mat = iota
	Sand
	Glass
	Water
	Iron
	Oxygen
	Hydrogen
	CarbonDioxide
	Methane
	Coal
	IronOxide
	Aluminum
	AluminumOxide
	IronThermite
	Magnesium
	MagnesiumOxide
	Sulfur
	SulfurTrioxide
	BlackPowder
	SulfuricAcid
	Kaolinite
	Metakaolin
	CalciumCarbonate
	CalciumOxide

	// Count is the number of materials in the table.
	Count int = iota
)

// Oxidizer is the material every oxidation reaction consumes.
const Oxidizer = Oxygen

// Phase is the derived state of matter that drives displacement rules.
type Phase uint8

const (
	// Static is a rigid solid. It is never displaced.
	Static Phase = iota
	// Grain is a granular solid that piles up diagonally.
	Grain
	Liquid
	Gas
)

func (p Phase) String() string {
	switch p {
	case Static:
		return "static"
	case Grain:
		return "grain"
	case Liquid:
		return "liquid"
	case Gas:
		return "gas"
	default:
		return "unknown"
	}
}

const (
	WeightFactorLiquid = 0.95
	WeightFactorGas    = 0.90
	// WeightLossLimitGas is the temperature span above the boil point over
	// which a gas loses its remaining weight.
	WeightLossLimitGas = 5000.0
)

// Material holds the physical constants of one table row.
type Material struct {
	Name  string
	Color color.RGBA

	// Weight is the full-solid weight in g/cm³.
	Weight float64

	MeltPoint     float64
	BoilPoint     float64
	IgnitionPoint float64

	// Conductivity is W/(m⋅K)/1000, flattened so at most two zeroes follow the dot.
	Conductivity float64

	// OxidationSpeed is the oxidation progress gained per reacting tick.
	OxidationSpeed float64
	// OxidationHeat is the energy released over a full oxidation, in K.
	OxidationHeat     float64
	OxidationProducts [2]Mat

	Solid Phase
	// MeltsInto replaces the material once it first turns liquid. None keeps
	// the identity.
	MeltsInto Mat
}

var table = [Count]Material{
	None: {
		Name:  "none",
		Solid: Static,
	},
	Sand: {
		Name:         "sand",
		Color:        color.RGBA{R: 238, G: 217, B: 86, A: 255},
		Weight:       1.5,
		MeltPoint:    1985.15,
		BoilPoint:    3223.15,
		Conductivity: 0.00673,
		Solid:        Grain,
		MeltsInto:    Glass,
	},
	Glass: {
		Name:         "glass",
		Color:        color.RGBA{R: 237, G: 237, B: 237, A: 128},
		Weight:       1.5,
		MeltPoint:    1985.15,
		BoilPoint:    3223.15,
		Conductivity: 0.00673,
		Solid:        Static,
	},
	Water: {
		Name:         "water",
		Color:        color.RGBA{R: 150, G: 150, B: 255, A: 205},
		Weight:       0.999,
		MeltPoint:    273.15,
		BoilPoint:    373.15,
		Conductivity: 0.0061,
		Solid:        Static,
	},
	// Iron rusts: with no ignition point any iron above 0 K oxidizes, very slowly.
	Iron: {
		Name:              "iron",
		Color:             color.RGBA{R: 200, G: 200, B: 200, A: 255},
		Weight:            7.874,
		MeltPoint:         1811.15,
		BoilPoint:         3134.15,
		Conductivity:      0.084,
		OxidationSpeed:    0.0001112,
		OxidationHeat:     0.69,
		OxidationProducts: [2]Mat{IronOxide, Oxygen},
		Solid:             Static,
	},
	Oxygen: {
		Name:         "oxygen",
		Color:        color.RGBA{R: 200, G: 200, B: 255, A: 100},
		Weight:       0.001323,
		MeltPoint:    54.36,
		BoilPoint:    90.19,
		Conductivity: 0.002,
		Solid:        Static,
	},
	Hydrogen: {
		Name:              "hydrogen",
		Color:             color.RGBA{R: 200, G: 200, B: 255, A: 100},
		Weight:            0.00008319,
		MeltPoint:         13.99,
		BoilPoint:         27.20,
		IgnitionPoint:     858.0,
		Conductivity:      0.0018,
		OxidationSpeed:    0.34,
		OxidationHeat:     2130.0,
		OxidationProducts: [2]Mat{Water, Water},
		Solid:             Static,
	},
	CarbonDioxide: {
		Name:         "carbon dioxide",
		Color:        color.RGBA{R: 200, G: 200, B: 255, A: 100},
		Weight:       0.001977,
		MeltPoint:    216.589,
		BoilPoint:    194.686,
		Conductivity: 0.00146,
		Solid:        Static,
	},
	Methane: {
		Name:              "methane",
		Color:             color.RGBA{R: 65, G: 65, B: 65, A: 150},
		Weight:            0.000657,
		MeltPoint:         90.55,
		BoilPoint:         111.65,
		IgnitionPoint:     853.15,
		Conductivity:      0.003,
		OxidationSpeed:    0.2,
		OxidationHeat:     1963.0,
		OxidationProducts: [2]Mat{Water, CarbonDioxide},
		Solid:             Static,
	},
	Coal: {
		Name:              "coal",
		Color:             color.RGBA{R: 30, G: 30, B: 30, A: 255},
		Weight:            0.833,
		MeltPoint:         4200.15,
		BoilPoint:         3947.65,
		IgnitionPoint:     1001.15,
		Conductivity:      0.0033,
		OxidationSpeed:    0.005,
		OxidationHeat:     5400.0,
		OxidationProducts: [2]Mat{Water, CarbonDioxide},
		Solid:             Static,
	},
	IronOxide: {
		Name:         "iron oxide",
		Color:        color.RGBA{R: 62, G: 9, B: 0, A: 255},
		Weight:       5.25,
		MeltPoint:    1812.0,
		BoilPoint:    9999.9,
		Conductivity: 0.063,
		Solid:        Grain,
		MeltsInto:    Iron,
	},
	Aluminum: {
		Name:              "aluminum",
		Color:             color.RGBA{R: 200, G: 200, B: 210, A: 255},
		Weight:            2.699,
		MeltPoint:         933.47,
		BoilPoint:         2743.0,
		Conductivity:      0.237,
		OxidationSpeed:    0.00666666,
		OxidationHeat:     0.69,
		OxidationProducts: [2]Mat{AluminumOxide, Oxygen},
		Solid:             Static,
	},
	AluminumOxide: {
		Name:         "aluminum oxide",
		Color:        color.RGBA{R: 225, G: 225, B: 225, A: 255},
		Weight:       3.987,
		MeltPoint:    2345.0,
		BoilPoint:    3250.0,
		Conductivity: 0.03,
		Solid:        Static,
		MeltsInto:    Aluminum,
	},
	IronThermite: {
		Name:              "iron thermite",
		Color:             color.RGBA{R: 112, G: 59, B: 65, A: 255},
		Weight:            0.7,
		MeltPoint:         1811.15,
		BoilPoint:         3134.15,
		IgnitionPoint:     1811.0,
		Conductivity:      0.063,
		OxidationSpeed:    0.05,
		OxidationHeat:     6270.0,
		OxidationProducts: [2]Mat{Iron, Aluminum},
		Solid:             Grain,
	},
	Magnesium: {
		Name:              "magnesium",
		Color:             color.RGBA{R: 200, G: 200, B: 200, A: 255},
		Weight:            17.37,
		MeltPoint:         923.0,
		BoilPoint:         1363.0,
		IgnitionPoint:     746.0,
		Conductivity:      0.156,
		OxidationSpeed:    0.1,
		OxidationHeat:     6740.0,
		OxidationProducts: [2]Mat{MagnesiumOxide, Oxygen},
		Solid:             Static,
	},
	MagnesiumOxide: {
		Name:         "magnesium oxide",
		Color:        color.RGBA{R: 240, G: 240, B: 240, A: 255},
		Weight:       3.6,
		MeltPoint:    3125.0,
		BoilPoint:    3870.0,
		Conductivity: 0.0525,
		Solid:        Grain,
		MeltsInto:    Magnesium,
	},
	Sulfur: {
		Name:         "sulfur",
		Color:        color.RGBA{R: 181, G: 169, B: 49, A: 215},
		Weight:       1.96,
		MeltPoint:    388.36,
		BoilPoint:    717.8,
		Conductivity: 0.000205,
		Solid:        Grain,
	},
	SulfurTrioxide: {
		Name:         "sulfur trioxide",
		Color:        color.RGBA{R: 240, G: 240, B: 240, A: 255},
		Weight:       1.92,
		MeltPoint:    290.0,
		BoilPoint:    318.0,
		Conductivity: 0.011,
		Solid:        Grain,
	},
	BlackPowder: {
		Name:              "black powder",
		Color:             color.RGBA{R: 60, G: 60, B: 60, A: 255},
		Weight:            1.7,
		MeltPoint:         4200.15,
		BoilPoint:         3947.65,
		IgnitionPoint:     737.15,
		Conductivity:      0.05,
		OxidationSpeed:    0.5,
		OxidationHeat:     2400.0,
		OxidationProducts: [2]Mat{SulfurTrioxide, CarbonDioxide},
		Solid:             Grain,
	},
	// SulfuricAcid is inert here; nothing dissolves.
	SulfuricAcid: {
		Name:         "sulfuric acid",
		Color:        color.RGBA{R: 255, G: 255, B: 255, A: 30},
		Weight:       1.8302,
		MeltPoint:    283.46,
		BoilPoint:    610.0,
		Conductivity: 0.0061,
		Solid:        Static,
	},
	Kaolinite: {
		Name:         "kaolinite",
		Color:        color.RGBA{R: 154, G: 139, B: 123, A: 255},
		Weight:       1.6,
		MeltPoint:    823.15,
		BoilPoint:    9001.69,
		Conductivity: 0.00673,
		Solid:        Static,
		MeltsInto:    Metakaolin,
	},
	Metakaolin: {
		Name:         "metakaolin",
		Color:        color.RGBA{R: 212, G: 191, B: 169, A: 255},
		Weight:       2.6,
		MeltPoint:    2053.15,
		BoilPoint:    9001.69,
		Conductivity: 0.00673,
		Solid:        Static,
		MeltsInto:    Glass,
	},
	CalciumCarbonate: {
		Name:         "calcium carbonate",
		Color:        color.RGBA{R: 227, G: 223, B: 194, A: 255},
		Weight:       2.7,
		MeltPoint:    1098.0,
		BoilPoint:    9001.69,
		Conductivity: 0.00126,
		Solid:        Static,
		MeltsInto:    CalciumOxide,
	},
	CalciumOxide: {
		Name:         "calcium oxide",
		Color:        color.RGBA{R: 240, G: 240, B: 240, A: 255},
		Weight:       3.34,
		MeltPoint:    2886.0,
		BoilPoint:    3120.0,
		Conductivity: 0.001,
		Solid:        Grain,
	},
}

// Props returns the table row for m. It panics on ids outside the table.
func Props(m Mat) Material {
	if !m.Valid() {
		panic("mat: invalid material id " + strconv.Itoa(int(m)))
	}
	return table[m]
}

// Valid reports whether m indexes the table.
func (m Mat) Valid() bool { return int(m) < Count }

func (m Mat) String() string {
	if !m.Valid() {
		return "mat(" + strconv.Itoa(int(m)) + ")"
	}
	return table[m].Name
}

// Reactive reports whether m oxidizes next to the oxidizer.
func (m Mat) Reactive() bool {
	return m.Valid() && table[m].OxidationHeat > 0
}

// All lists every material id including None.
func All() []Mat {
	out := make([]Mat, Count)
	for i := range out {
		out[i] = Mat(i)
	}
	return out
}

// Parse looks a material up by name. Matching ignores case, and spaces,
// dashes and underscores are interchangeable.
func Parse(name string) (Mat, bool) {
	key := normalize(name)
	for i := range table {
		if normalize(table[i].Name) == key {
			return Mat(i), true
		}
	}
	return None, false
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
