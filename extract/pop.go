package extract

import "github.com/pdxtools/pdxsave/save"

// Population unit types and their numeric identifiers as they appear in
// save files. Employment records reference units by ID rather than name,
// and clerks show up under two different IDs depending on context.
const (
	PopAristocrats = 0
	PopArtisans    = 1
	PopBureaucrats = 2
	PopCapitalists = 3
	PopClergymen   = 4
	PopClerks      = 5
	PopClerksAlt   = 6
	PopCraftsmen   = 7
	PopFarmers     = 8
	PopLabourers   = 9
	PopOfficers    = 10
	PopSoldiers    = 11
	PopSlaves      = 12
)

var popTypeNames = map[string]int{
	"aristocrats": PopAristocrats,
	"artisans":    PopArtisans,
	"bureaucrats": PopBureaucrats,
	"capitalists": PopCapitalists,
	"clergymen":   PopClergymen,
	"clerks":      PopClerks,
	"craftsmen":   PopCraftsmen,
	"farmers":     PopFarmers,
	"labourers":   PopLabourers,
	"officers":    PopOfficers,
	"soldiers":    PopSoldiers,
	"slaves":      PopSlaves,
}

// PopTypes returns the population unit type names in ID order.
func PopTypes() []string {
	return []string{
		"aristocrats", "artisans", "bureaucrats", "capitalists",
		"clergymen", "clerks", "craftsmen", "farmers", "labourers",
		"officers", "soldiers", "slaves",
	}
}

// PopTypeID returns the numeric identifier for a population type name.
func PopTypeID(name string) (int, bool) {
	id, ok := popTypeNames[name]
	return id, ok
}

// PopTypeName resolves a numeric identifier back to a type name,
// accepting the alternate clerk ID.
func PopTypeName(id int) (string, bool) {
	if id == PopClerksAlt {
		return "clerks", true
	}
	for name, n := range popTypeNames {
		if n == id {
			return name, true
		}
	}
	return "", false
}

// Pop holds the fields of a single population unit block.
type Pop struct {
	Type          string
	Size          int64
	Money         float64
	Bank          float64
	LifeNeeds     float64
	EverydayNeeds float64
	LuxuryNeeds   float64
	Literacy      float64
	Consciousness float64
	Militancy     float64
}

// PopFromBlock reads one population unit block. Missing fields default
// to zero; a non-map block yields the zero Pop.
func PopFromBlock(typeName string, block *save.Node) Pop {
	if !block.IsMap() {
		return Pop{Type: typeName}
	}
	return Pop{
		Type:          typeName,
		Size:          block.GetInt("size", 0),
		Money:         block.GetFloat("money", 0),
		Bank:          block.GetFloat("bank", 0),
		LifeNeeds:     block.GetFloat("life_needs", 0),
		EverydayNeeds: block.GetFloat("everyday_needs", 0),
		LuxuryNeeds:   block.GetFloat("luxury_needs", 0),
		Literacy:      block.GetFloat("literacy", 0),
		Consciousness: block.GetFloat("con", 0),
		Militancy:     block.GetFloat("mil", 0),
	}
}

// Pops aggregates population data across a country or the whole world.
// Averages are weighted by unit size.
type Pops struct {
	TotalPopulation  int64
	PopulationByType map[string]int64
	TotalMoney       float64
	TotalBankSavings float64
	MoneyByType      map[string]float64

	AvgLifeNeeds     float64
	AvgEverydayNeeds float64
	AvgLuxuryNeeds   float64
	AvgLiteracy      float64
	AvgConsciousness float64
	AvgMilitancy     float64

	EmployedCraftsmen int64
	EmployedClerks    int64
	EmployedLabourers int64
	EmployedFarmers   int64
}

func newPops() Pops {
	return Pops{
		PopulationByType: make(map[string]int64),
		MoneyByType:      make(map[string]float64),
	}
}

// popAccumulator carries the size-weighted sums used to compute the
// average fields of Pops once the total population is known.
type popAccumulator struct {
	pops Pops

	weightedLife     float64
	weightedEveryday float64
	weightedLuxury   float64
	weightedLiteracy float64
	weightedCon      float64
	weightedMil      float64
}

func newPopAccumulator() *popAccumulator {
	return &popAccumulator{pops: newPops()}
}

func (a *popAccumulator) add(p Pop) {
	size := p.Size
	a.pops.TotalPopulation += size
	a.pops.PopulationByType[p.Type] += size
	a.pops.TotalMoney += p.Money
	a.pops.TotalBankSavings += p.Bank
	a.pops.MoneyByType[p.Type] += p.Money

	w := float64(size)
	a.weightedLife += p.LifeNeeds * w
	a.weightedEveryday += p.EverydayNeeds * w
	a.weightedLuxury += p.LuxuryNeeds * w
	a.weightedLiteracy += p.Literacy * w
	a.weightedCon += p.Consciousness * w
	a.weightedMil += p.Militancy * w
}

func (a *popAccumulator) finish() Pops {
	total := float64(a.pops.TotalPopulation)
	if total > 0 {
		a.pops.AvgLifeNeeds = a.weightedLife / total
		a.pops.AvgEverydayNeeds = a.weightedEveryday / total
		a.pops.AvgLuxuryNeeds = a.weightedLuxury / total
		a.pops.AvgLiteracy = a.weightedLiteracy / total
		a.pops.AvgConsciousness = a.weightedCon / total
		a.pops.AvgMilitancy = a.weightedMil / total
	}
	return a.pops
}
