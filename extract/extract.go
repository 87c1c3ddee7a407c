// Package extract turns parsed save trees into typed economic data:
// the world commodity market, per-country finances and industry, and
// size-weighted population statistics aggregated from province blocks.
//
// Population units live in province blocks rather than country blocks,
// so country extraction needs the province table built first:
//
//	doc, err := pdxsave.ParseFile("save.v2")
//	...
//	data := extract.FromDocument(doc)
//	fmt.Println(data.Countries["ENG"].Treasury)
package extract

import (
	"strconv"

	"github.com/pdxtools/pdxsave/save"
)

// RebelTag is the pseudo-country holding rebel units. It shares the
// three-letter shape of real tags but carries no economy.
const RebelTag = "REB"

// IsCountryTag reports whether key names a playable country: three
// uppercase ASCII letters, excluding the rebel pseudo-country.
func IsCountryTag(key string) bool {
	if len(key) != 3 || key == RebelTag {
		return false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < 'A' || key[i] > 'Z' {
			return false
		}
	}
	return true
}

// Provinces collects the province blocks of a parsed save, keyed by
// province ID. Province sections have purely numeric keys; a name field
// distinguishes them from other numeric top-level blocks.
func Provinces(root *save.Node) map[int64]*save.Node {
	provinces := make(map[int64]*save.Node)
	for key, v := range root.Fields() {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		if !v.IsMap() {
			continue
		}
		if _, ok := v.Get("name"); ok {
			provinces[id] = v
		}
	}
	return provinces
}

// SaveData is the complete extraction result for one save file.
type SaveData struct {
	Date        string
	WorldMarket WorldMarket
	Countries   map[string]Country
	GlobalPops  Pops
}

// FromDocument runs the full extraction pipeline over a parsed save:
// date, world market, every country, and global population aggregates.
func FromDocument(doc *save.Document) *SaveData {
	return FromNode(doc.Root())
}

// FromNode is FromDocument over a bare root node.
func FromNode(root *save.Node) *SaveData {
	data := &SaveData{
		WorldMarket: WorldMarketData(root),
		Countries:   make(map[string]Country),
	}
	if date, ok := root.Get("date"); ok {
		data.Date = date.StringOr("")
	}

	provinces := Provinces(root)
	for key, v := range root.Fields() {
		if !IsCountryTag(key) || !v.IsMap() {
			continue
		}
		data.Countries[key] = CountryData(key, v, provinces)
	}
	data.GlobalPops = GlobalPops(data.Countries)
	return data
}

// GlobalPops aggregates country population data into world totals.
// Averages are weighted by each country's population.
func GlobalPops(countries map[string]Country) Pops {
	global := newPops()

	var weightedLife, weightedEveryday, weightedLuxury float64
	var weightedLiteracy, weightedCon, weightedMil float64

	for _, c := range countries {
		p := c.Pops
		global.TotalPopulation += p.TotalPopulation
		global.TotalMoney += p.TotalMoney
		global.TotalBankSavings += p.TotalBankSavings
		for typeName, count := range p.PopulationByType {
			global.PopulationByType[typeName] += count
		}
		for typeName, money := range p.MoneyByType {
			global.MoneyByType[typeName] += money
		}
		global.EmployedCraftsmen += p.EmployedCraftsmen
		global.EmployedClerks += p.EmployedClerks
		global.EmployedLabourers += p.EmployedLabourers
		global.EmployedFarmers += p.EmployedFarmers

		w := float64(p.TotalPopulation)
		weightedLife += p.AvgLifeNeeds * w
		weightedEveryday += p.AvgEverydayNeeds * w
		weightedLuxury += p.AvgLuxuryNeeds * w
		weightedLiteracy += p.AvgLiteracy * w
		weightedCon += p.AvgConsciousness * w
		weightedMil += p.AvgMilitancy * w
	}

	if total := float64(global.TotalPopulation); total > 0 {
		global.AvgLifeNeeds = weightedLife / total
		global.AvgEverydayNeeds = weightedEveryday / total
		global.AvgLuxuryNeeds = weightedLuxury / total
		global.AvgLiteracy = weightedLiteracy / total
		global.AvgConsciousness = weightedCon / total
		global.AvgMilitancy = weightedMil / total
	}
	return global
}
