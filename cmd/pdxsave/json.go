package main

import (
	"github.com/pdxtools/pdxsave/extract"
	"github.com/pdxtools/pdxsave/save"
)

// SaveJSON is the top-level JSON output for one processed save file.
type SaveJSON struct {
	Date             string                 `json:"date"`
	WorldMarket      WorldMarketJSON        `json:"world_market"`
	GlobalStatistics GlobalStatsJSON        `json:"global_statistics"`
	Countries        map[string]CountryJSON `json:"countries"`
}

// WorldMarketJSON holds per-commodity market series.
type WorldMarketJSON struct {
	Prices     map[string]float64 `json:"prices"`
	Supply     map[string]float64 `json:"supply"`
	ActualSold map[string]float64 `json:"actual_sold"`
}

// GlobalStatsJSON holds world population aggregates.
type GlobalStatsJSON struct {
	TotalPopulation    int64              `json:"total_population"`
	PopulationByType   map[string]int64   `json:"population_by_type"`
	TotalPopMoney      float64            `json:"total_pop_money"`
	TotalPopBankSaving float64            `json:"total_pop_bank_savings"`
	MoneyByPopType     map[string]float64 `json:"money_by_pop_type"`
	AvgLifeNeeds       float64            `json:"avg_life_needs"`
	AvgEverydayNeeds   float64            `json:"avg_everyday_needs"`
	AvgLuxuryNeeds     float64            `json:"avg_luxury_needs"`
	AvgLiteracy        float64            `json:"avg_literacy"`
	AvgConsciousness   float64            `json:"avg_consciousness"`
	AvgMilitancy       float64            `json:"avg_militancy"`
	EmployedCraftsmen  int64              `json:"total_employed_craftsmen"`
	EmployedLabourers  int64              `json:"total_employed_labourers"`
}

// CountryJSON holds the JSON-serializable form of one country.
type CountryJSON struct {
	Treasury      float64 `json:"treasury"`
	BankReserves  float64 `json:"bank_reserves"`
	BankMoneyLent float64 `json:"bank_money_lent"`
	Prestige      float64 `json:"prestige"`
	Infamy        float64 `json:"infamy"`
	TaxBase       float64 `json:"tax_base"`
	Civilized     bool    `json:"civilized"`

	RichTaxRate     float64 `json:"rich_tax_rate"`
	MiddleTaxRate   float64 `json:"middle_tax_rate"`
	PoorTaxRate     float64 `json:"poor_tax_rate"`
	RichTaxIncome   float64 `json:"rich_tax_income"`
	MiddleTaxIncome float64 `json:"middle_tax_income"`
	PoorTaxIncome   float64 `json:"poor_tax_income"`
	TotalTaxIncome  float64 `json:"total_tax_income"`

	EducationSpending float64 `json:"education_spending"`
	MilitarySpending  float64 `json:"military_spending"`
	SocialSpending    float64 `json:"social_spending"`

	FactoryCount      int64   `json:"total_factory_count"`
	FactoryLevels     int64   `json:"total_factory_levels"`
	FactoryIncome     float64 `json:"total_factory_income"`
	FactoryEmployment int64   `json:"total_factory_employment"`
	RGOIncome         float64 `json:"total_rgo_income"`
	RGOEmployment     int64   `json:"total_rgo_employment"`

	Population PopulationJSON `json:"population"`
}

// PopulationJSON holds a country's aggregated population data.
type PopulationJSON struct {
	Total            int64              `json:"total"`
	ByType           map[string]int64   `json:"by_type"`
	TotalMoney       float64            `json:"total_money"`
	TotalBankSavings float64            `json:"total_bank_savings"`
	MoneyByType      map[string]float64 `json:"money_by_type"`
	AvgLifeNeeds     float64            `json:"avg_life_needs"`
	AvgEverydayNeeds float64            `json:"avg_everyday_needs"`
	AvgLuxuryNeeds   float64            `json:"avg_luxury_needs"`
	AvgLiteracy      float64            `json:"avg_literacy"`
	AvgConsciousness float64            `json:"avg_consciousness"`
	AvgMilitancy     float64            `json:"avg_militancy"`
}

func saveJSON(data *extract.SaveData) SaveJSON {
	out := SaveJSON{
		Date: data.Date,
		WorldMarket: WorldMarketJSON{
			Prices:     data.WorldMarket.Prices,
			Supply:     data.WorldMarket.Supply,
			ActualSold: data.WorldMarket.ActualSold,
		},
		GlobalStatistics: globalStatsJSON(data.GlobalPops),
		Countries:        make(map[string]CountryJSON, len(data.Countries)),
	}
	for tag, c := range data.Countries {
		out.Countries[tag] = countryJSON(c)
	}
	return out
}

func globalStatsJSON(p extract.Pops) GlobalStatsJSON {
	return GlobalStatsJSON{
		TotalPopulation:    p.TotalPopulation,
		PopulationByType:   p.PopulationByType,
		TotalPopMoney:      p.TotalMoney,
		TotalPopBankSaving: p.TotalBankSavings,
		MoneyByPopType:     p.MoneyByType,
		AvgLifeNeeds:       p.AvgLifeNeeds,
		AvgEverydayNeeds:   p.AvgEverydayNeeds,
		AvgLuxuryNeeds:     p.AvgLuxuryNeeds,
		AvgLiteracy:        p.AvgLiteracy,
		AvgConsciousness:   p.AvgConsciousness,
		AvgMilitancy:       p.AvgMilitancy,
		EmployedCraftsmen:  p.EmployedCraftsmen,
		EmployedLabourers:  p.EmployedLabourers,
	}
}

func countryJSON(c extract.Country) CountryJSON {
	return CountryJSON{
		Treasury:      c.Treasury,
		BankReserves:  c.BankReserves,
		BankMoneyLent: c.BankMoneyLent,
		Prestige:      c.Prestige,
		Infamy:        c.Infamy,
		TaxBase:       c.TaxBase,
		Civilized:     c.Civilized,

		RichTaxRate:     c.RichTaxRate,
		MiddleTaxRate:   c.MiddleTaxRate,
		PoorTaxRate:     c.PoorTaxRate,
		RichTaxIncome:   c.RichTaxIncome,
		MiddleTaxIncome: c.MiddleTaxIncome,
		PoorTaxIncome:   c.PoorTaxIncome,
		TotalTaxIncome:  c.TotalTaxIncome(),

		EducationSpending: c.EducationSpending,
		MilitarySpending:  c.MilitarySpending,
		SocialSpending:    c.SocialSpending,

		FactoryCount:      c.FactoryCount,
		FactoryLevels:     c.FactoryLevels,
		FactoryIncome:     c.FactoryIncome,
		FactoryEmployment: c.FactoryEmployment,
		RGOIncome:         c.RGOIncome,
		RGOEmployment:     c.RGOEmployment,

		Population: PopulationJSON{
			Total:            c.Pops.TotalPopulation,
			ByType:           c.Pops.PopulationByType,
			TotalMoney:       c.Pops.TotalMoney,
			TotalBankSavings: c.Pops.TotalBankSavings,
			MoneyByType:      c.Pops.MoneyByType,
			AvgLifeNeeds:     c.Pops.AvgLifeNeeds,
			AvgEverydayNeeds: c.Pops.AvgEverydayNeeds,
			AvgLuxuryNeeds:   c.Pops.AvgLuxuryNeeds,
			AvgLiteracy:      c.Pops.AvgLiteracy,
			AvgConsciousness: c.Pops.AvgConsciousness,
			AvgMilitancy:     c.Pops.AvgMilitancy,
		},
	}
}

// nodeJSON converts a parsed tree into plain JSON-encodable values.
// Coalesced entries surface as arrays, matching how repeated keys read.
func nodeJSON(n *save.Node) any {
	switch n.Kind() {
	case save.KindMap:
		m := make(map[string]any, n.Len())
		for key, v := range n.Fields() {
			m[key] = nodeJSON(v)
		}
		return m
	case save.KindList:
		items := make([]any, 0, n.Len())
		for item := range n.Items() {
			items = append(items, nodeJSON(item))
		}
		return items
	case save.KindNumber:
		f, _ := n.AsFloat()
		return f
	case save.KindBool:
		b, _ := n.AsBool()
		return b
	default:
		s, _ := n.AsString()
		return s
	}
}
