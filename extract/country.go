package extract

import "github.com/pdxtools/pdxsave/save"

// Factory holds the economics of one state building.
type Factory struct {
	Name             string
	Level            int64
	Money            float64
	LastIncome       float64
	LastSpending     float64
	WagesPaid        float64
	UnprofitableDays int64
	Subsidised       bool
	Produces         float64

	EmployedCraftsmen int64
	EmployedClerks    int64
}

// FactoryData reads a state_buildings block. Employment is nested as
// employment={ employees={ { province_pop_id={ type=N } count=N } ... } }
// and is categorized by the referenced population type ID.
func FactoryData(block *save.Node) Factory {
	f := Factory{
		Name:             block.GetString("building", ""),
		Level:            block.GetInt("level", 0),
		Money:            block.GetFloat("money", 0),
		LastIncome:       block.GetFloat("last_income", 0),
		LastSpending:     block.GetFloat("last_spending", 0),
		WagesPaid:        block.GetFloat("pops_paychecks", 0),
		UnprofitableDays: block.GetInt("unprofitable_days", 0),
		Subsidised:       block.GetBool("subsidised", false),
		Produces:         block.GetFloat("produces", 0),
	}
	forEachEmployee(block, func(popType int64, count int64) {
		switch popType {
		case PopClerks, PopClerksAlt:
			f.EmployedClerks += count
		case PopCraftsmen:
			f.EmployedCraftsmen += count
		}
	})
	return f
}

func forEachEmployee(block *save.Node, fn func(popType, count int64)) {
	employment, ok := block.Get("employment")
	if !ok || !employment.IsMap() {
		return
	}
	employees, ok := employment.Get("employees")
	if !ok {
		return
	}
	for emp := range employees.Items() {
		if !emp.IsMap() {
			continue
		}
		popType := int64(-1)
		if id, ok := emp.Get("province_pop_id"); ok && id.IsMap() {
			popType = id.GetInt("type", -1)
		}
		fn(popType, emp.GetInt("count", 0))
	}
}

// RGO holds a province's resource gathering operation.
type RGO struct {
	GoodsType     string
	LastIncome    float64
	TotalEmployed int64
}

// RGOData reads a province rgo block.
func RGOData(block *save.Node) RGO {
	r := RGO{
		GoodsType:  block.GetString("goods_type", ""),
		LastIncome: block.GetFloat("last_income", 0),
	}
	forEachEmployee(block, func(_, count int64) {
		r.TotalEmployed += count
	})
	return r
}

// State holds one state block with its factories. IsColonial is zero
// for full states and positive for colonial territory.
type State struct {
	Provinces  []int64
	IsColonial int64
	Savings    float64
	Factories  []Factory

	FactoryEmployment int64
	FactoryIncome     float64
}

// StateData reads a state block. state_buildings repeats once per
// factory; blocks without a building name are skipped.
func StateData(block *save.Node) State {
	st := State{
		IsColonial: block.GetInt("is_colonial", 0),
		Savings:    block.GetFloat("savings", 0),
	}
	if provs, ok := block.Get("provinces"); ok {
		for p := range provs.Items() {
			if id, err := p.AsInt(); err == nil {
				st.Provinces = append(st.Provinces, id)
			}
		}
	}
	for _, b := range block.Values("state_buildings") {
		if !b.IsMap() {
			continue
		}
		if _, ok := b.Get("building"); !ok {
			continue
		}
		f := FactoryData(b)
		st.Factories = append(st.Factories, f)
		st.FactoryEmployment += f.EmployedCraftsmen + f.EmployedClerks
		st.FactoryIncome += f.LastIncome
	}
	return st
}

// Country holds the full economic picture of one nation: government
// finances, taxation, spending sliders, industry and population.
type Country struct {
	Tag       string
	Treasury  float64
	Prestige  float64
	Infamy    float64
	TaxBase   float64
	Civilized bool

	BankReserves  float64
	BankMoneyLent float64

	RichTaxRate     float64
	MiddleTaxRate   float64
	PoorTaxRate     float64
	RichTaxIncome   float64
	MiddleTaxIncome float64
	PoorTaxIncome   float64

	EducationSpending float64
	MilitarySpending  float64
	SocialSpending    float64

	States []State

	FactoryCount      int64
	FactoryLevels     int64
	FactoryIncome     float64
	FactoryEmployment int64
	RGOIncome         float64
	RGOEmployment     int64

	Pops Pops
}

// TotalTaxIncome sums the three tax tiers.
func (c *Country) TotalTaxIncome() float64 {
	return c.RichTaxIncome + c.MiddleTaxIncome + c.PoorTaxIncome
}

// CountryData reads a country block and aggregates population and RGO
// data from the country's owned provinces. The treasury is stored under
// "money" and infamy under the historical name "badboy". Tax tiers keep
// the slider position in "current" and collected income in "total";
// spending sliders keep their position in "settings".
func CountryData(tag string, block *save.Node, provinces map[int64]*save.Node) Country {
	c := Country{
		Tag:       tag,
		Treasury:  block.GetFloat("money", 0),
		Prestige:  block.GetFloat("prestige", 0),
		Infamy:    block.GetFloat("badboy", 0),
		TaxBase:   block.GetFloat("tax_base", 0),
		Civilized: block.GetBool("civilized", true),
	}

	if bank, ok := block.Get("bank"); ok && bank.IsMap() {
		c.BankReserves = bank.GetFloat("money", 0)
		c.BankMoneyLent = bank.GetFloat("money_lent", 0)
	}

	c.RichTaxRate, c.RichTaxIncome = taxTier(block, "rich_tax")
	c.MiddleTaxRate, c.MiddleTaxIncome = taxTier(block, "middle_tax")
	c.PoorTaxRate, c.PoorTaxIncome = taxTier(block, "poor_tax")

	c.EducationSpending = sliderSetting(block, "education_spending")
	c.MilitarySpending = sliderSetting(block, "military_spending")
	c.SocialSpending = sliderSetting(block, "social_spending")

	for _, sb := range block.Values("state") {
		if !sb.IsMap() {
			continue
		}
		st := StateData(sb)
		c.States = append(c.States, st)
		c.FactoryEmployment += st.FactoryEmployment
		c.FactoryIncome += st.FactoryIncome
		for _, f := range st.Factories {
			c.FactoryCount++
			c.FactoryLevels += f.Level
		}
	}

	acc := newPopAccumulator()
	for _, prov := range provinces {
		if prov.GetString("owner", "") != tag {
			continue
		}
		if rgoBlock, ok := prov.Get("rgo"); ok && rgoBlock.IsMap() {
			rgo := RGOData(rgoBlock)
			c.RGOIncome += rgo.LastIncome
			c.RGOEmployment += rgo.TotalEmployed
		}
		for _, typeName := range PopTypes() {
			for _, popBlock := range prov.Values(typeName) {
				if !popBlock.IsMap() {
					continue
				}
				acc.add(PopFromBlock(typeName, popBlock))
			}
		}
	}
	c.Pops = acc.finish()

	// Factory work approximates craftsman employment; RGO work covers
	// the labourer side.
	c.Pops.EmployedCraftsmen = c.FactoryEmployment
	c.Pops.EmployedLabourers = c.RGOEmployment
	return c
}

func taxTier(block *save.Node, key string) (rate, income float64) {
	tier, ok := block.Get(key)
	if !ok || !tier.IsMap() {
		return 0, 0
	}
	return tier.GetFloat("current", 0), tier.GetFloat("total", 0)
}

func sliderSetting(block *save.Node, key string) float64 {
	slider, ok := block.Get(key)
	if !ok || !slider.IsMap() {
		return 0
	}
	return slider.GetFloat("settings", 0)
}
