package extract

import "github.com/pdxtools/pdxsave/save"

// WorldMarket holds the global commodity exchange state: price, supply
// and sold quantity per commodity name.
type WorldMarket struct {
	Prices     map[string]float64
	Supply     map[string]float64
	ActualSold map[string]float64
}

// WorldMarketData reads the worldmarket section of a parsed save.
// Non-numeric entries inside the pools are skipped.
func WorldMarketData(root *save.Node) WorldMarket {
	m := WorldMarket{
		Prices:     make(map[string]float64),
		Supply:     make(map[string]float64),
		ActualSold: make(map[string]float64),
	}
	wm, ok := root.Get("worldmarket")
	if !ok || !wm.IsMap() {
		return m
	}
	readPool(wm, "price_pool", m.Prices)
	readPool(wm, "supply_pool", m.Supply)
	readPool(wm, "actual_sold", m.ActualSold)
	return m
}

func readPool(wm *save.Node, key string, dst map[string]float64) {
	pool, ok := wm.Get(key)
	if !ok || !pool.IsMap() {
		return
	}
	for name, v := range pool.Fields() {
		if f, err := v.AsFloat(); err == nil {
			dst[name] = f
		}
	}
}
