package economy

import (
	"log/slog"
	"math"
	"sort"

	"github.com/talgya/tradewinds/internal/entropy"
)

// Market tuning.
const (
	StockDays          = 7    // Days of production pre-stocked and used as the demand window
	MinConsumption     = 0.1  // Floor on daily consumption when computing demand
	MinSupplyRatio     = 0.01 // Supply ratio used when inventory is empty
	PriceFloorFactor   = 0.5  // Price never falls below base × this
	PriceCeilingFactor = 2.0  // Price never rises above base × this
	JitterLow          = 0.95
	JitterHigh         = 1.05
	MaxSpecialties     = 3

	inflationSmoothing = 0.7
	inflationDays      = 30.0
	minPriceLevel      = 0.5
	maxPriceLevel      = 2.0
)

var (
	specialtyWeights = [NumQualities]float64{0.10, 0.30, 0.40, 0.20}
	standardWeights  = [NumQualities]float64{0.30, 0.50, 0.15, 0.05}
)

// PricePolicy controls how event price multipliers age.
type PricePolicy uint8

const (
	// PricePermanent multiplies the current price once. The next daily
	// recompute starts from the base price again.
	PricePermanent PricePolicy = iota
	// PriceExpiring registers the multiplier for a number of days; every
	// recompute in that window includes it, then it is dropped.
	PriceExpiring
)

func (p PricePolicy) String() string {
	switch p {
	case PricePermanent:
		return "permanent"
	case PriceExpiring:
		return "expiring"
	default:
		return "unknown"
	}
}

// priceModifier is an active event multiplier on one good.
type priceModifier struct {
	good       Good
	multiplier float64
	remaining  int
}

// CitySpec is the static description a City is built from.
type CitySpec struct {
	Name        string
	BasePrices  map[Good]float64
	Production  map[Good]float64
	Consumption map[Good]float64
	Specialties []Good // nil draws up to three at random
	HistoryCap  int
	Policy      PricePolicy
}

// City is one port and its market.
type City struct {
	Name          string
	BasePrices    map[Good]float64
	CurrentPrices map[Good]float64
	Production    map[Good]float64
	Consumption   map[Good]float64
	Stock         map[Good]*Stock
	Specialties   map[Good]bool

	PriceHistory     map[Good]*History
	InventoryHistory map[Good]*History

	InflationRate float64 // Smoothed local inflation
	PriceLevel    float64 // Cumulative inflation multiplier on base prices
	Policy        PricePolicy

	goods     []Good // Priced goods, sorted
	modifiers []priceModifier
}

// NewCity builds a city and pre-stocks StockDays of production.
func NewCity(spec CitySpec, rng *entropy.Source) *City {
	c := &City{
		Name:             spec.Name,
		BasePrices:       copyPrices(spec.BasePrices),
		CurrentPrices:    copyPrices(spec.BasePrices),
		Production:       copyPrices(spec.Production),
		Consumption:      copyPrices(spec.Consumption),
		Stock:            make(map[Good]*Stock),
		Specialties:      make(map[Good]bool),
		PriceHistory:     make(map[Good]*History, len(spec.BasePrices)),
		InventoryHistory: make(map[Good]*History, len(spec.BasePrices)),
		PriceLevel:       1.0,
		Policy:           spec.Policy,
	}

	for g := range c.BasePrices {
		c.goods = append(c.goods, g)
	}
	sort.Slice(c.goods, func(i, j int) bool { return c.goods[i] < c.goods[j] })

	for _, g := range c.goods {
		c.PriceHistory[g] = NewHistory(spec.HistoryCap)
		c.InventoryHistory[g] = NewHistory(spec.HistoryCap)
	}

	if spec.Specialties != nil {
		for i, g := range spec.Specialties {
			if i >= MaxSpecialties {
				break
			}
			c.Specialties[g] = true
		}
	} else {
		for _, i := range rng.Sample(len(c.goods), MaxSpecialties) {
			c.Specialties[c.goods[i]] = true
		}
	}

	for _, g := range sortedKeys(c.Production) {
		c.AddProduction(g, c.Production[g]*StockDays)
	}
	return c
}

// Goods returns the priced goods in sorted order.
func (c *City) Goods() []Good {
	out := make([]Good, len(c.goods))
	copy(out, c.goods)
	return out
}

// HasGood reports whether the city prices g.
func (c *City) HasGood(g Good) bool {
	_, ok := c.BasePrices[g]
	return ok
}

// Inventory returns the total quantity of g across all tiers.
func (c *City) Inventory(g Good) float64 {
	s, ok := c.Stock[g]
	if !ok {
		return 0
	}
	return s.Total()
}

func (c *City) stock(g Good) *Stock {
	s, ok := c.Stock[g]
	if !ok {
		s = &Stock{}
		c.Stock[g] = s
	}
	return s
}

// AddProduction adds amt units of g, split across tiers by the city's
// quality weights. Superb absorbs the rounding remainder so the total added
// is exactly amt.
func (c *City) AddProduction(g Good, amt float64) {
	if amt <= 0 {
		return
	}
	weights := standardWeights
	if c.Specialties[g] {
		weights = specialtyWeights
	}
	s := c.stock(g)
	remaining := amt
	for _, q := range Qualities[:NumQualities-1] {
		part := amt * weights[q]
		s.Add(q, part)
		remaining -= part
	}
	s.Add(QualitySuperb, remaining)
}

// Consume drains amt units of g, lowest quality first.
func (c *City) Consume(g Good, amt float64) {
	if amt <= 0 {
		return
	}
	c.stock(g).Drain(amt)
}

// Update runs the daily market cycle: production, consumption, price
// recompute, history append, modifier aging.
func (c *City) Update(rng *entropy.Source) {
	for _, g := range sortedKeys(c.Production) {
		c.AddProduction(g, c.Production[g])
	}
	for _, g := range sortedKeys(c.Consumption) {
		c.Consume(g, c.Consumption[g])
	}
	c.UpdatePrices(rng)
	c.RecordHistory()
	c.TickModifiers()
}

// UpdatePrices recomputes every current price from supply and demand.
func (c *City) UpdatePrices(rng *entropy.Source) {
	for _, g := range c.goods {
		jitter := rng.Uniform(JitterLow, JitterHigh)
		c.CurrentPrices[g] = c.resolvePrice(g, jitter)
	}
}

// resolvePrice maps the supply ratio through a logistic curve centred on a
// ratio of 1, where the factor is 0.5. The result is bounded to
// [base×0.5, base×2].
func (c *City) resolvePrice(g Good, jitter float64) float64 {
	base := c.BasePrices[g]
	ratio := SupplyRatio(c.Inventory(g), c.Consumption[g])
	adj := PriceAdjustment(ratio)

	price := base * c.PriceLevel * jitter * adj * c.modifierProduct(g)
	return c.clampPrice(g, price)
}

// SupplyRatio returns inventory relative to StockDays of consumption.
func SupplyRatio(inventory, consumption float64) float64 {
	effective := consumption
	if effective < MinConsumption {
		effective = MinConsumption
	}
	if inventory <= 0 {
		return MinSupplyRatio
	}
	return inventory / (effective * StockDays)
}

// PriceAdjustment is the logistic price factor for a supply ratio.
func PriceAdjustment(supplyRatio float64) float64 {
	x := (supplyRatio - 1) * 2
	x = math.Max(-10, math.Min(10, x))
	return 1.0 / (1 + math.Exp(-x))
}

func (c *City) clampPrice(g Good, price float64) float64 {
	base := c.BasePrices[g]
	floor := base * PriceFloorFactor
	ceiling := base * PriceCeilingFactor
	if math.IsNaN(price) || price < floor {
		return floor
	}
	if price > ceiling {
		return ceiling
	}
	return price
}

func (c *City) modifierProduct(g Good) float64 {
	product := 1.0
	for _, m := range c.modifiers {
		if m.good == g {
			product *= m.multiplier
		}
	}
	return product
}

// RecordHistory appends today's price and inventory for every good.
func (c *City) RecordHistory() {
	for _, g := range c.goods {
		c.PriceHistory[g].Push(c.CurrentPrices[g])
		c.InventoryHistory[g].Push(c.Inventory(g))
	}
}

// ApplyPriceModifier applies an event multiplier to g. The current price is
// scaled immediately; under PriceExpiring the multiplier also enters every
// recompute for the next days days.
func (c *City) ApplyPriceModifier(g Good, multiplier float64, days int) bool {
	if !c.HasGood(g) || multiplier <= 0 {
		return false
	}
	c.CurrentPrices[g] = c.clampPrice(g, c.CurrentPrices[g]*multiplier)
	if c.Policy == PriceExpiring && days > 0 {
		c.modifiers = append(c.modifiers, priceModifier{good: g, multiplier: multiplier, remaining: days})
	}
	return true
}

// TickModifiers ages active price modifiers by one day and drops expired ones.
func (c *City) TickModifiers() {
	kept := c.modifiers[:0]
	for _, m := range c.modifiers {
		m.remaining--
		if m.remaining > 0 {
			kept = append(kept, m)
		}
	}
	c.modifiers = kept
}

// ActiveModifiers returns the number of unexpired price modifiers.
func (c *City) ActiveModifiers() int {
	return len(c.modifiers)
}

// ApplyInflation blends the global rate into the city's smoothed rate and
// advances the price level by one day's share of it.
func (c *City) ApplyInflation(global float64) {
	c.InflationRate = inflationSmoothing*c.InflationRate + (1-inflationSmoothing)*global
	c.PriceLevel *= 1 + c.InflationRate/inflationDays
	c.PriceLevel = math.Max(minPriceLevel, math.Min(maxPriceLevel, c.PriceLevel))
}

// QualityPrice returns the price of g at tier q, or 0 if unavailable.
func (c *City) QualityPrice(g Good, q Quality) float64 {
	price, ok := c.CurrentPrices[g]
	if !ok || !q.Valid() {
		return 0
	}
	return price * q.Multiplier()
}

// BestQualityPrice returns the highest tier in stock and its price.
// (QualityCommon, 0) signals the good is unavailable.
func (c *City) BestQualityPrice(g Good) (Quality, float64) {
	return c.firstInStock(g, QualitiesDescending)
}

// CheapestQualityPrice returns the lowest tier in stock and its price.
// (QualityCommon, 0) signals the good is unavailable.
func (c *City) CheapestQualityPrice(g Good) (Quality, float64) {
	return c.firstInStock(g, Qualities)
}

func (c *City) firstInStock(g Good, order [NumQualities]Quality) (Quality, float64) {
	price, ok := c.CurrentPrices[g]
	s, stocked := c.Stock[g]
	if !ok || !stocked {
		return QualityCommon, 0
	}
	for _, q := range order {
		if s[q] > 0 {
			return q, price * q.Multiplier()
		}
	}
	return QualityCommon, 0
}

// AvailableQualities returns the tiers of g with positive stock.
func (c *City) AvailableQualities(g Good) map[Quality]float64 {
	out := make(map[Quality]float64)
	s, ok := c.Stock[g]
	if !ok {
		return out
	}
	for _, q := range Qualities {
		if s[q] > 0 {
			out[q] = s[q]
		}
	}
	return out
}

// Buy sells up to amt units of g at tier q to a ship. Requests beyond the
// stock are clamped. Returns the amount delivered and its cost.
func (c *City) Buy(g Good, q Quality, amt float64) (float64, float64) {
	price := c.QualityPrice(g, q)
	if price <= 0 {
		slog.Debug("buy rejected", "city", c.Name, "good", g, "quality", q)
		return 0, 0
	}
	s, ok := c.Stock[g]
	if !ok {
		return 0, 0
	}
	taken := s.Take(q, amt)
	return taken, taken * price
}

// Sell absorbs amt units of g at tier q from a ship and returns the revenue
// at the plain current price.
func (c *City) Sell(g Good, q Quality, amt float64) float64 {
	price, ok := c.CurrentPrices[g]
	if !ok || amt <= 0 || !q.Valid() {
		slog.Debug("sell rejected", "city", c.Name, "good", g, "quality", q)
		return 0
	}
	c.stock(g).Add(q, amt)
	return amt * price
}

func copyPrices(m map[Good]float64) map[Good]float64 {
	out := make(map[Good]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[Good]float64) []Good {
	keys := make([]Good, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
