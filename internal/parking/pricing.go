package parking

// Pricing is the pure rate table consulted at release and pass purchase.
// Amounts are currency-agnostic integer units. The table is fixed after
// startup.
type Pricing struct {
	hourly    map[SizeClass]int64
	minCharge int64
	passPrice map[SizeClass]int64
}

func NewPricing(hourly map[SizeClass]int64, minCharge int64, passPrice map[SizeClass]int64) *Pricing {
	h := make(map[SizeClass]int64, len(hourly))
	for k, v := range hourly {
		h[k] = v
	}
	p := make(map[SizeClass]int64, len(passPrice))
	for k, v := range passPrice {
		p[k] = v
	}
	return &Pricing{hourly: h, minCharge: minCharge, passPrice: p}
}

func DefaultPricing() *Pricing {
	return NewPricing(
		map[SizeClass]int64{
			SizeSmall:  20,
			SizeMedium: 40,
			SizeLarge:  60,
		},
		20,
		map[SizeClass]int64{
			SizeSmall:  1050,
			SizeMedium: 2100,
			SizeLarge:  3150,
		},
	)
}

func (p *Pricing) HourlyRate(size SizeClass) int64 {
	return p.hourly[size]
}

func (p *Pricing) MinimumCharge() int64 {
	return p.minCharge
}

func (p *Pricing) MonthlyPassPrice(size SizeClass) int64 {
	return p.passPrice[size]
}
