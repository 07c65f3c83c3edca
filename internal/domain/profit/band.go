package profit

import "github.com/shopspring/decimal"

// MarginBand clasificación de un producto por margen bruto.
type MarginBand string

const (
	BandHigh  MarginBand = "high"   // > 30%
	BandGood  MarginBand = "good"   // 15% – 30%, ambos inclusive
	BandLow   MarginBand = "low"    // 5% – <15%
	BandPoor  MarginBand = "poor"   // < 5%
	BandNoHPP MarginBand = "no_hpp" // sin HPP: fuera de las bandas numéricas
)

var (
	bandHighFloor = decimal.NewFromInt(30)
	bandGoodFloor = decimal.NewFromInt(15)
	bandLowFloor  = decimal.NewFromInt(5)
)

// MarginDistribution conteo de productos por banda.
type MarginDistribution struct {
	High  int
	Good  int
	Low   int
	Poor  int
	NoHPP int
}

// ClassifyMargin ubica un producto en su banda con el margen a precisión completa.
// Con HPP conocido pero sin ingreso (margen nulo) el producto cae en BandPoor.
func ClassifyMargin(p ProductRollup) MarginBand {
	if !p.HasHPP() {
		return BandNoHPP
	}
	if !p.GrossMargin.Valid {
		return BandPoor
	}
	m := p.GrossMargin.Decimal
	switch {
	case m.GreaterThan(bandHighFloor):
		return BandHigh
	case m.GreaterThanOrEqual(bandGoodFloor):
		return BandGood
	case m.GreaterThanOrEqual(bandLowFloor):
		return BandLow
	default:
		return BandPoor
	}
}

// BucketByMarginBand cuenta los productos de cada banda.
func BucketByMarginBand(products []ProductRollup) MarginDistribution {
	var d MarginDistribution
	for _, p := range products {
		switch ClassifyMargin(p) {
		case BandHigh:
			d.High++
		case BandGood:
			d.Good++
		case BandLow:
			d.Low++
		case BandPoor:
			d.Poor++
		case BandNoHPP:
			d.NoHPP++
		}
	}
	return d
}
