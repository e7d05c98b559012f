// Package universe defines the fixed instrument universe: the six asset
// classes, the instruments in each, and the mapping from provider fetch
// symbols to the Refinitiv RIC codes the documents are published under.
// This is static configuration data, not logic.
package universe

// Class names one asset class. Its string form is also the file and
// repository path stem for the class's persisted document.
type Class string

const (
	EquityIndex Class = "Equity_Index"
	USStocks    Class = "US_Stocks"
	TWStocks    Class = "TW_Stocks"
	USRates     Class = "US_Rates"
	FX          Class = "FX"
	Commodity   Class = "Commodity"
)

// Instrument pairs a provider fetch symbol with its display name. For
// US_Rates the symbol is a FRED series id; for every other class it is a
// Yahoo Finance ticker.
type Instrument struct {
	Symbol string
	Name   string
}

// Classes returns every asset class in the fixed processing order.
func Classes() []Class {
	return []Class{EquityIndex, USStocks, TWStocks, USRates, FX, Commodity}
}

// classInstruments lists each class's instruments. Slice order is the fetch
// order within a class.
var classInstruments = map[Class][]Instrument{
	EquityIndex: {
		{"^GSPC", "S&P 500"},
		{"^IXIC", "Nasdaq"},
		{"^SOX", "SOX"},
		{"^DJI", "Dow Jones"},
		{"^TWII", "TWSE"},
		{"000001.SS", "SSE"},
		{"000300.SS", "CSI300"},
		{"^HSI", "HSI"},
		{"^KS11", "KOSPI"},
		{"^GDAXI", "DAX"},
		{"^N225", "Nikkei"},
		{"^FCHI", "CAC40"},
	},
	USStocks: {
		{"MSFT", "Microsoft"},
		{"GOOGL", "Google"},
		{"AMZN", "Amazon"},
		{"AAPL", "Apple"},
		{"NVDA", "NVIDIA"},
		{"META", "Meta"},
		{"TSLA", "Tesla"},
		{"AVGO", "Broadcom"},
		{"AMD", "AMD"},
		{"QCOM", "Qualcomm"},
		{"INTC", "Intel"},
		{"MU", "Micron"},
		{"ASML", "ASML"},
		{"NFLX", "Netflix"},
		{"MRVL", "Marvell"},
		{"TSM", "TSMC ADR"},
	},
	TWStocks: {
		{"2330.TW", "TSMC"},
		{"2317.TW", "Hon Hai"},
		{"2454.TW", "MediaTek"},
		{"2308.TW", "Delta"},
		{"5347.TWO", "Vanguard"},
		{"3443.TW", "Unichip"},
		{"3374.TWO", "Xintec"},
		{"6789.TW", "VisEra"},
	},
	USRates: {
		{"DGS3MO", "UST 3M"},
		{"DGS2", "UST 2Y"},
		{"DGS5", "UST 5Y"},
		{"DGS10", "UST 10Y"},
		{"DGS30", "UST 30Y"},
	},
	FX: {
		{"DX-Y.NYB", "DXY"},
		{"EURUSD=X", "EUR="},
		{"JPY=X", "JPY="},
		{"TWD=X", "TWD="},
		{"KRW=X", "KRW="},
		{"CNY=X", "CNY="},
	},
	Commodity: {
		{"CL=F", "WTI Oil"},
		{"GC=F", "Gold"},
	},
}

// tickerToRIC maps provider fetch symbols to their published RIC codes.
// Used only when keying persisted documents, never for merge logic.
var tickerToRIC = map[string]string{
	// Equity Index
	"^GSPC":     ".SPX",
	"^IXIC":     ".IXIC",
	"^SOX":      ".SOX",
	"^DJI":      ".DJI",
	"^TWII":     ".TWII",
	"000001.SS": ".SSEC",
	"000300.SS": ".CSI300",
	"^HSI":      ".HSI",
	"^KS11":     ".KS11",
	"^GDAXI":    ".GDAXI",
	"^N225":     ".N225",
	"^FCHI":     ".FCHI",

	// US Stocks
	"MSFT":  "MSFT.O",
	"GOOGL": "GOOGL.O",
	"AMZN":  "AMZN.O",
	"AAPL":  "AAPL.O",
	"NVDA":  "NVDA.O",
	"META":  "META.O",
	"TSLA":  "TSLA.O",
	"AVGO":  "AVGO.O",
	"AMD":   "AMD.O",
	"QCOM":  "QCOM.O",
	"INTC":  "INTC.O",
	"MU":    "MU.O",
	"ASML":  "ASML.O",
	"NFLX":  "NFLX.O",
	"MRVL":  "MRVL.O",
	"TSM":   "TSM.N",

	// TW Stocks keep their exchange tickers.
	"2330.TW":  "2330.TW",
	"2317.TW":  "2317.TW",
	"2454.TW":  "2454.TW",
	"2308.TW":  "2308.TW",
	"5347.TWO": "5347.TWO",
	"3443.TW":  "3443.TW",
	"3374.TWO": "3374.TWO",
	"6789.TW":  "6789.TW",

	// US Rates (FRED series ids)
	"DGS3MO": "US3MT=RR",
	"DGS2":   "US2YT=RR",
	"DGS5":   "US5YT=RR",
	"DGS10":  "US10YT=RR",
	"DGS30":  "US30YT=RR",

	// FX
	"DX-Y.NYB": ".DXY",
	"EURUSD=X": "EUR=",
	"JPY=X":    "JPY=",
	"TWD=X":    "TWD=",
	"KRW=X":    "KRW=",
	"CNY=X":    "CNY=",

	// Commodity
	"CL=F": "CLc1",
	"GC=F": "GCc1",
}

// Instruments returns the instruments of a class in fetch order. The
// returned slice is shared; callers must not modify it.
func Instruments(class Class) []Instrument {
	return classInstruments[class]
}

// RIC resolves a provider symbol to its published RIC code, falling back to
// the symbol itself when unmapped.
func RIC(symbol string) string {
	if ric, ok := tickerToRIC[symbol]; ok {
		return ric
	}
	return symbol
}

// DisplayName resolves a provider symbol to its display name across all
// classes, falling back to the symbol itself when unknown.
func DisplayName(symbol string) string {
	for _, instruments := range classInstruments {
		for _, inst := range instruments {
			if inst.Symbol == symbol {
				return inst.Name
			}
		}
	}
	return symbol
}
