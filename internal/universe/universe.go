// Package universe is the static registry of NSE sector indices, their ETF
// proxies, and the top companies by index weight inside each sector. The
// scan pipeline only sees entity names; this registry is what the CLI and
// HTTP surface use to resolve names to tradable symbols.
package universe

import "sort"

// Sector identifies one NSE sector index plus its ETF proxy where one
// exists. The benchmark (Nifty 50) is part of the registry but is excluded
// from rankings by callers.
type Sector struct {
	Name        string `json:"name"`
	IndexSymbol string `json:"index_symbol"`
	ETFSymbol   string `json:"etf_symbol,omitempty"`
}

// Company is one constituent of a sector with its approximate index weight.
type Company struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// BenchmarkName is the ranking benchmark; never ranked itself.
const BenchmarkName = "Nifty 50"

var sectors = map[string]Sector{
	"Nifty 50":     {Name: "Nifty 50", IndexSymbol: "^NSEI"},
	"PSU Bank":     {Name: "PSU Bank", IndexSymbol: "^NIFTYPSUBANK", ETFSymbol: "PSUBNKBEES.NS"},
	"Pvt Bank":     {Name: "Pvt Bank", IndexSymbol: "^NIFTYBANK", ETFSymbol: "PVTBANIETF.NS"},
	"IT":           {Name: "IT", IndexSymbol: "^CNXIT", ETFSymbol: "ITBEES.NS"},
	"Pharma":       {Name: "Pharma", IndexSymbol: "^CNXPHARMA", ETFSymbol: "PHARMABEES.NS"},
	"FMCG":         {Name: "FMCG", IndexSymbol: "^CNXFMCG", ETFSymbol: "ICICIFMCG.NS"},
	"Auto":         {Name: "Auto", IndexSymbol: "^CNXAUTO", ETFSymbol: "AUTOBEES.NS"},
	"Metal":        {Name: "Metal", IndexSymbol: "^CNXMETAL", ETFSymbol: "METALIETF.NS"},
	"Realty":       {Name: "Realty", IndexSymbol: "^CNXREALTY", ETFSymbol: "MOREALTY.NS"},
	"Media":        {Name: "Media", IndexSymbol: "^CNXMEDIA"},
	"Energy":       {Name: "Energy", IndexSymbol: "^CNXENERGY", ETFSymbol: "MOENERGY.NS"},
	"Infra":        {Name: "Infra", IndexSymbol: "^CNXINFRA", ETFSymbol: "INFRAIETF.NS"},
	"Commodities":  {Name: "Commodities", IndexSymbol: "^CNXCOMMODITIES"},
	"Defence":      {Name: "Defence", IndexSymbol: "^CNXDEFENCE", ETFSymbol: "DEFENCEBEES.NS"},
	"Oil & Gas":    {Name: "Oil & Gas", IndexSymbol: "^CNXOILGAS", ETFSymbol: "OILETF.NS"},
	"Fin Services": {Name: "Fin Services", IndexSymbol: "^NIFTYFINSERV", ETFSymbol: "FINIETF.NS"},
}

var companies = map[string][]Company{
	"Auto": {
		{Symbol: "MARUTI.NS", Name: "Maruti Suzuki", Weight: 28.5},
		{Symbol: "HEROMOTOCO.NS", Name: "Hero MotoCorp", Weight: 12.3},
		{Symbol: "BAJAJ-AUTO.NS", Name: "Bajaj Auto", Weight: 8.7},
		{Symbol: "TATAMOTORS.NS", Name: "Tata Motors", Weight: 8.2},
		{Symbol: "SUNDRMFAST.NS", Name: "Sundram Fasteners", Weight: 6.1},
		{Symbol: "BOSCHLTD.NS", Name: "Bosch India", Weight: 5.8},
		{Symbol: "ASHOKLEY.NS", Name: "Ashok Leyland", Weight: 4.5},
	},
	"Commodities": {
		{Symbol: "HINDALCO.NS", Name: "Hindalco Industries", Weight: 25.3},
		{Symbol: "NMDC.NS", Name: "NMDC Limited", Weight: 18.7},
		{Symbol: "COALINDIA.NS", Name: "Coal India", Weight: 15.2},
		{Symbol: "JINDALSTEL.NS", Name: "Jindal Steel", Weight: 7.8},
		{Symbol: "VEDL.NS", Name: "Vedanta", Weight: 6.4},
		{Symbol: "MOIL.NS", Name: "Manganese Ore India", Weight: 5.6},
	},
	"Defence": {
		{Symbol: "BDL.NS", Name: "Bharat Dynamics", Weight: 28.5},
		{Symbol: "HAL.NS", Name: "Hindustan Aeronautics", Weight: 25.3},
		{Symbol: "MAZAGON.NS", Name: "Mazagon Dock", Weight: 18.7},
		{Symbol: "CONCOR.NS", Name: "Container Corporation", Weight: 12.8},
		{Symbol: "NTPC.NS", Name: "NTPC", Weight: 2.6},
	},
	"Energy": {
		{Symbol: "RELIANCE.NS", Name: "Reliance Industries", Weight: 35.2},
		{Symbol: "NTPC.NS", Name: "NTPC Limited", Weight: 18.9},
		{Symbol: "POWERGRID.NS", Name: "Power Grid", Weight: 12.3},
		{Symbol: "BEL.NS", Name: "Bharat Electronics", Weight: 5.2},
		{Symbol: "SBIN.NS", Name: "State Bank of India", Weight: 3.8},
	},
	"FMCG": {
		{Symbol: "ITC.NS", Name: "ITC Limited", Weight: 22.3},
		{Symbol: "NESTLEIND.NS", Name: "Nestle India", Weight: 18.9},
		{Symbol: "HUL.NS", Name: "Hindustan Unilever", Weight: 17.5},
		{Symbol: "MARICO.NS", Name: "Marico", Weight: 12.1},
		{Symbol: "BRITANNIA.NS", Name: "Britannia Industries", Weight: 10.8},
		{Symbol: "COLPAL.NS", Name: "Colgate-Palmolive", Weight: 4.6},
	},
	"IT": {
		{Symbol: "TCS.NS", Name: "Tata Consultancy Services", Weight: 20.5},
		{Symbol: "INFY.NS", Name: "Infosys", Weight: 18.2},
		{Symbol: "WIPRO.NS", Name: "Wipro", Weight: 12.1},
		{Symbol: "TECHM.NS", Name: "Tech Mahindra", Weight: 9.8},
		{Symbol: "HCL.NS", Name: "HCL Technologies", Weight: 7.3},
		{Symbol: "MPHASIS.NS", Name: "Mphasis", Weight: 5.2},
		{Symbol: "LTTS.NS", Name: "LT Technologies", Weight: 4.1},
	},
	"Infra": {
		{Symbol: "LT.NS", Name: "Larsen & Toubro", Weight: 24.3},
		{Symbol: "IRFC.NS", Name: "Indian Railway Finance", Weight: 15.8},
		{Symbol: "NHPC.NS", Name: "NHPC Limited", Weight: 12.5},
		{Symbol: "POWERGRID.NS", Name: "Power Grid", Weight: 11.2},
		{Symbol: "BPCL.NS", Name: "Bharat Petroleum", Weight: 9.7},
		{Symbol: "REC.NS", Name: "REC Limited", Weight: 6.4},
	},
	"Media": {
		{Symbol: "ZEEL.NS", Name: "Zee Entertainment", Weight: 12.8},
		{Symbol: "TVTODAY.NS", Name: "TV Today", Weight: 10.2},
		{Symbol: "NETWORK18.NS", Name: "Network 18", Weight: 8.9},
	},
	"Metal": {
		{Symbol: "TATASTEEL.NS", Name: "Tata Steel", Weight: 28.9},
		{Symbol: "HINDALCO.NS", Name: "Hindalco Industries", Weight: 24.5},
		{Symbol: "JSWSTEEL.NS", Name: "JSW Steel", Weight: 18.7},
		{Symbol: "NMDC.NS", Name: "NMDC Limited", Weight: 12.3},
		{Symbol: "VEDL.NS", Name: "Vedanta", Weight: 8.6},
		{Symbol: "JINDALSTEL.NS", Name: "Jindal Steel", Weight: 3.2},
	},
	"Fin Services": {
		{Symbol: "BAJFINANCE.NS", Name: "Bajaj Finance Ltd.", Weight: 15.40},
		{Symbol: "SHRIRAMFIN.NS", Name: "Shriram Finance Ltd.", Weight: 8.20},
		{Symbol: "BAJAJFINSV.NS", Name: "Bajaj Finserv Ltd.", Weight: 6.85},
		{Symbol: "BSE.NS", Name: "BSE Ltd.", Weight: 6.32},
		{Symbol: "JIOFIN.NS", Name: "Jio Financial Services Ltd.", Weight: 5.68},
		{Symbol: "SBILIFE.NS", Name: "SBI Life Insurance Company", Weight: 5.37},
		{Symbol: "HDFCLIFE.NS", Name: "HDFC Life Insurance Company", Weight: 4.74},
		{Symbol: "CHOLAFIN.NS", Name: "Cholamandalam Inv. & Fin.", Weight: 4.23},
	},
	"Pharma": {
		{Symbol: "SUNPHARMA.NS", Name: "Sun Pharmaceutical", Weight: 18.5},
		{Symbol: "LUPIN.NS", Name: "Lupin Limited", Weight: 14.2},
		{Symbol: "CIPLA.NS", Name: "Cipla", Weight: 12.8},
		{Symbol: "DRREDDY.NS", Name: "Dr. Reddy's Labs", Weight: 11.5},
		{Symbol: "AUROPHARMA.NS", Name: "Aurobindo Pharma", Weight: 9.7},
		{Symbol: "DIVISLAB.NS", Name: "Divi's Laboratories", Weight: 8.3},
	},
	"PSU Bank": {
		{Symbol: "SBIN.NS", Name: "State Bank of India", Weight: 38.2},
		{Symbol: "CENTRALBANK.NS", Name: "Central Bank", Weight: 18.5},
		{Symbol: "BANKBARODA.NS", Name: "Bank of Baroda", Weight: 15.3},
		{Symbol: "INDIANBANK.NS", Name: "Indian Bank", Weight: 12.1},
		{Symbol: "CANBANK.NS", Name: "Canara Bank", Weight: 9.8},
		{Symbol: "UNIONBANK.NS", Name: "Union Bank", Weight: 4.2},
	},
	"Pvt Bank": {
		{Symbol: "HDFCBANK.NS", Name: "HDFC Bank", Weight: 28.5},
		{Symbol: "ICICIBANK.NS", Name: "ICICI Bank", Weight: 24.3},
		{Symbol: "AXISBANK.NS", Name: "Axis Bank", Weight: 18.7},
		{Symbol: "KOTAKBANK.NS", Name: "Kotak Mahindra Bank", Weight: 15.2},
		{Symbol: "INDUSIND.NS", Name: "IndusInd Bank", Weight: 4.2},
	},
	"Realty": {
		{Symbol: "DLF.NS", Name: "DLF Limited", Weight: 22.8},
		{Symbol: "SUNTECK.NS", Name: "Sunteck Realty", Weight: 18.5},
		{Symbol: "OBEROYREALTY.NS", Name: "Oberoi Realty", Weight: 14.2},
		{Symbol: "PRESTIGE.NS", Name: "Prestige Estates", Weight: 11.9},
		{Symbol: "LODHA.NS", Name: "Lodha Group", Weight: 10.3},
		{Symbol: "GODREJPROP.NS", Name: "Godrej Properties", Weight: 6.8},
	},
	"Oil & Gas": {
		{Symbol: "RELIANCE.NS", Name: "Reliance Industries", Weight: 45.2},
		{Symbol: "BPCL.NS", Name: "Bharat Petroleum", Weight: 22.3},
		{Symbol: "IOCL.NS", Name: "Indian Oil Corporation", Weight: 18.5},
		{Symbol: "ONGC.NS", Name: "Oil and Natural Gas", Weight: 10.2},
		{Symbol: "GAIL.NS", Name: "Gas Authority of India", Weight: 3.8},
	},
}

// Sectors returns every registered sector sorted by name, benchmark
// included.
func Sectors() []Sector {
	out := make([]Sector, 0, len(sectors))
	for _, s := range sectors {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RankableSectors returns every sector except the benchmark.
func RankableSectors() []Sector {
	out := make([]Sector, 0, len(sectors)-1)
	for _, s := range Sectors() {
		if s.Name != BenchmarkName {
			out = append(out, s)
		}
	}
	return out
}

// Find looks a sector up by name.
func Find(name string) (Sector, bool) {
	s, ok := sectors[name]
	return s, ok
}

// Benchmark returns the Nifty 50 benchmark entry.
func Benchmark() Sector {
	return sectors[BenchmarkName]
}

// Companies returns the top constituents of a sector by index weight,
// heaviest first.
func Companies(sector string) ([]Company, bool) {
	list, ok := companies[sector]
	if !ok {
		return nil, false
	}
	out := make([]Company, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })
	return out, true
}

// CompanySymbols returns just the symbols for a sector's constituents.
func CompanySymbols(sector string) []string {
	list, ok := Companies(sector)
	if !ok {
		return nil
	}
	symbols := make([]string, len(list))
	for i, c := range list {
		symbols[i] = c.Symbol
	}
	return symbols
}
