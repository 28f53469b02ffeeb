package keymap

// Column groups used by the rules browser.
const (
	GroupBasic      = "Basic Info"
	GroupHistorical = "Historical Stats"
	GroupExclusion  = "Exclusion Rates"
	GroupDrug       = "Drug Classes"
)

type description struct {
	label string
	group string
}

var descriptions = map[string]description{
	"ct":  {"Cancer Type", GroupBasic},
	"tid": {"Trial ID", GroupBasic},
	"r":   {"Rule Text", GroupBasic},
	"rs":  {"Rule Type", GroupBasic},
	"cid": {"Cluster", GroupBasic},
	"ccr": {"Cluster Center", GroupBasic},

	"of":  {"Frequency", GroupHistorical},
	"nt":  {"# Trials", GroupHistorical},
	"em":  {"Enroll (mean)", GroupHistorical},
	"es":  {"Enroll (std)", GroupHistorical},
	"sm":  {"Sites (mean)", GroupHistorical},
	"ss":  {"Sites (std)", GroupHistorical},
	"rm":  {"Duration (mean)", GroupHistorical},
	"rms": {"Duration (std)", GroupHistorical},
	"epm": {"EPSM (mean)", GroupHistorical},
	"eps": {"EPSM (std)", GroupHistorical},
	"sd":  {"Start Date", GroupHistorical},
	"sds": {"Start (std)", GroupHistorical},

	"O":  {"Overall Exclusion%", GroupExclusion},
	"W":  {"White %", GroupExclusion},
	"A":  {"Asian %", GroupExclusion},
	"AA": {"African-American %", GroupExclusion},
	"F":  {"Female %", GroupExclusion},
	"M":  {"Male %", GroupExclusion},
	"a1": {"18-50 %", GroupExclusion},
	"a2": {"50-65 %", GroupExclusion},
	"a3": {">65 %", GroupExclusion},

	"dCh": {"Chemotherapy", GroupDrug},
	"dTa": {"Targeted Therapy", GroupDrug},
	"dIm": {"Immunotherapy / Biological Therapy", GroupDrug},
	"dHo": {"Hormonal Therapy", GroupDrug},
	"dPh": {"Photodynamic Therapy", GroupDrug},
	"dSu": {"Supportive Care", GroupDrug},
	"dPl": {"Placebo", GroupDrug},
}

// Describe returns the display label and column group for a built-in alias.
// Unknown aliases return empty strings.
func Describe(alias string) (label, group string) {
	d := descriptions[alias]
	return d.label, d.group
}
