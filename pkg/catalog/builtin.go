package catalog

import "strings"

// DefaultCropName is the crop returned when the catalog cannot be consulted.
const DefaultCropName = "Maize"

var builtinCrops = []CropProfile{
	{
		Name: "Rice", IdealPh: Range{5.5, 6.5}, IdealTemperature: Range{20, 35}, IdealRainfall: Range{100, 200},
		NutrientNeeds: NutrientNeeds{Nitrogen: High, Phosphorus: Medium, Potassium: Medium},
		CostPerAcre:   25000, YieldPerAcre: 22, UnitPrice: 2183,
		Regions: []string{"Punjab", "West Bengal", "Andhra Pradesh", "Tamil Nadu"},
		Tips:    []string{"Keep 5 cm of standing water during tillering.", "Transplant 21-25 day old seedlings."},
	},
	{
		Name: "Wheat", IdealPh: Range{6.0, 7.5}, IdealTemperature: Range{12, 25}, IdealRainfall: Range{50, 100},
		NutrientNeeds: NutrientNeeds{Nitrogen: High, Phosphorus: Medium, Potassium: Medium},
		CostPerAcre:   22000, YieldPerAcre: 18, UnitPrice: 2275,
		Regions: []string{"Punjab", "Haryana", "Uttar Pradesh", "Madhya Pradesh"},
		Tips:    []string{"Irrigate at crown root initiation, about 21 days after sowing."},
	},
	{
		Name: "Maize", IdealPh: Range{5.8, 7.0}, IdealTemperature: Range{18, 32}, IdealRainfall: Range{60, 110},
		NutrientNeeds: NutrientNeeds{Nitrogen: Medium, Phosphorus: Medium, Potassium: Medium},
		CostPerAcre:   18000, YieldPerAcre: 25, UnitPrice: 2090,
		Regions: []string{"Karnataka", "Bihar", "Madhya Pradesh"},
		Tips:    []string{"Split nitrogen into three doses: sowing, knee-high and tasseling."},
	},
	{
		Name: "Cotton", IdealPh: Range{5.8, 8.0}, IdealTemperature: Range{21, 30}, IdealRainfall: Range{50, 100},
		NutrientNeeds: NutrientNeeds{Nitrogen: Medium, Phosphorus: Medium, Potassium: High},
		CostPerAcre:   30000, YieldPerAcre: 10, UnitPrice: 6620,
		Regions: []string{"Gujarat", "Maharashtra", "Telangana"},
		Tips:    []string{"Scout weekly for pink bollworm once squares appear."},
	},
	{
		Name: "Sugarcane", IdealPh: Range{6.5, 7.5}, IdealTemperature: Range{20, 35}, IdealRainfall: Range{75, 150},
		NutrientNeeds: NutrientNeeds{Nitrogen: High, Phosphorus: Medium, Potassium: High},
		CostPerAcre:   60000, YieldPerAcre: 350, UnitPrice: 315,
		Regions: []string{"Uttar Pradesh", "Maharashtra", "Karnataka"},
		Tips:    []string{"Earth up at 90 and 120 days to prevent lodging."},
	},
	{
		Name: "Soybean", IdealPh: Range{6.0, 7.0}, IdealTemperature: Range{20, 30}, IdealRainfall: Range{60, 100},
		NutrientNeeds: NutrientNeeds{Nitrogen: Low, Phosphorus: Medium, Potassium: Medium},
		CostPerAcre:   15000, YieldPerAcre: 10, UnitPrice: 4600,
		Regions: []string{"Madhya Pradesh", "Maharashtra", "Rajasthan"},
		Tips:    []string{"Treat seed with Rhizobium culture before sowing."},
	},
	{
		Name: "Chickpea", IdealPh: Range{6.0, 8.0}, IdealTemperature: Range{15, 25}, IdealRainfall: Range{40, 70},
		NutrientNeeds: NutrientNeeds{Nitrogen: Low, Phosphorus: Medium, Potassium: Low},
		CostPerAcre:   14000, YieldPerAcre: 8, UnitPrice: 5440,
		Regions: []string{"Madhya Pradesh", "Rajasthan", "Maharashtra"},
		Tips:    []string{"Avoid irrigation at flowering; it causes flower drop."},
	},
	{
		Name: "Tomato", IdealPh: Range{6.0, 6.8}, IdealTemperature: Range{20, 27}, IdealRainfall: Range{60, 120},
		NutrientNeeds: NutrientNeeds{Nitrogen: Medium, Phosphorus: High, Potassium: High},
		CostPerAcre:   50000, YieldPerAcre: 100, UnitPrice: 1200,
		Regions: []string{"Andhra Pradesh", "Karnataka", "Odisha"},
		Tips:    []string{"Stake plants at 30 days and mulch to keep fruit off the soil."},
	},
	{
		Name: "Potato", IdealPh: Range{5.0, 6.5}, IdealTemperature: Range{15, 25}, IdealRainfall: Range{50, 80},
		NutrientNeeds: NutrientNeeds{Nitrogen: High, Phosphorus: High, Potassium: High},
		CostPerAcre:   45000, YieldPerAcre: 100, UnitPrice: 1000,
		Regions: []string{"Uttar Pradesh", "West Bengal", "Bihar"},
		Tips:    []string{"Use certified seed tubers of 30-40 g."},
	},
}

var builtinDiseases = []Disease{
	{
		Name:        "Leaf Blight",
		Description: "Fungal infection producing elongated brown lesions on leaves.",
		Symptoms:    []string{"Brown spindle-shaped lesions", "Yellowing around lesions", "Premature leaf drying"},
		Treatment:   []string{"Spray mancozeb at 2.5 g/L", "Remove heavily infected leaves"},
		Prevention:  []string{"Use resistant varieties", "Rotate with non-host crops"},
		Severity:    "moderate",
	},
	{
		Name:        "Powdery Mildew",
		Description: "White powdery fungal growth on leaf surfaces.",
		Symptoms:    []string{"White powdery patches", "Curling leaves", "Stunted growth"},
		Treatment:   []string{"Spray wettable sulfur at 3 g/L", "Improve air circulation"},
		Prevention:  []string{"Avoid excess nitrogen", "Space plants adequately"},
		Severity:    "low",
	},
	{
		Name:        "Rust",
		Description: "Fungal disease forming orange to brown pustules.",
		Symptoms:    []string{"Orange pustules on leaves", "Powdery spores on touch", "Leaf yellowing"},
		Treatment:   []string{"Spray propiconazole at 1 mL/L"},
		Prevention:  []string{"Sow on time", "Destroy volunteer plants"},
		Severity:    "moderate",
	},
	{
		Name:        "Bacterial Spot",
		Description: "Bacterial infection causing water-soaked spots on leaves and fruit.",
		Symptoms:    []string{"Small water-soaked spots", "Spots turn dark with yellow halo", "Fruit scabs"},
		Treatment:   []string{"Spray copper oxychloride at 3 g/L", "Remove infected debris"},
		Prevention:  []string{"Use disease-free seed", "Avoid overhead irrigation"},
		Severity:    "moderate",
	},
	{
		Name:        "Late Blight",
		Description: "Fast-spreading water mould favoured by cool, wet weather.",
		Symptoms:    []string{"Dark greasy lesions", "White growth under leaves", "Rapid plant collapse"},
		Treatment:   []string{"Spray metalaxyl + mancozeb at 2.5 g/L", "Destroy infected plants"},
		Prevention:  []string{"Plant resistant varieties", "Ensure good drainage"},
		Severity:    "high",
	},
	{
		Name:        "Mosaic Virus",
		Description: "Viral disease spread by aphids and whiteflies.",
		Symptoms:    []string{"Mottled light and dark green leaves", "Leaf distortion", "Reduced yield"},
		Treatment:   []string{"Uproot and destroy infected plants", "Control vectors with neem oil"},
		Prevention:  []string{"Use virus-free planting material", "Install yellow sticky traps"},
		Severity:    "high",
	},
}

// nutrientRanges are the ideal soil levels in kg/ha per declared need.
var nutrientRanges = map[Nutrient]map[Level]Range{
	Nitrogen: {
		Low:    {20, 50},
		Medium: {50, 80},
		High:   {70, 120},
	},
	Phosphorus: {
		Low:    {10, 30},
		Medium: {30, 50},
		High:   {45, 80},
	},
	Potassium: {
		Low:    {10, 30},
		Medium: {30, 50},
		High:   {45, 90},
	},
}

func Builtin() []CropProfile {
	out := make([]CropProfile, len(builtinCrops))
	copy(out, builtinCrops)
	return out
}

func Diseases() []Disease {
	out := make([]Disease, len(builtinDiseases))
	copy(out, builtinDiseases)
	return out
}

func NutrientRange(n Nutrient, l Level) Range {
	return nutrientRanges[n][ParseLevel(string(l))]
}

// Default returns the fallback crop profile.
func Default() CropProfile {
	for _, c := range builtinCrops {
		if strings.EqualFold(c.Name, DefaultCropName) {
			return c
		}
	}
	return builtinCrops[0]
}
