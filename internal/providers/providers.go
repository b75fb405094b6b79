package providers

import "sort"

// Summarizer backends.
const (
	Groq   = "groq"
	Gemini = "gemini"
)

type Model struct {
	ID               string
	Label            string
	InputPerMillion  float64
	OutputPerMillion float64
}

type Provider struct {
	Name  string
	Label string
	// KeyService is the credential service name used by the auth package.
	KeyService string
	Models     []Model
}

var registry = map[string]Provider{
	Groq: {
		Name:       Groq,
		Label:      "Groq",
		KeyService: "groq",
		Models: []Model{
			{ID: "gemma2-9b-it", Label: "Gemma 2 9B", InputPerMillion: 0.20, OutputPerMillion: 0.20},
			{ID: "llama-3.1-8b-instant", Label: "Llama 3.1 8B Instant", InputPerMillion: 0.05, OutputPerMillion: 0.08},
			{ID: "llama-3.3-70b-versatile", Label: "Llama 3.3 70B Versatile", InputPerMillion: 0.59, OutputPerMillion: 0.79},
		},
	},
	Gemini: {
		Name:       Gemini,
		Label:      "Gemini",
		KeyService: "gemini",
		Models: []Model{
			{ID: "gemini-2.0-flash", Label: "Gemini 2.0 Flash", InputPerMillion: 0.10, OutputPerMillion: 0.40},
			{ID: "gemini-2.5-flash", Label: "Gemini 2.5 Flash", InputPerMillion: 0.30, OutputPerMillion: 2.50},
		},
	},
}

const (
	DefaultInputPerMillion  = 0.50
	DefaultOutputPerMillion = 1.50
	// SearchCostPerCall is the list price of one basic Tavily search credit.
	SearchCostPerCall = 0.008
)

// Get returns the provider registered under name.
func Get(name string) (Provider, bool) {
	p, ok := registry[name]
	return p, ok
}

func IsKnown(name string) bool {
	_, ok := registry[name]
	return ok
}

// ProviderOf reports which provider lists modelID in its catalog.
func ProviderOf(modelID string) (string, bool) {
	for name, p := range registry {
		for _, m := range p.Models {
			if m.ID == modelID {
				return name, true
			}
		}
	}
	return "", false
}

// Names returns the registered provider names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultModel returns the first model of the provider, or "" if unknown.
func DefaultModel(name string) string {
	p, ok := registry[name]
	if !ok || len(p.Models) == 0 {
		return ""
	}
	return p.Models[0].ID
}

func ModelIDs(name string) []string {
	p := registry[name]
	ids := make([]string, 0, len(p.Models))
	for _, m := range p.Models {
		ids = append(ids, m.ID)
	}
	return ids
}

// Pricing returns the per-million token prices for a model. Unknown models get
// default pricing and ok=false.
func Pricing(provider, modelID string) (Model, bool) {
	for _, m := range registry[provider].Models {
		if m.ID == modelID {
			return m, true
		}
	}
	return Model{
		ID:               "default",
		Label:            "Default",
		InputPerMillion:  DefaultInputPerMillion,
		OutputPerMillion: DefaultOutputPerMillion,
	}, false
}

// EstimateCost returns an approximate USD cost for one run.
func EstimateCost(provider, modelID string, promptTokens, completionTokens, searches int) float64 {
	m, _ := Pricing(provider, modelID)
	cost := float64(promptTokens)*m.InputPerMillion/1e6 + float64(completionTokens)*m.OutputPerMillion/1e6
	return cost + float64(searches)*SearchCostPerCall
}
