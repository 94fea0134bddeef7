package providers

import "slices"

// Catalog lists the model names a provider may be asked for.
type Catalog map[Provider][]string

func DefaultCatalog() Catalog {
	return Catalog{
		Groq:   {"llama-3.3-70b-versatile", "mixtral-8x7b-32768"},
		OpenAI: {"gpt-4o-mini"},
	}
}

// WithOverride replaces the model list of p when models is non-empty.
func (c Catalog) WithOverride(p Provider, models []string) Catalog {
	out := make(Catalog, len(c))
	for k, v := range c {
		out[k] = v
	}
	if len(models) > 0 {
		out[p] = slices.Clone(models)
	}
	return out
}

func (c Catalog) Allows(p Provider, model string) bool {
	return slices.Contains(c[p], model)
}
