package content

import "github.com/samber/lo"

const CategoryOther = "Other"

var categoryOrder = []string{
	"Daily Conversation",
	"Movement & Plans",
	"Statements & Grammar",
	CategoryOther,
}

var categoryOf = map[string]string{
	"Greetings & Openings":          "Daily Conversation",
	"How I’m Doing":                 "Daily Conversation",
	"What I’m Doing / Availability": "Daily Conversation",

	"Movement & Arrival":      "Movement & Plans",
	"Plans, Timing & Updates": "Movement & Plans",
	"Goodbyes & Polite Exits": "Movement & Plans",

	"Statements & Descriptions": "Statements & Grammar",
}

// CategoryOf returns the catalogue category of a module name.
func CategoryOf(module string) string {
	if c, ok := categoryOf[module]; ok {
		return c
	}
	return CategoryOther
}

// Category groups modules for the module picker.
type Category struct {
	Name    string
	Modules []Module
}

// Total returns the item count across the category.
func (c Category) Total() int {
	return lo.SumBy(c.Modules, func(m Module) int { return m.Total() })
}

// Catalog groups the pack's modules by category. Empty categories are
// omitted and modules keep file order within a category.
func (p *Pack) Catalog() []Category {
	grouped := lo.GroupBy(p.Modules, func(m Module) string { return m.Category })
	var out []Category
	for _, name := range categoryOrder {
		if mods := grouped[name]; len(mods) > 0 {
			out = append(out, Category{Name: name, Modules: mods})
		}
	}
	return out
}

// ModuleNames returns every module name in file order.
func (p *Pack) ModuleNames() []string {
	return lo.Map(p.Modules, func(m Module, _ int) string { return m.Name })
}
