// Package catalog holds the fixed module curriculum.
package catalog

import (
	"strings"

	"github.com/verte-zerg/moyenne/internal/model"
)

var modules = []model.Module{
	{ID: "oral-tech-1", Name: "Technique of Oral language 1", Coef: 3},
	{ID: "written-tech-1", Name: "Technique of Written language 1", Coef: 3},
	{ID: "esp", Name: "English for specific purposes", Short: "ESP", Coef: 1},
	{ID: "ethics", Name: "ETHICS", Coef: 1},
	{ID: "spec-translation", Name: "Specialized translation", Coef: 1},
	{ID: "library-research", Name: "Library research", Coef: 2},
	{ID: "writing-reports", Name: "Writing reports", Coef: 1},
	{ID: "advanced-grammar", Name: "Advanced grammar", Coef: 1},
	{ID: "cpw", Name: "Communication and professional terms", Short: "CPW", Coef: 1},
	{ID: "epp", Name: "English for professional purposes", Short: "EPP", Coef: 1},
	{ID: "english-presentation", Name: "English for presentation", Coef: 1},
}

// Modules returns a copy of the catalog in display order.
func Modules() []model.Module {
	out := make([]model.Module, len(modules))
	copy(out, modules)
	return out
}

// Lookup resolves a module by id or short label, case-insensitively.
func Lookup(key string) (model.Module, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return model.Module{}, false
	}
	for _, m := range modules {
		if strings.EqualFold(m.ID, key) {
			return m, true
		}
		if m.Short != "" && strings.EqualFold(m.Short, key) {
			return m, true
		}
	}
	return model.Module{}, false
}

// IDs returns the module ids in display order.
func IDs() []string {
	ids := make([]string, len(modules))
	for i, m := range modules {
		ids[i] = m.ID
	}
	return ids
}
