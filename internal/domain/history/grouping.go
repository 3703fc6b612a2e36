package history

import "livestock-registry/internal/domain/catalog"

// CategoryGroup es una categoría con sus tipos de evento, en el orden del
// catálogo.
type CategoryGroup struct {
	Category string
	Types    []catalog.EventType
}

// GroupEventTypesByCategory particiona el catálogo de tipos en grupos por
// categoría. Preserva el orden del catálogo: las categorías aparecen según
// su primer tipo y los tipos mantienen su orden dentro de cada grupo. Es
// puro; sirve para armar selectores agrupados sin re-ordenar.
func GroupEventTypesByCategory(types []catalog.EventType) []CategoryGroup {
	index := map[string]int{}
	groups := make([]CategoryGroup, 0)

	for _, t := range types {
		i, ok := index[t.Category]
		if !ok {
			i = len(groups)
			index[t.Category] = i
			groups = append(groups, CategoryGroup{Category: t.Category})
		}
		groups[i].Types = append(groups[i].Types, t)
	}
	return groups
}
