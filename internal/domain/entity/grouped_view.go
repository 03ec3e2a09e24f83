package entity

// ViewGroup un grupo con su etiqueta y sus líneas en orden de origen.
type ViewGroup struct {
	Label   string
	Entries []ResolvedEntry
}

// GroupedView mapeo ordenado etiqueta → líneas.
// El orden de los grupos es el de primera aparición durante el recorrido del stock.
type GroupedView struct {
	Groups []ViewGroup
}

// Labels etiquetas en orden.
func (v GroupedView) Labels() []string {
	out := make([]string, 0, len(v.Groups))
	for _, g := range v.Groups {
		out = append(out, g.Label)
	}
	return out
}

// Group devuelve las líneas de un grupo y si existe.
func (v GroupedView) Group(label string) ([]ResolvedEntry, bool) {
	for _, g := range v.Groups {
		if g.Label == label {
			return g.Entries, true
		}
	}
	return nil, false
}

// Len número total de líneas en todos los grupos.
func (v GroupedView) Len() int {
	n := 0
	for _, g := range v.Groups {
		n += len(g.Entries)
	}
	return n
}

// Clone copia profunda: el resultado no comparte slices ni referencias con v.
func (v GroupedView) Clone() GroupedView {
	if v.Groups == nil {
		return GroupedView{}
	}
	groups := make([]ViewGroup, len(v.Groups))
	for i, g := range v.Groups {
		entries := make([]ResolvedEntry, len(g.Entries))
		for j, e := range g.Entries {
			entries[j] = e.Clone()
		}
		groups[i] = ViewGroup{Label: g.Label, Entries: entries}
	}
	return GroupedView{Groups: groups}
}
