package entry

// Collection names one owner-scoped store collection and the routes built on it.
type Collection struct {
	Name      string
	Summary   string
	Updatable bool
}

var (
	Punitions  = Collection{Name: "punitions", Summary: "Punishment log", Updatable: true}
	Orgasmes   = Collection{Name: "orgasmes", Summary: "Climax log", Updatable: true}
	Carnet     = Collection{Name: "carnet", Summary: "Journal entries", Updatable: true}
	Histoires  = Collection{Name: "histoires", Summary: "Stories", Updatable: true}
	Liens      = Collection{Name: "liens", Summary: "Useful links", Updatable: true}
	Seances    = Collection{Name: "seances", Summary: "Session log", Updatable: true}
	Inventaire = Collection{Name: "inventaire", Summary: "Inventory", Updatable: true}
	Documents  = Collection{Name: "documents", Summary: "Documents", Updatable: false}
	Idees      = Collection{Name: "idees", Summary: "Ideas", Updatable: true}
	De10       = Collection{Name: "de10", Summary: "Ten-sided die options", Updatable: true}
	Rituels    = Collection{Name: "rituels", Summary: "Rituals", Updatable: true}
)

var collections = []Collection{
	Punitions, Orgasmes, Carnet, Histoires, Liens, Seances,
	Inventaire, Documents, Idees, De10, Rituels,
}

// Collections returns every known collection in route order.
func Collections() []Collection {
	out := make([]Collection, len(collections))
	copy(out, collections)
	return out
}

// Lookup resolves a collection by its store name. Stores use it to refuse
// names that are not part of the schema before building a query.
func Lookup(name string) (Collection, bool) {
	for _, c := range collections {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}
