package entry

import (
	"carnet/internal/domain/entry"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// SetupRoutes mounts every collection on api, all sharing store and mws.
func SetupRoutes(api huma.API, store entry.Store, log *slog.Logger, mws huma.Middlewares) {
	mount[entry.Punition](api, entry.Punitions, store, log, mws)
	mount[entry.Orgasme](api, entry.Orgasmes, store, log, mws)
	mount[entry.CarnetEntry](api, entry.Carnet, store, log, mws)
	mount[entry.Histoire](api, entry.Histoires, store, log, mws)
	mount[entry.Lien](api, entry.Liens, store, log, mws)
	mount[entry.Seance](api, entry.Seances, store, log, mws)
	mount[entry.InventaireItem](api, entry.Inventaire, store, log, mws)
	mount[entry.Document](api, entry.Documents, store, log, mws)
	mount[entry.Idee](api, entry.Idees, store, log, mws)
	mount[entry.De10Option](api, entry.De10, store, log, mws)
	mount[entry.Rituel](api, entry.Rituels, store, log, mws)
}

func mount[T any](api huma.API, c entry.Collection, store entry.Store, log *slog.Logger, mws huma.Middlewares) {
	service := entry.NewService[T](c, store, log)
	NewHandler[T](service, log, mws).SetupRoutes(api)
}
