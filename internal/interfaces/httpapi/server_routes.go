package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerClubRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/clubs", handler.ListClubs)
	mux.HandleFunc("POST /v1/clubs", handler.CreateClub)
	mux.HandleFunc("POST /v1/clubs/template", handler.UploadClubTemplate)
	mux.HandleFunc("GET /v1/clubs/template", handler.DownloadClubTemplate)
	mux.HandleFunc("GET /v1/clubs/{codigoClub}", handler.GetClub)
	mux.HandleFunc("PUT /v1/clubs/{codigoClub}", handler.UpdateClub)
	mux.HandleFunc("DELETE /v1/clubs/{codigoClub}", handler.DeleteClub)
	mux.HandleFunc("GET /v1/clubs/{codigoClub}/jugadores", handler.ListClubPlayers)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/jugadores", handler.ListPlayers)
	mux.HandleFunc("POST /v1/jugadores", handler.CreatePlayer)
	mux.HandleFunc("GET /v1/jugadores/{idfed}", handler.GetPlayer)
	mux.HandleFunc("PUT /v1/jugadores/{idfed}", handler.UpdatePlayer)
	mux.HandleFunc("DELETE /v1/jugadores/{idfed}", handler.DeletePlayer)
	mux.HandleFunc("GET /v1/jugadores/{idfed}/resultados", handler.ListPlayerResults)
}

func registerTourTypeRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/tipos-campeonato", handler.ListTourTypes)
	mux.HandleFunc("POST /v1/tipos-campeonato", handler.CreateTourType)
	mux.HandleFunc("GET /v1/tipos-campeonato/{tipoID}", handler.GetTourType)
	mux.HandleFunc("PUT /v1/tipos-campeonato/{tipoID}", handler.UpdateTourType)
	mux.HandleFunc("DELETE /v1/tipos-campeonato/{tipoID}", handler.DeleteTourType)
}

func registerTournamentRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/campeonatos", handler.ListTournaments)
	mux.HandleFunc("POST /v1/campeonatos", handler.CreateTournament)
	mux.HandleFunc("GET /v1/campeonatos/{nch}", handler.GetTournament)
	mux.HandleFunc("PUT /v1/campeonatos/{nch}", handler.UpdateTournament)
	mux.HandleFunc("DELETE /v1/campeonatos/{nch}", handler.DeleteTournament)
	mux.HandleFunc("GET /v1/campeonatos/{nch}/resultados", handler.ListTournamentResults)
}

func registerResultRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/resultados", handler.ListResults)
	mux.HandleFunc("POST /v1/resultados", handler.CreateResult)
	mux.HandleFunc("POST /v1/resultados/filter", handler.FilterResults)
	mux.HandleFunc("GET /v1/resultados/{nch}/{fecha}/{idfed}", handler.GetResult)
	mux.HandleFunc("PUT /v1/resultados/{nch}/{fecha}/{idfed}", handler.UpdateResult)
	mux.HandleFunc("DELETE /v1/resultados/{nch}/{fecha}/{idfed}", handler.DeleteResult)
}

func registerTransferRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/clubs/import", handler.ImportClubs)
	mux.HandleFunc("POST /v1/jugadores/import", handler.ImportPlayers)
	mux.HandleFunc("POST /v1/campeonatos/import", handler.ImportTournaments)
	mux.HandleFunc("POST /v1/resultados/import", handler.ImportResults)

	mux.HandleFunc("GET /v1/clubs/export", handler.ExportClubs)
	mux.HandleFunc("GET /v1/jugadores/export", handler.ExportPlayers)
	mux.HandleFunc("GET /v1/campeonatos/export", handler.ExportTournaments)
	mux.HandleFunc("GET /v1/resultados/export", handler.ExportResults)
}
