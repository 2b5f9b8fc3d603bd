// Package api exposes the sync triggers over http. Routing logic stays
// thin here: every /api route authenticates through the shared key
// header, then hands off to the source's service.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"commander-backend/services/dolarg"
	"commander-backend/services/rentafija"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/api")

const welcomeText = "Bienvenid@ a la Api Commander!"
const unauthorizedText = "Unauthorized"
const cooldownTextFormat = "Este endpoint está en enfriamiento. Inténtalo de nuevo en %d segundos."
const dolargSuccessText = "Proceso completado con éxito. Se actualizaron los datos de dolarg."
const rentaFijaSuccessText = "Proceso completado con éxito. Se actualizaron los datos de renta fija argentina."

type Options struct {
	ApiKey    string
	Dolarg    dolarg.Service
	RentaFija rentafija.Service
}

func NewRouter(opts Options) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, welcomeText)
	}).Methods(http.MethodGet)

	r.HandleFunc("/error", func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "Devolviendo un error 500", http.StatusInternalServerError)
	}).Methods(http.MethodGet)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(requireApiKey(opts.ApiKey))
	protected.HandleFunc("/dolarg", handleDolargSync(opts.Dolarg)).Methods(http.MethodPost)
	protected.HandleFunc("/renta-fija-argentina", handleRentaFijaSync(opts.RentaFija)).Methods(http.MethodPost)

	return r
}

// requireApiKey rejects any /api request whose X-API-Key header doesn't
// match the configured secret, before any route logic runs.
func requireApiKey(apiKey string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			requestKey := req.Header.Get("X-API-Key")
			if requestKey == "" || requestKey != apiKey {
				http.Error(w, unauthorizedText, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

func handleDolargSync(service dolarg.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx, span := tracer.Start(req.Context(), "POST /api/dolarg")
		defer span.End()

		gate, err := service.CheckCooldown(ctx, time.Now())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			http.Error(w, fmt.Sprintf("ERROR: %s", err), http.StatusInternalServerError)
			return
		}
		if !gate.Allowed {
			slog.InfoContext(ctx, "dolarg sync rejected by cooldown", "retry_after", gate.RetryAfter)
			http.Error(w, fmt.Sprintf(cooldownTextFormat, gate.RetryAfter), http.StatusTooManyRequests)
			return
		}

		err = service.Sync(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			http.Error(w, fmt.Sprintf("ERROR: %s", err), http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, dolargSuccessText)
	}
}

func handleRentaFijaSync(service rentafija.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx, span := tracer.Start(req.Context(), "POST /api/renta-fija-argentina")
		defer span.End()

		// no cooldown here, the fingerprint skip already makes repeat
		// triggers cheap
		err := service.Sync(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			http.Error(w, fmt.Sprintf("ERROR: %s", err), http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, rentaFijaSuccessText)
	}
}
