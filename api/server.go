package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-minting/api/handlers"
)

func NewRouter(
	ordersHandler *handlers.OrdersHandler,
	statusHandler *handlers.StatusHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/v1/orders", ordersHandler.HandleOrder).Methods("POST")
	r.HandleFunc("/v1/orders/{id}", statusHandler.HandleRequest).Methods("GET")
	return r
}

func Serve(
	ctx context.Context,
	addr string,
	ordersHandler *handlers.OrdersHandler,
	statusHandler *handlers.StatusHandler,
) {
	server := &http.Server{
		Addr:        addr,
		Handler:     NewRouter(ordersHandler, statusHandler),
		ReadTimeout: time.Second * 10,
	}
	go func() {
		log.Info().Msgf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		log.Err(err).Msgf("Error shutting down server")
	} else {
		log.Info().Msgf("Server shut down gracefully.")
	}
}
