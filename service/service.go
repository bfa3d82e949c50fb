package service

import (
	"context"

	"github.com/ONSdigital/dp-api-clients-go/renderer"
	"github.com/ONSdigital/dp-frontend-catalogue-controller/config"
	"github.com/ONSdigital/dp-frontend-catalogue-controller/handlers"
	"github.com/ONSdigital/dp-frontend-catalogue-controller/searchapi"
	"github.com/ONSdigital/dp-frontend-catalogue-controller/sessions"
	"github.com/ONSdigital/log.go/v2/log"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service contains all the configs, server and clients to run the frontend catalogue controller
type Service struct {
	Config         *config.Config
	HealthCheck    HealthChecker
	Server         HTTPServer
	SearchClient   *searchapi.Client
	RendererClient *renderer.Renderer
	Sessions       *sessions.Store
	ServiceList    *ExternalServiceList
}

// Run the service
func Run(ctx context.Context, cfg *config.Config, serviceList *ExternalServiceList, buildTime, gitCommit, version string, svcErrors chan error) (svc *Service, err error) {
	log.Info(ctx, "running service")

	// Initialise Service struct
	svc = &Service{
		Config:      cfg,
		ServiceList: serviceList,
	}

	// Initialise clients
	svc.SearchClient = searchapi.New(cfg.SearchAPIURL, searchapi.NewHTTPClient(cfg.SearchAPITimeout))
	svc.RendererClient = renderer.New(cfg.RendererURL)
	svc.Sessions = sessions.New(cfg.SessionTTL)

	// Get healthcheck with checkers
	svc.HealthCheck, err = serviceList.GetHealthCheck(cfg, buildTime, gitCommit, version)
	if err != nil {
		log.Fatal(ctx, "failed to create health check", err)
		return nil, err
	}
	if err := svc.registerCheckers(ctx); err != nil {
		return nil, errors.Wrap(err, "unable to register checkers")
	}

	svc.Server = serviceList.GetHTTPServer(cfg.BindAddr, svc.router())

	// Start Healthcheck and HTTP Server
	svc.HealthCheck.Start(ctx)
	go func() {
		if err := svc.Server.ListenAndServe(); err != nil {
			svcErrors <- errors.Wrap(err, "failure in http listen and serve")
		}
	}()

	return svc, nil
}

func (svc *Service) router() *mux.Router {
	cfg := svc.Config
	router := mux.NewRouter()
	router.StrictSlash(true).Path("/health").HandlerFunc(svc.HealthCheck.Handler)
	router.StrictSlash(true).Path("/metrics").Handler(promhttp.Handler())

	router.StrictSlash(true).Path("/datasets").Methods("GET").HandlerFunc(handlers.CatalogueRender(svc.RendererClient, svc.SearchClient, cfg.DefaultPageSize))
	router.Path("/datasets/sessions").Methods("POST").HandlerFunc(handlers.CreateSession(svc.RendererClient, svc.SearchClient, svc.Sessions, cfg.DefaultPageSize))
	router.Path("/datasets/sessions/{id}").Methods("GET").HandlerFunc(handlers.GetSession(svc.RendererClient, svc.Sessions))
	router.Path("/datasets/sessions/{id}").Methods("DELETE").HandlerFunc(handlers.DeleteSession(svc.Sessions))
	router.Path("/datasets/sessions/{id}/commands").Methods("POST").HandlerFunc(handlers.SessionCommand(svc.RendererClient, svc.Sessions))
	return router
}

// Close gracefully shuts the service down in the required order, with timeout
func (svc *Service) Close(ctx context.Context) error {
	timeout := svc.Config.GracefulShutdownTimeout
	log.Info(ctx, "commencing graceful shutdown", log.Data{"graceful_shutdown_timeout": timeout})
	ctx, cancel := context.WithTimeout(ctx, timeout)
	hasShutdownError := false

	go func() {
		defer cancel()

		// stop healthcheck, as it depends on everything else
		if svc.ServiceList.HealthCheck {
			svc.HealthCheck.Stop()
		}

		// stop any incoming requests
		if err := svc.Server.Shutdown(ctx); err != nil {
			log.Error(ctx, "failed to shutdown http server", err)
			hasShutdownError = true
		}
	}()

	// wait for shutdown success (via cancel) or failure (timeout)
	<-ctx.Done()

	// timeout expired
	if ctx.Err() == context.DeadlineExceeded {
		log.Error(ctx, "shutdown timed out", ctx.Err())
		return ctx.Err()
	}

	// other error
	if hasShutdownError {
		err := errors.New("failed to shutdown gracefully")
		log.Error(ctx, "failed to shutdown gracefully ", err)
		return err
	}

	log.Info(ctx, "graceful shutdown was successful", log.Data{"open_sessions": svc.Sessions.Len()})
	return nil
}

func (svc *Service) registerCheckers(ctx context.Context) (err error) {

	hasErrors := false

	if err = svc.HealthCheck.AddCheck("dataset search API", svc.SearchClient.Checker); err != nil {
		hasErrors = true
		log.Error(ctx, "failed to add dataset search API checker", err)
	}

	if err = svc.HealthCheck.AddCheck("frontend renderer", svc.RendererClient.Checker); err != nil {
		hasErrors = true
		log.Error(ctx, "failed to add frontend renderer checker", err)
	}

	if hasErrors {
		return errors.New("Error(s) registering checkers for healthcheck")
	}
	return nil
}
