package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ONSdigital/dp-frontend-catalogue-controller/config"
	"github.com/ONSdigital/dp-frontend-catalogue-controller/service"
	"github.com/ONSdigital/dp-frontend-catalogue-controller/service/mock"
	"github.com/ONSdigital/dp-healthcheck/healthcheck"
	. "github.com/smartystreets/goconvey/convey"
)

var (
	ctx           = context.Background()
	testBuildTime = "BuildTime"
	testGitCommit = "GitCommit"
	testVersion   = "Version"
	errServer     = errors.New("HTTP Server error")
	errHealth     = errors.New("healthcheck error")
	errAddCheck   = errors.New("healthcheck add check error")
)

func healthCheckerMock(addCheckErr error) *mock.HealthCheckerMock {
	return &mock.HealthCheckerMock{
		AddCheckFunc: func(name string, checker healthcheck.Checker) error { return addCheckErr },
		StartFunc:    func(ctx context.Context) {},
		StopFunc:     func() {},
		HandlerFunc:  func(w http.ResponseWriter, req *http.Request) { w.WriteHeader(http.StatusOK) },
	}
}

func TestRun(t *testing.T) {

	Convey("Having a set of mocked dependencies", t, func() {

		cfg, err := config.Get()
		So(err, ShouldBeNil)

		hcMock := healthCheckerMock(nil)
		serverWg := make(chan struct{})
		serverMock := &mock.HTTPServerMock{
			ListenAndServeFunc: func() error {
				close(serverWg)
				return nil
			},
		}
		failingServerMock := &mock.HTTPServerMock{
			ListenAndServeFunc: func() error { return errServer },
		}

		initMock := &mock.InitialiserMock{
			DoGetHealthCheckFunc: func(cfg *config.Config, buildTime, gitCommit, version string) (service.HealthChecker, error) {
				return hcMock, nil
			},
			DoGetHTTPServerFunc: func(bindAddr string, router http.Handler) service.HTTPServer {
				return serverMock
			},
		}
		svcErrors := make(chan error, 1)

		Convey("Given that all dependencies are successfully initialised", func() {
			svcList := service.NewServiceList(initMock)
			svc, err := service.Run(ctx, cfg, svcList, testBuildTime, testGitCommit, testVersion, svcErrors)

			Convey("Then service Run succeeds and all the flags are set", func() {
				So(err, ShouldBeNil)
				So(svcList.HealthCheck, ShouldBeTrue)
				So(svc.SearchClient, ShouldNotBeNil)
				So(svc.Sessions, ShouldNotBeNil)
			})

			Convey("And the checkers are registered and the healthcheck and http server started", func() {
				So(hcMock.AddCheckCalls(), ShouldHaveLength, 2)
				So(hcMock.AddCheckCalls()[0].Name, ShouldEqual, "dataset search API")
				So(hcMock.AddCheckCalls()[1].Name, ShouldEqual, "frontend renderer")
				So(initMock.DoGetHTTPServerCalls(), ShouldHaveLength, 1)
				So(initMock.DoGetHTTPServerCalls()[0].BindAddr, ShouldEqual, ":26500")
				So(hcMock.StartCalls(), ShouldHaveLength, 1)
				<-serverWg
				So(serverMock.ListenAndServeCalls(), ShouldHaveLength, 1)
			})

			Convey("And the router serves health, metrics and sessions", func() {
				router := initMock.DoGetHTTPServerCalls()[0].Router

				w := httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
				So(w.Code, ShouldEqual, http.StatusOK)
				So(hcMock.HandlerCalls(), ShouldHaveLength, 1)

				w = httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "catalogue_stale_responses_total")

				w = httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest("GET", "/datasets/sessions/unknown", nil))
				So(w.Code, ShouldEqual, http.StatusNotFound)

				w = httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest("PUT", "/datasets", nil))
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})

		Convey("Given that the healthcheck cannot be created", func() {
			initMock.DoGetHealthCheckFunc = func(cfg *config.Config, buildTime, gitCommit, version string) (service.HealthChecker, error) {
				return nil, errHealth
			}
			svcList := service.NewServiceList(initMock)
			_, err := service.Run(ctx, cfg, svcList, testBuildTime, testGitCommit, testVersion, svcErrors)

			Convey("Then service Run fails with the same error and the flag is not set", func() {
				So(err, ShouldResemble, errHealth)
				So(svcList.HealthCheck, ShouldBeFalse)
				So(initMock.DoGetHTTPServerCalls(), ShouldBeEmpty)
			})
		})

		Convey("Given that checkers cannot be registered", func() {
			hcMock = healthCheckerMock(errAddCheck)
			svcList := service.NewServiceList(initMock)
			_, err := service.Run(ctx, cfg, svcList, testBuildTime, testGitCommit, testVersion, svcErrors)

			Convey("Then service Run fails and the healthcheck is not started", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unable to register checkers")
				So(hcMock.AddCheckCalls(), ShouldHaveLength, 2)
				So(hcMock.StartCalls(), ShouldBeEmpty)
			})
		})

		Convey("Given that the HTTP server fails", func() {
			initMock.DoGetHTTPServerFunc = func(bindAddr string, router http.Handler) service.HTTPServer {
				return failingServerMock
			}
			svcList := service.NewServiceList(initMock)
			_, err := service.Run(ctx, cfg, svcList, testBuildTime, testGitCommit, testVersion, svcErrors)

			Convey("Then the error is returned in the error channel", func() {
				So(err, ShouldBeNil)
				sErr := <-svcErrors
				So(sErr.Error(), ShouldContainSubstring, errServer.Error())
			})
		})
	})
}

func TestClose(t *testing.T) {

	Convey("Having a correctly initialised service", t, func() {

		cfg, err := config.Get()
		So(err, ShouldBeNil)
		cfg.GracefulShutdownTimeout = 100 * time.Millisecond

		hcStopped := false
		hcMock := healthCheckerMock(nil)
		hcMock.StopFunc = func() { hcStopped = true }

		// the server may only be stopped after the healthcheck
		serverMock := &mock.HTTPServerMock{
			ListenAndServeFunc: func() error { return nil },
			ShutdownFunc: func(ctx context.Context) error {
				if !hcStopped {
					return errors.New("server stopped before healthcheck")
				}
				return nil
			},
		}

		initMock := &mock.InitialiserMock{
			DoGetHealthCheckFunc: func(cfg *config.Config, buildTime, gitCommit, version string) (service.HealthChecker, error) {
				return hcMock, nil
			},
			DoGetHTTPServerFunc: func(bindAddr string, router http.Handler) service.HTTPServer {
				return serverMock
			},
		}
		svcErrors := make(chan error, 1)

		Convey("Closing the service results in all the dependencies being closed in the expected order", func() {
			svc, err := service.Run(ctx, cfg, service.NewServiceList(initMock), testBuildTime, testGitCommit, testVersion, svcErrors)
			So(err, ShouldBeNil)

			err = svc.Close(ctx)
			So(err, ShouldBeNil)
			So(hcMock.StopCalls(), ShouldHaveLength, 1)
			So(serverMock.ShutdownCalls(), ShouldHaveLength, 1)
		})

		Convey("If the server fails to stop, the Close operation tries to close all dependencies and returns an error", func() {
			serverMock.ShutdownFunc = func(ctx context.Context) error { return errServer }
			svc, err := service.Run(ctx, cfg, service.NewServiceList(initMock), testBuildTime, testGitCommit, testVersion, svcErrors)
			So(err, ShouldBeNil)

			err = svc.Close(ctx)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "failed to shutdown gracefully")
			So(hcMock.StopCalls(), ShouldHaveLength, 1)
		})

		Convey("If the server takes longer than the graceful shutdown timeout, Close returns a timeout error", func() {
			serverMock.ShutdownFunc = func(ctx context.Context) error {
				time.Sleep(300 * time.Millisecond)
				return nil
			}
			svc, err := service.Run(ctx, cfg, service.NewServiceList(initMock), testBuildTime, testGitCommit, testVersion, svcErrors)
			So(err, ShouldBeNil)

			err = svc.Close(ctx)
			So(err, ShouldResemble, context.DeadlineExceeded)
		})
	})
}
