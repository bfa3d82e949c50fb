package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/ONSdigital/dp-cookies/cookies"
	"github.com/ONSdigital/dp-frontend-catalogue-controller/catalogue"
	"github.com/ONSdigital/dp-frontend-catalogue-controller/mapper"
	"github.com/ONSdigital/dp-frontend-catalogue-controller/models"
	"github.com/ONSdigital/log.go/v2/log"
	"github.com/bytedance/sonic"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//go:generate moq -out mocks_handlers.go . RenderClient SearchClient SessionStore

const (
	cataloguePath = "/datasets"
	sessionsPath  = cataloguePath + "/sessions"
)

var errUnknownCommand = errors.New("unknown command")

var commandsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "catalogue_commands_total",
	Help: "The total number of catalogue session commands handled, by command",
}, []string{"command"})

// RenderClient is an interface with methods for require for rendering a template
type RenderClient interface {
	Do(string, []byte) ([]byte, error)
}

// SearchClient is an interface with methods required for a dataset search client
type SearchClient interface {
	Search(ctx context.Context, params catalogue.QueryParameters) (catalogue.Response, error)
}

// SessionStore is an interface with methods required to keep catalogue page views
type SessionStore interface {
	Create(b *catalogue.Browser) string
	Get(id string) (*catalogue.Browser, bool)
	Delete(id string) bool
}

// ClientError is an interface that can be used to retrieve the status code if a client has errored
type ClientError interface {
	error
	Code() int
}

func setStatusCode(req *http.Request, w http.ResponseWriter, err error) {
	w.WriteHeader(statusCode(req.Context(), err))
}

func statusCode(ctx context.Context, err error) int {
	status := http.StatusInternalServerError
	var cerr ClientError
	if errors.As(err, &cerr) {
		if cerr.Code() == http.StatusNotFound {
			status = cerr.Code()
		}
		log.Error(ctx, "setting response status", err, log.Data{"status": status})
	}
	return status
}

// isBadInput reports whether err was caused by values the user sent
func isBadInput(err error) bool {
	for _, target := range []error{
		catalogue.ErrInvalidPageSize,
		catalogue.ErrUnknownCategory,
		catalogue.ErrEmptyFacetValue,
		catalogue.ErrUnknownSortMode,
		catalogue.ErrUnknownViewMode,
		errUnknownCommand,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	var numErr *strconv.NumError
	return errors.As(err, &numErr)
}

// isFetchError reports whether err came from fetching datasets, in which case the view
// already shows the failure
func isFetchError(err error) bool {
	return errors.Is(err, catalogue.ErrNetwork) ||
		errors.Is(err, catalogue.ErrMalformedResponse) ||
		errors.Is(err, catalogue.ErrSuperseded)
}

// CatalogueRender loads the catalogue page described by the query string and renders it
func CatalogueRender(rend RenderClient, cli SearchClient, defaultPageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		cr, err := decodeCatalogueRequest(req.URL.Query())
		if err != nil {
			log.Warn(ctx, "unable to decode catalogue query", log.Data{"error": err.Error()})
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		state, err := cr.state(defaultPageSize)
		if err != nil {
			log.Warn(ctx, "invalid catalogue query", log.Data{"error": err.Error()})
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		b, err := catalogue.NewBrowser(cli, state)
		if err != nil {
			log.Error(ctx, "unable to create catalogue browser", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		status := http.StatusOK
		if err := b.Load(ctx); err != nil {
			status = statusCode(ctx, err)
		}

		page := mapper.CreateCataloguePage(b.View(), "", pageURL(b.State()))
		respond(w, req, rend, page, status)
	}
}

// CreateSession starts a catalogue page view from the submitted state and loads its first page
func CreateSession(rend RenderClient, cli SearchClient, store SessionStore, defaultPageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		if err := req.ParseForm(); err != nil {
			log.Warn(ctx, "unable to parse session form", log.Data{"error": err.Error()})
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		cr, err := decodeCatalogueRequest(req.Form)
		if err != nil {
			log.Warn(ctx, "unable to decode session state", log.Data{"error": err.Error()})
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		state, err := cr.state(defaultPageSize)
		if err != nil {
			log.Warn(ctx, "invalid session state", log.Data{"error": err.Error()})
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		b, err := catalogue.NewBrowser(cli, state)
		if err != nil {
			log.Error(ctx, "unable to create catalogue browser", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := b.Load(ctx); err != nil && !isFetchError(err) {
			log.Error(ctx, "unexpected error loading catalogue", err)
		}

		id := store.Create(b)
		log.Info(ctx, "catalogue session created", log.Data{"session_id": id})

		w.Header().Set("Location", sessionsPath+"/"+id)
		page := mapper.CreateCataloguePage(b.View(), id, nil)
		respond(w, req, rend, page, http.StatusCreated)
	}
}

// GetSession renders the current view of a catalogue page view
func GetSession(rend RenderClient, store SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		id := mux.Vars(req)["id"]
		b, ok := store.Get(id)
		if !ok {
			log.Warn(req.Context(), "catalogue session not found", log.Data{"session_id": id})
			w.WriteHeader(http.StatusNotFound)
			return
		}

		page := mapper.CreateCataloguePage(b.View(), id, nil)
		respond(w, req, rend, page, http.StatusOK)
	}
}

// SessionCommand applies one command to a catalogue page view and renders the result
func SessionCommand(rend RenderClient, store SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		id := mux.Vars(req)["id"]
		logData := log.Data{"session_id": id}

		b, ok := store.Get(id)
		if !ok {
			log.Warn(ctx, "catalogue session not found", logData)
			w.WriteHeader(http.StatusNotFound)
			return
		}

		if err := req.ParseForm(); err != nil {
			logData["error"] = err.Error()
			log.Warn(ctx, "unable to parse command form", logData)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		cmd, err := decodeCommandRequest(req.Form)
		if err != nil {
			logData["error"] = err.Error()
			log.Warn(ctx, "unable to decode command", logData)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		logData["command"] = cmd.Command

		if err := applyCommand(ctx, b, cmd); err != nil {
			switch {
			case isBadInput(err):
				logData["error"] = err.Error()
				log.Warn(ctx, "rejected catalogue command", logData)
				w.WriteHeader(http.StatusBadRequest)
				return
			case !isFetchError(err):
				log.Error(ctx, "catalogue command failed", err, logData)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
		}
		commandsHandled.WithLabelValues(cmd.Command).Inc()

		page := mapper.CreateCataloguePage(b.View(), id, nil)
		respond(w, req, rend, page, http.StatusOK)
	}
}

// DeleteSession ends a catalogue page view
func DeleteSession(store SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		id := mux.Vars(req)["id"]
		if !store.Delete(id) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		log.Info(req.Context(), "catalogue session ended", log.Data{"session_id": id})
		w.WriteHeader(http.StatusNoContent)
	}
}

func applyCommand(ctx context.Context, b *catalogue.Browser, cmd *commandRequest) error {
	switch cmd.Command {
	case "search":
		return b.SetSearch(ctx, cmd.Value)
	case "sort":
		mode, err := catalogue.ParseSortMode(cmd.Value)
		if err != nil {
			return err
		}
		return b.SetSort(ctx, mode)
	case "toggle":
		c, err := catalogue.ParseCategory(cmd.Category)
		if err != nil {
			return err
		}
		return b.ToggleFilter(ctx, c, cmd.Value)
	case "page":
		n, err := strconv.Atoi(cmd.Value)
		if err != nil {
			return err
		}
		return b.GoToPage(ctx, n)
	case "first":
		return b.FirstPage(ctx)
	case "prev":
		return b.PrevPage(ctx)
	case "next":
		return b.NextPage(ctx)
	case "last":
		return b.LastPage(ctx)
	case "size":
		n, err := strconv.Atoi(cmd.Value)
		if err != nil {
			return err
		}
		return b.ChangePageSize(ctx, n)
	case "view":
		mode, err := catalogue.ParseViewMode(cmd.Value)
		if err != nil {
			return err
		}
		return b.SetViewMode(mode)
	default:
		return errors.Wrapf(errUnknownCommand, "%q", cmd.Command)
	}
}

func wantsJSON(req *http.Request) bool {
	return strings.Contains(req.Header.Get("Accept"), "application/json")
}

// respond writes the page model as JSON when asked for, otherwise renders it
func respond(w http.ResponseWriter, req *http.Request, rend RenderClient, page models.CataloguePage, status int) {
	ctx := req.Context()

	mapper.SetCookiePreferences(&page.Page, cookies.GetCookiePreferences(req))
	templateJSON, err := sonic.Marshal(page)
	if err != nil {
		log.Error(ctx, "error marshalling catalogue page data to JSON", err)
		setStatusCode(req, w, err)
		return
	}

	if wantsJSON(req) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		w.Write(templateJSON)
		return
	}

	templateHTML, err := rend.Do(mapper.PageType, templateJSON)
	if err != nil {
		log.Error(ctx, "error rendering catalogue page", err)
		setStatusCode(req, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(templateHTML)
}
