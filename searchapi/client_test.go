package searchapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ONSdigital/dp-frontend-catalogue-controller/catalogue"
	"github.com/ONSdigital/dp-healthcheck/healthcheck"
	. "github.com/smartystreets/goconvey/convey"
)

var ctx = context.Background()

const searchBody = `{
	"results": [
		{
			"id": 17,
			"title": "District rainfall",
			"description": "Monthly rainfall by district",
			"modified": "2024-03-01T10:00:00Z",
			"download_count": 42,
			"organization": {"name": "Water Resources Department"},
			"tags": ["water", "rain"],
			"sectors": "Agriculture",
			"formats": ["CSV"],
			"geography": "Assam"
		}
	],
	"aggregations": {
		"tags": {"water": {"doc_count": 3}, "rain": 1},
		"sectors": [{"key": "Agriculture", "count": 1}]
	},
	"total": 50
}`

type fakeAPI struct {
	status int
	body   string
	paths  []string
}

func (f *fakeAPI) server() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.paths = append(f.paths, r.URL.RequestURI())
		w.WriteHeader(f.status)
		w.Write([]byte(f.body))
	}))
}

func newTestClient(api *fakeAPI) (*Client, func()) {
	srv := api.server()
	return New(srv.URL+"/", NewHTTPClient(5*time.Second)), srv.Close
}

func TestSearch(t *testing.T) {
	Convey("Given a search API returning one dataset", t, func() {
		api := &fakeAPI{status: http.StatusOK, body: searchBody}
		cli, closeFn := newTestClient(api)
		defer closeFn()

		params := catalogue.QueryParameters{"page": "2", "size": "12", "Geography": "Assam", "tags": "water+rain"}
		resp, err := cli.Search(ctx, params)

		Convey("The request goes to the dataset endpoint with encoded parameters", func() {
			So(err, ShouldBeNil)
			So(api.paths, ShouldResemble, []string{"/api/search/dataset/?Geography=Assam&page=2&size=12&tags=water%2Brain"})
		})

		Convey("Records are decoded with flexible field shapes", func() {
			So(resp.Results, ShouldHaveLength, 1)
			rec := resp.Results[0]
			So(rec.ID, ShouldEqual, catalogue.Text("17"))
			So(rec.Title, ShouldEqual, catalogue.Text("District rainfall"))
			So(rec.Organization.Name, ShouldEqual, catalogue.Text("Water Resources Department"))
			So(rec.DownloadCount.String(), ShouldEqual, "42")
			So(rec.Tags, ShouldResemble, catalogue.StringList{"water", "rain"})
			So(rec.Sectors, ShouldResemble, catalogue.StringList{"Agriculture"})
			So(rec.Geography, ShouldResemble, catalogue.StringList{"Assam"})
		})

		Convey("Aggregations are passed on per category and the total is read", func() {
			So(*resp.Total, ShouldEqual, 50)
			So(resp.Aggregations, ShouldContainKey, "tags")
			So(catalogue.Normalize(resp.Aggregations["tags"]), ShouldResemble, []catalogue.Bucket{
				{Key: "water", Count: 3}, {Key: "rain", Count: 1},
			})
		})
	})

	Convey("Given a response without a total or aggregations", t, func() {
		api := &fakeAPI{status: http.StatusOK, body: `{"results": []}`}
		cli, closeFn := newTestClient(api)
		defer closeFn()

		resp, err := cli.Search(ctx, catalogue.QueryParameters{"page": "1", "size": "6"})

		Convey("The total is reported as missing", func() {
			So(err, ShouldBeNil)
			So(resp.Total, ShouldBeNil)
			So(resp.Aggregations, ShouldBeNil)
			So(resp.Results, ShouldBeEmpty)
		})
	})

	Convey("Given a total wrapped in an object and aggregations of the wrong shape", t, func() {
		api := &fakeAPI{status: http.StatusOK, body: `{"results": [], "total": {"value": 9}, "aggregations": ["tags"]}`}
		cli, closeFn := newTestClient(api)
		defer closeFn()

		resp, err := cli.Search(ctx, catalogue.QueryParameters{})

		Convey("The total is read and the aggregations are dropped", func() {
			So(err, ShouldBeNil)
			So(*resp.Total, ShouldEqual, 9)
			So(resp.Aggregations, ShouldBeNil)
		})
	})

	Convey("Given totals that are negative or too large to be a count", t, func() {
		for _, body := range []string{
			`{"results": [], "total": 1e30}`,
			`{"results": [], "total": -4}`,
			`{"results": [], "total": {"value": 1e30}}`,
		} {
			api := &fakeAPI{status: http.StatusOK, body: body}
			cli, closeFn := newTestClient(api)

			resp, err := cli.Search(ctx, catalogue.QueryParameters{})
			closeFn()

			So(err, ShouldBeNil)
			So(resp.Total, ShouldBeNil)
		}
	})

	Convey("Given a total at the largest count", t, func() {
		api := &fakeAPI{status: http.StatusOK, body: `{"results": [], "total": 2147483647}`}
		cli, closeFn := newTestClient(api)
		defer closeFn()

		resp, err := cli.Search(ctx, catalogue.QueryParameters{})

		Convey("The total is read", func() {
			So(err, ShouldBeNil)
			So(*resp.Total, ShouldEqual, 2147483647)
		})
	})

	Convey("Given a response without results", t, func() {
		api := &fakeAPI{status: http.StatusOK, body: `{"aggregations": {}}`}
		cli, closeFn := newTestClient(api)
		defer closeFn()

		_, err := cli.Search(ctx, catalogue.QueryParameters{})

		Convey("It is a malformed response", func() {
			So(errors.Is(err, catalogue.ErrMalformedResponse), ShouldBeTrue)
			So(errors.Is(err, catalogue.ErrNetwork), ShouldBeFalse)
		})
	})

	Convey("Given a body that is not JSON", t, func() {
		api := &fakeAPI{status: http.StatusOK, body: `<html>gateway</html>`}
		cli, closeFn := newTestClient(api)
		defer closeFn()

		_, err := cli.Search(ctx, catalogue.QueryParameters{})

		Convey("It is a malformed response", func() {
			So(errors.Is(err, catalogue.ErrMalformedResponse), ShouldBeTrue)
		})
	})

	Convey("Given the search API returns an error status", t, func() {
		api := &fakeAPI{status: http.StatusNotFound, body: `not found`}
		cli, closeFn := newTestClient(api)
		defer closeFn()

		_, err := cli.Search(ctx, catalogue.QueryParameters{})

		Convey("It is a network failure carrying the status code", func() {
			So(errors.Is(err, catalogue.ErrNetwork), ShouldBeTrue)
			var statusErr *ErrInvalidSearchAPIResponse
			So(errors.As(err, &statusErr), ShouldBeTrue)
			So(statusErr.Code(), ShouldEqual, http.StatusNotFound)
			So(statusErr.Error(), ShouldContainSubstring, "not found")
		})
	})

	Convey("Given the search API cannot be reached", t, func() {
		api := &fakeAPI{status: http.StatusOK, body: searchBody}
		cli, closeFn := newTestClient(api)
		closeFn()

		_, err := cli.Search(ctx, catalogue.QueryParameters{})

		Convey("It is a network failure", func() {
			So(errors.Is(err, catalogue.ErrNetwork), ShouldBeTrue)
			So(errors.Is(err, catalogue.ErrMalformedResponse), ShouldBeFalse)
		})
	})
}

func TestChecker(t *testing.T) {
	Convey("Given a healthy search API", t, func() {
		api := &fakeAPI{status: http.StatusOK, body: searchBody}
		cli, closeFn := newTestClient(api)
		defer closeFn()
		state := healthcheck.NewCheckState(service)

		Convey("The check is OK and asks for a single dataset", func() {
			So(cli.Checker(ctx, state), ShouldBeNil)
			So(state.Status(), ShouldEqual, healthcheck.StatusOK)
			So(state.StatusCode(), ShouldEqual, http.StatusOK)
			So(api.paths, ShouldResemble, []string{"/api/search/dataset/?page=1&size=1"})
		})
	})

	Convey("Given a failing search API", t, func() {
		api := &fakeAPI{status: http.StatusInternalServerError}
		cli, closeFn := newTestClient(api)
		defer closeFn()
		state := healthcheck.NewCheckState(service)

		Convey("The check is critical", func() {
			So(cli.Checker(ctx, state), ShouldBeNil)
			So(state.Status(), ShouldEqual, healthcheck.StatusCritical)
			So(state.StatusCode(), ShouldEqual, http.StatusInternalServerError)
		})
	})
}
