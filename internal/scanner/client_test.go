package scanner

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"course-scanner/internal/apperrors"
	"course-scanner/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const expectedNoError = "Expected no error, got %v"

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c := New(srv.URL+"/", 2*time.Second)
	c.Retry.MaxAttempts = 1
	return c
}

func TestNew(t *testing.T) {
	client := New("https://course-scanner-backend.vercel.app/", 0)

	if client.BaseURL != "https://course-scanner-backend.vercel.app" {
		t.Errorf("Expected trailing slash trimmed, got %q", client.BaseURL)
	}
	if client.HTTP == nil || client.HTTP.Timeout != 10*time.Second {
		t.Errorf("Expected default 10s timeout, got %+v", client.HTTP)
	}
}

func TestBrandNames(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/brandnames" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		if _, err := uuid.Parse(r.Header.Get("X-Request-Id")); err != nil {
			t.Errorf("Expected a request id header, got %q", r.Header.Get("X-Request-Id"))
		}
		_, _ = w.Write([]byte(`[{"brandname":"cisco"},{"brandname":" "},{"brandname":"aws","count":3},{"brandname":"cisco"},{}]`))
	})

	got, err := c.BrandNames(context.Background())
	if err != nil {
		t.Fatalf(expectedNoError, err)
	}
	if diff := cmp.Diff([]string{"cisco", "aws"}, got); diff != "" {
		t.Errorf("BrandNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestCourseNamesEscapesBrand(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/coursename/red%20hat" {
			t.Errorf("Unexpected escaped path %q", r.URL.EscapedPath())
		}
		_, _ = w.Write([]byte(`[
			{"course_id": 101, "coursename": "RH124\nSystem Administration I", "brandname": "red hat", "price": "£1,295.00", "region": "UK", "start_date": "2024-04-01"},
			{"course_id": "rh134", "coursename": "RH134", "brandname": "red hat", "price": 980.5, "brand_image": "https://img/rh.png", "url": "https://rh/134"}
		]`))
	})

	got, err := c.CourseNames(context.Background(), "red hat")
	if err != nil {
		t.Fatalf(expectedNoError, err)
	}

	want := []domain.Course{
		{CourseID: "101", CourseName: "RH124\nSystem Administration I", BrandName: "red hat", Price: 1295, Region: "UK", StartDate: "2024-04-01", ImageURL: domain.PlaceholderImage},
		{CourseID: "rh134", CourseName: "RH134", BrandName: "red hat", Price: 980.5, ImageURL: "https://img/rh.png", DetailURL: "https://rh/134"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CourseNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestCourseNamesEmptyBrand(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Expected no request for an empty brand")
	})

	if _, err := c.CourseNames(context.Background(), "  "); !errors.Is(err, apperrors.ErrEmptyBrand) {
		t.Errorf("Expected ErrEmptyBrand, got %v", err)
	}
}

func TestSearchSendsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/search" || q.Get("brandname") != "comptia" || q.Get("course_id") != "7" ||
			q.Get("start_date") != "2024-05-01" || q.Get("region") != "UK" {
			t.Errorf("Unexpected request %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`[]`))
	})

	got, err := c.Search(context.Background(), domain.SearchQuery{
		BrandName: "comptia", CourseID: "7", StartDate: "2024-05-01", Region: "UK",
	})
	if err != nil {
		t.Fatalf(expectedNoError, err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil result, got %#v", got)
	}
}

func TestSearchByName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/searchcourse" || r.URL.Query().Get("course_name") != "CompTIA Security+" {
			t.Errorf("Unexpected request %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`[{"course_id":"1","coursename":"CompTIA Security+","price":300}]`))
	})

	got, err := c.SearchByName(context.Background(), "CompTIA Security+")
	if err != nil {
		t.Fatalf(expectedNoError, err)
	}
	if len(got) != 1 || got[0].Price != 300 {
		t.Errorf("Unexpected result %+v", got)
	}
}

func TestFetchFailures(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`},
		{"not found", http.StatusNotFound, `not found`},
		{"malformed json", http.StatusOK, `[{"coursename": }`},
		{"object instead of array", http.StatusOK, `{"error":"no brand"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			before := testutil.ToFloat64(catalogRequests.WithLabelValues("coursename", "error"))
			if _, err := c.CourseNames(context.Background(), "cisco"); err == nil {
				t.Error("Expected fetch error, got nil")
			}
			after := testutil.ToFloat64(catalogRequests.WithLabelValues("coursename", "error"))
			if after != before+1 {
				t.Errorf("Expected error counter to grow by 1, got %v -> %v", before, after)
			}
		})
	}
}

func TestFlexPrice(t *testing.T) {
	testCases := []struct {
		input    string
		expected float64
	}{
		{`100`, 100},
		{`"75.50"`, 75.5},
		{`"$1,200"`, 1200},
		{`null`, 0},
		{`"TBD"`, 0},
		{`-5`, 0},
		{`"-20"`, 0},
		{`"$-5"`, 0},
		{`"1e3"`, 1000},
		{`"1.295,00"`, 1295},
		{`"€ 99,50"`, 99.5},
		{`"USD 1,200"`, 1200},
		{`"1e999"`, 0},
		{`"NaN"`, 0},
	}

	for _, tc := range testCases {
		var p flexPrice
		if err := p.UnmarshalJSON([]byte(tc.input)); err != nil {
			t.Errorf("UnmarshalJSON(%s) error: %v", tc.input, err)
			continue
		}
		if float64(p) != tc.expected {
			t.Errorf("UnmarshalJSON(%s) = %v, want %v", tc.input, float64(p), tc.expected)
		}
	}
}
