package strava

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetAllActivitiesPaginates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/athlete/activities" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		switch r.URL.Query().Get("page") {
		case "1":
			w.Write([]byte(pageJSON(1, 100)))
		case "2":
			w.Write([]byte(pageJSON(101, 130)))
		default:
			w.Write([]byte("[]"))
		}
	}))
	defer server.Close()

	c := NewClientWithBase(server.Client(), server.URL)
	c.rateLimiter.minInterval = 0

	activities, err := c.GetAllActivities(context.Background(), time.Time{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(activities) != 130 {
		t.Errorf("got %d activities, want 130", len(activities))
	}
	if activities[0].GearID != "b1" || activities[0].StartDate != "2024-03-01T08:00:00Z" {
		t.Errorf("first activity = %+v", activities[0])
	}
}

func TestGetLatestActivityEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	c := NewClientWithBase(server.Client(), server.URL)
	c.rateLimiter.minInterval = 0

	latest, err := c.GetLatestActivity(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if latest != nil {
		t.Errorf("expected nil for an athlete with no activities, got %+v", latest)
	}
}

func TestGetGear(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gear/b1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":"b1","name":"Gravel Bike","brand_name":"Canyon","model_name":"Grizl","distance":1234000,"retired":false}`))
	}))
	defer server.Close()

	c := NewClientWithBase(server.Client(), server.URL)
	c.rateLimiter.minInterval = 0

	g, err := c.GetGear(context.Background(), "b1")
	if err != nil {
		t.Fatal(err)
	}
	if g.Name != "Gravel Bike" || g.Distance != 1234000 {
		t.Errorf("got %+v", g)
	}
}

func TestGetJSONErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Rate Limit Exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClientWithBase(server.Client(), server.URL)
	c.rateLimiter.minInterval = 0

	if _, err := c.GetAthlete(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func pageJSON(from, to int) string {
	out := "["
	for i := from; i <= to; i++ {
		if i > from {
			out += ","
		}
		out += fmt.Sprintf(`{"id":%d,"gear_id":"b1","sport_type":"Ride","start_date":"2024-03-01T08:00:00Z","distance":10000}`, i)
	}
	return out + "]"
}
