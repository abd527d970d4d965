package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fleetreplay/fleetreplay/pkg/eventstore"
	"github.com/fleetreplay/fleetreplay/pkg/fleet"
	"github.com/fleetreplay/fleetreplay/pkg/playback"
	"github.com/gofiber/fiber/v2"
)

func makeTestApp(t *testing.T) (*fiber.App, *playback.Store) {
	t.Helper()

	trips := []*fleet.Trip{}
	for _, tripID := range []string{"trip_a", "trip_b"} {
		events := make([]fleet.FleetEvent, 0, 4)
		for i := 0; i < 4; i++ {
			events = append(events, fleet.FleetEvent{
				EventID:   fmt.Sprintf("%s_evt_%03d", tripID, i),
				EventType: "location_update",
				Timestamp: time.Date(2025, 11, 3, 8, i, 0, 0, time.UTC),
				VehicleID: "VH_TEST",
				TripID:    tripID,
				Location:  fleet.Location{Latitude: 40, Longitude: -74},
			})
		}

		trips = append(trips, &fleet.Trip{
			TripID:    tripID,
			VehicleID: "VH_TEST",
			Name:      "Test " + tripID,
			Events:    events,
		})
	}

	store := playback.NewStore(eventstore.NewStore())
	if err := store.LoadTrips(trips); err != nil {
		t.Fatalf("LoadTrips failed: %v", err)
	}

	return SetupApp(store), store
}

func requestJSON(t *testing.T, app *fiber.App, method string, path string, body string) (int, map[string]interface{}) {
	t.Helper()

	var request = httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := app.Test(request)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	responseBytes, _ := io.ReadAll(response.Body)

	decoded := map[string]interface{}{}
	json.Unmarshal(responseBytes, &decoded)

	return response.StatusCode, decoded
}

func TestAPIVersion(t *testing.T) {
	app, _ := makeTestApp(t)

	status, body := requestJSON(t, app, "GET", "/core/version", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["version"] == "" {
		t.Errorf("expected a version in the response")
	}
}

func TestListTrips(t *testing.T) {
	app, _ := makeTestApp(t)

	request := httptest.NewRequest("GET", "/core/trips", nil)
	response, err := app.Test(request)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer response.Body.Close()

	var summaries []map[string]interface{}
	responseBytes, _ := io.ReadAll(response.Body)
	if err := json.Unmarshal(responseBytes, &summaries); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(summaries))
	}
	if summaries[0]["trip_id"] != "trip_a" {
		t.Errorf("expected trip_a first, got %v", summaries[0]["trip_id"])
	}
	if summaries[0]["event_count"].(float64) != 4 {
		t.Errorf("expected event_count 4, got %v", summaries[0]["event_count"])
	}
}

func TestGetTripNotFound(t *testing.T) {
	app, _ := makeTestApp(t)

	status, _ := requestJSON(t, app, "GET", "/core/trips/trip_missing", "")
	if status != fiber.StatusNotFound {
		t.Errorf("expected 404, got %d", status)
	}
}

func TestGetTripCurrentEvent(t *testing.T) {
	app, store := makeTestApp(t)

	store.IncrementIndex("trip_a")

	status, body := requestJSON(t, app, "GET", "/core/trips/trip_a/current_event", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["event_id"] != "trip_a_evt_001" {
		t.Errorf("expected the cursor's event, got %v", body["event_id"])
	}
}

func TestTogglePlayback(t *testing.T) {
	app, store := makeTestApp(t)

	status, body := requestJSON(t, app, "POST", "/core/playback/toggle", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["is_playing"] != true {
		t.Errorf("expected playing after toggle")
	}

	if !store.GlobalState().IsPlaying {
		t.Errorf("store not playing after toggle")
	}
}

func TestSetSpeed(t *testing.T) {
	app, store := makeTestApp(t)

	status, _ := requestJSON(t, app, "POST", "/core/playback/speed", `{"multiplier": 8}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if store.GlobalState().SpeedMultiplier != 8 {
		t.Errorf("speed not applied, got %d", store.GlobalState().SpeedMultiplier)
	}

	status, _ = requestJSON(t, app, "POST", "/core/playback/speed", `{"multiplier": 7}`)
	if status != fiber.StatusBadRequest {
		t.Errorf("expected 400 for a non-step multiplier, got %d", status)
	}
}

func TestResetPlayback(t *testing.T) {
	app, store := makeTestApp(t)

	store.TogglePlayAll()
	store.IncrementIndex("trip_a")

	status, _ := requestJSON(t, app, "POST", "/core/playback/reset", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	state, _ := store.TripState("trip_a")
	if state.CurrentIndex != 0 || state.IsPlaying {
		t.Errorf("reset not applied: %+v", state)
	}
}

func TestSetActiveTrip(t *testing.T) {
	app, store := makeTestApp(t)

	status, body := requestJSON(t, app, "POST", "/core/playback/active_trip/trip_b", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["known"] != true || store.ActiveTrip() != "trip_b" {
		t.Errorf("focus not applied: %v", body)
	}

	// Focus is advisory - unknown trips are accepted but ignored
	status, body = requestJSON(t, app, "POST", "/core/playback/active_trip/trip_missing", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 for unknown focus target, got %d", status)
	}
	if body["known"] != false || store.ActiveTrip() != "trip_b" {
		t.Errorf("unknown focus target must not change the active trip: %v", body)
	}
}

func TestAnalyticsOverview(t *testing.T) {
	app, store := makeTestApp(t)

	store.IncrementIndex("trip_a")
	store.IncrementIndex("trip_a")

	status, body := requestJSON(t, app, "GET", "/core/analytics/overview", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	if body["total_trips"].(float64) != 2 {
		t.Errorf("expected 2 trips, got %v", body["total_trips"])
	}
	// (2+0)/8 = 25%
	if body["fleet_progress_percent"].(float64) != 25 {
		t.Errorf("expected fleet progress 25, got %v", body["fleet_progress_percent"])
	}
}
