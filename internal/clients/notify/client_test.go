package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSchedule_SendsPayload(t *testing.T) {
	var capturedMethod, capturedPath, capturedAuth string
	var captured scheduleRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedMethod = r.Method
		capturedPath = r.URL.Path
		capturedAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&captured)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithAPIKey("secret"))
	err := client.Schedule(context.Background(), "tmpl-1", "Rent due", "Pay the rent", 5, 9, 0)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	if capturedMethod != http.MethodPut {
		t.Errorf("expected PUT, got %s", capturedMethod)
	}
	if capturedPath != "/v1/schedules" {
		t.Errorf("expected path /v1/schedules, got %s", capturedPath)
	}
	if capturedAuth != "Bearer secret" {
		t.Errorf("expected bearer auth, got %q", capturedAuth)
	}
	if captured.ScheduleID != "tmpl-1" {
		t.Errorf("expected schedule_id tmpl-1, got %s", captured.ScheduleID)
	}
	if captured.Day != 5 || captured.Hour != 9 || captured.Minute != 0 {
		t.Errorf("unexpected timing fields: %+v", captured)
	}
}

func TestSchedule_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad schedule", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	err := client.Schedule(context.Background(), "tmpl-1", "t", "b", 1, 0, 0)
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
}

func TestCancel_MissingReminderIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	if err := client.Cancel(context.Background(), "tmpl-unknown"); err != nil {
		t.Fatalf("Cancel should tolerate 404: %v", err)
	}
}
