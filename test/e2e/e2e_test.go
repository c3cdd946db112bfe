//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/joho/godotenv"
)

const defaultBaseURL = "http://localhost:8080/api/v1"

var (
	baseURL   string
	courseUID string
	draftID   string
)

func TestMain(m *testing.M) {
	// Load .env if present (ignore error)
	_ = godotenv.Load("../../.env")

	baseURL = os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	os.Exit(m.Run())
}

// ─── Helpers ────────────────────────────────────────────────────────

type apiResponse struct {
	Data  map[string]json.RawMessage `json:"data"`
	Error *struct {
		Code     string              `json:"code"`
		Message  string              `json:"message"`
		Fields   map[string]string   `json:"fields"`
		Meetings map[string][]string `json:"meetings"`
	} `json:"error"`
}

func doRequest(t *testing.T, method, path string, body any) (int, apiResponse, http.Header) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var parsed apiResponse
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(raw, &parsed)
	}
	return resp.StatusCode, parsed, resp.Header
}

func courseBody(title string) map[string]any {
	return map[string]any{
		"title":           title,
		"backgroundColor": "#99CCFF",
		"meetingTimes": []map[string]any{
			{
				"courseType": "Lecture",
				"instructor": "Dr. Chen",
				"location":   "Hall B",
				"startHour":  9,
				"endHour":    10,
				"endMinute":  30,
				"days":       map[string]any{"monday": true, "wednesday": true},
			},
		},
	}
}

// ─── Tests (ordered) ────────────────────────────────────────────────

func TestE2E_01_Health(t *testing.T) {
	resp, err := http.Get(strings.TrimSuffix(baseURL, "/api/v1") + "/health")
	if err != nil {
		t.Fatalf("health check: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestE2E_02_ResetSchedule(t *testing.T) {
	payload := map[string]any{
		"schedule": map[string]any{"title": "E2E Schedule", "items": []any{}},
	}
	code, _, _ := doRequest(t, http.MethodPost, "/transfer/import", payload)
	if code != http.StatusOK {
		t.Fatalf("import reset failed: %d", code)
	}
}

func TestE2E_03_UpdateTitle(t *testing.T) {
	code, body, _ := doRequest(t, http.MethodPut, "/schedule/title",
		map[string]any{"title": "E2E Term"})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%+v)", code, body.Error)
	}
}

func TestE2E_04_CreateCourse(t *testing.T) {
	code, body, _ := doRequest(t, http.MethodPost, "/schedule/courses", courseBody("Algorithms"))
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%+v)", code, body.Error)
	}

	var course struct {
		UID string `json:"uid"`
	}
	if err := json.Unmarshal(body.Data["course"], &course); err != nil {
		t.Fatalf("parse course: %v", err)
	}
	if course.UID == "" {
		t.Fatal("expected assigned course uid")
	}
	courseUID = course.UID
}

func TestE2E_05_CreateCourseValidation(t *testing.T) {
	code, body, _ := doRequest(t, http.MethodPost, "/schedule/courses", courseBody(""))
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
	if body.Error == nil || body.Error.Fields["title"] == "" {
		t.Fatal("expected title field error")
	}
}

func TestE2E_06_EditorFlow(t *testing.T) {
	code, body, _ := doRequest(t, http.MethodPost, "/editor/drafts",
		map[string]any{"courseUid": courseUID})
	if code != http.StatusCreated {
		t.Fatalf("open draft: expected 201, got %d", code)
	}

	var draft struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body.Data["draft"], &draft); err != nil {
		t.Fatalf("parse draft: %v", err)
	}
	draftID = draft.ID

	code, _, _ = doRequest(t, http.MethodPut, "/editor/drafts/"+draftID,
		courseBody("Advanced Algorithms"))
	if code != http.StatusOK {
		t.Fatalf("update draft: expected 200, got %d", code)
	}

	code, body, _ = doRequest(t, http.MethodPost, "/editor/drafts/"+draftID+"/save", nil)
	if code != http.StatusOK {
		t.Fatalf("save draft: expected 200, got %d (%+v)", code, body.Error)
	}
}

func TestE2E_07_Settings(t *testing.T) {
	code, _, _ := doRequest(t, http.MethodPut, "/settings", map[string]any{
		"startDay":      "monday",
		"clockType":     "24h",
		"timeIncrement": "30m",
		"theme":         "light",
	})
	if code != http.StatusOK {
		t.Fatalf("update settings: expected 200, got %d", code)
	}
}

func TestE2E_08_Layout(t *testing.T) {
	code, body, _ := doRequest(t, http.MethodGet, "/layout", nil)
	if code != http.StatusOK {
		t.Fatalf("layout: expected 200, got %d", code)
	}

	var snap struct {
		Days   []string `json:"days"`
		Events []struct {
			ID string `json:"id"`
		} `json:"events"`
	}
	if err := json.Unmarshal(body.Data["layout"], &snap); err != nil {
		t.Fatalf("parse layout: %v", err)
	}
	if len(snap.Days) != 7 || snap.Days[0] != "Monday" {
		t.Fatalf("expected monday-start week, got %v", snap.Days)
	}
	if len(snap.Events) == 0 {
		t.Fatal("expected expanded events")
	}

	code, _, _ = doRequest(t, http.MethodPost, "/layout/measurements", map[string]any{
		"measurements": map[string]float64{snap.Events[0].ID: 200},
	})
	if code != http.StatusOK {
		t.Fatalf("measurements: expected 200, got %d", code)
	}
}

func TestE2E_09_Export(t *testing.T) {
	code, _, headers := doRequest(t, http.MethodGet, "/transfer/export", nil)
	if code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", code)
	}
	if !strings.Contains(headers.Get("Content-Disposition"), ".json") {
		t.Fatalf("expected json attachment, got %q", headers.Get("Content-Disposition"))
	}
}

func TestE2E_10_ExportImage(t *testing.T) {
	resp, err := http.Get(baseURL + "/transfer/export/image")
	if err != nil {
		t.Fatalf("image export: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("expected image/png, got %q", resp.Header.Get("Content-Type"))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read image: %v", err)
	}
	if len(raw) < 8 || string(raw[1:4]) != "PNG" {
		t.Fatal("response is not a PNG")
	}
}

func TestE2E_11_DeleteCourse(t *testing.T) {
	if courseUID == "" {
		t.Skip("no course created")
	}
	code, _, _ := doRequest(t, http.MethodDelete, "/schedule/courses/"+courseUID, nil)
	if code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", code)
	}

	code, _, _ = doRequest(t, http.MethodDelete, "/schedule/courses/"+courseUID, nil)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", code)
	}
}
