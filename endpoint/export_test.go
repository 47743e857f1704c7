package endpoint

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/ariebrainware/percepta/util"
)

func TestExportAnomalies(t *testing.T) {
	util.InitExportCache(8)
	router, _, _ := newTestEnv(t, "http://localhost:0")

	w := performRequest(router, "GET", "/anomalies/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if got := w.Header().Get("Content-Type"); got != "text/csv; charset=utf-8" {
		t.Errorf("unexpected Content-Type: %q", got)
	}
	wantDisposition := fmt.Sprintf(`attachment; filename="anomalies_%s.csv"`, time.Now().Format("2006-01-02"))
	if got := w.Header().Get("Content-Disposition"); got != wantDisposition {
		t.Errorf("unexpected Content-Disposition: %q", got)
	}

	lines := strings.Split(w.Body.String(), "\n")
	if lines[0] != "ID,User ID,Timestamp,IP Address,Location,Device,Action,Score,Top Feature,Message" {
		t.Errorf("unexpected header row: %q", lines[0])
	}
	// Header plus all five fixture rows, no trailing newline.
	if len(lines) != 6 {
		t.Errorf("expected 6 lines, got %d", len(lines))
	}
}

func TestExportAnomaliesFiltered(t *testing.T) {
	util.InitExportCache(8)
	router, _, _ := newTestEnv(t, "http://localhost:0")

	w := performRequest(router, "GET", "/anomalies/export?status=anomaly", nil)
	lines := strings.Split(w.Body.String(), "\n")
	if len(lines) != 4 {
		t.Errorf("expected header plus 3 anomaly rows, got %d lines", len(lines))
	}
	for _, line := range lines[1:] {
		if strings.Contains(line, "user_002") || strings.Contains(line, "user_004") {
			t.Errorf("success record leaked into anomaly export: %q", line)
		}
	}
}

func TestExportAnomaliesExportsAllPages(t *testing.T) {
	util.InitExportCache(8)
	router, _, _ := newTestEnv(t, "http://localhost:0")

	// page/page_size must not truncate the export.
	w := performRequest(router, "GET", "/anomalies/export?page=2&page_size=1", nil)
	lines := strings.Split(w.Body.String(), "\n")
	if len(lines) != 6 {
		t.Errorf("expected all rows regardless of pagination, got %d lines", len(lines))
	}
}

func TestExportAnomaliesServedFromCache(t *testing.T) {
	util.InitExportCache(8)
	router, _, _ := newTestEnv(t, "http://localhost:0")

	first := performRequest(router, "GET", "/anomalies/export?status=anomaly", nil)
	second := performRequest(router, "GET", "/anomalies/export?status=anomaly", nil)

	if first.Body.String() != second.Body.String() {
		t.Error("expected identical payload for repeated export of the same snapshot")
	}
}

func TestExportAnomaliesEmptySnapshot(t *testing.T) {
	util.InitExportCache(8)
	router, _, store := newTestEnv(t, "http://localhost:0")

	store.Commit(store.Begin(), nil, false, time.Now())

	w := performRequest(router, "GET", "/anomalies/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty export, got %d", w.Code)
	}
	if strings.Count(w.Body.String(), "\n") != 0 {
		t.Errorf("expected header-only payload, got %q", w.Body.String())
	}
}
