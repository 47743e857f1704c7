package endpoint

import (
	"fmt"
	"time"

	"github.com/ariebrainware/percepta/anomaly"
	"github.com/ariebrainware/percepta/middleware"
	"github.com/ariebrainware/percepta/util"
	"github.com/gin-gonic/gin"
)

// exportSignature keys the export LRU cache by everything that affects the
// rendered CSV: the snapshot generation timestamp and the full list query.
func exportSignature(fetchedAt time.Time, q anomalyListQuery) string {
	return fmt.Sprintf("%d|%s|%s|%s|%s|%s|%s|%s|%s",
		fetchedAt.UnixNano(),
		q.Filter.UserID, q.Filter.Location, q.Filter.StartDate, q.Filter.EndDate, q.Filter.Status,
		q.Search, q.SortBy, q.SortDir,
	)
}

// ExportAnomalies godoc
// @Summary      Export anomalies as CSV
// @Description  Download the filtered/sorted anomaly list as anomalies_<date>.csv
// @Tags         Anomaly
// @Produce      text/csv
// @Param        user_id query string false "Case-insensitive substring filter on user id"
// @Param        location query string false "Case-insensitive substring filter on location"
// @Param        start_date query string false "Inclusive lower bound (ISO-8601)"
// @Param        end_date query string false "Inclusive upper bound (ISO-8601)"
// @Param        status query string false "anomaly|success|all"
// @Param        keyword query string false "Search term matched against every column"
// @Param        sort query string false "Sort column"
// @Param        sort_dir query string false "asc|desc"
// @Success      200 {string} string "CSV payload"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /anomalies/export [get]
func ExportAnomalies(c *gin.Context) {
	store := middleware.GetStore(c)
	if store == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Anomaly store not available",
			Err: fmt.Errorf("store is nil"),
		})
		return
	}

	q := parseListQuery(c)
	records, _, fetchedAt := store.Snapshot()

	key := exportSignature(fetchedAt, q)
	payload, cached := util.ExportCacheGet(key)
	if !cached {
		filtered := anomaly.Filter(records, q.Filter)
		// Export the whole filtered view, not one page: page size equal to
		// the row count keeps everything on page 1.
		projection := anomaly.Project(filtered, anomaly.ProjectionQuery{
			Search:    q.Search,
			SortField: q.SortBy,
			SortDesc:  q.SortDir != "asc",
			Page:      1,
			PageSize:  len(filtered) + 1,
		})
		payload = anomaly.ExportCSV(projection.Rows, anomaly.DefaultColumns)
		util.ExportCacheSet(key, payload)
	}

	filename := fmt.Sprintf("anomalies_%s.csv", time.Now().Format("2006-01-02"))

	util.LogAuditEvent(util.AuditEvent{
		EventType: util.EventExportCSV,
		IP:        c.ClientIP(),
		Message:   fmt.Sprintf("Exported %s", filename),
		Details:   map[string]interface{}{"cached": cached, "bytes": len(payload)},
	})

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(200, "text/csv; charset=utf-8", []byte(payload))
}
