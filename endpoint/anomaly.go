package endpoint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ariebrainware/percepta/anomaly"
	"github.com/ariebrainware/percepta/middleware"
	"github.com/ariebrainware/percepta/model"
	"github.com/ariebrainware/percepta/util"
	"github.com/gin-gonic/gin"
)

type anomalyListQuery struct {
	Filter   anomaly.FilterSpec
	Search   string
	SortBy   string
	SortDir  string
	Page     int
	PageSize int
}

func parseListQuery(c *gin.Context) anomalyListQuery {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	sortBy := c.Query("sort")
	if sortBy == "" {
		// The table ships newest-first.
		sortBy = "login_time"
	}
	return anomalyListQuery{
		Filter: anomaly.FilterSpec{
			UserID:    c.Query("user_id"),
			Location:  c.Query("location"),
			StartDate: c.Query("start_date"),
			EndDate:   c.Query("end_date"),
			Status:    c.Query("status"), // supported values: anomaly, success, all
		},
		Search:   util.NormalizeKeyword(c.Query("keyword")),
		SortBy:   sortBy,                               // any record column, e.g. login_time, score
		SortDir:  strings.ToLower(c.Query("sort_dir")), // supported values: asc, desc
		Page:     page,
		PageSize: pageSize,
	}
}

// currentSettings loads the persisted settings for request handling,
// degrading to defaults when the DB is unavailable.
func currentSettings(c *gin.Context) model.Settings {
	db := middleware.GetDB(c)
	if db == nil {
		return model.DefaultSettings()
	}
	s, err := model.LoadSettings(db)
	if err != nil {
		return model.DefaultSettings()
	}
	return s
}

// shapeList derives the table view for a list query from the snapshot.
func shapeList(records []anomaly.Record, q anomalyListQuery, maxDisplay int) anomaly.Projection {
	filtered := anomaly.Filter(records, q.Filter)
	if maxDisplay > 0 && len(filtered) > maxDisplay {
		filtered = filtered[:maxDisplay]
	}
	return anomaly.Project(filtered, anomaly.ProjectionQuery{
		Search:    q.Search,
		SortField: q.SortBy,
		SortDesc:  q.SortDir != "asc",
		Page:      q.Page,
		PageSize:  q.PageSize,
	})
}

// ListAnomalies godoc
// @Summary      List anomalies
// @Description  Get a filtered, searched, sorted and paginated view of the latest anomaly snapshot
// @Tags         Anomaly
// @Produce      json
// @Param        user_id query string false "Case-insensitive substring filter on user id"
// @Param        location query string false "Case-insensitive substring filter on location"
// @Param        start_date query string false "Inclusive lower bound (ISO-8601)"
// @Param        end_date query string false "Inclusive upper bound (ISO-8601)"
// @Param        status query string false "anomaly|success|all"
// @Param        keyword query string false "Search term matched against every column"
// @Param        sort query string false "Sort column, e.g. login_time, score, user_id (default login_time)"
// @Param        sort_dir query string false "asc|desc (default desc)"
// @Param        page query int false "1-indexed page, clamped to range"
// @Param        page_size query int false "Rows per page (default 10)"
// @Success      200 {object} util.APIResponse{data=object} "Anomalies retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /anomalies [get]
func ListAnomalies(c *gin.Context) {
	store := middleware.GetStore(c)
	if store == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Anomaly store not available",
			Err: fmt.Errorf("store is nil"),
		})
		return
	}

	settings := currentSettings(c)
	records, degraded, fetchedAt := store.Snapshot()
	projection := shapeList(records, parseListQuery(c), settings.MaxAnomaliesDisplay)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Anomalies retrieved",
		Data: map[string]interface{}{
			"total":         projection.Total,
			"total_fetched": len(projection.Rows),
			"page":          projection.Page,
			"total_pages":   projection.TotalPages,
			"degraded":      degraded,
			"fetched_at":    fetchedAt,
			"anomalies":     projection.Rows,
		},
	})
}
