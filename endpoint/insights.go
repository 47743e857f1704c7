package endpoint

import (
	"fmt"
	"time"

	"github.com/ariebrainware/percepta/anomaly"
	"github.com/ariebrainware/percepta/middleware"
	"github.com/ariebrainware/percepta/util"
	"github.com/gin-gonic/gin"
)

// GetStats godoc
// @Summary      Summary statistics
// @Description  Get total/recent/high-risk/location counts over the full snapshot (pre-filter)
// @Tags         Anomaly
// @Produce      json
// @Success      200 {object} util.APIResponse{data=anomaly.Stats} "Stats computed"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /anomalies/stats [get]
func GetStats(c *gin.Context) {
	store := middleware.GetStore(c)
	if store == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Anomaly store not available",
			Err: fmt.Errorf("store is nil"),
		})
		return
	}

	settings := currentSettings(c)
	thresholds := anomaly.TableThresholds.WithHigh(settings.RiskThreshold)

	records, degraded, fetchedAt := store.Snapshot()
	stats := anomaly.Summarize(records, time.Now(), thresholds)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Stats computed",
		Data: map[string]interface{}{
			"stats":      stats,
			"degraded":   degraded,
			"fetched_at": fetchedAt,
		},
	})
}

// GetTimeline godoc
// @Summary      Hourly timeline
// @Description  Get 24 hourly buckets of anomaly counts for the chart, oldest first
// @Tags         Anomaly
// @Produce      json
// @Success      200 {object} util.APIResponse{data=object} "Timeline computed"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /anomalies/timeline [get]
func GetTimeline(c *gin.Context) {
	store := middleware.GetStore(c)
	if store == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Anomaly store not available",
			Err: fmt.Errorf("store is nil"),
		})
		return
	}

	settings := currentSettings(c)
	thresholds := anomaly.TableThresholds.WithHigh(settings.RiskThreshold)

	records, _, _ := store.Snapshot()
	buckets := anomaly.HourlyBuckets(records, time.Now(), thresholds)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Timeline computed",
		Data: map[string]interface{}{"buckets": buckets},
	})
}

// GetAnalytics godoc
// @Summary      Ranged analytics report
// @Description  Get location/device tallies, risk distribution and average score for a time range
// @Tags         Anomaly
// @Produce      json
// @Param        range query string false "24h|7d|30d|90d (default 7d)"
// @Success      200 {object} util.APIResponse{data=anomaly.Report} "Analytics computed"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /anomalies/analytics [get]
func GetAnalytics(c *gin.Context) {
	store := middleware.GetStore(c)
	if store == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Anomaly store not available",
			Err: fmt.Errorf("store is nil"),
		})
		return
	}

	settings := currentSettings(c)
	thresholds := anomaly.AnalyticsThresholds.WithHigh(settings.RiskThreshold)

	records, _, _ := store.Snapshot()
	report := anomaly.Analyze(records, time.Now(), c.DefaultQuery("range", "7d"), thresholds)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Analytics computed",
		Data: report,
	})
}
