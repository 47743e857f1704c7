package endpoint

import (
	"fmt"

	"github.com/ariebrainware/percepta/middleware"
	"github.com/ariebrainware/percepta/model"
	"github.com/ariebrainware/percepta/util"
	"github.com/gin-gonic/gin"
)

type updateSettingsRequest struct {
	APIURL              string  `json:"apiUrl" example:"http://localhost:8000"`
	RefreshInterval     int     `json:"refreshInterval" example:"5"`
	EnableNotifications bool    `json:"enableNotifications" example:"true"`
	EnableAutoRefresh   bool    `json:"enableAutoRefresh" example:"true"`
	DarkMode            bool    `json:"darkMode" example:"true"`
	ShowAdvancedMetrics bool    `json:"showAdvancedMetrics" example:"false"`
	MaxAnomaliesDisplay int     `json:"maxAnomaliesDisplay" example:"100"`
	RiskThreshold       float64 `json:"riskThreshold" example:"0.7"`
}

// GetSettings godoc
// @Summary      Get dashboard settings
// @Description  Read the persisted settings object, falling back to defaults when none saved
// @Tags         Settings
// @Produce      json
// @Success      200 {object} util.APIResponse{data=model.Settings} "Settings retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /settings [get]
func GetSettings(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	settings, err := model.LoadSettings(db)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to load settings",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Settings retrieved",
		Data: settings,
	})
}

// UpdateSettings godoc
// @Summary      Save dashboard settings
// @Description  Persist the full settings object under the fixed key
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        settings body updateSettingsRequest true "Settings payload"
// @Success      200 {object} util.APIResponse{data=model.Settings} "Settings saved"
// @Failure      400 {object} util.APIResponse "Invalid payload"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /settings [put]
func UpdateSettings(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid settings payload",
			Err: err,
		})
		return
	}
	if req.RiskThreshold < 0 || req.RiskThreshold > 1 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "riskThreshold must be between 0 and 1",
			Err: fmt.Errorf("riskThreshold out of range: %v", req.RiskThreshold),
		})
		return
	}
	if req.RefreshInterval < 1 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "refreshInterval must be at least 1 minute",
			Err: fmt.Errorf("refreshInterval out of range: %d", req.RefreshInterval),
		})
		return
	}

	saved, err := model.SaveSettings(db, model.Settings{
		APIURL:              req.APIURL,
		RefreshInterval:     req.RefreshInterval,
		EnableNotifications: req.EnableNotifications,
		EnableAutoRefresh:   req.EnableAutoRefresh,
		DarkMode:            req.DarkMode,
		ShowAdvancedMetrics: req.ShowAdvancedMetrics,
		MaxAnomaliesDisplay: req.MaxAnomaliesDisplay,
		RiskThreshold:       req.RiskThreshold,
	})
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to save settings",
			Err: err,
		})
		return
	}

	util.LogAuditEvent(util.AuditEvent{
		EventType: util.EventSettingsSaved,
		IP:        c.ClientIP(),
		Message:   "Dashboard settings saved",
	})

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Settings saved",
		Data: saved,
	})
}

// ResetSettings godoc
// @Summary      Reset dashboard settings
// @Description  Restore the hard-coded default settings and persist them
// @Tags         Settings
// @Produce      json
// @Success      200 {object} util.APIResponse{data=model.Settings} "Settings reset"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /settings/reset [post]
func ResetSettings(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	settings, err := model.ResetSettings(db)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to reset settings",
			Err: err,
		})
		return
	}

	util.LogAuditEvent(util.AuditEvent{
		EventType: util.EventSettingsReset,
		IP:        c.ClientIP(),
		Message:   "Dashboard settings reset to defaults",
	})

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Settings reset",
		Data: settings,
	})
}
