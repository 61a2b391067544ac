package chargers

import (
	"net/http"
	"strconv"
	"time"

	"chargewatch-backend/lib/timezone"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the REST surface the dashboard and CLI talk to.
// Only input validation errors surface as HTTP errors; every scrape
// failure is already folded into the record itself.
func (s Service) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.GET("/charger-status", s.getChargerStatus)
	v1.POST("/charger-status", s.postChargerStatus)
	v1.GET("/charger-status/all", s.getAllChargerStatus)
	v1.GET("/charger-status/history", s.getChargerHistory)
	v1.GET("/chargers", s.searchChargers)
}

// history is served from local midnight, matching what the dashboard's
// day view shows
func timezoneDayStart() time.Time {
	now := timezone.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, timezone.Location)
}

func bypassCacheParam(c *gin.Context) bool {
	bypass, err := strconv.ParseBool(c.DefaultQuery("bypassCache", "false"))
	if err != nil {
		return false
	}
	return bypass
}

func (s Service) getChargerStatus(c *gin.Context) {
	chargerId := c.Query("chargerId")
	if chargerId == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chargerId is required"})
		return
	}

	record := s.Resolve(c.Request.Context(), chargerId, bypassCacheParam(c))
	c.JSON(http.StatusOK, record)
}

type setStatusRequest struct {
	ChargerID string `json:"chargerId"`
	Status    string `json:"status"`
}

func (s Service) postChargerStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}

	record, err := s.SetStatus(c.Request.Context(), req.ChargerID, req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"record":  record,
	})
}

func (s Service) getAllChargerStatus(c *gin.Context) {
	records := s.ResolveAll(c.Request.Context(), bypassCacheParam(c))
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (s Service) getChargerHistory(c *gin.Context) {
	chargerId := c.Query("chargerId")
	if chargerId == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chargerId is required"})
		return
	}
	if s.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "status history is not enabled"})
		return
	}

	since := timezoneDayStart()
	snapshots, err := s.history.Pull(c.Request.Context(), chargerId, since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"chargerId": chargerId,
		"since":     since,
		"snapshots": snapshots,
	})
}

func (s Service) searchChargers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	matches := s.registry.Search(query)
	results := make([]gin.H, len(matches))
	for i, m := range matches {
		results[i] = gin.H{
			"chargerId": m.ID,
			"location":  m.Charger.Location,
			"address":   m.Charger.Address,
			"plugType":  m.Charger.PlugType,
			"power":     m.Charger.Power,
			"score":     m.Score,
		}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
