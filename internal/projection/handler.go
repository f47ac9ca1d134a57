package projection

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httperr "github.com/warp-lab/warp-indexer/internal/core/errors"
	"github.com/warp-lab/warp-indexer/internal/core/storage"
)

// RegisterRoutes registers all query API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/metrics", s.HandleListMetrics)
	r.GET("/v1/metrics/:metric", s.HandleQueryMetric)
	r.GET("/v1/indexer/checkpoint", s.HandleCheckpoint)
}

// HandleQueryMetric handles GET /v1/metrics/:metric
// Query parameters: resolution, start, end
func (s *Service) HandleQueryMetric(c *gin.Context) {
	var uri struct {
		Metric string `uri:"metric" binding:"required"`
	}
	var query struct {
		Resolution string    `form:"resolution"`
		Start      time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
		End        time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	}

	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.QueryMetric(c.Request.Context(), MetricQueryRequest{
		Metric:     uri.Metric,
		Resolution: query.Resolution,
		Start:      query.Start,
		End:        query.End,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidQuery):
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidQueryError,
				Message:   "Invalid metric query",
				Details:   err.Error(),
			})
		case errors.Is(err, ErrUnknownMetric):
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{
				ErrorType: httperr.HttpMetricNotFoundError,
				Message:   "Metric is not configured",
				Details:   err.Error(),
			})
		case errors.Is(err, storage.ErrStoreRead):
			c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
				ErrorType: httperr.HttpStoreUnavailableError,
				Message:   "Metric store unavailable",
				Details:   err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
				ErrorType: httperr.HttpInternalError,
				Message:   "Failed to query metric",
				Details:   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleListMetrics handles GET /v1/metrics
func (s *Service) HandleListMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"metrics": s.ListMetrics()})
}

// HandleCheckpoint handles GET /v1/indexer/checkpoint
func (s *Service) HandleCheckpoint(c *gin.Context) {
	resp, err := s.Checkpoint(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
			ErrorType: httperr.HttpCheckpointUnknownError,
			Message:   "Failed to read checkpoint",
			Details:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, resp)
}
