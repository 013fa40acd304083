package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"stepping_debug/internal/service"
	"stepping_debug/internal/timeline"

	"github.com/gin-gonic/gin"
)

const (
	minChartHeight = 100
	maxChartHeight = 4000
	chartTitle     = "stepping"
)

// RangeDTO is an interval with both raw milliseconds and display strings.
type RangeDTO struct {
	Min    int64  `json:"min" example:"1700000000000"`
	Max    int64  `json:"max" example:"1700000060000"`
	MinStr string `json:"min_str" example:"2023-11-14T22:13:20.000Z"`
	MaxStr string `json:"max_str" example:"2023-11-14T22:14:20.000Z"`
}

func newRangeDTO(iv *timeline.Interval) *RangeDTO {
	if iv == nil {
		return nil
	}
	return &RangeDTO{
		Min:    iv.MinMs,
		Max:    iv.MaxMs,
		MinStr: timeline.FormatBound(iv.MinMs),
		MaxStr: timeline.FormatBound(iv.MaxMs),
	}
}

// TimelineResponse is the filtered timeline. Extent and Interval are null when there is no data.
type TimelineResponse struct {
	Extent   *RangeDTO           `json:"extent"`
	Interval *RangeDTO           `json:"interval"`
	Count    int                 `json:"count"`
	Rows     []timeline.ChartRow `json:"rows"`
}

func rangeFilter(c *gin.Context) service.RangeFilter {
	return service.RangeFilter{From: c.Query("from"), To: c.Query("to")}
}

// loadRange runs the timeline query for the request's from/to and writes the error response itself.
func (h *Handler) loadRange(c *gin.Context) (service.TimelineResult, bool) {
	f := rangeFilter(c)
	res, err := h.services.Timeline.Rows(c.Request.Context(), f)
	if err != nil {
		if errors.Is(err, timeline.ErrInvalidInterval) {
			if h.log != nil {
				h.log.Infow("timeline_invalid_range", "from", f.From, "to", f.To, "err", err)
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidRange})
			return service.TimelineResult{}, false
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadTimeline, "timeline_load_failed", err,
			"from", f.From, "to", f.To)
		return service.TimelineResult{}, false
	}
	return res, true
}

// @Summary      Stepping timeline
// @Description  Events whose start lies in [from, to], both inclusive. Missing bounds default to the data extent.
// @Tags         timeline
// @Produce      json
// @Param        from  query     string  false  "Lower bound (RFC3339, 'YYYY-MM-DD HH:MM:SS', 'YYYY-MM-DD' or unix ms)"  example(2025-08-01)
// @Param        to    query     string  false  "Upper bound, same formats as from"  example(2025-08-31)
// @Success      200   {object}  TimelineResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/stepping/timeline [get]
// @Security     BearerAuth
func (h *Handler) getTimeline(c *gin.Context) {
	res, ok := h.loadRange(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, TimelineResponse{
		Extent:   newRangeDTO(res.Extent),
		Interval: newRangeDTO(res.Interval),
		Count:    len(res.Rows),
		Rows:     res.Rows,
	})
}

// @Summary      Stepping timeline as a DataTable
// @Description  Google Visualization DataTable literal with Location, Event, Start and End columns.
// @Tags         timeline
// @Produce      json
// @Param        from  query     string  false  "Lower bound"
// @Param        to    query     string  false  "Upper bound"
// @Success      200   {object}  timeline.DataTableLiteral
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/stepping/timeline/datatable [get]
// @Security     BearerAuth
func (h *Handler) getDataTable(c *gin.Context) {
	res, ok := h.loadRange(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, timeline.DataTable(res.Rows))
}

// @Summary      Stepping timeline chart
// @Tags         timeline
// @Produce      png
// @Param        from    query  string   false  "Lower bound"
// @Param        to      query  string   false  "Upper bound"
// @Param        height  query  integer  false  "Image height in pixels"  minimum(100)  maximum(4000)
// @Success      200
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /api/v1/stepping/timeline/chart.png [get]
// @Security     BearerAuth
func (h *Handler) getChartPNG(c *gin.Context) {
	opts := timeline.RenderOptions{Title: chartTitle}
	if s := c.Query("height"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < minChartHeight || v > maxChartHeight {
			c.JSON(http.StatusBadRequest, gin.H{"error": "height must be an integer in [100, 4000]"})
			return
		}
		opts.Height = v
	}

	res, ok := h.loadRange(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := timeline.RenderPNG(&buf, res.Rows, opts); err != nil {
		if errors.Is(err, timeline.ErrNothingToRender) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no events in range"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errRenderChart, "timeline_render_failed", err,
			"rows", len(res.Rows))
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
