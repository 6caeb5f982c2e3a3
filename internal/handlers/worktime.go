package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"worktime-backend/internal/clock"
	"worktime-backend/internal/worktime"
)

type WorktimeHandler struct {
	Service *worktime.Service
	Logger  *logrus.Logger
}

func NewWorktimeHandler(service *worktime.Service, logger *logrus.Logger) *WorktimeHandler {
	return &WorktimeHandler{Service: service, Logger: logger}
}

type sessionResponse struct {
	In  string `json:"in"`
	Out string `json:"out,omitempty"`
}

type dayResponse struct {
	Day   time.Time         `json:"day"`
	Time  string            `json:"time"`
	Pause string            `json:"pause"`
	Logs  []sessionResponse `json:"logs"`
}

func dayToResponse(summary worktime.DaySummary) dayResponse {
	logs := make([]sessionResponse, 0, len(summary.Sessions))
	for _, session := range summary.Sessions {
		entry := sessionResponse{In: session.Login.Format("15:04:05")}
		if session.Logout != nil {
			entry.Out = session.Logout.Format("15:04:05")
		}
		logs = append(logs, entry)
	}
	return dayResponse{
		Day:   summary.Date,
		Time:  clock.FormatDuration(summary.Worked),
		Pause: clock.FormatDuration(summary.Pause),
		Logs:  logs,
	}
}

func employeeID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return 0, false
	}
	return id, true
}

func (h *WorktimeHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, worktime.ErrInvalidPeriod):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period"})
	case errors.Is(err, worktime.ErrMissingConfig):
		c.JSON(http.StatusNotFound, gin.H{"error": "employee configuration not found"})
	default:
		h.Logger.WithError(err).Error("worktime request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute worktime"})
	}
}

func (h *WorktimeHandler) Daily(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}
	dayOfYear, err := strconv.Atoi(c.Param("dayOfYear"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day of year"})
		return
	}

	now := time.Now()
	summary, err := h.Service.DailySummary(c.Request.Context(), id, now.Year(), dayOfYear, now)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"time":       clock.FormatDuration(summary.Worked),
		"inProgress": summary.InProgress,
	})
}

func (h *WorktimeHandler) Weekly(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week"})
		return
	}

	weeklyHours := 0.0
	if raw := c.Query("whrs"); raw != "" {
		weeklyHours, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid whrs"})
			return
		}
	}

	now := time.Now()
	summary, err := h.Service.WeeklySummary(c.Request.Context(), id, now.Year(), week, weeklyHours, now)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"time":           clock.FormatDuration(summary.Worked),
		"timeDifference": clock.FormatDuration(summary.Difference),
		"behind":         summary.Difference < 0,
	})
}

func (h *WorktimeHandler) Monthly(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	now := time.Now()
	year := now.Year()
	if raw := c.Query("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
	}

	summaries, err := h.Service.MonthlySummary(c.Request.Context(), id, month, year, now)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := make(map[string]dayResponse, len(summaries))
	for date, summary := range summaries {
		response[date] = dayToResponse(summary)
	}
	c.JSON(http.StatusOK, response)
}

func (h *WorktimeHandler) MonthlyTotal(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	now := time.Now()
	year := now.Year()
	if raw := c.Query("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
	}

	total, err := h.Service.MonthlyTotal(c.Request.Context(), id, month, year, now)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"time": clock.FormatDuration(total)})
}

func (h *WorktimeHandler) EmployeeData(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}

	info, err := h.Service.EmployeeData(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Overview bundles today, the current week and the current month into
// one response for the calendar page's initial load.
func (h *WorktimeHandler) Overview(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	now := time.Now()

	info, err := h.Service.EmployeeData(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	today, err := h.Service.DailySummary(ctx, id, now.Year(), now.YearDay(), now)
	if err != nil {
		h.respondError(c, err)
		return
	}

	weekly, err := h.Service.WeekSummaryForDate(ctx, id, info.WeekHours.Hours, now)
	if err != nil {
		h.respondError(c, err)
		return
	}

	monthly, err := h.Service.MonthlySummary(ctx, id, int(now.Month()), now.Year(), now)
	if err != nil {
		h.respondError(c, err)
		return
	}
	monthlyResponse := make(map[string]dayResponse, len(monthly))
	for date, summary := range monthly {
		monthlyResponse[date] = dayToResponse(summary)
	}

	c.JSON(http.StatusOK, gin.H{
		"employeeId": id,
		"today": gin.H{
			"time":       clock.FormatDuration(today.Worked),
			"inProgress": today.InProgress,
		},
		"weekly": gin.H{
			"week":           weekly.Week,
			"time":           clock.FormatDuration(weekly.Worked),
			"timeDifference": clock.FormatDuration(weekly.Difference),
		},
		"monthly": monthlyResponse,
	})
}
