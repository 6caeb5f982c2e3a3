package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"worktime-backend/internal/holiday"
)

// The computus is only defined for Gregorian years.
const (
	minHolidayYear = 1583
	maxHolidayYear = 4099
)

type HolidayHandler struct {
	Calendar *holiday.Calendar
}

func NewHolidayHandler(calendar *holiday.Calendar) *HolidayHandler {
	return &HolidayHandler{Calendar: calendar}
}

func (h *HolidayHandler) List(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	if year < minHolidayYear || year > maxHolidayYear {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year out of range"})
		return
	}

	dates := h.Calendar.ForYear(year)
	formatted := make([]string, 0, len(dates))
	for _, date := range dates {
		formatted = append(formatted, date.Format("2006-01-02"))
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "holidays": formatted})
}
