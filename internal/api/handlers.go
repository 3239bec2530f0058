package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"weatherapp/internal/apperr"
	"weatherapp/internal/geocode"
	"weatherapp/internal/storage"
	"weatherapp/internal/weather"

	"github.com/gin-gonic/gin"
)

// minAutocompleteRunes is the shortest query forwarded to the provider.
const minAutocompleteRunes = 3

func (s *Server) autocompleteHandler(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if utf8.RuneCountInString(query) < minAutocompleteRunes {
		c.JSON(http.StatusOK, gin.H{"suggestions": []geocode.Suggestion{}})
		return
	}

	suggestions, err := s.geocoder.Autocomplete(c.Request.Context(), query)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (s *Server) geocodeHandler(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query"})
		return
	}

	location, err := s.resolver.Resolve(c.Request.Context(), query)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

func (s *Server) weatherHandler(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing lat/lon"})
		return
	}
	unit := c.DefaultQuery("unit", weather.UnitFahrenheit)

	forecast, err := s.weather.CurrentAndForecast(c.Request.Context(), lat, lon, unit)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location": gin.H{"lat": lat, "lon": lon},
		"unit":     forecast.Unit,
		"current":  forecast.Current,
		"daily":    forecast.Daily,
	})
}

func (s *Server) weatherRangeHandler(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing lat/lon"})
		return
	}
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if err := storage.ValidateRange(startDate, endDate); err != nil {
		s.renderError(c, err)
		return
	}
	unit := weather.NormalizeUnit(c.DefaultQuery("unit", weather.UnitFahrenheit))

	days, err := s.weather.DailyRange(c.Request.Context(), lat, lon, startDate, endDate, unit)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location": gin.H{"lat": lat, "lon": lon},
		"unit":     unit,
		"daily":    days,
	})
}

type createRequestBody struct {
	Query     string   `json:"query"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Label     string   `json:"label"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Unit      string   `json:"unit"`
}

func (s *Server) createRequestHandler(c *gin.Context) {
	var body createRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if body.StartDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing field: start_date"})
		return
	}
	if body.EndDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing field: end_date"})
		return
	}

	var location *geocode.Location
	if body.Lat != nil && body.Lon != nil {
		label := body.Label
		if label == "" {
			label = fmt.Sprintf("%v,%v", *body.Lat, *body.Lon)
		}
		location = &geocode.Location{Label: label, Lat: *body.Lat, Lon: *body.Lon}
	} else {
		query := strings.TrimSpace(body.Query)
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Provide query or lat/lon"})
			return
		}
		resolved, err := s.resolver.Resolve(c.Request.Context(), query)
		if err != nil {
			s.renderError(c, err)
			return
		}
		location = resolved
	}

	unit := body.Unit
	if unit == "" {
		unit = weather.UnitFahrenheit
	}

	id, err := s.db.CreateRequest(location.Label, location.Lat, location.Lon, body.StartDate, body.EndDate, unit)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "Saved"})
}

func (s *Server) listRequestsHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))

	requests, err := s.db.ListRequests(limit)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (s *Server) getRequestHandler(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	request, err := s.db.GetRequest(id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

type updateRequestBody struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Unit      *string `json:"unit"`
}

func (s *Server) updateRequestHandler(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	var body updateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	if err := s.db.UpdateRequest(id, body.StartDate, body.EndDate, body.Unit); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

func (s *Server) deleteRequestHandler(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	if err := s.db.DeleteRequest(id); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// requestWeatherHandler fetches the daily range a saved request describes.
func (s *Server) requestWeatherHandler(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	request, err := s.db.GetRequest(id)
	if err != nil {
		s.renderError(c, err)
		return
	}

	days, err := s.weather.DailyRange(
		c.Request.Context(),
		request.Location.Lat,
		request.Location.Lon,
		request.StartDate,
		request.EndDate,
		request.Unit,
	)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request_id": request.ID,
		"location":   request.Location,
		"unit":       request.Unit,
		"daily":      days,
	})
}

type relabelLocationBody struct {
	Label string `json:"label"`
}

func (s *Server) relabelLocationHandler(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	var body relabelLocationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	label := strings.TrimSpace(body.Label)
	if label == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "label required"})
		return
	}

	if err := s.db.RelabelLocation(id, label); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

func (s *Server) pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func (s *Server) renderError(c *gin.Context, err error) {
	c.JSON(httpStatus(err), gin.H{"error": err.Error()})
}

func httpStatus(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindRateLimited:
		return http.StatusTooManyRequests
	case apperr.KindProvider:
		return http.StatusBadGateway
	case apperr.KindConfiguration:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
