package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/kingdavid103/Tracking-payment6/internal/models"
	"github.com/kingdavid103/Tracking-payment6/internal/views"

	"github.com/rs/zerolog"
)

type WeatherSource interface {
	Weather(ctx context.Context, lat, lon float64) (*models.Weather, error)
}

type WeatherHandler struct {
	source WeatherSource
	logger zerolog.Logger
}

func NewWeatherHandler(source WeatherSource, logger zerolog.Logger) *WeatherHandler {
	return &WeatherHandler{source: source, logger: logger}
}

type weatherResponse struct {
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Icon        string  `json:"icon"`
}

// Weather proxies the backend weather lookup and adds the icon class.
func (h *WeatherHandler) Weather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(q.Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_coordinates", "lat and lon must be numbers")
		return
	}

	wx, err := h.source.Weather(r.Context(), lat, lon)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Weather lookup failed")
		respondWithError(w, http.StatusBadGateway, "weather_unavailable", "Weather is unavailable")
		return
	}
	respondWithJSON(w, http.StatusOK, weatherResponse{
		Temperature: wx.Temperature,
		Condition:   wx.Condition,
		Icon:        views.WeatherIcon(wx.Condition),
	})
}
