package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/logging"
	"github.com/Necromancer-Labs/voidshell/internal/ui/theme"
	"github.com/Necromancer-Labs/voidshell/internal/webapi"
)

const (
	weatherPoll  = 100 * time.Millisecond
	forecastDays = 5
)

// Forecaster fetches a forecast. *webapi.Client implements it.
type Forecaster interface {
	Forecast(ctx context.Context, city, lang string) (*webapi.Forecast, error)
}

var weatherIcons = map[string]string{
	"01": "☀",
	"02": "⛅",
	"03": "☁",
	"04": "☁",
	"09": "🌧",
	"10": "🌦",
	"11": "⛈",
	"13": "❄",
	"50": "🌫",
}

func weatherIcon(code string) string {
	if len(code) >= 2 {
		if g, ok := weatherIcons[code[:2]]; ok {
			return g
		}
	}
	return "☀"
}

// Weather fetches a forecast in the background and renders it once it
// arrives. Until then it shows a loading line.
type Weather struct {
	client Forecaster
	city   string
	lang   string
	t      i18n.Func

	cancel context.CancelFunc

	mu       sync.Mutex
	done     bool
	forecast *webapi.Forecast
	err      error
}

// NewWeather creates a lookup of city. lang is the provider language code.
func NewWeather(client Forecaster, city, lang string, t i18n.Func) *Weather {
	return &Weather{client: client, city: city, lang: lang, t: t}
}

// Step implements Task. The first step starts the fetch; later steps poll.
func (w *Weather) Step(time.Time) (time.Duration, bool) {
	if w.cancel == nil {
		ctx, cancel := context.WithCancel(context.Background())
		w.cancel = cancel
		go w.fetch(ctx)
		return weatherPoll, false
	}
	w.mu.Lock()
	done := w.done
	w.mu.Unlock()
	if !done {
		return weatherPoll, false
	}
	w.cancel()
	return 0, true
}

// Cancel implements Canceler.
func (w *Weather) Cancel() {
	if w.cancel != nil {
		w.cancel()
	}
}

func (w *Weather) fetch(ctx context.Context) {
	f, err := w.client.Forecast(ctx, w.city, w.lang)
	if err != nil {
		logging.L().Warn("weather lookup failed", zap.String("city", w.city), zap.Error(err))
	}
	w.mu.Lock()
	w.forecast, w.err, w.done = f, err, true
	w.mu.Unlock()
}

// Render implements output.Renderable.
func (w *Weather) Render(width int) string {
	w.mu.Lock()
	done, f, err := w.done, w.forecast, w.err
	w.mu.Unlock()

	switch {
	case !done:
		return theme.MutedStyle.Render(w.t("weather_fetching", i18n.Params{"city": w.city}))
	case errors.Is(err, webapi.ErrNoAPIKey):
		return theme.ErrorStyle.Render(w.t("weather_no_api_key", nil))
	case errors.Is(err, webapi.ErrCityNotFound):
		return theme.ErrorStyle.Render(w.t("weather_city_not_found", i18n.Params{"city": w.city}))
	case err != nil:
		return theme.ErrorStyle.Render(w.t("weather_fetch_error", i18n.Params{"error": err.Error()}))
	}
	return w.card(f, width)
}

func (w *Weather) card(f *webapi.Forecast, width int) string {
	now, ok := f.Current()
	if !ok {
		return theme.ErrorStyle.Render(w.t("weather_city_not_found", i18n.Params{"city": w.city}))
	}

	var b strings.Builder
	b.WriteString(theme.HeadingStyle.Render(fmt.Sprintf("%s, %s", f.City.Name, f.City.Country)))
	b.WriteString("\n")

	desc, icon := "", ""
	if len(now.Weather) > 0 {
		desc, icon = now.Weather[0].Description, now.Weather[0].Icon
	}
	fmt.Fprintf(&b, "%s  %d°C  %s\n", weatherIcon(icon), int(math.Round(now.Main.Temp)), desc)
	fmt.Fprintf(&b, "💨 %.1f m/s   💧 %d%%\n", now.Wind.Speed, now.Main.Humidity)
	rise, set := f.SunTimes()
	fmt.Fprintf(&b, "🌅 %s   🌇 %s\n\n", rise.Format("15:04"), set.Format("15:04"))
	b.WriteString(theme.HeadingStyle.Render(w.t("weather_forecast_5days", nil)))
	b.WriteString("\n")

	days := f.Daily()
	if len(days) > forecastDays {
		days = days[:forecastDays]
	}
	cols := make([]string, 0, len(days))
	col := lipgloss.NewStyle().Width(12).Align(lipgloss.Center)
	for _, d := range days {
		label := d.Date
		if t, err := time.Parse("2006-01-02", d.Date); err == nil {
			label = t.Format("Mon 02")
		}
		cols = append(cols, col.Render(fmt.Sprintf("%s\n%s\n%d° / %d°",
			label, weatherIcon(d.Icon), int(math.Round(d.TempMax)), int(math.Round(d.TempMin)))))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))

	box := theme.BoxStyle
	if width > 4 {
		box = box.MaxWidth(width)
	}
	return box.Render(b.String())
}
