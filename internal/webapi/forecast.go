package webapi

import (
	"sort"
	"strings"
	"time"
)

// Forecast is the subset of the OpenWeatherMap forecast response we render.
type Forecast struct {
	List []Slot `json:"list"`
	City City   `json:"city"`
}

// City describes the forecast location.
type City struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

// Slot is one 3-hour forecast entry.
type Slot struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []Condition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	DtTxt string `json:"dt_txt"`
}

// Condition is a weather code and its description.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Day is the forecast for one calendar day, folded from its slots.
type Day struct {
	Date    string // YYYY-MM-DD
	TempMin float64
	TempMax float64
	Weather string // most frequent condition
	Icon    string // most frequent icon
}

// Daily groups the slots by date. The condition and icon of a day are the
// ones seen most often; ties go to the alphabetically first.
func (f *Forecast) Daily() []Day {
	type acc struct {
		temps    []float64
		weathers map[string]int
		icons    map[string]int
	}
	byDate := map[string]*acc{}
	var order []string

	for _, s := range f.List {
		date, _, _ := strings.Cut(s.DtTxt, " ")
		a, ok := byDate[date]
		if !ok {
			a = &acc{weathers: map[string]int{}, icons: map[string]int{}}
			byDate[date] = a
			order = append(order, date)
		}
		a.temps = append(a.temps, s.Main.Temp)
		if len(s.Weather) > 0 {
			a.weathers[s.Weather[0].Main]++
			a.icons[s.Weather[0].Icon]++
		}
	}

	days := make([]Day, 0, len(order))
	for _, date := range order {
		a := byDate[date]
		d := Day{Date: date, TempMin: a.temps[0], TempMax: a.temps[0]}
		for _, t := range a.temps {
			if t < d.TempMin {
				d.TempMin = t
			}
			if t > d.TempMax {
				d.TempMax = t
			}
		}
		d.Weather = mostCommon(a.weathers)
		d.Icon = mostCommon(a.icons)
		days = append(days, d)
	}
	return days
}

// Current returns the first slot, or false when the list is empty.
func (f *Forecast) Current() (Slot, bool) {
	if len(f.List) == 0 {
		return Slot{}, false
	}
	return f.List[0], true
}

// SunTimes returns sunrise and sunset in the local zone.
func (f *Forecast) SunTimes() (time.Time, time.Time) {
	return time.Unix(f.City.Sunrise, 0), time.Unix(f.City.Sunset, 0)
}

func mostCommon(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best, n := "", 0
	for _, k := range keys {
		if counts[k] > n {
			best, n = k, counts[k]
		}
	}
	return best
}
