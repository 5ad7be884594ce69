package fixtures

// events.go — carga de eventos desde el JSON que produce el fetcher externo.
//
// Los payloads upstream no son uniformes: el mismo campo semántico llega con
// varias grafías según la fuente (market_slug/slug, winning_side/winner/
// outcome, hourly_prices/minute_prices/prices...). Toda esa variabilidad se
// resuelve aquí, en un único paso de normalización a tipos del dominio; el
// core nunca ve el schema crudo.

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/mvaldes/aurum/internal/domain"
)

// rawEvent acepta todas las grafías conocidas del payload de eventos.
type rawEvent struct {
	MarketSlug   string     `json:"market_slug"`
	Slug         string     `json:"slug"`
	Title        string     `json:"title"`
	Question     string     `json:"question"`
	WinningSide  string     `json:"winning_side"`
	Winner       string     `json:"winner"`
	Outcome      string     `json:"outcome"`
	TargetDate   string     `json:"target_date"`
	HourlyPrices []rawPrice `json:"hourly_prices"`
	MinutePrices []rawPrice `json:"minute_prices"`
	Prices       []rawPrice `json:"prices"`
}

// rawPrice acepta las grafías conocidas de una observación de precio.
// Los precios son punteros para distinguir "ausente" de 0.
type rawPrice struct {
	Timestamp int64    `json:"timestamp"`
	Time      int64    `json:"time"`
	PriceUp   *float64 `json:"price_up"`
	UpPrice   *float64 `json:"up_price"`
	YesPrice  *float64 `json:"yes_price"`
	PriceDown *float64 `json:"price_down"`
	DownPrice *float64 `json:"down_price"`
	NoPrice   *float64 `json:"no_price"`
}

// EventsFile implementa ports.EventProvider leyendo un archivo JSON.
type EventsFile struct {
	Path string
}

// NewEventsFile crea el provider para la ruta dada.
func NewEventsFile(path string) *EventsFile {
	return &EventsFile{Path: path}
}

// FetchEvents carga y normaliza los eventos del archivo, preservando el
// orden en que aparecen.
func (f *EventsFile) FetchEvents(_ context.Context) ([]domain.Event, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("fixtures.FetchEvents: read %q: %w", f.Path, err)
	}

	var raw []rawEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("fixtures.FetchEvents: parse %q: %w", f.Path, err)
	}

	events := make([]domain.Event, 0, len(raw))
	for _, r := range raw {
		events = append(events, normalizeEvent(r))
	}
	return events, nil
}

// normalizeEvent resuelve las grafías alternativas a un domain.Event.
func normalizeEvent(r rawEvent) domain.Event {
	slug := firstNonEmpty(r.MarketSlug, r.Slug)
	title := firstNonEmpty(r.Title, r.Question)

	targetDate := r.TargetDate
	if targetDate == "" {
		targetDate = ParseTargetDate(slug)
	}

	// Hora > minuto > genérico: el nivel más grueso disponible manda.
	rawPrices := r.HourlyPrices
	if len(rawPrices) == 0 {
		rawPrices = r.MinutePrices
	}
	if len(rawPrices) == 0 {
		rawPrices = r.Prices
	}

	prices := make([]domain.PricePoint, 0, len(rawPrices))
	for _, p := range rawPrices {
		up := firstPrice(p.PriceUp, p.UpPrice, p.YesPrice)
		down := firstPrice(p.PriceDown, p.DownPrice, p.NoPrice)
		if up == nil || down == nil {
			continue // observación incompleta: sin ambos lados no hay decisión
		}
		ts := p.Timestamp
		if ts == 0 {
			ts = p.Time
		}
		prices = append(prices, domain.PricePoint{
			Timestamp: time.Unix(ts, 0).UTC(),
			PriceUp:   *up,
			PriceDown: *down,
		})
	}

	return domain.Event{
		Slug:       slug,
		Title:      title,
		TargetDate: targetDate,
		Outcome:    normalizeSide(firstNonEmpty(r.WinningSide, r.Winner, r.Outcome)),
		Prices:     prices,
	}
}

// normalizeSide mapea las etiquetas de resultado conocidas a un Side.
// Las etiquetas no reconocidas se conservan tal cual: el simulador las
// detecta como inconsistencia de settlement en vez de fabricar un resultado.
func normalizeSide(s string) domain.Side {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "yes":
		return domain.SideUp
	case "down", "no":
		return domain.SideDown
	case "":
		return ""
	default:
		return domain.Side(s)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPrice(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// slugDatePattern matchea "...on-january-8-2026" al final del slug.
var slugDatePattern = regexp.MustCompile(`on-([a-z]+)-(\d{1,2})-(\d{4})`)

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// ParseTargetDate extrae la fecha objetivo "YYYY-MM-DD" de un slug tipo
// "gc-up-or-down-on-january-8-2026". Devuelve "" si no hay fecha parseable.
func ParseTargetDate(slug string) string {
	m := slugDatePattern.FindStringSubmatch(strings.ToLower(slug))
	if m == nil {
		return ""
	}
	month, ok := monthsByName[m[1]]
	if !ok {
		return ""
	}
	day := 0
	fmt.Sscanf(m[2], "%d", &day)
	year := 0
	fmt.Sscanf(m[3], "%d", &year)
	if day < 1 || day > 31 || year == 0 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}
