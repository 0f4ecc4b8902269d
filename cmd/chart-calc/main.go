package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/chrissnell/skychart/pkg/astrotime"
	"github.com/chrissnell/skychart/pkg/ephemeris"
	"github.com/chrissnell/skychart/pkg/houses"
	"github.com/chrissnell/skychart/pkg/lunar"
)

var signs = [...]string{
	"Ari", "Tau", "Gem", "Can", "Leo", "Vir",
	"Lib", "Sco", "Sag", "Cap", "Aqu", "Pis",
}

// formatLongitude renders an ecliptic longitude as degrees and minutes within its sign
func formatLongitude(lon float64) string {
	sign := int(lon / 30)
	within := lon - float64(sign)*30
	deg := math.Floor(within)
	minutes := math.Floor((within - deg) * 60)
	return fmt.Sprintf("%2.0f° %s %02.0f'", deg, signs[sign%12], minutes)
}

func main() {
	var (
		timeStr string
		lat     float64
		lon     float64
		system  string
		debug   bool
	)
	flag.StringVar(&timeStr, "time", "", "UTC time of the chart (RFC3339 format, e.g., 2024-01-15T12:00:00Z)")
	flag.Float64Var(&lat, "lat", 0, "Geographic latitude in degrees, north positive")
	flag.Float64Var(&lon, "lon", 0, "Geographic longitude in degrees, east positive")
	flag.StringVar(&system, "system", "placidus", "House system: placidus, koch, equal, wholesign, porphyry, regiomontanus, campanus")
	flag.BoolVar(&debug, "debug", false, "Log house system fallbacks")
	flag.Parse()

	t := time.Now().UTC()
	if timeStr != "" {
		var err error
		t, err = time.Parse(time.RFC3339, timeStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing time: %v\n", err)
			os.Exit(1)
		}
	}

	hs, err := houses.ParseSystem(system)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := zap.NewNop().Sugar()
	if debug {
		if l, err := zap.NewDevelopment(); err == nil {
			logger = l.Sugar()
		}
	}

	jd := astrotime.FromTime(t)
	loc := houses.Location{Latitude: lat, Longitude: lon}

	fallback := ""
	engine := houses.NewEngine(houses.Options{}, logger).OnFallback(func(requested houses.System, _ float64, reason error) {
		fallback = fmt.Sprintf("%s unavailable (%v), using Porphyry", requested, reason)
	})

	chart, err := engine.Calculate(jd, loc, hs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error calculating houses: %v\n", err)
		os.Exit(1)
	}

	positions, err := ephemeris.CalculateAll(jd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error calculating positions: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Chart for %s (JD %.5f)\n", t.Format(time.RFC3339), jd)
	fmt.Printf("  Location:      %.4f, %.4f\n", lat, lon)
	fmt.Printf("  Obliquity:     %.4f°\n", chart.Obliquity)
	fmt.Printf("  Sidereal Time: %.4f°\n", chart.SiderealTime)
	fmt.Println()

	fmt.Println("Positions")
	for _, b := range ephemeris.AllBodies() {
		p := positions[b]
		retro := ""
		if p.IsRetrograde {
			retro = " R"
		}
		fmt.Printf("  %-10s %9.4f°  %s  lat %+8.4f°  speed %+9.4f°/d%s\n",
			b, p.Longitude, formatLongitude(p.Longitude), p.Latitude, p.LongitudeSpeed, retro)
	}
	fmt.Println()

	fmt.Printf("Houses (%s)\n", chart.System)
	if fallback != "" {
		fmt.Printf("  Note: %s\n", fallback)
	}
	fmt.Printf("  Ascendant  %9.4f°  %s\n", chart.Angles.Ascendant, formatLongitude(chart.Angles.Ascendant))
	fmt.Printf("  Midheaven  %9.4f°  %s\n", chart.Angles.Midheaven, formatLongitude(chart.Angles.Midheaven))
	for i, c := range chart.Cusps {
		fmt.Printf("  House %-4d %9.4f°  %s\n", i+1, c, formatLongitude(c))
	}

	if phase, err := lunar.Phase(jd); err == nil {
		fmt.Println()
		fmt.Printf("Moon: %s, %.1f%% illuminated\n", phase.PhaseName, phase.Illumination*100)
	}
}
