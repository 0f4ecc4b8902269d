package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/chrissnell/skychart/pkg/astrotime"
	"github.com/chrissnell/skychart/pkg/config"
	"github.com/chrissnell/skychart/pkg/obliquity"
)

func main() {
	yamlFile := flag.String("yaml", "", "Path to YAML configuration file")
	flag.Parse()

	if *yamlFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -yaml <skychart.yaml>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	fmt.Println("Configuration Check")
	fmt.Println("===================")

	fmt.Printf("Loading YAML configuration: %s\n", *yamlFile)
	provider := config.NewYAMLProvider(*yamlFile)
	defer provider.Close()

	cfg, err := provider.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Configuration is valid")

	system, _ := cfg.Engine.System()

	fmt.Println("\nEffective settings:")
	fmt.Printf("  engine.house_system:   %s\n", system)
	fmt.Printf("  engine.max_iterations: %d\n", cfg.Engine.MaxIterations)
	fmt.Printf("  engine.tolerance:      %g°\n", cfg.Engine.Tolerance)
	fmt.Printf("  engine.nutation:       %v\n", cfg.Engine.Nutation)
	fmt.Printf("  engine.aberration:     %v\n", cfg.Engine.Aberration)
	fmt.Printf("  server.listen:         %s:%d\n", cfg.Server.ListenAddr, cfg.Server.HTTPPort)
	fmt.Printf("  server.rate_limit:     %g req/s, burst %d\n", cfg.Server.RateLimit, cfg.Server.RateBurst)
	fmt.Printf("  location:              %.4f, %.4f\n", cfg.Location.Latitude, cfg.Location.Longitude)

	// polar circle at the current obliquity
	eps := obliquity.True(astrotime.FromTime(time.Now()))
	if system.FallsBack() && math.Abs(cfg.Location.Latitude) >= 90-eps {
		fmt.Printf("\n! %s is undefined at the default latitude; charts there will use Porphyry\n", system)
	}
}
