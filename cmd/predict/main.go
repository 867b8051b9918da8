package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	config "pricegenie-api/configs"
	"pricegenie-api/pkg/app"
	"pricegenie-api/pkg/models"
	"pricegenie-api/pkg/services"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	var (
		area      = flag.Float64("area", 0, "area in square feet")
		bhk       = flag.Int("bhk", 0, "number of bedrooms")
		bath      = flag.Int("bath", 0, "number of bathrooms")
		location  = flag.String("location", "", "location name (see -list)")
		list      = flag.Bool("list", false, "print available locations and exit")
		modelPath = flag.String("model", cfg.ModelPath, "path to the model coefficients JSON")
		url       = flag.String("predictor-url", cfg.PredictorURL, "remote predictor endpoint (overrides -model)")
		locations = flag.String("locations", cfg.LocationsFile, "location catalog YAML")
	)
	flag.Parse()

	catalog := app.LoadCatalog(*locations)
	if *list {
		for i, name := range catalog.Names() {
			fmt.Printf("%d. %s\n", i+1, name)
		}
		return
	}
	if *area == 0 || *bhk == 0 || *bath == 0 || *location == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg.ModelPath = *modelPath
	cfg.PredictorURL = *url
	predictor := app.LoadPredictor(cfg)

	svc := services.NewPricePredictionService(catalog, predictor)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := svc.Predict(ctx, models.PredictionRequest{
		Area:      *area,
		Bedrooms:  *bhk,
		Bathrooms: *bath,
		Location:  *location,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== Bangalore House Price Predictor ===")
	fmt.Printf("Area: %g sq ft\n", *area)
	fmt.Printf("BHK: %d\n", *bhk)
	fmt.Printf("Bathrooms: %d\n", *bath)
	fmt.Printf("Location: %s (feature index %d)\n", *location, result.LocationIndex)
	fmt.Printf("Estimated Price: %s\n", result.FormattedPrice)
	fmt.Printf("Price per sq ft: %s (%s)\n", result.FormattedPricePerSqft, result.Comparison.Label)
}
