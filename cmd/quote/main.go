package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"insurecast/app"
	"insurecast/config"
	"insurecast/quote"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	verbose := flag.Bool("v", false, "log at info level")
	var form quote.Form
	flag.StringVar(&form.Age, "age", "", "age in years")
	flag.StringVar(&form.Gender, "gender", "Male", "Male or Female")
	flag.StringVar(&form.Height, "height", "", "height (unit from form.height_unit)")
	flag.StringVar(&form.Weight, "weight", "", "weight in kg")
	flag.StringVar(&form.Children, "children", "", "number of children")
	flag.StringVar(&form.Smoker, "smoker", "Yes", "Yes or No")
	flag.StringVar(&form.Region, "region", "Southeast", "Southeast, Southwest, Northwest or Northeast")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.Log.Level = "warn"
	if *verbose {
		cfg.Log.Level = "info"
	}

	logger, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	a, err := app.New(cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}

	result := a.Quoter.Quote(context.Background(), form)
	printResult(os.Stdout, result)
	if !result.Predicted() {
		logger.Sync()
		os.Exit(1)
	}
}

func printResult(w io.Writer, result quote.Result) {
	if result.BMI != nil {
		fmt.Fprintf(w, "BMI: %.1f\n", *result.BMI)
	}
	for _, m := range result.Messages {
		if m.Kind == quote.KindInfo {
			continue
		}
		fmt.Fprintf(w, "[%s] %s\n", m.Kind, m.Text)
	}
}
