package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	analyzer "github.com/quantora/analyzer"
	"github.com/quantora/analyzer/config"
	"github.com/quantora/analyzer/internal/api/fundamentals"
	"github.com/quantora/analyzer/models"
)

// request is the JSON document accepted on stdin or as a file argument.
// Setting "peers" switches the run into peer-comparison mode.
type request struct {
	Symbol           string                     `json:"symbol"`
	IndicatorProfile string                     `json:"indicator_profile"`
	Indicators       []string                   `json:"indicators"`
	TimeframeOrder   []string                   `json:"timeframe_order"`
	PriceSeries      map[string][]models.RawBar `json:"price_series"`
	Peers            []string                   `json:"peers"`
	Market           string                     `json:"market"`
	Metrics          []string                   `json:"metrics"`
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}
}

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var input io.Reader = os.Stdin
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			log.Fatal().Err(err).Str("path", os.Args[1]).Msg("Cannot open input file")
		}
		defer f.Close()
		input = f
	}

	var req request
	dec := json.NewDecoder(input)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		log.Fatal().Err(err).Msg("Cannot decode request JSON")
	}
	if req.Symbol == "" {
		req.Symbol = cfg.Symbol
	}
	if req.IndicatorProfile == "" {
		req.IndicatorProfile = cfg.IndicatorProfile
	}

	var result any
	if len(req.Peers) > 0 {
		client := fundamentals.NewClient(fundamentals.ClientOptions{
			APIKey:         cfg.FundamentalsAPIKey,
			BaseURL:        cfg.FundamentalsBaseURL,
			RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
			RequestsPerSec: cfg.RequestsPerSec,
		})
		result = analyzer.ComparePeers(context.Background(), client, req.Symbol, req.Peers, req.Market, req.Metrics)
	} else {
		result = analyzer.Analyze(context.Background(), analyzer.Request{
			Symbol:         req.Symbol,
			Profile:        req.IndicatorProfile,
			Indicators:     req.Indicators,
			TimeframeOrder: req.TimeframeOrder,
			PriceSeries:    req.PriceSeries,
		})
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot marshal result")
	}
	fmt.Println(string(out))
}
