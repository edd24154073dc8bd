// Command seedfoods loads the cleaned FNDDS 2021-2023 food database into
// PostgreSQL.
//
// Usage:
//
//	go run ./cmd/seedfoods              # skips if already seeded
//	go run ./cmd/seedfoods --force      # re-seeds even if records exist
//	go run ./cmd/seedfoods --check      # just print record count and exit
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"DiabetesDiet/internal/database"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
)

func main() {
	force := flag.Bool("force", false, "re-seed even if food records already exist")
	check := flag.Bool("check", false, "print the current record count and exit")
	csvPath := flag.String("csv", "data/fndds_clean.csv", "path to the cleaned FNDDS csv")
	flag.Parse()

	db := database.NewService()
	defer db.Close()
	queries := db.Queries()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := db.CreateTables(ctx); err != nil {
		log.Fatal().Err(err).Msg("could not apply database schema")
	}

	existing, err := queries.CountFoods(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("could not count food records")
	}

	if *check {
		log.Info().Int64("count", existing).Msg("food records currently in database")
		return
	}

	if existing > 0 && !*force {
		log.Info().Int64("count", existing).Msg("food database already seeded, pass --force to re-seed")
		return
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *csvPath).Msg("could not open csv")
	}
	defer f.Close()

	inserted, err := seed(ctx, queries, f)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	total, err := queries.CountFoods(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("could not count food records")
	}
	log.Info().Int("inserted", inserted).Int64("total", total).Msg("seeding complete")
}

// seed reads the FNDDS csv and upserts every valid row. Rows missing a food
// code or description are skipped, matching the source dataset's cleaning
// rules.
func seed(ctx context.Context, queries *database.Queries, r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return 0, err
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	inserted := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return inserted, err
		}

		food, ok := parseRow(col, row)
		if !ok {
			continue
		}
		if err := queries.UpsertFood(ctx, food); err != nil {
			return inserted, err
		}
		inserted++
		if inserted%500 == 0 {
			log.Info().Int("inserted", inserted).Msg("seeding progress")
		}
	}
	return inserted, nil
}

func parseRow(col map[string]int, row []string) (database.Food, bool) {
	cell := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	foodCode, err := strconv.ParseInt(cell("food_code"), 10, 64)
	if err != nil {
		return database.Food{}, false
	}
	mainDesc := cell("main_description")
	if mainDesc == "" {
		return database.Food{}, false
	}
	categoryNumber, err := strconv.ParseInt(cell("wweia_category_number"), 10, 32)
	if err != nil {
		return database.Food{}, false
	}

	food := database.Food{
		FoodCode:                 foodCode,
		MainDescription:          mainDesc,
		WweiaCategoryNumber:      int32(categoryNumber),
		WweiaCategoryDescription: cell("wweia_category_description"),
		IsAntiInflammatory:       parseBool(cell("is_anti_inflammatory")),
		IsProInflammatory:        parseBool(cell("is_pro_inflammatory")),
		IsLowGi:                  parseBool(cell("is_low_gi")),
		IsFruitVegetable:         parseBool(cell("is_fruit_vegetable")),
		IsHighFiber:              parseBool(cell("is_high_fiber")),
		IsOmega3Rich:             parseBool(cell("is_omega3_rich")),
		IsUltraProcessed:         parseBool(cell("is_ultra_processed")),
		IsMufaRich:               parseBool(cell("is_mufa_rich")),
	}
	if extra := cell("additional_description"); extra != "" {
		food.AdditionalDescription = &extra
	}
	return food, true
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "t", "yes":
		return true
	}
	return false
}
