// Package foodref resolves FNDDS food codes to their WWEIA category
// and derived flags, with an in-process cache in front of the foods
// table. The reference data is static per release so entries are
// never invalidated.
package foodref

import (
	"context"
	"errors"

	"DiabetesDiet/internal/database"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

const defaultCacheSize = 2048

// fallbackCategory is used when a food code is not in the reference
// table; the nutrient estimator maps it to a generic profile.
const fallbackCategory = 9999

// FoodFacts is the category and flag data needed to aggregate one
// recall item.
type FoodFacts struct {
	WweiaCategory    int32
	IsUltraProcessed bool
	IsFruitVegetable bool
	IsOmega3Rich     bool
}

type Resolver struct {
	queries *database.Queries
	cache   *lru.Cache[int64, FoodFacts]
}

func NewResolver(q *database.Queries) (*Resolver, error) {
	cache, err := lru.New[int64, FoodFacts](defaultCacheSize)
	if err != nil {
		return nil, err
	}
	return &Resolver{queries: q, cache: cache}, nil
}

// Facts returns the category and flag data for a food code. Unknown
// codes resolve to the fallback category with all flags false; those
// are cached too, so repeated bad codes don't hit the database. A
// query failure serves the fallback without caching it, so a transient
// database error cannot pin the generic profile over a real food.
func (r *Resolver) Facts(ctx context.Context, code int64) FoodFacts {
	if facts, ok := r.cache.Get(code); ok {
		return facts
	}

	facts := FoodFacts{WweiaCategory: fallbackCategory}
	food, err := r.queries.GetFoodByCode(ctx, code)
	switch {
	case err == nil:
		facts = FoodFacts{
			WweiaCategory:    food.WweiaCategoryNumber,
			IsUltraProcessed: food.IsUltraProcessed,
			IsFruitVegetable: food.IsFruitVegetable,
			IsOmega3Rich:     food.IsOmega3Rich,
		}
	case errors.Is(err, pgx.ErrNoRows):
		log.Debug().Int64("food_code", code).Msg("food code not in reference table, using fallback profile")
	default:
		log.Error().Err(err).Int64("food_code", code).Msg("food lookup failed, using fallback profile uncached")
		return facts
	}

	r.cache.Add(code, facts)
	return facts
}

// Lookup adapts the resolver to the aggregation callback shape.
func (r *Resolver) Lookup(ctx context.Context) func(code int64) FoodFacts {
	return func(code int64) FoodFacts {
		return r.Facts(ctx, code)
	}
}

// CacheLen reports the number of cached codes, for the health surface.
func (r *Resolver) CacheLen() int {
	return r.cache.Len()
}
