package database

import (
	"context"
	"fmt"
	"strings"
)

const foodColumns = `id, food_code, main_description, additional_description,
wweia_category_number, wweia_category_description, is_anti_inflammatory,
is_pro_inflammatory, is_low_gi, is_fruit_vegetable, is_high_fiber,
is_omega3_rich, is_ultra_processed, is_mufa_rich`

func scanFood(row interface{ Scan(dest ...any) error }) (Food, error) {
	var f Food
	err := row.Scan(
		&f.ID, &f.FoodCode, &f.MainDescription, &f.AdditionalDescription,
		&f.WweiaCategoryNumber, &f.WweiaCategoryDescription, &f.IsAntiInflammatory,
		&f.IsProInflammatory, &f.IsLowGi, &f.IsFruitVegetable, &f.IsHighFiber,
		&f.IsOmega3Rich, &f.IsUltraProcessed, &f.IsMufaRich,
	)
	return f, err
}

// SearchFoodsParams filters are combined with AND; zero values are skipped.
type SearchFoodsParams struct {
	Query            string
	CategoryNumber   int32
	AntiInflammatory bool
	LowGi            bool
	Omega3Rich       bool
	Limit            int32
}

func (q *Queries) SearchFoods(ctx context.Context, arg SearchFoodsParams) ([]Food, error) {
	var conds []string
	var args []any
	if arg.Query != "" {
		args = append(args, "%"+strings.ToLower(arg.Query)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(lower(main_description) LIKE $%d OR lower(coalesce(additional_description, '')) LIKE $%d OR lower(wweia_category_description) LIKE $%d)",
			n, n, n))
	}
	if arg.CategoryNumber != 0 {
		args = append(args, arg.CategoryNumber)
		conds = append(conds, fmt.Sprintf("wweia_category_number = $%d", len(args)))
	}
	if arg.AntiInflammatory {
		conds = append(conds, "is_anti_inflammatory")
	}
	if arg.LowGi {
		conds = append(conds, "is_low_gi")
	}
	if arg.Omega3Rich {
		conds = append(conds, "is_omega3_rich")
	}
	sql := "SELECT " + foodColumns + " FROM foods"
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	limit := arg.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	args = append(args, limit)
	sql += fmt.Sprintf(" ORDER BY main_description LIMIT $%d", len(args))

	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var foods []Food
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}

const getFoodByCode = `
SELECT ` + foodColumns + ` FROM foods WHERE food_code = $1
`

func (q *Queries) GetFoodByCode(ctx context.Context, foodCode int64) (Food, error) {
	return scanFood(q.db.QueryRow(ctx, getFoodByCode, foodCode))
}

type FoodCategory struct {
	Number      int32  `json:"wweia_category_number"`
	Description string `json:"wweia_category_description"`
	FoodCount   int64  `json:"food_count"`
}

const listFoodCategories = `
SELECT wweia_category_number, wweia_category_description, count(*)
FROM foods GROUP BY 1, 2 ORDER BY 1
`

func (q *Queries) ListFoodCategories(ctx context.Context) ([]FoodCategory, error) {
	rows, err := q.db.Query(ctx, listFoodCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cats []FoodCategory
	for rows.Next() {
		var c FoodCategory
		if err := rows.Scan(&c.Number, &c.Description, &c.FoodCount); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

const upsertFood = `
INSERT INTO foods (
	food_code, main_description, additional_description, wweia_category_number,
	wweia_category_description, is_anti_inflammatory, is_pro_inflammatory, is_low_gi,
	is_fruit_vegetable, is_high_fiber, is_omega3_rich, is_ultra_processed, is_mufa_rich
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (food_code) DO UPDATE SET
	main_description = EXCLUDED.main_description,
	additional_description = EXCLUDED.additional_description,
	wweia_category_number = EXCLUDED.wweia_category_number,
	wweia_category_description = EXCLUDED.wweia_category_description,
	is_anti_inflammatory = EXCLUDED.is_anti_inflammatory,
	is_pro_inflammatory = EXCLUDED.is_pro_inflammatory,
	is_low_gi = EXCLUDED.is_low_gi,
	is_fruit_vegetable = EXCLUDED.is_fruit_vegetable,
	is_high_fiber = EXCLUDED.is_high_fiber,
	is_omega3_rich = EXCLUDED.is_omega3_rich,
	is_ultra_processed = EXCLUDED.is_ultra_processed,
	is_mufa_rich = EXCLUDED.is_mufa_rich
`

func (q *Queries) UpsertFood(ctx context.Context, f Food) error {
	_, err := q.db.Exec(ctx, upsertFood,
		f.FoodCode, f.MainDescription, f.AdditionalDescription, f.WweiaCategoryNumber,
		f.WweiaCategoryDescription, f.IsAntiInflammatory, f.IsProInflammatory, f.IsLowGi,
		f.IsFruitVegetable, f.IsHighFiber, f.IsOmega3Rich, f.IsUltraProcessed, f.IsMufaRich,
	)
	return err
}

const countFoods = `SELECT count(*) FROM foods`

func (q *Queries) CountFoods(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countFoods).Scan(&n)
	return n, err
}
