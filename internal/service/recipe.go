package service

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v3"

	"github.com/tataru-works/xivmill/internal/constant"
	"github.com/tataru-works/xivmill/internal/model"
	"github.com/tataru-works/xivmill/internal/pkg/exd"
	"github.com/tataru-works/xivmill/internal/repo"
	"github.com/tataru-works/xivmill/internal/util"
)

// Recipe derives the recipe table, grouped by result item id. Many recipes
// may produce the same item (one per craft type, master variants).
type Recipe struct {
	SheetsRepo     *repo.Sheets
	RefDataService *RefData
}

func NewRecipe(sheetsRepo *repo.Sheets, refDataService *RefData) *Recipe {
	return &Recipe{
		SheetsRepo:     sheetsRepo,
		RefDataService: refDataService,
	}
}

func (s *Recipe) Derive() map[int][]*model.Recipe {
	recipes := map[int][]*model.Recipe{}
	count := 0
	for _, row := range s.SheetsRepo.Get("Recipe").Rows() {
		recipe := s.derive(row)
		if recipe == nil {
			continue
		}
		recipes[recipe.ItemID] = append(recipes[recipe.ItemID], recipe)
		count++
	}

	log.Info().
		Str("evt.name", "derive.recipes").
		Int("recipes", count).
		Int("items", len(recipes)).
		Msg("derived recipe table")

	return recipes
}

func (s *Recipe) derive(row exd.Row) *model.Recipe {
	itemID := row.Int("Item{Result}")
	if row.Key() <= 0 || itemID <= 0 {
		return nil
	}

	craftType := row.Int("CraftType")
	recipe := &model.Recipe{
		ID:                    row.Key(),
		ItemID:                itemID,
		CraftTypeID:           craftType,
		CraftTypeName:         s.RefDataService.CraftTypeName(craftType),
		Yield:                 row.Int("Amount{Result}"),
		MaterialQualityFactor: row.Int("MaterialQualityFactor"),
		CanHq:                 row.Bool("CanHq"),
		QuickSynth:            row.Bool("CanQuickSynth"),
		Specializing:          row.Bool("IsSpecializationRequired"),
	}

	for i := 0; i < constant.RecipeIngredientSlots; i++ {
		ingredient := row.Int(fmt.Sprintf("Item{Ingredient}[%d]", i))
		amount := row.Int(fmt.Sprintf("Amount{Ingredient}[%d]", i))
		if ingredient > 0 && amount > 0 {
			recipe.Ingredients = append(recipe.Ingredients, model.Ingredient{
				ItemID: ingredient,
				Amount: amount,
			})
		}
	}

	if level, ok := s.RefDataService.RecipeLevel(row.Int("RecipeLevelTable")); ok {
		recipe.ClassLevel = null.IntFrom(int64(level.ClassJobLevel))
		recipe.Stars = level.Stars
		recipe.Difficulty = null.IntFrom(int64(scaleByFactor(level.Difficulty, row.Int("DifficultyFactor"))))
		recipe.Quality = null.IntFrom(int64(scaleByFactor(level.Quality, row.Int("QualityFactor"))))
		recipe.Durability = null.IntFrom(int64(scaleByFactor(level.Durability, row.Int("DurabilityFactor"))))

		recipe.RequiredCraftsmanship = requirement(row.Int("RequiredCraftsmanship"), level.SuggestedCraftsmanship)
		recipe.RequiredControl = requirement(row.Int("RequiredControl"), level.SuggestedControl)
	} else if required := row.Int("RequiredCraftsmanship"); required > 0 {
		recipe.RequiredCraftsmanship = null.IntFrom(int64(required))
		recipe.RequiredControl = requirement(row.Int("RequiredControl"), 0)
	}

	if bookID := row.Int("SecretRecipeBook"); bookID > 0 {
		if book, ok := s.RefDataService.MasterBook(bookID); ok {
			recipe.MasterBook = &book
		}
	}

	return recipe
}

// scaleByFactor applies a per-recipe percentage to a recipe-level base.
// A zero factor means the row did not override the base.
func scaleByFactor(base, factor int) int {
	if factor == 0 {
		factor = 100
	}
	return util.FloorScale(base, factor)
}

// requirement prefers the recipe's own threshold over the level's
// suggested value, and stays null when neither is set.
func requirement(required, suggested int) null.Int {
	if required > 0 {
		return null.IntFrom(int64(required))
	}
	if suggested > 0 {
		return null.IntFrom(int64(suggested))
	}
	return null.Int{}
}
