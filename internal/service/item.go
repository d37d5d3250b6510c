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

// Item derives the enriched item table: one record per well-formed row of
// the Item sheet, with the equip stat block, the food effect block, the
// resolved category name and the patch label attached.
type Item struct {
	SheetsRepo     *repo.Sheets
	RefDataService *RefData
}

func NewItem(sheetsRepo *repo.Sheets, refDataService *RefData) *Item {
	return &Item{
		SheetsRepo:     sheetsRepo,
		RefDataService: refDataService,
	}
}

// Derive walks the Item sheet once. Rows without a positive id or a name
// never become items; nothing downstream sees them.
func (s *Item) Derive() map[int]*model.Item {
	sheet := s.SheetsRepo.Get("Item")

	items := make(map[int]*model.Item, sheet.Len())
	for _, row := range sheet.Rows() {
		if item := s.derive(row); item != nil {
			items[item.ID] = item
		}
	}

	log.Info().
		Str("evt.name", "derive.items").
		Int("items", len(items)).
		Msg("derived item table")

	return items
}

func (s *Item) derive(row exd.Row) *model.Item {
	id := row.Key()
	name := row.Str("Name")
	if id <= 0 || name == "" {
		return nil
	}

	categoryID := row.Int("ItemUICategory")
	item := &model.Item{
		ID:           id,
		Name:         name,
		Description:  row.Str("Description"),
		Icon:         row.Int("Icon"),
		ItemLevel:    row.Int("Level{Item}"),
		EquipLevel:   row.Int("Level{Equip}"),
		Rarity:       row.Int("Rarity"),
		CategoryID:   categoryID,
		CategoryName: s.RefDataService.CategoryName(categoryID),
		CanBeHq:      row.Bool("CanBeHq"),
		Patch:        s.RefDataService.Patch(id),
	}
	item.EquipStats = s.equipStats(row, item.CanBeHq)
	item.Food = s.foodEffect(row)
	return item
}

// equipStats reads the equipment block off an item row. The block is
// attached only when at least one equip-relevant field is set: damage,
// defense, a base stat, materia slots or a job category. Delay alone does
// not qualify.
func (s *Item) equipStats(row exd.Row, canBeHq bool) *model.EquipStats {
	eq := &model.EquipStats{
		PhysDamage:   row.Int("Damage{Phys}"),
		MagDamage:    row.Int("Damage{Mag}"),
		PhysDefense:  row.Int("Defense{Phys}"),
		MagDefense:   row.Int("Defense{Mag}"),
		DelayMs:      row.Int("Delay<ms>"),
		MateriaSlots: row.Int("MateriaSlotCount"),
		Jobs:         s.RefDataService.JobsFor(row.Int("ClassJobCategory")),
	}

	for i := 0; i < constant.StatSlots; i++ {
		param := row.Int(fmt.Sprintf("BaseParam[%d]", i))
		value := row.Int(fmt.Sprintf("BaseParamValue[%d]", i))
		if param > 0 && value > 0 {
			eq.Stats = append(eq.Stats, model.Stat{
				ID:    param,
				Name:  s.RefDataService.StatName(param),
				Value: value,
			})
		}
	}

	// The special pairs are the high-quality print's bonus; items that
	// cannot be HQ never carry them.
	if canBeHq {
		for i := 0; i < constant.StatSlots; i++ {
			param := row.Int(fmt.Sprintf("BaseParam{Special}[%d]", i))
			value := row.Int(fmt.Sprintf("BaseParamValue{Special}[%d]", i))
			if param > 0 && value > 0 {
				eq.HqStats = append(eq.HqStats, model.Stat{
					ID:    param,
					Name:  s.RefDataService.StatName(param),
					Value: value,
				})
			}
		}
	}

	if eq.DelayMs > 0 {
		damage := float64(util.Max(eq.PhysDamage, eq.MagDamage))
		eq.AutoAttack = null.FloatFrom(util.RoundFloat64(damage/3*float64(eq.DelayMs)/1000, 2))
	}

	if eq.PhysDamage == 0 && eq.MagDamage == 0 &&
		eq.PhysDefense == 0 && eq.MagDefense == 0 &&
		eq.MateriaSlots == 0 && len(eq.Jobs) == 0 &&
		len(eq.Stats) == 0 && len(eq.HqStats) == 0 {
		return nil
	}
	return eq
}

// foodEffect follows Item → ItemAction → ItemFood. Only the consumable
// action types carry an ItemFood row id in their second data slot.
func (s *Item) foodEffect(row exd.Row) *model.FoodEffect {
	actionID := row.Int("ItemAction")
	if actionID <= 0 {
		return nil
	}
	action, ok := s.SheetsRepo.Get("ItemAction").Row(actionID)
	if !ok {
		return nil
	}
	if _, ok := constant.FoodItemActionTypes[action.Int("Type")]; !ok {
		return nil
	}

	foodID := action.Int("Data[1]")
	food, ok := s.SheetsRepo.Get("ItemFood").Row(foodID)
	if !ok {
		return nil
	}

	effect := &model.FoodEffect{
		ItemFoodID: foodID,
		ExpBonus:   food.Int("EXP-Bonus{%}"),
	}
	for i := 0; i < constant.FoodBonusSlots; i++ {
		param := food.Int(fmt.Sprintf("BaseParam[%d]", i))
		value := food.Int(fmt.Sprintf("Value[%d]", i))
		valueHq := food.Int(fmt.Sprintf("Value{HQ}[%d]", i))
		if param <= 0 || (value <= 0 && valueHq <= 0) {
			continue
		}
		effect.Bonuses = append(effect.Bonuses, model.FoodBonus{
			StatID:   param,
			Stat:     s.RefDataService.StatName(param),
			Relative: food.Bool(fmt.Sprintf("IsRelative[%d]", i)),
			Value:    value,
			Max:      food.Int(fmt.Sprintf("Max[%d]", i)),
			ValueHq:  valueHq,
			MaxHq:    food.Int(fmt.Sprintf("Max{HQ}[%d]", i)),
		})
	}

	if len(effect.Bonuses) == 0 && effect.ExpBonus == 0 {
		return nil
	}
	return effect
}
