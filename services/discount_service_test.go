package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"petshop-server/models"
)

func TestResolveTargetTable(t *testing.T) {
	cases := []struct {
		target models.TargetType
		table  string
	}{
		{models.TargetProduct, "products"},
		{models.TargetHotel, "hotel_rooms"},
		{models.TargetGrooming, "grooming_services"},
		{models.TargetAddon, "addon_services"},
		{models.TargetPhotoshoot, "photoshoot_packages"},
	}

	for _, tc := range cases {
		table, err := ResolveTargetTable(tc.target)
		assert.NoError(t, err)
		assert.Equal(t, tc.table, table)
	}

	_, err := ResolveTargetTable(models.TargetType("unknown"))
	assert.ErrorIs(t, err, ErrInvalidTargetType)

	_, err = ResolveTargetTable(models.TargetType(""))
	assert.ErrorIs(t, err, ErrInvalidTargetType)
}

func TestTargetTypeValid(t *testing.T) {
	assert.True(t, models.TargetProduct.Valid())
	assert.True(t, models.TargetPhotoshoot.Valid())
	assert.False(t, models.TargetType("category").Valid())
	assert.False(t, models.TargetType("").Valid())
}

// memoryTargetStore keeps discount target rows in a slice
type memoryTargetStore struct {
	rows      []models.DiscountTarget
	failWrite bool
}

func (s *memoryTargetStore) DeleteTargetsForDiscount(discountID uint) error {
	kept := s.rows[:0]
	for _, row := range s.rows {
		if row.DiscountID != discountID {
			kept = append(kept, row)
		}
	}
	s.rows = kept
	return nil
}

func (s *memoryTargetStore) InsertTarget(target *models.DiscountTarget) error {
	if s.failWrite {
		return assert.AnError
	}
	s.rows = append(s.rows, *target)
	return nil
}

func TestReplaceTarget(t *testing.T) {
	t.Run("attach creates one row", func(t *testing.T) {
		store := &memoryTargetStore{}

		err := ReplaceTarget(store, 7, models.TargetProduct, 101)
		assert.NoError(t, err)
		assert.Len(t, store.rows, 1)
		assert.Equal(t, models.TargetProduct, store.rows[0].TargetType)
		assert.Equal(t, uint(101), store.rows[0].TargetID)
	})

	t.Run("re-attach leaves exactly one row", func(t *testing.T) {
		store := &memoryTargetStore{}

		assert.NoError(t, ReplaceTarget(store, 7, models.TargetProduct, 101))
		assert.NoError(t, ReplaceTarget(store, 7, models.TargetHotel, 55))

		assert.Len(t, store.rows, 1)
		assert.Equal(t, uint(7), store.rows[0].DiscountID)
		assert.Equal(t, models.TargetHotel, store.rows[0].TargetType)
		assert.Equal(t, uint(55), store.rows[0].TargetID)
	})

	t.Run("other discounts keep their rows", func(t *testing.T) {
		store := &memoryTargetStore{}

		assert.NoError(t, ReplaceTarget(store, 7, models.TargetProduct, 101))
		assert.NoError(t, ReplaceTarget(store, 8, models.TargetAddon, 3))
		assert.NoError(t, ReplaceTarget(store, 7, models.TargetGrooming, 12))

		assert.Len(t, store.rows, 2)
		for _, row := range store.rows {
			if row.DiscountID == 7 {
				assert.Equal(t, models.TargetGrooming, row.TargetType)
			}
		}
	})

	t.Run("invalid type is rejected before any write", func(t *testing.T) {
		store := &memoryTargetStore{}
		assert.NoError(t, ReplaceTarget(store, 7, models.TargetProduct, 101))

		err := ReplaceTarget(store, 7, models.TargetType("category"), 1)
		assert.ErrorIs(t, err, ErrInvalidTargetType)
		assert.Len(t, store.rows, 1)
		assert.Equal(t, models.TargetProduct, store.rows[0].TargetType)
	})

	t.Run("insert error is propagated", func(t *testing.T) {
		store := &memoryTargetStore{failWrite: true}
		err := ReplaceTarget(store, 7, models.TargetProduct, 101)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func day(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestIsDiscountEffective(t *testing.T) {
	january := &models.Discount{
		Title:           "New Year Sale",
		DiscountPercent: 20,
		StartDate:       day("2025-01-01"),
		EndDate:         day("2025-01-31"),
		IsActive:        true,
	}

	t.Run("inside the window", func(t *testing.T) {
		assert.True(t, IsDiscountEffective(january, day("2025-01-15")))
	})

	t.Run("boundary days are inclusive", func(t *testing.T) {
		assert.True(t, IsDiscountEffective(january, day("2025-01-01")))
		assert.True(t, IsDiscountEffective(january, day("2025-01-31")))
	})

	t.Run("after the window", func(t *testing.T) {
		assert.False(t, IsDiscountEffective(january, day("2025-02-01")))
	})

	t.Run("before the window", func(t *testing.T) {
		assert.False(t, IsDiscountEffective(january, day("2024-12-31")))
	})

	t.Run("active flag alone is not enough", func(t *testing.T) {
		inactive := *january
		inactive.IsActive = false
		assert.False(t, IsDiscountEffective(&inactive, day("2025-01-15")))
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		lastMinute := day("2025-01-31").Add(23*time.Hour + 59*time.Minute)
		assert.True(t, IsDiscountEffective(january, lastMinute))
	})

	t.Run("nil discount", func(t *testing.T) {
		assert.False(t, IsDiscountEffective(nil, day("2025-01-15")))
	})
}

func TestDiscountedPrice(t *testing.T) {
	sale := &models.Discount{
		Title:           "Mid Season",
		DiscountPercent: 25,
		StartDate:       day("2025-06-01"),
		EndDate:         day("2025-06-30"),
		IsActive:        true,
	}

	t.Run("effective discount applies", func(t *testing.T) {
		assert.InDelta(t, 75.0, DiscountedPrice(100, sale, day("2025-06-15")), 0.001)
	})

	t.Run("outside the window price is unchanged", func(t *testing.T) {
		assert.InDelta(t, 100.0, DiscountedPrice(100, sale, day("2025-07-01")), 0.001)
	})

	t.Run("nil discount leaves price unchanged", func(t *testing.T) {
		assert.InDelta(t, 100.0, DiscountedPrice(100, nil, day("2025-06-15")), 0.001)
	})

	t.Run("full discount clamps at zero", func(t *testing.T) {
		free := *sale
		free.DiscountPercent = 100
		assert.InDelta(t, 0.0, DiscountedPrice(49.9, &free, day("2025-06-15")), 0.001)
	})
}
