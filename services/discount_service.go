package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"petshop-server/database"
	"petshop-server/models"
)

// ErrInvalidTargetType is returned when a discount target tag is not one of
// the five known collection tags.
var ErrInvalidTargetType = errors.New("invalid discount target type")

// ResolveTargetTable maps a target type tag to its backing table name.
// The dispatch is an exhaustive match over the enum, never string
// concatenation.
func ResolveTargetTable(t models.TargetType) (string, error) {
	switch t {
	case models.TargetProduct:
		return models.Product{}.TableName(), nil
	case models.TargetHotel:
		return models.HotelRoom{}.TableName(), nil
	case models.TargetGrooming:
		return models.GroomingService{}.TableName(), nil
	case models.TargetAddon:
		return models.AddonService{}.TableName(), nil
	case models.TargetPhotoshoot:
		return models.PhotoshootPackage{}.TableName(), nil
	default:
		return "", ErrInvalidTargetType
	}
}

// TargetExists checks that the referenced row is present in the collection
// selected by the target type.
func TargetExists(t models.TargetType, targetID uint) (bool, error) {
	table, err := ResolveTargetTable(t)
	if err != nil {
		return false, err
	}
	var count int64
	if err := database.DB.Table(table).Where("id = ?", targetID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// TargetStore is the persistence seam for discount target rows.
type TargetStore interface {
	DeleteTargetsForDiscount(discountID uint) error
	InsertTarget(target *models.DiscountTarget) error
}

type gormTargetStore struct {
	tx *gorm.DB
}

func (s gormTargetStore) DeleteTargetsForDiscount(discountID uint) error {
	return s.tx.Where("discount_id = ?", discountID).Delete(&models.DiscountTarget{}).Error
}

func (s gormTargetStore) InsertTarget(target *models.DiscountTarget) error {
	return s.tx.Create(target).Error
}

// ReplaceTarget removes any previous association before inserting the new
// one, so a discount never holds more than one target. Callers supply the
// store; AttachTarget wraps it in a transaction.
func ReplaceTarget(store TargetStore, discountID uint, t models.TargetType, targetID uint) error {
	if !t.Valid() {
		return ErrInvalidTargetType
	}
	if err := store.DeleteTargetsForDiscount(discountID); err != nil {
		return err
	}
	return store.InsertTarget(&models.DiscountTarget{
		DiscountID: discountID,
		TargetType: t,
		TargetID:   targetID,
	})
}

// AttachTarget points a discount at a single catalog row. The
// delete-then-insert pair runs in one transaction.
func AttachTarget(discountID uint, t models.TargetType, targetID uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		return ReplaceTarget(gormTargetStore{tx: tx}, discountID, t, targetID)
	})
}

// DetachTarget removes a discount's target association, if any.
func DetachTarget(discountID uint) error {
	return database.DB.Where("discount_id = ?", discountID).Delete(&models.DiscountTarget{}).Error
}

// GetTarget returns a discount's current target association, or nil when
// the discount has none.
func GetTarget(discountID uint) (*models.DiscountTarget, error) {
	var target models.DiscountTarget
	err := database.DB.Where("discount_id = ?", discountID).First(&target).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &target, nil
}

// LookupTargetName resolves a target's display name by dispatching to the
// collection named by the target type. The second return is false when the
// referenced row no longer exists; dangling references are tolerated, not
// errors.
func LookupTargetName(t models.TargetType, targetID uint) (string, bool, error) {
	var name string
	var err error
	switch t {
	case models.TargetProduct:
		var row models.Product
		err = database.DB.Select("name").First(&row, targetID).Error
		name = row.Name
	case models.TargetHotel:
		var row models.HotelRoom
		err = database.DB.Select("name").First(&row, targetID).Error
		name = row.Name
	case models.TargetGrooming:
		var row models.GroomingService
		err = database.DB.Select("name").First(&row, targetID).Error
		name = row.Name
	case models.TargetAddon:
		var row models.AddonService
		err = database.DB.Select("name").First(&row, targetID).Error
		name = row.Name
	case models.TargetPhotoshoot:
		var row models.PhotoshootPackage
		err = database.DB.Select("title").First(&row, targetID).Error
		name = row.Title
	default:
		return "", false, ErrInvalidTargetType
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// dateOnly truncates a time to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// IsDiscountEffective reports whether the discount applies on the given
// day: the active flag is set and the day falls inside the start/end
// window. The comparison is calendar-date in UTC; an active flag alone is
// never enough.
func IsDiscountEffective(d *models.Discount, asOf time.Time) bool {
	if d == nil || !d.IsActive {
		return false
	}
	day := dateOnly(asOf)
	return !day.Before(dateOnly(d.StartDate)) && !day.After(dateOnly(d.EndDate))
}

// DiscountedPrice applies the discount percent to price only when the
// discount is effective on asOf; otherwise the price is returned unchanged.
func DiscountedPrice(price float64, d *models.Discount, asOf time.Time) float64 {
	if !IsDiscountEffective(d, asOf) {
		return price
	}
	discounted := price * (1 - d.DiscountPercent/100)
	if discounted < 0 {
		return 0
	}
	return discounted
}

// EffectiveDiscountFor finds a discount currently targeting the given row
// and effective on asOf. Returns nil when none applies.
func EffectiveDiscountFor(t models.TargetType, targetID uint, asOf time.Time) (*models.Discount, error) {
	var targets []models.DiscountTarget
	if err := database.DB.Where("target_type = ? AND target_id = ?", t, targetID).Find(&targets).Error; err != nil {
		return nil, err
	}
	for _, target := range targets {
		var discount models.Discount
		if err := database.DB.First(&discount, target.DiscountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		if IsDiscountEffective(&discount, asOf) {
			return &discount, nil
		}
	}
	return nil, nil
}
