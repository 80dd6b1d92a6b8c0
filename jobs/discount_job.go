package jobs

import (
	"log"
	"time"

	"petshop-server/database"
	"petshop-server/models"
)

// DiscountJob keeps the discount active flags honest: a discount whose end
// date has passed is switched off so admin listings and the storefront
// agree. Expired password-reset tokens are purged on the same tick.
type DiscountJob struct {
	stopChan chan bool
}

// NewDiscountJob creates a new discount maintenance job
func NewDiscountJob() *DiscountJob {
	return &DiscountJob{
		stopChan: make(chan bool),
	}
}

// Start begins the job
func (j *DiscountJob) Start() {
	go j.run()
	log.Println("🚀 Discount maintenance job started")
}

// Stop stops the job
func (j *DiscountJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Discount maintenance job stopped")
}

func (j *DiscountJob) run() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	// Run once at startup so a restart catches up immediately
	j.deactivateExpiredDiscounts()
	j.purgeExpiredResetTokens()

	for {
		select {
		case <-ticker.C:
			j.deactivateExpiredDiscounts()
			j.purgeExpiredResetTokens()
		case <-j.stopChan:
			return
		}
	}
}

// deactivateExpiredDiscounts switches off discounts past their end date.
// The window evaluator already guards pricing; this only keeps the flag in
// sync for the dashboard.
func (j *DiscountJob) deactivateExpiredDiscounts() {
	today := time.Now().UTC().Format("2006-01-02")

	result := database.DB.Model(&models.Discount{}).
		Where("is_active = ? AND end_date < ?", true, today).
		Update("is_active", false)
	if result.Error != nil {
		log.Printf("❌ Error deactivating expired discounts: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("⏰ Deactivated %d expired discounts", result.RowsAffected)
	}
}

// purgeExpiredResetTokens removes stale password-reset tokens
func (j *DiscountJob) purgeExpiredResetTokens() {
	result := database.DB.
		Where("expires_at < ?", time.Now().Add(-24*time.Hour)).
		Delete(&models.PasswordResetToken{})
	if result.Error != nil {
		log.Printf("❌ Error purging reset tokens: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("🧹 Purged %d expired password reset tokens", result.RowsAffected)
	}
}
