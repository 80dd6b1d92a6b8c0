package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"petshop-server/services"
	"petshop-server/utils"
)

// runSeed loads the initial admin account and a small demo catalog.
// It talks to Postgres directly and is idempotent: collections that
// already hold rows are left alone. Run the server once first so the
// migrations have created the tables.
func runSeed() error {
	connStr := os.Getenv("DB_URL")
	if connStr == "" {
		return fmt.Errorf("DB_URL is required")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Successfully connected to database")

	if err := seedAdmin(db); err != nil {
		return err
	}
	if err := seedCategories(db); err != nil {
		return err
	}
	if err := seedBranches(db); err != nil {
		return err
	}

	log.Println("✅ Seeding completed")
	return nil
}

func seedAdmin(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("failed to check users count: %w", err)
	}
	if count > 0 {
		log.Printf("⚠️  Users already exist (%d found). Skipping admin seed.", count)
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin12345"
		log.Println("⚠️  ADMIN_PASSWORD not set, using the default. Change it after first login.")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (full_name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, 'admin', true, NOW(), NOW())`,
		"Shop Admin", "admin@petshop.local", hash)
	if err != nil {
		return fmt.Errorf("failed to insert admin user: %w", err)
	}

	log.Println("✅ Admin user created: admin@petshop.local")
	return nil
}

func seedCategories(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM product_categories").Scan(&count); err != nil {
		return fmt.Errorf("failed to check categories count: %w", err)
	}
	if count > 0 {
		log.Printf("⚠️  Categories already exist (%d found). Skipping.", count)
		return nil
	}

	categories := []struct {
		Name        string
		Description string
	}{
		{"Dog Food", "Dry and wet food for dogs of all ages"},
		{"Cat Food", "Dry and wet food for cats and kittens"},
		{"Toys", "Toys for dogs, cats and small pets"},
		{"Accessories", "Collars, leashes, bowls and beds"},
		{"Health Care", "Vitamins, supplements and hygiene products"},
	}

	for _, c := range categories {
		_, err := db.Exec(`
			INSERT INTO product_categories (name, slug, description, created_at, updated_at)
			VALUES ($1, $2, $3, NOW(), NOW())`,
			c.Name, services.Slugify(c.Name), c.Description)
		if err != nil {
			return fmt.Errorf("failed to insert category %q: %w", c.Name, err)
		}
	}

	log.Printf("✅ Inserted %d categories", len(categories))
	return nil
}

func seedBranches(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM branches").Scan(&count); err != nil {
		return fmt.Errorf("failed to check branches count: %w", err)
	}
	if count > 0 {
		log.Printf("⚠️  Branches already exist (%d found). Skipping.", count)
		return nil
	}

	branches := []struct {
		Name    string
		Contact string
	}{
		{"Petshop Central", "+62 811 0000 001"},
		{"Petshop North", "+62 811 0000 002"},
	}

	for _, b := range branches {
		_, err := db.Exec(`
			INSERT INTO branches (name, slug, description, contact_number, created_at, updated_at)
			VALUES ($1, $2, '', $3, NOW(), NOW())`,
			b.Name, services.Slugify(b.Name), b.Contact)
		if err != nil {
			return fmt.Errorf("failed to insert branch %q: %w", b.Name, err)
		}
	}

	log.Printf("✅ Inserted %d branches", len(branches))
	return nil
}
