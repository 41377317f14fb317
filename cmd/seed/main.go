package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jackwiencek/pickleball-signup/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedSlots(context.Background(), pool, 14); err != nil {
		log.Fatalf("seed slots: %v", err)
	}
	if err := seedSignups(context.Background(), pool, 25); err != nil {
		log.Fatalf("seed signups: %v", err)
	}
	if err := seedSettings(context.Background(), pool); err != nil {
		log.Fatalf("seed settings: %v", err)
	}

	log.Println("seed complete")
}

// seedSlots publishes morning and evening open-play slots for the next
// `days` days.
func seedSlots(ctx context.Context, pool *pgxpool.Pool, days int) error {
	log.Printf("seeding slots for %d days", days)

	windows := [][2]string{
		{"08:00", "10:00"},
		{"18:00", "20:00"},
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	created := 0
	for d := 1; d <= days; d++ {
		date := time.Now().AddDate(0, 0, d).Format("2006-01-02")
		for _, w := range windows {
			_, err := tx.Exec(ctx, `
				INSERT INTO time_slots (id, date, start_time, end_time, status, created_at)
				VALUES ($1, $2, $3, $4, 'available', now())
				ON CONFLICT (date, start_time) DO NOTHING
			`, uuid.New(), date, w[0], w[1])
			if err != nil {
				return err
			}
			created++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Printf("slots seeded: %d", created)
	return nil
}

func seedSignups(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d signups", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		id := uuid.New()
		name := gofakeit.Name()
		email := gofakeit.Email()
		phone := gofakeit.Phone()
		city := gofakeit.City()
		experience := float64(gofakeit.Number(20, 80)) / 10.0
		availability := fmt.Sprintf("%ss after %d pm", gofakeit.WeekDay(), gofakeit.Number(4, 8))

		_, err := tx.Exec(ctx, `
			INSERT INTO signups (id, name, email, phone, experience, location, availability,
			                     selected_slots, no_availability, message, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, '{}', FALSE, NULL, now())
		`, id, name, email, phone, experience, city, availability)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("signups seeded")
	return nil
}

func seedSettings(ctx context.Context, pool *pgxpool.Pool) error {
	defaults := map[string]string{
		"site_title":    "Pickleball Open Play",
		"contact_email": gofakeit.Email(),
		"court_address": gofakeit.Street(),
	}

	for k, v := range defaults {
		_, err := pool.Exec(ctx, `
			INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value
		`, k, v)
		if err != nil {
			return err
		}
	}

	log.Println("settings seeded")
	return nil
}
