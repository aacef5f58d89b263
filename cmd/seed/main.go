// Package main provides a test-data generator for the goUserDirectory service.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres dbname=user_directory port=5432 sslmode=disable"
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	stmt, err := db.PrepareContext(ctx, `
          INSERT INTO users (fname, lname, email, review, created_at, status)
          VALUES ($1, $2, $3, $4, $5, 'active')
      `)
	if err != nil {
		log.Fatal(err)
	}
	defer stmt.Close()

	firstNames := []string{"Alex", "Maria", "John", "Sarah", "Mike", "Emma",
		"David", "Lisa"}
	lastNames := []string{"Smith", "Johnson", "Brown", "Davis", "Wilson",
		"Miller", "Taylor", "Anderson"}
	reviews := []string{"Great collaborator", "Reliable", "New joiner", ""}

	fmt.Println("Generating 10,000 test records...")

	for i := 1; i <= 10000; i++ {
		firstName := firstNames[rand.Intn(len(firstNames))]
		lastName := lastNames[rand.Intn(len(lastNames))]
		email := fmt.Sprintf("%s.%s%d@example.com", firstName, lastName, i)
		review := reviews[rand.Intn(len(reviews))]
		createdAt := time.Now().Add(-time.Duration(rand.Intn(730*24)) * time.Hour)

		_, err := stmt.ExecContext(ctx, firstName, lastName, email, review, createdAt)
		if err != nil {
			log.Printf("Error inserting record %d: %v", i, err)
		}

		if i%1000 == 0 {
			fmt.Printf("Generated %d records...\n", i)
		}
	}

	fmt.Println("Test data generation completed!")
}
