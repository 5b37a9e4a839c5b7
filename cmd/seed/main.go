// Command seed creates a demo user with a handful of sample tasks for
// local development.
package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"todolist/internal/config"
	"todolist/internal/db"
	"todolist/internal/model"
	"todolist/internal/repository"
)

const (
	demoUsername = "demo"
	demoPassword = "Password1!"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Role{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	tasks := repository.NewTaskRepository(gormDB)

	user, err := users.FindByUsername(ctx, demoUsername)
	if err == gorm.ErrRecordNotFound {
		hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user = &model.User{
			Username:     demoUsername,
			Email:        "demo@example.com",
			PasswordHash: string(hash),
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		log.Printf("Created demo user %q (password %q)", demoUsername, demoPassword)
	} else if err != nil {
		log.Fatalf("Failed to look up demo user: %v", err)
	} else {
		log.Printf("Demo user %q already exists", demoUsername)
	}

	existing, err := tasks.ListByOwner(ctx, user.ID)
	if err != nil {
		log.Fatalf("Failed to list demo tasks: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Demo user already has %d tasks, nothing to seed", len(existing))
		return
	}

	now := time.Now()
	samples := []model.Task{
		{Title: "Buy groceries", Description: "Milk, eggs, bread", Priority: "High", DueDate: now.Add(24 * time.Hour), ReminderDate: now.Add(20 * time.Hour)},
		{Title: "Write status report", Priority: "Medium", DueDate: now.Add(72 * time.Hour), ReminderDate: now.Add(48 * time.Hour)},
		{Title: "Renew gym membership", Priority: "Low", IsCompleted: true, DueDate: now.Add(-24 * time.Hour), ReminderDate: now.Add(-48 * time.Hour)},
	}
	for i := range samples {
		samples[i].UserID = user.ID
		if err := tasks.Create(ctx, &samples[i]); err != nil {
			log.Fatalf("Failed to create task %q: %v", samples[i].Title, err)
		}
	}
	log.Printf("Seeded %d tasks for %q", len(samples), demoUsername)
}
