package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Fixture is the seed file layout: users, each with the items they own.
type Fixture struct {
	Users []FixtureUser `yaml:"users"`
}

type FixtureUser struct {
	Name  string        `yaml:"name"`
	Email string        `yaml:"email"`
	Items []FixtureItem `yaml:"items"`
}

type FixtureItem struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Available   bool   `yaml:"available"`
}

type stats struct {
	usersCreated, itemsCreated, itemsUpdated int
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		fixturePath = flag.String("fixture", "configs/seed.yaml", "path to seed yaml")
		dbPath      = flag.String("db", "./data/shareit.db", "path to sqlite db")
	)
	flag.Parse()

	data, err := os.ReadFile(*fixturePath)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}
	var fx Fixture
	if err = yaml.Unmarshal(data, &fx); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}
	if len(fx.Users) == 0 {
		return fmt.Errorf("no users in yaml")
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := seed(ctx, db, fx)
	if err != nil {
		return err
	}

	fmt.Printf("done: users_created=%d items_created=%d items_updated=%d\n",
		st.usersCreated, st.itemsCreated, st.itemsUpdated)
	return nil
}

// seed upserts users by email and their items by name. Running it twice
// leaves the database unchanged.
func seed(ctx context.Context, repo domain.Repository, fx Fixture) (stats, error) {
	var st stats

	existing, err := repo.GetAllUsers(ctx)
	if err != nil {
		return st, fmt.Errorf("list users: %w", err)
	}
	byEmail := make(map[string]*models.User, len(existing))
	for _, u := range existing {
		byEmail[u.Email] = u
	}

	for _, fu := range fx.Users {
		if fu.Email == "" {
			continue
		}
		owner, ok := byEmail[fu.Email]
		if !ok {
			owner = &models.User{Name: fu.Name, Email: fu.Email}
			if err := repo.CreateUser(ctx, owner); err != nil {
				return st, fmt.Errorf("create user %s: %w", fu.Email, err)
			}
			byEmail[fu.Email] = owner
			st.usersCreated++
		}

		owned, err := repo.GetItemsByOwner(ctx, owner.ID)
		if err != nil {
			return st, fmt.Errorf("list items of %s: %w", fu.Email, err)
		}
		byName := make(map[string]*models.Item, len(owned))
		for _, it := range owned {
			byName[it.Name] = it
		}

		for _, fi := range fu.Items {
			if fi.Name == "" {
				continue
			}
			if it, ok := byName[fi.Name]; ok {
				it.Description = fi.Description
				it.Available = fi.Available
				if err := repo.UpdateItem(ctx, it); err != nil {
					return st, fmt.Errorf("update %s: %w", fi.Name, err)
				}
				st.itemsUpdated++
				continue
			}

			it := &models.Item{Name: fi.Name, Description: fi.Description, Available: fi.Available, Owner: *owner}
			if err := repo.CreateItem(ctx, it); err != nil {
				return st, fmt.Errorf("create %s: %w", fi.Name, err)
			}
			st.itemsCreated++
		}
	}

	return st, nil
}
