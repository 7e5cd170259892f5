package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Psedro/IPVCNotes-VF/internal/models"
	"github.com/Psedro/IPVCNotes-VF/internal/repositories"
)

// Connect opens the Postgres connection and migrates the schema.
// TranslateError turns unique-index violations into gorm.ErrDuplicatedKey
// so the repositories can map them to conflicts.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Permission{},
		&models.Folder{},
		&models.FolderShare{},
		&models.EditRequest{},
		&models.Note{},
		&models.Attachment{},
	)
	if err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return db, nil
}

// SeedPermissions makes sure the base catalog rows exist. Existing rows
// are left alone so custom entries survive restarts.
func SeedPermissions(ctx context.Context, permissions repositories.Permissions) error {
	for _, name := range []string{"editor", "leitor"} {
		_, err := permissions.GetByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		if err := permissions.Create(ctx, &models.Permission{Nome: name}); err != nil {
			// A concurrent seeder may have won the race.
			if errors.Is(err, repositories.ErrConflict) {
				continue
			}
			return err
		}
	}
	return nil
}
