package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Psedro/IPVCNotes-VF/internal/models"
	"github.com/Psedro/IPVCNotes-VF/pkg/logger"
)

const cacheTTL = 24 * time.Hour

type Service struct {
	client *redis.Client
}

// NewService creates a new Redis service. Returns nil when the server is
// unreachable so callers can run without a cache.
func NewService(addr, password string, db int) *Service {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to connect to Redis")
		return nil
	}

	logger.Log.Info().Msg("Successfully connected to Redis")
	return &Service{client: client}
}

// Folder Metadata Cache Methods

// SetFolderMetadata caches folder metadata.
func (s *Service) SetFolderMetadata(ctx context.Context, folder *models.Folder) error {
	key := fmt.Sprintf("pasta:%s", folder.ID.String())

	data, err := json.Marshal(folder)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		logger.Log.Error().Err(err).Str("folderId", folder.ID.String()).Msg("Failed to cache folder metadata")
		return err
	}
	return nil
}

// GetFolderMetadata retrieves folder metadata from cache. A miss returns
// (nil, nil).
func (s *Service) GetFolderMetadata(ctx context.Context, folderID uuid.UUID) (*models.Folder, error) {
	key := fmt.Sprintf("pasta:%s", folderID.String())

	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var folder models.Folder
	if err := json.Unmarshal([]byte(data), &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// InvalidateFolderMetadata removes folder metadata from cache.
func (s *Service) InvalidateFolderMetadata(ctx context.Context, folderID uuid.UUID) error {
	key := fmt.Sprintf("pasta:%s", folderID.String())
	return s.client.Del(ctx, key).Err()
}

// Access Control Cache Methods

// SetFolderACL caches a folder's access control list, keyed by user id
// with the normalized access level as value.
func (s *Service) SetFolderACL(ctx context.Context, folderID uuid.UUID, acl map[string]string) error {
	key := fmt.Sprintf("pasta:%s:acl", folderID.String())

	data, err := json.Marshal(acl)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		logger.Log.Error().Err(err).Str("folderId", folderID.String()).Msg("Failed to cache folder ACL")
		return err
	}
	return nil
}

// GetFolderACL retrieves a folder's access control list from cache. A
// miss returns (nil, nil).
func (s *Service) GetFolderACL(ctx context.Context, folderID uuid.UUID) (map[string]string, error) {
	key := fmt.Sprintf("pasta:%s:acl", folderID.String())

	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var acl map[string]string
	if err := json.Unmarshal([]byte(data), &acl); err != nil {
		return nil, err
	}
	return acl, nil
}

// AddFolderAccess adds or updates one user's access in the cached ACL.
func (s *Service) AddFolderAccess(ctx context.Context, folderID, userID uuid.UUID, accessLevel string) error {
	acl, err := s.GetFolderACL(ctx, folderID)
	if err != nil {
		return err
	}
	if acl == nil {
		acl = make(map[string]string)
	}

	acl[userID.String()] = accessLevel
	return s.SetFolderACL(ctx, folderID, acl)
}

// RemoveFolderAccess removes one user's access from the cached ACL.
func (s *Service) RemoveFolderAccess(ctx context.Context, folderID, userID uuid.UUID) error {
	acl, err := s.GetFolderACL(ctx, folderID)
	if err != nil {
		return err
	}
	if acl == nil {
		return nil
	}

	delete(acl, userID.String())
	return s.SetFolderACL(ctx, folderID, acl)
}

// InvalidateFolder drops both the metadata and ACL entries for a folder,
// used on delete.
func (s *Service) InvalidateFolder(ctx context.Context, folderID uuid.UUID) error {
	keys := []string{
		fmt.Sprintf("pasta:%s", folderID.String()),
		fmt.Sprintf("pasta:%s:acl", folderID.String()),
	}
	return s.client.Del(ctx, keys...).Err()
}

// Close closes the Redis connection.
func (s *Service) Close() error {
	return s.client.Close()
}
