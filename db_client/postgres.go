package db_client

import (
	"context"
	"fmt"
	"time"

	"Lumen/player"
	"Lumen/playlist"

	"github.com/Strum355/log"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PlaylistRecord is one playlist of a saved session
type PlaylistRecord struct {
	ID         uint     `gorm:"primaryKey"`
	SessionKey string   `gorm:"index;not null"`
	Position   int      `gorm:"not null"`
	Name       string   `gorm:"not null"`
	VideoIDs   []string `gorm:"serializer:json"`
}

// FlagRecord is one flagged video of a saved session
type FlagRecord struct {
	SessionKey string `gorm:"primaryKey"`
	VideoID    string `gorm:"primaryKey"`
	Reason     string `gorm:"not null"`
}

// Init connects to Postgres, waiting for it to become ready, and migrates the snapshot tables
func Init(ctx context.Context) (*gorm.DB, error) {
	dsn := viper.GetString("database.dsn")

	var db *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			sqlDB, _ := db.DB()
			if err = sqlDB.PingContext(ctx); err == nil {
				break
			}
		}
		log.Info("Waiting for Postgres to be ready...")
		time.Sleep(time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&PlaylistRecord{}, &FlagRecord{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

// SnapshotStore saves session snapshots in Postgres
type SnapshotStore struct {
	db *gorm.DB
}

func NewSnapshotStore(db *gorm.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Load returns the snapshot saved for key, false when nothing was saved
func (s *SnapshotStore) Load(ctx context.Context, key string) (player.Snapshot, bool, error) {
	var playlists []PlaylistRecord
	if err := s.db.WithContext(ctx).Where("session_key = ?", key).Order("position").Find(&playlists).Error; err != nil {
		return player.Snapshot{}, false, fmt.Errorf("load playlists: %w", err)
	}
	var flags []FlagRecord
	if err := s.db.WithContext(ctx).Where("session_key = ?", key).Find(&flags).Error; err != nil {
		return player.Snapshot{}, false, fmt.Errorf("load flags: %w", err)
	}
	if len(playlists) == 0 && len(flags) == 0 {
		return player.Snapshot{}, false, nil
	}
	return fromRecords(playlists, flags), true, nil
}

// Save replaces whatever was saved for key with snap
func (s *SnapshotStore) Save(ctx context.Context, key string, snap player.Snapshot) error {
	playlists, flags := toRecords(key, snap)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_key = ?", key).Delete(&PlaylistRecord{}).Error; err != nil {
			return fmt.Errorf("clear playlists: %w", err)
		}
		if err := tx.Where("session_key = ?", key).Delete(&FlagRecord{}).Error; err != nil {
			return fmt.Errorf("clear flags: %w", err)
		}
		if len(playlists) > 0 {
			if err := tx.Create(&playlists).Error; err != nil {
				return fmt.Errorf("save playlists: %w", err)
			}
		}
		if len(flags) > 0 {
			if err := tx.Create(&flags).Error; err != nil {
				return fmt.Errorf("save flags: %w", err)
			}
		}
		return nil
	})
}

func toRecords(key string, snap player.Snapshot) ([]PlaylistRecord, []FlagRecord) {
	var playlists []PlaylistRecord
	for i, p := range snap.Playlists {
		playlists = append(playlists, PlaylistRecord{
			SessionKey: key,
			Position:   i,
			Name:       p.Name,
			VideoIDs:   append([]string{}, p.VideoIDs...),
		})
	}
	var flags []FlagRecord
	for id, reason := range snap.Flags {
		flags = append(flags, FlagRecord{SessionKey: key, VideoID: id, Reason: reason})
	}
	return playlists, flags
}

func fromRecords(playlists []PlaylistRecord, flags []FlagRecord) player.Snapshot {
	snap := player.Snapshot{Flags: make(map[string]string, len(flags))}
	for _, r := range playlists {
		snap.Playlists = append(snap.Playlists, playlist.Playlist{
			Name:     r.Name,
			VideoIDs: append([]string{}, r.VideoIDs...),
		})
	}
	for _, r := range flags {
		snap.Flags[r.VideoID] = r.Reason
	}
	return snap
}
