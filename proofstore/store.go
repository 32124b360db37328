// Package proofstore persists generated proofs in a SQL database.
package proofstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IronJam11/injective-hack/proof"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrNotFound = errors.New("proof not found")

// Record is a stored proof. Payload is the binary proof encoding.
type Record struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	CircuitDigest string `gorm:"index"`
	Commitment    string
	Payload       []byte `gorm:"not null"`
	Verified      bool
	CreatedAt     time.Time
}

// Proof decodes the payload.
func (r *Record) Proof() (*proof.Proof, error) {
	return proof.Decode(r.Payload)
}

type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at dsn and migrates the schema. Use ":memory:" for a
// throwaway database.
func Open(dsn string) (*Store, error) {
	log.Info().Str("dsn", dsn).Msg("Establishing connection to proof database")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot establish database connection: %w", err)
	}
	if dsn == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrating database failed: %w", err)
	}
	return &Store{db: db}, nil
}

// Save stores p under a new id and returns the record.
func (s *Store) Save(ctx context.Context, p *proof.Proof, digest string, verified bool) (*Record, error) {
	payload, err := p.MarshalBinary()
	if err != nil {
		return nil, err
	}
	rec := &Record{
		ID:            uuid.NewString(),
		CircuitDigest: digest,
		Commitment:    commitmentString(p),
		Payload:       payload,
		Verified:      verified,
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("failed to save proof: %w", err)
	}
	log.Debug().Str("id", rec.ID).Str("digest", digest).Msg("proof saved")
	return rec, nil
}

func commitmentString(p *proof.Proof) string {
	if p.Commitment == nil {
		return "0"
	}
	return p.Commitment.String()
}

func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load proof %s: %w", id, err)
	}
	return &rec, nil
}

// List returns up to limit records, newest first. A non-positive limit returns all of them.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	var recs []Record
	q := s.db.WithContext(ctx).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list proofs: %w", err)
	}
	return recs, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
