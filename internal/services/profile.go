// Package services contains the application logic over the repositories.
// This file implements ProfileService, which maps an externally
// authenticated identity to exactly one local profile.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/dmitrijs2005/finanzas/internal/logging"
	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/dmitrijs2005/finanzas/internal/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ProfileService resolves and updates local profiles.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	group       singleflight.Group
	newID       func() string
}

// NewProfileService constructs a ProfileService over the given storage.
func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *ProfileService {
	return &ProfileService{
		db:          db,
		repomanager: m,
		log:         log.With("module", "profiles"),
		newID:       uuid.NewString,
	}
}

// ResolveProfile returns the profile bound to id.Subject, creating it on
// first use. Concurrent calls for the same subject converge on one row:
// calls within this process share a single lookup, and a uniqueness
// conflict raised by another writer is resolved by reading the winner's row.
func (s *ProfileService) ResolveProfile(ctx context.Context, id models.Identity) (*models.Profile, error) {
	if strings.TrimSpace(id.Subject) == "" {
		return nil, fmt.Errorf("%w: external auth id is required", common.ErrInvalidArgument)
	}

	// The shared lookup outlives any single caller; each caller stops
	// waiting when its own ctx is done.
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(id.Subject, func() (any, error) {
		return s.resolve(shared, id)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		p := *r.Val.(*models.Profile)
		return &p, nil
	}
}

func (s *ProfileService) resolve(ctx context.Context, id models.Identity) (*models.Profile, error) {
	repo := s.repomanager.Profiles(s.db)

	p, err := repo.FindByExternalAuthID(ctx, id.Subject)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error searching profile: %w", err)
	}

	email := id.Email
	if email == "" {
		email = common.DefaultProfileEmail
	}
	created, insertErr := repo.Create(ctx, &models.Profile{
		ID:             s.newID(),
		ExternalAuthID: id.Subject,
		Email:          email,
		DisplayName:    id.Name,
	})
	if insertErr == nil {
		s.log.Info(ctx, "profile created", "profile_id", created.ID)
		return created, nil
	}
	if !errors.Is(insertErr, common.ErrConflict) {
		return nil, fmt.Errorf("error creating profile: %w", insertErr)
	}

	s.log.Debug(ctx, "profile insert lost race, re-reading", "external_auth_id", id.Subject)
	p, err = repo.FindByExternalAuthID(ctx, id.Subject)
	if err != nil {
		return nil, fmt.Errorf("error creating profile: %w", insertErr)
	}
	return p, nil
}

// UpdateProfile changes the email and display name of an existing profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, profileID, email, displayName string) (*models.Profile, error) {
	if profileID == "" {
		return nil, fmt.Errorf("%w: profile id is required", common.ErrInvalidArgument)
	}
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email is required", common.ErrInvalidArgument)
	}

	repo := s.repomanager.Profiles(s.db)
	p, err := repo.Update(ctx, &models.Profile{ID: profileID, Email: strings.TrimSpace(email), DisplayName: strings.TrimSpace(displayName)})
	if err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return p, nil
}
