package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/devconnect/devconnect-api/adapters/event"
	"github.com/devconnect/devconnect-api/internal/domain/profile"
	"github.com/devconnect/devconnect-api/internal/domain/user"
	"github.com/devconnect/devconnect-api/pkg/apperror"
	"github.com/devconnect/devconnect-api/pkg/logger"
)

const defaultListLimit = 20

var tracer = otel.Tracer("profile_usecase")

type ProfileUseCase struct {
	profileRepo profile.Repository
	userRepo    user.Repository
	cache       profile.ListCache
	events      event.Publisher
	logger      logger.Logger
}

func NewProfileUseCase(
	profileRepo profile.Repository,
	userRepo user.Repository,
	cache profile.ListCache,
	events event.Publisher,
	log logger.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		cache:       cache,
		events:      events,
		logger:      log,
	}
}

// GetOwnProfile returns the caller's profile, or a not-found error
// when none has been created yet.
func (uc *ProfileUseCase) GetOwnProfile(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", ownerID.String())
		}
		return nil, err
	}
	return p, nil
}

type UpsertProfileInput struct {
	OwnerID uuid.UUID
	Fields  profile.SparseInput
}

// UpsertProfile creates the caller's profile on first call and
// merge-patches it afterwards: only the fields present in the input
// overwrite stored state, everything else stays as it was. The merge
// is computed fully before the single write, so a storage failure
// leaves the previous document untouched.
func (uc *ProfileUseCase) UpsertProfile(ctx context.Context, in UpsertProfileInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "UpsertProfile")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", in.OwnerID.String()))

	fs := profile.BuildFieldSet(in.OwnerID, in.Fields)

	existing, err := uc.profileRepo.FindByOwnerID(ctx, in.OwnerID)
	if err != nil && !errors.Is(err, profile.ErrProfileNotFound) {
		span.RecordError(err)
		return nil, err
	}

	p := fs.Apply(existing, time.Now().UTC())
	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.afterMutation(ctx, event.EventProfileUpdated, in.OwnerID)
	return p, nil
}

// ListProfiles is the public listing. The first default-sized page is
// served from the Redis cache when warm.
func (uc *ProfileUseCase) ListProfiles(ctx context.Context, page, limit int) ([]*profile.Profile, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	cacheable := offset == 0 && limit == defaultListLimit
	if cacheable {
		if profiles, ok := uc.cache.GetList(ctx); ok {
			return profiles, nil
		}
	}

	profiles, err := uc.profileRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if cacheable {
		uc.cache.SetList(ctx, profiles)
	}
	return profiles, nil
}

func (uc *ProfileUseCase) GetProfileByOwnerID(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", ownerID.String())
		}
		return nil, err
	}
	return p, nil
}

// DeleteAccount removes the caller's profile and then the user record
// itself. The two deletes are separate statements; if the second one
// fails the account survives without a profile, which is accepted
// rather than papering over with transaction machinery across the
// user store.
func (uc *ProfileUseCase) DeleteAccount(ctx context.Context, ownerID uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "DeleteAccount")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", ownerID.String()))

	if err := uc.profileRepo.DeleteByOwnerID(ctx, ownerID); err != nil {
		span.RecordError(err)
		return err
	}
	if err := uc.userRepo.Delete(ctx, ownerID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return apperror.NewNotFound("user", ownerID.String())
		}
		span.RecordError(err)
		return err
	}

	uc.afterMutation(ctx, event.EventProfileDeleted, ownerID)
	return nil
}

type AddExperienceInput struct {
	OwnerID     uuid.UUID
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// AddExperience prepends a new entry to the caller's work history.
// A profile must already exist; this never creates one as a side
// effect.
func (uc *ProfileUseCase) AddExperience(ctx context.Context, in AddExperienceInput) (*profile.Profile, error) {
	p, err := uc.loadForMutation(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}

	p.PrependExperience(profile.Experience{
		ID:          uuid.New(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	})
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	uc.afterMutation(ctx, event.EventExperienceAdded, in.OwnerID)
	return p, nil
}

// RemoveExperience deletes the entry with the given ID. A missing ID
// is an explicit not-found error and never touches the list.
func (uc *ProfileUseCase) RemoveExperience(ctx context.Context, ownerID, entryID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.loadForMutation(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveExperience(entryID); err != nil {
		return nil, apperror.NewNotFound("experience entry", entryID.String())
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	uc.afterMutation(ctx, event.EventExperienceRemoved, ownerID)
	return p, nil
}

type AddEducationInput struct {
	OwnerID     uuid.UUID
	School      string
	Degree      string
	Majors      string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

func (uc *ProfileUseCase) AddEducation(ctx context.Context, in AddEducationInput) (*profile.Profile, error) {
	p, err := uc.loadForMutation(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}

	p.PrependEducation(profile.Education{
		ID:          uuid.New(),
		School:      in.School,
		Degree:      in.Degree,
		Majors:      in.Majors,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	})
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	uc.afterMutation(ctx, event.EventEducationAdded, in.OwnerID)
	return p, nil
}

func (uc *ProfileUseCase) RemoveEducation(ctx context.Context, ownerID, entryID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.loadForMutation(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveEducation(entryID); err != nil {
		return nil, apperror.NewNotFound("education entry", entryID.String())
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	uc.afterMutation(ctx, event.EventEducationRemoved, ownerID)
	return p, nil
}

func (uc *ProfileUseCase) loadForMutation(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", ownerID.String())
		}
		return nil, err
	}
	return p, nil
}

// afterMutation is best-effort: a cold cache or a dropped event never
// fails the request that already committed.
func (uc *ProfileUseCase) afterMutation(ctx context.Context, eventType string, ownerID uuid.UUID) {
	uc.cache.Invalidate(ctx)
	payload := event.ProfileEventPayload{
		EventType:  eventType,
		OwnerID:    ownerID,
		OccurredAt: time.Now().UTC(),
	}
	if err := uc.events.PublishProfileEvent(ctx, payload); err != nil {
		uc.logger.Warn("Failed to publish profile event",
			zap.String("event_type", eventType),
			zap.String("owner_id", ownerID.String()),
			zap.Error(err),
		)
	}
}
