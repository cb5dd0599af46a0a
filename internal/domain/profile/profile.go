package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrEntryNotFound   = errors.New("entry not found")
)

// Experience is one position in the profile's work history. The ID is
// assigned when the entry is added and is the only way to address the
// entry afterwards; clients never supply it.
type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type Education struct {
	ID          uuid.UUID  `json:"id"`
	School      string     `json:"school"`
	Degree      string     `json:"degree"`
	Majors      string     `json:"majors"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

// Profile is the single document owned by a user. Experience and
// Education are kept in insertion order, newest first; no re-sorting
// by date ever happens.
type Profile struct {
	OwnerID        uuid.UUID         `json:"owner_id"`
	OwnerName      string            `json:"owner_name,omitempty"`
	OwnerAvatar    string            `json:"owner_avatar,omitempty"`
	Company        string            `json:"company"`
	Website        string            `json:"website"`
	Location       string            `json:"location"`
	Status         string            `json:"status"`
	Bio            string            `json:"bio"`
	GithubUsername string            `json:"github_username"`
	Skills         []string          `json:"skills"`
	Social         map[string]string `json:"social"`
	Experience     []Experience      `json:"experience"`
	Education      []Education       `json:"education"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// PrependExperience inserts e at the head of the work history, so the
// most recently added entry always sorts first.
func (p *Profile) PrependExperience(e Experience) {
	p.Experience = append([]Experience{e}, p.Experience...)
}

// RemoveExperience removes the entry with the given ID, keeping the
// relative order of the rest. Returns ErrEntryNotFound when no entry
// carries that ID; the list is never touched in that case.
func (p *Profile) RemoveExperience(id uuid.UUID) error {
	for i, e := range p.Experience {
		if e.ID == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}

func (p *Profile) PrependEducation(e Education) {
	p.Education = append([]Education{e}, p.Education...)
}

func (p *Profile) RemoveEducation(id uuid.UUID) error {
	for i, e := range p.Education {
		if e.ID == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}

type Repository interface {
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	FindAll(ctx context.Context, limit, offset int) ([]*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
	DeleteByOwnerID(ctx context.Context, ownerID uuid.UUID) error
}

// ListCache fronts the public profile listing. Implementations may
// lose entries at any time; callers must fall back to the repository.
type ListCache interface {
	GetList(ctx context.Context) ([]*Profile, bool)
	SetList(ctx context.Context, profiles []*Profile)
	Invalidate(ctx context.Context)
}
