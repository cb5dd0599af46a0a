package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SocialPlatforms are the only keys ever stored in Profile.Social.
var SocialPlatforms = []string{"youtube", "facebook", "twitter", "instagram", "linkedin"}

// SparseInput carries the fields a caller chose to send. An empty
// string means "not supplied": empty values are always treated as
// omission, so there is no way to clear a field back to empty through
// an update (the same contract the API has always had).
type SparseInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Bio            string
	GithubUsername string
	Skills         string

	Youtube   string
	Facebook  string
	Twitter   string
	Instagram string
	LinkedIn  string
}

// FieldSet is the resolved set of fields to write. A nil pointer (or
// nil Skills slice) marks the field as absent; Apply leaves absent
// fields untouched on an existing profile. Social is always non-nil
// and always replaces the stored map wholesale.
type FieldSet struct {
	OwnerID        uuid.UUID
	Company        *string
	Website        *string
	Location       *string
	Status         *string
	Bio            *string
	GithubUsername *string
	Skills         []string
	Social         map[string]string
}

// BuildFieldSet computes the field set for an upsert from a sparse
// client payload. The owner identity always comes from the
// authenticated caller, never from the payload, so a caller can only
// ever write its own profile. Pure; no I/O.
func BuildFieldSet(ownerID uuid.UUID, in SparseInput) FieldSet {
	fs := FieldSet{OwnerID: ownerID, Social: map[string]string{}}

	setIfPresent(&fs.Company, in.Company)
	setIfPresent(&fs.Website, in.Website)
	setIfPresent(&fs.Location, in.Location)
	setIfPresent(&fs.Status, in.Status)
	setIfPresent(&fs.Bio, in.Bio)
	setIfPresent(&fs.GithubUsername, in.GithubUsername)

	if in.Skills != "" {
		fs.Skills = SplitSkills(in.Skills)
	}

	social := map[string]string{
		"youtube":   in.Youtube,
		"facebook":  in.Facebook,
		"twitter":   in.Twitter,
		"instagram": in.Instagram,
		"linkedin":  in.LinkedIn,
	}
	for _, platform := range SocialPlatforms {
		if social[platform] != "" {
			fs.Social[platform] = social[platform]
		}
	}
	return fs
}

// SplitSkills turns a comma-delimited string into an ordered slice,
// trimming surrounding whitespace from each segment. Empty segments
// are kept as-is ("a,,b" keeps its middle element).
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, len(parts))
	for i, part := range parts {
		skills[i] = strings.TrimSpace(part)
	}
	return skills
}

// Apply merges the field set into existing (merge-patch: present
// fields overwrite, absent fields stay) and returns the result. When
// existing is nil a new profile is materialized. The merge is computed
// fully in memory before any write is attempted, so a failed write
// downstream leaves the persisted document intact.
func (fs FieldSet) Apply(existing *Profile, now time.Time) *Profile {
	p := existing
	if p == nil {
		p = &Profile{
			OwnerID:    fs.OwnerID,
			Skills:     []string{},
			Experience: []Experience{},
			Education:  []Education{},
			CreatedAt:  now,
		}
	}

	if fs.Company != nil {
		p.Company = *fs.Company
	}
	if fs.Website != nil {
		p.Website = *fs.Website
	}
	if fs.Location != nil {
		p.Location = *fs.Location
	}
	if fs.Status != nil {
		p.Status = *fs.Status
	}
	if fs.Bio != nil {
		p.Bio = *fs.Bio
	}
	if fs.GithubUsername != nil {
		p.GithubUsername = *fs.GithubUsername
	}
	if fs.Skills != nil {
		p.Skills = fs.Skills
	}
	p.Social = fs.Social
	p.UpdatedAt = now
	return p
}

func setIfPresent(dst **string, v string) {
	if v != "" {
		*dst = &v
	}
}
