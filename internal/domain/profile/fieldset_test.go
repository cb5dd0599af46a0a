package profile

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildFieldSet_SkillsSplitAndTrim(t *testing.T) {
	fs := BuildFieldSet(uuid.New(), SparseInput{Status: "developer", Skills: "a, b ,c"})

	assert.Equal(t, []string{"a", "b", "c"}, fs.Skills)
}

func TestBuildFieldSet_SkillsKeepsEmptySegments(t *testing.T) {
	fs := BuildFieldSet(uuid.New(), SparseInput{Skills: "go,,rust"})

	assert.Equal(t, []string{"go", "", "rust"}, fs.Skills)
}

func TestBuildFieldSet_OmitsEmptyFields(t *testing.T) {
	fs := BuildFieldSet(uuid.New(), SparseInput{Status: "developer"})

	assert.Nil(t, fs.Company)
	assert.Nil(t, fs.Website)
	assert.Nil(t, fs.Bio)
	assert.Nil(t, fs.Skills)
	assert.NotNil(t, fs.Status)
	assert.Equal(t, "developer", *fs.Status)
}

func TestBuildFieldSet_SocialAlwaysMaterialized(t *testing.T) {
	fs := BuildFieldSet(uuid.New(), SparseInput{Status: "developer"})

	assert.NotNil(t, fs.Social)
	assert.Empty(t, fs.Social)
}

func TestBuildFieldSet_SocialCollectsPresentPlatforms(t *testing.T) {
	fs := BuildFieldSet(uuid.New(), SparseInput{
		Twitter:  "https://twitter.com/gopher",
		LinkedIn: "https://linkedin.com/in/gopher",
	})

	assert.Equal(t, map[string]string{
		"twitter":  "https://twitter.com/gopher",
		"linkedin": "https://linkedin.com/in/gopher",
	}, fs.Social)
}

func TestBuildFieldSet_OwnerIDComesFromCaller(t *testing.T) {
	ownerID := uuid.New()
	fs := BuildFieldSet(ownerID, SparseInput{})

	assert.Equal(t, ownerID, fs.OwnerID)
}

func TestApply_CreatesFreshProfile(t *testing.T) {
	ownerID := uuid.New()
	now := time.Now().UTC()
	fs := BuildFieldSet(ownerID, SparseInput{Status: "developer", Skills: "go"})

	p := fs.Apply(nil, now)

	assert.Equal(t, ownerID, p.OwnerID)
	assert.Equal(t, "developer", p.Status)
	assert.Equal(t, []string{"go"}, p.Skills)
	assert.Empty(t, p.Experience)
	assert.Empty(t, p.Education)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
}

func TestApply_MergePatchLeavesAbsentFieldsUntouched(t *testing.T) {
	ownerID := uuid.New()
	existing := &Profile{
		OwnerID:  ownerID,
		Company:  "Initech",
		Website:  "https://initech.example",
		Location: "Austin",
		Status:   "developer",
		Bio:      "keeps the printers running",
		Skills:   []string{"go"},
		Social:   map[string]string{"twitter": "https://twitter.com/old"},
	}

	fs := BuildFieldSet(ownerID, SparseInput{Location: "Remote"})
	p := fs.Apply(existing, time.Now().UTC())

	assert.Equal(t, "Remote", p.Location)
	assert.Equal(t, "Initech", p.Company)
	assert.Equal(t, "https://initech.example", p.Website)
	assert.Equal(t, "developer", p.Status)
	assert.Equal(t, "keeps the printers running", p.Bio)
	assert.Equal(t, []string{"go"}, p.Skills)
}

func TestApply_SocialReplacedWholesale(t *testing.T) {
	ownerID := uuid.New()
	existing := &Profile{
		OwnerID: ownerID,
		Social:  map[string]string{"youtube": "https://youtube.com/@old"},
	}

	fs := BuildFieldSet(ownerID, SparseInput{Facebook: "https://facebook.com/new"})
	p := fs.Apply(existing, time.Now().UTC())

	assert.Equal(t, map[string]string{"facebook": "https://facebook.com/new"}, p.Social)
}

func TestApply_EmptyStringMeansOmission(t *testing.T) {
	ownerID := uuid.New()
	existing := &Profile{OwnerID: ownerID, Bio: "still here"}

	fs := BuildFieldSet(ownerID, SparseInput{Bio: ""})
	p := fs.Apply(existing, time.Now().UTC())

	assert.Equal(t, "still here", p.Bio)
}
