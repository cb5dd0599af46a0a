package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/devconnect/devconnect-api/internal/domain/profile"
	"github.com/devconnect/devconnect-api/internal/domain/user"
	"github.com/devconnect/devconnect-api/pkg/logger"
)

type ProfileRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	profileRepo profile.Repository
	userRepo    user.Repository
	testOwner   *user.User
}

func (s *ProfileRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	testLogger := logger.NewNop()
	s.profileRepo = NewPostgresProfileRepo(s.dbPool, testLogger)
	s.userRepo = NewPostgresUserRepo(s.dbPool, testLogger)

	s.testOwner = &user.User{
		ID:           uuid.New(),
		Name:         "Test Owner",
		Email:        "testowner@example.com",
		Avatar:       "https://www.gravatar.com/avatar/x",
		PasswordHash: "hashedpassword",
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Save(ctx, s.testOwner); err != nil {
		s.T().Fatalf("Failed to seed owner: %s", err)
	}
}

func (s *ProfileRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestProfileRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(ProfileRepoIntegrationTestSuite))
}

func (s *ProfileRepoIntegrationTestSuite) seedProfile(ctx context.Context, ownerID uuid.UUID) *profile.Profile {
	now := time.Now().UTC().Truncate(time.Microsecond)
	to := now.Add(-24 * time.Hour)
	p := &profile.Profile{
		OwnerID:        ownerID,
		Company:        "Initech",
		Website:        "https://initech.example",
		Location:       "Austin",
		Status:         "developer",
		Bio:            "keeps the printers running",
		GithubUsername: "gopher",
		Skills:         []string{"go", "sql"},
		Social:         map[string]string{"twitter": "https://twitter.com/gopher"},
		Experience: []profile.Experience{{
			ID: uuid.New(), Title: "Backend Engineer", Company: "Initech",
			From: now.AddDate(-3, 0, 0), To: &to, Description: "APIs",
		}},
		Education: []profile.Education{{
			ID: uuid.New(), School: "HUST", Degree: "BSc", Majors: "CS",
			From: now.AddDate(-10, 0, 0), Current: false,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Require().NoError(s.profileRepo.Upsert(ctx, p))
	return p
}

func (s *ProfileRepoIntegrationTestSuite) Test_Upsert_And_FindByOwnerID() {
	ctx := context.Background()
	seeded := s.seedProfile(ctx, s.testOwner.ID)

	found, err := s.profileRepo.FindByOwnerID(ctx, s.testOwner.ID)
	s.Require().NoError(err)

	s.Equal(seeded.Company, found.Company)
	s.Equal(seeded.Skills, found.Skills)
	s.Equal(seeded.Social, found.Social)
	s.Require().Len(found.Experience, 1)
	s.Equal(seeded.Experience[0].ID, found.Experience[0].ID)
	s.Require().Len(found.Education, 1)
	s.Equal(seeded.Education[0].School, found.Education[0].School)
	s.Equal(s.testOwner.Name, found.OwnerName, "owner name joined from users")
	s.Equal(s.testOwner.Avatar, found.OwnerAvatar)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Upsert_UpdatesInPlace() {
	ctx := context.Background()
	seeded := s.seedProfile(ctx, s.testOwner.ID)

	seeded.Location = "Remote"
	seeded.Skills = append(seeded.Skills, "docker")
	s.Require().NoError(s.profileRepo.Upsert(ctx, seeded))

	all, err := s.profileRepo.FindAll(ctx, 10, 0)
	s.Require().NoError(err)
	s.Len(all, 1, "upsert must never create a second document for the owner")
	s.Equal("Remote", all[0].Location)
	s.Contains(all[0].Skills, "docker")
}

func (s *ProfileRepoIntegrationTestSuite) Test_FindByOwnerID_NotFound() {
	_, err := s.profileRepo.FindByOwnerID(context.Background(), uuid.New())
	s.ErrorIs(err, profile.ErrProfileNotFound)
}

func (s *ProfileRepoIntegrationTestSuite) Test_DeleteByOwnerID_Idempotent() {
	ctx := context.Background()
	s.seedProfile(ctx, s.testOwner.ID)

	s.Require().NoError(s.profileRepo.DeleteByOwnerID(ctx, s.testOwner.ID))
	_, err := s.profileRepo.FindByOwnerID(ctx, s.testOwner.ID)
	s.ErrorIs(err, profile.ErrProfileNotFound)

	s.NoError(s.profileRepo.DeleteByOwnerID(ctx, s.testOwner.ID), "deleting an absent profile is not an error")
}

func (s *ProfileRepoIntegrationTestSuite) Test_DeletingUserCascadesToProfile() {
	ctx := context.Background()

	owner := &user.User{
		ID: uuid.New(), Name: "Short Lived", Email: "shortlived@example.com",
		PasswordHash: "x", CreatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.userRepo.Save(ctx, owner))
	s.seedProfile(ctx, owner.ID)

	s.Require().NoError(s.userRepo.Delete(ctx, owner.ID))

	_, err := s.profileRepo.FindByOwnerID(ctx, owner.ID)
	s.ErrorIs(err, profile.ErrProfileNotFound)
}
