package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/devconnect/devconnect-api/internal/domain/profile"
	"github.com/devconnect/devconnect-api/internal/domain/user"
	"github.com/devconnect/devconnect-api/pkg/apperror"
)

// Auth DTOs

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:     u.ID.String(),
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}

// Profile DTOs

type UpsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status" binding:"required"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills" binding:"required"`

	Youtube   string `json:"youtube"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	LinkedIn  string `json:"linkedin"`
}

func (req *UpsertProfileRequest) ToSparseInput() profile.SparseInput {
	return profile.SparseInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Youtube:        req.Youtube,
		Facebook:       req.Facebook,
		Twitter:        req.Twitter,
		Instagram:      req.Instagram,
		LinkedIn:       req.LinkedIn,
	}
}

type AddExperienceRequest struct {
	Title       string     `json:"title" binding:"required"`
	Company     string     `json:"company" binding:"required"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from" binding:"required"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type AddEducationRequest struct {
	School      string     `json:"school" binding:"required"`
	Degree      string     `json:"degree" binding:"required"`
	Majors      string     `json:"majors" binding:"required"`
	From        time.Time  `json:"from" binding:"required"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type ProfileUserDTO struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type ExperienceDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type EducationDTO struct {
	ID          string     `json:"id"`
	School      string     `json:"school"`
	Degree      string     `json:"degree"`
	Majors      string     `json:"majors"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type ProfileDTO struct {
	User           ProfileUserDTO    `json:"user"`
	OwnerID        string            `json:"owner_id"`
	Company        string            `json:"company"`
	Website        string            `json:"website"`
	Location       string            `json:"location"`
	Status         string            `json:"status"`
	Bio            string            `json:"bio"`
	GithubUsername string            `json:"githubusername"`
	Skills         []string          `json:"skills"`
	Social         map[string]string `json:"social"`
	Experience     []ExperienceDTO   `json:"experience"`
	Education      []EducationDTO    `json:"education"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		User:           ProfileUserDTO{Name: p.OwnerName, Avatar: p.OwnerAvatar},
		OwnerID:        p.OwnerID.String(),
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Status:         p.Status,
		Bio:            p.Bio,
		GithubUsername: p.GithubUsername,
		Skills:         p.Skills,
		Social:         p.Social,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	dto.Experience = make([]ExperienceDTO, len(p.Experience))
	for i, e := range p.Experience {
		dto.Experience[i] = ExperienceDTO{
			ID:          e.ID.String(),
			Title:       e.Title,
			Company:     e.Company,
			Location:    e.Location,
			From:        e.From,
			To:          e.To,
			Current:     e.Current,
			Description: e.Description,
		}
	}
	dto.Education = make([]EducationDTO, len(p.Education))
	for i, e := range p.Education {
		dto.Education[i] = EducationDTO{
			ID:          e.ID.String(),
			School:      e.School,
			Degree:      e.Degree,
			Majors:      e.Majors,
			From:        e.From,
			To:          e.To,
			Current:     e.Current,
			Description: e.Description,
		}
	}
	return dto
}

func ToProfileDTOs(profiles []*profile.Profile) []ProfileDTO {
	dtos := make([]ProfileDTO, len(profiles))
	for i, p := range profiles {
		dtos[i] = ToProfileDTO(p)
	}
	return dtos
}

// bindingError converts a gin binding failure into an AppError,
// preserving the per-field messages when the cause is validation.
func bindingError(err error) *apperror.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperror.FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: fieldMessage(fe),
			})
		}
		return apperror.NewValidationFailed(fields, err)
	}
	return apperror.NewInvalidInput("invalid JSON body", err)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}
