package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Risingdell/Placement-mangement/internal/models"
	"github.com/Risingdell/Placement-mangement/internal/repository"
	"github.com/Risingdell/Placement-mangement/internal/storage"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.StudentProfile, error)
	UpdateAcademics(ctx context.Context, userID string, req *models.UpdateAcademicsRequest) error
	UploadResume(ctx context.Context, userID, fileName, contentType string, r io.Reader, size int64) (string, error)
	UploadPhoto(ctx context.Context, userID, fileName, contentType string, r io.Reader, size int64) (string, error)
	DownloadFile(ctx context.Context, objectName string) (io.ReadCloser, int64, error)
	GetEligibilityStatus(ctx context.Context, userID string) (*models.EligibilityStatus, error)
	AddSkill(ctx context.Context, userID string, req *models.AddSkillRequest) (*models.Skill, error)
	DeleteSkill(ctx context.Context, id, userID string) error
	AddProject(ctx context.Context, userID string, req *models.AddProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, id, userID string, req *models.UpdateProjectRequest) error
	DeleteProject(ctx context.Context, id, userID string) error
	AddAchievement(ctx context.Context, userID string, req *models.AddAchievementRequest) (*models.Achievement, error)
	DeleteAchievement(ctx context.Context, id, userID string) error
}

// Baseline placement criteria shown on the eligibility overview.
// Individual drives carry their own, usually stricter, criteria.
const (
	baselineMinCGPA     = 6.0
	baselineMaxBacklogs = 0
)

type profileService struct {
	userRepo      repository.UserRepository
	academicRepo  repository.AcademicRepository
	portfolioRepo repository.PortfolioRepository
	store         storage.ObjectStore
	logger        zerolog.Logger
}

func NewProfileService(
	userRepo repository.UserRepository,
	academicRepo repository.AcademicRepository,
	portfolioRepo repository.PortfolioRepository,
	store storage.ObjectStore,
	logger zerolog.Logger,
) ProfileService {
	return &profileService{
		userRepo:      userRepo,
		academicRepo:  academicRepo,
		portfolioRepo: portfolioRepo,
		store:         store,
		logger:        logger,
	}
}

var resumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*models.StudentProfile, error) {
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrNotFound
	}

	if profile.Skills, err = s.portfolioRepo.ListSkills(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	if profile.Projects, err = s.portfolioRepo.ListProjects(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if profile.Achievements, err = s.portfolioRepo.ListAchievements(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}

	return profile, nil
}

// GetEligibilityStatus summarizes the student's standing against the
// baseline criteria, with their ongoing project if they have one.
func (s *profileService) GetEligibilityStatus(ctx context.Context, userID string) (*models.EligibilityStatus, error) {
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil || profile.Academics == nil {
		return nil, ErrNotFound
	}

	var cgpa float64
	if profile.Academics.CGPA != nil {
		cgpa = *profile.Academics.CGPA
	}
	activeBacklogs := profile.Academics.ActiveBacklogs

	ongoing, err := s.portfolioRepo.GetOngoingProject(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ongoing project: %w", err)
	}

	return &models.EligibilityStatus{
		Eligible:       cgpa >= baselineMinCGPA && activeBacklogs <= baselineMaxBacklogs && !profile.IsPlaced,
		CGPA:           cgpa,
		ActiveBacklogs: activeBacklogs,
		IsPlaced:       profile.IsPlaced,
		OngoingProject: ongoing,
		Criteria: models.EligibilityCriteria{
			MinCGPA:     baselineMinCGPA,
			MaxBacklogs: baselineMaxBacklogs,
		},
	}, nil
}

func (s *profileService) AddSkill(ctx context.Context, userID string, req *models.AddSkillRequest) (*models.Skill, error) {
	skill := &models.Skill{
		ID:          uuid.New().String(),
		UserID:      userID,
		SkillName:   req.SkillName,
		Category:    req.Category,
		Proficiency: req.Proficiency,
		CreatedAt:   time.Now(),
	}
	if skill.Category == "" {
		skill.Category = "Other"
	}
	if skill.Proficiency == "" {
		skill.Proficiency = "Intermediate"
	}

	if err := s.portfolioRepo.AddSkill(ctx, skill); err != nil {
		return nil, fmt.Errorf("failed to add skill: %w", err)
	}

	return skill, nil
}

func (s *profileService) DeleteSkill(ctx context.Context, id, userID string) error {
	deleted, err := s.portfolioRepo.DeleteSkill(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete skill: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *profileService) AddProject(ctx context.Context, userID string, req *models.AddProjectRequest) (*models.Project, error) {
	project := &models.Project{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		TechStack:   req.TechStack,
		Status:      req.Status,
		IsOngoing:   req.IsOngoing,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ProjectURL:  req.ProjectURL,
		GithubURL:   req.GithubURL,
		CreatedAt:   time.Now(),
	}
	if project.Status == "" {
		project.Status = "Ongoing"
	}

	if err := s.portfolioRepo.AddProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to add project: %w", err)
	}

	return project, nil
}

func (s *profileService) UpdateProject(ctx context.Context, id, userID string, req *models.UpdateProjectRequest) error {
	updated, err := s.portfolioRepo.UpdateProject(ctx, id, userID, req)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

func (s *profileService) DeleteProject(ctx context.Context, id, userID string) error {
	deleted, err := s.portfolioRepo.DeleteProject(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *profileService) AddAchievement(ctx context.Context, userID string, req *models.AddAchievementRequest) (*models.Achievement, error) {
	achievement := &models.Achievement{
		ID:             uuid.New().String(),
		UserID:         userID,
		Title:          req.Title,
		Type:           req.Type,
		Issuer:         req.Issuer,
		DateAchieved:   req.DateAchieved,
		Description:    req.Description,
		CertificateURL: req.CertificateURL,
		CreatedAt:      time.Now(),
	}
	if achievement.Type == "" {
		achievement.Type = "Other"
	}

	if err := s.portfolioRepo.AddAchievement(ctx, achievement); err != nil {
		return nil, fmt.Errorf("failed to add achievement: %w", err)
	}

	return achievement, nil
}

func (s *profileService) DeleteAchievement(ctx context.Context, id, userID string) error {
	deleted, err := s.portfolioRepo.DeleteAchievement(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete achievement: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *profileService) UpdateAcademics(ctx context.Context, userID string, req *models.UpdateAcademicsRequest) error {
	if err := s.academicRepo.Update(ctx, userID, req); err != nil {
		return fmt.Errorf("failed to update academics: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Msg("Academic record updated")

	return nil
}

func (s *profileService) UploadResume(ctx context.Context, userID, fileName, contentType string, r io.Reader, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !resumeExtensions[ext] {
		return "", reject("Resume must be a PDF or Word document")
	}

	var previous *string
	if profile, err := s.userRepo.GetProfile(ctx, userID); err == nil && profile != nil && profile.Academics != nil {
		previous = profile.Academics.ResumeURL
	}

	objectName := fmt.Sprintf("resumes/%s/%s%s", userID, uuid.New().String(), ext)
	if err := s.store.Upload(ctx, objectName, contentType, r, size); err != nil {
		return "", fmt.Errorf("failed to store resume: %w", err)
	}

	url := "/uploads/" + objectName
	if err := s.academicRepo.SetResumeURL(ctx, userID, url); err != nil {
		return "", fmt.Errorf("failed to save resume url: %w", err)
	}

	s.deleteReplaced(ctx, previous)

	s.logger.Info().Str("user_id", userID).Str("object", objectName).Msg("Resume uploaded")

	return url, nil
}

func (s *profileService) UploadPhoto(ctx context.Context, userID, fileName, contentType string, r io.Reader, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !photoExtensions[ext] {
		return "", reject("Photo must be a JPG or PNG image")
	}

	var previous *string
	if profile, err := s.userRepo.GetProfile(ctx, userID); err == nil && profile != nil && profile.Academics != nil {
		previous = profile.Academics.PhotoURL
	}

	objectName := fmt.Sprintf("photos/%s/%s%s", userID, uuid.New().String(), ext)
	if err := s.store.Upload(ctx, objectName, contentType, r, size); err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	url := "/uploads/" + objectName
	if err := s.academicRepo.SetPhotoURL(ctx, userID, url); err != nil {
		return "", fmt.Errorf("failed to save photo url: %w", err)
	}

	s.deleteReplaced(ctx, previous)

	s.logger.Info().Str("user_id", userID).Str("object", objectName).Msg("Profile photo uploaded")

	return url, nil
}

// DownloadFile streams a stored resume or profile photo. Only objects
// under the two upload prefixes are reachable through it.
func (s *profileService) DownloadFile(ctx context.Context, objectName string) (io.ReadCloser, int64, error) {
	if !strings.HasPrefix(objectName, "resumes/") && !strings.HasPrefix(objectName, "photos/") {
		return nil, 0, ErrNotFound
	}

	rc, size, err := s.store.Download(ctx, objectName)
	if err != nil {
		s.logger.Debug().Err(err).Str("object", objectName).Msg("Upload download failed")
		return nil, 0, ErrNotFound
	}

	return rc, size, nil
}

// deleteReplaced removes the object a re-upload made obsolete. A
// failure only leaves an orphan behind, so it is logged and ignored.
func (s *profileService) deleteReplaced(ctx context.Context, url *string) {
	if url == nil {
		return
	}

	objectName, ok := strings.CutPrefix(*url, "/uploads/")
	if !ok {
		return
	}

	if err := s.store.Delete(ctx, objectName); err != nil {
		s.logger.Warn().Err(err).Str("object", objectName).Msg("Failed to delete replaced upload")
	}
}
