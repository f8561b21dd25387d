package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Risingdell/Placement-mangement/internal/models"
	"github.com/Risingdell/Placement-mangement/internal/repository"
)

type fakeApplicationRepo struct {
	mu        sync.Mutex
	apps      map[string]*models.Application
	history   []models.StatusHistoryEntry
	messages  []models.InboxMessage
	placed    map[string]bool
	submitErr error
	updateErr error
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		apps:   make(map[string]*models.Application),
		placed: make(map[string]bool),
	}
}

func (r *fakeApplicationRepo) Submit(ctx context.Context, app *models.Application, entry *models.StatusHistoryEntry, msg *models.InboxMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.submitErr != nil {
		return r.submitErr
	}
	for _, existing := range r.apps {
		if existing.UserID == app.UserID && existing.DriveID == app.DriveID {
			return repository.ErrDuplicateApplication
		}
	}
	copy := *app
	r.apps[app.ID] = &copy
	r.history = append(r.history, *entry)
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, entry *models.StatusHistoryEntry, markPlaced bool, msg *models.InboxMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	app := r.apps[entry.ApplicationID]
	if app == nil {
		return errors.New("application missing")
	}
	app.Status = entry.NewStatus
	r.history = append(r.history, *entry)
	if markPlaced {
		r.placed[msg.RecipientID] = true
	}
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.apps, id)
	var kept []models.StatusHistoryEntry
	for _, entry := range r.history {
		if entry.ApplicationID != id {
			kept = append(kept, entry)
		}
	}
	r.history = kept
	return nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.apps[id]
	if app == nil {
		return nil, nil
	}
	copy := *app
	return &copy, nil
}

func (r *fakeApplicationRepo) GetByUserAndDrive(ctx context.Context, userID, driveID string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.UserID == userID && app.DriveID == driveID {
			copy := *app
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *fakeApplicationRepo) ExistsByUserAndDrive(ctx context.Context, userID, driveID string) (bool, error) {
	app, err := r.GetByUserAndDrive(ctx, userID, driveID)
	return app != nil, err
}

func (r *fakeApplicationRepo) GetByUserID(ctx context.Context, userID string) ([]models.ApplicationWithDrive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.ApplicationWithDrive
	for _, app := range r.apps {
		if app.UserID == userID {
			result = append(result, models.ApplicationWithDrive{Application: *app})
		}
	}
	return result, nil
}

func (r *fakeApplicationRepo) GetDetailsByID(ctx context.Context, id, userID string) (*models.ApplicationDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.apps[id]
	if app == nil || app.UserID != userID {
		return nil, nil
	}
	details := &models.ApplicationDetails{}
	details.Application = *app
	for _, entry := range r.history {
		if entry.ApplicationID == id {
			details.StatusHistory = append(details.StatusHistory, entry)
		}
	}
	return details, nil
}

func (r *fakeApplicationRepo) GetByDriveID(ctx context.Context, driveID string) ([]models.ApplicationWithApplicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.ApplicationWithApplicant
	for _, app := range r.apps {
		if app.DriveID == driveID {
			result = append(result, models.ApplicationWithApplicant{Application: *app})
		}
	}
	return result, nil
}

func (r *fakeApplicationRepo) GetHistory(ctx context.Context, applicationID string) ([]models.StatusHistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.StatusHistoryEntry
	for _, entry := range r.history {
		if entry.ApplicationID == applicationID {
			result = append(result, entry)
		}
	}
	return result, nil
}

type fakeDriveRepo struct {
	mu     sync.Mutex
	drives map[string]*models.Drive
}

func newFakeDriveRepo() *fakeDriveRepo {
	return &fakeDriveRepo{drives: make(map[string]*models.Drive)}
}

func (r *fakeDriveRepo) Create(ctx context.Context, drive *models.Drive) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *drive
	r.drives[drive.ID] = &copy
	return nil
}

func (r *fakeDriveRepo) GetByID(ctx context.Context, id string) (*models.Drive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	drive := r.drives[id]
	if drive == nil {
		return nil, nil
	}
	copy := *drive
	return &copy, nil
}

func (r *fakeDriveRepo) GetAll(ctx context.Context, status string) ([]models.Drive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Drive
	for _, drive := range r.drives {
		if status == "" || drive.Status == status {
			result = append(result, *drive)
		}
	}
	return result, nil
}

func (r *fakeDriveRepo) GetUpcoming(ctx context.Context, limit int) ([]models.Drive, error) {
	return r.GetAll(ctx, models.DriveStatusUpcoming.String())
}

func (r *fakeDriveRepo) Update(ctx context.Context, id string, req *models.UpdateDriveRequest) error {
	return nil
}

func (r *fakeDriveRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drives, id)
	return nil
}

type fakeAcademicRepo struct {
	mu        sync.Mutex
	snapshots map[string]*models.AcademicSnapshot
}

func newFakeAcademicRepo() *fakeAcademicRepo {
	return &fakeAcademicRepo{snapshots: make(map[string]*models.AcademicSnapshot)}
}

func (r *fakeAcademicRepo) GetSnapshot(ctx context.Context, userID string) (*models.AcademicSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := r.snapshots[userID]
	if snapshot == nil {
		return nil, nil
	}
	copy := *snapshot
	return &copy, nil
}

func (r *fakeAcademicRepo) Update(ctx context.Context, userID string, req *models.UpdateAcademicsRequest) error {
	return nil
}

func (r *fakeAcademicRepo) SetPhotoURL(ctx context.Context, userID, url string) error { return nil }

func (r *fakeAcademicRepo) SetResumeURL(ctx context.Context, userID, url string) error { return nil }

var testClock = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestApplicationService(appRepo *fakeApplicationRepo, driveRepo *fakeDriveRepo, academicRepo *fakeAcademicRepo) *applicationService {
	return &applicationService{
		appRepo:      appRepo,
		driveRepo:    driveRepo,
		academicRepo: academicRepo,
		policy:       PermissiveTransitionPolicy,
		logger:       zerolog.Nop(),
		now:          func() time.Time { return testClock },
	}
}

func seedDrive(driveRepo *fakeDriveRepo, id string) *models.Drive {
	drive := &models.Drive{
		ID:          id,
		CompanyName: "Acme Corp",
		Role:        "SDE",
		Status:      models.DriveStatusOngoing.String(),
		DriveDate:   testClock.Add(7 * 24 * time.Hour),
	}
	driveRepo.Create(context.Background(), drive)
	return drive
}

func seedSnapshot(academicRepo *fakeAcademicRepo, userID string) {
	academicRepo.snapshots[userID] = &models.AcademicSnapshot{
		CGPA:           8.0,
		ActiveBacklogs: 0,
		Branch:         "CSE",
	}
}

func TestApply_HappyPath(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	driveRepo := newFakeDriveRepo()
	academicRepo := newFakeAcademicRepo()
	seedDrive(driveRepo, "drive-1")
	seedSnapshot(academicRepo, "user-1")
	svc := newTestApplicationService(appRepo, driveRepo, academicRepo)

	response, err := svc.Apply(context.Background(), models.CurrentUser{ID: "user-1", Role: "student"}, "drive-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if response.Status != models.ApplicationStatusApplied.String() {
		t.Fatalf("expected status Applied, got %q", response.Status)
	}
	if !response.AppliedAt.Equal(testClock) {
		t.Fatalf("expected applied_at %v, got %v", testClock, response.AppliedAt)
	}

	app := appRepo.apps[response.ID]
	if app == nil {
		t.Fatal("expected application to be stored")
	}
	if len(appRepo.history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(appRepo.history))
	}
	entry := appRepo.history[0]
	if entry.OldStatus != nil {
		t.Fatalf("initial history entry must have nil old status, got %v", *entry.OldStatus)
	}
	if entry.NewStatus != models.ApplicationStatusApplied.String() {
		t.Fatalf("unexpected new status %q", entry.NewStatus)
	}
	if entry.ChangedBy != "user-1" {
		t.Fatalf("initial entry must be attributed to the student, got %q", entry.ChangedBy)
	}

	if len(appRepo.messages) != 1 {
		t.Fatalf("expected one inbox message, got %d", len(appRepo.messages))
	}
	msg := appRepo.messages[0]
	if msg.RecipientID != "user-1" {
		t.Fatalf("unexpected recipient %q", msg.RecipientID)
	}
	if msg.Subject != "Application Submitted - Acme Corp" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if msg.RelatedDriveID == nil || *msg.RelatedDriveID != "drive-1" {
		t.Fatal("expected message to reference the drive")
	}
}

func TestApply_PlacedCheckedBeforeDriveLookup(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	driveRepo := newFakeDriveRepo()
	academicRepo := newFakeAcademicRepo()
	svc := newTestApplicationService(appRepo, driveRepo, academicRepo)

	// The drive does not exist; a placed student must still get the
	// placed rejection, proving the rule order.
	_, err := svc.Apply(context.Background(), models.CurrentUser{ID: "user-1", IsPlaced: true}, "missing-drive")
	reason, ok := IsRejection(err)
	if !ok {
		t.Fatalf("expected rejection, got %v", err)
	}
	if !strings.Contains(reason, "already placed") {
		t.Fatalf("unexpected reason %q", reason)
	}
}

func TestApply_DriveNotFound(t *testing.T) {
	svc := newTestApplicationService(newFakeApplicationRepo(), newFakeDriveRepo(), newFakeAcademicRepo())

	_, err := svc.Apply(context.Background(), models.CurrentUser{ID: "user-1"}, "missing-drive")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApply_DriveNotAccepting(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	driveRepo := newFakeDriveRepo()
	academicRepo := newFakeAcademicRepo()
	svc := newTestApplicationService(appRepo, driveRepo, academicRepo)

	for _, status := range []string{"Closed", "Cancelled"} {
		drive := seedDrive(driveRepo, "drive-"+status)
		drive.Status = status
		driveRepo.Create(context.Background(), drive)

		_, err := svc.Apply(context.Background(), models.CurrentUser{ID: "user-1"}, drive.ID)
		reason, ok := IsRejection(err)
		if !ok {
			t.Fatalf("status %s: expected rejection, got %v", status, err)
		}
		if !strings.Contains(reason, "no longer accepting") {
			t.Fatalf("status %s: unexpected reason %q", status, reason)
		}
	}
}

func TestApply_DeadlineBoundary(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	driveRepo := newFakeDriveRepo()
	academicRepo := newFakeAcademicRepo()
	seedSnapshot(academicRepo, "user-1")
	svc := newTestApplicationService(appRepo, driveRepo, academicRepo)

	// Exactly at the deadline is still accepted.
	exact := testClock
	drive := seedDrive(driveRepo, "drive-1")
	drive.RegistrationDeadline = &exact
	driveRepo.Create(context.Background(), drive)

	if _, err := svc.Apply(context.Background(), models.CurrentUser{ID: "user-1"}, "drive-1"); err != nil {
		t.Fatalf("apply at the deadline instant must succeed, got %v", err)
	}

	// One second past the deadline is rejected.
	past := testClock.Add(-time.Second)
	late := seedDrive(driveRepo, "drive-2")
	late.RegistrationDeadline = &past
	driveRepo.Create(context.Background(), late)

	_, err := svc.Apply(context.Background(), models.CurrentUser{ID: "user-1"}, "drive-2")
	reason, ok := IsRejection(err)
	if !ok {
		t.Fatalf("expected rejection, got %v", err)
	}
	if !strings.Contains(reason, "deadline has passed") {
		t.Fatalf("unexpected reason %q", reason)
	}
}

func TestApply_Duplicate(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	driveRepo := newFakeDriveRepo()
	academicRepo := newFakeAcademicRepo()
	seedDrive(driveRepo, "drive-1")
	seedSnapshot(academicRepo, "user-1")
	svc := newTestApplicationService(appRepo, driveRepo, academicRepo)

	if _, err := svc.Apply(context.Background(), models.CurrentUser{ID: "user-1"}, "drive-1"); err != nil {
		t.Fatalf("first apply must succeed, got %v", err)
	}

	_, err := svc.Apply(context.Background(), models.CurrentUser{ID: "user-1"}, "drive-1")
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApply_CommitRaceReportsAlreadyApplied(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	driveRepo := newFakeDriveRepo()
	academicRepo := newFakeAcademicRepo()
	seedDrive(driveRepo, "drive-1")
	seedSnapshot(academicRepo, "user-1")
	appRepo.submitErr = repository.ErrDuplicateApplication
	svc := newTestApplicationService(appRepo, driveRepo, academicRepo)

	_, err := svc.Apply(context.Background(), models.CurrentUser{ID: "user-1"}, "drive-1")
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApply_MissingProfile(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	driveRepo := newFakeDriveRepo()
	academicRepo := newFakeAcademicRepo()
	seedDrive(driveRepo, "drive-1")
	svc := newTestApplicationService(appRepo, driveRepo, academicRepo)

	_, err := svc.Apply(context.Background(), models.CurrentUser{ID: "user-1"}, "drive-1")
	reason, ok := IsRejection(err)
	if !ok {
		t.Fatalf("expected rejection, got %v", err)
	}
	if !strings.Contains(reason, "complete your academic profile") {
		t.Fatalf("unexpected reason %q", reason)
	}
}

func TestApply_Ineligible(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	driveRepo := newFakeDriveRepo()
	academicRepo := newFakeAcademicRepo()
	drive := seedDrive(driveRepo, "drive-1")
	drive.MinCGPA = floatPtr(9.5)
	driveRepo.Create(context.Background(), drive)
	seedSnapshot(academicRepo, "user-1")
	svc := newTestApplicationService(appRepo, driveRepo, academicRepo)

	_, err := svc.Apply(context.Background(), models.CurrentUser{ID: "user-1"}, "drive-1")
	if _, ok := IsRejection(err); !ok {
		t.Fatalf("expected rejection, got %v", err)
	}
	if len(appRepo.apps) != 0 {
		t.Fatal("ineligible apply must not persist anything")
	}
}

func TestApply_SubmitFailureLeavesNothing(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	driveRepo := newFakeDriveRepo()
	academicRepo := newFakeAcademicRepo()
	seedDrive(driveRepo, "drive-1")
	seedSnapshot(academicRepo, "user-1")
	appRepo.submitErr = errors.New("connection reset")
	svc := newTestApplicationService(appRepo, driveRepo, academicRepo)

	_, err := svc.Apply(context.Background(), models.CurrentUser{ID: "user-1"}, "drive-1")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(appRepo.apps) != 0 || len(appRepo.history) != 0 || len(appRepo.messages) != 0 {
		t.Fatal("failed submit must leave no partial writes")
	}
}

func TestWithdraw_StageGating(t *testing.T) {
	tests := []struct {
		status     string
		withdrawOK bool
	}{
		{"Applied", true},
		{"Shortlisted", true},
		{"Exam Scheduled", false},
		{"Interview Scheduled", false},
		{"Selected", false},
		{"Rejected", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			appRepo := newFakeApplicationRepo()
			svc := newTestApplicationService(appRepo, newFakeDriveRepo(), newFakeAcademicRepo())

			appRepo.apps["app-1"] = &models.Application{
				ID: "app-1", UserID: "user-1", DriveID: "drive-1", Status: tt.status,
			}
			appRepo.history = append(appRepo.history, models.StatusHistoryEntry{
				ID: "h-1", ApplicationID: "app-1", NewStatus: tt.status,
			})

			err := svc.Withdraw(context.Background(), models.CurrentUser{ID: "user-1"}, "app-1")
			if tt.withdrawOK {
				if err != nil {
					t.Fatalf("expected withdraw to succeed, got %v", err)
				}
				if _, ok := appRepo.apps["app-1"]; ok {
					t.Fatal("expected application to be deleted")
				}
				if len(appRepo.history) != 0 {
					t.Fatal("expected history to be removed with the application")
				}
				return
			}

			reason, ok := IsRejection(err)
			if !ok {
				t.Fatalf("expected rejection, got %v", err)
			}
			if reason != "Cannot withdraw application at this stage" {
				t.Fatalf("unexpected reason %q", reason)
			}
			if _, ok := appRepo.apps["app-1"]; !ok {
				t.Fatal("rejected withdraw must keep the application")
			}
		})
	}
}

func TestWithdraw_NotOwnerReportsNotFound(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	svc := newTestApplicationService(appRepo, newFakeDriveRepo(), newFakeAcademicRepo())

	appRepo.apps["app-1"] = &models.Application{
		ID: "app-1", UserID: "user-1", DriveID: "drive-1", Status: "Applied",
	}

	err := svc.Withdraw(context.Background(), models.CurrentUser{ID: "intruder"}, "app-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := newTestApplicationService(newFakeApplicationRepo(), newFakeDriveRepo(), newFakeAcademicRepo())

	err := svc.UpdateStatus(context.Background(), models.CurrentUser{ID: "admin-1", Role: "admin"}, "app-1", "Hired", "")
	reason, ok := IsRejection(err)
	if !ok {
		t.Fatalf("expected rejection, got %v", err)
	}
	if reason != "Invalid status" {
		t.Fatalf("unexpected reason %q", reason)
	}
}

func TestUpdateStatus_UnknownApplication(t *testing.T) {
	svc := newTestApplicationService(newFakeApplicationRepo(), newFakeDriveRepo(), newFakeAcademicRepo())

	err := svc.UpdateStatus(context.Background(), models.CurrentUser{ID: "admin-1", Role: "admin"}, "missing", "Shortlisted", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateStatus_Shortlisted(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	driveRepo := newFakeDriveRepo()
	seedDrive(driveRepo, "drive-1")
	svc := newTestApplicationService(appRepo, driveRepo, newFakeAcademicRepo())

	appRepo.apps["app-1"] = &models.Application{
		ID: "app-1", UserID: "user-1", DriveID: "drive-1", Status: "Applied",
	}

	err := svc.UpdateStatus(context.Background(), models.CurrentUser{ID: "admin-1", Role: "admin"}, "app-1", "Shortlisted", "Hall B, 10am")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if appRepo.apps["app-1"].Status != "Shortlisted" {
		t.Fatalf("expected status Shortlisted, got %q", appRepo.apps["app-1"].Status)
	}

	if len(appRepo.history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(appRepo.history))
	}
	entry := appRepo.history[0]
	if entry.OldStatus == nil || *entry.OldStatus != "Applied" {
		t.Fatal("expected old status Applied in history")
	}
	if entry.Remarks == nil || *entry.Remarks != "Hall B, 10am" {
		t.Fatal("expected remarks in history")
	}
	if entry.ChangedBy != "admin-1" {
		t.Fatalf("expected actor admin-1, got %q", entry.ChangedBy)
	}

	if len(appRepo.messages) != 1 {
		t.Fatalf("expected one message, got %d", len(appRepo.messages))
	}
	msg := appRepo.messages[0]
	if msg.MessageType != models.MessageTypeShortlist.String() {
		t.Fatalf("expected Shortlist category, got %q", msg.MessageType)
	}
	if !strings.Contains(msg.Message, "Hall B, 10am") {
		t.Fatalf("expected remarks in message body, got %q", msg.Message)
	}

	if appRepo.placed["user-1"] {
		t.Fatal("Shortlisted must not mark the student placed")
	}
}

func TestUpdateStatus_SelectedMarksPlaced(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	driveRepo := newFakeDriveRepo()
	seedDrive(driveRepo, "drive-1")
	svc := newTestApplicationService(appRepo, driveRepo, newFakeAcademicRepo())

	appRepo.apps["app-1"] = &models.Application{
		ID: "app-1", UserID: "user-1", DriveID: "drive-1", Status: "Interview Scheduled",
	}

	err := svc.UpdateStatus(context.Background(), models.CurrentUser{ID: "admin-1", Role: "admin"}, "app-1", "Selected", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if !appRepo.placed["user-1"] {
		t.Fatal("Selected must mark the student placed in the same operation")
	}
	if appRepo.messages[0].MessageType != models.MessageTypeResult.String() {
		t.Fatalf("expected Result category, got %q", appRepo.messages[0].MessageType)
	}
	if appRepo.messages[0].SenderID == nil || *appRepo.messages[0].SenderID != "admin-1" {
		t.Fatal("expected the admin recorded as sender")
	}
}

func TestUpdateStatus_StoreFailureLeavesStateUnchanged(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	driveRepo := newFakeDriveRepo()
	seedDrive(driveRepo, "drive-1")
	svc := newTestApplicationService(appRepo, driveRepo, newFakeAcademicRepo())

	appRepo.apps["app-1"] = &models.Application{
		ID: "app-1", UserID: "user-1", DriveID: "drive-1", Status: "Interview Scheduled",
	}
	appRepo.updateErr = errors.New("connection reset")

	err := svc.UpdateStatus(context.Background(), models.CurrentUser{ID: "admin-1", Role: "admin"}, "app-1", "Selected", "")
	if err == nil {
		t.Fatal("expected the store failure to surface")
	}

	if got := appRepo.apps["app-1"].Status; got != "Interview Scheduled" {
		t.Fatalf("status must be unchanged after a failed update, got %q", got)
	}
	if len(appRepo.history) != 0 {
		t.Fatalf("expected no history entries, got %d", len(appRepo.history))
	}
	if appRepo.placed["user-1"] {
		t.Fatal("placed flag must not be set when the transaction fails")
	}
	if len(appRepo.messages) != 0 {
		t.Fatalf("expected no notification, got %d", len(appRepo.messages))
	}
}

func TestUpdateStatus_CustomPolicyCanForbidTransition(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	driveRepo := newFakeDriveRepo()
	seedDrive(driveRepo, "drive-1")
	svc := newTestApplicationService(appRepo, driveRepo, newFakeAcademicRepo())
	svc.policy = func(oldStatus, newStatus string) error {
		if oldStatus == "Rejected" {
			return reject("Rejected applications are final")
		}
		return nil
	}

	appRepo.apps["app-1"] = &models.Application{
		ID: "app-1", UserID: "user-1", DriveID: "drive-1", Status: "Rejected",
	}

	err := svc.UpdateStatus(context.Background(), models.CurrentUser{ID: "admin-1", Role: "admin"}, "app-1", "Selected", "")
	reason, ok := IsRejection(err)
	if !ok {
		t.Fatalf("expected rejection, got %v", err)
	}
	if reason != "Rejected applications are final" {
		t.Fatalf("unexpected reason %q", reason)
	}
	if appRepo.apps["app-1"].Status != "Rejected" {
		t.Fatal("forbidden transition must not change the status")
	}
}
