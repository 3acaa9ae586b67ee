package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
	"github.com/sakibmtatva/online-job-portal-be/pkg/apperror"
	"github.com/sakibmtatva/online-job-portal-be/pkg/email"
	"github.com/sakibmtatva/online-job-portal-be/pkg/logger"
	"github.com/xuri/excelize/v2"
)

type applicationUsecase struct {
	tx              domain.Transactor
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	columnRepo      domain.ColumnRepository
	userRepo        domain.UserRepository
	notifier        domain.NotificationUsecase
	mailer          domain.Mailer
	clock           Clock
	appURL          string
}

// ApplicationDeps groups the collaborators of the application usecase
type ApplicationDeps struct {
	Tx              domain.Transactor
	ApplicationRepo domain.ApplicationRepository
	JobRepo         domain.JobRepository
	ColumnRepo      domain.ColumnRepository
	UserRepo        domain.UserRepository
	Notifier        domain.NotificationUsecase
	Mailer          domain.Mailer
	Clock           Clock
	AppURL          string
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(deps ApplicationDeps) domain.ApplicationUsecase {
	return &applicationUsecase{
		tx:              deps.Tx,
		applicationRepo: deps.ApplicationRepo,
		jobRepo:         deps.JobRepo,
		columnRepo:      deps.ColumnRepo,
		userRepo:        deps.UserRepo,
		notifier:        deps.Notifier,
		mailer:          deps.Mailer,
		clock:           deps.Clock,
		appURL:          deps.AppURL,
	}
}

// Submit files a candidate's application to an open job
func (uc *applicationUsecase) Submit(ctx context.Context, candidate domain.Candidate, jobID int64, resumeURL, coverLetter string) (*domain.Application, error) {
	// 1. Validate resume is provided
	if resumeURL == "" {
		return nil, apperror.BadRequest("Resume is required to submit an application")
	}

	// 2. Validate cover letter length
	if n := utf8.RuneCountInString(coverLetter); n < domain.CoverLetterMinLength || n > domain.CoverLetterMaxLength {
		return nil, apperror.BadRequest(fmt.Sprintf(
			"Cover letter must be between %d and %d characters",
			domain.CoverLetterMinLength, domain.CoverLetterMaxLength))
	}

	// 3. Check for duplicate application
	exists, err := uc.applicationRepo.CheckExists(ctx, jobID, candidate.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, alreadyApplied()
	}

	// 4. Validate job exists and is still open
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.BadRequest("Job does not exist")
		}
		return nil, apperror.Internal(err)
	}
	if job.IsExpired(uc.clock.today()) {
		if job.Status != domain.JobStatusExpired {
			if _, err := uc.jobRepo.MarkExpired(ctx, job.ID); err != nil {
				logger.Log.Warn("failed to flip lapsed job", "job_id", job.ID, "error", err)
			}
		}
		return nil, jobClosed()
	}

	// 5. Record the applicant and create the application together
	app := &domain.Application{
		JobID:       jobID,
		CandidateID: candidate.ID,
		ResumeURL:   resumeURL,
		CoverLetter: coverLetter,
		TrelloName:  domain.ColumnAllApplications,
	}
	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.jobRepo.AddApplicant(ctx, jobID, candidate.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return jobClosed()
			}
			return apperror.Internal(err)
		}
		if err := uc.applicationRepo.Create(ctx, app); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return alreadyApplied()
			}
			return apperror.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Application submitted",
		"application_id", app.ID, "job_id", jobID, "candidate_id", candidate.ID)

	// 6. Let the employer know
	uc.announceApplication(ctx, job, app)
	return app, nil
}

func (uc *applicationUsecase) announceApplication(ctx context.Context, job *domain.Job, app *domain.Application) {
	candidateName := "A candidate"
	if user, err := uc.userRepo.GetByID(ctx, app.CandidateID); err == nil {
		candidateName = user.DisplayName()
	}

	notifyQuietly(ctx, uc.notifier, domain.NewNotification{
		RecipientID: job.EmployerID,
		Message:     fmt.Sprintf("%s has applied for your job '%s'", candidateName, job.Title),
		Category:    domain.CategoryApplication,
		Payload: map[string]interface{}{
			"type":          domain.PayloadFromCandidate,
			"id":            app.CandidateID,
			"jobId":         job.ID,
			"applicationId": app.ID,
		},
	})

	employer, err := uc.userRepo.GetByID(ctx, job.EmployerID)
	if err != nil {
		logger.Log.Warn("employer not found for application email", "employer_id", job.EmployerID, "error", err)
		return
	}
	mailQuietly(ctx, uc.mailer, employer.Email, func() (string, string, error) {
		return email.RenderApplicationReceived(email.ApplicationReceivedData{
			EmployerName:  employer.DisplayName(),
			CandidateName: candidateName,
			JobTitle:      job.Title,
			BoardURL:      fmt.Sprintf("%s/employer/jobs/%d/board", uc.appURL, job.ID),
		})
	})
}

// ListMine returns the candidate's applications, newest first
func (uc *applicationUsecase) ListMine(ctx context.Context, candidate domain.Candidate) ([]domain.Application, error) {
	apps, err := uc.applicationRepo.ListByCandidate(ctx, candidate.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// ListByJob returns all applications of a job owned by the employer
func (uc *applicationUsecase) ListByJob(ctx context.Context, employer domain.Employer, jobID int64) ([]domain.Application, error) {
	if _, err := ownedJob(ctx, uc.jobRepo, employer, jobID); err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// Move places an application into another board column
func (uc *applicationUsecase) Move(ctx context.Context, employer domain.Employer, applicationID int64, target string) (*domain.Application, error) {
	// 1. Validate target
	target = domain.NormalizeColumnName(target)
	if target == "" {
		return nil, apperror.BadRequest("Target column is required")
	}

	// 2. Load application and check ownership through its job
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	if _, err := ownedJob(ctx, uc.jobRepo, employer, app.JobID); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, err
	}

	// 3. Same column is rejected
	if app.TrelloName == target {
		return nil, apperror.Conflict(fmt.Sprintf("Application is already in '%s'", target))
	}

	// 4. Target must be protected or an existing column of this board
	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if !domain.IsProtectedColumn(target) {
			if _, err := uc.columnRepo.FindByName(ctx, employer.ID, app.JobID, target); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return apperror.BadRequest(fmt.Sprintf("Column '%s' does not exist on this board", target))
				}
				return apperror.Internal(err)
			}
		}
		if err := uc.applicationRepo.UpdateTrelloName(ctx, app.ID, target); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return apperror.NotFound("Application not found")
			}
			return apperror.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Application moved",
		"application_id", app.ID, "from", app.TrelloName, "to", target)
	app.TrelloName = target
	return app, nil
}

// GetBoard groups a job's applications by column
func (uc *applicationUsecase) GetBoard(ctx context.Context, employer domain.Employer, jobID int64) (*domain.Board, error) {
	if _, err := ownedJob(ctx, uc.jobRepo, employer, jobID); err != nil {
		return nil, err
	}

	columns, err := uc.columnRepo.List(ctx, employer.ID, &jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	apps, err := uc.applicationRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return buildBoard(jobID, columns, apps), nil
}

// buildBoard lays out protected buckets first, then stored columns oldest
// first. Applications pointing at an unknown column land in All Applications.
func buildBoard(jobID int64, columns []domain.Column, apps []domain.Application) *domain.Board {
	board := &domain.Board{JobID: jobID}
	index := make(map[string]int)

	for _, name := range domain.ProtectedColumns() {
		index[name] = len(board.Columns)
		board.Columns = append(board.Columns, domain.BoardColumn{
			Name:         name,
			Protected:    true,
			Applications: []domain.Application{},
		})
	}
	for i := len(columns) - 1; i >= 0; i-- {
		c := columns[i]
		id := c.ID
		index[c.Name] = len(board.Columns)
		board.Columns = append(board.Columns, domain.BoardColumn{
			ColumnID:     &id,
			Name:         c.Name,
			Applications: []domain.Application{},
		})
	}

	for _, app := range apps {
		i, ok := index[app.TrelloName]
		if !ok {
			logger.Log.Warn("application references unknown column",
				"application_id", app.ID, "trello_name", app.TrelloName)
			i = index[domain.ColumnAllApplications]
		}
		board.Columns[i].Applications = append(board.Columns[i].Applications, app)
	}
	return board
}

// ExportBoard renders the board as an Excel workbook
func (uc *applicationUsecase) ExportBoard(ctx context.Context, employer domain.Employer, jobID int64) ([]byte, string, error) {
	board, err := uc.GetBoard(ctx, employer, jobID)
	if err != nil {
		return nil, "", err
	}
	data, err := exportBoardExcel(board, uc.clock.now())
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	filename := fmt.Sprintf("job_%d_board_%s.xlsx", jobID, uc.clock.now().Format("20060102_150405"))
	return data, filename, nil
}

func exportBoardExcel(board *domain.Board, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Board"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headers := []string{"COLUMN", "APPLICATION ID", "CANDIDATE", "EMAIL", "RESUME", "APPLIED AT"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	// Dark blue header with white text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	row := 2
	for _, column := range board.Columns {
		for _, app := range column.Applications {
			values := []interface{}{
				column.Name,
				strconv.FormatInt(app.ID, 10),
				deref(app.CandidateName),
				deref(app.CandidateEmail),
				app.ResumeURL,
				app.CreatedAt.Format("2006-01-02 15:04"),
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheetName, cell, v)
			}
			row++
		}
	}

	for i := range headers {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 24)
	}
	f.SetDocProps(&excelize.DocProperties{
		Title:   fmt.Sprintf("Job %d board", board.JobID),
		Created: generatedAt.Format(time.RFC3339),
	})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func alreadyApplied() error {
	return apperror.Conflict("You have already applied to this job")
}

func jobClosed() error {
	return apperror.BadRequest("This job is no longer accepting applications")
}
