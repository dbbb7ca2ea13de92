package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"grc/internal/domain/controls"
	"grc/internal/domain/dsr"
	"grc/internal/domain/notifications"
	"grc/internal/platform/config"
)

const (
	JobReviewSweep = "control_review_sweep"
	JobDSRSweep    = "dsr_deadline_sweep"
)

type Service struct {
	DB       *pgxpool.Pool
	Cfg      config.Config
	Controls *controls.Store
	Requests *dsr.Store
	Notifier *notifications.Service
	queue    chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db *pgxpool.Pool, cfg config.Config, controlStore *controls.Store, requestStore *dsr.Store, notifier *notifications.Service) *Service {
	return &Service{
		DB:       db,
		Cfg:      cfg,
		Controls: controlStore,
		Requests: requestStore,
		Notifier: notifier,
		queue:    make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.ReviewSweepInterval > 0 {
		go s.schedule(ctx, JobReviewSweep, s.Cfg.ReviewSweepInterval, s.sweepReviews)
	}
	if s.Cfg.DSRSweepInterval > 0 {
		go s.schedule(ctx, JobDSRSweep, s.Cfg.DSRSweepInterval, s.sweepDeadlines)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) schedule(ctx context.Context, jobType string, interval time.Duration, run func(context.Context) (any, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(jobType, run)
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1,$2)
    RETURNING id
  `, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

// sweepReviews flags every activated control whose review has lapsed.
func (s *Service) sweepReviews(ctx context.Context) (any, error) {
	instances, err := s.Controls.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	flagged := 0
	for _, instance := range instances {
		if !controls.IsOverdue(instance, now) {
			continue
		}
		flagged++
		message := fmt.Sprintf("control %s (%s) review overdue since %s", instance.Code, instance.StandardName, instance.NextReviewDue.Format("2006-01-02"))
		if err := s.Notifier.Notify(ctx, notifications.KindReviewOverdue, message, "control_instance", instance.ID); err != nil {
			slog.Warn("overdue notification failed", "controlId", instance.ID, "err", err)
		}
	}
	return map[string]any{"checked": len(instances), "overdue": flagged}, nil
}

// sweepDeadlines flags open DSR requests that are overdue or inside the
// due-soon window.
func (s *Service) sweepDeadlines(ctx context.Context) (any, error) {
	requests, err := s.Requests.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	overdue, dueSoon := 0, 0
	for _, request := range requests {
		band, ok := dsr.Urgency(request, now)
		if !ok {
			continue
		}
		switch band {
		case dsr.BandOverdue:
			overdue++
			message := fmt.Sprintf("%s request for %s is %d days past its statutory deadline", request.RequestType, request.SubjectName, -dsr.DaysRemaining(request, now))
			if err := s.Notifier.Notify(ctx, notifications.KindDSROverdue, message, "dsr_request", request.ID); err != nil {
				slog.Warn("dsr overdue notification failed", "requestId", request.ID, "err", err)
			}
		case dsr.BandDueSoon:
			dueSoon++
			message := fmt.Sprintf("%s request for %s is due in %d days", request.RequestType, request.SubjectName, dsr.DaysRemaining(request, now))
			if err := s.Notifier.Notify(ctx, notifications.KindDSRDueSoon, message, "dsr_request", request.ID); err != nil {
				slog.Warn("dsr due-soon notification failed", "requestId", request.ID, "err", err)
			}
		}
	}
	return map[string]any{"open": len(requests), "overdue": overdue, "dueSoon": dueSoon}, nil
}
