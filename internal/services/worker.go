package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/ats-screener/internal/apperrors"
	"alfredoptarigan/ats-screener/internal/models"
	"alfredoptarigan/ats-screener/internal/repositories"
)

var (
	ErrQueueFull     = fmt.Errorf("%w: screening queue is full, try again shortly", apperrors.ErrUnavailable)
	ErrWorkerStopped = fmt.Errorf("%w: worker stopped", apperrors.ErrUnavailable)
)

// ScreeningJob is the in-memory payload of a queued screening. Only the
// worker ever sees the job description and the spooled résumé.
type ScreeningJob struct {
	ID             uuid.UUID
	RoleTags       []string
	JobDescription string
	SpoolFile      string
	OriginalName   string
}

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(job ScreeningJob) error
}

type WorkerOptions struct {
	Concurrency   int
	QueueSize     int
	ResultTTL     time.Duration
	SweepInterval time.Duration
}

type worker struct {
	screeningRepo repositories.ScreeningRepository
	screener      ScreenerService
	storage       StorageService
	jobQueue      chan ScreeningJob
	opts          WorkerOptions
	group         errgroup.Group
	stopChan      chan struct{}
	stopOnce      sync.Once
}

func NewWorker(
	screeningRepo repositories.ScreeningRepository,
	screener ScreenerService,
	storage StorageService,
	opts WorkerOptions,
) Worker {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = 1
	}

	return &worker{
		screeningRepo: screeningRepo,
		screener:      screener,
		storage:       storage,
		jobQueue:      make(chan ScreeningJob, opts.QueueSize),
		opts:          opts,
		stopChan:      make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.opts.Concurrency)

	for i := 0; i < w.opts.Concurrency; i++ {
		workerID := i + 1
		w.group.Go(func() error {
			w.processJobs(ctx, workerID)
			return nil
		})
	}

	if w.opts.ResultTTL > 0 && w.opts.SweepInterval > 0 {
		w.group.Go(func() error {
			w.sweepExpired(ctx)
			return nil
		})
	}

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker. Jobs still queued are marked failed.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping worker...")
		close(w.stopChan)
		_ = w.group.Wait()
		w.drain()
		log.Println("✅ Worker stopped")
	})
}

// EnqueueJob implements Worker. It never blocks the submitting request.
func (w *worker) EnqueueJob(job ScreeningJob) error {
	select {
	case <-w.stopChan:
		return ErrWorkerStopped
	default:
	}

	select {
	case w.jobQueue <- job:
		log.Printf("📥 Screening %s enqueued\n", job.ID)
		return nil
	default:
		log.Printf("⚠️  Queue full, rejecting screening %s\n", job.ID)
		return ErrQueueFull
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	log.Printf("🚀 Worker %d started processing jobs\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case job := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing screening %s\n", workerID, job.ID)
			if err := w.runJob(ctx, job); err != nil {
				log.Printf("❌ Worker #%d failed screening %s: %v\n", workerID, job.ID, err)
			} else {
				log.Printf("✅ Worker #%d completed screening %s\n", workerID, job.ID)
			}
		}
	}
}

func (w *worker) runJob(ctx context.Context, job ScreeningJob) error {
	defer func() {
		if err := w.storage.DeleteFile(job.SpoolFile); err != nil {
			log.Printf("⚠️  Failed to remove spooled resume for %s: %v\n", job.ID, err)
		}
	}()

	if err := w.screeningRepo.UpdateStatus(ctx, job.ID, models.StatusProcessing); err != nil {
		return err
	}

	sub := Submission{
		RoleTags:       job.RoleTags,
		JobDescription: job.JobDescription,
		ResumeName:     job.OriginalName,
	}

	f, size, err := w.storage.Open(job.SpoolFile)
	if err != nil {
		return w.fail(ctx, job.ID, apperrors.MissingInput("uploaded resume is no longer available"))
	}
	defer f.Close()
	sub.Resume = f
	sub.ResumeSize = size

	outcome, err := w.screener.Screen(ctx, sub)
	if err != nil {
		return w.fail(ctx, job.ID, err)
	}

	if err := w.screeningRepo.UpdateResult(ctx, job.ID, outcome.Result); err != nil {
		return err
	}

	return nil
}

func (w *worker) fail(ctx context.Context, id uuid.UUID, cause error) error {
	if err := w.screeningRepo.UpdateError(ctx, id, apperrors.Kind(cause), cause.Error()); err != nil {
		log.Printf("⚠️  Failed to record error for screening %s: %v\n", id, err)
	}
	return cause
}

// drain fails whatever is left in the queue after the workers exited so that
// no screening stays "queued" forever and no spooled file is left behind.
func (w *worker) drain() {
	ctx := context.Background()
	for {
		select {
		case job := <-w.jobQueue:
			_ = w.storage.DeleteFile(job.SpoolFile)
			_ = w.fail(ctx, job.ID, ErrWorkerStopped)
		default:
			return
		}
	}
}

func (w *worker) sweepExpired(ctx context.Context) {
	ticker := time.NewTicker(w.opts.SweepInterval)
	defer ticker.Stop()

	log.Println("🔄 Starting expired screenings sweeper")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Expired screenings sweeper stopped")
			return
		case <-ticker.C:
			removed, err := w.screeningRepo.DeleteExpired(ctx, time.Now().Add(-w.opts.ResultTTL))
			if err != nil {
				log.Printf("⚠️  Failed to delete expired screenings: %v\n", err)
				continue
			}

			if removed > 0 {
				log.Printf("🧹 Removed %d expired screenings\n", removed)
			}
		}
	}
}
