package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/ssim"
	"github.com/cwbudde/ssim/imgio"
	"github.com/cwbudde/ssim/internal/store"
)

// runJob executes a comparison job in the background. If reportStore is not
// nil, the completed result is persisted as a report.
func runJob(ctx context.Context, jm *JobManager, reportStore store.Store, jobID string) error {
	job, exists := jm.GetJob(jobID)
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}

	err := jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateRunning
	})
	if err != nil {
		return err
	}

	slog.Info("Starting job", "job_id", jobID,
		"ref", job.Config.RefPath, "cand", job.Config.CandPath, "engine", job.Config.Engine)

	ref, cand, err := loadPair(job.Config)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	slog.Info("Loaded image pair", "job_id", jobID, "width", ref.Width, "height", ref.Height)

	// Check for cancellation before the computation starts.
	select {
	case <-ctx.Done():
		markJobFailed(jm, jobID, ctx.Err())
		return ctx.Err()
	default:
	}

	opts := engineOptions(job.Config)

	var refScore, fastScore *store.EngineScore
	if job.Config.Engine == "reference" || job.Config.Engine == "both" {
		refScore, err = runEngine(ssim.Compare, ref, cand, opts)
		if err != nil {
			markJobFailed(jm, jobID, err)
			return err
		}
	}
	if job.Config.Engine == "fast" || job.Config.Engine == "both" {
		fastScore, err = runEngine(ssim.CompareFast, ref, cand, opts)
		if err != nil {
			markJobFailed(jm, jobID, err)
			return err
		}
	}

	endTime := time.Now()
	err = jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCompleted
		j.Width = ref.Width
		j.Height = ref.Height
		j.Reference = refScore
		j.Fast = fastScore
		j.EndTime = &endTime
	})
	if err != nil {
		return err
	}

	logArgs := []any{"job_id", jobID, "elapsed", endTime.Sub(job.StartTime)}
	if refScore != nil {
		logArgs = append(logArgs, "reference_mssim", refScore.MSSIM)
	}
	if fastScore != nil {
		logArgs = append(logArgs, "fast_mssim", fastScore.MSSIM)
	}
	slog.Info("Job completed", logArgs...)

	if reportStore != nil {
		report := &store.Report{
			JobID:     jobID,
			Config:    job.Config,
			Width:     ref.Width,
			Height:    ref.Height,
			Reference: refScore,
			Fast:      fastScore,
			Timestamp: endTime,
		}
		if err := reportStore.SaveReport(jobID, report); err != nil {
			slog.Error("Failed to save report", "job_id", jobID, "error", err)
		}
	}

	return nil
}

// loadPair loads the reference and candidate images as luminance buffers,
// optionally rescaling the candidate to the reference dimensions.
func loadPair(cfg JobConfig) (ref, cand *ssim.Image, err error) {
	refImg, err := imgio.Load(cfg.RefPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load reference: %w", err)
	}
	candImg, err := imgio.Load(cfg.CandPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load candidate: %w", err)
	}

	if cfg.Resize {
		b := refImg.Bounds()
		candImg = imgio.Resize(candImg, b.Dx(), b.Dy())
	}
	return imgio.Luminance(refImg), imgio.Luminance(candImg), nil
}

// engineOptions translates the service-level config into ssim options.
// Zero-valued fields mean "unset" at this boundary and keep the library
// defaults.
func engineOptions(cfg JobConfig) []ssim.Option {
	var opts []ssim.Option
	if cfg.WindowSize > 0 {
		opts = append(opts, ssim.WithWindowSize(cfg.WindowSize))
	}
	if cfg.K1 > 0 {
		opts = append(opts, ssim.WithK1(cfg.K1))
	}
	if cfg.K2 > 0 {
		opts = append(opts, ssim.WithK2(cfg.K2))
	}
	if cfg.DynamicRange > 0 {
		opts = append(opts, ssim.WithDynamicRange(cfg.DynamicRange))
	}
	return opts
}

// runEngine times one engine and captures its score.
func runEngine(engine func(a, b *ssim.Image, opts ...ssim.Option) (*ssim.Result, error),
	ref, cand *ssim.Image, opts []ssim.Option) (*store.EngineScore, error) {

	start := time.Now()
	res, err := engine(ref, cand, opts...)
	if err != nil {
		return nil, err
	}
	return &store.EngineScore{
		MSSIM:     res.MSSIM,
		MapWidth:  res.Width,
		MapHeight: res.Height,
		Elapsed:   time.Since(start).Seconds(),
	}, nil
}

// markJobFailed marks a job as failed with an error message
func markJobFailed(jm *JobManager, jobID string, err error) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateFailed
		j.Error = err.Error()
		j.EndTime = &endTime
	})
	slog.Error("Job failed", "job_id", jobID, "error", err)
}
