package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jengzang/pace-analyzer/internal/analysis"
	"github.com/jengzang/pace-analyzer/internal/cache"
	"github.com/jengzang/pace-analyzer/internal/metrics"
	"github.com/jengzang/pace-analyzer/internal/models"
	"github.com/jengzang/pace-analyzer/internal/track"
)

var filenameDate = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// AnalyzeOptions are the per-upload parameters. Age and RestingHR override
// the stored profile when set.
type AnalyzeOptions struct {
	PaceLimit float64
	Age       *int
	RestingHR *int
}

// RunServiceConfig carries the analysis settings shared by all uploads
type RunServiceConfig struct {
	Location       *time.Location
	SampleInterval time.Duration
}

// RunService analyzes uploads and manages stored runs
type RunService struct {
	runs     RunStore
	profiles *ProfileService
	cache    ResultCache
	metrics  *metrics.Metrics
	logger   logrus.FieldLogger
	cfg      RunServiceConfig

	now func() time.Time
}

// NewRunService creates a new run service. cache and m may be nil.
func NewRunService(runs RunStore, profiles *ProfileService, cache ResultCache, m *metrics.Metrics, logger logrus.FieldLogger, cfg RunServiceConfig) *RunService {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &RunService{
		runs:     runs,
		profiles: profiles,
		cache:    cache,
		metrics:  m,
		logger:   logger.WithField("component", "run_service"),
		cfg:      cfg,
		now:      time.Now,
	}
}

// Analyze runs the pipeline over an uploaded GPX file and stores the result
func (s *RunService) Analyze(ctx context.Context, userID, filename string, data []byte, opts AnalyzeOptions) (*models.AnalysisResponse, error) {
	log := s.logger.WithFields(logrus.Fields{"user_id": userID, "filename": filename})

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	athlete := profile.Athlete()
	if opts.Age != nil {
		athlete.Age = *opts.Age
	}
	if opts.RestingHR != nil {
		athlete.RestingHR = *opts.RestingHR
	}

	params := analysis.Params{
		PaceLimit:      opts.PaceLimit,
		Athlete:        athlete,
		Location:       s.cfg.Location,
		SampleInterval: s.cfg.SampleInterval,
	}

	res, err := s.analyze(ctx, log, data, params)
	if err != nil {
		return nil, err
	}

	run := &models.Run{
		UserID:    userID,
		Filename:  filename,
		Date:      s.runDate(filename, res),
		PaceLimit: opts.PaceLimit,
		Data:      res,
	}
	if err := s.runs.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to store run: %w", err)
	}

	log.WithFields(logrus.Fields{
		"run_id":   run.ID,
		"date":     run.Date,
		"distance": res.TotalDistance,
		"skipped":  res.SkippedPoints,
	}).Info("run analyzed")

	return &models.AnalysisResponse{RunID: run.ID, Date: run.Date, Data: res}, nil
}

// analyze consults the cache before running the pipeline. Cache failures are
// logged and otherwise ignored.
func (s *RunService) analyze(ctx context.Context, log logrus.FieldLogger, data []byte, params analysis.Params) (*analysis.Result, error) {
	var key string
	if s.cache != nil {
		key = cache.Key(data, params)
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			log.WithError(err).Warn("analysis cache read failed")
		}
		if cached != nil {
			s.metrics.CacheHit()
			return cached, nil
		}
		s.metrics.CacheMiss()
	}

	start := time.Now()
	res, err := analysis.Analyze(data, params)
	elapsed := time.Since(start)
	if err != nil {
		outcome := metrics.ResultError
		if IsInvalidInput(err) {
			outcome = metrics.ResultRejected
		}
		s.metrics.ObserveAnalysis(outcome, elapsed, 0)
		log.WithError(err).Warn("analysis failed")
		return nil, err
	}
	s.metrics.ObserveAnalysis(metrics.ResultOK, elapsed, res.TotalDistance)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, res); err != nil {
			log.WithError(err).Warn("analysis cache write failed")
		}
	}
	return res, nil
}

// runDate picks the first valid YYYY-MM-DD in the filename, then the local
// date of the first trackpoint, then today
func (s *RunService) runDate(filename string, res *analysis.Result) string {
	for _, m := range filenameDate.FindAllString(filename, -1) {
		if _, err := time.Parse("2006-01-02", m); err == nil {
			return m
		}
	}
	if len(res.ElevationData) > 0 {
		return res.ElevationData[0].Time.In(s.cfg.Location).Format("2006-01-02")
	}
	return s.now().In(s.cfg.Location).Format("2006-01-02")
}

// List returns a page of the user's runs without analysis data
func (s *RunService) List(ctx context.Context, userID string, filter models.RunFilter) (*models.RunListResponse, error) {
	filter.Normalize()

	runs, total, err := s.runs.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	return &models.RunListResponse{
		Data:       runs,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}, nil
}

// Get returns one run with its analysis data
func (s *RunService) Get(ctx context.Context, userID string, id int64) (*models.Run, error) {
	run, err := s.runs.GetByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", id, err)
	}
	return run, nil
}

// Delete removes one of the user's runs
func (s *RunService) Delete(ctx context.Context, userID string, id int64) error {
	if err := s.runs.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("failed to delete run %d: %w", id, err)
	}
	s.logger.WithFields(logrus.Fields{"user_id": userID, "run_id": id}).Info("run deleted")
	return nil
}

// IsInvalidInput reports whether err was caused by the uploaded file or
// parameters rather than by the service
func IsInvalidInput(err error) bool {
	return errors.Is(err, track.ErrEmptyTrack) ||
		errors.Is(err, track.ErrMalformedTrack) ||
		errors.Is(err, analysis.ErrInvalidPaceLimit)
}
