package inference

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fembalance/internal/domain/cycle"
	"fembalance/internal/domain/history"
	"fembalance/internal/domain/pcos"
	"fembalance/internal/domain/symptom"
	"fembalance/internal/metrics"
	cycleml "fembalance/internal/ml/cycle"
	pcosml "fembalance/internal/ml/pcos"
	"fembalance/internal/ml/symptoms"
	"fembalance/internal/validation"
	"fembalance/pkg/errors"
	"fembalance/pkg/logger"
)

// Cache stores serialized prediction responses. Any lookup error is
// treated as a miss
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
}

// Service coordinates the prediction pipeline: input validation,
// model inference, output-schema validation, response enrichment,
// and the optional cache and history side channels
type Service struct {
	cyclePredictor *cycleml.Predictor
	pcosPredictor  *pcosml.Predictor
	analyzer       *symptoms.Analyzer
	validator      *validation.Validator

	history  history.Repository
	cache    Cache
	cacheTTL time.Duration

	log *logger.Logger

	// now is injectable for tests; defaults to time.Now
	now func() time.Time
}

// NewService creates the inference coordinator
func NewService(
	cyclePredictor *cycleml.Predictor,
	pcosPredictor *pcosml.Predictor,
	analyzer *symptoms.Analyzer,
	validator *validation.Validator,
) *Service {
	return &Service{
		cyclePredictor: cyclePredictor,
		pcosPredictor:  pcosPredictor,
		analyzer:       analyzer,
		validator:      validator,
		log:            logger.Get().With("component", "inference_service"),
		now:            time.Now,
	}
}

// EnableHistory turns on prediction history persistence. History
// write failures are logged, never surfaced to the caller
func (s *Service) EnableHistory(repo history.Repository) {
	s.history = repo
}

// EnableCache turns on the prediction response cache
func (s *Service) EnableCache(cache Cache, ttl time.Duration) {
	s.cache = cache
	s.cacheTTL = ttl
}

// Ready reports whether both predictors hold trained models
func (s *Service) Ready() bool {
	return s.CycleReady() && s.PCOSReady()
}

// CycleReady reports whether the cycle model is loaded
func (s *Service) CycleReady() bool {
	return s.cyclePredictor.Ready()
}

// PCOSReady reports whether the PCOS model is loaded
func (s *Service) PCOSReady() bool {
	return s.pcosPredictor.Ready()
}

// CyclePrediction is the enriched next-cycle response
type CyclePrediction struct {
	PredictionID uuid.UUID `json:"prediction_id"`
	cycle.Prediction
	Insights        []string  `json:"insights"`
	Recommendations []string  `json:"recommendations"`
	Timestamp       time.Time `json:"timestamp"`
}

// PCOSAssessment is the enriched PCOS risk response
type PCOSAssessment struct {
	PredictionID uuid.UUID `json:"prediction_id"`
	pcos.Prediction
	Recommendations []string  `json:"recommendations"`
	Timestamp       time.Time `json:"timestamp"`
}

// SymptomAnalysis is the enriched symptom patterns response
type SymptomAnalysis struct {
	AnalysisID uuid.UUID `json:"analysis_id"`
	symptom.PatternsReport
	Timestamp time.Time `json:"timestamp"`
}

// ModelsInfo describes the loaded models for diagnostics
type ModelsInfo struct {
	Cycle cycleml.Info `json:"cycle_prediction"`
	PCOS  pcosml.Info  `json:"pcos_risk"`
}

// PredictCycle runs the full next-cycle pipeline
func (s *Service) PredictCycle(ctx context.Context, records []cycle.Record) (*CyclePrediction, error) {
	start := time.Now()

	key := cacheKey("cycle", s.cyclePredictor.Version(), records)
	if s.cache != nil && key != "" {
		var cached CyclePrediction
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			metrics.RecordCacheLookup("cycle", true)
			return &cached, nil
		}
		metrics.RecordCacheLookup("cycle", false)
	}

	pred, err := s.cyclePredictor.Predict(records)
	if err != nil {
		metrics.RecordPrediction("cycle", time.Since(start), 0, "error")
		return nil, err
	}

	if ok, details := validation.ValidateCycleOutput(pred); !ok {
		s.log.Errorw("Cycle model produced invalid output", "details", details)
		metrics.RecordPrediction("cycle", time.Since(start), 0, "invalid_output")
		return nil, errors.Wrap(errors.ErrInvalidModelOutput, strings.Join(details, "; "))
	}

	result := &CyclePrediction{
		PredictionID:    uuid.New(),
		Prediction:      *pred,
		Insights:        cycleInsights(records),
		Recommendations: recommendForCycle(records),
		Timestamp:       s.now().UTC(),
	}

	metrics.RecordPrediction("cycle", time.Since(start), pred.Confidence, "success")
	s.log.Infow("Cycle prediction completed",
		"predicted_cycle_length", pred.PredictedCycleLength,
		"confidence", pred.Confidence,
	)

	s.store(ctx, history.KindCycle, result.PredictionID, pred.ModelVersion, pred.Confidence, result)
	s.cacheSet(ctx, key, result)

	return result, nil
}

// PredictPCOSRisk runs the full PCOS risk pipeline
func (s *Service) PredictPCOSRisk(ctx context.Context, profile *pcos.Profile) (*PCOSAssessment, error) {
	start := time.Now()

	key := cacheKey("pcos", s.pcosPredictor.Version(), profile)
	if s.cache != nil && key != "" {
		var cached PCOSAssessment
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			metrics.RecordCacheLookup("pcos", true)
			return &cached, nil
		}
		metrics.RecordCacheLookup("pcos", false)
	}

	pred, err := s.pcosPredictor.Predict(profile)
	if err != nil {
		metrics.RecordPrediction("pcos", time.Since(start), 0, "error")
		return nil, err
	}

	if ok, details := validation.ValidatePCOSOutput(pred); !ok {
		s.log.Errorw("PCOS model produced invalid output", "details", details)
		metrics.RecordPrediction("pcos", time.Since(start), 0, "invalid_output")
		return nil, errors.Wrap(errors.ErrInvalidModelOutput, strings.Join(details, "; "))
	}

	result := &PCOSAssessment{
		PredictionID:    uuid.New(),
		Prediction:      *pred,
		Recommendations: recommendForRisk(pred.RiskLevel),
		Timestamp:       s.now().UTC(),
	}

	metrics.RecordPrediction("pcos", time.Since(start), pred.Confidence, "success")
	s.log.Infow("PCOS risk prediction completed",
		"risk_level", pred.RiskLevel,
		"confidence", pred.Confidence,
	)

	s.store(ctx, history.KindPCOS, result.PredictionID, pred.ModelVersion, pred.Confidence, result)
	s.cacheSet(ctx, key, result)

	return result, nil
}

// AnalyzeSymptoms summarizes a symptom log into a patterns report
func (s *Service) AnalyzeSymptoms(ctx context.Context, records []symptom.Record) (*SymptomAnalysis, error) {
	if ok, details := s.validator.ValidateSymptoms(records); !ok {
		return nil, errors.NewInputError(details)
	}

	report, err := s.analyzer.Analyze(records)
	if err != nil {
		return nil, err
	}

	s.log.Infow("Symptom analysis completed",
		"total_symptoms", report.TotalSymptoms,
		"unique_types", report.UniqueTypes,
	)

	return &SymptomAnalysis{
		AnalysisID:     uuid.New(),
		PatternsReport: *report,
		Timestamp:      s.now().UTC(),
	}, nil
}

// ModelsInfo returns diagnostics for both loaded models
func (s *Service) ModelsInfo() ModelsInfo {
	return ModelsInfo{
		Cycle: s.cyclePredictor.ModelInfo(),
		PCOS:  s.pcosPredictor.ModelInfo(),
	}
}

// History returns stored prediction entries of a kind since a time.
// Returns ErrUnavailable when history persistence is disabled
func (s *Service) History(ctx context.Context, kind history.Kind, since time.Time) ([]history.Entry, error) {
	if s.history == nil {
		return nil, errors.Wrap(errors.ErrUnavailable, "prediction history is not enabled")
	}
	return s.history.ListSince(ctx, kind, since)
}

func (s *Service) store(ctx context.Context, kind history.Kind, id uuid.UUID, version string, confidence float64, payload interface{}) {
	if s.history == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Warnw("Failed to serialize prediction for history", "error", err)
		return
	}

	entry := &history.Entry{
		ID:           id,
		Kind:         kind,
		ModelVersion: version,
		Confidence:   confidence,
		Payload:      data,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.history.Create(ctx, entry); err != nil {
		s.log.Warnw("Failed to persist prediction history", "id", id, "error", err)
	}
}

func (s *Service) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil || key == "" {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.log.Warnw("Failed to cache prediction", "key", key, "error", err)
	}
}

// cacheKey hashes the request payload so identical inputs against the
// same model version share a cache slot
func cacheKey(model, version string, input interface{}) string {
	data, err := json.Marshal(input)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("prediction:%s:%s:%s", model, version, hex.EncodeToString(sum[:]))
}
