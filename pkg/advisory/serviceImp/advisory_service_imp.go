package serviceImp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"agrow/entities"
	"agrow/pkg/advisory/repository"
	"agrow/pkg/advisory/service"
	"agrow/pkg/catalog"
	"agrow/pkg/engine"
	"agrow/pkg/logging"
)

const (
	fallbackScore   = 60
	maxAlternatives = 2
	historyLimit    = 50
)

type advisorySvc struct {
	crops    catalog.Source
	diseases catalog.DiseaseSource
	logs     repository.LogRepository
	rnd      engine.Rand
}

func New(d service.Deps) service.AdvisoryService {
	if d.Crops == nil {
		d.Crops = catalog.Static(catalog.Builtin())
	}
	if d.Diseases == nil {
		d.Diseases = catalog.DiseaseTable(catalog.Diseases())
	}
	if d.Rand == nil {
		d.Rand = engine.SystemRand()
	}
	return &advisorySvc{crops: d.Crops, diseases: d.Diseases, logs: d.Logs, rnd: d.Rand}
}

func validSoil(s *engine.SoilSample) error {
	if s == nil {
		return fmt.Errorf("%w: soilData", service.ErrMissingField)
	}
	if s.Ph < 0 || s.Ph > 14 {
		return fmt.Errorf("%w: ph must be between 0 and 14", service.ErrInvalidField)
	}
	if s.Nitrogen < 0 || s.Phosphorus < 0 || s.Potassium < 0 {
		return fmt.Errorf("%w: nutrient levels must not be negative", service.ErrInvalidField)
	}
	if s.Humidity != nil && (*s.Humidity < 0 || *s.Humidity > 100) {
		return fmt.Errorf("%w: humidity must be between 0 and 100", service.ErrInvalidField)
	}
	if s.Rainfall != nil && *s.Rainfall < 0 {
		return fmt.Errorf("%w: rainfall must not be negative", service.ErrInvalidField)
	}
	return nil
}

// tipsFor collects one tip per violated factor, the crop's own tips and a regional note.
func tipsFor(c engine.ScoredCrop, vs []engine.Violation, region string) []string {
	tips := []string{}
	for _, v := range vs {
		if v.Tip != "" {
			tips = append(tips, v.Tip)
		}
	}
	tips = append(tips, c.CropProfile.Tips...)
	if region = strings.TrimSpace(region); region != "" {
		if c.GrownIn(region) {
			tips = append(tips, fmt.Sprintf("%s is widely grown in %s; local seed and market channels are well established.", c.Name, region))
		} else if len(c.Regions) > 0 {
			tips = append(tips, fmt.Sprintf("%s is not a common crop in %s; check variety suitability with your local extension office.", c.Name, region))
		}
	}
	return tips
}

func recommendation(c engine.ScoredCrop, s engine.SoilSample, region string) service.CropRecommendation {
	return service.CropRecommendation{
		ScoredCrop: c,
		Tips:       tipsFor(c, engine.Violations(s, c.CropProfile), region),
		Breakdown:  engine.Explain(s, c.CropProfile),
	}
}

func fallbackCrop(s engine.SoilSample, region string) service.CropRecommendation {
	p := catalog.Default()
	sc := engine.ScoredCrop{
		CropProfile:          p,
		SuitabilityScore:     fallbackScore,
		ConfidencePercentage: engine.Confidence(fallbackScore),
		Rationale:            engine.Rationale(p.Name, fallbackScore, nil),
	}
	return service.CropRecommendation{
		ScoredCrop: sc,
		Tips:       tipsFor(sc, nil, region),
		Breakdown:  engine.Explain(s, p),
	}
}

func (s *advisorySvc) RecommendCrop(ctx context.Context, uid string, req service.CropRequest) (service.CropResponse, error) {
	if err := validSoil(req.SoilData); err != nil {
		return service.CropResponse{}, err
	}
	soil := *req.SoilData
	resp := service.CropResponse{Alternatives: []service.CropRecommendation{}}

	profiles, err := s.crops.Profiles(ctx)
	if err == nil && len(profiles) == 0 {
		err = errors.New("catalog is empty")
	}
	if err != nil {
		logging.Log.WithError(err).WithField("uid", uid).Warn("[advisory] catalog unavailable, using default crop")
		resp.Crop = fallbackCrop(soil, req.Region)
		resp.Fallback = true
	} else {
		ranked := engine.Evaluate(soil, profiles)
		resp.Crop = recommendation(ranked[0], soil, req.Region)
		for _, c := range ranked[1:min(len(ranked), 1+maxAlternatives)] {
			resp.Alternatives = append(resp.Alternatives, recommendation(c, soil, req.Region))
		}
	}

	resp.LogID = s.persist(ctx, uid, entities.KindCrop, req, resp, resp.Fallback)
	return resp, nil
}

func (s *advisorySvc) PlanBudget(ctx context.Context, uid string, req service.BudgetRequest) (service.BudgetResponse, error) {
	fd := req.FinancialData
	if fd == nil {
		return service.BudgetResponse{}, fmt.Errorf("%w: financialData", service.ErrMissingField)
	}
	if fd.Budget == nil {
		return service.BudgetResponse{}, fmt.Errorf("%w: financialData.budget", service.ErrMissingField)
	}
	if math.IsNaN(*fd.Budget) || math.IsInf(*fd.Budget, 0) {
		return service.BudgetResponse{}, fmt.Errorf("%w: budget must be a finite number", service.ErrInvalidField)
	}
	if *fd.Budget < 0 {
		return service.BudgetResponse{}, fmt.Errorf("%w: budget must not be negative", service.ErrInvalidField)
	}

	var resp service.BudgetResponse
	profiles, err := s.crops.Profiles(ctx)
	if err == nil && len(profiles) == 0 {
		err = errors.New("catalog is empty")
	}
	if err != nil {
		logging.Log.WithError(err).WithField("uid", uid).Warn("[advisory] catalog unavailable, planning on built-in table")
		profiles = catalog.Builtin()
		resp.Fallback = true
	}
	resp.BudgetPlan = engine.Allocate(*fd.Budget, fd.ExistingCrops, profiles, fd.MarketPrices)

	resp.LogID = s.persist(ctx, uid, entities.KindBudget, req, resp, resp.Fallback)
	return resp, nil
}

// analysisFailed is the 200-OK payload for a diagnosis that could not be made.
func analysisFailed() engine.DiagnosisResult {
	d := engine.Diagnosis{Disease: catalog.Disease{
		Name:        service.AnalysisFailed,
		Description: "The image could not be analysed. Please try again with a clear photo of the affected leaves.",
		Symptoms:    []string{},
		Treatment:   []string{"Retake the photo in daylight, close to the affected area."},
		Prevention:  []string{},
		Severity:    "unknown",
	}}
	return engine.DiagnosisResult{MainDisease: d, Diseases: []engine.Diagnosis{}}
}

func (s *advisorySvc) AnalyzeDisease(ctx context.Context, uid string, req service.DiseaseRequest) (service.DiseaseResponse, error) {
	if strings.TrimSpace(req.ImageURL) == "" {
		return service.DiseaseResponse{}, fmt.Errorf("%w: imageUrl", service.ErrMissingField)
	}

	var resp service.DiseaseResponse
	failed := false
	diseases, err := s.diseases.Diseases(ctx)
	if err == nil {
		resp.DiagnosisResult, err = engine.Simulate(s.rnd, req.WeatherData, diseases)
	}
	if err != nil {
		logging.Log.WithError(err).WithFields(logrus.Fields{"uid": uid, "image": req.ImageURL}).Warn("[advisory] disease analysis failed")
		resp.DiagnosisResult = analysisFailed()
		failed = true
	}

	resp.LogID = s.persist(ctx, uid, entities.KindDisease, req, resp.DiagnosisResult, failed)
	return resp, nil
}

func (s *advisorySvc) History(ctx context.Context, uid, kind string, limit int) ([]entities.RecommendationLog, error) {
	switch kind {
	case "", entities.KindCrop, entities.KindBudget, entities.KindDisease:
	default:
		return nil, fmt.Errorf("%w: kind must be crop, budget or disease", service.ErrInvalidField)
	}
	if limit <= 0 || limit > historyLimit {
		limit = historyLimit
	}
	if s.logs == nil {
		return []entities.RecommendationLog{}, nil
	}
	return s.logs.List(ctx, uid, kind, limit)
}

func (s *advisorySvc) ExportBudget(ctx context.Context, uid, logID string) ([]byte, error) {
	if s.logs == nil {
		return nil, service.ErrNotFound
	}
	l, err := s.logs.FindByID(ctx, logID, uid)
	if err != nil {
		return nil, err
	}
	if l.Kind != entities.KindBudget {
		return nil, service.ErrNotFound
	}
	var out service.BudgetResponse
	if err := json.Unmarshal(l.Output, &out); err != nil {
		return nil, fmt.Errorf("decode stored plan: %w", err)
	}
	return budgetWorkbook(out.BudgetPlan, l.CreatedAt)
}

// persist writes the request and result as one row. Failures are logged and
// the caller still gets its result, without a log id.
func (s *advisorySvc) persist(ctx context.Context, uid, kind string, in, out any, fallback bool) string {
	if s.logs == nil {
		return ""
	}
	ib, err := json.Marshal(in)
	if err != nil {
		logging.Log.WithError(err).Warn("[advisory] encode history input")
		return ""
	}
	ob, err := json.Marshal(out)
	if err != nil {
		logging.Log.WithError(err).Warn("[advisory] encode history output")
		return ""
	}
	l := &entities.RecommendationLog{UserID: uid, Kind: kind, Input: ib, Output: ob, Fallback: fallback}
	if err := s.logs.Create(ctx, l); err != nil {
		logging.Log.WithError(err).WithFields(logrus.Fields{"uid": uid, "kind": kind}).Warn("[advisory] history not saved")
		return ""
	}
	return l.ID
}
