package cascade

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/plate-ocr/internal/detection"
	"github.com/ironsheep/plate-ocr/internal/imaging"
	"github.com/ironsheep/plate-ocr/internal/logging"
	"github.com/ironsheep/plate-ocr/internal/ocr"
	"github.com/ironsheep/plate-ocr/internal/plate"
)

// Orchestrator runs the recognition cascade against a shared
// DetectionContext.
type Orchestrator struct {
	dc     *DetectionContext
	logger *logging.Logger

	// Seams for tests.
	enhance func(image.Image) *image.Gray
	contour func(image.Image) *detection.ContourResult
	newID   func() string
	now     func() time.Time
}

// New creates an orchestrator. A nil logger discards output.
func New(dc *DetectionContext, logger *logging.Logger) *Orchestrator {
	if dc == nil {
		dc = NewDetectionContext(nil, nil)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Orchestrator{
		dc:      dc,
		logger:  logger,
		enhance: imaging.Enhance,
		contour: detection.DetectByGeometry,
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

// Capabilities reports what the shared context provides.
func (o *Orchestrator) Capabilities() CapabilitySet {
	return o.dc.Capabilities
}

var errNoRecognizer = errors.New("no text recognizer")

// attempt is what one stage produced.
type attempt struct {
	ran       bool // recognition was attempted
	fragments []ocr.Fragment
	match     plate.PlateMatch
	matched   bool
	region    *detection.DetectedRegion
	crop      image.Image
}

// stageFunc localizes and recognizes for one stage. A nil attempt with a nil
// error is not allowed.
type stageFunc func(ctx context.Context, img image.Image) (*attempt, error)

// Recognize runs the cascade over img and always returns a result.
//
// Stages run in order and the first plate match ends the run. The result
// records the object detector's region count and the fragments of the last
// stage that ran recognition, on success and on failure alike.
func (o *Orchestrator) Recognize(ctx context.Context, img image.Image) *Result {
	requestID := o.newID()
	log := o.logger.With("request_id", requestID)
	start := o.now()

	yoloDetections := 0
	stages := []struct {
		stage Stage
		run   stageFunc
	}{
		{StageObjectDetection, func(ctx context.Context, img image.Image) (*attempt, error) {
			return o.runObjectDetection(ctx, img, &yoloDetections)
		}},
		{StageContour, o.runContour},
		{StageEnhancedFull, o.runEnhancedFull},
		{StageRawFull, o.runRawFull},
	}

	var (
		reports   = make([]StageReport, 0, len(stages))
		last      *attempt
		lastStage Stage
		winner    *attempt
		winStage  Stage
		abort     error
	)

	log.Info("starting plate recognition", "capabilities", o.dc.Capabilities.String())
	for i, s := range stages {
		if err := ctx.Err(); err != nil {
			abort = err
			log.Warn("recognition cancelled", "before_stage", s.stage, "error", err)
			break
		}

		log.Debug(fmt.Sprintf("Stage %d: attempting %s", i+1, s.stage))
		stageStart := o.now()
		a, err := o.safeRun(ctx, s.stage, s.run, img)
		report := StageReport{Stage: s.stage, Duration: o.now().Sub(stageStart).String()}

		if a != nil && a.ran {
			last, lastStage = a, s.stage
			report.Ran = true
			report.Fragments = len(a.fragments)
			report.Matched = a.matched
		}
		if err != nil {
			report.Code = stageCode(err)
			report.Error = err.Error()
			if IsCode(err, ErrorNoRegion) {
				log.Debug(fmt.Sprintf("Stage %d: %s skipped", i+1, s.stage), "reason", err)
			} else {
				log.Warn(fmt.Sprintf("Stage %d: %s failed", i+1, s.stage), "error", err)
			}
		}
		reports = append(reports, report)

		if a != nil && a.matched {
			winner, winStage = a, s.stage
			log.Info(fmt.Sprintf("Stage %d: %s succeeded", i+1, s.stage),
				"plate", a.match.Text, "grammar", a.match.Grammar)
			break
		}
		if err == nil && a != nil && a.ran {
			log.Debug(fmt.Sprintf("Stage %d: %s found no plate, escalating", i+1, s.stage),
				"fragments", len(a.fragments), "text", strings.Join(ocr.Texts(a.fragments), " "))
		}
	}

	result := &Result{
		Plates:         []PlateEntry{},
		RawTexts:       []string{},
		YoloDetections: yoloDetections,
		Stages:         reports,
		RequestID:      requestID,
		Timestamp:      start,
	}
	if last != nil {
		result.RawTexts = ocr.Texts(last.fragments)
	}

	if winner == nil {
		result.Stage = lastStage
		if joined := strings.Join(result.RawTexts, " "); joined != "" {
			result.PlateNumber = &joined
		}
		result.Error = plate.ErrNoMatch.Error()
		if abort != nil {
			result.Error = abort.Error()
		}
		log.Info("plate recognition failed", "raw_texts", len(result.RawTexts),
			"yolo_detections", yoloDetections, "elapsed", o.now().Sub(start))
		return result
	}

	text := winner.match.Text
	result.Success = true
	result.PlateNumber = &text
	result.Plates = []PlateEntry{{PlateNumber: text}}
	result.Stage = winStage
	result.Grammar = winner.match.Grammar
	result.Confidence = Confidence(winner.fragments, text)
	result.Region = winner.region
	if winner.crop != nil {
		if c := imaging.PlateColor(winner.crop); c != nil {
			result.PlateColor = c.Name
		}
	}
	log.Info("plate recognition complete", "plate", text, "stage", winStage,
		"confidence", result.Confidence, "elapsed", o.now().Sub(start))
	return result
}

// safeRun executes one stage and converts a panic into a StageError.
func (o *Orchestrator) safeRun(ctx context.Context, stage Stage, run stageFunc, img image.Image) (a *attempt, err error) {
	defer func() {
		if r := recover(); r != nil {
			a = nil
			err = newStageError(stage, ErrorStageInternal, fmt.Errorf("panic: %v", r))
		}
	}()
	return run(ctx, img)
}

// runObjectDetection stores the raw region count in count as soon as the
// detector returns, so it survives a later failure in the stage.
func (o *Orchestrator) runObjectDetection(ctx context.Context, img image.Image, count *int) (*attempt, error) {
	if !o.dc.Capabilities.Has(ObjectDetection) {
		return nil, newStageError(StageObjectDetection, ErrorCapabilityUnavailable,
			errors.New("no object detector"))
	}

	res, err := detection.DetectByModel(ctx, o.dc.Detector, img)
	if err != nil {
		return nil, newStageError(StageObjectDetection, ErrorStageInternal, err)
	}
	*count = len(res.Regions)
	if res.Crop == nil {
		return nil, newStageError(StageObjectDetection, ErrorNoRegion,
			fmt.Errorf("%d detections, none plate-shaped", len(res.Regions)))
	}
	if !o.dc.Capabilities.Has(TextRecognition) {
		return nil, newStageError(StageObjectDetection, ErrorCapabilityUnavailable, errNoRecognizer)
	}

	return o.recognizeRegion(ctx, StageObjectDetection, res.Crop, res.SelectedRegion())
}

func (o *Orchestrator) runContour(ctx context.Context, img image.Image) (*attempt, error) {
	if !o.dc.Capabilities.Has(TextRecognition) {
		return nil, newStageError(StageContour, ErrorCapabilityUnavailable, errNoRecognizer)
	}
	res := o.contour(img)
	if res == nil {
		return nil, newStageError(StageContour, ErrorNoRegion, nil)
	}
	region := res.Region
	return o.recognizeRegion(ctx, StageContour, res.Crop, &region)
}

func (o *Orchestrator) runEnhancedFull(ctx context.Context, img image.Image) (*attempt, error) {
	if !o.dc.Capabilities.Has(TextRecognition) {
		return nil, newStageError(StageEnhancedFull, ErrorCapabilityUnavailable, errNoRecognizer)
	}
	return o.recognize(ctx, StageEnhancedFull, o.enhance(img))
}

func (o *Orchestrator) runRawFull(ctx context.Context, img image.Image) (*attempt, error) {
	if !o.dc.Capabilities.Has(TextRecognition) {
		return nil, newStageError(StageRawFull, ErrorCapabilityUnavailable, errNoRecognizer)
	}
	return o.recognize(ctx, StageRawFull, img)
}

// recognizeRegion enhances a localized crop before recognition.
func (o *Orchestrator) recognizeRegion(ctx context.Context, stage Stage, crop image.Image, region *detection.DetectedRegion) (*attempt, error) {
	a, err := o.recognize(ctx, stage, o.enhance(crop))
	a.region = region
	a.crop = crop
	return a, err
}

// recognize runs text recognition and extraction. The returned attempt is
// never nil; a recognizer error leaves it with no fragments.
func (o *Orchestrator) recognize(ctx context.Context, stage Stage, img image.Image) (*attempt, error) {
	a := &attempt{ran: true, fragments: []ocr.Fragment{}}
	fragments, err := o.dc.Recognizer.Recognize(ctx, img)
	if err != nil {
		return a, newStageError(stage, ErrorStageInternal, err)
	}
	if fragments != nil {
		a.fragments = fragments
	}
	a.match, a.matched = plate.Extract(ocr.Texts(a.fragments))
	return a, nil
}

func stageCode(err error) ErrorCode {
	for _, c := range []ErrorCode{ErrorCapabilityUnavailable, ErrorNoRegion, ErrorStageInternal} {
		if IsCode(err, c) {
			return c
		}
	}
	return ErrorStageInternal
}

// Confidence scores a recognized plate from the fragments that produced it.
//
// It is the mean confidence of the fragments whose whitespace-free text
// occurs in the plate. When no fragment qualifies the mean over all
// fragments is used, and SuccessConfidence when there are none.
func Confidence(fragments []ocr.Fragment, plateNumber string) float64 {
	var sum float64
	var n int
	for _, f := range fragments {
		t := strings.Join(strings.Fields(f.Text), "")
		if t != "" && strings.Contains(plateNumber, t) {
			sum += f.Confidence
			n++
		}
	}
	if n > 0 {
		return sum / float64(n)
	}
	if len(fragments) == 0 {
		return SuccessConfidence
	}
	for _, f := range fragments {
		sum += f.Confidence
	}
	return sum / float64(len(fragments))
}
