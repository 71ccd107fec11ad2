// Package detect is the boundary to the external sign classifier: frame
// decoding, the ordered label list and the classifier client live here.
// Nothing in this package reads or writes room state.
package detect

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

var (
	ErrUnavailable     = errors.New("classifier not loaded")
	ErrNoImage         = errors.New("no image data received")
	ErrDecode          = errors.New("image decode failed")
	ErrClassOutOfRange = errors.New("class index outside label set")
)

// Result is one classification, delivered to a room or a single requester.
type Result struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Detector composes decode, classify and label mapping. The classifier may
// be nil when no model endpoint is configured; every request then fails
// with ErrUnavailable instead of crashing anything.
type Detector struct {
	classifier Classifier
	labels     []string
	inputSize  int
}

func NewDetector(c Classifier, labels []string, inputSize int) *Detector {
	return &Detector{classifier: c, labels: labels, inputSize: inputSize}
}

// Detect runs the full pipeline for one frame. Failure signals are checked
// in a fixed order: classifier available, payload present, frame decodes,
// class index within the label set. The first failure wins.
func (d *Detector) Detect(ctx context.Context, image string) (Result, error) {
	if d.classifier == nil {
		return Result{}, ErrUnavailable
	}
	if image == "" {
		return Result{}, ErrNoImage
	}

	tensor, err := DecodeFrame(image, d.inputSize)
	if err != nil {
		return Result{}, err
	}

	idx, confidence, err := d.classifier.Classify(ctx, tensor)
	if err != nil {
		return Result{}, err
	}

	if idx < 0 || idx >= len(d.labels) {
		// Label list and model disagree; that is a deployment problem,
		// not a per-request one, so it is also logged loudly.
		log.Error().Str("module", "detect").Int("class_index", idx).Int("labels", len(d.labels)).Msg("class index outside label set")
		return Result{}, ErrClassOutOfRange
	}

	res := Result{Label: d.labels[idx], Confidence: confidence}
	log.Info().Str("module", "detect").Str("label", res.Label).Float64("confidence", res.Confidence).Msg("detection")
	return res, nil
}
