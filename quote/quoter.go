package quote

import (
	"context"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"insurecast/ml"
)

const (
	InvalidInputText = "Invalid Input. Kindly Reload the Webpage and try again!!!"
	UnavailableText  = "The premium could not be estimated right now. Please try again later."
	DisclaimerText   = "Premiums are determined by Health Insurance Companies private statistical procedures " +
		"and complicated models, which are kept concealed from the public. The goal of this predictor " +
		"is to see if machine learning algorithms can be used to anticipate the pricing of yearly health " +
		"insurance premiums on the basis of contract parameters and a person's characteristics."
)

// Predictor is the model entry point; *ml.Store satisfies it.
type Predictor interface {
	Predict(row ml.Row) (float64, error)
}

type MessageKind string

const (
	KindSuccess MessageKind = "success"
	KindWarning MessageKind = "warning"
	KindError   MessageKind = "error"
	KindInfo    MessageKind = "info"
)

type Message struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

// Check is the outcome of validation alone.
type Check struct {
	Inputs   Inputs    `json:"-"`
	BMI      *float64  `json:"bmi,omitempty"`
	Warnings []Warning `json:"warnings"`
}

type Result struct {
	Check
	Record   *Record   `json:"record,omitempty"`
	Premium  *float64  `json:"premium,omitempty"`
	Cached   bool      `json:"cached"`
	Messages []Message `json:"messages"`
	Err      error     `json:"-"`
}

// Predicted reports whether the model produced a premium.
func (r Result) Predicted() bool {
	return r.Premium != nil
}

type Options struct {
	HeightUnit HeightUnit
	Locale     language.Tag
	CacheSize  int
	Limits     Limits
}

func DefaultOptions() Options {
	return Options{
		HeightUnit: Centimetres,
		Locale:     language.AmericanEnglish,
		CacheSize:  1024,
		Limits:     DefaultLimits,
	}
}

// Quoter runs one form submission through validation, assembly and the
// model.
type Quoter struct {
	model   Predictor
	opts    Options
	printer *message.Printer
	cache   *lru.Cache[Record, float64]
	logger  *zap.Logger

	// generation advances on every Purge. Premiums computed under an older
	// generation are not cached.
	mu         sync.Mutex
	generation uint64
}

func NewQuoter(model Predictor, opts Options, logger *zap.Logger) (*Quoter, error) {
	if model == nil {
		return nil, ml.ErrNotLoaded
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.HeightUnit == "" {
		opts.HeightUnit = Centimetres
	}
	if opts.Limits == (Limits{}) {
		opts.Limits = DefaultLimits
	}
	q := &Quoter{
		model:   model,
		opts:    opts,
		printer: message.NewPrinter(opts.Locale),
		logger:  logger,
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[Record, float64](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create quote cache: %w", err)
		}
		q.cache = cache
	}
	return q, nil
}

// Purge drops memoised premiums, e.g. after a model reload.
func (q *Quoter) Purge() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.generation++
	if q.cache != nil {
		q.cache.Purge()
	}
}

func (q *Quoter) currentGeneration() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.generation
}

// remember caches premium unless a purge happened since gen was read.
func (q *Quoter) remember(gen uint64, record Record, premium float64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if gen == q.generation {
		q.cache.Add(record, premium)
	}
}

func (q *Quoter) Check(form Form) Check {
	in := Parse(form, q.opts.HeightUnit)
	return Check{
		Inputs:   in,
		BMI:      in.BMI,
		Warnings: Validate(in, q.opts.Limits),
	}
}

func (q *Quoter) Quote(ctx context.Context, form Form) Result {
	result := Result{Check: q.Check(form)}
	for _, w := range result.Warnings {
		result.Messages = append(result.Messages, Message{Kind: KindWarning, Text: w.Message()})
	}

	premium, cached, err := q.predict(ctx, result.Inputs, &result)
	switch {
	case errors.Is(err, ErrInvalidInput):
		result.Err = err
		result.Messages = append(result.Messages, Message{Kind: KindError, Text: InvalidInputText})
		q.logger.Info("quote rejected", zap.Error(err))
	case err != nil:
		result.Err = err
		result.Messages = append(result.Messages, Message{Kind: KindError, Text: UnavailableText})
		q.logger.Error("prediction failed", zap.Error(err))
	default:
		result.Premium = &premium
		result.Cached = cached
		result.Messages = append(result.Messages, Message{Kind: KindSuccess, Text: q.FormatPremium(premium)})
		q.logger.Info("quote served",
			zap.Float64("premium", premium),
			zap.Bool("cached", cached),
			zap.Int("warnings", len(result.Warnings)))
	}

	result.Messages = append(result.Messages, Message{Kind: KindInfo, Text: DisclaimerText})
	return result
}

func (q *Quoter) predict(ctx context.Context, in Inputs, result *Result) (float64, bool, error) {
	record, err := Assemble(in)
	if err != nil {
		return 0, false, err
	}
	result.Record = &record

	gen := q.currentGeneration()
	if q.cache != nil {
		if premium, ok := q.cache.Get(record); ok {
			return premium, true, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	premium, err := q.model.Predict(record.Row())
	if err != nil {
		return 0, false, fmt.Errorf("predict: %w", err)
	}
	if q.cache != nil {
		q.remember(gen, record, premium)
	}
	return premium, false, nil
}

// FormatPremium renders the success line, rounded to whole dollars with
// locale digit grouping.
func (q *Quoter) FormatPremium(premium float64) string {
	return q.printer.Sprintf("Predicted Cost: $%.0f", premium)
}
