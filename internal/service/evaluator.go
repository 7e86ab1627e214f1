package service

import (
	"context"
	"devcollab_backend/internal/model"
	"devcollab_backend/pkg/logger"
	"devcollab_backend/pkg/monitoring"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrEmptySubmission     = errors.New("empty submission")
)

// Submission 待评测的代码
type Submission struct {
	Language  string
	Content   string
	Challenge *model.Challenge
}

// Evaluation 评测结论，Score 取值 0-100
type Evaluation struct {
	Score         int    `json:"score"`
	Passed        bool   `json:"passed"`
	Feedback      string `json:"feedback"`
	EvaluatorUsed string `json:"evaluatorUsed"`
}

// Evaluator 打分器，只负责给出分数与反馈，是否通过由评测链按阈值判定
type Evaluator interface {
	Name() string
	Evaluate(ctx context.Context, sub Submission) (Evaluation, error)
}

// EvaluatorChain 主评测器出错时降级到兜底评测器，任何情况下都返回结论
type EvaluatorChain struct {
	primary       Evaluator
	fallback      Evaluator
	passThreshold atomic.Int64
}

func NewEvaluatorChain(primary, fallback Evaluator, passThreshold int) *EvaluatorChain {
	c := &EvaluatorChain{primary: primary, fallback: fallback}
	c.passThreshold.Store(int64(passThreshold))
	return c
}

// SetPassThreshold 配置热更新
func (c *EvaluatorChain) SetPassThreshold(threshold int) {
	c.passThreshold.Store(int64(threshold))
}

func (c *EvaluatorChain) PassThreshold() int {
	return int(c.passThreshold.Load())
}

func (c *EvaluatorChain) Evaluate(ctx context.Context, sub Submission) Evaluation {
	result, err := safeEvaluate(ctx, c.primary, sub)
	if err == nil {
		return c.verdict(result, model.EvaluatorPrimary)
	}

	logger.Log.Warn("primary evaluator failed, falling back",
		zap.String("evaluator", nameOf(c.primary)),
		zap.String("language", sub.Language),
		zap.Error(err))
	monitoring.EngineDegradations.WithLabelValues("evaluator_primary").Inc()

	result, fbErr := safeEvaluate(ctx, c.fallback, sub)
	if fbErr != nil {
		logger.Log.Error("fallback evaluator failed",
			zap.String("evaluator", nameOf(c.fallback)),
			zap.Error(fbErr))
		monitoring.EngineDegradations.WithLabelValues("evaluator_fallback").Inc()
		return Evaluation{
			Score:         0,
			Passed:        false,
			Feedback:      "Automatic evaluation is temporarily unavailable; this submission was recorded with a score of 0.",
			EvaluatorUsed: model.EvaluatorFallback,
		}
	}

	result = c.verdict(result, model.EvaluatorFallback)
	result.Feedback = "[degraded evaluation] " + result.Feedback
	return result
}

func (c *EvaluatorChain) verdict(e Evaluation, tag string) Evaluation {
	e.Score = clampScore(e.Score)
	e.Passed = e.Score >= c.PassThreshold()
	e.EvaluatorUsed = tag
	return e
}

// safeEvaluate 把评测器 panic 也视为错误
func safeEvaluate(ctx context.Context, ev Evaluator, sub Submission) (result Evaluation, err error) {
	if ev == nil {
		return Evaluation{}, errors.New("evaluator not configured")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("evaluator %s panicked: %v", ev.Name(), r)
		}
	}()
	return ev.Evaluate(ctx, sub)
}

func nameOf(ev Evaluator) string {
	if ev == nil {
		return "<nil>"
	}
	return ev.Name()
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
