package service

import (
	"context"
	"devcollab_backend/internal/config"
	"devcollab_backend/internal/model"
	"devcollab_backend/internal/repository"
	"devcollab_backend/internal/util"
	"devcollab_backend/pkg/logger"
	"devcollab_backend/pkg/monitoring"
	"devcollab_backend/pkg/tracing"
	"encoding/hex"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// AttemptService 提交流程：评测 -> 写入终态 -> 评分更新 -> 准入 -> 成就检查。
// 只有终态写入失败会返回错误，其余步骤失败记为 warning。
type AttemptService struct {
	AttemptRepo    *repository.AttemptRepository
	ChallengeRepo  *repository.ChallengeRepository
	ProjectService *ProjectService
	RatingService  *RatingService
	AwardService   *AwardService
	Chain          *EvaluatorChain
	// Sandbox 可为 nil
	Sandbox SandboxRunner

	engine atomic.Pointer[config.EngineConfig]
}

func NewAttemptService(
	attemptRepo *repository.AttemptRepository,
	challengeRepo *repository.ChallengeRepository,
	projectService *ProjectService,
	ratingService *RatingService,
	awardService *AwardService,
	chain *EvaluatorChain,
	sandbox SandboxRunner,
	cfg config.EngineConfig,
) *AttemptService {
	s := &AttemptService{
		AttemptRepo:    attemptRepo,
		ChallengeRepo:  challengeRepo,
		ProjectService: projectService,
		RatingService:  ratingService,
		AwardService:   awardService,
		Chain:          chain,
		Sandbox:        sandbox,
	}
	s.UpdateEngineConfig(cfg)
	return s
}

// UpdateEngineConfig 配置热更新
func (s *AttemptService) UpdateEngineConfig(cfg config.EngineConfig) {
	c := cfg
	s.engine.Store(&c)
	s.Chain.SetPassThreshold(cfg.PassThreshold)
}

func (s *AttemptService) EngineConfig() config.EngineConfig {
	return *s.engine.Load()
}

type SubmitAttemptRequest struct {
	ChallengeID *uint  `json:"challengeId"`
	ProjectID   *uint  `json:"projectId"`
	Language    string `json:"language"`
	// Difficulty 仅对未持久化的临时题目生效
	Difficulty string `json:"difficulty"`
	Content    string `json:"content"`
}

type AttemptResult struct {
	Attempt       *model.Attempt `json:"attempt"`
	RatingUpdate  *RatingUpdate  `json:"ratingUpdate,omitempty"`
	Admitted      bool           `json:"admitted"`
	AwardGranted  bool           `json:"awardGranted"`
	Encouragement string         `json:"encouragement,omitempty"`
	Warnings      []string       `json:"warnings,omitempty"`
}

// attemptScope 前置校验后的提交上下文
type attemptScope struct {
	challenge *model.Challenge
	persisted bool
	project   *model.Project
	language  string
}

// 终态写入失败时留给该尝试的反馈
const outcomeNotRecordedFeedback = "Evaluation result could not be recorded. Please submit again."

func (s *AttemptService) SubmitAttempt(ctx context.Context, userID uint, req SubmitAttemptRequest) (*AttemptResult, error) {
	scope, err := s.resolveScope(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	attempt := &model.Attempt{
		UserID:      userID,
		Language:    scope.language,
		Content:     req.Content,
		ContentHash: contentHash(req.Content),
		Status:      model.AttemptEvaluating,
		SubmittedAt: now,
	}
	if scope.persisted {
		id := scope.challenge.ID
		attempt.ChallengeID = &id
	}
	if scope.project != nil {
		id := scope.project.ID
		attempt.ProjectID = &id
	}
	if err := s.AttemptRepo.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("create attempt: %w", err)
	}

	// 一旦受理，请求取消也不能中断流程，必须写入终态
	ctx = context.WithoutCancel(ctx)
	result := &AttemptResult{Attempt: attempt}

	verdict := s.evaluate(ctx, attempt, scope)

	evaluatedAt := time.Now()
	attempt.Score = verdict.Score
	attempt.Feedback = verdict.Feedback
	attempt.EvaluatorUsed = verdict.EvaluatorUsed
	attempt.EvaluatedAt = &evaluatedAt
	attempt.Status = model.AttemptFailed
	if verdict.Passed {
		attempt.Status = model.AttemptPassed
	}

	fctx, span := tracing.StartSpan(ctx, "attempt.finalize", attribute.String("status", string(attempt.Status)))
	err = s.AttemptRepo.Finalize(fctx, attempt)
	tracing.EndSpan(span, err)
	if err != nil {
		logger.Log.Error("persist attempt outcome failed",
			zap.String("attemptId", attempt.ID),
			zap.Uint("userId", userID),
			zap.Error(err))
		if markErr := s.AttemptRepo.MarkFailed(ctx, attempt.ID, outcomeNotRecordedFeedback, time.Now()); markErr != nil {
			logger.Log.Error("mark attempt failed",
				zap.String("attemptId", attempt.ID),
				zap.Error(markErr))
		}
		return nil, fmt.Errorf("persist attempt outcome: %w", err)
	}
	monitoring.EngineAttempts.WithLabelValues(string(attempt.Status), attempt.EvaluatorUsed).Inc()

	passed := attempt.Status == model.AttemptPassed

	if scope.language != "" {
		update, err := s.applyRating(ctx, userID, scope, passed, evaluatedAt)
		if err != nil {
			s.absorb(result, "rating", "rating update failed", attempt, err)
		} else {
			result.RatingUpdate = update
		}
	}

	if passed && scope.project != nil && scope.project.Recruiting {
		admitted, err := s.admit(ctx, scope.project.ID, userID, attempt.ID)
		if err != nil {
			s.absorb(result, "admission", "project admission failed", attempt, err)
		}
		result.Admitted = admitted
	}

	if passed && scope.project != nil && scope.language != "" {
		granted, err := s.checkAward(ctx, userID, scope.project.ID, scope.language)
		if err != nil {
			s.absorb(result, "award", "award check failed", attempt, err)
		}
		result.AwardGranted = granted
	}

	if !passed && scope.project != nil {
		failed, err := s.AttemptRepo.CountFailed(ctx, userID, scope.project.ID)
		if err != nil {
			logger.Log.Warn("count failed attempts failed", zap.String("attemptId", attempt.ID), zap.Error(err))
		} else {
			result.Encouragement = EncouragementFor(failed, s.EngineConfig())
		}
	}

	return result, nil
}

func (s *AttemptService) resolveScope(ctx context.Context, req SubmitAttemptRequest) (*attemptScope, error) {
	if len(strings.TrimSpace(req.Content)) < s.EngineConfig().MinContentLength {
		return nil, util.ErrContentTooShort
	}

	scope := &attemptScope{}
	if req.ChallengeID != nil {
		c, err := s.ChallengeRepo.FindByID(ctx, *req.ChallengeID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, util.ErrChallengeNotFound
			}
			return nil, err
		}
		if !c.Active {
			return nil, util.ErrChallengeInactive
		}
		scope.challenge = c
		scope.persisted = true
	}

	projectID := req.ProjectID
	if scope.challenge != nil && scope.challenge.ProjectID != nil {
		if projectID == nil {
			projectID = scope.challenge.ProjectID
		} else if *projectID != *scope.challenge.ProjectID {
			return nil, util.ErrChallengeScope
		}
	}
	if projectID != nil {
		p, err := s.ProjectService.GetProject(ctx, *projectID)
		if err != nil {
			return nil, err
		}
		scope.project = p
	}

	switch {
	case scope.challenge != nil:
		scope.language = model.NormalizeLanguage(scope.challenge.Language)
	case req.Language != "":
		scope.language = model.NormalizeLanguage(req.Language)
	case scope.project != nil:
		scope.language = model.NormalizeLanguage(scope.project.Language)
	}

	if scope.challenge == nil {
		scope.challenge = &model.Challenge{
			Language:   scope.language,
			Difficulty: model.ParseDifficulty(req.Difficulty),
			Active:     true,
		}
	}
	return scope, nil
}

// evaluate 项目内且题目带测试用例时优先走沙箱，沙箱出错回退到评测链
func (s *AttemptService) evaluate(ctx context.Context, attempt *model.Attempt, scope *attemptScope) Evaluation {
	ctx, span := tracing.StartSpan(ctx, "attempt.evaluate", attribute.String("language", scope.language))
	defer span.End()

	sub := Submission{Language: scope.language, Content: attempt.Content, Challenge: scope.challenge}
	start := time.Now()

	if s.Sandbox != nil && scope.project != nil && scope.persisted && len(scope.challenge.TestSpec) > 0 {
		verdict, err := s.Sandbox.Run(ctx, sub)
		if err == nil {
			verdict.Score = clampScore(verdict.Score)
			verdict.EvaluatorUsed = model.EvaluatorSandbox
			monitoring.EvaluationDuration.WithLabelValues(model.EvaluatorSandbox).Observe(time.Since(start).Seconds())
			span.SetAttributes(attribute.String("evaluator", verdict.EvaluatorUsed))
			return verdict
		}
		logger.Log.Warn("sandbox evaluation failed, using evaluator chain",
			zap.String("attemptId", attempt.ID),
			zap.Error(err))
		monitoring.EngineDegradations.WithLabelValues("sandbox").Inc()
		start = time.Now()
	}

	verdict := s.Chain.Evaluate(ctx, sub)
	monitoring.EvaluationDuration.WithLabelValues(verdict.EvaluatorUsed).Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.String("evaluator", verdict.EvaluatorUsed))
	return verdict
}

func (s *AttemptService) applyRating(ctx context.Context, userID uint, scope *attemptScope, passed bool, at time.Time) (*RatingUpdate, error) {
	ctx, span := tracing.StartSpan(ctx, "attempt.rating")
	update, err := s.RatingService.ApplyOutcome(ctx, userID, scope.language, scope.challenge, passed, at)
	tracing.EndSpan(span, err)
	return update, err
}

func (s *AttemptService) admit(ctx context.Context, projectID, userID uint, attemptID string) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "attempt.admission")
	admitted, err := s.ProjectService.Admit(ctx, projectID, userID, attemptID)
	tracing.EndSpan(span, err)
	return admitted, err
}

func (s *AttemptService) checkAward(ctx context.Context, userID, projectID uint, language string) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "attempt.award")
	granted, err := s.AwardService.CheckProjectCompletion(ctx, userID, projectID, language)
	tracing.EndSpan(span, err)
	return granted, err
}

// absorb 非致命失败：记录日志与指标，结果中附带 warning
func (s *AttemptService) absorb(result *AttemptResult, stage, msg string, attempt *model.Attempt, err error) {
	logger.Log.Warn(msg,
		zap.String("attemptId", attempt.ID),
		zap.Uint("userId", attempt.UserID),
		zap.Error(err))
	monitoring.EngineDegradations.WithLabelValues(stage).Inc()
	result.Warnings = append(result.Warnings, msg)
}

// GetAttempt 仅本人或管理员可查看
func (s *AttemptService) GetAttempt(ctx context.Context, userID uint, role model.UserRole, id string) (*model.Attempt, error) {
	attempt, err := s.AttemptRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.UserID != userID && role != model.Admin {
		return nil, util.ErrPermissionDenied
	}
	return attempt, nil
}

func (s *AttemptService) ListAttempts(ctx context.Context, userID uint, projectID *uint, limit int) ([]model.Attempt, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.AttemptRepo.ListByUser(ctx, userID, projectID, limit)
}

// GetFailureSummary 失败次数由尝试记录实时统计
func (s *AttemptService) GetFailureSummary(ctx context.Context, userID, projectID uint) (*FailureSummary, error) {
	if _, err := s.ProjectService.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	failed, err := s.AttemptRepo.CountFailed(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	return &FailureSummary{
		ProjectID:     projectID,
		FailedCount:   failed,
		Encouragement: EncouragementFor(failed, s.EngineConfig()),
	}, nil
}

func contentHash(content string) string {
	sum := blake2b.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
