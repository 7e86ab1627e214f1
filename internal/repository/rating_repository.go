package repository

import (
	"context"
	"devcollab_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

func (r *RatingRepository) FindSkillRating(ctx context.Context, userID uint, language string) (*model.SkillRating, error) {
	var sr model.SkillRating
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND language = ?", userID, language).
		First(&sr).Error
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func (r *RatingRepository) FindChallengeRating(ctx context.Context, challengeID uint) (*model.ChallengeRating, error) {
	var cr model.ChallengeRating
	err := r.DB.WithContext(ctx).Where("challenge_id = ?", challengeID).First(&cr).Error
	if err != nil {
		return nil, err
	}
	return &cr, nil
}

// FindChallengeRatings 批量查询，返回 challengeID -> rating
func (r *RatingRepository) FindChallengeRatings(ctx context.Context, challengeIDs []uint) (map[uint]int, error) {
	result := make(map[uint]int, len(challengeIDs))
	if len(challengeIDs) == 0 {
		return result, nil
	}
	var rows []model.ChallengeRating
	if err := r.DB.WithContext(ctx).Where("challenge_id IN ?", challengeIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ChallengeID] = row.Rating
	}
	return result, nil
}

// UpsertSkillRating 按 (user_id, language) 原子写入：首次插入 rating，否则在数据库侧叠加 delta 并自增 attempts，
// 并发结果的增量因此可交换、不会互相覆盖
func (r *RatingRepository) UpsertSkillRating(ctx context.Context, userID uint, language string, rating, delta int, at time.Time) error {
	row := &model.SkillRating{
		UserID:      userID,
		Language:    language,
		Rating:      rating,
		Attempts:    1,
		LastUpdated: at,
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "language"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rating":       gorm.Expr("skill_ratings.rating + ?", delta),
			"attempts":     gorm.Expr("skill_ratings.attempts + 1"),
			"last_updated": at,
			"updated_at":   at,
		}),
	}).Create(row).Error
}

// UpsertChallengeRating 按 challenge_id 原子写入，rating 叠加 delta，attempts / pass_count 在数据库侧自增
func (r *RatingRepository) UpsertChallengeRating(ctx context.Context, challengeID uint, rating, delta int, passed bool, at time.Time) error {
	passInc := 0
	if passed {
		passInc = 1
	}
	row := &model.ChallengeRating{
		ChallengeID: challengeID,
		Rating:      rating,
		Attempts:    1,
		PassCount:   passInc,
		LastUpdated: at,
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "challenge_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rating":       gorm.Expr("challenge_ratings.rating + ?", delta),
			"attempts":     gorm.Expr("challenge_ratings.attempts + 1"),
			"pass_count":   gorm.Expr("challenge_ratings.pass_count + ?", passInc),
			"last_updated": at,
			"updated_at":   at,
		}),
	}).Create(row).Error
}

// TopSkillRatings 某语言下评分最高的用户
func (r *RatingRepository) TopSkillRatings(ctx context.Context, language string, limit int) ([]model.SkillRating, error) {
	var rows []model.SkillRating
	err := r.DB.WithContext(ctx).
		Where("language = ?", language).
		Order("rating desc").
		Order("attempts desc").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
