package service

import (
	"context"
	"sort"
	"time"

	"ecotrip/internal/domain"
	"ecotrip/internal/redis"
	"ecotrip/internal/repository"
)

// BadgeService evaluates badge criteria against user history and ranks the
// leaderboard. Badge transitions are one-way: criteria only see aggregated
// history, and an earned badge is never revoked.
type BadgeService struct {
	userRepo            repository.UserRepository
	cacheStore          redis.CacheStoreInterface
	notificationService *NotificationService
}

// NewBadgeService creates a new BadgeService.
func NewBadgeService(
	userRepo repository.UserRepository,
	cacheStore redis.CacheStoreInterface,
	notificationService *NotificationService,
) *BadgeService {
	return &BadgeService{
		userRepo:            userRepo,
		cacheStore:          cacheStore,
		notificationService: notificationService,
	}
}

// CheckAndAward evaluates the catalog against the user's aggregated history
// and awards any newly satisfied badges. Returns only the newly earned ones.
func (s *BadgeService) CheckAndAward(ctx context.Context, userID string) ([]domain.Badge, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	history, err := s.userRepo.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	earnedIDs, err := s.userRepo.GetEarnedBadges(ctx, userID)
	if err != nil {
		return nil, err
	}
	earned := make(map[string]bool, len(earnedIDs))
	for _, id := range earnedIDs {
		earned[id] = true
	}

	var newlyEarned []domain.Badge
	for _, badge := range domain.BadgeCatalog {
		if earned[badge.ID] {
			continue
		}
		if !badge.Criterion(history) {
			continue
		}

		err := s.userRepo.AwardBadge(ctx, &domain.EarnedBadge{
			UserID:   userID,
			BadgeID:  badge.ID,
			EarnedAt: time.Now(),
		})
		if err != nil {
			return nil, err
		}

		newlyEarned = append(newlyEarned, badge)

		if s.notificationService != nil {
			_ = s.notificationService.NotifyBadgeEarned(ctx, userID, badge)
		}
	}

	if len(newlyEarned) > 0 && s.cacheStore != nil {
		_ = s.cacheStore.InvalidateLeaderboard(ctx)
	}

	return newlyEarned, nil
}

// EarnedBadges returns the full badge set a user has earned so far.
func (s *BadgeService) EarnedBadges(ctx context.Context, userID string) ([]domain.Badge, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	ids, err := s.userRepo.GetEarnedBadges(ctx, userID)
	if err != nil {
		return nil, err
	}

	badges := make([]domain.Badge, 0, len(ids))
	for _, id := range ids {
		if badge, ok := domain.BadgeByID(id); ok {
			badges = append(badges, badge)
		}
	}

	return badges, nil
}

// Leaderboard returns all users ranked by EcoScore descending, ties broken
// by earliest account creation then id so equal scores rank deterministically.
// The ranked list is served from cache when fresh.
func (s *BadgeService) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	if s.cacheStore != nil {
		if cached, err := s.cacheStore.GetLeaderboard(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(users, func(i, j int) bool {
		if users[i].EcoScore != users[j].EcoScore {
			return users[i].EcoScore > users[j].EcoScore
		}
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID < users[j].ID
	})

	entries := make([]domain.LeaderboardEntry, 0, len(users))
	for i, user := range users {
		badgeIDs, err := s.userRepo.GetEarnedBadges(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, domain.LeaderboardEntry{
			Rank:       i + 1,
			UserID:     user.ID,
			Name:       user.Name,
			EcoScore:   user.EcoScore,
			BadgeCount: len(badgeIDs),
		})
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetLeaderboard(ctx, entries)
	}

	return entries, nil
}
