package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"ecotrip/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationBadgeEarned   NotificationType = "BADGE_EARNED"
	NotificationPlanOptimized NotificationType = "PLAN_OPTIMIZED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have:
	// - Push notification client (FCM, APNS)
	// - Email client
	// - WebSocket connections for real-time dashboard updates
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyBadgeEarned notifies a user about a newly earned badge.
func (s *NotificationService) NotifyBadgeEarned(ctx context.Context, userID string, badge domain.Badge) error {
	notification := Notification{
		Type:        NotificationBadgeEarned,
		RecipientID: userID,
		Title:       "Badge Earned",
		Message:     fmt.Sprintf("You earned the %s badge!", badge.Name),
		Data: map[string]interface{}{
			"badge_id":       badge.ID,
			"badge_category": badge.Category,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyPlanOptimized notifies the trip owner that optimization finished.
func (s *NotificationService) NotifyPlanOptimized(ctx context.Context, plan *domain.TripPlan, savedKg float64) error {
	message := "Your trip was optimized."
	if savedKg > 0 {
		message = fmt.Sprintf("Your trip was optimized, saving %.1f kg CO2.", savedKg)
	}

	notification := Notification{
		Type:        NotificationPlanOptimized,
		RecipientID: plan.UserID,
		Title:       "Trip Optimized",
		Message:     message,
		Data: map[string]interface{}{
			"trip_id":             plan.ID,
			"predicted_carbon_kg": plan.PredictedCarbonKg,
			"saved_kg":            savedKg,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// send delivers a notification (mock implementation).
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)

	return nil
}
