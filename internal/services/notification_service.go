package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/workbridge/workbridge/internal/apperr"
	"github.com/workbridge/workbridge/internal/dtos"
	"github.com/workbridge/workbridge/internal/models"
	"gorm.io/gorm"
)

// Notification template kinds.
const (
	KindNewApplication    = "new_application"
	KindApplicationStatus = "application_status"
	KindNewReview         = "new_review"
)

// Note is one pending notification. Context feeds the template copy.
type Note struct {
	UserID    uuid.UUID
	Kind      string
	RelatedID uuid.UUID
	Context   map[string]string
}

// Notifier is the side channel the primary operations fire into. Callers
// must treat a returned error as log-and-continue, never as a failure of
// their own operation.
type Notifier interface {
	Notify(note Note) error
}

// buildCopy renders the title/message pair for a note.
func buildCopy(note Note) (string, string) {
	switch note.Kind {
	case KindNewApplication:
		return "New application received",
			fmt.Sprintf("%s applied for your job %q.", note.Context["applicant"], note.Context["job_title"])
	case KindApplicationStatus:
		switch models.ApplicationStatus(note.Context["status"]) {
		case models.ApplicationAccepted:
			return "Application accepted",
				fmt.Sprintf("Congratulations! Your application for %q was accepted.", note.Context["job_title"])
		case models.ApplicationRejected:
			return "Application update",
				fmt.Sprintf("Your application for %q was not successful this time.", note.Context["job_title"])
		case models.ApplicationWithdrawn:
			return "Application withdrawn",
				fmt.Sprintf("An application for %q was withdrawn.", note.Context["job_title"])
		default:
			return "Application update",
				fmt.Sprintf("Your application for %q is now %s.", note.Context["job_title"], note.Context["status"])
		}
	case KindNewReview:
		return "New review",
			fmt.Sprintf("%s left you a review.", note.Context["author"])
	default:
		return "Notification", ""
	}
}

// NotificationService persists notification rows and serves the
// ownership-gated reads.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

func (s *NotificationService) Create(ctx context.Context, note Note) (*models.Notification, error) {
	title, message := buildCopy(note)
	payload, _ := json.Marshal(note.Context)
	n := &models.Notification{
		UserID:    note.UserID,
		Type:      note.Kind,
		Title:     title,
		Message:   message,
		RelatedID: note.RelatedID,
		Payload:   payload,
	}
	if err := s.DB.WithContext(ctx).Create(n).Error; err != nil {
		return nil, apperr.Internal("failed to store notification", err)
	}
	return n, nil
}

func (s *NotificationService) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Notification, dtos.PageMeta, error) {
	page, limit = dtos.NormalizePage(page, limit)
	var total int64
	base := s.DB.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, dtos.PageMeta{}, apperr.Internal("failed to count notifications", err)
	}
	var items []models.Notification
	err := base.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&items).Error
	if err != nil {
		return nil, dtos.PageMeta{}, apperr.Internal("failed to list notifications", err)
	}
	return items, dtos.NewPageMeta(page, limit, total), nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).Count(&count).Error
	if err != nil {
		return 0, apperr.Internal("failed to count unread notifications", err)
	}
	return count, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) (*models.Notification, error) {
	n, err := s.ownedNotification(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(n).Update("is_read", true).Error; err != nil {
		return nil, apperr.Internal("failed to mark notification read", err)
	}
	n.IsRead = true
	return n, nil
}

// MarkAllRead flips every unread notification and returns the updated ids.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var unread []models.Notification
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND is_read = ?", userID, false).Find(&unread).Error
	if err != nil {
		return nil, apperr.Internal("failed to load unread notifications", err)
	}
	ids := make([]uuid.UUID, 0, len(unread))
	for _, n := range unread {
		ids = append(ids, n.ID)
	}
	if len(ids) == 0 {
		return ids, nil
	}
	err = s.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("id IN ?", ids).Update("is_read", true).Error
	if err != nil {
		return nil, apperr.Internal("failed to mark notifications read", err)
	}
	return ids, nil
}

func (s *NotificationService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	n, err := s.ownedNotification(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(n).Error; err != nil {
		return apperr.Internal("failed to delete notification", err)
	}
	return nil
}

func (s *NotificationService) ownedNotification(ctx context.Context, id, userID uuid.UUID) (*models.Notification, error) {
	var n models.Notification
	if err := s.DB.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("notification not found")
		}
		return nil, apperr.Internal("failed to load notification", err)
	}
	if n.UserID != userID {
		return nil, apperr.Forbidden("not your notification")
	}
	return &n, nil
}

// Dispatcher is the fire-and-forget queue in front of NotificationService.
// Enqueueing never blocks the caller; a background worker persists notes
// with bounded retries and a full queue just drops the note with a log line.
type Dispatcher struct {
	notifications *NotificationService
	queue         chan Note
	wg            sync.WaitGroup
	stop          chan struct{}
	stopOnce      sync.Once
}

func NewDispatcher(notifications *NotificationService, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Dispatcher{
		notifications: notifications,
		queue:         make(chan Note, queueSize),
		stop:          make(chan struct{}),
	}
}

// Start launches the worker goroutine.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for {
			select {
			case note := <-d.queue:
				d.deliver(note)
			case <-d.stop:
				// Drain whatever is still queued before exiting.
				for {
					select {
					case note := <-d.queue:
						d.deliver(note)
					default:
						return
					}
				}
			}
		}
	}()
}

// Stop drains the queue and waits for the worker.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
	d.wg.Wait()
}

// Notify enqueues without blocking. A full queue is reported to the caller,
// who is expected to log and move on.
func (d *Dispatcher) Notify(note Note) error {
	select {
	case d.queue <- note:
		return nil
	default:
		return fmt.Errorf("notification queue full, dropping %s for user %s", note.Kind, note.UserID)
	}
}

func (d *Dispatcher) deliver(note Note) {
	err := retry.Do(
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, err := d.notifications.Create(ctx, note)
			return err
		},
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		log.Printf("notification %s for user %s dropped after retries: %v", note.Kind, note.UserID, err)
	}
}
