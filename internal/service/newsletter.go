package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
	"github.com/zoobutik/zoobutik.bg/internal/event"
	"github.com/zoobutik/zoobutik.bg/internal/repository"
	apperrors "github.com/zoobutik/zoobutik.bg/pkg/errors"
)

// SubscribeInput holds the newsletter signup payload.
type SubscribeInput struct {
	Email string `json:"email" validate:"required,email"`
}

// NewsletterService implements newsletter signups. Every new subscriber gets
// a single-use welcome discount code; the welcome email is sent by the mailer
// consumer reacting to the published event.
type NewsletterService struct {
	repo     repository.NewsletterRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewNewsletterService creates a new newsletter service.
func NewNewsletterService(repo repository.NewsletterRepository, producer *event.Producer, logger *slog.Logger) *NewsletterService {
	return &NewsletterService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// Subscribe registers an email address and issues its welcome discount code.
// Subscribing an already-subscribed email returns the existing subscription
// without issuing a new code.
func (s *NewsletterService) Subscribe(ctx context.Context, input SubscribeInput) (*domain.Subscriber, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}

	now := time.Now().UTC()
	code := &domain.DiscountCode{
		Code:      generateDiscountCode(),
		Percent:   domain.WelcomeDiscountPercent,
		ExpiresAt: now.Add(domain.WelcomeDiscountValidity),
		CreatedAt: now,
	}

	sub := &domain.Subscriber{
		Email:        email,
		DiscountCode: code.Code,
		SubscribedAt: now,
	}

	if err := s.repo.Subscribe(ctx, sub); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			existing, getErr := s.repo.GetByEmail(ctx, email)
			if getErr != nil {
				return nil, fmt.Errorf("load existing subscriber: %w", getErr)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	if err := s.repo.CreateDiscountCode(ctx, code); err != nil {
		return nil, fmt.Errorf("issue welcome discount code: %w", err)
	}

	if err := s.producer.PublishNewsletterSubscribed(ctx, sub, code); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish newsletter.subscribed event",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "newsletter subscription created",
		slog.String("email", email),
	)

	return sub, nil
}

// Unsubscribe removes a subscription.
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.repo.Unsubscribe(ctx, email); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "newsletter subscription removed",
		slog.String("email", email),
	)

	return nil
}

// ListSubscribers returns the paginated subscriber list for the back-office.
func (s *NewsletterService) ListSubscribers(ctx context.Context, page, perPage int) ([]domain.Subscriber, int, error) {
	return s.repo.List(ctx, page, perPage)
}

// generateDiscountCode produces a WELCOME10-XXXXXX code with a random hex
// suffix.
func generateDiscountCode() string {
	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	return "WELCOME10-" + strings.ToUpper(hex.EncodeToString(buf))
}
