package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/isdelr/birthdaybot-be/internal/birthday"
	"github.com/isdelr/birthdaybot-be/internal/models"
	"github.com/isdelr/birthdaybot-be/internal/store"
	"github.com/isdelr/birthdaybot-be/internal/validation"
)

// BirthdayServiceProvider defines the interface for birthday services.
type BirthdayServiceProvider interface {
	SaveBirthday(ctx context.Context, username, dateOfBirth string) (models.BirthdayRecord, error)
	GetGreeting(ctx context.Context, username string) (models.Greeting, error)
	SelfTest(ctx context.Context) (string, error)
}

// BirthdayService validates input, persists birth dates and computes greetings.
type BirthdayService struct {
	gateway store.Gateway
	now     func() time.Time
}

// NewBirthdayService creates a new BirthdayService. now supplies the current
// time; the local calendar date of its result is "today".
func NewBirthdayService(gateway store.Gateway, now func() time.Time) *BirthdayService {
	if now == nil {
		now = time.Now
	}
	return &BirthdayService{gateway: gateway, now: now}
}

func (s *BirthdayService) today() civil.Date {
	return civil.DateOf(s.now())
}

// SaveBirthday validates username and dateOfBirth and upserts the record.
// Nothing is written unless both pass.
func (s *BirthdayService) SaveBirthday(ctx context.Context, username, dateOfBirth string) (models.BirthdayRecord, error) {
	logger := zerolog.Ctx(ctx)

	name, err := validation.Username(username)
	if err != nil {
		logger.Info().Err(err).Str("username", username).Msg("Rejecting user name")
		return models.BirthdayRecord{}, err
	}

	dob, err := validation.DateOfBirth(dateOfBirth, s.today())
	if err != nil {
		logger.Info().Err(err).Str("username", name).Str("date_of_birth", dateOfBirth).Msg("Rejecting birth date")
		return models.BirthdayRecord{}, err
	}

	record := models.BirthdayRecord{Username: name, BirthDate: dob}
	if err := s.gateway.Upsert(ctx, record.Username, record.BirthDate); err != nil {
		logger.Error().Err(err).Str("username", name).Str("birth_date", dob.String()).Msg("Failed to write birth date")
		return models.BirthdayRecord{}, asUnavailable("upsert", err)
	}

	logger.Debug().Str("username", name).Str("birth_date", dob.String()).Msg("Stored birth date")
	return record, nil
}

// GetGreeting looks up the stored birth date and builds the greeting message.
func (s *BirthdayService) GetGreeting(ctx context.Context, username string) (models.Greeting, error) {
	logger := zerolog.Ctx(ctx)

	name, err := validation.Username(username)
	if err != nil {
		logger.Info().Err(err).Str("username", username).Msg("Rejecting user name")
		return models.Greeting{}, err
	}

	dob, err := s.gateway.Lookup(ctx, name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		logger.Info().Str("username", name).Msg("No birth date found")
		return models.Greeting{}, fmt.Errorf("%w in DB for user %s", store.ErrNotFound, username)
	case err != nil:
		logger.Error().Err(err).Str("username", name).Msg("Failed to read birth date")
		return models.Greeting{}, asUnavailable("lookup", err)
	}

	days := birthday.DaysUntilNext(dob, s.today())
	greeting := models.Greeting{DaysRemaining: days}
	if days == 0 {
		greeting.Message = fmt.Sprintf("Hello, %s! Happy birthday!", username)
		logger.Info().Str("username", name).Msg("Wished a happy birthday")
	} else {
		greeting.Message = fmt.Sprintf("Hello, %s! Your birthday is in %d day(s)", username, days)
	}
	return greeting, nil
}

// SelfTest stores a generated user whose birthday is today and returns its
// username.
func (s *BirthdayService) SelfTest(ctx context.Context) (string, error) {
	record, err := s.SaveBirthday(ctx, selfTestUsername(), s.today().String())
	if err != nil {
		return "", err
	}
	return record.Username, nil
}

// selfTestUsername derives an alphabetic username from a random UUID.
func selfTestUsername() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	var b strings.Builder
	b.WriteString("selftest")
	for _, c := range id[:12] {
		switch {
		case c >= '0' && c <= '9':
			b.WriteRune('a' + (c - '0'))
		default:
			b.WriteRune('k' + (c - 'a'))
		}
	}
	return b.String()
}

// asUnavailable keeps gateway failures inside the store taxonomy even if an
// implementation returns a raw error.
func asUnavailable(op string, err error) error {
	if errors.Is(err, store.ErrStoreUnavailable) {
		return err
	}
	return store.Unavailable(op, err)
}
