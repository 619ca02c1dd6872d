// internal/app/store/users/append.go
package userstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mindhaven/mindhaven/internal/app/system/normalize"
	"github.com/mindhaven/mindhaven/internal/domain/models"
)

// Append operations are single-document $push updates. The store applies
// each push atomically, so two concurrent appends to the same user both
// land; nothing here reads, modifies, and rewrites the array client-side.

var (
	// ErrMoodLevelRange is returned for mood levels outside [1,5].
	ErrMoodLevelRange = errors.New("mood level must be between 1 and 5")
	// ErrMeditationIDRequired is returned for history appends without a
	// meditation reference.
	ErrMeditationIDRequired = errors.New("meditation id is required")
	errFeelingRequired      = errors.New("feeling is required")
	errTitleRequired        = errors.New("notification title is required")
)

func (s *Store) push(ctx context.Context, id primitive.ObjectID, field string, value any) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{field: value}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendMoodEntry appends a mood check-in. The level bound is enforced
// here, before anything reaches the store.
func (s *Store) AppendMoodEntry(ctx context.Context, id primitive.ObjectID, e models.MoodEntry) error {
	if e.Level < 1 || e.Level > 5 {
		return ErrMoodLevelRange
	}
	if e.Feeling == "" {
		return errFeelingRequired
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}
	return s.push(ctx, id, "mood_entries", e)
}

// AppendMeditationSession appends a completed-meditation record. The
// meditation id is stored as a weak reference; it is not checked against
// the meditations collection here.
func (s *Store) AppendMeditationSession(ctx context.Context, id primitive.ObjectID, session models.MeditationSession) error {
	if session.MeditationID.IsZero() {
		return ErrMeditationIDRequired
	}
	if session.CompletedAt.IsZero() {
		session.CompletedAt = time.Now().UTC()
	}
	return s.push(ctx, id, "meditation_history", session)
}

// AppendAssessmentResult appends a self-assessment result, normalizing
// the free-text kind into the fixed enumeration first.
func (s *Store) AppendAssessmentResult(ctx context.Context, id primitive.ObjectID, r models.AssessmentResult) error {
	r.Kind = normalize.AssessmentKind(r.Kind)
	if r.TakenAt.IsZero() {
		r.TakenAt = time.Now().UTC()
	}
	return s.push(ctx, id, "assessment_results", r)
}

// AppendNotification appends an in-app notification.
func (s *Store) AppendNotification(ctx context.Context, id primitive.ObjectID, n models.Notification) error {
	if n.Title == "" {
		return errTitleRequired
	}
	if n.SentAt.IsZero() {
		n.SentAt = time.Now().UTC()
	}
	return s.push(ctx, id, "notifications", n)
}
