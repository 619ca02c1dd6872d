// Package meditationstore persists the guided meditation catalog.
package meditationstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"github.com/mindhaven/mindhaven/internal/app/store/gateway"
	"github.com/mindhaven/mindhaven/internal/app/system/paging"
	"github.com/mindhaven/mindhaven/internal/domain/models"
)

var (
	ErrNotFound        = errors.New("meditation not found")
	ErrDuplicateTitle  = errors.New("a meditation with this title already exists")
	ErrDeleteCancelled = errors.New("deletion cancelled")

	errTitleRequired    = errors.New("title is required")
	errDurationRequired = errors.New("duration must be greater than zero")
	errInvalidCategory  = errors.New("category must be beginner, intermediate, or advanced")
)

// DeletePolicy decides what happens to history entries in user
// documents that reference a meditation being deleted.
type DeletePolicy int

const (
	// DeletePolicyCancel is the zero value: callers must opt into a
	// destructive policy explicitly.
	DeletePolicyCancel DeletePolicy = iota
	// DeletePolicyKeepRefs removes the catalog document and leaves
	// history references dangling. Reports render a placeholder for
	// them.
	DeletePolicyKeepRefs
	// DeletePolicyCascade removes the catalog document and pulls the
	// referencing history entries out of every user document.
	DeletePolicyCascade
)

// Store provides CRUD over the meditations collection. Cascade
// deletion also touches the users collection, so the store keeps the
// gateway rather than a single collection handle.
type Store struct {
	gw *gateway.Gateway
	c  *mongo.Collection
}

func New(gw *gateway.Gateway) *Store {
	return &Store{gw: gw, c: gw.Collection(gateway.MeditationsCollection)}
}

// Create inserts a new meditation. Titles are not unique in the
// collection; callers that want the duplicate-title guard check
// TitleExists first and pass the confirmation through their own UI.
func (s *Store) Create(ctx context.Context, m models.Meditation) (models.Meditation, error) {
	m.Title = strings.TrimSpace(m.Title)
	m.Category = strings.ToLower(strings.TrimSpace(m.Category))
	m.Type = strings.ToLower(strings.TrimSpace(m.Type))

	if m.Title == "" {
		return models.Meditation{}, errTitleRequired
	}
	if m.DurationMinutes <= 0 {
		return models.Meditation{}, errDurationRequired
	}
	if m.Category != "" && !models.ValidCategory(m.Category) {
		return models.Meditation{}, errInvalidCategory
	}

	if m.ID == primitive.NilObjectID {
		m.ID = primitive.NewObjectID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Meditation{}, ErrDuplicateTitle
		}
		return models.Meditation{}, err
	}
	return m, nil
}

// TitleExists reports whether any meditation already carries the given
// title (exact match after trimming).
func (s *Store) TitleExists(ctx context.Context, title string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"title": strings.TrimSpace(title)})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Meditation, error) {
	var m models.Meditation
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByHexID resolves a hex string id. A malformed id behaves like a
// miss rather than surfacing a parse error to callers.
func (s *Store) GetByHexID(ctx context.Context, hex string) (*models.Meditation, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *Store) GetByTitle(ctx context.Context, title string) (*models.Meditation, error) {
	var m models.Meditation
	err := s.c.FindOne(ctx, bson.M{"title": strings.TrimSpace(title)}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns meditations ordered by title. limit <= 0 means no cap.
func (s *Store) List(ctx context.Context, limit int64) ([]models.Meditation, error) {
	return s.find(ctx, bson.M{}, limit)
}

func (s *Store) FindByCategory(ctx context.Context, category string, limit int64) ([]models.Meditation, error) {
	return s.find(ctx, bson.M{"category": strings.ToLower(strings.TrimSpace(category))}, limit)
}

func (s *Store) FindByType(ctx context.Context, typ string, limit int64) ([]models.Meditation, error) {
	return s.find(ctx, bson.M{"type": strings.ToLower(strings.TrimSpace(typ))}, limit)
}

// FindByDurationRange returns meditations whose duration falls within
// [min, max] minutes. max <= 0 means unbounded above.
func (s *Store) FindByDurationRange(ctx context.Context, min, max int, limit int64) ([]models.Meditation, error) {
	dur := bson.M{"$gte": min}
	if max > 0 {
		dur["$lte"] = max
	}
	return s.find(ctx, bson.M{"duration_minutes": dur}, limit)
}

func (s *Store) find(ctx context.Context, filter bson.M, limit int64) ([]models.Meditation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Meditation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Summary is the projection used by catalog listings.
type Summary struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Category        string             `bson:"category,omitempty" json:"category,omitempty"`
	Type            string             `bson:"type,omitempty" json:"type,omitempty"`
	DurationMinutes int                `bson:"duration_minutes" json:"duration_minutes"`
}

func (s *Store) ListSummary(ctx context.Context, limit int64) ([]Summary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "title", Value: 1}}).
		SetProjection(bson.M{
			"title":            1,
			"category":         1,
			"type":             1,
			"duration_minutes": 1,
		})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Summary
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Page is one keyset page of catalog summaries. Cursors are opaque
// strings clients echo back as ?after= or ?before=.
type Page struct {
	Items      []Summary `json:"items"`
	HasPrev    bool      `json:"has_prev"`
	HasNext    bool      `json:"has_next"`
	PrevCursor string    `json:"prev_cursor,omitempty"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// ListPage returns one page of the catalog ordered by title, using
// keyset pagination so deep pages stay cheap.
func (s *Store) ListPage(ctx context.Context, before, after string) (Page, error) {
	cfg := paging.ConfigureKeyset(before, after)

	filter := bson.M{}
	if window := cfg.KeysetWindow("title"); window != nil {
		filter["$or"] = window["$or"]
	}

	opts := options.Find().SetProjection(bson.M{
		"title":            1,
		"category":         1,
		"type":             1,
		"duration_minutes": 1,
	})
	cfg.ApplyToFind(opts, "title")

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return Page{}, err
	}
	defer cur.Close(ctx)

	var rows []Summary
	if err := cur.All(ctx, &rows); err != nil {
		return Page{}, err
	}

	res := paging.TrimPage(&rows, before, after)
	if before != "" {
		paging.Reverse(rows)
	}

	prev, next := paging.BuildCursors(rows,
		func(m Summary) string { return m.Title },
		func(m Summary) primitive.ObjectID { return m.ID })

	return Page{
		Items:      rows,
		HasPrev:    res.HasPrev,
		HasNext:    res.HasNext,
		PrevCursor: prev,
		NextCursor: next,
	}, nil
}

// FieldPatch carries the updatable catalog fields. Nil pointers are
// left untouched.
type FieldPatch struct {
	Title           *string
	Description     *string
	DurationMinutes *int
	AudioURL        *string
	Type            *string
	Category        *string
	CoverImageURL   *string
}

func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, patch FieldPatch) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return errTitleRequired
		}
		set["title"] = title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.DurationMinutes != nil {
		if *patch.DurationMinutes <= 0 {
			return errDurationRequired
		}
		set["duration_minutes"] = *patch.DurationMinutes
	}
	if patch.AudioURL != nil {
		set["audio_url"] = *patch.AudioURL
	}
	if patch.Type != nil {
		set["type"] = strings.ToLower(strings.TrimSpace(*patch.Type))
	}
	if patch.Category != nil {
		cat := strings.ToLower(strings.TrimSpace(*patch.Category))
		if cat != "" && !models.ValidCategory(cat) {
			return errInvalidCategory
		}
		set["category"] = cat
	}
	if patch.CoverImageURL != nil {
		set["cover_image_url"] = *patch.CoverImageURL
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountReferencingUsers reports how many user documents hold at least
// one history entry for the given meditation. Callers surface the
// count before asking which DeletePolicy to apply.
func (s *Store) CountReferencingUsers(ctx context.Context, id primitive.ObjectID) (int64, error) {
	users := s.gw.Collection(gateway.UsersCollection)
	return users.CountDocuments(ctx, bson.M{"meditation_history.meditation_id": id})
}

// Delete removes a meditation under the given policy. With
// DeletePolicyCancel (the zero value) nothing is touched and
// ErrDeleteCancelled is returned, so callers cannot delete by
// accident. DeletePolicyCascade additionally pulls the referencing
// history entries from every user document before removing the
// catalog entry.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID, policy DeletePolicy) error {
	switch policy {
	case DeletePolicyCancel:
		return ErrDeleteCancelled
	case DeletePolicyCascade:
		users := s.gw.Collection(gateway.UsersCollection)
		_, err := users.UpdateMany(ctx,
			bson.M{"meditation_history.meditation_id": id},
			bson.M{"$pull": bson.M{"meditation_history": bson.M{"meditation_id": id}}},
		)
		if err != nil {
			return err
		}
	case DeletePolicyKeepRefs:
		// Catalog-only removal; report queries tolerate the dangling
		// references.
	default:
		return ErrDeleteCancelled
	}

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
