package food

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Expiry-Food-Track/domain"
	"Expiry-Food-Track/entities"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type (
	FoodService interface {
		GetAllFoods(ctx context.Context) ([]*entities.Food, error)
		GetExpiringSoonFoods(ctx context.Context) ([]*entities.Food, error)
		GetRecentFoods(ctx context.Context) ([]*entities.Food, error)
		GetExpiredFoods(ctx context.Context) ([]*entities.Food, error)
		GetFoodByID(ctx context.Context, id string) (*entities.Food, error)
		GetFoodsByOwner(ctx context.Context, email string) ([]*entities.Food, error)

		AddFood(ctx context.Context, food *entities.Food) (domain.InsertResult, error)
		UpdateFood(ctx context.Context, id string, req domain.UpdateFoodItemRequest) (domain.UpdateResult, error)
		DeleteFood(ctx context.Context, id string) (domain.DeleteResult, error)
		AddNote(ctx context.Context, id string, req domain.AddNoteRequest) (bool, error)

		RepairExpiryDates(ctx context.Context) (RepairReport, error)
	}

	// RepairReport counts what one expiry repair pass did.
	RepairReport struct {
		Fixed   int
		Skipped int
	}

	foodService struct {
		foodRepository FoodRepository
		now            func() time.Time
	}
)

// NewFoodService builds the service. clock may be nil, in which case the
// wall clock is used.
func NewFoodService(foodRepository FoodRepository, clock func() time.Time) FoodService {
	if clock == nil {
		clock = time.Now
	}
	return &foodService{
		foodRepository: foodRepository,
		now:            clock,
	}
}

func (s *foodService) GetAllFoods(ctx context.Context) ([]*entities.Food, error) {
	return s.foodRepository.FindFoods(ctx, AllFoodsQuery())
}

func (s *foodService) GetExpiringSoonFoods(ctx context.Context) ([]*entities.Food, error) {
	return s.foodRepository.FindFoods(ctx, ExpiringSoonQuery(s.now()))
}

func (s *foodService) GetRecentFoods(ctx context.Context) ([]*entities.Food, error) {
	return s.foodRepository.FindFoods(ctx, RecentQuery())
}

func (s *foodService) GetExpiredFoods(ctx context.Context) ([]*entities.Food, error) {
	return s.foodRepository.FindFoods(ctx, ExpiredQuery(s.now()))
}

// GetFoodByID returns (nil, nil) when no food has the id.
func (s *foodService) GetFoodByID(ctx context.Context, id string) (*entities.Food, error) {
	oid, err := parseFoodID(id)
	if err != nil {
		return nil, err
	}

	food, err := s.foodRepository.GetFoodByID(ctx, oid)
	if err != nil {
		if errors.Is(err, domain.ErrFoodItemNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return food, nil
}

func (s *foodService) GetFoodsByOwner(ctx context.Context, email string) ([]*entities.Food, error) {
	return s.foodRepository.FindFoods(ctx, OwnerQuery(email))
}

func (s *foodService) AddFood(ctx context.Context, food *entities.Food) (domain.InsertResult, error) {
	food.ID = primitive.NilObjectID
	delete(food.Extra, "_id")
	NormalizeDate(food.ExpiryDate)
	NormalizeDate(food.AddedDate)
	if food.AddedDate == nil || food.AddedDate.IsZero() {
		food.AddedDate = entities.DateOf(s.now())
	}

	id, err := s.foodRepository.AddFood(ctx, food)
	if err != nil {
		return domain.InsertResult{}, err
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *foodService) UpdateFood(ctx context.Context, id string, req domain.UpdateFoodItemRequest) (domain.UpdateResult, error) {
	oid, err := parseFoodID(id)
	if err != nil {
		return domain.UpdateResult{}, err
	}

	fields := req.Fields()
	if len(fields) == 0 {
		// An empty $set is rejected by the store; nothing to change anyway.
		return domain.UpdateResult{Acknowledged: true}, nil
	}
	return s.foodRepository.UpdateFoodFields(ctx, oid, fields)
}

func (s *foodService) DeleteFood(ctx context.Context, id string) (domain.DeleteResult, error) {
	oid, err := parseFoodID(id)
	if err != nil {
		return domain.DeleteResult{}, err
	}

	deleted, err := s.foodRepository.DeleteFood(ctx, oid)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	return domain.DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}

// AddNote reports whether a food was actually modified.
func (s *foodService) AddNote(ctx context.Context, id string, req domain.AddNoteRequest) (bool, error) {
	oid, err := parseFoodID(id)
	if err != nil {
		return false, err
	}

	note := entities.Note{
		Note:      req.Note,
		PostedAt:  s.now().UTC().Format(entities.JSONTimeLayout),
		UserEmail: req.UserEmail,
	}

	res, err := s.foodRepository.PushNote(ctx, oid, note)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// RepairExpiryDates rewrites text expiry dates as real dates, one update per
// record. Unparseable values and failed single updates are skipped; only a
// failing scan aborts the pass.
func (s *foodService) RepairExpiryDates(ctx context.Context) (RepairReport, error) {
	var report RepairReport

	err := s.foodRepository.ScanExpiryDates(ctx, func(id primitive.ObjectID, expiry *entities.DateValue) error {
		if expiry == nil || !expiry.IsText {
			return nil
		}
		if !NormalizeDate(expiry) {
			report.Skipped++
			return nil
		}
		if err := s.foodRepository.SetExpiryDate(ctx, id, expiry.Time); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn().Stack().Err(err).Str("food_id", id.Hex()).Msg("expiry repair: update failed")
			report.Skipped++
			return nil
		}
		report.Fixed++
		return nil
	})
	if err != nil {
		return report, err
	}

	log.Info().Int("fixed", report.Fixed).Int("skipped", report.Skipped).Msg("expiry repair finished")
	return report, nil
}

func (r RepairReport) Message() string {
	return fmt.Sprintf(domain.MessageSuccessFixExpiryDate, r.Fixed)
}

func parseFoodID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidFoodID
	}
	return oid, nil
}
