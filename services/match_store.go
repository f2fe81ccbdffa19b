package services

import (
	"context"
	"errors"

	"cozyconnect_server/apperror"
	"cozyconnect_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MatchStore is the record-store surface the reconciliation engine
// depends on. Tests substitute an in-memory fake.
type MatchStore interface {
	GetByID(ctx context.Context, matchID string) (*models.Match, error)
	FindByPair(ctx context.Context, a, b string) (*models.Match, error)
	Create(ctx context.Context, match models.Match) error
	UpdateStatus(ctx context.Context, matchID, status string) (*models.Match, error)
	Delete(ctx context.Context, matchID string) error
	ListForProfile(ctx context.Context, profileID string) ([]models.Match, error)
}

// MatchDynamoStore implements MatchStore on the Matches table.
type MatchDynamoStore struct {
	Dynamo *DynamoService
}

func (s *MatchDynamoStore) GetByID(ctx context.Context, matchID string) (*models.Match, error) {
	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}

	item, err := s.Dynamo.GetItem(ctx, models.MatchesTable, key)
	if err != nil {
		if errors.Is(err, errItemNotFound) {
			return nil, apperror.NewNotFound("match", matchID)
		}
		return nil, err
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, apperror.NewInternal("failed to unmarshal match", err)
	}
	return &match, nil
}

// FindByPair returns the live record for the unordered pair {a, b},
// checking both directions. Not-found is reported with ErrNotFound.
func (s *MatchDynamoStore) FindByPair(ctx context.Context, a, b string) (*models.Match, error) {
	if match, err := s.findDirected(ctx, a, b); err != nil || match != nil {
		return match, err
	}
	match, err := s.findDirected(ctx, b, a)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, apperror.NewNotFound("match", a+"/"+b)
	}
	return match, nil
}

func (s *MatchDynamoStore) findDirected(ctx context.Context, swiperID, swipedID string) (*models.Match, error) {
	expressionValues := map[string]types.AttributeValue{
		":swiper": &types.AttributeValueMemberS{Value: swiperID},
		":swiped": &types.AttributeValueMemberS{Value: swipedID},
	}

	items, err := s.Dynamo.QueryItemsWithFilters(ctx, models.MatchesTable, models.SwiperIndex,
		"swiperId = :swiper", expressionValues, "swipedId = :swiped")
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(items[0], &match); err != nil {
		return nil, apperror.NewInternal("failed to unmarshal match", err)
	}
	return &match, nil
}

func (s *MatchDynamoStore) Create(ctx context.Context, match models.Match) error {
	return s.Dynamo.PutItem(ctx, models.MatchesTable, match)
}

func (s *MatchDynamoStore) UpdateStatus(ctx context.Context, matchID, status string) (*models.Match, error) {
	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	expressionValues := map[string]types.AttributeValue{
		":status": &types.AttributeValueMemberS{Value: status},
	}
	expressionNames := map[string]string{"#s": "status"}

	attrs, err := s.Dynamo.UpdateItem(ctx, models.MatchesTable, "SET #s = :status", key, expressionValues, expressionNames)
	if err != nil {
		return nil, err
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(attrs, &match); err != nil {
		return nil, apperror.NewInternal("failed to unmarshal updated match", err)
	}
	return &match, nil
}

func (s *MatchDynamoStore) Delete(ctx context.Context, matchID string) error {
	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	return s.Dynamo.DeleteItem(ctx, models.MatchesTable, key)
}

// ListForProfile merges both index queries so the caller sees every
// record the profile appears on, in either role.
func (s *MatchDynamoStore) ListForProfile(ctx context.Context, profileID string) ([]models.Match, error) {
	expressionValues := map[string]types.AttributeValue{
		":id": &types.AttributeValueMemberS{Value: profileID},
	}

	var matches []models.Match

	asSwiper, err := s.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, models.SwiperIndex,
		"swiperId = :id", expressionValues, nil, 100)
	if err != nil {
		return nil, err
	}
	asSwiped, err := s.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, models.SwipedIndex,
		"swipedId = :id", expressionValues, nil, 100)
	if err != nil {
		return nil, err
	}

	for _, item := range append(asSwiper, asSwiped...) {
		var match models.Match
		if err := attributevalue.UnmarshalMap(item, &match); err != nil {
			return nil, apperror.NewInternal("failed to unmarshal match", err)
		}
		matches = append(matches, match)
	}
	return matches, nil
}
