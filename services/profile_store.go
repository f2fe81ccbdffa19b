package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cozyconnect_server/apperror"
	"cozyconnect_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ProfileStore is the record-store surface the profile gateway and
// the linking flow depend on. Tests substitute an in-memory fake.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByLinkedEmail(ctx context.Context, email string) (*models.Profile, error)
	GetByName(ctx context.Context, name string) (*models.Profile, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Put(ctx context.Context, profile models.Profile) error
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Profile, error)
}

// ProfileDynamoStore implements ProfileStore on the Profiles table.
type ProfileDynamoStore struct {
	Dynamo *DynamoService
}

func (s *ProfileDynamoStore) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	key := map[string]types.AttributeValue{
		"profileId": &types.AttributeValueMemberS{Value: id},
	}

	item, err := s.Dynamo.GetItem(ctx, models.ProfilesTable, key)
	if err != nil {
		if errors.Is(err, errItemNotFound) {
			return nil, apperror.NewNotFound("profile", id)
		}
		return nil, err
	}

	var profile models.Profile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, apperror.NewInternal("failed to unmarshal profile", err)
	}
	return &profile, nil
}

func (s *ProfileDynamoStore) GetByLinkedEmail(ctx context.Context, email string) (*models.Profile, error) {
	return s.queryOne(ctx, models.LinkedEmailIndex, "linkedEmail = :v", email)
}

func (s *ProfileDynamoStore) GetByName(ctx context.Context, name string) (*models.Profile, error) {
	return s.queryOne(ctx, models.NameIndex, "#n = :v", name)
}

// queryOne returns the first record matched by a single-value GSI
// lookup. If two profiles ever share a linking identity the first one
// wins; the store invariant is assumed, not enforced.
func (s *ProfileDynamoStore) queryOne(ctx context.Context, index, keyCondition, value string) (*models.Profile, error) {
	expressionValues := map[string]types.AttributeValue{
		":v": &types.AttributeValueMemberS{Value: value},
	}
	var expressionNames map[string]string
	if strings.Contains(keyCondition, "#n") {
		expressionNames = map[string]string{"#n": "name"}
	}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.ProfilesTable, index, keyCondition, expressionValues, expressionNames, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewNotFound("profile", value)
	}

	var profile models.Profile
	if err := attributevalue.UnmarshalMap(items[0], &profile); err != nil {
		return nil, apperror.NewInternal("failed to unmarshal profile", err)
	}
	return &profile, nil
}

func (s *ProfileDynamoStore) GetByIDs(ctx context.Context, ids []string) ([]models.Profile, error) {
	if len(ids) == 0 {
		return []models.Profile{}, nil
	}

	keys := make([]map[string]types.AttributeValue, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, map[string]types.AttributeValue{
			"profileId": &types.AttributeValueMemberS{Value: id},
		})
	}

	items, err := s.Dynamo.BatchGetItems(ctx, models.ProfilesTable, keys)
	if err != nil {
		return nil, err
	}

	var profiles []models.Profile
	if err := attributevalue.UnmarshalListOfMaps(items, &profiles); err != nil {
		return nil, apperror.NewInternal("failed to unmarshal profiles", err)
	}
	return profiles, nil
}

func (s *ProfileDynamoStore) List(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := s.Dynamo.ScanWithFilter(ctx, models.ProfilesTable, nil, nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *ProfileDynamoStore) Put(ctx context.Context, profile models.Profile) error {
	return s.Dynamo.PutItem(ctx, models.ProfilesTable, profile)
}

// Update applies a partial field set. An empty string value removes
// the field, matching how the verification code is cleared after a
// successful link.
func (s *ProfileDynamoStore) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Profile, error) {
	if len(fields) == 0 {
		return nil, apperror.NewInvalidInput("no update data provided", nil)
	}

	var setParts, removeParts []string
	expressionNames := map[string]string{}
	expressionValues := map[string]types.AttributeValue{}

	i := 0
	for field, value := range fields {
		name := fmt.Sprintf("#f%d", i)
		expressionNames[name] = field
		if str, ok := value.(string); ok && str == "" {
			removeParts = append(removeParts, name)
		} else {
			attr, err := attributevalue.Marshal(value)
			if err != nil {
				return nil, apperror.NewInternal(fmt.Sprintf("failed to marshal field '%s'", field), err)
			}
			placeholder := fmt.Sprintf(":v%d", i)
			expressionValues[placeholder] = attr
			setParts = append(setParts, name+" = "+placeholder)
		}
		i++
	}

	// every mutation refreshes the last-modified stamp
	expressionNames["#lm"] = "lastModified"
	expressionValues[":lm"] = &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)}
	setParts = append(setParts, "#lm = :lm")

	updateExpression := "SET " + strings.Join(setParts, ", ")
	if len(removeParts) > 0 {
		updateExpression += " REMOVE " + strings.Join(removeParts, ", ")
	}

	key := map[string]types.AttributeValue{
		"profileId": &types.AttributeValueMemberS{Value: id},
	}

	attrs, err := s.Dynamo.UpdateItem(ctx, models.ProfilesTable, updateExpression, key, expressionValues, expressionNames)
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	if err := attributevalue.UnmarshalMap(attrs, &profile); err != nil {
		return nil, apperror.NewInternal("failed to unmarshal updated profile", err)
	}
	return &profile, nil
}
