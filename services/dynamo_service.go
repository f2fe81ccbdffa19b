package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"cozyconnect_server/apperror"
	"cozyconnect_server/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// DynamoService wraps the record-store client. Every identifier that
// reaches a query travels through expression attribute values, never
// through string interpolation into the expression itself.
type DynamoService struct {
	Client *dynamodb.Client
	Log    logger.Logger
}

// InitializeDynamoDBClient initializes the DynamoDB client
func InitializeDynamoDBClient(region string) *dynamodb.Client {
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

func (ds *DynamoService) ready() error {
	if ds == nil || ds.Client == nil {
		return apperror.NewStoreUnavailable("record store client not initialized", nil)
	}
	return nil
}

// QueryItemsWithIndex queries items using a Global Secondary Index.
func (ds *DynamoService) QueryItemsWithIndex(
	ctx context.Context,
	tableName string,
	indexName string,
	keyConditionExpression string,
	expressionAttributeValues map[string]types.AttributeValue,
	expressionAttributeNames map[string]string,
	limit int32,
) ([]map[string]types.AttributeValue, error) {
	if err := ds.ready(); err != nil {
		return nil, err
	}

	output, err := ds.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 &tableName,
		IndexName:                 &indexName,
		KeyConditionExpression:    &keyConditionExpression,
		ExpressionAttributeValues: expressionAttributeValues,
		ExpressionAttributeNames:  expressionAttributeNames,
		Limit:                     &limit,
	})
	if err != nil {
		ds.Log.Error("query on index failed", err, zap.String("table", tableName), zap.String("index", indexName))
		return nil, apperror.NewStoreUnavailable(fmt.Sprintf("failed to query index '%s' on table '%s'", indexName, tableName), err)
	}
	return output.Items, nil
}

// QueryItemsWithFilters queries with a key condition plus an optional
// filter expression applied after the key match.
func (ds *DynamoService) QueryItemsWithFilters(
	ctx context.Context,
	tableName string,
	indexName string,
	keyCondition string,
	expressionValues map[string]types.AttributeValue,
	filterExpression string,
) ([]map[string]types.AttributeValue, error) {
	if err := ds.ready(); err != nil {
		return nil, err
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(tableName),
		KeyConditionExpression:    aws.String(keyCondition),
		ExpressionAttributeValues: expressionValues,
	}
	if indexName != "" {
		input.IndexName = aws.String(indexName)
	}
	if filterExpression != "" {
		input.FilterExpression = aws.String(filterExpression)
	}

	result, err := ds.Client.Query(ctx, input)
	if err != nil {
		ds.Log.Error("filtered query failed", err, zap.String("table", tableName))
		return nil, apperror.NewStoreUnavailable(fmt.Sprintf("failed to query table '%s'", tableName), err)
	}
	return result.Items, nil
}

// PutItem marshals and inserts a record.
func (ds *DynamoService) PutItem(ctx context.Context, tableName string, item interface{}) error {
	if err := ds.ready(); err != nil {
		return err
	}

	marshaledItem, err := attributevalue.MarshalMap(item)
	if err != nil {
		return apperror.NewInternal(fmt.Sprintf("failed to marshal item for table '%s'", tableName), err)
	}

	_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &tableName,
		Item:      marshaledItem,
	})
	if err != nil {
		ds.Log.Error("put item failed", err, zap.String("table", tableName))
		return apperror.NewStoreUnavailable(fmt.Sprintf("failed to put item in table '%s'", tableName), err)
	}
	return nil
}

var errItemNotFound = errors.New("item not found")

// GetItem retrieves a record by primary key. Returns errItemNotFound
// when the key does not resolve; callers translate to their own
// not-found error.
func (ds *DynamoService) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	if err := ds.ready(); err != nil {
		return nil, err
	}

	output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &tableName,
		Key:       key,
	})
	if err != nil {
		ds.Log.Error("get item failed", err, zap.String("table", tableName))
		return nil, apperror.NewStoreUnavailable(fmt.Sprintf("failed to get item from table '%s'", tableName), err)
	}
	if output.Item == nil {
		return nil, errItemNotFound
	}
	return output.Item, nil
}

// BatchGetItems fetches up to 100 records per round trip.
func (ds *DynamoService) BatchGetItems(ctx context.Context, tableName string, keys []map[string]types.AttributeValue) ([]map[string]types.AttributeValue, error) {
	if err := ds.ready(); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}

	const maxBatchSize = 100
	var items []map[string]types.AttributeValue

	for i := 0; i < len(keys); i += maxBatchSize {
		end := i + maxBatchSize
		if end > len(keys) {
			end = len(keys)
		}

		output, err := ds.Client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
			RequestItems: map[string]types.KeysAndAttributes{
				tableName: {Keys: keys[i:end]},
			},
		})
		if err != nil {
			ds.Log.Error("batch get failed", err, zap.String("table", tableName))
			return nil, apperror.NewStoreUnavailable(fmt.Sprintf("failed to batch get items from table '%s'", tableName), err)
		}
		items = append(items, output.Responses[tableName]...)
	}
	return items, nil
}

// UpdateItem applies an update expression and returns the new record.
func (ds *DynamoService) UpdateItem(
	ctx context.Context,
	tableName string,
	updateExpression string,
	key map[string]types.AttributeValue,
	expressionAttributeValues map[string]types.AttributeValue,
	expressionAttributeNames map[string]string,
) (map[string]types.AttributeValue, error) {
	if err := ds.ready(); err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, apperror.NewInternal("update failed: key cannot be empty", nil)
	}
	if updateExpression == "" {
		return nil, apperror.NewInternal("update failed: updateExpression cannot be empty", nil)
	}

	// REMOVE-only expressions carry no attribute values
	var expAttrValues map[string]types.AttributeValue
	if len(expressionAttributeValues) > 0 {
		expAttrValues = expressionAttributeValues
	}

	output, err := ds.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &tableName,
		Key:                       key,
		UpdateExpression:          &updateExpression,
		ExpressionAttributeValues: expAttrValues,
		ExpressionAttributeNames:  expressionAttributeNames,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		ds.Log.Error("update item failed", err, zap.String("table", tableName))
		return nil, apperror.NewStoreUnavailable(fmt.Sprintf("failed to update item in table '%s'", tableName), err)
	}
	if output.Attributes == nil {
		return map[string]types.AttributeValue{}, nil
	}
	return output.Attributes, nil
}

// DeleteItem removes a record by primary key.
func (ds *DynamoService) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	if err := ds.ready(); err != nil {
		return err
	}

	_, err := ds.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &tableName,
		Key:       key,
	})
	if err != nil {
		ds.Log.Error("delete item failed", err, zap.String("table", tableName))
		return apperror.NewStoreUnavailable(fmt.Sprintf("failed to delete item from table '%s'", tableName), err)
	}
	return nil
}

// ScanWithFilter scans a table, skips records whose excluded fields
// hold the given values, and unmarshals the remainder into result (a
// pointer to a slice of structs).
func (ds *DynamoService) ScanWithFilter(
	ctx context.Context,
	tableName string,
	filterFunc func(map[string]types.AttributeValue) bool,
	excludeFields map[string]string,
	result interface{},
) error {
	if err := ds.ready(); err != nil {
		return err
	}

	var filterExpressions []string
	expressionAttributeNames := map[string]string{}
	expressionAttributeValues := map[string]types.AttributeValue{}

	for key, value := range excludeFields {
		expressionAttributeNames["#"+key] = key
		expressionAttributeValues[":"+key] = &types.AttributeValueMemberS{Value: value}
		filterExpressions = append(filterExpressions, fmt.Sprintf("#%s <> :%s", key, key))
	}

	scanInput := &dynamodb.ScanInput{TableName: &tableName}
	if len(filterExpressions) > 0 {
		filterExpression := stringJoin(filterExpressions, " AND ")
		scanInput.FilterExpression = &filterExpression
		scanInput.ExpressionAttributeNames = expressionAttributeNames
		scanInput.ExpressionAttributeValues = expressionAttributeValues
	}

	output, err := ds.Client.Scan(ctx, scanInput)
	if err != nil {
		ds.Log.Error("scan failed", err, zap.String("table", tableName))
		return apperror.NewStoreUnavailable(fmt.Sprintf("failed to scan table '%s'", tableName), err)
	}

	var filteredItems []map[string]types.AttributeValue
	for _, item := range output.Items {
		if filterFunc == nil || filterFunc(item) {
			filteredItems = append(filteredItems, item)
		}
	}

	if err := attributevalue.UnmarshalListOfMaps(filteredItems, result); err != nil {
		return apperror.NewInternal("failed to unmarshal scan result", err)
	}
	return nil
}

// Utility function to join strings
func stringJoin(parts []string, delimiter string) string {
	result := ""
	for i, part := range parts {
		if i > 0 {
			result += delimiter
		}
		result += part
	}
	return result
}
