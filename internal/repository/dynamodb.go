package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"dailyair/internal/models"
)

// partitionKey is the hash key attribute of the hour tables
const partitionKey = "station_pollutant"

// dynamoHourItem is one hour document; dates are RFC 3339 strings
type dynamoHourItem struct {
	StationPollutant string    `json:"station_pollutant"`
	Hour             int       `json:"hour"`
	Values           []float64 `json:"values"`
	Dates            []string  `json:"dates"`
}

// DynamoStore reads hour documents from one DynamoDB table per day-type group.
// The catalog is not kept in DynamoDB.
type DynamoStore struct {
	client dynamodbiface.DynamoDBAPI
	tables map[models.DayTypeGroup]string
}

// NewDynamoStore opens a session for the region; endpoint overrides the
// service URL (DynamoDB Local)
func NewDynamoStore(region, endpoint, workingDaysTable, weekendsTable string) (*DynamoStore, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return NewDynamoStoreWithClient(dynamodb.New(sess), workingDaysTable, weekendsTable), nil
}

// NewDynamoStoreWithClient creates a store over an existing client
func NewDynamoStoreWithClient(client dynamodbiface.DynamoDBAPI, workingDaysTable, weekendsTable string) *DynamoStore {
	return &DynamoStore{
		client: client,
		tables: map[models.DayTypeGroup]string{
			models.WorkingDay: workingDaysTable,
			models.Weekend:    weekendsTable,
		},
	}
}

// DynamoKey builds the partition key of a station and pollutant
func DynamoKey(station, pollutant string) string {
	return station + "#" + pollutant
}

// FetchHistory queries every hour item of the station and pollutant
func (d *DynamoStore) FetchHistory(ctx context.Context, station, pollutant string, group models.DayTypeGroup) ([]models.HourDocument, error) {
	table, ok := d.tables[group]
	if !ok {
		return nil, fmt.Errorf("no table for group %s", group)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(table),
		KeyConditionExpression: aws.String(partitionKey + " = :key"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":key": {S: aws.String(DynamoKey(station, pollutant))},
		},
	}

	var items []dynamoHourItem
	var decodeErr error
	err := d.client.QueryPagesWithContext(ctx, input, func(page *dynamodb.QueryOutput, lastPage bool) bool {
		var pageItems []dynamoHourItem
		if err := dynamodbattribute.UnmarshalListOfMaps(page.Items, &pageItems); err != nil {
			decodeErr = err
			return false
		}
		items = append(items, pageItems...)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	if decodeErr != nil {
		return nil, models.NewDataIntegrityError(models.DocumentID{Station: station, Pollutant: pollutant}, "undecodable item: "+decodeErr.Error())
	}

	raw := make([]models.RawDocument, len(items))
	for i, it := range items {
		raw[i] = models.RawDocument{
			ID:      models.DocumentID{Station: station, Pollutant: pollutant, Hour: it.Hour},
			History: models.RawHistory{Values: it.Values, Dates: it.Dates},
		}
	}
	return models.DecodeAll(raw)
}
