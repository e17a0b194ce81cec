package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"dailyair/internal/models"
)

func rawMongoDocument(t *testing.T, dates interface{}) bson.Raw {
	t.Helper()
	data, err := bson.Marshal(bson.D{
		{Key: "_id", Value: bson.D{
			{Key: "station", Value: "TOULOUSE Berthelot"},
			{Key: "pollutant", Value: "PM10"},
			{Key: "hour", Value: int32(9)},
		}},
		{Key: "history", Value: bson.D{
			{Key: "values", Value: bson.A{int32(18), 22.5}},
			{Key: "dates", Value: dates},
		}},
	})
	require.NoError(t, err)
	return bson.Raw(data)
}

func TestDecodeMongoDocumentDatetimes(t *testing.T) {
	dates := bson.A{
		time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC),
	}
	doc, err := decodeMongoDocument(rawMongoDocument(t, dates))
	require.NoError(t, err)

	assert.Equal(t, models.DocumentID{Station: "TOULOUSE Berthelot", Pollutant: "PM10", Hour: 9}, doc.ID)
	require.Len(t, doc.History, 2)
	assert.Equal(t, 18.0, doc.History[0].Value)
	assert.Equal(t, time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC), doc.History[1].RecordedAt)
}

func TestDecodeMongoDocumentStringDates(t *testing.T) {
	doc, err := decodeMongoDocument(rawMongoDocument(t, bson.A{"2024-05-02 09:00:00", "2024-05-03T09:00:00Z"}))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC), doc.History[0].RecordedAt)
	assert.Equal(t, 3, doc.History[1].RecordedAt.Day())
}

func TestDecodeMongoDocumentIntegrity(t *testing.T) {
	tests := []struct {
		name  string
		dates interface{}
	}{
		{"wrong date type", bson.A{int32(1), int32(2)}},
		{"malformed date", bson.A{"yesterday", "today"}},
		{"length mismatch", bson.A{time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)}},
		{"unordered dates", bson.A{time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC), time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeMongoDocument(rawMongoDocument(t, tt.dates))
			var integrity *models.DataIntegrityError
			require.True(t, errors.As(err, &integrity), "got %v", err)
			assert.Equal(t, "TOULOUSE Berthelot", integrity.Station)
			assert.Equal(t, 9, integrity.Hour)
		})
	}
}
