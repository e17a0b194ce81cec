package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"dailyair/internal/logger"
	"dailyair/internal/models"
)

// Collections of the air quality database
const (
	collRegions      = "regions"
	collDepartments  = "departments"
	collCities       = "cities"
	collDistribution = "distribution_pollutants"
	collLastUpdate   = "last_update"
)

// MongoStore reads hour documents and the catalog from MongoDB
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	log    *logger.Logger
}

// mongoHourDocument is the stored shape of an hour document; dates are kept
// raw so both BSON datetimes and date strings can be accepted
type mongoHourDocument struct {
	ID      models.DocumentID `bson:"_id"`
	History struct {
		Values []float64       `bson:"values"`
		Dates  []bson.RawValue `bson:"dates"`
	} `bson:"history"`
}

type mongoStation struct {
	Name        string `bson:"name"`
	Coordinates struct {
		Latitude  float64 `bson:"latitude"`
		Longitude float64 `bson:"longitude"`
	} `bson:"coordinates"`
}

// NewMongoStore connects to MongoDB and checks the server is reachable
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to reach MongoDB: %w", err)
	}
	return &MongoStore{
		client: client,
		db:     client.Database(database),
		log:    logger.Component("repository.mongo"),
	}, nil
}

// Close disconnects the client
func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// FetchHistory returns the hour documents of a station and pollutant in the group's collection
func (m *MongoStore) FetchHistory(ctx context.Context, station, pollutant string, group models.DayTypeGroup) ([]models.HourDocument, error) {
	filter := bson.D{
		{Key: "_id.station", Value: station},
		{Key: "_id.pollutant", Value: pollutant},
	}
	cursor, err := m.db.Collection(group.String()).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", group, err)
	}
	defer cursor.Close(ctx)

	var docs []models.HourDocument
	for cursor.Next(ctx) {
		doc, err := decodeMongoDocument(cursor.Current)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", group, err)
	}

	m.log.Debug("Fetched hour documents", logger.Fields{
		"group":     group.String(),
		"station":   station,
		"pollutant": pollutant,
		"documents": len(docs),
	})
	return docs, nil
}

// decodeMongoDocument validates one stored document. Anything that cannot
// be decoded is reported against the document's id.
func decodeMongoDocument(raw bson.Raw) (models.HourDocument, error) {
	var id models.DocumentID
	if err := raw.Lookup("_id").Unmarshal(&id); err != nil {
		return models.HourDocument{}, models.NewDataIntegrityError(id, "malformed _id: "+err.Error())
	}

	var stored mongoHourDocument
	if err := bson.Unmarshal(raw, &stored); err != nil {
		return models.HourDocument{}, models.NewDataIntegrityError(id, err.Error())
	}

	dates := make([]time.Time, len(stored.History.Dates))
	for i, rv := range stored.History.Dates {
		if t, ok := rv.TimeOK(); ok {
			dates[i] = t.UTC()
			continue
		}
		s, ok := rv.StringValueOK()
		if !ok {
			return models.HourDocument{}, models.NewDataIntegrityError(id, fmt.Sprintf("date %d has BSON type %s", i, rv.Type))
		}
		t, err := models.ParseDate(s)
		if err != nil {
			return models.HourDocument{}, models.NewDataIntegrityError(id, fmt.Sprintf("date %d: %v", i, err))
		}
		dates[i] = t
	}
	return models.NewHourDocument(stored.ID, stored.History.Values, dates)
}

// Regions returns the ids of the regions collection
func (m *MongoStore) Regions(ctx context.Context) ([]string, error) {
	return m.distinctIDs(ctx, collRegions)
}

// Departments returns the departments of a region
func (m *MongoStore) Departments(ctx context.Context, region string) ([]string, error) {
	var doc struct {
		Departments []string `bson:"departments"`
	}
	if err := m.findByID(ctx, collRegions, region, &doc); err != nil {
		return nil, err
	}
	return uniqueSorted(doc.Departments), nil
}

// Cities returns the cities of a department
func (m *MongoStore) Cities(ctx context.Context, department string) ([]string, error) {
	var doc struct {
		Cities []string `bson:"cities"`
	}
	if err := m.findByID(ctx, collDepartments, department, &doc); err != nil {
		return nil, err
	}
	return uniqueSorted(doc.Cities), nil
}

// Stations returns the stations of a city with their coordinates
func (m *MongoStore) Stations(ctx context.Context, city string) ([]Station, error) {
	var doc struct {
		Stations []mongoStation `bson:"stations"`
	}
	if err := m.findByID(ctx, collCities, city, &doc); err != nil {
		return nil, err
	}
	stations := make([]Station, len(doc.Stations))
	for i, s := range doc.Stations {
		stations[i] = Station{
			Name:      s.Name,
			Latitude:  s.Coordinates.Latitude,
			Longitude: s.Coordinates.Longitude,
		}
	}
	return stations, nil
}

// Pollutants returns the pollutants monitored at a station
func (m *MongoStore) Pollutants(ctx context.Context, station string) ([]string, error) {
	var doc struct {
		Monitored []string `bson:"monitored_pollutants"`
	}
	if err := m.findByID(ctx, collDistribution, station, &doc); err != nil {
		return nil, err
	}
	return uniqueSorted(doc.Monitored), nil
}

// MonitoredStations returns the stations that have pollutant data
func (m *MongoStore) MonitoredStations(ctx context.Context) ([]string, error) {
	return m.distinctIDs(ctx, collDistribution)
}

// LastUpdate returns the date of the most recent reading
func (m *MongoStore) LastUpdate(ctx context.Context) (time.Time, error) {
	var doc struct {
		Date time.Time `bson:"date"`
	}
	err := m.db.Collection(collLastUpdate).FindOne(ctx, bson.D{}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return time.Time{}, fmt.Errorf("last update: %w", ErrNotFound)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read last update: %w", err)
	}
	return doc.Date.UTC(), nil
}

func (m *MongoStore) findByID(ctx context.Context, collection, id string, out interface{}) error {
	err := m.db.Collection(collection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s %s: %w", collection, id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s %s: %w", collection, id, err)
	}
	return nil
}

func (m *MongoStore) distinctIDs(ctx context.Context, collection string) ([]string, error) {
	values, err := m.db.Collection(collection).Distinct(ctx, "_id", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
