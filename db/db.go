// Package db publishes song records to DynamoDB.
package db

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/chordchart/constants"
	"github.com/jsphweid/chordchart/logging"
	"github.com/jsphweid/chordchart/model"
)

// BatchGetItem accepts at most 100 keys
const maxGetKeys = 100

const maxRetries = 5

func NewClient(endpoint, region string) (*dynamodb.DynamoDB, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating DynamoDB session: %w", err)
	}
	return dynamodb.New(sess), nil
}

func WriteRequests(records []model.Record) ([]*dynamodb.WriteRequest, error) {
	reqs := make([]*dynamodb.WriteRequest, 0, len(records))
	for _, r := range records {
		item, err := dynamodbattribute.MarshalMap(r)
		if err != nil {
			return nil, fmt.Errorf("marshaling record %s: %w", r.ID, err)
		}
		reqs = append(reqs, &dynamodb.WriteRequest{PutRequest: &dynamodb.PutRequest{Item: item}})
	}
	return reqs, nil
}

// Batches splits reqs into groups of at most size.
func Batches(reqs []*dynamodb.WriteRequest, size int) [][]*dynamodb.WriteRequest {
	var out [][]*dynamodb.WriteRequest
	for len(reqs) > size {
		out = append(out, reqs[:size])
		reqs = reqs[size:]
	}
	if len(reqs) > 0 {
		out = append(out, reqs)
	}
	return out
}

// Publish puts every record into table, resubmitting unprocessed items a
// bounded number of times. It returns how many batches were sent.
func Publish(ctx context.Context, client dynamodbiface.DynamoDBAPI, table string, records []model.Record) (int, error) {
	reqs, err := WriteRequests(records)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, batch := range Batches(reqs, constants.DynamoBatchSize) {
		pending := map[string][]*dynamodb.WriteRequest{table: batch}
		for attempt := 0; len(pending) > 0; attempt++ {
			if attempt == maxRetries {
				return sent, fmt.Errorf("%d items still unprocessed after %d attempts", len(pending[table]), maxRetries)
			}
			out, err := client.BatchWriteItemWithContext(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
			if err != nil {
				return sent, fmt.Errorf("writing to %s: %w", table, err)
			}
			sent++
			pending = out.UnprocessedItems
			if len(pending) > 0 {
				logging.Warn("unprocessed items", "table", table, "count", len(pending[table]), "attempt", attempt+1)
			}
		}
	}
	logging.Info("published records", "table", table, "records", len(records), "batches", sent)
	return sent, nil
}

// GetRecords fetches records by ID. Missing IDs are absent from the result.
func GetRecords(ctx context.Context, client dynamodbiface.DynamoDBAPI, table string, ids []string) (map[string]model.Record, error) {
	if len(ids) > maxGetKeys {
		return nil, fmt.Errorf("at most %d ids per lookup, got %d", maxGetKeys, len(ids))
	}

	res := make(map[string]model.Record)
	if len(ids) == 0 {
		return res, nil
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, id := range ids {
		keys = append(keys, map[string]*dynamodb.AttributeValue{"id": {S: aws.String(id)}})
	}
	pending := map[string]*dynamodb.KeysAndAttributes{table: {Keys: keys}}
	for attempt := 0; len(pending) > 0; attempt++ {
		if attempt == maxRetries {
			return nil, fmt.Errorf("%d keys still unprocessed after %d attempts", len(pending[table].Keys), maxRetries)
		}
		out, err := client.BatchGetItemWithContext(ctx, &dynamodb.BatchGetItemInput{RequestItems: pending})
		if err != nil {
			return nil, fmt.Errorf("reading from %s: %w", table, err)
		}
		for _, item := range out.Responses[table] {
			var r model.Record
			if err := dynamodbattribute.UnmarshalMap(item, &r); err != nil {
				return nil, fmt.Errorf("unmarshaling record: %w", err)
			}
			res[r.ID] = r
		}
		pending = out.UnprocessedKeys
		if len(pending) > 0 {
			logging.Warn("unprocessed keys", "table", table, "count", len(pending[table].Keys), "attempt", attempt+1)
		}
	}
	return res, nil
}
