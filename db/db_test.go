package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/chordchart/model"
	"github.com/stretchr/testify/assert"
)

type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	batches     [][]*dynamodb.WriteRequest
	unprocessed int
	unfetched   int
	items       map[string]map[string]*dynamodb.AttributeValue
	err         error
}

func (f *fakeDynamo) BatchWriteItemWithContext(_ aws.Context, in *dynamodb.BatchWriteItemInput, _ ...request.Option) (*dynamodb.BatchWriteItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := &dynamodb.BatchWriteItemOutput{}
	for table, reqs := range in.RequestItems {
		f.batches = append(f.batches, reqs)
		if f.unprocessed > 0 {
			f.unprocessed--
			out.UnprocessedItems = map[string][]*dynamodb.WriteRequest{table: reqs[:1]}
		}
		for _, r := range reqs {
			f.items[*r.PutRequest.Item["id"].S] = r.PutRequest.Item
		}
	}
	return out, nil
}

func (f *fakeDynamo) BatchGetItemWithContext(_ aws.Context, in *dynamodb.BatchGetItemInput, _ ...request.Option) (*dynamodb.BatchGetItemOutput, error) {
	out := &dynamodb.BatchGetItemOutput{Responses: map[string][]map[string]*dynamodb.AttributeValue{}}
	for table, ka := range in.RequestItems {
		keys := ka.Keys
		if f.unfetched > 0 && len(keys) > 0 {
			f.unfetched--
			out.UnprocessedKeys = map[string]*dynamodb.KeysAndAttributes{table: {Keys: keys[:1]}}
			keys = keys[1:]
		}
		for _, key := range keys {
			if item, ok := f.items[*key["id"].S]; ok {
				out.Responses[table] = append(out.Responses[table], item)
			}
		}
	}
	return out, nil
}

func records(n int) []model.Record {
	var out []model.Record
	for i := 0; i < n; i++ {
		out = append(out, model.Record{
			ID:    fmt.Sprintf("id-%d", i),
			Title: fmt.Sprintf("Tune %d", i),
			Key:   "G",
			Parts: []model.PartRecord{{Name: "A", Sections: []model.SectionRecord{{Repeat: true}}}},
		})
	}
	return out
}

func TestWriteRequests(t *testing.T) {
	reqs, err := WriteRequests(records(2))

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(reqs, 2)
	item := reqs[1].PutRequest.Item
	assert.Equal("id-1", *item["id"].S)
	assert.Equal("Tune 1", *item["title"].S)
	assert.Nil(item["composer"])

	var back model.Record
	assert.NoError(dynamodbattribute.UnmarshalMap(item, &back))
	assert.True(back.Parts[0].Sections[0].Repeat)
}

func TestBatches(t *testing.T) {
	tests := []struct {
		n     int
		sizes []int
	}{
		{0, nil},
		{25, []int{25}},
		{26, []int{25, 1}},
		{60, []int{25, 25, 10}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.n), func(t *testing.T) {
			reqs, err := WriteRequests(records(tt.n))
			assert.NoError(t, err)

			var sizes []int
			for _, b := range Batches(reqs, 25) {
				sizes = append(sizes, len(b))
			}
			assert.Equal(t, tt.sizes, sizes)
		})
	}
}

func TestPublish(t *testing.T) {
	fake := &fakeDynamo{items: map[string]map[string]*dynamodb.AttributeValue{}, unprocessed: 1}

	sent, err := Publish(context.Background(), fake, "songs", records(30))

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(3, sent)
	assert.Len(fake.batches[0], 25)
	assert.Len(fake.batches[1], 1)
	assert.Len(fake.batches[2], 5)
	assert.Len(fake.items, 30)

	got, err := GetRecords(context.Background(), fake, "songs", []string{"id-3", "nope"})
	assert.NoError(err)
	assert.Len(got, 1)
	assert.Equal("Tune 3", got["id-3"].Title)
}

func TestPublishGivesUp(t *testing.T) {
	fake := &fakeDynamo{items: map[string]map[string]*dynamodb.AttributeValue{}, unprocessed: 100}

	_, err := Publish(context.Background(), fake, "songs", records(1))
	assert.Error(t, err)
}

func TestPublishError(t *testing.T) {
	boom := errors.New("boom")
	fake := &fakeDynamo{items: map[string]map[string]*dynamodb.AttributeValue{}, err: boom}

	_, err := Publish(context.Background(), fake, "songs", records(1))
	assert.ErrorIs(t, err, boom)
}

func TestGetRecordsRetriesUnprocessedKeys(t *testing.T) {
	fake := &fakeDynamo{items: map[string]map[string]*dynamodb.AttributeValue{}}
	_, err := Publish(context.Background(), fake, "songs", records(3))
	assert.NoError(t, err)

	fake.unfetched = 2
	got, err := GetRecords(context.Background(), fake, "songs", []string{"id-0", "id-1", "id-2"})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(got, 3)
	assert.Equal("Tune 0", got["id-0"].Title)
	assert.Zero(fake.unfetched)

	fake.unfetched = 100
	_, err = GetRecords(context.Background(), fake, "songs", []string{"id-0"})
	assert.Error(err)
}

func TestGetRecordsLimits(t *testing.T) {
	fake := &fakeDynamo{}
	ids := make([]string, 101)

	_, err := GetRecords(context.Background(), fake, "songs", ids)
	assert.Error(t, err)

	got, err := GetRecords(context.Background(), fake, "songs", nil)
	assert.NoError(t, err)
	assert.Empty(t, got)
}
