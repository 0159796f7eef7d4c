package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
)

// deleteAllItems scans a table and removes every item in batches of 25,
// following the scan cursor until the table is exhausted. Registry tables
// are keyed by PK only.
func deleteAllItems(ctx context.Context, client *dynamodb.Client, tableName string) (int, error) {
	var lastEvaluatedKey map[string]types.AttributeValue
	deleted := 0

	for {
		scanOutput, err := client.Scan(ctx, &dynamodb.ScanInput{
			TableName:            &tableName,
			ExclusiveStartKey:    lastEvaluatedKey,
			ProjectionExpression: aws.String("PK"),
		})
		if err != nil {
			return deleted, errors.Wrap(err, "scan for delete")
		}

		writeRequests := make([]types.WriteRequest, 0, len(scanOutput.Items))
		for _, item := range scanOutput.Items {
			writeRequests = append(writeRequests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{
					Key: map[string]types.AttributeValue{
						"PK": item["PK"],
					},
				},
			})
		}

		for i := 0; i < len(writeRequests); i += 25 {
			end := i + 25
			if end > len(writeRequests) {
				end = len(writeRequests)
			}
			_, err := client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{
					tableName: writeRequests[i:end],
				},
			})
			if err != nil {
				return deleted, errors.Wrap(err, "batch delete")
			}
			deleted += end - i
		}

		if scanOutput.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = scanOutput.LastEvaluatedKey
	}

	return deleted, nil
}
