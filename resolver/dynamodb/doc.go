// Package dynamodb provides a DynamoDB implementation of resolver.Resolver
// for small assets stored inline in a table.
//
// Table schema:
//   - Partition key: path (string) - the resolved asset path
//   - data (binary or string) - the asset bytes
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name assetkit-content \
//	  --attribute-definitions AttributeName=path,AttributeType=S \
//	  --key-schema AttributeName=path,KeyType=HASH \
//	  --billing-mode PAY_PER_REQUEST
package dynamodb
