package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type sqsSendAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSSink publishes reports to a queue consumed by the case-management system.
type SQSSink struct {
	client   sqsSendAPI
	queueURL string
}

// NewSQSSink creates a sink around the provided SQS client.
func NewSQSSink(client sqsSendAPI, queueURL string) *SQSSink {
	if client == nil {
		panic("report: SQS client cannot be nil")
	}
	if queueURL == "" {
		panic("report: SQS queueURL cannot be empty")
	}
	return &SQSSink{client: client, queueURL: queueURL}
}

func (s *SQSSink) Send(ctx context.Context, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("report: failed to encode payload: %w", err)
	}
	_, err = s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"sessionId": {DataType: aws.String("String"), StringValue: aws.String(payload.SessionID)},
		},
	})
	if err != nil {
		return fmt.Errorf("report: failed to send SQS message: %w", err)
	}
	return nil
}
