package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSQS struct {
	input *sqs.SendMessageInput
	err   error
}

func (s *stubSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	s.input = params
	if s.err != nil {
		return nil, s.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func TestSQSSink_Send(t *testing.T) {
	client := &stubSQS{}
	sink := NewSQSSink(client, "https://sqs.local/queue")

	require.NoError(t, sink.Send(context.Background(), Payload{SessionID: "s-9", ScamDetected: true}))

	require.NotNil(t, client.input)
	assert.Equal(t, "https://sqs.local/queue", aws.ToString(client.input.QueueUrl))
	assert.Equal(t, "s-9", aws.ToString(client.input.MessageAttributes["sessionId"].StringValue))

	var body Payload
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(client.input.MessageBody)), &body))
	assert.Equal(t, "s-9", body.SessionID)
	assert.True(t, body.ScamDetected)
}

func TestSQSSink_WrapsErrors(t *testing.T) {
	sink := NewSQSSink(&stubSQS{err: errors.New("throttled")}, "q")
	err := sink.Send(context.Background(), Payload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestNewSQSSink_PanicsOnMissingQueue(t *testing.T) {
	assert.Panics(t, func() { NewSQSSink(&stubSQS{}, "") })
	assert.Panics(t, func() { NewSQSSink(nil, "q") })
}
