package sns

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/go-presignup-gate/internal/domain"
)

// DecisionPublisher announces pre-signup outcomes.
type DecisionPublisher interface {
	PublishDecision(ctx context.Context, d *domain.SignupDecision) error
}

// publishAPI is the subset of *sns.Client the publisher needs.
type publishAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type publisher struct {
	client   publishAPI
	topicARN string
}

func NewPublisher(client publishAPI, topicARN string) DecisionPublisher {
	return &publisher{client: client, topicARN: topicARN}
}

func (p *publisher) PublishDecision(ctx context.Context, d *domain.SignupDecision) error {
	body, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}
	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Subject:  aws.String("signup." + d.Outcome),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"outcome": {
				DataType:    aws.String("String"),
				StringValue: aws.String(d.Outcome),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish decision %s: %w", d.EventID, err)
	}
	return nil
}
