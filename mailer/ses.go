package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type sesAPI interface {
	SendTemplatedEmail(ctx context.Context, params *ses.SendTemplatedEmailInput, optFns ...func(*ses.Options)) (*ses.SendTemplatedEmailOutput, error)
}

// SESSender sends SES templated email; template ids double as SES template names.
type SESSender struct {
	client sesAPI
	source string
}

func NewSESSender(ctx context.Context, region, source string) (*SESSender, error) {
	if source == "" {
		return nil, errors.New("SES_EMAIL must be set when MAIL_PROVIDER=ses")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("aws config load failed: %w", err)
	}
	return &SESSender{client: ses.NewFromConfig(cfg), source: source}, nil
}

func (s *SESSender) Send(ctx context.Context, msg Message) error {
	data, err := json.Marshal(msg.Variables)
	if err != nil {
		return fmt.Errorf("encode template data: %w", err)
	}

	_, err = s.client.SendTemplatedEmail(ctx, &ses.SendTemplatedEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{msg.Email},
		},
		Source:       aws.String(s.source),
		Template:     aws.String(msg.TemplateID),
		TemplateData: aws.String(string(data)),
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}
