// Package ingest receives security findings from an external scanning
// source via SQS and writes them to finding storage.
package ingest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/cloudgov/console/pkg/cloud"
	"github.com/cloudgov/console/pkg/storage"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// sqsAPI is the subset of the SQS client the ingester uses.
type sqsAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// SQSIngester polls an SQS queue for findings published by a scanner.
type SQSIngester struct {
	log      *zap.SugaredLogger
	client   sqsAPI
	queueUrl string
	findings storage.FindingStorage

	workerCount int

	cancel context.CancelFunc
}

type SQSIngesterConfig struct {
	Log      *zap.SugaredLogger
	QueueUrl string
	Findings storage.FindingStorage
}

func NewSQSIngester(ctx context.Context, opts *SQSIngesterConfig) (*SQSIngester, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	client := sqs.NewFromConfig(cfg)

	// default to 10 workers to process SQS messages for now
	// in future we could expose this so that it can be tuned in production.
	workerCount := 10

	return &SQSIngester{
		log:         opts.Log,
		client:      client,
		queueUrl:    opts.QueueUrl,
		findings:    opts.Findings,
		workerCount: workerCount,
	}, nil
}

// Start begins polling the queue in a separate goroutine.
func (s *SQSIngester) Start(ctx context.Context) {
	jobs := make(chan *types.Message)
	ctx, cancel := context.WithCancel(ctx)

	for w := 1; w <= s.workerCount; w++ {
		go s.worker(ctx, jobs)
	}

	s.cancel = cancel

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				out, err := s.client.ReceiveMessage(ctx,
					&sqs.ReceiveMessageInput{
						QueueUrl:       &s.queueUrl,
						AttributeNames: []types.QueueAttributeName{types.QueueAttributeNameAll},
					})
				if err != nil {
					if !errors.Is(err, context.Canceled) {
						s.log.With(zap.Error(err)).Error("error receiving SQS message, retrying in 10s")
						time.Sleep(10 * time.Second)
					}
					continue
				}
				for _, msg := range out.Messages {
					// copy: msg is reused across iterations and the
					// workers hold the pointer past the send
					msg := msg
					jobs <- &msg
				}
			}
		}
	}()
}

func (s *SQSIngester) Shutdown() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *SQSIngester) worker(ctx context.Context, messages <-chan *types.Message) {
	for m := range messages {
		err := s.handleMessage(m)
		if err != nil {
			s.log.With(zap.Error(err)).Error("error handling message")
		} else {
			// if no errors handling, delete the message from the queue
			_, err = s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
				QueueUrl:      &s.queueUrl,
				ReceiptHandle: m.ReceiptHandle,
			})

			if err != nil {
				s.log.With(zap.Error(err)).Error("error deleting message")
			}
		}
	}
}

// handleMessage validates a finding payload and stores it. Findings with
// an unknown severity or status are rejected so a misbehaving scanner
// can't corrupt the dashboard.
func (s *SQSIngester) handleMessage(m *types.Message) error {
	if m.Body == nil {
		return errors.New("message has no body")
	}

	var f cloud.SecurityFinding
	if err := json.Unmarshal([]byte(*m.Body), &f); err != nil {
		return errors.Wrap(err, "unmarshalling finding")
	}

	if err := Validate(f); err != nil {
		return err
	}

	s.log.With("finding", f.ID).Info("ingesting finding")
	return s.findings.CreateOrUpdate(f)
}

// Validate checks the closed-enumeration fields of an inbound finding.
func Validate(f cloud.SecurityFinding) error {
	if f.ID == "" {
		return errors.New("finding has no id")
	}
	if !f.Severity.Valid() {
		return errors.Errorf("unrecognised severity %q", f.Severity)
	}
	if f.Status == "" {
		return errors.New("finding has no status")
	}
	if !f.Status.Valid() {
		return errors.Errorf("unrecognised status %q", f.Status)
	}
	return nil
}
