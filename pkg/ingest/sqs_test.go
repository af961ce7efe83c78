package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/cloudgov/console/pkg/cloud"
	"github.com/cloudgov/console/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validFinding() cloud.SecurityFinding {
	return cloud.SecurityFinding{
		ID:         "finding-abc",
		Title:      "Security group open to the world",
		Severity:   cloud.SeverityHigh,
		Status:     cloud.FindingOpen,
		DetectedAt: time.Now(),
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(validFinding()))

	f := validFinding()
	f.ID = ""
	assert.Error(t, Validate(f))

	f = validFinding()
	f.Severity = "urgent"
	assert.Error(t, Validate(f))

	f = validFinding()
	f.Status = "closed"
	assert.Error(t, Validate(f))
}

func TestHandleMessage_StoresFinding(t *testing.T) {
	store := storage.NewInMemoryFindingStorage()
	s := &SQSIngester{
		log:      zap.NewNop().Sugar(),
		findings: store,
	}

	body, err := json.Marshal(validFinding())
	require.NoError(t, err)
	payload := string(body)

	err = s.handleMessage(&types.Message{Body: &payload})
	require.NoError(t, err)

	stored, err := store.Get("finding-abc")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, cloud.SeverityHigh, stored.Severity)
}

// fakeSQSClient serves one batch of messages, then blocks until the
// context is cancelled. It records every deleted receipt handle and
// closes done once the expected number of deletions has arrived.
type fakeSQSClient struct {
	mu       sync.Mutex
	batches  [][]types.Message
	deleted  []string
	expected int
	done     chan struct{}
	closed   bool
}

func (f *fakeSQSClient) ReceiveMessage(ctx context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	if len(f.batches) > 0 {
		batch := f.batches[0]
		f.batches = f.batches[1:]
		f.mu.Unlock()
		return &sqs.ReceiveMessageOutput{Messages: batch}, nil
	}
	f.mu.Unlock()

	<-ctx.Done()
	return nil, ctx.Err()
}

func (f *fakeSQSClient) DeleteMessage(_ context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, *params.ReceiptHandle)
	if len(f.deleted) == f.expected && !f.closed {
		f.closed = true
		close(f.done)
	}
	return &sqs.DeleteMessageOutput{}, nil
}

func TestStart_EachMessageStoredAndDeletedOnce(t *testing.T) {
	const count = 8

	store := storage.NewInMemoryFindingStorage()

	messages := make([]types.Message, 0, count)
	for i := 0; i < count; i++ {
		f := validFinding()
		f.ID = fmt.Sprintf("finding-%03d", i)
		body, err := json.Marshal(f)
		require.NoError(t, err)

		payload := string(body)
		handle := fmt.Sprintf("handle-%03d", i)
		messages = append(messages, types.Message{Body: &payload, ReceiptHandle: &handle})
	}

	client := &fakeSQSClient{
		batches:  [][]types.Message{messages},
		expected: count,
		done:     make(chan struct{}),
	}
	s := &SQSIngester{
		log:         zap.NewNop().Sugar(),
		client:      client,
		queueUrl:    "https://sqs.us-east-1.amazonaws.com/123456789012/findings",
		findings:    store,
		workerCount: 4,
	}

	s.Start(context.Background())
	defer s.Shutdown()

	select {
	case <-client.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message deletions")
	}

	stored, err := store.List()
	require.NoError(t, err)
	assert.Len(t, stored, count)

	client.mu.Lock()
	defer client.mu.Unlock()
	require.Len(t, client.deleted, count)

	// every receipt handle deleted exactly once: a worker must never
	// delete a different message than the one it stored
	seen := map[string]bool{}
	for _, h := range client.deleted {
		seen[h] = true
	}
	assert.Len(t, seen, count)
}

func TestHandleMessage_RejectsMalformedPayloads(t *testing.T) {
	s := &SQSIngester{
		log:      zap.NewNop().Sugar(),
		findings: storage.NewInMemoryFindingStorage(),
	}

	assert.Error(t, s.handleMessage(&types.Message{}))

	bad := "{not json"
	assert.Error(t, s.handleMessage(&types.Message{Body: &bad}))

	empty := "{}"
	assert.Error(t, s.handleMessage(&types.Message{Body: &empty}))
}
