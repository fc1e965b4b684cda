package service

import (
	"context"
	"errors"
	"sync"

	"github.com/alimikegami/storefront-service/internal/infrastructure/imagehost"
	"github.com/segmentio/kafka-go"
)

type fakeImageStore struct {
	mu        sync.Mutex
	uploadErr error
	deleteErr error
	uploads   []string
	deleted   []string
}

func (f *fakeImageStore) Upload(_ context.Context, _, fileName string) (imagehost.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.uploadErr != nil {
		return imagehost.Image{}, f.uploadErr
	}
	f.uploads = append(f.uploads, fileName)
	return imagehost.Image{
		FileID: "file-" + fileName,
		URL:    "https://ik.imagekit.io/shop/tr:h-400,w-400,c-maintain_ratio/Ecommerce/" + fileName,
	}, nil
}

func (f *fakeImageStore) Delete(_ context.Context, fileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, fileID)
	return f.deleteErr
}

type recordingInvalidator struct {
	mu    sync.Mutex
	err   error
	calls [][]string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, paths ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, paths)
	return r.err
}

func (r *recordingInvalidator) last() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1]
}

type fakeWriter struct {
	failures int
	messages []kafka.Message
	attempts int
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.attempts++
	if w.attempts <= w.failures {
		return errors.New("leader not available")
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

type fakeReader struct {
	messages []kafka.Message
	cancel   context.CancelFunc
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.messages) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}
