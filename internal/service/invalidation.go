package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alimikegami/storefront-service/internal/dto"
	"github.com/alimikegami/storefront-service/internal/infrastructure/metrics"
	"github.com/alimikegami/storefront-service/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const maxPublishRetries = 3

// ProductPaths lists the views that render product: the catalog root, its detail page and the
// admin dashboard.
func ProductPaths(slugs ...string) []string {
	paths := []string{"/", "/dashboard"}
	seen := map[string]bool{}
	for _, slug := range slugs {
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		paths = append(paths, "/products/"+slug)
	}
	return paths
}

// CacheInvalidator evicts views straight from the view cache. Used when no broker is configured.
type CacheInvalidator struct {
	views repository.ViewCache
}

func CreateCacheInvalidator(views repository.ViewCache) Invalidator {
	return &CacheInvalidator{views: views}
}

func (i *CacheInvalidator) Invalidate(ctx context.Context, paths ...string) error {
	if err := i.views.Invalidate(ctx, paths...); err != nil {
		return err
	}
	metrics.InvalidatedPaths.Add(float64(len(paths)))
	return nil
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// KafkaInvalidator publishes invalidations so every instance, and any external renderer, can
// drop its copy of the view.
type KafkaInvalidator struct {
	writer  MessageWriter
	backoff func(attempt int) time.Duration
}

func CreateKafkaInvalidator(writer MessageWriter) Invalidator {
	return &KafkaInvalidator{
		writer: writer,
		backoff: func(attempt int) time.Duration {
			return time.Second * time.Duration(attempt+1)
		},
	}
}

func (i *KafkaInvalidator) Invalidate(ctx context.Context, paths ...string) (err error) {
	kafkaMsg := dto.KafkaMessage{
		EventType: dto.EventRevalidatePaths,
		Data:      dto.RevalidatePaths{Paths: paths},
	}

	jsonMsg, err := json.Marshal(kafkaMsg)
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	for attempt := 0; attempt < maxPublishRetries; attempt++ {
		err = i.writer.WriteMessages(ctx, kafka.Message{Value: jsonMsg})
		if err == nil {
			break
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "Invalidate").Int("attempt", attempt+1).Msg("")
		if attempt == maxPublishRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(i.backoff(attempt)):
		}
	}

	if err != nil {
		return fmt.Errorf("failed to write Kafka message after %d attempts: %w", maxPublishRetries, err)
	}

	return nil
}

// ConsumeEvent applies published invalidations to the local view cache until ctx is cancelled.
func ConsumeEvent(ctx context.Context, reader MessageReader, views repository.ViewCache) {
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
			continue
		}

		if err := handleEvent(ctx, msg.Value, views); err != nil {
			log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
		}
	}
}

func handleEvent(ctx context.Context, value []byte, views repository.ViewCache) error {
	var receivedMsg struct {
		EventType string          `json:"event_type"`
		Data      json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(value, &receivedMsg); err != nil {
		return err
	}

	switch receivedMsg.EventType {
	case dto.EventRevalidatePaths:
		var data dto.RevalidatePaths
		if err := json.Unmarshal(receivedMsg.Data, &data); err != nil {
			return err
		}
		if err := views.Invalidate(ctx, data.Paths...); err != nil {
			return err
		}
		metrics.InvalidatedPaths.Add(float64(len(data.Paths)))
		log.Debug().Str("component", "ConsumeEvent").Strs("paths", data.Paths).Msg("views invalidated")
	default:
		log.Warn().Str("component", "ConsumeEvent").Str("event_type", receivedMsg.EventType).Msg("unknown event type")
	}

	return nil
}
