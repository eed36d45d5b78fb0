package workers

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	go_redis "github.com/redis/go-redis/v9"

	"smartclinic-backend/internal/common/logger"
	"smartclinic-backend/internal/platform/redis"
)

const (
	notificationsStream = "bot:notifications"
	consumerGroup       = "smartclinic_consumers"
	consumerName        = "smartclinic_worker_1"
)

// Sender delivers one outbound message, satisfied by the Bot API client.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, markup interface{}) error
}

// Publisher enqueues outbound notifications on a Redis stream, so the
// HTTP request that triggers one returns without waiting on Telegram.
type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

func (p *Publisher) Publish(ctx context.Context, chatID int64, text string) error {
	return p.rdb.XAdd(ctx, &go_redis.XAddArgs{
		Stream: notificationsStream,
		Values: map[string]interface{}{
			"chat_id": strconv.FormatInt(chatID, 10),
			"text":    text,
		},
	}).Err()
}

// NotificationWorker consumes the stream and delivers each entry via the
// bot. Entries are acknowledged after a delivery attempt; Telegram
// failures are logged and dropped rather than retried forever.
type NotificationWorker struct {
	rdb    *redis.Client
	sender Sender

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewNotificationWorker(rdb *redis.Client, sender Sender) *NotificationWorker {
	return &NotificationWorker{
		rdb:      rdb,
		sender:   sender,
		stopChan: make(chan struct{}),
	}
}

func (w *NotificationWorker) Start() {
	w.wg.Add(1)
	go w.loop()
	logger.Info().Str("stream", notificationsStream).Msg("Notification worker started")
}

func (w *NotificationWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stopChan) })
	w.wg.Wait()
	logger.Info().Msg("Notification worker stopped")
}

func (w *NotificationWorker) loop() {
	defer w.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-w.stopChan
		cancel()
	}()

	err := w.rdb.XGroupCreateMkStream(ctx, notificationsStream, consumerGroup, "$").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		logger.Error().Err(err).Msg("Failed to create consumer group")
	}

	for {
		select {
		case <-w.stopChan:
			return
		default:
		}

		entries, err := w.rdb.XReadGroup(ctx, &go_redis.XReadGroupArgs{
			Group:    consumerGroup,
			Consumer: consumerName,
			Streams:  []string{notificationsStream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if err != go_redis.Nil {
				logger.Error().Err(err).Msg("Failed to read notification stream")
				select {
				case <-time.After(time.Second):
				case <-w.stopChan:
					return
				}
			}
			continue
		}

		for _, stream := range entries {
			for _, msg := range stream.Messages {
				w.deliver(ctx, msg.Values)
				w.rdb.XAck(ctx, notificationsStream, consumerGroup, msg.ID)
			}
		}
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, values map[string]interface{}) {
	rawChatID, ok := values["chat_id"].(string)
	if !ok {
		return
	}
	chatID, err := strconv.ParseInt(rawChatID, 10, 64)
	if err != nil {
		logger.Error().Str("chat_id", rawChatID).Msg("Malformed chat id in notification")
		return
	}
	text, _ := values["text"].(string)
	if text == "" {
		return
	}
	if err := w.sender.SendMessage(ctx, chatID, text, nil); err != nil {
		logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to deliver notification")
	}
}
