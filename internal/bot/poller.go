package bot

import (
	"context"
	"sync"
	"time"

	"smartclinic-backend/internal/common/logger"
	"smartclinic-backend/internal/platform/telegram"
)

// Poller drives the update loop: long-poll getUpdates, dispatch each
// update in its own goroutine. Ordering between updates of one chat is
// not required; the profile upsert converges regardless.
type Poller struct {
	client     *telegram.Client
	dispatcher *Dispatcher
	timeoutSec int

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewPoller(client *telegram.Client, dispatcher *Dispatcher, timeoutSec int) *Poller {
	return &Poller{
		client:     client,
		dispatcher: dispatcher,
		timeoutSec: timeoutSec,
		stopChan:   make(chan struct{}),
	}
}

func (p *Poller) Start() {
	p.wg.Add(1)
	go p.loop()
	logger.Info().Int("poll_timeout_sec", p.timeoutSec).Msg("Bot poller started")
}

// Stop halts polling and waits for in-flight updates to finish.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stopChan) })
	p.wg.Wait()
	logger.Info().Msg("Bot poller stopped")
}

func (p *Poller) loop() {
	defer p.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-p.stopChan
		cancel()
	}()

	var offset int64
	for {
		select {
		case <-p.stopChan:
			return
		default:
		}

		updates, err := p.client.GetUpdates(ctx, offset, p.timeoutSec)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error().Err(err).Msg("getUpdates failed, retrying")
			select {
			case <-time.After(3 * time.Second):
			case <-p.stopChan:
				return
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			p.wg.Add(1)
			go func(u telegram.Update) {
				defer p.wg.Done()
				defer func() {
					if r := recover(); r != nil {
						logger.Error().Interface("panic", r).Int64("update_id", u.UpdateID).Msg("Panic while handling update")
					}
				}()
				p.dispatcher.HandleUpdate(ctx, u)
			}(update)
		}
	}
}
