// Package notification turns committed interactions into in-app and push
// notifications on a bounded background worker pool.
package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"github.com/anonto42/newsroom-social/backend/pkg/logger"
)

// Push titles.
const (
	TitleLike    = "New Like!"
	TitleComment = "New Comment!"
	TitleFollow  = "New Follower!"
	TitleShare   = "New Shared Article!"
)

const commentSnippetLen = 100

var ErrStopped = errors.New("dispatcher stopped")

type UserSource interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

type ArticleSource interface {
	GetSharedArticle(ctx context.Context, id uint) (*models.SharedArticle, error)
}

type FollowerSource interface {
	GetFollowerIDs(ctx context.Context, userID uint) ([]uint, error)
}

type TokenStore interface {
	GetActiveTokens(ctx context.Context, userID uint) ([]string, error)
	DeactivateToken(ctx context.Context, token string) error
}

type Inbox interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
}

// Deps are the stores and transport the dispatcher reads from and writes to.
// Inbox may be nil.
type Deps struct {
	Users     UserSource
	Articles  ArticleSource
	Followers FollowerSource
	Tokens    TokenStore
	Inbox     Inbox
	Transport PushTransport
}

type Config struct {
	Workers     int
	QueueSize   int
	Timeout     time.Duration
	RatePerSec  float64 // <= 0 disables limiting
	Concurrency int     // parallel recipients for share fan-out
}

func (c *Config) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 1024
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 8
	}
}

// Dispatcher fans events out to recipients. Enqueue never blocks the caller
// and delivery errors never reach it.
type Dispatcher struct {
	deps    Deps
	cfg     Config
	limiter *rate.Limiter

	queue chan Event
	wg    sync.WaitGroup

	mu      sync.RWMutex
	started bool
	closed  bool
}

func NewDispatcher(deps Deps, cfg Config) *Dispatcher {
	cfg.applyDefaults()

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RatePerSec > 0 {
		burst := int(cfg.RatePerSec)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), burst)
	}

	return &Dispatcher{
		deps:    deps,
		cfg:     cfg,
		limiter: limiter,
		queue:   make(chan Event, cfg.QueueSize),
	}
}

// Start launches the workers. Calling it twice is a no-op.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true

	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	logger.Info("notification dispatcher started",
		zap.Int("workers", d.cfg.Workers),
		zap.Int("queue_size", d.cfg.QueueSize),
	)
}

// Enqueue hands ev to the pool. A full queue or a stopped dispatcher drops
// the event and returns false.
func (d *Dispatcher) Enqueue(ev Event) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	kind := string(ev.Kind)
	if d.closed {
		eventsCounter.WithLabelValues(kind, "dropped").Inc()
		logger.Warn("dispatcher stopped, drop event", zap.String("event_id", ev.ID.String()), zap.String("kind", kind))
		return false
	}

	select {
	case d.queue <- ev:
		eventsCounter.WithLabelValues(kind, "enqueued").Inc()
		queueDepthGauge.Set(float64(len(d.queue)))
		return true
	default:
		eventsCounter.WithLabelValues(kind, "dropped").Inc()
		logger.Warn("notification queue full, drop event",
			zap.String("event_id", ev.ID.String()),
			zap.String("kind", kind),
			zap.Uint("actor", ev.ActorID),
		)
		return false
	}
}

// Stop closes the queue, lets the workers drain it and waits for them or for
// ctx, whichever comes first.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	started := d.started
	d.mu.Unlock()

	if !started {
		return nil
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("notification dispatcher stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain notification queue: %w", ctx.Err())
	}
}

// QueueLen returns a sample of the queue length.
func (d *Dispatcher) QueueLen() int { return len(d.queue) }

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		queueDepthGauge.Set(float64(len(d.queue)))
		d.handle(ev)
	}
}

func (d *Dispatcher) handle(ev Event) {
	start := time.Now()
	kind := string(ev.Kind)
	defer func() {
		if r := recover(); r != nil {
			eventsCounter.WithLabelValues(kind, "panic").Inc()
			logger.Error("notification handler panicked",
				zap.String("event_id", ev.ID.String()),
				zap.String("kind", kind),
				zap.Any("panic", r),
			)
		}
		handleHist.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout)
	defer cancel()

	if err := d.Dispatch(ctx, ev); err != nil {
		eventsCounter.WithLabelValues(kind, "failed").Inc()
		logger.Warn("notification dispatch failed",
			zap.String("event_id", ev.ID.String()),
			zap.String("kind", kind),
			zap.Error(err),
		)
		return
	}
	eventsCounter.WithLabelValues(kind, "processed").Inc()
}

// Dispatch handles ev synchronously. It only fails when recipients cannot be
// resolved; per-recipient and per-token failures are logged and counted.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	switch ev.Kind {
	case KindLike, KindComment:
		article, err := d.deps.Articles.GetSharedArticle(ctx, ev.ArticleID)
		if err != nil {
			return fmt.Errorf("load article %d: %w", ev.ArticleID, err)
		}
		if article.UserID == ev.ActorID {
			skippedCounter.WithLabelValues(string(ev.Kind), "self").Inc()
			return nil
		}
		d.notify(ctx, ev, article.UserID, d.compose(ctx, ev, article))
		return nil

	case KindFollow:
		d.notify(ctx, ev, ev.TargetUserID, d.compose(ctx, ev, nil))
		return nil

	case KindShare:
		article, err := d.deps.Articles.GetSharedArticle(ctx, ev.ArticleID)
		if err != nil {
			return fmt.Errorf("load article %d: %w", ev.ArticleID, err)
		}
		followers, err := d.deps.Followers.GetFollowerIDs(ctx, ev.ActorID)
		if err != nil {
			return fmt.Errorf("load followers of %d: %w", ev.ActorID, err)
		}
		msg := d.compose(ctx, ev, article)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(d.cfg.Concurrency)
		for _, followerID := range followers {
			followerID := followerID
			g.Go(func() error {
				defer d.recoverRecipient(ev, followerID)
				d.notify(gctx, ev, followerID, msg)
				return nil
			})
		}
		return g.Wait()
	}
	return fmt.Errorf("unknown event kind %q", ev.Kind)
}

// recoverRecipient contains a panic in one fan-out goroutine so the other
// recipients and the process carry on.
func (d *Dispatcher) recoverRecipient(ev Event, recipientID uint) {
	if r := recover(); r != nil {
		eventsCounter.WithLabelValues(string(ev.Kind), "panic").Inc()
		logger.Error("notification recipient panicked",
			zap.String("event_id", ev.ID.String()),
			zap.String("kind", string(ev.Kind)),
			zap.Uint("recipient", recipientID),
			zap.Any("panic", r),
		)
	}
}

func (d *Dispatcher) compose(ctx context.Context, ev Event, article *models.SharedArticle) Message {
	actor := "Someone"
	if u, err := d.deps.Users.GetUserByID(ctx, ev.ActorID); err == nil && u.DisplayName != "" {
		actor = u.DisplayName
	}

	data := map[string]string{
		"type":    string(ev.Kind),
		"actorId": strconv.FormatUint(uint64(ev.ActorID), 10),
	}
	if article != nil {
		data["articleId"] = strconv.FormatUint(uint64(article.ID), 10)
	}

	switch ev.Kind {
	case KindLike:
		return Message{Title: TitleLike, Body: actor + " liked your shared article: " + article.DisplayTitle(), Data: data}
	case KindComment:
		data["commentId"] = strconv.FormatUint(uint64(ev.CommentID), 10)
		return Message{Title: TitleComment, Body: actor + " commented on " + article.DisplayTitle() + ": " + snippet(ev.CommentText), Data: data}
	case KindFollow:
		return Message{Title: TitleFollow, Body: actor + " started following you", Data: data}
	default:
		return Message{Title: TitleShare, Body: actor + " shared: " + article.DisplayTitle(), Data: data}
	}
}

func snippet(s string) string {
	r := []rune(s)
	if len(r) <= commentSnippetLen {
		return s
	}
	return string(r[:commentSnippetLen]) + "…"
}

func wants(u *models.User, kind Kind) bool {
	switch kind {
	case KindLike:
		return u.NotifyOnLikes
	case KindComment:
		return u.NotifyOnComments
	case KindFollow:
		return u.NotifyOnFollow
	case KindShare:
		return u.NotifyOnShare
	}
	return false
}

// notify runs the preference gate, records the inbox entry and pushes to
// every active token of the recipient.
func (d *Dispatcher) notify(ctx context.Context, ev Event, recipientID uint, msg Message) {
	kind := string(ev.Kind)
	fields := []zap.Field{
		zap.String("event_id", ev.ID.String()),
		zap.String("kind", kind),
		zap.Uint("recipient", recipientID),
	}

	recipient, err := d.deps.Users.GetUserByID(ctx, recipientID)
	if err != nil {
		logger.Warn("load recipient", append(fields, zap.Error(err))...)
		return
	}
	if !wants(recipient, ev.Kind) {
		skippedCounter.WithLabelValues(kind, "preference").Inc()
		logger.Debug("recipient opted out", fields...)
		return
	}

	if d.deps.Inbox != nil {
		n := &models.Notification{
			Type:        kind,
			ActorID:     ev.ActorID,
			RecipientID: recipientID,
			Title:       msg.Title,
			Message:     msg.Body,
		}
		switch ev.Kind {
		case KindFollow:
			n.TargetID, n.TargetType = ev.ActorID, "user"
		case KindComment:
			n.TargetID, n.TargetType = ev.CommentID, models.ContentComment
		default:
			n.TargetID, n.TargetType = ev.ArticleID, models.ContentSharedArticle
		}
		if err := d.deps.Inbox.CreateNotification(ctx, n); err != nil {
			logger.Warn("record in-app notification", append(fields, zap.Error(err))...)
		}
	}

	tokens, err := d.deps.Tokens.GetActiveTokens(ctx, recipientID)
	if err != nil {
		logger.Warn("load device tokens", append(fields, zap.Error(err))...)
		return
	}
	if len(tokens) == 0 {
		skippedCounter.WithLabelValues(kind, "no_tokens").Inc()
		return
	}

	d.deliver(ctx, ev, tokens, msg, fields)
}

// waitForPushes takes one limiter token per push. WaitN rejects n above the
// burst, so large batches wait in burst-sized steps.
func (d *Dispatcher) waitForPushes(ctx context.Context, pushes int) error {
	if d.limiter.Limit() == rate.Inf {
		return nil
	}
	burst := d.limiter.Burst()
	for pushes > 0 {
		n := pushes
		if n > burst {
			n = burst
		}
		if err := d.limiter.WaitN(ctx, n); err != nil {
			return err
		}
		pushes -= n
	}
	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, ev Event, tokens []string, msg Message, fields []zap.Field) {
	kind := string(ev.Kind)
	if err := d.waitForPushes(ctx, len(tokens)); err != nil {
		pushCounter.WithLabelValues(kind, "failed").Add(float64(len(tokens)))
		logger.Warn("push rate limiter", append(fields, zap.Error(err))...)
		return
	}

	var results []DeliveryResult
	if len(tokens) == 1 {
		res, err := d.deps.Transport.Send(ctx, tokens[0], msg)
		if err != nil {
			res = DeliveryResult{Token: tokens[0], Err: err}
		}
		results = []DeliveryResult{res}
	} else {
		var err error
		results, err = d.deps.Transport.SendBatch(ctx, tokens, msg)
		if err != nil {
			pushCounter.WithLabelValues(kind, "failed").Add(float64(len(tokens) - len(results)))
			logger.Warn("push batch failed", append(fields, zap.Int("tokens", len(tokens)), zap.Error(err))...)
		}
	}

	for _, res := range results {
		switch {
		case res.Err == nil:
			pushCounter.WithLabelValues(kind, "sent").Inc()
		case res.Unregistered:
			pushCounter.WithLabelValues(kind, "unregistered").Inc()
			if err := d.deps.Tokens.DeactivateToken(ctx, res.Token); err != nil {
				logger.Warn("deactivate token", append(fields, zap.Error(err))...)
			}
		default:
			pushCounter.WithLabelValues(kind, "failed").Inc()
			logger.Warn("push failed", append(fields, zap.Error(res.Err))...)
		}
	}
}
