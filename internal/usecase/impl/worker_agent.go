package impl

import (
	"context"
	"log/slog"

	"pushkit/internal/domain/entity"
	"pushkit/internal/domain/service"
	"pushkit/internal/usecase"
	"pushkit/internal/version"
)

type workerAgent struct {
	messenger     service.WorkerMessenger
	subscriptions usecase.SubscriptionUsecase
	logger        *slog.Logger
}

// NewWorkerAgent creates the worker-context agent that answers page-side
// commands: version requests and delegated subscription negotiation.
func NewWorkerAgent(
	messenger service.WorkerMessenger,
	subscriptions usecase.SubscriptionUsecase,
	logger *slog.Logger,
) usecase.WorkerAgent {
	return &workerAgent{
		messenger:     messenger,
		subscriptions: subscriptions,
		logger:        logger,
	}
}

// Run installs the agent's listeners and begins receiving messages.
func (a *workerAgent) Run(ctx context.Context) error {
	a.messenger.On(entity.CommandWorkerVersionRequest, func(entity.Message) {
		a.replyVersion(ctx)
	})
	a.messenger.On(entity.CommandSubscribeRequest, func(entity.Message) {
		a.replySubscribe(ctx)
	})

	return a.messenger.Listen(ctx)
}

func (a *workerAgent) replyVersion(ctx context.Context) {
	a.reply(ctx, entity.WorkerVersionReply{Version: version.Number})
}

func (a *workerAgent) replySubscribe(ctx context.Context) {
	reply := entity.SubscribeReply{}

	sub, err := a.subscriptions.Subscribe(ctx)
	if err != nil {
		a.logger.Error("delegated subscription failed", slog.Any("error", err))
		reply.Error = err.Error()
	} else {
		reply.Subscription = sub
	}

	a.reply(ctx, reply)
}

// reply broadcasts to all controlled clients; the requesting page correlates
// by command tag, not by client identity.
func (a *workerAgent) reply(ctx context.Context, payload entity.Payload) {
	msg, err := entity.NewMessage(payload)
	if err != nil {
		a.logger.Error("failed to encode reply", slog.Any("error", err))

		return
	}

	if err := a.messenger.Broadcast(ctx, msg); err != nil {
		a.logger.Error("failed to broadcast reply",
			slog.String("command", string(msg.Command)),
			slog.Any("error", err))
	}
}
