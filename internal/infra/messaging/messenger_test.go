package messaging_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"pushkit/internal/domain/entity"
	domainerrors "pushkit/internal/domain/errors"
	"pushkit/internal/infra/messaging"
	"pushkit/internal/platform/simulator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type messengerFixture struct {
	sim    *simulator.Simulator
	page   *messaging.Messenger
	worker *messaging.Messenger
}

func createMessengerFixture(t *testing.T) *messengerFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sim := simulator.New()

	return &messengerFixture{
		sim:    sim,
		page:   messaging.NewPageMessenger(sim.Container(), sim.PageEnvironment(), logger),
		worker: messaging.NewWorkerMessenger(sim.Scope(), sim.WorkerEnvironment(), logger),
	}
}

func (f *messengerFixture) connect(ctx context.Context, t *testing.T) {
	t.Helper()

	f.sim.SetRegistration("/push-worker-b.js", "/", true)
	require.NoError(t, f.worker.Listen(ctx))
	require.NoError(t, f.page.Listen(ctx))
}

func TestListenerOrderAndOnce(t *testing.T) {
	ctx := context.Background()
	f := createMessengerFixture(t)
	f.connect(ctx, t)

	var calls []string
	f.worker.On(entity.CommandWorkerVersionRequest, func(entity.Message) {
		calls = append(calls, "first")
	})
	f.worker.Once(entity.CommandWorkerVersionRequest, func(entity.Message) {
		calls = append(calls, "once")
	})
	f.worker.On(entity.CommandWorkerVersionRequest, func(entity.Message) {
		calls = append(calls, "second")
	})

	msg, err := entity.NewMessage(entity.WorkerVersionRequest{})
	require.NoError(t, err)

	require.NoError(t, f.page.Unicast(ctx, msg, nil))
	assert.Equal(t, []string{"first", "once", "second"}, calls)

	require.NoError(t, f.page.Unicast(ctx, msg, nil))
	assert.Equal(t, []string{"first", "once", "second", "first", "second"}, calls)
}

func TestOffRemovesAllListeners(t *testing.T) {
	ctx := context.Background()
	f := createMessengerFixture(t)
	f.connect(ctx, t)

	var calls int
	f.worker.On(entity.CommandWorkerVersionRequest, func(entity.Message) { calls++ })
	f.worker.On(entity.CommandWorkerVersionRequest, func(entity.Message) { calls++ })
	f.worker.Off(entity.CommandWorkerVersionRequest)

	msg, err := entity.NewMessage(entity.WorkerVersionRequest{})
	require.NoError(t, err)

	require.NoError(t, f.page.Unicast(ctx, msg, nil))
	assert.Zero(t, calls)
}

func TestUnmatchedCommandIsIgnored(t *testing.T) {
	ctx := context.Background()
	f := createMessengerFixture(t)
	f.connect(ctx, t)

	msg, err := entity.NewMessage(entity.SubscribeRequest{})
	require.NoError(t, err)

	// No listener registered for this command.
	require.NoError(t, f.page.Unicast(ctx, msg, nil))
}

func TestWorkerUnicastRequiresTarget(t *testing.T) {
	ctx := context.Background()
	f := createMessengerFixture(t)
	f.connect(ctx, t)

	msg, err := entity.NewMessage(entity.WorkerVersionReply{Version: 1})
	require.NoError(t, err)

	err = f.worker.Unicast(ctx, msg, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrMissingArgument)
}

func TestBroadcastReachesPage(t *testing.T) {
	ctx := context.Background()
	f := createMessengerFixture(t)
	f.connect(ctx, t)

	received := make([]entity.Message, 0, 1)
	f.page.On(entity.CommandWorkerVersionReply, func(msg entity.Message) {
		received = append(received, msg)
	})

	msg, err := entity.NewMessage(entity.WorkerVersionReply{Version: 7})
	require.NoError(t, err)
	require.NoError(t, f.worker.Broadcast(ctx, msg))

	require.Len(t, received, 1)
	reply, err := entity.DecodePayload[entity.WorkerVersionReply](received[0])
	require.NoError(t, err)
	assert.Equal(t, 7, reply.Version)
}

func TestBroadcastOutsideWorkerIsNoOp(t *testing.T) {
	ctx := context.Background()
	f := createMessengerFixture(t)
	f.connect(ctx, t)

	msg, err := entity.NewMessage(entity.WorkerVersionRequest{})
	require.NoError(t, err)
	require.NoError(t, f.page.Broadcast(ctx, msg))
}

func TestWaitUntilWorkerControlsPage(t *testing.T) {
	t.Run("resolves once a controller appears", func(t *testing.T) {
		f := createMessengerFixture(t)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- f.page.WaitUntilWorkerControlsPage(ctx)
		}()

		// Give the waiter time to subscribe before control arrives.
		time.Sleep(50 * time.Millisecond)
		f.sim.SetRegistration("/push-worker-b.js", "/", true)
		f.sim.SetControlled(true)

		require.NoError(t, <-done)
	})

	t.Run("returns immediately when already controlled", func(t *testing.T) {
		f := createMessengerFixture(t)
		f.sim.SetRegistration("/push-worker-b.js", "/", true)

		require.NoError(t, f.page.WaitUntilWorkerControlsPage(context.Background()))
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		f := createMessengerFixture(t)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := f.page.WaitUntilWorkerControlsPage(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
