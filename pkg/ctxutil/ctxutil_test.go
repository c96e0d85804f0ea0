package ctxutil_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/winery-api/pkg/ctxutil"
)

func TestActorFromCtx_ContextoVacioUsaFallbacks(t *testing.T) {
	t.Parallel()

	a := ctxutil.ActorFromCtx(context.Background())
	assert.Equal(t, "system", a.Username)
	assert.Equal(t, "unknown", a.IP)
	assert.Equal(t, "unknown", a.UserAgent)
}

func TestWithUsername_ConservaIPyUserAgent(t *testing.T) {
	t.Parallel()

	ctx := ctxutil.WithActor(context.Background(), ctxutil.Actor{IP: "10.0.0.1", UserAgent: "curl/8"})
	ctx = ctxutil.WithUsername(ctx, "admin")

	a := ctxutil.ActorFromCtx(ctx)
	assert.Equal(t, ctxutil.Actor{Username: "admin", IP: "10.0.0.1", UserAgent: "curl/8"}, a)
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ctxutil.RequestIDFromCtx(context.Background()))
	ctx := ctxutil.WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", ctxutil.RequestIDFromCtx(ctx))
}
