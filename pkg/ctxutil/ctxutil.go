package ctxutil

import (
	"context"
)

type ctxKey string

const (
	actorKey     ctxKey = "actor"
	requestIDKey ctxKey = "request_id"
)

// Valores por defecto cuando la operación no viene de una petición autenticada.
const (
	SystemUser = "system"
	Unknown    = "unknown"
)

// Actor identifica quién origina la operación y desde dónde.
type Actor struct {
	Username  string
	IP        string
	UserAgent string
}

// WithActor guarda el actor en el contexto.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

// WithUsername completa el username del actor existente (o crea uno nuevo).
func WithUsername(ctx context.Context, username string) context.Context {
	a, _ := ctx.Value(actorKey).(Actor)
	a.Username = username
	return WithActor(ctx, a)
}

// ActorFromCtx devuelve el actor con los valores por defecto aplicados
// ("system" para el usuario, "unknown" para IP y user-agent).
func ActorFromCtx(ctx context.Context) Actor {
	a, _ := ctx.Value(actorKey).(Actor)
	if a.Username == "" {
		a.Username = SystemUser
	}
	if a.IP == "" {
		a.IP = Unknown
	}
	if a.UserAgent == "" {
		a.UserAgent = Unknown
	}
	return a
}

// WithRequestID guarda el id de la petición en el contexto.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx devuelve el id de la petición.
// Cadena vacía si no existe.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
