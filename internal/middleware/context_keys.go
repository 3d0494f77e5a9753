package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ActorHeader carries the id of the officer performing a request. Authentication happens
// upstream; this service only records who acted.
const ActorHeader = "X-Actor-ID"

// actorIDKey is the key used to store the acting officer's ID in the Gin context.
const actorIDKey = contextKey("actorID")

// RequireActor rejects requests without an actor header and stores the actor ID for handlers.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := strings.TrimSpace(c.GetHeader(ActorHeader))
		if actorID == "" {
			GetLoggerFromContext(c).Warn("Actor header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ActorHeader + " header required"})
			return
		}

		c.Set(string(actorIDKey), actorID)
		logger := GetLoggerFromContext(c).With(slog.String("actor_id", actorID))
		c.Set(string(loggerKey), logger)
		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), logger))

		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting officer's ID from the Gin context.
// It returns the ID and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorIDVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return "", false
	}

	actorID, ok := actorIDVal.(string)
	if !ok {
		return "", false
	}

	return actorID, true
}
