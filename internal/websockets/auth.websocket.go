package websockets

import (
	"time"
)

const AUTH_HANDSHAKE_TIMEOUT = 10 * time.Second

// startAuthTimeout closes the connection if the client has not authenticated in time.
func (c *Client) startAuthTimeout() {
	log := c.Manager.log.Function("startAuthTimeout")

	time.AfterFunc(AUTH_HANDSHAKE_TIMEOUT, func() {
		if c.Status() == STATUS_AUTHENTICATED {
			return
		}

		log.Warn("Client failed to authenticate within timeout", "clientID", c.ID)
		c.trySend(newMessage(MESSAGE_TYPE_AUTH_FAILURE, "system", "authentication_timeout", map[string]any{
			"reason": "Authentication timeout",
		}))

		time.Sleep(100 * time.Millisecond)
		_ = c.Connection.Close()
	})
}

func (c *Client) sendAuthRequest() error {
	if err := c.Connection.WriteJSON(newMessage(MESSAGE_TYPE_AUTH_REQUEST, "system", "authenticate", nil)); err != nil {
		return c.Manager.log.Function("sendAuthRequest").Err("failed to send auth request", err, "clientID", c.ID)
	}
	return nil
}

// handleAuthResponse verifies the access token sent as data.token and binds the
// connection to its user.
func (c *Client) handleAuthResponse(message Message) {
	log := c.Manager.log.Function("handleAuthResponse")

	if c.Status() == STATUS_AUTHENTICATED {
		log.Warn("Auth response from already authenticated client", "clientID", c.ID)
		return
	}

	token, ok := message.Data["token"].(string)
	if !ok || token == "" {
		c.sendAuthFailure("Invalid token format")
		return
	}

	ctx := c.Manager.ctx
	userID, err := c.Manager.authService.ParseToken(ctx, token)
	if err != nil {
		c.sendAuthFailure("Authentication failed")
		return
	}

	user, err := c.Manager.userRepo.GetByID(ctx, c.Manager.db.SQL, userID)
	if err != nil {
		log.Info("websocket user not found", "clientID", c.ID, "userID", userID)
		c.sendAuthFailure("User not found")
		return
	}

	c.authenticate(user.ID)
	log.Info("Client authenticated", "clientID", c.ID, "userID", user.ID)

	success := newMessage(MESSAGE_TYPE_AUTH_SUCCESS, "system", "authenticated", map[string]any{"userId": user.ID})
	success.UserID = user.ID
	c.trySend(success)
}

func (c *Client) sendAuthFailure(reason string) {
	c.trySend(newMessage(MESSAGE_TYPE_AUTH_FAILURE, "system", "authentication_failed", map[string]any{
		"reason": reason,
	}))

	c.Manager.log.Function("sendAuthFailure").Info("Auth failure sent, closing connection", "clientID", c.ID, "reason", reason)

	time.AfterFunc(100*time.Millisecond, func() {
		_ = c.Connection.Close()
	})
}

func (c *Client) handleUnauthenticatedMessage(message Message) {
	c.Manager.log.Function("handleUnauthenticatedMessage").
		Warn("Blocking message from unauthenticated client", "clientID", c.ID, "type", message.Type)

	c.trySend(newMessage(MESSAGE_TYPE_AUTH_FAILURE, "system", "authentication_required", map[string]any{
		"reason": "Authentication required",
	}))
}
