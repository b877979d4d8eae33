package relay

import (
	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
)

const (
	namespace = "/"
	room      = ""
)

type socketBroadcaster struct {
	server *socketio.Server
}

func (b socketBroadcaster) Broadcast(event string, msg interface{}) {
	b.server.BroadcastToRoom(namespace, room, event, msg)
}

// NewSocketServer returns a socket.io server whose clients receive every
// update the relay handles. New clients are sent the latest message of every
// sensor on connect.
func NewSocketServer() (*socketio.Server, Broadcaster, error) {
	server, err := socketio.NewServer(nil)
	if err != nil {
		return nil, nil, err
	}
	return server, socketBroadcaster{server: server}, nil
}

// Attach registers the connection handlers that need the relay's state.
func (r *Relay) Attach(server *socketio.Server) {
	server.OnConnect(namespace, func(s socketio.Conn) error {
		s.Join(room)
		r.logger.Printf("connected ID '%v'", s.ID())
		s.Emit(InitialEvent, r.Latest())
		return nil
	})

	server.OnError(namespace, func(s socketio.Conn, e error) {
		r.logger.Printf("socket error %+v", e)
		if s != nil {
			s.Close()
		}
	})

	server.OnDisconnect(namespace, func(s socketio.Conn, reason string) {
		r.logger.Printf("disconnected ID '%v': %s", s.ID(), reason)
	})
}

func GinMiddleware(allowOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, Content-Length, X-CSRF-Token, Token, session, Origin, Host, Connection, Accept-Encoding, Accept-Language, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Request.Header.Del("Origin")

		c.Next()
	}
}

// NewRouter mounts the socket.io server and a JSON snapshot of the latest readings.
func (r *Relay) NewRouter(server *socketio.Server, allowOrigin string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), GinMiddleware(allowOrigin))

	router.GET("/socket.io/*any", gin.WrapH(server))
	router.POST("/socket.io/*any", gin.WrapH(server))
	router.GET("/latest", func(c *gin.Context) {
		c.JSON(200, r.Latest())
	})

	return router
}
