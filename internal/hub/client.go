package hub

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lxzan/gws"
	"github.com/sirupsen/logrus"

	"github.com/soar/inputicons/internal/input"
)

const sessionClientKey = "client"

// Client represents a connected websocket client.
type Client struct {
	ID   string
	hub  *Hub
	conn *gws.Conn
	send chan []byte
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *gws.Conn) *Client {
	return &Client{
		ID:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// Send queues msg without blocking; it reports false when the buffer is
// full.
func (c *Client) Send(msg []byte) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// WritePump sends messages from the send channel to the websocket
// connection until the hub closes the channel.
func (c *Client) WritePump() {
	defer c.conn.WriteClose(1000, nil)

	for msg := range c.send {
		if err := c.conn.WriteMessage(gws.OpcodeText, msg); err != nil {
			break
		}
	}
}

// InputFunc receives input events forwarded by browsers.
type InputFunc func(input.Event)

// Handler implements gws.Event for preview clients.
type Handler struct {
	gws.BuiltinEventHandler
	hub     *Hub
	onInput InputFunc
	onOpen  func(*Client)
	log     logrus.FieldLogger
}

// NewHandler registers every opened connection with h. onOpen runs after
// registration, e.g. to send the initial state.
func NewHandler(h *Hub, onInput InputFunc, onOpen func(*Client), log logrus.FieldLogger) *Handler {
	return &Handler{hub: h, onInput: onInput, onOpen: onOpen, log: log.WithField("component", "ws")}
}

func (e *Handler) OnOpen(socket *gws.Conn) {
	c := NewClient(e.hub, socket)
	socket.Session().Store(sessionClientKey, c)
	if !e.open(c) {
		socket.WriteClose(1001, nil)
		return
	}
	go c.WritePump()
}

// open registers c and runs onOpen. It reports false once the hub has
// stopped; c's queue is closed then and must not be used.
func (e *Handler) open(c *Client) bool {
	if !e.hub.Register(c) {
		e.log.WithField("client", c.ID).Debug("hub stopped, rejecting client")
		return false
	}
	if e.onOpen != nil {
		e.onOpen(c)
	}
	return true
}

func (e *Handler) OnClose(socket *gws.Conn, err error) {
	if v, ok := socket.Session().Load(sessionClientKey); ok {
		e.hub.Unregister(v.(*Client))
	}
}

func (e *Handler) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.WritePong(payload)
}

func (e *Handler) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()
	if err := e.handle(message.Bytes()); err != nil {
		e.log.WithError(err).Debug("ignoring client message")
	}
}

func (e *Handler) handle(data []byte) error {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("parse client message: %w", err)
	}
	switch msg.Type {
	case TypeInput:
		if msg.Event == nil || !msg.Event.Valid() {
			return errors.New("input message without a valid event")
		}
		if e.onInput != nil {
			e.onInput(*msg.Event)
		}
		return nil
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
}
