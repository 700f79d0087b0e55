package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/artworked/core/core/events"
	"github.com/desertbit/glue"
)

// HandleURL is where the socket is served.
const HandleURL = "/realtime/"

type socketEvent struct {
	Event  string                 `json:"event"`
	Params map[string]interface{} `json:"params,omitempty"`
}

func (ev socketEvent) encode() string {
	bytes, err := json.Marshal(ev)
	if err != nil {
		panic(err)
	}

	return string(bytes)
}

// Server keeps the connected sockets, pushing notification snapshots to
// authenticated clients and feed changes to everyone.
type Server struct {
	deps    deps
	glue    *glue.Server
	sockets sync.Map
}

func New(d deps, development bool) *Server {
	options := glue.Options{
		HTTPSocketType: glue.HTTPSocketTypeNone,
		HTTPHandleURL:  HandleURL,
	}
	if development {
		options.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}

	s := &Server{deps: d, glue: glue.NewServer(options)}
	s.glue.OnNewSocket(s.onNewSocket)
	return s
}

// Run relays feed events to every socket until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	sub, err := s.deps.Broker().Subscribe(ctx, events.FeedChannel)
	if err != nil {
		return err
	}

	go func() {
		defer s.glue.Release()
		for e := range sub.C {
			s.broadcast(socketEvent{Event: e.Name, Params: e.Params}.encode())
		}
	}()
	return nil
}

func (s *Server) broadcast(message string) {
	s.sockets.Range(func(k, v interface{}) bool {
		v.(*Client).Raw.Write(message)
		return true
	})
}

// ServeHTTP exposes the glue handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.glue.ServeHTTP(w, r)
}

func (s *Server) onNewSocket(socket *glue.Socket) {
	ctx, cancel := context.WithCancel(context.Background())
	client := newClient(s.deps, socket)
	go client.readWorker(ctx)

	// Set a function which is triggered as soon as the socket is closed.
	socket.OnClose(func() {
		cancel()
		s.sockets.Delete(socket.ID())
		log.Debugf("Socket %s closed with remote address: %s", socket.ID(), socket.RemoteAddr())
	})

	socket.OnRead(func(data string) {
		var event socketEvent
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			log.Warningf("Could not unmarshal read event from client: %s (%v)", data, err)
			return
		}

		select {
		case client.Read <- event:
		case <-ctx.Done():
		}
	})

	socket.Write(socketEvent{Event: "connected"}.encode())
	s.sockets.Store(socket.ID(), client)
}
