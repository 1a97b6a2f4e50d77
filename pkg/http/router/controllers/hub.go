package controllers

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/goccy/go-json"
	"github.com/optirota/optirota/pkg/analyzer"
)

const (
	MESSAGE_PROGRESS = "progress"
	MESSAGE_RESULT   = "result"
	MESSAGE_ERROR    = "error"
)

// User one websocket client of the analysis stream. Every text frame it sends is an analyze request, answered by
// a progress message per finished source and a final result message.
type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

// readRequest returns nil, nil for control frames.
func (u *User) readRequest() (*analyzeRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &analyzeRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// StreamAnalysis serves one request. A returned error means the connection is unusable.
func (u *User) StreamAnalysis(ctx context.Context) error {
	req, err := u.readRequest()
	if err != nil {
		return err
	}
	if req == nil {
		return nil
	}

	if err := validate(*req); err != nil {
		return u.writeError(http.StatusBadRequest, err)
	}

	var writeErr error
	progress := func(done, total int, report *analyzer.RouteReport) {
		if writeErr != nil {
			return
		}
		writeErr = u.write(progressMessage{
			Type:      MESSAGE_PROGRESS,
			Done:      done,
			Total:     total,
			Source:    report.Source,
			TotalCost: report.TotalCost,
			Valid:     report.ValidCount,
		})
	}

	res, err := u.hub.analyzeService.Analyze(ctx, req.toParams(), progress)
	if writeErr != nil {
		return writeErr
	}
	if err != nil {
		return u.writeError(http.StatusInternalServerError, err)
	}
	return u.write(envelope{"type": MESSAGE_RESULT, "data": NewAnalyzeResponse(res)})
}

func (u *User) writeError(status int, err error) error {
	return u.write(envelope{"type": MESSAGE_ERROR, "error": map[string]string{
		"code":    http.StatusText(status),
		"message": err.Error(),
	}})
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

type Hub struct {
	mu             sync.RWMutex
	seq            uint
	ns             map[uint]*User
	analyzeService AnalyzeService
}

func NewHub(analyzeService AnalyzeService) *Hub {
	return &Hub{
		ns:             make(map[uint]*User),
		analyzeService: analyzeService,
	}
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.ns[user.id]; !ok {
		return
	}
	delete(h.ns, user.id)
	user.conn.Close()
}

func (h *Hub) NumUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.ns)
}

func (h *Hub) RemoveAllUser() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, user := range h.ns {
		user.conn.Close()
		delete(h.ns, id)
	}
}
